package calendar_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/vacation-pay/calendar"
)

func date(year int, month time.Month, day int) calendar.Date {
	return calendar.NewDate(year, month, day)
}

// =============================================================================
// DATE
// =============================================================================

func TestDate_ParseAndFormat(t *testing.T) {
	d, err := calendar.ParseDate("2026-02-23")
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.February, 23), d)
	assert.Equal(t, "2026-02-23", d.String())

	_, err = calendar.ParseDate("23.02.2026")
	assert.Error(t, err)
}

func TestDate_NormalizesOverflow(t *testing.T) {
	assert.Equal(t, date(2026, time.March, 2), calendar.NewDate(2026, time.February, 30))
}

func TestDate_DaysUntil(t *testing.T) {
	start := date(2026, time.February, 23)
	assert.Equal(t, 4, start.DaysUntil(date(2026, time.February, 27)))
	assert.Equal(t, -4, date(2026, time.February, 27).DaysUntil(start))
	assert.Equal(t, 365, date(2026, time.January, 1).DaysUntil(date(2027, time.January, 1)))
}

func TestDate_TextRoundTrip(t *testing.T) {
	var d calendar.Date
	require.NoError(t, d.UnmarshalText([]byte("2026-12-31")))
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2026-12-31", string(text))
}

// =============================================================================
// PERIOD
// =============================================================================

func TestPeriod_LenIsInclusive(t *testing.T) {
	p := calendar.Period{Start: date(2026, time.May, 12), End: date(2026, time.May, 16)}
	assert.Equal(t, 5, p.Len())
	assert.Len(t, p.Days(), 5)
	assert.NoError(t, p.Validate())

	single := calendar.Period{Start: date(2026, time.May, 12), End: date(2026, time.May, 12)}
	assert.Equal(t, 1, single.Len())
}

func TestPeriod_Reversed(t *testing.T) {
	p := calendar.Period{Start: date(2026, time.February, 27), End: date(2026, time.February, 23)}
	assert.ErrorIs(t, p.Validate(), calendar.ErrInvalidPeriod)
	assert.Equal(t, 0, p.Len())
	assert.Empty(t, p.Days())
}

func TestPeriod_LenSpansCenturies(t *testing.T) {
	// 401 years with 97 leap days; longer than time.Duration can hold.
	p := calendar.Period{Start: date(1700, time.January, 1), End: date(2100, time.December, 31)}

	assert.Equal(t, 146462, p.Len())
	assert.Len(t, p.Days(), p.Len())
	assert.Equal(t, 146461, p.Start.DaysUntil(p.End))
	assert.Equal(t, -146461, p.End.DaysUntil(p.Start))
}

func TestPeriod_CrossesYearBoundary(t *testing.T) {
	p := calendar.Period{Start: date(2025, time.December, 30), End: date(2026, time.January, 2)}
	assert.Equal(t, 4, p.Len())

	cal := calendar.NewSet(calendar.Russia2026()...)
	assert.Equal(t, []calendar.Date{date(2026, time.January, 1), date(2026, time.January, 2)}, p.Holidays(cal))
}

// =============================================================================
// SET
// =============================================================================

func TestSet_IsHoliday(t *testing.T) {
	cal := calendar.NewSet(calendar.Russia2026()...)

	tests := []struct {
		name string
		d    calendar.Date
		want bool
	}{
		{"new year", date(2026, time.January, 1), true},
		{"last new year holiday", date(2026, time.January, 9), true},
		{"defender day", date(2026, time.February, 23), true},
		{"victory day observed", date(2026, time.May, 11), true},
		{"new year's eve", date(2026, time.December, 31), true},
		{"ordinary working day", date(2026, time.May, 12), false},
		{"same month-day other year", date(2027, time.February, 23), false},
		{"far outside curated year", date(1999, time.January, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cal.IsHoliday(tt.d))
		})
	}
}

func TestSet_Holidays(t *testing.T) {
	cal := calendar.NewSet(calendar.Russia2026()...)
	assert.Equal(t, 16, cal.Len())

	hs := cal.Holidays(2026)
	require.Len(t, hs, 16)
	assert.Equal(t, date(2026, time.January, 1), hs[0].Date)
	assert.Equal(t, date(2026, time.December, 31), hs[len(hs)-1].Date)
	assert.Empty(t, cal.Holidays(2027))

	h, ok := cal.Lookup(date(2026, time.June, 12))
	require.True(t, ok)
	assert.Equal(t, "Russia Day", h.Name)
}

func TestSet_NilIsEmpty(t *testing.T) {
	var s *calendar.Set
	assert.False(t, s.IsHoliday(date(2026, time.January, 1)))
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Holidays(0))
}

func TestSet_ConcurrentReads(t *testing.T) {
	cal := calendar.NewSet(calendar.Russia2026()...)
	year := calendar.Period{Start: date(2026, time.January, 1), End: date(2026, time.December, 31)}

	var wg sync.WaitGroup
	counts := make([]int, 16)
	for i := range counts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			counts[i] = len(year.Holidays(cal))
		}(i)
	}
	wg.Wait()

	for _, c := range counts {
		assert.Equal(t, 16, c)
	}
}

func TestNone(t *testing.T) {
	assert.False(t, calendar.None{}.IsHoliday(date(2026, time.January, 1)))
}

func TestMerge_CombinesSources(t *testing.T) {
	extra := []calendar.Holiday{{Date: date(2027, time.January, 1), Name: "New Year"}}
	s := calendar.Merge(calendar.Russia2026(), nil, extra)

	assert.True(t, s.IsHoliday(date(2026, time.February, 23)))
	assert.True(t, s.IsHoliday(date(2027, time.January, 1)))
	assert.False(t, s.IsHoliday(date(2027, time.January, 11)))
	assert.Equal(t, 17, s.Len())
}

func TestMerge_LaterListWins(t *testing.T) {
	override := []calendar.Holiday{{Date: date(2026, time.June, 12), Name: "Day of Russia"}}
	s := calendar.Merge(calendar.Russia2026(), override)

	h, ok := s.Lookup(date(2026, time.June, 12))
	require.True(t, ok)
	assert.Equal(t, "Day of Russia", h.Name)
	assert.Equal(t, 16, s.Len())
}

// =============================================================================
// YAML OVERRIDES
// =============================================================================

func TestParseYAML(t *testing.T) {
	data := []byte(`
holidays:
  - date: 2027-01-01
    name: New Year
  - date: "2027-02-23"
    name: Defender of the Fatherland Day
`)
	hs, err := calendar.ParseYAML(data)
	require.NoError(t, err)
	require.Len(t, hs, 2)
	assert.Equal(t, date(2027, time.January, 1), hs[0].Date)
	assert.Equal(t, "New Year", hs[0].Name)
	assert.Equal(t, date(2027, time.February, 23), hs[1].Date)
}

func TestParseYAML_BadDate(t *testing.T) {
	_, err := calendar.ParseYAML([]byte("holidays:\n  - date: 2027-13-01\n    name: nope\n"))
	assert.Error(t, err)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.yaml")
	require.NoError(t, os.WriteFile(path, []byte("holidays:\n  - date: 2027-05-01\n    name: Labour Day\n"), 0o644))

	hs, err := calendar.LoadYAML(path)
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.Equal(t, "Labour Day", hs[0].Name)

	_, err = calendar.LoadYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

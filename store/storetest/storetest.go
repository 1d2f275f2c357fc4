// Package storetest holds the behavioural tests every HolidayStore must pass.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/vacation-pay/calendar"
	"github.com/warp/vacation-pay/store"
)

// Run exercises a fresh, empty store returned by newStore.
func Run(t *testing.T, newStore func(t *testing.T) store.HolidayStore) {
	t.Run("SaveAssignsID", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		saved, err := s.SaveHoliday(ctx, calendar.Holiday{Date: calendar.NewDate(2027, time.January, 1), Name: "New Year"})
		require.NoError(t, err)
		assert.NotEmpty(t, saved.ID)

		hs, err := s.ListHolidays(ctx, 2027)
		require.NoError(t, err)
		require.Len(t, hs, 1)
		assert.Equal(t, saved, hs[0])
	})

	t.Run("SaveSameDateRenames", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		d := calendar.NewDate(2026, time.June, 12)

		first, err := s.SaveHoliday(ctx, calendar.Holiday{Date: d, Name: "Russia Day"})
		require.NoError(t, err)
		second, err := s.SaveHoliday(ctx, calendar.Holiday{Date: d, Name: "Day of Russia"})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID, "existing row keeps its ID")
		hs, err := s.ListHolidays(ctx, 0)
		require.NoError(t, err)
		require.Len(t, hs, 1)
		assert.Equal(t, "Day of Russia", hs[0].Name)
	})

	t.Run("SaveRequiresDate", func(t *testing.T) {
		s := newStore(t)
		_, err := s.SaveHoliday(context.Background(), calendar.Holiday{Name: "nowhere"})
		assert.ErrorIs(t, err, store.ErrInvalidHoliday)
	})

	t.Run("ListFiltersByYearAndSorts", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		for _, h := range []calendar.Holiday{
			{Date: calendar.NewDate(2027, time.May, 1), Name: "Labour Day"},
			{Date: calendar.NewDate(2026, time.November, 4), Name: "Unity Day"},
			{Date: calendar.NewDate(2026, time.February, 23), Name: "Defender Day"},
		} {
			_, err := s.SaveHoliday(ctx, h)
			require.NoError(t, err)
		}

		hs, err := s.ListHolidays(ctx, 2026)
		require.NoError(t, err)
		require.Len(t, hs, 2)
		assert.Equal(t, calendar.NewDate(2026, time.February, 23), hs[0].Date)
		assert.Equal(t, calendar.NewDate(2026, time.November, 4), hs[1].Date)

		all, err := s.ListHolidays(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		none, err := s.ListHolidays(ctx, 1990)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("Delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		saved, err := s.SaveHoliday(ctx, calendar.Holiday{Date: calendar.NewDate(2026, time.March, 9), Name: "Women's Day"})
		require.NoError(t, err)

		require.NoError(t, s.DeleteHoliday(ctx, saved.ID))
		assert.ErrorIs(t, s.DeleteHoliday(ctx, saved.ID), store.ErrHolidayNotFound)

		hs, err := s.ListHolidays(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, hs)
	})

	t.Run("SnapshotMergesBase", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.SaveHoliday(ctx, calendar.Holiday{Date: calendar.NewDate(2027, time.January, 1), Name: "New Year"})
		require.NoError(t, err)

		cal, err := store.Snapshot(ctx, s, calendar.Russia2026())
		require.NoError(t, err)
		assert.True(t, cal.IsHoliday(calendar.NewDate(2026, time.February, 23)))
		assert.True(t, cal.IsHoliday(calendar.NewDate(2027, time.January, 1)))
		assert.Equal(t, 17, cal.Len())
	})

	t.Run("Import", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		n, err := store.Import(ctx, s, calendar.Russia2026())
		require.NoError(t, err)
		assert.Equal(t, 16, n)

		// Importing twice is idempotent.
		_, err = store.Import(ctx, s, calendar.Russia2026())
		require.NoError(t, err)
		hs, err := s.ListHolidays(ctx, 2026)
		require.NoError(t, err)
		assert.Len(t, hs, 16)
	})
}

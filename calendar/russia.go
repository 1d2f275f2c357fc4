package calendar

import "time"

// Russia2026 returns the non-working public holidays of the 2026 Russian
// production calendar. Weekend days are not listed; only dates that are
// holidays in their own right or moved days off.
func Russia2026() []Holiday {
	var out []Holiday
	add := func(month time.Month, day int, name string) {
		out = append(out, Holiday{
			ID:   "ru-2026-" + NewDate(2026, month, day).String(),
			Date: NewDate(2026, month, day),
			Name: name,
		})
	}

	for day := 1; day <= 8; day++ {
		if day == 7 {
			add(time.January, day, "Orthodox Christmas")
			continue
		}
		add(time.January, day, "New Year holidays")
	}
	add(time.January, 9, "New Year holidays (moved day off)")
	add(time.February, 23, "Defender of the Fatherland Day")
	add(time.March, 9, "International Women's Day (observed)")
	add(time.May, 1, "Spring and Labour Day")
	add(time.May, 11, "Victory Day (observed)")
	add(time.June, 12, "Russia Day")
	add(time.November, 4, "Unity Day")
	add(time.December, 31, "New Year's Eve (moved day off)")

	return out
}

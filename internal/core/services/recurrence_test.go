package services_test

import (
	"testing"
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/centsible/centsible_app/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	in := time.Date(2024, time.March, 1, 2, 30, 0, 0, loc) // 2024-02-29 21:30 UTC
	assert.Equal(t, date(2024, time.February, 29), services.DateOnly(in))

	assert.Equal(t, date(2024, time.June, 15), services.DateOnly(date(2024, time.June, 15)))
}

func TestFirstOccurrence(t *testing.T) {
	start := time.Date(2024, time.January, 31, 14, 45, 0, 0, time.UTC)
	assert.Equal(t, date(2024, time.January, 31), services.FirstOccurrence(start))
}

func TestNextOccurrence_FixedIntervals(t *testing.T) {
	tests := []struct {
		name string
		freq domain.Frequency
		from time.Time
		want time.Time
	}{
		{"daily", domain.Daily, date(2024, time.March, 10), date(2024, time.March, 11)},
		{"daily across month end", domain.Daily, date(2024, time.February, 29), date(2024, time.March, 1)},
		{"daily across year end", domain.Daily, date(2024, time.December, 31), date(2025, time.January, 1)},
		{"weekly", domain.Weekly, date(2024, time.March, 10), date(2024, time.March, 17)},
		{"weekly across month end", domain.Weekly, date(2024, time.April, 28), date(2024, time.May, 5)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Fixed intervals ignore the anchor entirely.
			got := services.NextOccurrence(tc.freq, tc.from, date(2020, time.January, 1))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNextOccurrence_MonthlyClampsAndRecovers(t *testing.T) {
	anchor := date(2024, time.January, 31)

	from := anchor
	var got []time.Time
	for i := 0; i < 4; i++ {
		from = services.NextOccurrence(domain.Monthly, from, anchor)
		got = append(got, from)
	}

	// Jan 31 clamps to Feb 29 (leap year), returns to the 31st in March,
	// clamps again in April, and recovers once more in May.
	want := []time.Time{
		date(2024, time.February, 29),
		date(2024, time.March, 31),
		date(2024, time.April, 30),
		date(2024, time.May, 31),
	}
	assert.Equal(t, want, got)
}

func TestNextOccurrence_MonthlyNonLeapFebruary(t *testing.T) {
	anchor := date(2025, time.January, 31)
	got := services.NextOccurrence(domain.Monthly, anchor, anchor)
	assert.Equal(t, date(2025, time.February, 28), got)
}

func TestNextOccurrence_MonthlyMidMonthAnchor(t *testing.T) {
	anchor := date(2024, time.January, 15)

	// A mid-month anchor never needs clamping.
	got := services.NextOccurrence(domain.Monthly, date(2024, time.February, 15), anchor)
	assert.Equal(t, date(2024, time.March, 15), got)

	// When from drifted past the anchor day (a rolled-forward cursor), the
	// result snaps to the anchor day of the following month.
	got = services.NextOccurrence(domain.Monthly, date(2024, time.March, 20), anchor)
	assert.Equal(t, date(2024, time.April, 15), got)
}

func TestNextOccurrence_MonthlyAcrossYearBoundary(t *testing.T) {
	anchor := date(2024, time.November, 30)
	got := services.NextOccurrence(domain.Monthly, date(2024, time.December, 30), anchor)
	assert.Equal(t, date(2025, time.January, 30), got)
}

func TestNextOccurrence_YearlyLeapDayAnchor(t *testing.T) {
	anchor := date(2024, time.February, 29)

	from := anchor
	var got []time.Time
	for i := 0; i < 4; i++ {
		from = services.NextOccurrence(domain.Yearly, from, anchor)
		got = append(got, from)
	}

	// Feb 29 clamps to Feb 28 on non-leap years and returns to the 29th in 2028.
	want := []time.Time{
		date(2025, time.February, 28),
		date(2026, time.February, 28),
		date(2027, time.February, 28),
		date(2028, time.February, 29),
	}
	assert.Equal(t, want, got)
}

func TestNextOccurrence_Yearly(t *testing.T) {
	anchor := date(2023, time.July, 4)
	got := services.NextOccurrence(domain.Yearly, date(2024, time.July, 4), anchor)
	assert.Equal(t, date(2025, time.July, 4), got)
}

func TestNextOccurrence_Deterministic(t *testing.T) {
	anchor := date(2024, time.January, 31)
	from := date(2024, time.April, 30)
	first := services.NextOccurrence(domain.Monthly, from, anchor)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, services.NextOccurrence(domain.Monthly, from, anchor))
	}
}

func TestNextOccurrence_StrictlyAfterFrom(t *testing.T) {
	anchor := date(2024, time.January, 31)
	freqs := []domain.Frequency{domain.Daily, domain.Weekly, domain.Monthly, domain.Yearly}
	for _, freq := range freqs {
		from := anchor
		for i := 0; i < 12; i++ {
			next := services.NextOccurrence(freq, from, anchor)
			assert.True(t, next.After(from), "%s occurrence %s not after %s", freq, next, from)
			from = next
		}
	}
}

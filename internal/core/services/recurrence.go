package services

import (
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
)

// All schedule arithmetic happens on UTC calendar days; no time-of-day
// component is tracked. Mixing local-time and UTC date construction is how
// off-by-one-day drift creeps in across month boundaries, so everything is
// normalized through DateOnly first.

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NextOccurrence computes the occurrence strictly after from.
//
// DAILY and WEEKLY add fixed day counts. MONTHLY and YEARLY use calendar
// arithmetic anchored to the anchor date's day-of-month (and month, for
// YEARLY): a 31st-of-month obligation rolls to the last day of shorter months
// and returns to the 31st afterwards, rather than drifting. The anchor is the
// obligation's start date; from alone cannot carry the anchor day once a
// short month has clamped it.
//
// Pure and deterministic: same inputs always yield the same output.
func NextOccurrence(freq domain.Frequency, from, anchor time.Time) time.Time {
	from = DateOnly(from)
	anchor = DateOnly(anchor)

	switch freq {
	case domain.Daily:
		return from.AddDate(0, 0, 1)
	case domain.Weekly:
		return from.AddDate(0, 0, 7)
	case domain.Monthly:
		n := monthsBetween(anchor, from)
		next := anchorPlusMonths(anchor, n)
		if !next.After(from) {
			next = anchorPlusMonths(anchor, n+1)
		}
		return next
	case domain.Yearly:
		n := from.Year() - anchor.Year()
		next := anchorPlusYears(anchor, n)
		if !next.After(from) {
			next = anchorPlusYears(anchor, n+1)
		}
		return next
	}
	// Unknown frequencies never reach here; callers validate first.
	return from.AddDate(0, 0, 1)
}

// FirstOccurrence returns the first eligible occurrence of a new obligation,
// which is its start date itself.
func FirstOccurrence(start time.Time) time.Time {
	return DateOnly(start)
}

func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// anchorPlusMonths shifts anchor by n calendar months, clamping the day to
// the target month's length instead of overflowing into the next month.
func anchorPlusMonths(anchor time.Time, n int) time.Time {
	yearDelta, month := (int(anchor.Month())-1+n)/12, (int(anchor.Month())-1+n)%12
	if month < 0 {
		month += 12
		yearDelta--
	}
	year := anchor.Year() + yearDelta
	day := anchor.Day()
	if last := daysInMonth(year, time.Month(month+1)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)
}

func anchorPlusYears(anchor time.Time, n int) time.Time {
	year := anchor.Year() + n
	day := anchor.Day()
	if last := daysInMonth(year, anchor.Month()); day > last {
		day = last
	}
	return time.Date(year, anchor.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

package maintenance

import (
	"github.com/nJurisch/equipment-pool/models"
)

// GenerateSchedule returns every maintenance occurrence starting at first and
// advancing by intervalDays, up to and including endOfLife.
//
// The result is strictly increasing, starts at first and never passes
// endOfLife. It is empty (and not an error) when first is after endOfLife.
// A non-positive interval yields [ErrNonPositiveInterval].
func GenerateSchedule(first models.Date, intervalDays int, endOfLife models.Date) ([]models.Date, error) {
	if intervalDays <= 0 {
		return nil, ErrNonPositiveInterval
	}
	if first.IsZero() || endOfLife.IsZero() {
		return nil, ErrZeroDate
	}
	if first.After(endOfLife) {
		return []models.Date{}, nil
	}

	count := Occurrences(first, intervalDays, endOfLife)
	if count > MaxOccurrences {
		return nil, ErrScheduleTooLong
	}
	dates := make([]models.Date, 0, count)
	for i := 0; i < count; i++ {
		dates = append(dates, first.AddDays(i*intervalDays))
	}

	return dates, nil
}

// MaxOccurrences caps the length of a schedule. Every occurrence may become
// one maintenance reservation, and a daily interval reaches the cap after
// about 27 years.
const MaxOccurrences = 10000

// Occurrences returns the number of dates [GenerateSchedule] yields for the
// given bounds. intervalDays must be positive.
func Occurrences(first models.Date, intervalDays int, endOfLife models.Date) int {
	if first.After(endOfLife) {
		return 0
	}
	return first.DaysUntil(endOfLife)/intervalDays + 1
}

// NextOccurrence returns the soonest occurrence of the schedule that falls on
// or after from. ok is false when the schedule has no occurrence left before
// endOfLife.
func NextOccurrence(first models.Date, intervalDays int, endOfLife, from models.Date) (next models.Date, ok bool, err error) {
	if intervalDays <= 0 {
		return models.Date{}, false, ErrNonPositiveInterval
	}
	if first.IsZero() || endOfLife.IsZero() {
		return models.Date{}, false, ErrZeroDate
	}

	next = first
	if from.After(first) {
		steps := first.DaysUntil(from) / intervalDays
		next = first.AddDays(steps * intervalDays)
		if next.Before(from) {
			next = next.AddDays(intervalDays)
		}
	}

	if next.After(endOfLife) {
		return models.Date{}, false, nil
	}
	return next, true, nil
}

// Advance rolls the forward-looking maintenance pointer by one interval.
// A zero pointer is treated as first, so the result is first+interval.
// Past occurrences are not affected.
func Advance(next, first models.Date, intervalDays int) (models.Date, error) {
	if intervalDays <= 0 {
		return models.Date{}, ErrNonPositiveInterval
	}
	if next.IsZero() {
		next = first
	}
	return next.AddDays(intervalDays), nil
}

package maintenance

import "errors"

var (
	// ErrNonPositiveInterval is returned when the maintenance interval is
	// zero or negative. Such a schedule would never reach its end date.
	ErrNonPositiveInterval = errors.New("maintenance interval must be a positive number of days")

	// ErrZeroDate is returned when a schedule bound is not set.
	ErrZeroDate = errors.New("schedule dates must be set")

	// ErrScheduleTooLong is returned when a schedule would exceed
	// [MaxOccurrences] dates.
	ErrScheduleTooLong = errors.New("maintenance schedule has too many occurrences before end of life")
)

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyUserID           = errors.New("user id is required")
	ErrEmptyName             = errors.New("name is required")
	ErrEmptyDeviceName       = errors.New("device name is required")
	ErrEmptyResponsibleUser  = errors.New("responsible user is required")
	ErrInvalidInterval       = errors.New("maintenance interval must be a positive number of days")
	ErrMissingDate           = errors.New("date is required")
	ErrFirstAfterEndOfLife   = errors.New("first maintenance must not be after end of life")
	ErrScheduleTooLong       = errors.New("maintenance interval is too short for the time until end of life")
	ErrInvalidCost           = errors.New("maintenance cost must not be negative")
	ErrEmptyDeviceID         = errors.New("device is required")
	ErrEmptyReserver         = errors.New("reserver is required")
	ErrReservedReserverName  = errors.New("reserver name is reserved for maintenance")
	ErrEndBeforeStart        = errors.New("end date must not be before start date")
	ErrEmptyReservationRange = errors.New("start and end date are required")
)

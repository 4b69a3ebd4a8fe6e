package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service that the user can act on
// matches exactly one of them with errors.Is.
var (
	// ErrValidation marks a request rejected because of its content.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a request naming a record that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguousMatch marks a lookup by name that matched more than one
	// record.
	ErrAmbiguousMatch = errors.New("ambiguous match")
)

// Specific causes, joined with a kind.
var (
	ErrUserAlreadyExists           = errors.New("a user with this id already exists")
	ErrDeviceNameTaken             = errors.New("a device with this name already exists")
	ErrUnknownResponsibleUser      = errors.New("responsible user does not exist")
	ErrUnknownDevice               = errors.New("device does not exist")
	ErrReservationOverlap          = errors.New("device is already reserved in this period")
	ErrMaintenanceAlreadyScheduled = errors.New("maintenance is already scheduled")
	ErrNoUpcomingMaintenance       = errors.New("no maintenance left before end of life")
	ErrUnsupportedSnapshotFormat   = errors.New("unsupported snapshot format")
)

func validationError(cause error) error {
	return fmt.Errorf("%w: %w", ErrValidation, cause)
}

func notFoundError(cause error) error {
	return fmt.Errorf("%w: %w", ErrNotFound, cause)
}

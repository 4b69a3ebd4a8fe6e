package validators

import (
	"context"
	"math"
	"strings"

	"github.com/nJurisch/equipment-pool/internal/maintenance"
	"github.com/nJurisch/equipment-pool/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldUserID targets the user's primary key (e-mail by convention).
	FieldUserID = "user_id"

	// FieldName targets the user's display name.
	FieldName = "name"

	// FieldDeviceName targets the unique device name.
	FieldDeviceName = "device_name"

	// FieldManagedBy targets the responsible user reference of a device.
	FieldManagedBy = "managed_by_user_id"

	// FieldMaintenanceInterval targets the interval in days.
	FieldMaintenanceInterval = "maintenance_interval"

	// FieldMaintenanceWindow checks that first maintenance and end of life
	// are set and ordered, and that the schedule between them stays within
	// maintenance.MaxOccurrences.
	FieldMaintenanceWindow = "maintenance_window"

	// FieldMaintenanceCost targets the per-event maintenance cost.
	FieldMaintenanceCost = "maintenance_cost"

	// FieldDeviceID targets the device reference of a reservation.
	FieldDeviceID = "device_id"

	// FieldReserver targets the free-text reserver of a user booking.
	// Maintenance bookings skip it: they carry the reserved sentinel name.
	FieldReserver = "reserver"

	// FieldDateRange checks that a reservation's dates are set and ordered.
	FieldDateRange = "date_range"
)

// RecordValidator implements the Validator interface for the pool records:
// User, DeviceInput, Device and Reservation.
//
// It supports both value and pointer forms of every model type and allows
// optional field-level scoping via variadic field name arguments. Checks
// that need the store (existence, uniqueness, overlap) belong to the
// services.
type RecordValidator struct {
}

// NewRecordValidator constructs a new RecordValidator and returns it as the
// Validator interface.
func NewRecordValidator() Validator {
	return &RecordValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj.
//
// Returns ErrUnsupportedType if obj does not match any known model.
func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)

	case models.DeviceInput:
		return v.validateDeviceInput(ctx, value, fields...)
	case *models.DeviceInput:
		return v.validateDeviceInput(ctx, *value, fields...)

	case models.Device:
		return v.validateDeviceInput(ctx, deviceInputOf(value), fields...)
	case *models.Device:
		return v.validateDeviceInput(ctx, deviceInputOf(*value), fields...)

	case models.Reservation:
		return v.validateReservation(ctx, value, fields...)
	case *models.Reservation:
		return v.validateReservation(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func deviceInputOf(d models.Device) models.DeviceInput {
	return models.DeviceInput{
		Name:                d.Name,
		ManagedByUserID:     d.ManagedByUserID,
		EndOfLife:           d.EndOfLife,
		MaintenanceInterval: d.MaintenanceInterval,
		FirstMaintenance:    d.FirstMaintenance,
		MaintenanceCost:     d.MaintenanceCost,
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// validateUser validates a User.
//
// Default validated fields: FieldUserID, FieldName.
func (v *RecordValidator) validateUser(_ context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldName}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if blank(user.ID) {
				return ErrEmptyUserID
			}
		case FieldName:
			if blank(user.Name) {
				return ErrEmptyName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateDeviceInput validates the user supplied part of a device.
//
// Default validated fields: every device field.
func (v *RecordValidator) validateDeviceInput(_ context.Context, in models.DeviceInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDeviceName, FieldManagedBy, FieldMaintenanceInterval, FieldMaintenanceWindow, FieldMaintenanceCost}
	}

	for _, f := range fields {
		switch f {
		case FieldDeviceName:
			if blank(in.Name) {
				return ErrEmptyDeviceName
			}
		case FieldManagedBy:
			if blank(in.ManagedByUserID) {
				return ErrEmptyResponsibleUser
			}
		case FieldMaintenanceInterval:
			if in.MaintenanceInterval <= 0 {
				return ErrInvalidInterval
			}
		case FieldMaintenanceWindow:
			if in.FirstMaintenance.IsZero() || in.EndOfLife.IsZero() {
				return ErrMissingDate
			}
			if in.FirstMaintenance.After(in.EndOfLife) {
				return ErrFirstAfterEndOfLife
			}
			if in.MaintenanceInterval > 0 &&
				maintenance.Occurrences(in.FirstMaintenance, in.MaintenanceInterval, in.EndOfLife) > maintenance.MaxOccurrences {
				return ErrScheduleTooLong
			}
		case FieldMaintenanceCost:
			if in.MaintenanceCost < 0 || math.IsNaN(in.MaintenanceCost) || math.IsInf(in.MaintenanceCost, 0) {
				return ErrInvalidCost
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateReservation validates a Reservation.
//
// Default validated fields: FieldDeviceID, FieldReserver, FieldDateRange.
func (v *RecordValidator) validateReservation(_ context.Context, r models.Reservation, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDeviceID, FieldReserver, FieldDateRange}
	}

	for _, f := range fields {
		switch f {
		case FieldDeviceID:
			if blank(r.DeviceID) {
				return ErrEmptyDeviceID
			}
		case FieldReserver:
			if blank(r.Reserver) {
				return ErrEmptyReserver
			}
			if strings.EqualFold(strings.TrimSpace(r.Reserver), models.MaintenanceReserver) {
				return ErrReservedReserverName
			}
		case FieldDateRange:
			if r.StartDate.IsZero() || r.EndDate.IsZero() {
				return ErrEmptyReservationRange
			}
			if r.EndDate.Before(r.StartDate) {
				return ErrEndBeforeStart
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

package models

import "time"

// MaintenanceReserver is the sentinel reserver of system-generated
// maintenance bookings. Users cannot book under this name.
const MaintenanceReserver = "Maintenance"

// UnknownDeviceName is shown in place of the device name for reservations
// whose device no longer exists.
const UnknownDeviceName = "unknown"

// Reservation is a booking of a device for an inclusive range of days.
type Reservation struct {
	// ID is the opaque primary key; deletion is always by ID.
	ID string `json:"id" yaml:"id"`

	// DeviceID references [Device.ID].
	DeviceID string `json:"device_id" yaml:"device_id"`

	// Reserver is free text, or [MaintenanceReserver] for maintenance slots.
	Reserver string `json:"reserver" yaml:"reserver"`

	StartDate Date `json:"start_date" yaml:"start_date"`
	EndDate   Date `json:"end_date" yaml:"end_date"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// TableName returns the name of the table holding reservations.
func (r Reservation) TableName() string {
	return "reservations"
}

// IsMaintenance reports whether r was generated by the maintenance
// scheduler.
func (r Reservation) IsMaintenance() bool {
	return r.Reserver == MaintenanceReserver
}

// Overlaps reports whether r and other share at least one day. Bounds are
// inclusive on both ends.
func (r Reservation) Overlaps(other Reservation) bool {
	return !r.StartDate.After(other.EndDate) && !other.StartDate.After(r.EndDate)
}

// ReservationView is a reservation joined with the name of its device.
type ReservationView struct {
	Reservation

	// DeviceName is [UnknownDeviceName] when the device was deleted.
	DeviceName string `json:"device_name" yaml:"device_name"`
}

// ReservationFilter narrows reservation listings. Zero value matches all.
type ReservationFilter struct {
	DeviceID        string
	MaintenanceOnly bool
}

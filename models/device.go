package models

import "time"

// Device is a piece of pool equipment together with the definition of its
// recurring maintenance schedule.
type Device struct {
	// ID is the opaque primary key assigned on creation. It never changes,
	// unlike Name.
	ID string `json:"id" yaml:"id"`

	// Name is the human readable device name. Unique across devices.
	Name string `json:"device_name" yaml:"device_name"`

	// ManagedByUserID references the responsible [User.ID]. The reference is
	// checked on creation and reassignment only; deleting the user leaves it
	// dangling.
	ManagedByUserID string `json:"managed_by_user_id" yaml:"managed_by_user_id"`

	// EndOfLife is the retirement date. No maintenance is scheduled after it.
	EndOfLife Date `json:"end_of_life" yaml:"end_of_life"`

	// MaintenanceInterval is the number of days between two maintenance
	// events. Always positive for stored devices.
	MaintenanceInterval int `json:"maintenance_interval" yaml:"maintenance_interval"`

	// FirstMaintenance is the first occurrence of the schedule.
	FirstMaintenance Date `json:"first_maintenance" yaml:"first_maintenance"`

	// NextMaintenance is the forward-looking pointer rolled by one interval
	// each time a maintenance event is marked as done.
	NextMaintenance Date `json:"next_maintenance" yaml:"next_maintenance"`

	// MaintenanceCost is the cost of a single maintenance event.
	MaintenanceCost float64 `json:"maintenance_cost" yaml:"maintenance_cost"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// TableName returns the name of the table holding devices.
func (d Device) TableName() string {
	return "devices"
}

// DeviceInput carries the user supplied fields of a new device.
type DeviceInput struct {
	Name                string
	ManagedByUserID     string
	EndOfLife           Date
	MaintenanceInterval int
	FirstMaintenance    Date
	MaintenanceCost     float64
}

// ReservePolicy selects which maintenance occurrences are booked when a
// device is registered.
type ReservePolicy int

const (
	// ReserveNext books only the soonest upcoming occurrence.
	ReserveNext ReservePolicy = iota

	// ReserveAll books every occurrence up to the device's end of life.
	ReserveAll

	// ReserveNone books nothing.
	ReserveNone
)

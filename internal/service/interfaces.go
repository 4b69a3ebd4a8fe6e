package service

import (
	"context"
	"io"

	"github.com/nJurisch/equipment-pool/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// UserService is the user registry.
type UserService interface {
	Create(ctx context.Context, id, name string) (models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id string) (models.User, error)
	Delete(ctx context.Context, id string) error
}

// DeviceService is the device registry. Creating a device books its
// maintenance according to a [models.ReservePolicy] in the same transaction.
type DeviceService interface {
	Create(ctx context.Context, in models.DeviceInput, policy models.ReservePolicy) (models.Device, []models.Reservation, error)
	ListAll(ctx context.Context) ([]models.Device, error)
	Get(ctx context.Context, id string) (models.Device, error)
	FindByName(ctx context.Context, name string) (models.Device, error)
	UpdateResponsibleUser(ctx context.Context, deviceID, userID string) (models.Device, error)
	Delete(ctx context.Context, deviceID string) error
}

// ReservationService is the reservation ledger.
type ReservationService interface {
	Create(ctx context.Context, deviceID, reserver string, start, end models.Date) (models.Reservation, error)
	List(ctx context.Context, filter models.ReservationFilter) ([]models.ReservationView, error)
	ListAll(ctx context.Context) ([]models.ReservationView, error)
	ListForDevice(ctx context.Context, deviceID string) ([]models.ReservationView, error)
	ListMaintenanceOnly(ctx context.Context) ([]models.ReservationView, error)
	Delete(ctx context.Context, reservationID string) error
}

// MaintenanceService turns device schedules into maintenance bookings and
// estimates their cost.
type MaintenanceService interface {
	MaterializeAll(ctx context.Context, deviceID string) ([]models.Reservation, error)
	MaterializeNext(ctx context.Context, deviceID string) (models.Reservation, error)
	Advance(ctx context.Context, deviceID string) (models.Device, error)
	Schedule(ctx context.Context, deviceID string) ([]models.Date, error)
	ListMaintenance(ctx context.Context) ([]models.ReservationView, error)
	CostReport(ctx context.Context) (models.CostReport, error)
}

// SnapshotService dumps the whole store as one document.
type SnapshotService interface {
	Snapshot(ctx context.Context) (models.Snapshot, error)
	Export(ctx context.Context, w io.Writer, format models.SnapshotFormat) error
}

package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/nJurisch/equipment-pool/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Transactor runs a unit of work atomically. Repository calls made with the
// context handed to fn join the transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository is the low-level store of [models.User] records.
type UserRepository interface {
	Insert(ctx context.Context, user models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	RemoveByID(ctx context.Context, id string) error
}

// DeviceRepository is the low-level store of [models.Device] records.
type DeviceRepository interface {
	Insert(ctx context.Context, device models.Device) (models.Device, error)
	GetByID(ctx context.Context, id string) (models.Device, error)
	FindAll(ctx context.Context) ([]models.Device, error)
	Find(ctx context.Context, where sq.Sqlizer) ([]models.Device, error)
	Update(ctx context.Context, device models.Device) (models.Device, error)
	RemoveByID(ctx context.Context, id string) error
}

// ReservationRepository is the low-level store of [models.Reservation]
// records.
type ReservationRepository interface {
	Insert(ctx context.Context, reservation models.Reservation) (models.Reservation, error)
	GetByID(ctx context.Context, id string) (models.Reservation, error)
	Find(ctx context.Context, where sq.Sqlizer) ([]models.Reservation, error)
	FindOverlapping(ctx context.Context, deviceID string, start, end models.Date) ([]models.Reservation, error)
	FindViews(ctx context.Context, filter models.ReservationFilter) ([]models.ReservationView, error)
	Remove(ctx context.Context, where sq.Sqlizer) (int64, error)
	RemoveByID(ctx context.Context, id string) error
	RemoveByDevice(ctx context.Context, deviceID string) (int64, error)
}

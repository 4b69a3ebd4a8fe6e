package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nJurisch/equipment-pool/internal/logger"
	"github.com/nJurisch/equipment-pool/internal/mock"
	"github.com/nJurisch/equipment-pool/internal/store"
	"github.com/nJurisch/equipment-pool/internal/utils"
	"github.com/nJurisch/equipment-pool/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// mockedStorages bundles gomock repositories behind a *store.Storages.
type mockedStorages struct {
	storages     *store.Storages
	transactor   *mock.MockTransactor
	users        *mock.MockUserRepository
	devices      *mock.MockDeviceRepository
	reservations *mock.MockReservationRepository
}

func newMockedStorages(ctrl *gomock.Controller) mockedStorages {
	m := mockedStorages{
		transactor:   mock.NewMockTransactor(ctrl),
		users:        mock.NewMockUserRepository(ctrl),
		devices:      mock.NewMockDeviceRepository(ctrl),
		reservations: mock.NewMockReservationRepository(ctrl),
	}
	m.storages = &store.Storages{
		Transactor:            m.transactor,
		UserRepository:        m.users,
		DeviceRepository:      m.devices,
		ReservationRepository: m.reservations,
	}
	return m
}

// passThroughTx makes the mocked transactor simply run fn.
func (m mockedStorages) passThroughTx() {
	m.transactor.EXPECT().
		WithinTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).
		AnyTimes()
}

func fixedClock(day string) utils.FixedClock {
	return utils.FixedClock{At: models.MustParseDate(day).Time().Add(9 * time.Hour)}
}

// newSQLiteServices wires the full service layer to a fresh database file.
func newSQLiteServices(t *testing.T, today string) *Services {
	t.Helper()
	return newSQLiteServicesWithIDs(t, today, utils.NewUUIDGenerator())
}

func newSQLiteServicesWithIDs(t *testing.T, today string, ids utils.IDGenerator) *Services {
	t.Helper()

	storages, err := store.NewStorages(context.Background(), filepath.Join(t.TempDir(), "pool.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	return NewServices(storages, ids, fixedClock(today), logger.Nop())
}

func mustCreateUser(t *testing.T, svc *Services, id, name string) models.User {
	t.Helper()
	u, err := svc.UserService.Create(context.Background(), id, name)
	require.NoError(t, err)
	return u
}

func quarterlyDevice(name, owner string) models.DeviceInput {
	return models.DeviceInput{
		Name:                name,
		ManagedByUserID:     owner,
		EndOfLife:           models.MustParseDate("2024-12-31"),
		MaintenanceInterval: 90,
		FirstMaintenance:    models.MustParseDate("2024-01-01"),
		MaintenanceCost:     120,
	}
}

func startDates(items []models.Reservation) []string {
	out := make([]string, 0, len(items))
	for _, r := range items {
		out = append(out, r.StartDate.String())
	}
	return out
}

func viewStartDates(items []models.ReservationView) []string {
	out := make([]string, 0, len(items))
	for _, v := range items {
		out = append(out, v.StartDate.String())
	}
	return out
}

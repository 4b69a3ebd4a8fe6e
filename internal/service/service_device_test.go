package service

import (
	"context"
	"errors"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/nJurisch/equipment-pool/internal/logger"
	"github.com/nJurisch/equipment-pool/internal/mock"
	"github.com/nJurisch/equipment-pool/internal/store"
	"github.com/nJurisch/equipment-pool/internal/validators"
	"github.com/nJurisch/equipment-pool/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestDeviceSvc(t *testing.T, ctrl *gomock.Controller) (*deviceService, mockedStorages, *mock.MockIDGenerator) {
	t.Helper()
	m := newMockedStorages(ctrl)
	ids := mock.NewMockIDGenerator(ctrl)
	clock := fixedClock("2024-01-01")

	maintenanceSvc := newMaintenanceService(m.storages, ids, clock, logger.Nop())
	svc := newDeviceService(m.storages, maintenanceSvc, validators.NewRecordValidator(), ids, clock, logger.Nop())
	return svc, m, ids
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestDeviceService_Create_InvalidInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestDeviceSvc(t, ctrl)

	tests := []struct {
		name    string
		mutate  func(in *models.DeviceInput)
		wantErr error
	}{
		{name: "empty name", mutate: func(in *models.DeviceInput) { in.Name = "  " }, wantErr: validators.ErrEmptyDeviceName},
		{name: "zero interval", mutate: func(in *models.DeviceInput) { in.MaintenanceInterval = 0 }, wantErr: validators.ErrInvalidInterval},
		{name: "negative interval", mutate: func(in *models.DeviceInput) { in.MaintenanceInterval = -7 }, wantErr: validators.ErrInvalidInterval},
		{name: "first after end of life", mutate: func(in *models.DeviceInput) {
			in.FirstMaintenance = models.MustParseDate("2025-01-01")
		}, wantErr: validators.ErrFirstAfterEndOfLife},
		{name: "negative cost", mutate: func(in *models.DeviceInput) { in.MaintenanceCost = -1 }, wantErr: validators.ErrInvalidCost},
		{name: "daily for millennia", mutate: func(in *models.DeviceInput) {
			in.MaintenanceInterval = 1
			in.EndOfLife = models.MustParseDate("4024-12-31")
		}, wantErr: validators.ErrScheduleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := quarterlyDevice("Microscope", "ada@example.org")
			tt.mutate(&in)

			_, _, err := svc.Create(context.Background(), in, models.ReserveAll)
			require.ErrorIs(t, err, ErrValidation)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDeviceService_Create_UnknownResponsibleUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, ids := newTestDeviceSvc(t, ctrl)
	m.passThroughTx()

	ids.EXPECT().Generate().Return("dev-1")
	m.users.EXPECT().GetByID(gomock.Any(), "ghost@example.org").Return(models.User{}, store.ErrUserNotFound)

	_, _, err := svc.Create(context.Background(), quarterlyDevice("Microscope", "ghost@example.org"), models.ReserveNone)
	require.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrUnknownResponsibleUser)
}

func TestDeviceService_Create_NameTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, ids := newTestDeviceSvc(t, ctrl)
	m.passThroughTx()

	ids.EXPECT().Generate().Return("dev-2")
	m.users.EXPECT().GetByID(gomock.Any(), "ada@example.org").Return(models.User{ID: "ada@example.org"}, nil)
	m.devices.EXPECT().
		Find(gomock.Any(), sq.Eq{"device_name": "Microscope"}).
		Return([]models.Device{{ID: "dev-1", Name: "Microscope"}}, nil)

	_, _, err := svc.Create(context.Background(), quarterlyDevice(" Microscope ", "ada@example.org"), models.ReserveNone)
	require.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrDeviceNameTaken)
}

func TestDeviceService_Create_ReserveNone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, ids := newTestDeviceSvc(t, ctrl)
	m.passThroughTx()

	ids.EXPECT().Generate().Return("dev-1")
	m.users.EXPECT().GetByID(gomock.Any(), "ada@example.org").Return(models.User{ID: "ada@example.org"}, nil)
	m.devices.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.devices.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d models.Device) (models.Device, error) {
			assert.Equal(t, "dev-1", d.ID)
			assert.True(t, d.NextMaintenance.Equal(d.FirstMaintenance))
			return d, nil
		},
	)

	device, booked, err := svc.Create(context.Background(), quarterlyDevice("Microscope", "ada@example.org"), models.ReserveNone)
	require.NoError(t, err)
	assert.Equal(t, "dev-1", device.ID)
	assert.Empty(t, booked)
}

func TestDeviceService_Create_TransactionErrorIsReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, ids := newTestDeviceSvc(t, ctrl)

	ids.EXPECT().Generate().Return("dev-1")
	m.transactor.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).Return(store.ErrBeginningTransaction)

	_, _, err := svc.Create(context.Background(), quarterlyDevice("Microscope", "ada@example.org"), models.ReserveAll)
	require.ErrorIs(t, err, store.ErrBeginningTransaction)
}

// ── Lookups and updates ──────────────────────────────────────────────────────

func TestDeviceService_FindByName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, _ := newTestDeviceSvc(t, ctrl)
	ctx := context.Background()

	m.devices.EXPECT().Find(ctx, sq.Eq{"device_name": "Microscope"}).Return([]models.Device{{ID: "d1"}}, nil)
	m.devices.EXPECT().Find(ctx, sq.Eq{"device_name": "Nothing"}).Return([]models.Device{}, nil)
	m.devices.EXPECT().Find(ctx, sq.Eq{"device_name": "Twin"}).Return([]models.Device{{ID: "a"}, {ID: "b"}}, nil)
	m.devices.EXPECT().Find(ctx, sq.Eq{"device_name": "Broken"}).Return(nil, store.ErrStoreBusy)

	got, err := svc.FindByName(ctx, "  Microscope ")
	require.NoError(t, err)
	assert.Equal(t, "d1", got.ID)

	_, err = svc.FindByName(ctx, "Nothing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.FindByName(ctx, "Twin")
	assert.ErrorIs(t, err, ErrAmbiguousMatch)

	_, err = svc.FindByName(ctx, "Broken")
	assert.ErrorIs(t, err, store.ErrStoreBusy)
}

func TestDeviceService_UpdateResponsibleUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, _ := newTestDeviceSvc(t, ctrl)
	m.passThroughTx()
	ctx := context.Background()

	device := models.Device{ID: "d1", Name: "Microscope", ManagedByUserID: "ada@example.org"}

	m.devices.EXPECT().GetByID(gomock.Any(), "d1").Return(device, nil).Times(2)
	m.users.EXPECT().GetByID(gomock.Any(), "ghost@example.org").Return(models.User{}, store.ErrUserNotFound)
	m.users.EXPECT().GetByID(gomock.Any(), "bob@example.org").Return(models.User{ID: "bob@example.org"}, nil)
	m.devices.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d models.Device) (models.Device, error) {
			assert.Equal(t, "bob@example.org", d.ManagedByUserID)
			return d, nil
		},
	)

	_, err := svc.UpdateResponsibleUser(ctx, "d1", "ghost@example.org")
	require.ErrorIs(t, err, ErrUnknownResponsibleUser)

	updated, err := svc.UpdateResponsibleUser(ctx, "d1", " bob@example.org")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.org", updated.ManagedByUserID)

	_, err = svc.UpdateResponsibleUser(ctx, "d1", "")
	assert.ErrorIs(t, err, validators.ErrEmptyResponsibleUser)
}

func TestDeviceService_Delete_RemovesReservationsInSameTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, _ := newTestDeviceSvc(t, ctrl)
	ctx := context.Background()

	m.transactor.EXPECT().WithinTransaction(ctx, gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
	gomock.InOrder(
		m.devices.EXPECT().RemoveByID(ctx, "d1").Return(nil),
		m.reservations.EXPECT().RemoveByDevice(ctx, "d1").Return(int64(3), nil),
	)

	require.NoError(t, svc.Delete(ctx, "d1"))
}

func TestDeviceService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, _ := newTestDeviceSvc(t, ctrl)
	m.passThroughTx()

	m.devices.EXPECT().RemoveByID(gomock.Any(), "ghost").Return(store.ErrDeviceNotFound)

	err := svc.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── Against SQLite ───────────────────────────────────────────────────────────

func TestDeviceService_RoundTrip(t *testing.T) {
	svc := newSQLiteServices(t, "2024-01-01")
	ctx := context.Background()
	mustCreateUser(t, svc, "ada@example.org", "Ada")

	in := quarterlyDevice("Microscope", "ada@example.org")
	created, _, err := svc.DeviceService.Create(ctx, in, models.ReserveNone)
	require.NoError(t, err)

	got, err := svc.DeviceService.Get(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.ManagedByUserID, got.ManagedByUserID)
	assert.Equal(t, in.MaintenanceInterval, got.MaintenanceInterval)
	assert.InDelta(t, in.MaintenanceCost, got.MaintenanceCost, 1e-9)
	assert.Equal(t, "2024-12-31", got.EndOfLife.String())
	assert.Equal(t, "2024-01-01", got.FirstMaintenance.String())
	assert.Equal(t, "2024-01-01", got.NextMaintenance.String())

	byName, err := svc.DeviceService.FindByName(ctx, "Microscope")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
}

func TestDeviceService_Create_ReserveAllBooksWholeHorizon(t *testing.T) {
	svc := newSQLiteServices(t, "2024-01-01")
	ctx := context.Background()
	mustCreateUser(t, svc, "ada@example.org", "Ada")

	device, booked, err := svc.DeviceService.Create(ctx, quarterlyDevice("Microscope", "ada@example.org"), models.ReserveAll)
	require.NoError(t, err)

	want := []string{"2024-01-01", "2024-03-31", "2024-06-29", "2024-09-27", "2024-12-26"}
	assert.Equal(t, want, startDates(booked))

	views, err := svc.ReservationService.ListForDevice(ctx, device.ID)
	require.NoError(t, err)
	assert.Equal(t, want, viewStartDates(views))
	for _, v := range views {
		assert.True(t, v.IsMaintenance())
		assert.Equal(t, "Microscope", v.DeviceName)
		assert.True(t, v.StartDate.Equal(v.EndDate))
	}
}

func TestDeviceService_Create_ReserveNextBooksSoonest(t *testing.T) {
	svc := newSQLiteServices(t, "2024-05-01")
	ctx := context.Background()
	mustCreateUser(t, svc, "ada@example.org", "Ada")

	_, booked, err := svc.DeviceService.Create(ctx, quarterlyDevice("Microscope", "ada@example.org"), models.ReserveNext)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-29"}, startDates(booked))
}

func TestDeviceService_Create_ReserveNextAfterEndOfLife(t *testing.T) {
	svc := newSQLiteServices(t, "2025-06-01")
	ctx := context.Background()
	mustCreateUser(t, svc, "ada@example.org", "Ada")

	device, booked, err := svc.DeviceService.Create(ctx, quarterlyDevice("Retired", "ada@example.org"), models.ReserveNext)
	require.NoError(t, err)
	assert.Empty(t, booked)

	_, err = svc.MaintenanceService.MaterializeNext(ctx, device.ID)
	require.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrNoUpcomingMaintenance)
}

func TestDeviceService_Create_DuplicateName(t *testing.T) {
	svc := newSQLiteServices(t, "2024-01-01")
	ctx := context.Background()
	mustCreateUser(t, svc, "ada@example.org", "Ada")

	_, _, err := svc.DeviceService.Create(ctx, quarterlyDevice("Microscope", "ada@example.org"), models.ReserveNone)
	require.NoError(t, err)

	_, _, err = svc.DeviceService.Create(ctx, quarterlyDevice("Microscope", "ada@example.org"), models.ReserveAll)
	require.ErrorIs(t, err, ErrDeviceNameTaken)

	devices, err := svc.DeviceService.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, devices, 1)
}

// A booking failure after the device row was written must undo the insert.
func TestDeviceService_Create_RollsBackOnBookingFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ids := mock.NewMockIDGenerator(ctrl)
	gomock.InOrder(
		ids.EXPECT().Generate().Return("dev-1"),
		ids.EXPECT().Generate().Return("res-duplicate").AnyTimes(),
	)

	svc := newSQLiteServicesWithIDs(t, "2024-01-01", ids)
	ctx := context.Background()

	_, err := svc.UserService.Create(ctx, "ada@example.org", "Ada")
	require.NoError(t, err)

	_, _, err = svc.DeviceService.Create(ctx, quarterlyDevice("Microscope", "ada@example.org"), models.ReserveAll)
	require.Error(t, err)

	devices, err := svc.DeviceService.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, devices)

	_, err = svc.DeviceService.FindByName(ctx, "Microscope")
	assert.ErrorIs(t, err, ErrNotFound)

	views, err := svc.ReservationService.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestDeviceService_Delete_CascadesReservations(t *testing.T) {
	svc := newSQLiteServices(t, "2024-01-01")
	ctx := context.Background()
	mustCreateUser(t, svc, "ada@example.org", "Ada")

	doomed, _, err := svc.DeviceService.Create(ctx, quarterlyDevice("Microscope", "ada@example.org"), models.ReserveAll)
	require.NoError(t, err)
	kept, _, err := svc.DeviceService.Create(ctx, quarterlyDevice("Centrifuge", "ada@example.org"), models.ReserveNone)
	require.NoError(t, err)
	_, err = svc.ReservationService.Create(ctx, kept.ID, "Bob", models.MustParseDate("2024-02-01"), models.MustParseDate("2024-02-03"))
	require.NoError(t, err)

	require.NoError(t, svc.DeviceService.Delete(ctx, doomed.ID))

	_, err = svc.DeviceService.Get(ctx, doomed.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	orphaned, err := svc.ReservationService.ListForDevice(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Empty(t, orphaned)

	all, err := svc.ReservationService.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, kept.ID, all[0].DeviceID)

	err = svc.DeviceService.Delete(ctx, doomed.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

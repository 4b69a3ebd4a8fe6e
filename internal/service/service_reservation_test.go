package service

import (
	"context"
	"testing"

	"github.com/nJurisch/equipment-pool/internal/logger"
	"github.com/nJurisch/equipment-pool/internal/mock"
	"github.com/nJurisch/equipment-pool/internal/store"
	"github.com/nJurisch/equipment-pool/internal/validators"
	"github.com/nJurisch/equipment-pool/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestReservationSvc(t *testing.T, ctrl *gomock.Controller) (ReservationService, mockedStorages, *mock.MockValidator, *mock.MockIDGenerator) {
	t.Helper()
	m := newMockedStorages(ctrl)
	validator := mock.NewMockValidator(ctrl)
	ids := mock.NewMockIDGenerator(ctrl)

	svc := NewReservationService(m.storages, validator, ids, fixedClock("2024-01-01"), logger.Nop())
	return svc, m, validator, ids
}

var (
	may10 = models.MustParseDate("2024-05-10")
	may12 = models.MustParseDate("2024-05-12")
)

func TestReservationService_Create_ValidationStopsEarly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, validator, ids := newTestReservationSvc(t, ctrl)

	ids.EXPECT().Generate().Return("r1")
	validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(validators.ErrEndBeforeStart)

	_, err := svc.Create(context.Background(), "d1", "Bob", may12, may10)
	require.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, validators.ErrEndBeforeStart)
}

func TestReservationService_Create_UnknownDevice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, validator, ids := newTestReservationSvc(t, ctrl)
	m.passThroughTx()

	ids.EXPECT().Generate().Return("r1")
	validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)
	m.devices.EXPECT().GetByID(gomock.Any(), "ghost").Return(models.Device{}, store.ErrDeviceNotFound)

	_, err := svc.Create(context.Background(), "ghost", "Bob", may10, may12)
	require.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrUnknownDevice)
}

func TestReservationService_Create_Overlap(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, validator, ids := newTestReservationSvc(t, ctrl)
	m.passThroughTx()

	ids.EXPECT().Generate().Return("r2")
	validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)
	m.devices.EXPECT().GetByID(gomock.Any(), "d1").Return(models.Device{ID: "d1"}, nil)
	m.reservations.EXPECT().
		FindOverlapping(gomock.Any(), "d1", may10, may12).
		Return([]models.Reservation{{ID: "r1", DeviceID: "d1"}}, nil)

	_, err := svc.Create(context.Background(), "d1", "Bob", may10, may12)
	require.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrReservationOverlap)
}

func TestReservationService_Create_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, validator, ids := newTestReservationSvc(t, ctrl)
	m.passThroughTx()

	ids.EXPECT().Generate().Return("r2")
	validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)
	m.devices.EXPECT().GetByID(gomock.Any(), "d1").Return(models.Device{ID: "d1"}, nil)
	m.reservations.EXPECT().FindOverlapping(gomock.Any(), "d1", may10, may12).Return(nil, nil)
	m.reservations.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r models.Reservation) (models.Reservation, error) {
			assert.Equal(t, "r2", r.ID)
			assert.Equal(t, "Bob", r.Reserver)
			return r, nil
		},
	)

	got, err := svc.Create(context.Background(), " d1", " Bob ", may10, may12)
	require.NoError(t, err)
	assert.Equal(t, "r2", got.ID)
}

func TestReservationService_Lists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, _, _ := newTestReservationSvc(t, ctrl)
	ctx := context.Background()

	m.reservations.EXPECT().FindViews(ctx, models.ReservationFilter{}).Return(nil, nil)
	m.reservations.EXPECT().FindViews(ctx, models.ReservationFilter{DeviceID: "d1"}).Return(nil, nil)
	m.reservations.EXPECT().FindViews(ctx, models.ReservationFilter{MaintenanceOnly: true}).Return(nil, store.ErrStoreBusy)

	_, err := svc.ListAll(ctx)
	require.NoError(t, err)
	_, err = svc.ListForDevice(ctx, "d1")
	require.NoError(t, err)
	_, err = svc.ListMaintenanceOnly(ctx)
	assert.ErrorIs(t, err, store.ErrStoreBusy)
}

func TestReservationService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, _, _ := newTestReservationSvc(t, ctrl)
	m.reservations.EXPECT().RemoveByID(gomock.Any(), "ghost").Return(store.ErrReservationNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), "ghost"), ErrNotFound)
}

// ── Against SQLite ───────────────────────────────────────────────────────────

func TestReservationService_EndBeforeStart(t *testing.T) {
	svc := newSQLiteServices(t, "2024-01-01")
	ctx := context.Background()
	mustCreateUser(t, svc, "ada@example.org", "Ada")
	device, _, err := svc.DeviceService.Create(ctx, quarterlyDevice("Microscope", "ada@example.org"), models.ReserveNone)
	require.NoError(t, err)

	_, err = svc.ReservationService.Create(ctx, device.ID, "Bob", may12, may10)
	require.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, validators.ErrEndBeforeStart)

	views, err := svc.ReservationService.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestReservationService_MaintenanceNameIsReserved(t *testing.T) {
	svc := newSQLiteServices(t, "2024-01-01")
	ctx := context.Background()
	mustCreateUser(t, svc, "ada@example.org", "Ada")
	device, _, err := svc.DeviceService.Create(ctx, quarterlyDevice("Microscope", "ada@example.org"), models.ReserveNone)
	require.NoError(t, err)

	_, err = svc.ReservationService.Create(ctx, device.ID, "maintenance", may10, may12)
	require.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, validators.ErrReservedReserverName)
}

func TestReservationService_OverlapRules(t *testing.T) {
	svc := newSQLiteServices(t, "2024-01-01")
	ctx := context.Background()
	mustCreateUser(t, svc, "ada@example.org", "Ada")

	microscope, _, err := svc.DeviceService.Create(ctx, quarterlyDevice("Microscope", "ada@example.org"), models.ReserveNone)
	require.NoError(t, err)
	centrifuge, _, err := svc.DeviceService.Create(ctx, quarterlyDevice("Centrifuge", "ada@example.org"), models.ReserveNone)
	require.NoError(t, err)

	_, err = svc.ReservationService.Create(ctx, microscope.ID, "Bob", may10, may12)
	require.NoError(t, err)

	tests := []struct {
		name       string
		deviceID   string
		start, end string
		overlaps   bool
	}{
		{name: "shares last day", deviceID: microscope.ID, start: "2024-05-12", end: "2024-05-14", overlaps: true},
		{name: "shares first day", deviceID: microscope.ID, start: "2024-05-01", end: "2024-05-10", overlaps: true},
		{name: "encloses", deviceID: microscope.ID, start: "2024-05-01", end: "2024-05-31", overlaps: true},
		{name: "day after", deviceID: microscope.ID, start: "2024-05-13", end: "2024-05-13", overlaps: false},
		{name: "other device same days", deviceID: centrifuge.ID, start: "2024-05-10", end: "2024-05-12", overlaps: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ReservationService.Create(ctx, tt.deviceID, "Carol", models.MustParseDate(tt.start), models.MustParseDate(tt.end))
			if tt.overlaps {
				require.ErrorIs(t, err, ErrReservationOverlap)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestReservationService_UserBookingClashesWithMaintenance(t *testing.T) {
	svc := newSQLiteServices(t, "2024-01-01")
	ctx := context.Background()
	mustCreateUser(t, svc, "ada@example.org", "Ada")
	device, _, err := svc.DeviceService.Create(ctx, quarterlyDevice("Microscope", "ada@example.org"), models.ReserveAll)
	require.NoError(t, err)

	_, err = svc.ReservationService.Create(ctx, device.ID, "Bob", models.MustParseDate("2024-03-30"), models.MustParseDate("2024-04-02"))
	assert.ErrorIs(t, err, ErrReservationOverlap)
}

func TestReservationService_Filters(t *testing.T) {
	svc := newSQLiteServices(t, "2024-01-01")
	ctx := context.Background()
	mustCreateUser(t, svc, "ada@example.org", "Ada")

	device, _, err := svc.DeviceService.Create(ctx, quarterlyDevice("Microscope", "ada@example.org"), models.ReserveAll)
	require.NoError(t, err)
	booking, err := svc.ReservationService.Create(ctx, device.ID, "Bob", may10, may12)
	require.NoError(t, err)

	all, err := svc.ReservationService.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"2024-01-01", "2024-03-31", "2024-05-10", "2024-06-29", "2024-09-27", "2024-12-26"},
		viewStartDates(all),
	)

	maintenanceOnly, err := svc.ReservationService.ListMaintenanceOnly(ctx)
	require.NoError(t, err)
	assert.Len(t, maintenanceOnly, 5)

	require.NoError(t, svc.ReservationService.Delete(ctx, booking.ID))
	assert.ErrorIs(t, svc.ReservationService.Delete(ctx, booking.ID), ErrNotFound)

	all, err = svc.ReservationService.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

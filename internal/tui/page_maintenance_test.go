package tui

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nJurisch/equipment-pool/internal/mock"
	"github.com/nJurisch/equipment-pool/internal/service"
	"github.com/nJurisch/equipment-pool/models"
)

func TestMaintenanceModel_ShowsCostsAndBooks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	device := models.Device{
		ID:                  "d1",
		Name:                "Microscope",
		MaintenanceInterval: 30,
		MaintenanceCost:     50,
		FirstMaintenance:    models.MustParseDate("2024-01-01"),
		NextMaintenance:     models.MustParseDate("2024-01-01"),
		EndOfLife:           models.MustParseDate("2024-12-31"),
	}
	report := models.CostReport{
		Devices: []models.DeviceCost{{DeviceID: "d1", AnnualEstimate: 608.3333}},
		Total:   608.3333,
	}

	maintenanceSvc := mock.NewMockMaintenanceService(ctrl)
	devices := mock.NewMockDeviceService(ctrl)
	devices.EXPECT().ListAll(gomock.Any()).Return([]models.Device{device}, nil).AnyTimes()
	maintenanceSvc.EXPECT().CostReport(gomock.Any()).Return(report, nil).AnyTimes()

	page := NewMaintenanceModel(context.Background(), maintenanceSvc, devices, "EUR")
	drain(t, page, page.Init())

	containsAll(t, page.View(), "Microscope", "608.33 EUR", "Estimated total per year: 608.33 EUR")

	maintenanceSvc.EXPECT().MaterializeAll(gomock.Any(), "d1").Return(make([]models.Reservation, 12), nil)
	press(t, page, runeKey("a"))
	assert.Contains(t, page.status, "12 maintenance slot(s) booked for Microscope")

	maintenanceSvc.EXPECT().MaterializeAll(gomock.Any(), "d1").
		Return(nil, fmt.Errorf("%w: %w", service.ErrValidation, service.ErrMaintenanceAlreadyScheduled))
	press(t, page, runeKey("a"))
	assert.Contains(t, page.errMsg, service.ErrMaintenanceAlreadyScheduled.Error())

	maintenanceSvc.EXPECT().MaterializeNext(gomock.Any(), "d1").
		Return(models.Reservation{StartDate: models.MustParseDate("2024-01-31")}, nil)
	press(t, page, runeKey("n"))
	assert.Contains(t, page.status, "booked for 2024-01-31")
	assert.Empty(t, page.errMsg)

	advanced := device
	advanced.NextMaintenance = models.MustParseDate("2024-01-31")
	maintenanceSvc.EXPECT().Advance(gomock.Any(), "d1").Return(advanced, nil)
	press(t, page, runeKey("u"))
	assert.Contains(t, page.status, "next due 2024-01-31")

	maintenanceSvc.EXPECT().Schedule(gomock.Any(), "d1").
		Return([]models.Date{models.MustParseDate("2024-01-01"), models.MustParseDate("2024-01-31")}, nil)
	press(t, page, enterKey)
	require.Len(t, page.schedule, 2)
	containsAll(t, page.View(), "Schedule: 2024-01-01, 2024-01-31")
}

func TestMaintenanceModel_EmptyPool(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	maintenanceSvc := mock.NewMockMaintenanceService(ctrl)
	devices := mock.NewMockDeviceService(ctrl)
	devices.EXPECT().ListAll(gomock.Any()).Return([]models.Device{}, nil)
	maintenanceSvc.EXPECT().CostReport(gomock.Any()).Return(models.CostReport{}, nil)

	page := NewMaintenanceModel(context.Background(), maintenanceSvc, devices, "EUR")
	drain(t, page, page.Init())

	containsAll(t, page.View(), "No devices yet")

	// no selection, nothing to book
	press(t, page, runeKey("a"))
	assert.Empty(t, page.errMsg)
}

// Package tui is the interactive terminal front end of the equipment pool.
// It is a bubbletea program routed by [RootModel] between a main menu and
// one page per record kind.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nJurisch/equipment-pool/internal/logger"
	"github.com/nJurisch/equipment-pool/internal/service"
	"github.com/nJurisch/equipment-pool/models"
)

// Page names used with [NavigateTo].
const (
	pageMenu         = "menu"
	pageUsers        = "users"
	pageDevices      = "devices"
	pageReservations = "reservations"
	pageMaintenance  = "maintenance"
)

type TUI struct {
	services  *service.Services
	currency  string
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.Services, currency string, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{
		services:  services,
		currency:  currency,
		buildInfo: buildInfo,
		logger:    logger,
	}
}

// Pages builds every page of the program bound to ctx.
func (t *TUI) Pages(ctx context.Context) map[string]tea.Model {
	return map[string]tea.Model{
		pageMenu:         NewMenuModel(),
		pageUsers:        NewUsersModel(ctx, t.services.UserService),
		pageDevices:      NewDevicesModel(ctx, t.services.DeviceService),
		pageReservations: NewReservationsModel(ctx, t.services.ReservationService, t.services.DeviceService),
		pageMaintenance:  NewMaintenanceModel(ctx, t.services.MaintenanceService, t.services.DeviceService, t.currency),
	}
}

// Run blocks until the user quits.
func (t *TUI) Run(ctx context.Context) error {
	ctx = t.logger.WithContext(ctx)

	root := NewRootModel(t.Pages(ctx), pageMenu, t.buildInfo)
	_, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		t.logger.Err(err).Str("func", "*TUI.Run").Msg("tui stopped with error")
		return err
	}

	t.logger.Info().Str("func", "*TUI.Run").Msg("tui closed")
	return nil
}

package service

import (
	"github.com/nJurisch/equipment-pool/internal/logger"
	"github.com/nJurisch/equipment-pool/internal/store"
	"github.com/nJurisch/equipment-pool/internal/utils"
	"github.com/nJurisch/equipment-pool/internal/validators"
)

type Services struct {
	UserService        UserService
	DeviceService      DeviceService
	ReservationService ReservationService
	MaintenanceService MaintenanceService
	SnapshotService    SnapshotService
}

func NewServices(storages *store.Storages, ids utils.IDGenerator, clock utils.Clock, logger *logger.Logger) *Services {
	validator := validators.NewRecordValidator()

	maintenanceSvc := newMaintenanceService(storages, ids, clock, logger)

	return &Services{
		UserService:        NewUserService(storages.UserRepository, validator, clock, logger),
		DeviceService:      newDeviceService(storages, maintenanceSvc, validator, ids, clock, logger),
		ReservationService: NewReservationService(storages, validator, ids, clock, logger),
		MaintenanceService: maintenanceSvc,
		SnapshotService:    NewSnapshotService(storages, logger),
	}
}

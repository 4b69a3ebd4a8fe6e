package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/nJurisch/equipment-pool/internal/logger"
	"github.com/nJurisch/equipment-pool/internal/store"
	"github.com/nJurisch/equipment-pool/internal/utils"
	"github.com/nJurisch/equipment-pool/internal/validators"
	"github.com/nJurisch/equipment-pool/models"
)

type deviceService struct {
	transactor            store.Transactor
	userRepository        store.UserRepository
	deviceRepository      store.DeviceRepository
	reservationRepository store.ReservationRepository
	maintenance           *maintenanceService
	validator             validators.Validator
	ids                   utils.IDGenerator
	clock                 utils.Clock

	logger *logger.Logger
}

func NewDeviceService(storages *store.Storages, ids utils.IDGenerator, clock utils.Clock, logger *logger.Logger) DeviceService {
	return newDeviceService(storages, newMaintenanceService(storages, ids, clock, logger), validators.NewRecordValidator(), ids, clock, logger)
}

func newDeviceService(
	storages *store.Storages,
	maintenance *maintenanceService,
	validator validators.Validator,
	ids utils.IDGenerator,
	clock utils.Clock,
	logger *logger.Logger,
) *deviceService {
	return &deviceService{
		transactor:            storages.Transactor,
		userRepository:        storages.UserRepository,
		deviceRepository:      storages.DeviceRepository,
		reservationRepository: storages.ReservationRepository,
		maintenance:           maintenance,
		validator:             validator,
		ids:                   ids,
		clock:                 clock,
		logger:                logger,
	}
}

// Create registers a device and books its maintenance according to policy.
// The device insert and the bookings share one transaction: if booking
// fails, the device is not stored either. Under ReserveNext a device with
// no occurrence left is still created.
func (s *deviceService) Create(ctx context.Context, in models.DeviceInput, policy models.ReservePolicy) (models.Device, []models.Reservation, error) {
	log := logger.FromContext(ctx)

	in.Name = strings.TrimSpace(in.Name)
	in.ManagedByUserID = strings.TrimSpace(in.ManagedByUserID)

	if err := s.validator.Validate(ctx, in); err != nil {
		return models.Device{}, nil, validationError(err)
	}

	now := s.clock.Now()
	device := models.Device{
		ID:                  s.ids.Generate(),
		Name:                in.Name,
		ManagedByUserID:     in.ManagedByUserID,
		EndOfLife:           in.EndOfLife,
		MaintenanceInterval: in.MaintenanceInterval,
		FirstMaintenance:    in.FirstMaintenance,
		NextMaintenance:     in.FirstMaintenance,
		MaintenanceCost:     in.MaintenanceCost,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	var booked []models.Reservation
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureUserExists(ctx, device.ManagedByUserID); err != nil {
			return err
		}
		if err := s.ensureNameFree(ctx, device.Name); err != nil {
			return err
		}

		created, err := s.deviceRepository.Insert(ctx, device)
		if errors.Is(err, store.ErrUniqueViolation) {
			return validationError(ErrDeviceNameTaken)
		}
		if err != nil {
			return err
		}
		device = created

		booked, err = s.book(ctx, device, policy)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*deviceService.Create").Str("device_name", in.Name).Msg("error creating device")
		return models.Device{}, nil, mapStoreError(err)
	}

	log.Info().
		Str("func", "*deviceService.Create").
		Str("device_id", device.ID).
		Int("maintenance_booked", len(booked)).
		Msg("device created")

	return device, booked, nil
}

func (s *deviceService) book(ctx context.Context, device models.Device, policy models.ReservePolicy) ([]models.Reservation, error) {
	switch policy {
	case models.ReserveAll:
		return s.maintenance.materializeAll(ctx, device)
	case models.ReserveNext:
		res, err := s.maintenance.materializeNext(ctx, device)
		if isNoUpcoming(err) {
			return []models.Reservation{}, nil
		}
		if err != nil {
			return nil, err
		}
		return []models.Reservation{res}, nil
	case models.ReserveNone:
		return []models.Reservation{}, nil
	default:
		return nil, validationError(fmt.Errorf("unknown reserve policy %d", policy))
	}
}

func (s *deviceService) ensureUserExists(ctx context.Context, userID string) error {
	_, err := s.userRepository.GetByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return validationError(ErrUnknownResponsibleUser)
	}
	return err
}

func (s *deviceService) ensureNameFree(ctx context.Context, name string) error {
	existing, err := s.deviceRepository.Find(ctx, sq.Eq{"device_name": name})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return validationError(ErrDeviceNameTaken)
	}
	return nil
}

func (s *deviceService) ListAll(ctx context.Context) ([]models.Device, error) {
	devices, err := s.deviceRepository.FindAll(ctx)
	return devices, mapStoreError(err)
}

func (s *deviceService) Get(ctx context.Context, id string) (models.Device, error) {
	device, err := s.deviceRepository.GetByID(ctx, id)
	return device, mapStoreError(err)
}

// FindByName looks a device up by its unique name.
func (s *deviceService) FindByName(ctx context.Context, name string) (models.Device, error) {
	devices, err := s.deviceRepository.Find(ctx, sq.Eq{"device_name": strings.TrimSpace(name)})
	if err != nil {
		return models.Device{}, mapStoreError(err)
	}

	switch len(devices) {
	case 0:
		return models.Device{}, notFoundError(fmt.Errorf("device %q", name))
	case 1:
		return devices[0], nil
	default:
		return models.Device{}, fmt.Errorf("%w: %d devices named %q", ErrAmbiguousMatch, len(devices), name)
	}
}

// UpdateResponsibleUser hands the device over to another existing user.
func (s *deviceService) UpdateResponsibleUser(ctx context.Context, deviceID, userID string) (models.Device, error) {
	log := logger.FromContext(ctx)
	userID = strings.TrimSpace(userID)

	if err := s.validator.Validate(ctx, models.DeviceInput{ManagedByUserID: userID}, validators.FieldManagedBy); err != nil {
		return models.Device{}, validationError(err)
	}

	var updated models.Device
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		device, err := s.deviceRepository.GetByID(ctx, deviceID)
		if err != nil {
			return err
		}
		if err = s.ensureUserExists(ctx, userID); err != nil {
			return err
		}

		device.ManagedByUserID = userID
		updated, err = s.deviceRepository.Update(ctx, device)
		return err
	})
	if err != nil {
		return models.Device{}, mapStoreError(err)
	}

	log.Info().
		Str("func", "*deviceService.UpdateResponsibleUser").
		Str("device_id", deviceID).
		Str("user_id", userID).
		Msg("responsible user changed")

	return updated, nil
}

// Delete removes the device together with all of its reservations.
func (s *deviceService) Delete(ctx context.Context, deviceID string) error {
	log := logger.FromContext(ctx)

	var removed int64
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.deviceRepository.RemoveByID(ctx, deviceID); err != nil {
			return err
		}

		var err error
		removed, err = s.reservationRepository.RemoveByDevice(ctx, deviceID)
		return err
	})
	if err != nil {
		return mapStoreError(err)
	}

	log.Info().
		Str("func", "*deviceService.Delete").
		Str("device_id", deviceID).
		Int64("reservations_removed", removed).
		Msg("device deleted")

	return nil
}

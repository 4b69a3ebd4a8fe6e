package service

import (
	"context"
	"errors"
	"strings"

	"github.com/nJurisch/equipment-pool/internal/logger"
	"github.com/nJurisch/equipment-pool/internal/store"
	"github.com/nJurisch/equipment-pool/internal/utils"
	"github.com/nJurisch/equipment-pool/internal/validators"
	"github.com/nJurisch/equipment-pool/models"
)

type reservationService struct {
	transactor            store.Transactor
	deviceRepository      store.DeviceRepository
	reservationRepository store.ReservationRepository
	validator             validators.Validator
	ids                   utils.IDGenerator
	clock                 utils.Clock

	logger *logger.Logger
}

func NewReservationService(
	storages *store.Storages,
	validator validators.Validator,
	ids utils.IDGenerator,
	clock utils.Clock,
	logger *logger.Logger,
) ReservationService {
	return &reservationService{
		transactor:            storages.Transactor,
		deviceRepository:      storages.DeviceRepository,
		reservationRepository: storages.ReservationRepository,
		validator:             validator,
		ids:                   ids,
		clock:                 clock,
		logger:                logger,
	}
}

// Create books a device for the inclusive range [start, end] on behalf of
// reserver. The range must not share a day with any other booking of the
// same device, maintenance included.
func (s *reservationService) Create(ctx context.Context, deviceID, reserver string, start, end models.Date) (models.Reservation, error) {
	log := logger.FromContext(ctx)

	reservation := models.Reservation{
		ID:        s.ids.Generate(),
		DeviceID:  strings.TrimSpace(deviceID),
		Reserver:  strings.TrimSpace(reserver),
		StartDate: start,
		EndDate:   end,
		CreatedAt: s.clock.Now(),
	}
	if err := s.validator.Validate(ctx, reservation); err != nil {
		return models.Reservation{}, validationError(err)
	}

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := s.deviceRepository.GetByID(ctx, reservation.DeviceID)
		if errors.Is(err, store.ErrDeviceNotFound) {
			return validationError(ErrUnknownDevice)
		}
		if err != nil {
			return err
		}

		clashes, err := s.reservationRepository.FindOverlapping(ctx, reservation.DeviceID, start, end)
		if err != nil {
			return err
		}
		if len(clashes) > 0 {
			log.Debug().
				Str("func", "*reservationService.Create").
				Str("device_id", reservation.DeviceID).
				Str("clashes_with", clashes[0].ID).
				Msg("reservation overlaps")
			return validationError(ErrReservationOverlap)
		}

		reservation, err = s.reservationRepository.Insert(ctx, reservation)
		return err
	})
	if err != nil {
		return models.Reservation{}, mapStoreError(err)
	}

	log.Info().
		Str("func", "*reservationService.Create").
		Str("reservation_id", reservation.ID).
		Str("device_id", reservation.DeviceID).
		Str("start_date", start.String()).
		Str("end_date", end.String()).
		Msg("reservation created")

	return reservation, nil
}

// List returns reservations with their device names, sorted by start date.
func (s *reservationService) List(ctx context.Context, filter models.ReservationFilter) ([]models.ReservationView, error) {
	views, err := s.reservationRepository.FindViews(ctx, filter)
	return views, mapStoreError(err)
}

func (s *reservationService) ListAll(ctx context.Context) ([]models.ReservationView, error) {
	return s.List(ctx, models.ReservationFilter{})
}

func (s *reservationService) ListForDevice(ctx context.Context, deviceID string) ([]models.ReservationView, error) {
	return s.List(ctx, models.ReservationFilter{DeviceID: deviceID})
}

func (s *reservationService) ListMaintenanceOnly(ctx context.Context) ([]models.ReservationView, error) {
	return s.List(ctx, models.ReservationFilter{MaintenanceOnly: true})
}

// Delete cancels a reservation by id. Maintenance bookings can be cancelled
// the same way.
func (s *reservationService) Delete(ctx context.Context, reservationID string) error {
	log := logger.FromContext(ctx)

	if err := s.reservationRepository.RemoveByID(ctx, reservationID); err != nil {
		return mapStoreError(err)
	}

	log.Info().Str("func", "*reservationService.Delete").Str("reservation_id", reservationID).Msg("reservation deleted")
	return nil
}

package service

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/nJurisch/equipment-pool/internal/logger"
	"github.com/nJurisch/equipment-pool/internal/maintenance"
	"github.com/nJurisch/equipment-pool/internal/store"
	"github.com/nJurisch/equipment-pool/internal/utils"
	"github.com/nJurisch/equipment-pool/models"
)

type maintenanceService struct {
	transactor            store.Transactor
	deviceRepository      store.DeviceRepository
	reservationRepository store.ReservationRepository
	ids                   utils.IDGenerator
	clock                 utils.Clock

	logger *logger.Logger
}

func NewMaintenanceService(storages *store.Storages, ids utils.IDGenerator, clock utils.Clock, logger *logger.Logger) MaintenanceService {
	return newMaintenanceService(storages, ids, clock, logger)
}

func newMaintenanceService(storages *store.Storages, ids utils.IDGenerator, clock utils.Clock, logger *logger.Logger) *maintenanceService {
	return &maintenanceService{
		transactor:            storages.Transactor,
		deviceRepository:      storages.DeviceRepository,
		reservationRepository: storages.ReservationRepository,
		ids:                   ids,
		clock:                 clock,
		logger:                logger,
	}
}

// MaterializeAll books every occurrence of the device's schedule up to its
// end of life. Occurrences that already have a maintenance booking are
// skipped; if nothing is left to book the call fails with
// ErrMaintenanceAlreadyScheduled.
func (s *maintenanceService) MaterializeAll(ctx context.Context, deviceID string) ([]models.Reservation, error) {
	var booked []models.Reservation

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		device, err := s.deviceRepository.GetByID(ctx, deviceID)
		if err != nil {
			return err
		}

		booked, err = s.materializeAll(ctx, device)
		return err
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	return booked, nil
}

func (s *maintenanceService) materializeAll(ctx context.Context, device models.Device) ([]models.Reservation, error) {
	log := logger.FromContext(ctx)

	dates, err := maintenance.GenerateSchedule(device.FirstMaintenance, device.MaintenanceInterval, device.EndOfLife)
	if err != nil {
		return nil, validationError(err)
	}
	if len(dates) == 0 {
		return []models.Reservation{}, nil
	}

	existing, err := s.bookedDates(ctx, device.ID)
	if err != nil {
		return nil, err
	}

	booked := make([]models.Reservation, 0, len(dates))
	for _, date := range dates {
		if _, ok := existing[date.String()]; ok {
			continue
		}

		res, err := s.book(ctx, device.ID, date)
		if err != nil {
			return nil, err
		}
		booked = append(booked, res)
	}

	if len(booked) == 0 {
		return nil, validationError(ErrMaintenanceAlreadyScheduled)
	}

	log.Info().
		Str("func", "*maintenanceService.materializeAll").
		Str("device_id", device.ID).
		Int("booked", len(booked)).
		Int("skipped", len(dates)-len(booked)).
		Msg("maintenance booked")

	return booked, nil
}

// MaterializeNext books the soonest occurrence on or after the later of
// today and the device's next maintenance pointer.
func (s *maintenanceService) MaterializeNext(ctx context.Context, deviceID string) (models.Reservation, error) {
	var booked models.Reservation

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		device, err := s.deviceRepository.GetByID(ctx, deviceID)
		if err != nil {
			return err
		}

		booked, err = s.materializeNext(ctx, device)
		return err
	})
	if err != nil {
		return models.Reservation{}, mapStoreError(err)
	}

	return booked, nil
}

func (s *maintenanceService) materializeNext(ctx context.Context, device models.Device) (models.Reservation, error) {
	log := logger.FromContext(ctx)

	from := s.clock.Today()
	if device.NextMaintenance.After(from) {
		from = device.NextMaintenance
	}

	date, ok, err := maintenance.NextOccurrence(device.FirstMaintenance, device.MaintenanceInterval, device.EndOfLife, from)
	if err != nil {
		return models.Reservation{}, validationError(err)
	}
	if !ok {
		return models.Reservation{}, validationError(ErrNoUpcomingMaintenance)
	}

	existing, err := s.reservationRepository.Find(ctx, sq.Eq{
		"device_id":  device.ID,
		"reserver":   models.MaintenanceReserver,
		"start_date": date,
	})
	if err != nil {
		return models.Reservation{}, err
	}
	if len(existing) > 0 {
		return models.Reservation{}, validationError(ErrMaintenanceAlreadyScheduled)
	}

	res, err := s.book(ctx, device.ID, date)
	if err != nil {
		return models.Reservation{}, err
	}

	log.Info().
		Str("func", "*maintenanceService.materializeNext").
		Str("device_id", device.ID).
		Str("date", date.String()).
		Msg("next maintenance booked")

	return res, nil
}

// bookedDates returns the start dates of the device's maintenance bookings.
func (s *maintenanceService) bookedDates(ctx context.Context, deviceID string) (map[string]struct{}, error) {
	existing, err := s.reservationRepository.Find(ctx, sq.Eq{
		"device_id": deviceID,
		"reserver":  models.MaintenanceReserver,
	})
	if err != nil {
		return nil, err
	}

	dates := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		dates[r.StartDate.String()] = struct{}{}
	}
	return dates, nil
}

func (s *maintenanceService) book(ctx context.Context, deviceID string, date models.Date) (models.Reservation, error) {
	return s.reservationRepository.Insert(ctx, models.Reservation{
		ID:        s.ids.Generate(),
		DeviceID:  deviceID,
		Reserver:  models.MaintenanceReserver,
		StartDate: date,
		EndDate:   date,
		CreatedAt: s.clock.Now(),
	})
}

// Advance marks the current maintenance as done by rolling the device's
// next maintenance pointer forward by one interval. Existing bookings are
// left alone.
func (s *maintenanceService) Advance(ctx context.Context, deviceID string) (models.Device, error) {
	log := logger.FromContext(ctx)

	var updated models.Device
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		device, err := s.deviceRepository.GetByID(ctx, deviceID)
		if err != nil {
			return err
		}

		next, err := maintenance.Advance(device.NextMaintenance, device.FirstMaintenance, device.MaintenanceInterval)
		if err != nil {
			return validationError(err)
		}
		device.NextMaintenance = next

		updated, err = s.deviceRepository.Update(ctx, device)
		return err
	})
	if err != nil {
		return models.Device{}, mapStoreError(err)
	}

	log.Info().
		Str("func", "*maintenanceService.Advance").
		Str("device_id", deviceID).
		Str("next_maintenance", updated.NextMaintenance.String()).
		Msg("maintenance marked as done")

	return updated, nil
}

// Schedule returns the device's full maintenance sequence.
func (s *maintenanceService) Schedule(ctx context.Context, deviceID string) ([]models.Date, error) {
	device, err := s.deviceRepository.GetByID(ctx, deviceID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	dates, err := maintenance.GenerateSchedule(device.FirstMaintenance, device.MaintenanceInterval, device.EndOfLife)
	if err != nil {
		return nil, validationError(err)
	}
	return dates, nil
}

func (s *maintenanceService) ListMaintenance(ctx context.Context) ([]models.ReservationView, error) {
	views, err := s.reservationRepository.FindViews(ctx, models.ReservationFilter{MaintenanceOnly: true})
	return views, mapStoreError(err)
}

// CostReport estimates the annual maintenance cost of every device.
func (s *maintenanceService) CostReport(ctx context.Context) (models.CostReport, error) {
	devices, err := s.deviceRepository.FindAll(ctx)
	if err != nil {
		return models.CostReport{}, mapStoreError(err)
	}
	return maintenance.BuildCostReport(devices), nil
}

// isNoUpcoming reports whether err only says there is nothing left to book.
func isNoUpcoming(err error) bool {
	return errors.Is(err, ErrNoUpcomingMaintenance)
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/nJurisch/equipment-pool/internal/logger"
	"github.com/nJurisch/equipment-pool/internal/store"
	"github.com/nJurisch/equipment-pool/models"
)

type snapshotService struct {
	userRepository        store.UserRepository
	deviceRepository      store.DeviceRepository
	reservationRepository store.ReservationRepository

	logger *logger.Logger
}

func NewSnapshotService(storages *store.Storages, logger *logger.Logger) SnapshotService {
	return &snapshotService{
		userRepository:        storages.UserRepository,
		deviceRepository:      storages.DeviceRepository,
		reservationRepository: storages.ReservationRepository,
		logger:                logger,
	}
}

// Snapshot reads the whole store into three id-keyed collections.
func (s *snapshotService) Snapshot(ctx context.Context) (models.Snapshot, error) {
	users, err := s.userRepository.FindAll(ctx)
	if err != nil {
		return models.Snapshot{}, mapStoreError(err)
	}
	devices, err := s.deviceRepository.FindAll(ctx)
	if err != nil {
		return models.Snapshot{}, mapStoreError(err)
	}
	reservations, err := s.reservationRepository.Find(ctx, nil)
	if err != nil {
		return models.Snapshot{}, mapStoreError(err)
	}

	snap := models.Snapshot{
		Users:        make(map[string]models.User, len(users)),
		Devices:      make(map[string]models.Device, len(devices)),
		Reservations: make(map[string]models.Reservation, len(reservations)),
	}
	for _, u := range users {
		snap.Users[u.ID] = u
	}
	for _, d := range devices {
		snap.Devices[d.ID] = d
	}
	for _, r := range reservations {
		snap.Reservations[r.ID] = r
	}

	return snap, nil
}

// Export writes the snapshot to w as JSON or YAML.
func (s *snapshotService) Export(ctx context.Context, w io.Writer, format models.SnapshotFormat) error {
	log := logger.FromContext(ctx)

	switch format {
	case models.SnapshotJSON, models.SnapshotYAML:
	default:
		return validationError(fmt.Errorf("%w: %q", ErrUnsupportedSnapshotFormat, format))
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	switch format {
	case models.SnapshotYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(snap); err == nil {
			err = enc.Close()
		}
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(snap)
	}
	if err != nil {
		log.Err(err).Str("func", "*snapshotService.Export").Str("format", string(format)).Msg("failed to encode snapshot")
		return fmt.Errorf("writing %s snapshot: %w", format, err)
	}

	log.Info().
		Str("func", "*snapshotService.Export").
		Str("format", string(format)).
		Int("users", len(snap.Users)).
		Int("devices", len(snap.Devices)).
		Int("reservations", len(snap.Reservations)).
		Msg("snapshot exported")

	return nil
}

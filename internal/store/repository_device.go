package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/nJurisch/equipment-pool/internal/logger"
	"github.com/nJurisch/equipment-pool/models"
)

// deviceRepository is the SQLite-backed implementation of
// [DeviceRepository] working on the "devices" table.
type deviceRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDeviceRepository constructs a [DeviceRepository].
func NewDeviceRepository(db *DB, logger *logger.Logger) DeviceRepository {
	logger.Debug().Msg("creating device repository")
	return &deviceRepository{
		db:     db,
		logger: logger,
	}
}

func scanDevice(row rowScanner) (models.Device, error) {
	var d models.Device
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.ManagedByUserID,
		&d.EndOfLife,
		&d.MaintenanceInterval,
		&d.FirstMaintenance,
		&d.NextMaintenance,
		&d.MaintenanceCost,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

// Insert persists a new device. A duplicate id or device name yields
// [ErrUniqueViolation].
func (r *deviceRepository) Insert(ctx context.Context, device models.Device) (models.Device, error) {
	log := logger.FromContext(ctx)

	if device.CreatedAt.IsZero() {
		device.CreatedAt = time.Now().UTC()
	}
	if device.UpdatedAt.IsZero() {
		device.UpdatedAt = device.CreatedAt
	}

	query, args, err := buildInsertDeviceQuery(device)
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.Insert").Msg("failed to create query")
		return models.Device{}, err
	}

	if _, err = r.db.executor(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "*deviceRepository.Insert").
			Str("device_id", device.ID).
			Str("device_name", device.Name).
			Msg("failed to insert device")
		return models.Device{}, r.db.statementError(err)
	}

	return device, nil
}

// GetByID returns the device with the given id or [ErrDeviceNotFound].
func (r *deviceRepository) GetByID(ctx context.Context, id string) (models.Device, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectDevicesQuery(sq.Eq{"id": id})
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.GetByID").Msg("failed to create query")
		return models.Device{}, err
	}

	device, err := scanDevice(r.db.executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Device{}, ErrDeviceNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.GetByID").Str("device_id", id).Msg("failed to scan device row")
		return models.Device{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return device, nil
}

// FindAll returns every device ordered by name.
func (r *deviceRepository) FindAll(ctx context.Context) ([]models.Device, error) {
	return r.Find(ctx, nil)
}

// Find returns the devices matching where. A nil predicate matches all.
func (r *deviceRepository) Find(ctx context.Context, where sq.Sqlizer) ([]models.Device, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectDevicesQuery(where)
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.Find").Msg("failed to create query")
		return nil, err
	}

	rows, err := r.db.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.Find").Msg("failed to execute query for getting devices")
		return nil, r.db.queryError(err)
	}
	defer rows.Close()

	devices := make([]models.Device, 0, 16)
	for rows.Next() {
		device, scanErr := scanDevice(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*deviceRepository.Find").Msg("failed to scan device row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		devices = append(devices, device)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*deviceRepository.Find").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return devices, nil
}

// Update overwrites the mutable columns of the device identified by
// device.ID and stamps UpdatedAt.
func (r *deviceRepository) Update(ctx context.Context, device models.Device) (models.Device, error) {
	log := logger.FromContext(ctx)

	device.UpdatedAt = time.Now().UTC()

	query, args, err := buildUpdateDeviceQuery(device)
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.Update").Msg("failed to create query")
		return models.Device{}, err
	}

	result, err := r.db.executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.Update").Str("device_id", device.ID).Msg("failed to update device")
		return models.Device{}, r.db.statementError(err)
	}

	if err = expectAffected(result, ErrDeviceNotFound); err != nil {
		return models.Device{}, err
	}

	return device, nil
}

// RemoveByID deletes a single device. Its reservations are not touched;
// the caller removes them in the same transaction.
func (r *deviceRepository) RemoveByID(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteDeviceQuery(id)
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.RemoveByID").Msg("failed to create query")
		return err
	}

	result, err := r.db.executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.RemoveByID").Str("device_id", id).Msg("failed to delete device")
		return r.db.statementError(err)
	}

	return expectAffected(result, ErrDeviceNotFound)
}

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

// reservationRepository is the SQLite-backed implementation of
// [ReservationRepository] working on the "reservations" table.
type reservationRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewReservationRepository constructs a [ReservationRepository].
func NewReservationRepository(db *DB, logger *logger.Logger) ReservationRepository {
	logger.Debug().Msg("creating reservation repository")
	return &reservationRepository{
		db:     db,
		logger: logger,
	}
}

func scanReservation(row rowScanner) (models.Reservation, error) {
	var res models.Reservation
	err := row.Scan(&res.ID, &res.DeviceID, &res.Reserver, &res.StartDate, &res.EndDate, &res.CreatedAt)
	return res, err
}

func scanReservationView(row rowScanner) (models.ReservationView, error) {
	var v models.ReservationView
	err := row.Scan(
		&v.ID,
		&v.DeviceID,
		&v.Reserver,
		&v.StartDate,
		&v.EndDate,
		&v.CreatedAt,
		&v.DeviceName,
	)
	return v, err
}

// Insert persists a new reservation. Overlap checks are the caller's job.
func (r *reservationRepository) Insert(ctx context.Context, reservation models.Reservation) (models.Reservation, error) {
	log := logger.FromContext(ctx)

	if reservation.CreatedAt.IsZero() {
		reservation.CreatedAt = time.Now().UTC()
	}

	query, args, err := buildInsertReservationQuery(reservation)
	if err != nil {
		log.Err(err).Str("func", "*reservationRepository.Insert").Msg("failed to create query")
		return models.Reservation{}, err
	}

	if _, err = r.db.executor(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "*reservationRepository.Insert").
			Str("device_id", reservation.DeviceID).
			Str("start_date", reservation.StartDate.String()).
			Msg("failed to insert reservation")
		return models.Reservation{}, r.db.statementError(err)
	}

	return reservation, nil
}

// GetByID returns the reservation with the given id or
// [ErrReservationNotFound].
func (r *reservationRepository) GetByID(ctx context.Context, id string) (models.Reservation, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectReservationsQuery(sq.Eq{"id": id})
	if err != nil {
		log.Err(err).Str("func", "*reservationRepository.GetByID").Msg("failed to create query")
		return models.Reservation{}, err
	}

	res, err := scanReservation(r.db.executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reservation{}, ErrReservationNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*reservationRepository.GetByID").Str("reservation_id", id).Msg("failed to scan reservation row")
		return models.Reservation{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return res, nil
}

// Find returns the reservations matching where, ordered by start date.
func (r *reservationRepository) Find(ctx context.Context, where sq.Sqlizer) ([]models.Reservation, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectReservationsQuery(where)
	if err != nil {
		log.Err(err).Str("func", "*reservationRepository.Find").Msg("failed to create query")
		return nil, err
	}

	rows, err := r.db.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*reservationRepository.Find").Msg("failed to execute query for getting reservations")
		return nil, r.db.queryError(err)
	}
	defer rows.Close()

	reservations := make([]models.Reservation, 0, 16)
	for rows.Next() {
		res, scanErr := scanReservation(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*reservationRepository.Find").Msg("failed to scan reservation row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		reservations = append(reservations, res)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*reservationRepository.Find").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return reservations, nil
}

// FindOverlapping returns the reservations of deviceID sharing at least one
// day with [start, end].
func (r *reservationRepository) FindOverlapping(ctx context.Context, deviceID string, start, end models.Date) ([]models.Reservation, error) {
	return r.Find(ctx, overlapPredicate(deviceID, start, end))
}

// FindViews returns reservations joined with their device name.
func (r *reservationRepository) FindViews(ctx context.Context, filter models.ReservationFilter) ([]models.ReservationView, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectReservationViewsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*reservationRepository.FindViews").Msg("failed to create query")
		return nil, err
	}

	rows, err := r.db.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*reservationRepository.FindViews").
			Str("device_id", filter.DeviceID).
			Bool("maintenance_only", filter.MaintenanceOnly).
			Msg("failed to execute query for getting reservation views")
		return nil, r.db.queryError(err)
	}
	defer rows.Close()

	views := make([]models.ReservationView, 0, 16)
	for rows.Next() {
		v, scanErr := scanReservationView(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*reservationRepository.FindViews").Msg("failed to scan reservation view row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		views = append(views, v)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*reservationRepository.FindViews").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return views, nil
}

// Remove deletes every reservation matching where and reports how many
// rows went away.
func (r *reservationRepository) Remove(ctx context.Context, where sq.Sqlizer) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteReservationsQuery(where)
	if err != nil {
		log.Err(err).Str("func", "*reservationRepository.Remove").Msg("failed to create query")
		return 0, err
	}

	result, err := r.db.executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*reservationRepository.Remove").Msg("failed to delete reservations")
		return 0, r.db.statementError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

// RemoveByID deletes a single reservation.
func (r *reservationRepository) RemoveByID(ctx context.Context, id string) error {
	affected, err := r.Remove(ctx, sq.Eq{"id": id})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// RemoveByDevice deletes every reservation of deviceID.
func (r *reservationRepository) RemoveByDevice(ctx context.Context, deviceID string) (int64, error) {
	return r.Remove(ctx, sq.Eq{"device_id": deviceID})
}

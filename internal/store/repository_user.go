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

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// userRepository is the SQLite-backed implementation of [UserRepository].
// It handles user creation, lookup and removal against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.CreatedAt)
	return u, err
}

// Insert persists a new user. CreatedAt defaults to the current UTC time.
//
// Error handling:
//   - primary key collision → [ErrUniqueViolation].
//   - any other driver-level error → [ErrExecutingStatement].
func (r *userRepository) Insert(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query, args, err := buildInsertUserQuery(user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Insert").Msg("failed to create query")
		return models.User{}, err
	}

	if _, err = r.db.executor(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*userRepository.Insert").Str("user_id", user.ID).Msg("failed to insert user")
		return models.User{}, r.db.statementError(err)
	}

	return user, nil
}

// GetByID returns the user with the given id or [ErrUserNotFound].
func (r *userRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUsersQuery(sq.Eq{"id": id})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetByID").Msg("failed to create query")
		return models.User{}, err
	}

	user, err := scanUser(r.db.executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetByID").Str("user_id", id).Msg("failed to scan user row")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// FindAll returns every user ordered by name, then id.
func (r *userRepository) FindAll(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUsersQuery(nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindAll").Msg("failed to create query")
		return nil, err
	}

	rows, err := r.db.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindAll").Msg("failed to execute query for getting all users")
		return nil, r.db.queryError(err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 16)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*userRepository.FindAll").Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		users = append(users, user)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*userRepository.FindAll").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return users, nil
}

// RemoveByID deletes the user with the given id. Devices and reservations
// referencing the user are left in place.
func (r *userRepository) RemoveByID(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteUserQuery(id)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.RemoveByID").Msg("failed to create query")
		return err
	}

	result, err := r.db.executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.RemoveByID").Str("user_id", id).Msg("failed to delete user")
		return r.db.statementError(err)
	}

	return expectAffected(result, ErrUserNotFound)
}

// expectAffected returns notFound when result reports zero affected rows.
func expectAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

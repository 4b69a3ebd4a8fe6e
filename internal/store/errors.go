package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserNotFound is returned when no user has the requested id.
	ErrUserNotFound = errors.New("user was not found")

	// ErrDeviceNotFound is returned when no device has the requested id.
	ErrDeviceNotFound = errors.New("device was not found")

	// ErrReservationNotFound is returned when no reservation has the
	// requested id.
	ErrReservationNotFound = errors.New("reservation was not found")

	// ErrUniqueViolation is returned when an INSERT or UPDATE collides with
	// an existing primary key or unique index (user id, device name).
	ErrUniqueViolation = errors.New("record already exists")

	// ErrStoreBusy is returned when the database file is locked by another
	// connection.
	ErrStoreBusy = errors.New("store is busy")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)

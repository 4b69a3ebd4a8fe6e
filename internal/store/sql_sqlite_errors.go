package store

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ErrorClassification is the result type returned by
// [ErrorClassificator.Classify].
type ErrorClassification int

const (
	// NonRetryable is the default classification for unrecognised errors.
	NonRetryable ErrorClassification = iota

	// Retryable indicates that the database was busy or locked by another
	// connection and the operation may succeed if attempted again.
	Retryable

	// UniqueViolation indicates that a UNIQUE or PRIMARY KEY constraint
	// rejected the statement.
	UniqueViolation
)

// ErrorClassificator maps driver errors to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// SQLiteErrorClassifier implements [ErrorClassificator] for mattn/go-sqlite3.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier].
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Errors that are not
// sqlite3.Error values are [NonRetryable].
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return NonRetryable
	}

	switch sqliteErr.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return Retryable
	case sqlite3.ErrConstraint:
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return UniqueViolation
		}
	}

	return NonRetryable
}

// statementError wraps a failed INSERT/UPDATE/DELETE with the store sentinel
// matching its classification.
func (db *DB) statementError(err error) error {
	switch db.classify(err) {
	case UniqueViolation:
		return fmt.Errorf("%w: %w", ErrUniqueViolation, err)
	case Retryable:
		return fmt.Errorf("%w: %w", ErrStoreBusy, err)
	default:
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
}

// queryError wraps a failed SELECT.
func (db *DB) queryError(err error) error {
	if db.classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrStoreBusy, err)
	}
	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}

package store

import (
	"context"
	"fmt"

	"github.com/nJurisch/equipment-pool/internal/logger"
)

// Storages groups all repositories and the transactor sharing one SQLite
// connection, so that it can be passed to the service layer as a whole.
type Storages struct {
	Transactor            Transactor
	UserRepository        UserRepository
	DeviceRepository      DeviceRepository
	ReservationRepository ReservationRepository

	db *DB
}

// NewStorages initialises the storage layer. It performs the following
// steps:
//  1. Opens an SQLite connection to the file at dsn, creating the database
//     file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Wires the repositories to the connection.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewStorages(ctx context.Context, dsn string, logger *logger.Logger) (*Storages, error) {
	logger.Info().Str("dsn", dsn).Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, dsn, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newStorages(db, logger), nil
}

func newStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		Transactor:            db,
		UserRepository:        NewUserRepository(db, logger),
		DeviceRepository:      NewDeviceRepository(db, logger),
		ReservationRepository: NewReservationRepository(db, logger),
		db:                    db,
	}
}

// Close releases the database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

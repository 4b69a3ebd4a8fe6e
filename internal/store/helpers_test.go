package store

import (
	"context"
	"database/sql/driver"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/nJurisch/equipment-pool/internal/logger"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &DB{DB: conn, errorClassificator: NewSQLiteErrorClassifier(), logger: logger.Nop()}, mock
}

func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()
	s, err := NewStorages(context.Background(), filepath.Join(t.TempDir(), "pool.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sqlmockResult(affected int64) driver.Result {
	return sqlmock.NewResult(0, affected)
}

package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nJurisch/equipment-pool/internal/logger"
	"github.com/nJurisch/equipment-pool/models"
)

func newTestDeviceRepo(t *testing.T) (*deviceRepository, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	return &deviceRepository{db: db, logger: logger.Nop()}, mock
}

func deviceRows() *sqlmock.Rows {
	return sqlmock.NewRows(deviceColumns)
}

func sampleDevice() models.Device {
	return models.Device{
		ID:                  "d-1",
		Name:                "microscope",
		ManagedByUserID:     "ada@uni.example",
		EndOfLife:           models.MustParseDate("2024-12-31"),
		MaintenanceInterval: 90,
		FirstMaintenance:    models.MustParseDate("2024-01-01"),
		NextMaintenance:     models.MustParseDate("2024-01-01"),
		MaintenanceCost:     50,
	}
}

func TestDeviceRepository_Insert(t *testing.T) {
	repo, mock := newTestDeviceRepo(t)
	d := sampleDevice()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO devices (id,device_name,managed_by_user_id,end_of_life")).
		WithArgs("d-1", "microscope", "ada@uni.example", "2024-12-31", 90, "2024-01-01", "2024-01-01", 50.0,
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := repo.Insert(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceRepository_Insert_DuplicateName(t *testing.T) {
	repo, mock := newTestDeviceRepo(t)

	mock.ExpectExec("INSERT INTO devices").
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique})

	_, err := repo.Insert(context.Background(), sampleDevice())
	assert.ErrorIs(t, err, ErrUniqueViolation)
}

func TestDeviceRepository_GetByID(t *testing.T) {
	repo, mock := newTestDeviceRepo(t)
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM devices WHERE id = ?")).
		WithArgs("d-1").
		WillReturnRows(deviceRows().AddRow(
			"d-1", "microscope", "ada@uni.example", "2024-12-31", 90, "2024-01-01", "2024-03-31", 50.0, now, now))

	d, err := repo.GetByID(context.Background(), "d-1")
	require.NoError(t, err)
	assert.Equal(t, "microscope", d.Name)
	assert.Equal(t, 90, d.MaintenanceInterval)
	assert.Equal(t, "2024-03-31", d.NextMaintenance.String())
	assert.InDelta(t, 50.0, d.MaintenanceCost, 1e-9)
}

func TestDeviceRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestDeviceRepo(t)

	mock.ExpectQuery("FROM devices").WillReturnRows(deviceRows())

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestDeviceRepository_FindByPredicate(t *testing.T) {
	repo, mock := newTestDeviceRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM devices WHERE device_name = ? ORDER BY device_name, id")).
		WithArgs("microscope").
		WillReturnRows(deviceRows().
			AddRow("d-1", "microscope", "a@x", "2024-12-31", 90, "2024-01-01", "2024-01-01", 0.0, now, now))

	found, err := repo.Find(context.Background(), sq.Eq{"device_name": "microscope"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "d-1", found[0].ID)
}

func TestDeviceRepository_Update(t *testing.T) {
	repo, mock := newTestDeviceRepo(t)
	d := sampleDevice()
	d.ManagedByUserID = "bob@uni.example"

	mock.ExpectExec(regexp.QuoteMeta("UPDATE devices SET device_name = ?, managed_by_user_id = ?")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.Update(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "bob@uni.example", updated.ManagedByUserID)
	assert.False(t, updated.UpdatedAt.IsZero())
}

func TestDeviceRepository_Update_NotFound(t *testing.T) {
	repo, mock := newTestDeviceRepo(t)

	mock.ExpectExec("UPDATE devices").WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), sampleDevice())
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestDeviceRepository_RemoveByID(t *testing.T) {
	repo, mock := newTestDeviceRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM devices WHERE id = ?")).
		WithArgs("d-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.RemoveByID(context.Background(), "d-1"))
}

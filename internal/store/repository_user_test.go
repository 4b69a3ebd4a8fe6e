package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nJurisch/equipment-pool/internal/logger"
	"github.com/nJurisch/equipment-pool/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	return &userRepository{db: db, logger: logger.Nop()}, mock
}

func TestUserRepository_Insert_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (id,name,created_at) VALUES (?,?,?)")).
		WithArgs("ada@uni.example", "Ada", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := repo.Insert(context.Background(), models.User{ID: "ada@uni.example", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "ada@uni.example", created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Insert_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey})

	_, err := repo.Insert(context.Background(), models.User{ID: "ada@uni.example", Name: "Ada"})
	assert.ErrorIs(t, err, ErrUniqueViolation)
}

func TestUserRepository_Insert_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("disk I/O error"))

	_, err := repo.Insert(context.Background(), models.User{ID: "x", Name: "X"})
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NotErrorIs(t, err, ErrUniqueViolation)
}

func TestUserRepository_GetByID(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, created_at FROM users WHERE id = ?")).
		WithArgs("ada@uni.example").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow("ada@uni.example", "Ada", now))

	user, err := repo.GetByID(context.Background(), "ada@uni.example")
	require.NoError(t, err)
	assert.Equal(t, models.User{ID: "ada@uni.example", Name: "Ada", CreatedAt: now}, user)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}))

	_, err := repo.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_FindAll_OrderedByName(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users ORDER BY name, id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow("a@x", "Ada", time.Now()).
			AddRow("b@x", "Bob", time.Now()))

	users, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Bob", users[1].Name)
}

func TestUserRepository_FindAll_QueryError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("FROM users").WillReturnError(sqlite3.Error{Code: sqlite3.ErrBusy})

	_, err := repo.FindAll(context.Background())
	assert.ErrorIs(t, err, ErrStoreBusy)
}

func TestUserRepository_FindAll_ScanError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("a@x")) // wrong shape → scan error

	_, err := repo.FindAll(context.Background())
	assert.ErrorIs(t, err, ErrScanningRow)
}

func TestUserRepository_RemoveByID(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = ?")).
		WithArgs("a@x").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM users").
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.RemoveByID(context.Background(), "a@x"))
	assert.ErrorIs(t, repo.RemoveByID(context.Background(), "ghost"), ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

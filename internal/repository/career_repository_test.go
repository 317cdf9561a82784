package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unahur-dev/academico-api/internal/models"
	appErrors "github.com/unahur-dev/academico-api/pkg/errors"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCareerRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCareerRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nombre", "anios"}).
		AddRow(1, "Informatica", 5).
		AddRow(2, "Enfermeria", 4)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, nombre, anios FROM carreras ORDER BY id ASC LIMIT $1 OFFSET $2")).
		WithArgs(10, 0).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM carreras")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	careers, total, err := repo.List(context.Background(), models.PageQuery{})
	require.NoError(t, err)
	assert.Len(t, careers, 2)
	assert.Equal(t, 2, total)
	assert.Equal(t, "Informatica", careers[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCareerRepositoryListClampsPagination(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCareerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, nombre, anios FROM carreras ORDER BY id ASC LIMIT $1 OFFSET $2")).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "anios"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM carreras")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, _, err := repo.List(context.Background(), models.PageQuery{Page: -3, PageSize: 0})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCareerRepositoryCreateReturnsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCareerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO carreras (nombre, anios) VALUES ($1, $2) RETURNING id")).
		WithArgs("Informatica", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	career := &models.Career{Name: "Informatica", Years: 5}
	require.NoError(t, repo.Create(context.Background(), career))
	assert.Equal(t, 7, career.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCareerRepositoryCreateDuplicate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCareerRepository(db)

	mock.ExpectQuery("INSERT INTO carreras").
		WithArgs("Informatica", 5).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.Career{Name: "Informatica", Years: 5})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrDuplicate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCareerRepositoryDeleteNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCareerRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM carreras WHERE id = $1")).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCareerRepositoryUpdateNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCareerRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE carreras SET nombre = $2, anios = $3 WHERE id = $1")).
		WithArgs(42, "Medicina", 6).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Career{ID: 42, Name: "Medicina", Years: 6})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

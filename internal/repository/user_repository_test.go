package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unahur-dev/academico-api/internal/models"
	appErrors "github.com/unahur-dev/academico-api/pkg/errors"
)

func TestUserRepositoryFindByName(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, password FROM users WHERE name = $1")).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "password"}).AddRow(5, "admin", "$2a$10$hash"))

	user, err := repo.FindByName(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, 5, user.ID)
	assert.Equal(t, "admin", user.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByNameMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, password FROM users WHERE name = $1")).
		WithArgs("nadie").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByName(context.Background(), "nadie")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserRepositoryCreateDuplicateName(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("admin", "$2a$10$hash").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.User{Name: "admin", PasswordHash: "$2a$10$hash"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrDuplicate))
}

func TestUserRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, password FROM users ORDER BY id ASC LIMIT $1 OFFSET $2")).
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "password"}).AddRow(11, "carlos", "x"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	users, total, err := repo.List(context.Background(), models.PageQuery{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 12, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

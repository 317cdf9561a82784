package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/unahur-dev/academico-api/internal/models"
	appErrors "github.com/unahur-dev/academico-api/pkg/errors"
)

type mockUserRepo struct {
	users     []models.User
	total     int
	byID      *models.User
	findErr   error
	createErr error
	updateErr error
	deleteErr error

	created *models.User
	updated *models.User
}

func (m *mockUserRepo) List(ctx context.Context, q models.PageQuery) ([]models.User, int, error) {
	return m.users, m.total, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.byID, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 1
	m.created = user
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = user
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id int) error {
	return m.deleteErr
}

func newUserService(repo *mockUserRepo) *UserService {
	return NewUserService(repo, validator.New(), zap.NewNop(), &recordingSink{})
}

func TestUserServiceCreateHashesPassword(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newUserService(repo)

	user, err := svc.Create(context.Background(), UserRequest{Name: "admin", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	require.NotNil(t, repo.created)
	assert.NotEqual(t, "hunter2", repo.created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("hunter2")))
}

func TestUserServiceCreateValidation(t *testing.T) {
	repo := &mockUserRepo{}
	svc := newUserService(repo)

	_, err := svc.Create(context.Background(), UserRequest{Name: "admin"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Nil(t, repo.created)
}

func TestUserServiceCreateDuplicate(t *testing.T) {
	dup := appErrors.Clone(appErrors.ErrDuplicate, "existe otro usuario con el mismo nombre")
	svc := newUserService(&mockUserRepo{createErr: dup})

	_, err := svc.Create(context.Background(), UserRequest{Name: "admin", Password: "hunter2"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrDuplicate))
}

func TestUserServiceUpdateRehashesPassword(t *testing.T) {
	repo := &mockUserRepo{byID: &models.User{ID: 3, Name: "old", PasswordHash: "old-hash"}}
	svc := newUserService(repo)

	user, err := svc.Update(context.Background(), 3, UserRequest{Name: "nuevo", Password: "fresh"})
	require.NoError(t, err)
	assert.Equal(t, "nuevo", user.Name)
	require.NotNil(t, repo.updated)
	assert.NotEqual(t, "old-hash", repo.updated.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.updated.PasswordHash), []byte("fresh")))
}

func TestUserServiceUpdateNotFound(t *testing.T) {
	svc := newUserService(&mockUserRepo{findErr: sql.ErrNoRows})

	_, err := svc.Update(context.Background(), 9, UserRequest{Name: "x", Password: "y"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestUserServiceDeleteNotFound(t *testing.T) {
	svc := newUserService(&mockUserRepo{deleteErr: sql.ErrNoRows})

	err := svc.Delete(context.Background(), 9)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

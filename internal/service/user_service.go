package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unahur-dev/academico-api/internal/models"
	appErrors "github.com/unahur-dev/academico-api/pkg/errors"
)

type userRepository interface {
	List(ctx context.Context, q models.PageQuery) ([]models.User, int, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int) error
}

// UserRequest carries the mutable fields of an account. The password arrives
// in plaintext and is hashed before it ever reaches the repository.
type UserRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserService orchestrates account management.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
	sink      AuditSink
}

// NewUserService constructs a UserService.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger, sink AuditSink) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if sink == nil {
		sink = nopSink{}
	}
	return &UserService{repo: repo, validator: validate, logger: logger, sink: sink}
}

// List returns one page of users plus pagination data. Password hashes stay
// out of the serialized output via the model's json tags.
func (s *UserService) List(ctx context.Context, q models.PageQuery) ([]models.User, models.PageInfo, error) {
	q = q.Normalize()
	users, total, err := s.repo.List(ctx, q)
	if err != nil {
		s.sink.Append("Error al consultar los usuarios")
		return nil, models.PageInfo{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	s.sink.Append("Consulta exitosa a la lista de usuarios")
	return users, models.PageInfo{Page: q.Page, PageSize: q.PageSize, Total: total}, nil
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id int) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.sink.Append("No se encontro el usuario")
			return nil, appErrors.Clone(appErrors.ErrNotFound, "usuario no encontrado")
		}
		s.sink.Append("Error al buscar el usuario")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	s.sink.Append("Busqueda de usuario exitosa")
	return user, nil
}

// Create registers a new account, storing only the bcrypt hash of the
// supplied password.
func (s *UserService) Create(ctx context.Context, req UserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		s.sink.Append("Error en POST, usuario invalido")
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{Name: strings.TrimSpace(req.Name), PasswordHash: hash}
	if err := s.repo.Create(ctx, user); err != nil {
		if appErrors.Is(err, appErrors.ErrDuplicate) {
			s.sink.Append("Error en POST, usuario duplicado")
			return nil, err
		}
		s.sink.Append("Error en POST, error al insertar")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}
	s.sink.Append("Post exitoso en la lista de usuarios")
	return user, nil
}

// Update replaces an account's name and password. The stored hash is always
// regenerated from the supplied plaintext.
func (s *UserService) Update(ctx context.Context, id int, req UserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.sink.Append("Usuario no encontrado")
			return nil, appErrors.Clone(appErrors.ErrNotFound, "usuario no encontrado")
		}
		s.sink.Append("Error al buscar el usuario")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user.Name = strings.TrimSpace(req.Name)
	user.PasswordHash = hash

	if err := s.repo.Update(ctx, user); err != nil {
		if appErrors.Is(err, appErrors.ErrDuplicate) {
			s.sink.Append("Error de validacion al actualizar el usuario")
			return nil, err
		}
		s.sink.Append("Error al intentar actualizar el usuario")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user")
	}
	s.sink.Append("Usuario actualizado correctamente")
	return user, nil
}

// Delete removes an account by id.
func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.sink.Append("Error: usuario no encontrado")
			return appErrors.Clone(appErrors.ErrNotFound, "usuario no encontrado")
		}
		s.sink.Append("Error al intentar eliminar el usuario")
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete user")
	}
	s.sink.Append("Usuario eliminado con exito")
	return nil
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/unahur-dev/academico-api/internal/models"
	appErrors "github.com/unahur-dev/academico-api/pkg/errors"
)

type authUserRepository interface {
	FindByName(ctx context.Context, name string) (*models.User, error)
}

// AuthService orchestrates the login flow: credential check followed by
// token issuance.
type AuthService struct {
	repo      authUserRepository
	tokens    *TokenService
	validator *validator.Validate
	logger    *zap.Logger
	sink      AuditSink
}

// NewAuthService constructs an AuthService.
func NewAuthService(repo authUserRepository, tokens *TokenService, validate *validator.Validate, logger *zap.Logger, sink AuditSink) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if sink == nil {
		sink = nopSink{}
	}
	return &AuthService{repo: repo, tokens: tokens, validator: validate, logger: logger, sink: sink}
}

// Login authenticates a user by name and password and returns an issued
// token with its decoded claims. Unknown names and wrong passwords collapse
// into the same invalid-credentials failure so the response never reveals
// which one was wrong.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		s.sink.Append("Login rechazado: payload invalido")
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	user, err := s.repo.FindByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.sink.Append(fmt.Sprintf("Login fallido para %s", req.Name))
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		s.sink.Append("Error al buscar el usuario durante el login")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		s.sink.Append(fmt.Sprintf("Login fallido para %s", req.Name))
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	token, claims, err := s.tokens.Issue(user.ID, user.Name)
	if err != nil {
		s.logger.Error("token issuance failed", zap.Error(err))
		s.sink.Append("Error al emitir el token")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue token")
	}

	s.sink.Append("Login succesfull")

	return &models.LoginResponse{
		ID:           user.ID,
		Username:     user.Name,
		Token:        token,
		DecodedToken: *claims,
	}, nil
}

// HashPassword produces a salted adaptive hash of the plaintext. Two hashes
// of the same plaintext differ but both verify.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

package service

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/unahur-dev/academico-api/internal/models"
	"github.com/unahur-dev/academico-api/pkg/config"
	appErrors "github.com/unahur-dev/academico-api/pkg/errors"
)

// Token verification failures. Both gate to 401 at the boundary but stay
// distinguishable for logging and tests.
var (
	ErrTokenExpired = appErrors.New("TOKEN_EXPIRED", http.StatusUnauthorized, "token expired")
	ErrTokenInvalid = appErrors.New("TOKEN_INVALID", http.StatusUnauthorized, "invalid token")
)

// TokenService issues and verifies stateless HS256 bearer tokens. There is
// no revocation: a token stays valid until its expiry, and rotating the
// secret invalidates everything outstanding.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService constructs a TokenService from the injected configuration.
// An unset expiration falls back to one hour. A negative expiration is kept
// as-is and issues already-expired tokens.
func NewTokenService(cfg config.JWTConfig) *TokenService {
	ttl := cfg.Expiration
	if ttl == 0 {
		ttl = time.Hour
	}
	return &TokenService{secret: []byte(cfg.Secret), ttl: ttl}
}

// Issue signs a token carrying the user identity with the configured expiry.
func (s *TokenService) Issue(userID int, username string) (string, *models.Claims, error) {
	issuedAt := time.Now().UTC()
	claims := &models.Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// Verify parses and validates a token, returning its claims. Expiry is
// reported as ErrTokenExpired; every other failure (bad signature, malformed
// structure, wrong algorithm) as ErrTokenInvalid. The check is pure: no
// store lookup happens.
func (s *TokenService) Verify(raw string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &models.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, appErrors.Wrap(err, ErrTokenExpired.Code, ErrTokenExpired.Status, ErrTokenExpired.Message)
		}
		return nil, appErrors.Wrap(err, ErrTokenInvalid.Code, ErrTokenInvalid.Status, ErrTokenInvalid.Message)
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(ErrTokenInvalid, "invalid token claims")
	}

	return claims, nil
}

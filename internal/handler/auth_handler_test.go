package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/unahur-dev/academico-api/internal/models"
	"github.com/unahur-dev/academico-api/internal/service"
	"github.com/unahur-dev/academico-api/pkg/config"
)

type fakeUserStore struct {
	user *models.User
	err  error
}

func (f *fakeUserStore) FindByName(ctx context.Context, name string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func newAuthRouter(store *fakeUserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenService(config.JWTConfig{Secret: "secret", Expiration: time.Hour})
	h := NewAuthHandler(service.NewAuthService(store, tokens, nil, nil, nil))
	r := gin.New()
	r.POST("/auth/login", h.Login)
	return r
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	router := newAuthRouter(&fakeUserStore{user: &models.User{ID: 5, Name: "admin", PasswordHash: string(hash)}})

	payload := strings.NewReader(`{"name":"admin","password":"password"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", payload)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 5, body["id"])
	assert.Equal(t, "admin", body["username"])
	assert.NotEmpty(t, body["token"])
	decoded, ok := body["decodedToken"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 5, decoded["id"])
}

func TestAuthHandlerLoginBadCredentials(t *testing.T) {
	router := newAuthRouter(&fakeUserStore{err: sql.ErrNoRows})

	payload := strings.NewReader(`{"name":"ghost","password":"x"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", payload)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid credentials", body["error"])
}

func TestAuthHandlerLoginMalformedBody(t *testing.T) {
	router := newAuthRouter(&fakeUserStore{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

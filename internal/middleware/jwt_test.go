package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unahur-dev/academico-api/internal/service"
	"github.com/unahur-dev/academico-api/pkg/config"
)

func newProtectedRouter(tokens *service.TokenService, adminID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	protected := r.Group("/", JWT(tokens, nil))
	protected.GET("/open", func(c *gin.Context) {
		claims := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": claims.UserID})
	})
	admin := protected.Group("/", RequireAdmin(adminID, nil))
	admin.POST("/restricted", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func testTokens() *service.TokenService {
	return service.NewTokenService(config.JWTConfig{Secret: "secret", Expiration: time.Hour})
}

func TestJWTMissingToken(t *testing.T) {
	router := newProtectedRouter(testTokens(), 5)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/open", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestJWTRawTokenAccepted(t *testing.T) {
	tokens := testTokens()
	router := newProtectedRouter(tokens, 5)
	token, _, err := tokens.Issue(3, "alguien")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":3`)
}

func TestJWTBearerPrefixStripped(t *testing.T) {
	tokens := testTokens()
	router := newProtectedRouter(tokens, 5)
	token, _, err := tokens.Issue(3, "alguien")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTGarbageToken(t *testing.T) {
	router := newProtectedRouter(testTokens(), 5)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "garbage")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTExpiredToken(t *testing.T) {
	expired := service.NewTokenService(config.JWTConfig{Secret: "secret", Expiration: -time.Minute})
	verifier := testTokens()
	router := newProtectedRouter(verifier, 5)
	token, _, err := expired.Issue(3, "alguien")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	tokens := testTokens()
	router := newProtectedRouter(tokens, 5)
	token, _, err := tokens.Issue(5, "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/restricted", nil)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRequireAdminRejectsOthers(t *testing.T) {
	tokens := testTokens()
	router := newProtectedRouter(tokens, 5)
	token, _, err := tokens.Issue(3, "alguien")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/restricted", nil)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

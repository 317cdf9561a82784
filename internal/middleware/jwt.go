package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/unahur-dev/academico-api/internal/models"
	"github.com/unahur-dev/academico-api/internal/service"
	appErrors "github.com/unahur-dev/academico-api/pkg/errors"
	"github.com/unahur-dev/academico-api/pkg/response"
)

// ContextUserKey is the gin context key storing the verified token claims.
const ContextUserKey = "currentUser"

// JWT protects routes by requiring a valid token in the Authorization
// header. The header carries the raw token; a "Bearer " prefix is tolerated
// and stripped. Missing, malformed and expired tokens all gate to 401.
func JWT(tokens *service.TokenService, sink service.AuditSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)
		if raw == "" {
			if sink != nil {
				sink.Append("Peticion rechazada: sin token")
			}
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthenticated, "token requerido"))
			c.Abort()
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			if sink != nil {
				sink.Append("Peticion rechazada: token invalido")
			}
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// RequireAdmin allows the request through only when the authenticated user
// carries the administrator id. It must run after JWT.
func RequireAdmin(adminID int, sink service.AuditSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := CurrentUser(c)
		if claims == nil {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthenticated, "token requerido"))
			c.Abort()
			return
		}
		if claims.UserID != adminID {
			if sink != nil {
				sink.Append(fmt.Sprintf("Acceso denegado para el usuario %d", claims.UserID))
			}
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "se requieren privilegios de administrador"))
			c.Abort()
			return
		}
		if sink != nil {
			sink.Append("Credenciales de administrador verificadas correctamente")
		}
		c.Next()
	}
}

// CurrentUser returns the claims stored by JWT, or nil when absent.
func CurrentUser(c *gin.Context) *models.Claims {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.Claims)
	if !ok {
		return nil
	}
	return claims
}

func extractToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

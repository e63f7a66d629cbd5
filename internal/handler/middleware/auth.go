package middleware

import (
	"log/slog"
	"strings"

	"academy-booking/internal/domain/client"
	"academy-booking/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const ctxSessionClientKey = "session_client"

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// OptionalAuth authenticates the request if a token is present, but does not abort on failure.
// Anonymous users may still book as guests.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			// No token present; continue without setting context.
			c.Next()
			return
		}

		acting, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			// Invalid token; continue without aborting.
			slog.Debug("Ignoring invalid session token", "error", err.Error())
			c.Next()
			return
		}

		c.Set(ctxSessionClientKey, acting)
		c.Set("jwt_claims", map[string]any{
			"client_id": acting.ID(),
		})
		c.Next()
	}
}

// GetSessionClient returns the signed-in client, or NoClient for anonymous requests.
func GetSessionClient(c *gin.Context) client.Acting {
	v, exists := c.Get(ctxSessionClientKey)
	if !exists {
		return client.NoClient()
	}
	acting, ok := v.(client.Acting)
	if !ok {
		return client.NoClient()
	}
	return acting
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

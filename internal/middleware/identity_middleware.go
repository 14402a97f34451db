package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"palaver/internal/identity"
	"palaver/internal/services"
	"palaver/pkg/logger"
)

// IdentityMiddleware attaches the verified caller identity to the
// request context when a valid bearer token is present. It never
// aborts: operations that require authentication reject absent
// identities themselves, so a bad token and no token look the same.
func IdentityMiddleware(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if id, ok := auth.VerifyToken(c.Request.Context(), token); ok {
			ctx := identity.WithIdentity(c.Request.Context(), id)
			ctx = context.WithValue(ctx, logger.UsernameKey, id.Username)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/sharesarthi/share_recovery_crm/internal/core/ports/services"
)

// APITokenAuth authenticates collaborator processes via the x-api-key header.
// A valid token short-circuits the JWT middleware; anything else falls through
// so the JWT path can still reject the request.
func APITokenAuth(tokenSvc services.APITokenSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("x-api-key")
		if apiKey == "" {
			c.Next()
			return
		}

		user, err := tokenSvc.ValidateToken(c.Request.Context(), apiKey)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Warn("API token validation failed", "error", err)
			c.Next()
			return
		}

		ctxWithUser := context.WithValue(c.Request.Context(), userIDKey, user.UserID)
		c.Request = c.Request.WithContext(ctxWithUser)
		c.Set(string(userIDKey), user.UserID)
		c.Set("authMethod", "api_token")
		c.Next()
	}
}

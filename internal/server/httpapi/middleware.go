package httpapi

import (
	"net/http"
	"strings"

	"github.com/cliniclink/cliniclink/internal/server/auth"
	"github.com/gin-gonic/gin"
)

// Context keys populated by AuthRequired.
const (
	ctxUserID    = "user_id"
	ctxSessionID = "session_id"
	ctxRole      = "role"
)

// AuthRequired validates the bearer token and the session row it references.
// A valid but revoked or expired session is a 401 like any bad token, so
// clients treat logout-elsewhere the same as token expiry.
func AuthRequired(provider AuthProvider, secretKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			unauthenticated(c)
			return
		}

		claims, err := auth.ParseToken(token, secretKey)
		if err != nil {
			unauthenticated(c)
			return
		}

		if _, err := provider.ValidateSession(c.Request.Context(), claims.SessionID); err != nil {
			unauthenticated(c)
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxSessionID, claims.SessionID)
		c.Set(ctxRole, string(claims.Role))
		c.Next()
	}
}

func unauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
}

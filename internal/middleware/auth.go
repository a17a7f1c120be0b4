package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openstays/stay-booking/internal/session"
)

const (
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"
	ContextUserEmail = "userEmail"
	ContextUserName  = "userName"
	ContextToken     = "sessionToken"
)

// AuthMiddleware resolves the session cookie to an identity and stores
// it on the request context. No cookie, an unknown token and an expired
// token all read the same from outside: 401.
func AuthMiddleware(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			return
		}

		data, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session_store_error"})
			return
		}
		if data == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			return
		}

		c.Set(ContextUserID, data.UserID)
		c.Set(ContextUserRole, data.Role)
		c.Set(ContextUserEmail, data.Email)
		c.Set(ContextUserName, data.Name)
		c.Set(ContextToken, token)

		c.Next()
	}
}

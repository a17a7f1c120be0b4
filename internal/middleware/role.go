package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openstays/stay-booking/internal/models"
)

// RequireRole gates a route group to the given roles. It assumes
// AuthMiddleware already ran and stored the role in the context.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get(ContextUserRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			return
		}

		role, ok := roleVal.(models.Role)
		if !ok || !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role_not_allowed"})
			return
		}

		c.Next()
	}
}

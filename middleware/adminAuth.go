package middleware

import (
	"net/http"

	"flexspace/models"

	"github.com/gin-gonic/gin"
)

// AdminOnly gates a route group to authenticated admins. Must run after
// JWTAuthMiddleware, which sets the role in the context.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

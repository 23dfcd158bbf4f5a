package handlers

import (
	"net/http"

	"flexspace/services/user"
	"flexspace/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes administrative endpoints.
type AdminHandler struct {
	UserSvc user.UserService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userSvc user.UserService) *AdminHandler {
	return &AdminHandler{UserSvc: userSvc}
}

// GetAllUsers handles GET /api/admin/users.
func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	users, err := h.UserSvc.GetAllUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// HealthCheck reports process health for load balancers and probes.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}

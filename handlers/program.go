package handlers

import (
	"net/http"

	"flexspace/models"
	"flexspace/services/program"

	"github.com/gin-gonic/gin"
)

// ProgramHandler exposes program and enrollment endpoints.
type ProgramHandler struct {
	Service program.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(svc program.ProgramService) *ProgramHandler {
	return &ProgramHandler{Service: svc}
}

// ListPrograms handles GET /api/programs.
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	programs, err := h.Service.ListPrograms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch programs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"programs": programs})
}

// GetProgram handles GET /api/programs/:id.
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	p, err := h.Service.GetProgram(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateProgram handles POST /api/programs (admin).
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var input models.ProgramInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	p, err := h.Service.CreateProgram(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UpdateProgram handles PUT /api/programs/:id (admin).
func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	var input models.ProgramInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	p, err := h.Service.UpdateProgram(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProgram handles DELETE /api/programs/:id (admin).
func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	if err := h.Service.DeleteProgram(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Apply handles POST /api/programs/:id/apply.
func (h *ProgramHandler) Apply(c *gin.Context) {
	app, err := h.Service.Apply(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app)
}

// ListApplications handles GET /api/programs/:id/applications (admin).
func (h *ProgramHandler) ListApplications(c *gin.Context) {
	apps, err := h.Service.ListApplications(c.Request.Context(), c.Param("id"), c.Query("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch applications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// DecideApplication handles POST /api/admin/applications/:id/decide.
func (h *ProgramHandler) DecideApplication(c *gin.Context) {
	var req models.DecideApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Service.Decide(c.Request.Context(), c.Param("id"), req.Accept); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

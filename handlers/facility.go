package handlers

import (
	"net/http"

	"flexspace/models"
	"flexspace/services/facility"

	"github.com/gin-gonic/gin"
)

// FacilityHandler exposes facility management endpoints.
type FacilityHandler struct {
	Service facility.FacilityService
}

// NewFacilityHandler creates a new FacilityHandler.
func NewFacilityHandler(svc facility.FacilityService) *FacilityHandler {
	return &FacilityHandler{Service: svc}
}

// ListFacilities handles GET /api/facilities.
func (h *FacilityHandler) ListFacilities(c *gin.Context) {
	facilities, err := h.Service.ListFacilities(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch facilities"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"facilities": facilities})
}

// GetFacility handles GET /api/facilities/:id.
func (h *FacilityHandler) GetFacility(c *gin.Context) {
	f, err := h.Service.GetFacility(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, f)
}

// CreateFacility handles POST /api/facilities (admin).
func (h *FacilityHandler) CreateFacility(c *gin.Context) {
	var input models.FacilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	f, err := h.Service.CreateFacility(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, f)
}

// UpdateFacility handles PUT /api/facilities/:id (admin).
func (h *FacilityHandler) UpdateFacility(c *gin.Context) {
	var input models.FacilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	f, err := h.Service.UpdateFacility(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, f)
}

// DeleteFacility handles DELETE /api/facilities/:id (admin).
func (h *FacilityHandler) DeleteFacility(c *gin.Context) {
	if err := h.Service.DeleteFacility(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

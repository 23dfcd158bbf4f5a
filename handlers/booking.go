package handlers

import (
	"errors"
	"net/http"

	bookingRepo "flexspace/database/repository/booking"
	"flexspace/models"
	"flexspace/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking admission engine over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// statusFor maps admission error codes to HTTP statuses.
func statusFor(code string) int {
	switch code {
	case booking.CodeUnauthenticated:
		return http.StatusUnauthorized
	case booking.CodeValidation:
		return http.StatusBadRequest
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeDuplicateSubmission,
		booking.CodeFacilityExclusivelyBooked,
		booking.CodeMaxConcurrentExceeded,
		booking.CodeCapacityExceeded:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a typed admission error, or a generic 500 for anything else.
func (h *BookingHandler) respondError(c *gin.Context, err error) {
	var adm *booking.AdmissionError
	if errors.As(err, &adm) {
		c.JSON(statusFor(adm.Code), gin.H{"error": adm.Message, "code": adm.Code})
		return
	}
	h.Logger.Error("unexpected booking error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again"})
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	userID := c.GetString("userID")
	resp, err := h.Service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CheckAvailability handles POST /api/bookings/availability. Advisory only.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	days, err := h.Service.CheckAvailability(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// ListBookings handles GET /api/bookings. Members see their own bookings;
// admins may filter across all of them.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	filter := bookingRepo.ListFilter{
		FacilityID: c.Query("facilityId"),
		Status:     c.Query("status"),
		FromDate:   c.Query("from"),
		ToDate:     c.Query("to"),
	}
	if c.GetString("role") == models.RoleAdmin {
		filter.UserID = c.Query("userId")
	} else {
		filter.UserID = c.GetString("userID")
	}

	bookings, err := h.Service.ListBookings(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetBooking handles GET /api/bookings/id/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if b.UserID != c.GetString("userID") && c.GetString("role") != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBooking handles DELETE /api/bookings/id/:id.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id := c.Param("id")

	b, err := h.Service.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if b.UserID != c.GetString("userID") && c.GetString("role") != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
		return
	}

	if err := h.Service.CancelBooking(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "booking cancelled"})
}

// ApproveBooking handles POST /api/bookings/id/:id/approve (admin).
func (h *BookingHandler) ApproveBooking(c *gin.Context) {
	if err := h.Service.ApproveBooking(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "booking approved"})
}

// RejectBooking handles POST /api/bookings/id/:id/reject (admin).
func (h *BookingHandler) RejectBooking(c *gin.Context) {
	var req models.RejectBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a rejection reason is required"})
		return
	}

	if err := h.Service.RejectBooking(c.Request.Context(), c.Param("id"), req.Reason); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "booking rejected"})
}

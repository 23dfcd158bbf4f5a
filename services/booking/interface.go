package booking

import (
	"context"

	bookingRepo "flexspace/database/repository/booking"
	"flexspace/models"
)

// BookingService is the single authoritative entry point for booking
// admission and lifecycle transitions. Client-side previews may reuse the
// pure pieces (TimeRange, DetectConflicts, EvaluateDay) but never decide
// admission.
type BookingService interface {
	// CreateBooking runs the full admission protocol and persists the booking
	// with status pending. Rejections are returned as *AdmissionError.
	CreateBooking(ctx context.Context, userID string, req models.CreateBookingRequest) (*models.CreateBookingResponse, error)

	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, filter bookingRepo.ListFilter) ([]models.Booking, error)

	// CancelBooking transitions any non-terminal booking to cancelled.
	CancelBooking(ctx context.Context, id string) error

	// ApproveBooking flips a pending booking to approved after re-running the
	// capacity policy against the current committed state.
	ApproveBooking(ctx context.Context, id string) error

	// RejectBooking flips a pending booking to rejected with a reason.
	RejectBooking(ctx context.Context, id, reason string) error

	// CheckAvailability is the advisory pre-submission check: the same pure
	// expansion/conflict/policy pipeline, evaluated outside any transaction.
	CheckAvailability(ctx context.Context, req models.CreateBookingRequest) ([]models.DayAvailability, error)

	// CompleteElapsedBookings is the periodic sweep transitioning approved
	// bookings whose end date has passed to completed.
	CompleteElapsedBookings(ctx context.Context) (int64, error)
}

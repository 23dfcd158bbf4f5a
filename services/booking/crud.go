package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "flexspace/database/repository/booking"
	"flexspace/models"
	"flexspace/utils"

	"go.uber.org/zap"
)

// GetBooking retrieves one booking.
func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.internal("failed to fetch booking", err)
	}
	if b == nil {
		return nil, NewAdmissionError(CodeNotFound, "booking not found")
	}
	return b, nil
}

// ListBookings returns bookings matching the filter.
func (s *DefaultBookingService) ListBookings(ctx context.Context, filter bookingRepo.ListFilter) ([]models.Booking, error) {
	bookings, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, s.internal("failed to list bookings", err)
	}
	return bookings, nil
}

// CancelBooking transitions a non-terminal booking to cancelled. Ownership
// checks happen at the handler layer.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, id string) error {
	b, err := s.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if b.Terminal() {
		return NewAdmissionError(CodeValidation, "booking is already %s", b.Status)
	}
	// The status read above is the precondition of the update; a transition
	// that lands in between loses here instead of being overwritten.
	if err := s.Repo.UpdateStatus(ctx, id, b.Status, models.BookingStatusCancelled, ""); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			return NewAdmissionError(CodeValidation, "booking status changed, refresh and retry")
		}
		return s.internal("failed to cancel booking", err)
	}
	return nil
}

// CompleteElapsedBookings transitions approved bookings whose end date has
// fully elapsed to completed. Pure time-based batch update; it never touches
// the admission invariant.
func (s *DefaultBookingService) CompleteElapsedBookings(ctx context.Context) (int64, error) {
	today := time.Now().Format(dateLayout)
	n, err := s.Repo.CompleteElapsed(ctx, today)
	if err != nil {
		return 0, s.internal("completion sweep failed", err)
	}
	if n > 0 {
		utils.GetLogger().Info("completion sweep finished", zap.Int64("completed", n))
	}
	return n, nil
}

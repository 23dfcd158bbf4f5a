package bookingRepo

import (
	"context"
	"errors"
	"time"

	"flexspace/models"
)

// ErrStatusConflict is returned by UpdateStatus when the booking no longer
// holds the expected status, typically because a concurrent transition won.
var ErrStatusConflict = errors.New("booking status changed concurrently")

// ListFilter narrows admin booking listings.
type ListFilter struct {
	FacilityID string
	UserID     string
	Status     string
	FromDate   string // inclusive, "YYYY-MM-DD"
	ToDate     string // inclusive, "YYYY-MM-DD"
}

// BookingRepository defines data access for the bookings collection.
//
// All methods honour the passed context; inside WithTransaction the context is
// a mongo session context, so repository calls made from the callback
// participate in the transaction.
type BookingRepository interface {
	Insert(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, filter ListFilter) ([]models.Booking, error)

	// ListActiveByFacility returns pending/approved bookings for a facility
	// whose date range intersects [fromDate, toDate]. This is the coarse
	// pre-filter; exact occurrence overlap is refined in memory by the
	// admission engine.
	ListActiveByFacility(ctx context.Context, facilityID, fromDate, toDate string) ([]models.Booking, error)

	// FindRecentDuplicate looks for a booking by the same user for the same
	// facility and start slot created within the given window. Heuristic
	// double-submit guard, not a strong idempotency key.
	FindRecentDuplicate(ctx context.Context, userID, facilityID, startDate, startTime string, window time.Duration) (*models.Booking, error)

	// UpdateStatus transitions a booking from fromStatus to toStatus. The
	// expected current status is part of the update filter, so a racing
	// transition loses with ErrStatusConflict instead of overwriting.
	UpdateStatus(ctx context.Context, id, fromStatus, toStatus, rejectionReason string) error

	// CompleteElapsed flips approved bookings whose endDate has fully elapsed
	// (endDate < today) to completed. Returns the number of bookings updated.
	CompleteElapsed(ctx context.Context, today string) (int64, error)

	// WithTransaction runs fn inside a causally-consistent session
	// transaction. Transient transaction errors are retried by the driver;
	// a non-transient error returned by fn aborts the transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "flexspace/database/repository/booking"
	facilityRepo "flexspace/database/repository/facility"
	userRepo "flexspace/database/repository/user"
	"flexspace/models"
	"flexspace/services/notification"
	"flexspace/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdmissionConfig carries the validation constants for booking requests.
// PurposeMinLen is deliberately configuration, not a literal: two historical
// call sites disagreed on the value, so it has exactly one source of truth.
type AdmissionConfig struct {
	PurposeMinLen      int
	PurposeMaxLen      int
	OrganizationMaxLen int
	DuplicateWindow    time.Duration
}

// DefaultBookingService is the production booking engine.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	FacilityRepo facilityRepo.FacilityRepository
	UserRepo     userRepo.UserRepository
	Notify       notification.Enqueuer
	Config       AdmissionConfig
}

var validCategories = map[string]bool{
	models.CategoryPersonal: true,
	models.CategoryClub:     true,
	models.CategoryEvent:    true,
	models.CategoryClass:    true,
}

// validateRequest checks input shape before anything touches the store.
func (s *DefaultBookingService) validateRequest(req *models.CreateBookingRequest) (TimeRange, *AdmissionError) {
	tr, err := ParseTimeRange(req.StartDate, req.EndDate, req.StartTime, req.EndTime, req.RecurrenceRule)
	if err != nil {
		return TimeRange{}, err.(*AdmissionError)
	}
	if !validCategories[req.Category] {
		return TimeRange{}, NewAdmissionError(CodeValidation, "unknown category %q", req.Category)
	}
	if n := len(req.Purpose); n < s.Config.PurposeMinLen || n > s.Config.PurposeMaxLen {
		return TimeRange{}, NewAdmissionError(CodeValidation,
			"purpose must be between %d and %d characters", s.Config.PurposeMinLen, s.Config.PurposeMaxLen)
	}
	if len(req.Organization) > s.Config.OrganizationMaxLen {
		return TimeRange{}, NewAdmissionError(CodeValidation,
			"organization must be at most %d characters", s.Config.OrganizationMaxLen)
	}
	if req.NumberOfParticipants < 1 {
		return TimeRange{}, NewAdmissionError(CodeValidation, "numberOfParticipants must be at least 1")
	}
	return tr, nil
}

// CreateBooking runs the full admission protocol:
// validation → submitter resolution → duplicate guard → transaction
// (re-read facility, re-read conflicts, policy, insert pending) → notify.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, userID string, req models.CreateBookingRequest) (*models.CreateBookingResponse, error) {
	logger := utils.GetLogger()

	if userID == "" {
		return nil, NewAdmissionError(CodeUnauthenticated, "sign in to create a booking")
	}

	tr, rej := s.validateRequest(&req)
	if rej != nil {
		return nil, rej
	}

	// Resolve the submitter. A missing profile for an authenticated principal
	// is a data inconsistency, not a user mistake.
	submitter, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, s.internal("failed to resolve submitter", err)
	}
	if submitter == nil {
		logger.Error("authenticated user has no profile record", zap.String("userID", userID))
		return nil, NewAdmissionError(CodeNotFound, "user profile not found")
	}

	// Duplicate-submission guard: same user, facility and start slot within
	// the window. A heuristic safety net against double clicks and retry
	// storms, not a strong idempotency key.
	dup, err := s.Repo.FindRecentDuplicate(ctx, userID, req.FacilityID, req.StartDate, req.StartTime, s.Config.DuplicateWindow)
	if err != nil {
		return nil, s.internal("duplicate guard query failed", err)
	}
	if dup != nil {
		return nil, NewAdmissionError(CodeDuplicateSubmission,
			"an identical booking is already being processed")
	}

	booking := &models.Booking{
		ID:                   uuid.New().String(),
		FacilityID:           req.FacilityID,
		UserID:               submitter.ID,
		UserName:             submitter.Name,
		UserEmail:            submitter.Email,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		RecurrenceRule:       req.RecurrenceRule,
		Purpose:              req.Purpose,
		Category:             req.Category,
		Organization:         req.Organization,
		NumberOfParticipants: req.NumberOfParticipants,
		Status:               models.BookingStatusPending,
	}

	var facility *models.Facility
	txnErr := s.Repo.WithTransaction(ctx, func(sc context.Context) error {
		// Re-read everything inside the transaction so the policy decision
		// reflects committed state.
		f, err := s.FacilityRepo.GetByID(sc, req.FacilityID)
		if err != nil {
			return fmt.Errorf("facility re-read failed: %w", err)
		}
		if f == nil {
			return NewAdmissionError(CodeNotFound, "facility not found")
		}
		facility = f

		// Mongo validates write sets at commit, not read sets. Writing the
		// facility document makes two concurrent admissions for the same
		// facility conflict: the loser aborts, retries, and re-evaluates
		// against the winner's committed booking.
		if err := s.FacilityRepo.BumpBookingSeq(sc, req.FacilityID); err != nil {
			return fmt.Errorf("facility write anchor failed: %w", err)
		}

		existing, err := s.Repo.ListActiveByFacility(sc, req.FacilityID, req.StartDate, req.EndDate)
		if err != nil {
			return fmt.Errorf("conflict query failed: %w", err)
		}

		if rej := Evaluate(f, tr, existing, req.NumberOfParticipants); rej != nil {
			return rej
		}

		booking.CreatedAt = time.Now()
		return s.Repo.Insert(sc, booking)
	})
	if txnErr != nil {
		if adm, ok := txnErr.(*AdmissionError); ok {
			return nil, adm
		}
		return nil, s.internal("admission transaction failed", txnErr)
	}

	// Post-commit fan-out. Best effort: the booking is committed and a
	// notification failure must never surface to the submitter.
	s.enqueueNotify(models.NotifyPayload{
		Event:        models.NotifyBookingCreated,
		BookingID:    booking.ID,
		FacilityID:   facility.ID,
		FacilityName: facility.Name,
		UserID:       submitter.ID,
		UserName:     submitter.Name,
		UserEmail:    submitter.Email,
		StartDate:    booking.StartDate,
		EndDate:      booking.EndDate,
		StartTime:    booking.StartTime,
		EndTime:      booking.EndTime,
		Status:       booking.Status,
	})

	return &models.CreateBookingResponse{
		Success:   true,
		BookingID: booking.ID,
		Message:   "booking submitted and awaiting approval",
	}, nil
}

func (s *DefaultBookingService) enqueueNotify(payload models.NotifyPayload) {
	if s.Notify == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Notify.EnqueueNotify(ctx, payload); err != nil {
		utils.GetLogger().Warn("failed to enqueue notification",
			zap.String("event", payload.Event),
			zap.String("bookingID", payload.BookingID),
			zap.Error(err))
	}
}

// internal logs the underlying cause and returns an opaque retryable error.
func (s *DefaultBookingService) internal(msg string, err error) *AdmissionError {
	utils.GetLogger().Error(msg, zap.Error(err))
	return NewAdmissionError(CodeInternal, "something went wrong, please try again")
}

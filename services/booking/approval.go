package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "flexspace/database/repository/booking"
	"flexspace/models"
)

// ApproveBooking flips a pending booking to approved.
//
// Approval is not a pure status flip: other bookings may have been approved
// since this one was admitted, so the capacity policy is re-evaluated against
// the current committed state inside the same transaction primitive. If the
// slot no longer holds, the approval is refused with the policy rejection.
func (s *DefaultBookingService) ApproveBooking(ctx context.Context, id string) error {
	var approved *models.Booking
	var facilityName string

	txnErr := s.Repo.WithTransaction(ctx, func(sc context.Context) error {
		b, err := s.Repo.GetByID(sc, id)
		if err != nil {
			return fmt.Errorf("booking re-read failed: %w", err)
		}
		if b == nil {
			return NewAdmissionError(CodeNotFound, "booking not found")
		}
		if b.Status != models.BookingStatusPending {
			return NewAdmissionError(CodeValidation, "only pending bookings can be approved, got %s", b.Status)
		}

		f, err := s.FacilityRepo.GetByID(sc, b.FacilityID)
		if err != nil {
			return fmt.Errorf("facility re-read failed: %w", err)
		}
		if f == nil {
			return NewAdmissionError(CodeNotFound, "facility not found")
		}
		facilityName = f.Name

		// Same write anchor as admission: a concurrent admission or approval
		// for this facility must conflict with ours, not slide past it.
		if err := s.FacilityRepo.BumpBookingSeq(sc, b.FacilityID); err != nil {
			return fmt.Errorf("facility write anchor failed: %w", err)
		}

		tr, perr := RangeOf(b)
		if perr != nil {
			return fmt.Errorf("stored booking has invalid range: %w", perr)
		}

		existing, err := s.Repo.ListActiveByFacility(sc, b.FacilityID, b.StartDate, b.EndDate)
		if err != nil {
			return fmt.Errorf("conflict query failed: %w", err)
		}
		// The booking under approval is itself pending and already counted;
		// exclude it before re-running the policy.
		others := existing[:0:0]
		for _, e := range existing {
			if e.ID != b.ID {
				others = append(others, e)
			}
		}

		if rej := Evaluate(f, tr, others, b.NumberOfParticipants); rej != nil {
			return rej
		}

		if err := s.Repo.UpdateStatus(sc, id, models.BookingStatusPending, models.BookingStatusApproved, ""); err != nil {
			return err
		}
		approved = b
		return nil
	})
	if txnErr != nil {
		if adm, ok := txnErr.(*AdmissionError); ok {
			return adm
		}
		if errors.Is(txnErr, bookingRepo.ErrStatusConflict) {
			return NewAdmissionError(CodeValidation, "booking is no longer pending")
		}
		return s.internal("approval transaction failed", txnErr)
	}

	s.enqueueNotify(models.NotifyPayload{
		Event:        models.NotifyBookingApproved,
		BookingID:    approved.ID,
		FacilityID:   approved.FacilityID,
		FacilityName: facilityName,
		UserID:       approved.UserID,
		UserName:     approved.UserName,
		UserEmail:    approved.UserEmail,
		StartDate:    approved.StartDate,
		EndDate:      approved.EndDate,
		StartTime:    approved.StartTime,
		EndTime:      approved.EndTime,
		Status:       models.BookingStatusApproved,
	})
	return nil
}

// RejectBooking flips a pending booking to rejected with an operator-supplied
// reason.
func (s *DefaultBookingService) RejectBooking(ctx context.Context, id, reason string) error {
	if reason == "" {
		return NewAdmissionError(CodeValidation, "a rejection reason is required")
	}

	b, err := s.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if b.Status != models.BookingStatusPending {
		return NewAdmissionError(CodeValidation, "only pending bookings can be rejected, got %s", b.Status)
	}

	if err := s.Repo.UpdateStatus(ctx, id, models.BookingStatusPending, models.BookingStatusRejected, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			return NewAdmissionError(CodeValidation, "booking is no longer pending")
		}
		return s.internal("failed to reject booking", err)
	}

	s.enqueueNotify(models.NotifyPayload{
		Event:      models.NotifyBookingRejected,
		BookingID:  b.ID,
		FacilityID: b.FacilityID,
		UserID:     b.UserID,
		UserName:   b.UserName,
		UserEmail:  b.UserEmail,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Status:     models.BookingStatusRejected,
		Reason:     reason,
	})
	return nil
}

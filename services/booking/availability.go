package booking

import (
	"context"

	"flexspace/models"
)

// CheckAvailability runs the same pure expansion/conflict/policy pipeline the
// admission transaction uses, but against a plain (non-transactional) read.
// It exists for optimistic pre-submission feedback only. The answer can go
// stale the moment it is produced, and the admission transaction always
// re-decides from scratch.
func (s *DefaultBookingService) CheckAvailability(ctx context.Context, req models.CreateBookingRequest) ([]models.DayAvailability, error) {
	tr, rej := s.validateRequest(&req)
	if rej != nil {
		return nil, rej
	}

	f, err := s.FacilityRepo.GetByID(ctx, req.FacilityID)
	if err != nil {
		return nil, s.internal("failed to fetch facility", err)
	}
	if f == nil {
		return nil, NewAdmissionError(CodeNotFound, "facility not found")
	}

	existing, err := s.Repo.ListActiveByFacility(ctx, req.FacilityID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, s.internal("failed to fetch existing bookings", err)
	}

	var days []models.DayAvailability
	for occ := range tr.Occurrences() {
		overlap := DetectConflicts(occ, existing, f.BufferMinutes)
		day := models.DayAvailability{
			Date:             occ.Date,
			Conflicts:        len(overlap.Bookings),
			BufferConflicts:  len(overlap.BufferOnly),
			ParticipantsUsed: overlap.Participants,
			Admissible:       true,
		}
		if dayRej := EvaluateDay(f, overlap, req.NumberOfParticipants); dayRej != nil {
			day.Admissible = false
			day.Reason = dayRej.Message
		}
		days = append(days, day)
	}
	return days, nil
}

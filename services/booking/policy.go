package booking

import "flexspace/models"

// Facility admission modes, derived from capacity and booking policy.
//
//   - exclusive: capacity == 1, or an explicit policy with allowOverlap false.
//     At most one booking per time window.
//   - concurrent: explicit policy with allowOverlap true. Up to maxConcurrent
//     bookings (not participants) may share a window.
//   - seats: capacity > 1 with no explicit policy. Overlap allowed while the
//     participant sum stays within capacity.
func exclusiveMode(f *models.Facility) bool {
	if f.Capacity == 1 {
		return true
	}
	if f.BookingPolicy != nil {
		return !f.BookingPolicy.AllowOverlap
	}
	return false
}

// EvaluateDay applies the facility's admission policy to one occurrence day.
// Returns nil if the candidate is admissible that day.
//
// Buffer semantics: in exclusive mode the buffer is a hard constraint. A
// candidate landing inside another booking's widened window is rejected even
// though the raw windows do not touch. In the shared modes the buffer stays
// advisory (surfaced by the availability endpoint) and only raw overlaps are
// counted.
func EvaluateDay(f *models.Facility, day DayOverlap, candidateParticipants int) *AdmissionError {
	if exclusiveMode(f) {
		if len(day.Bookings) > 0 || len(day.BufferOnly) > 0 {
			return NewAdmissionError(CodeFacilityExclusivelyBooked,
				"facility is already booked on %s for the requested time", day.Date)
		}
		return nil
	}

	if f.BookingPolicy != nil && f.BookingPolicy.AllowOverlap {
		if len(day.Bookings) >= f.BookingPolicy.MaxConcurrent {
			return NewAdmissionError(CodeMaxConcurrentExceeded,
				"facility is full on %s: at most %d concurrent bookings allowed", day.Date, f.BookingPolicy.MaxConcurrent)
		}
		return nil
	}

	if day.Participants+candidateParticipants > f.Capacity {
		return NewAdmissionError(CodeCapacityExceeded,
			"participant capacity exceeded on %s: %d existing + %d requested > %d",
			day.Date, day.Participants, candidateParticipants, f.Capacity)
	}
	return nil
}

// Evaluate runs the policy over every occurrence day of the candidate range.
// The candidate is rejected as a whole on the first failing day.
func Evaluate(f *models.Facility, tr TimeRange, existing []models.Booking, candidateParticipants int) *AdmissionError {
	for occ := range tr.Occurrences() {
		day := DetectConflicts(occ, existing, f.BufferMinutes)
		if rej := EvaluateDay(f, day, candidateParticipants); rej != nil {
			return rej
		}
	}
	return nil
}

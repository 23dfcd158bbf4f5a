package booking

import "flexspace/models"

// DayOverlap describes, for one occurrence day of a candidate, the existing
// bookings it collides with.
//
// Bookings holds raw time-window overlaps; these are what capacity decisions
// count. BufferOnly holds bookings the candidate touches only once their
// window is widened by the facility's buffer minutes on both ends.
type DayOverlap struct {
	Date         string
	Bookings     []models.Booking
	BufferOnly   []models.Booking
	Participants int // summed over raw overlaps
}

// overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Back-to-back windows sharing a boundary do not overlap.
func overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && e1 > s2
}

// DetectConflicts computes the overlap set for one candidate occurrence
// against a facility's existing bookings (pre-filtered to pending/approved).
// An existing recurring booking only conflicts on days its own recurrence
// includes; a multi-day non-recurring booking conflicts on every day in its
// range. Existing bookings that fail to parse are skipped; they cannot be
// meaningfully compared and were validated at their own admission time.
func DetectConflicts(cand Occurrence, existing []models.Booking, bufferMinutes int) DayOverlap {
	out := DayOverlap{Date: cand.Date}

	for _, b := range existing {
		tr, err := RangeOf(&b)
		if err != nil {
			continue
		}
		occ, ok := tr.OccursOn(cand.Date)
		if !ok {
			continue
		}

		if overlaps(cand.Start, cand.End, occ.Start, occ.End) {
			out.Bookings = append(out.Bookings, b)
			out.Participants += b.NumberOfParticipants
			continue
		}
		if bufferMinutes > 0 && overlaps(cand.Start, cand.End, occ.Start-bufferMinutes, occ.End+bufferMinutes) {
			out.BufferOnly = append(out.BufferOnly, b)
		}
	}
	return out
}

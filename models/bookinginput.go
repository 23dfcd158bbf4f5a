package models

// CreateBookingRequest is the payload accepted by the booking admission endpoint.
type CreateBookingRequest struct {
	FacilityID           string          `json:"facilityId" binding:"required"`
	StartDate            string          `json:"startDate" binding:"required"` // "YYYY-MM-DD"
	EndDate              string          `json:"endDate" binding:"required"`   // "YYYY-MM-DD"
	StartTime            string          `json:"startTime" binding:"required"` // "HH:MM"
	EndTime              string          `json:"endTime" binding:"required"`   // "HH:MM"
	Purpose              string          `json:"purpose" binding:"required"`
	Category             string          `json:"category" binding:"required"`
	Organization         string          `json:"organization"`
	NumberOfParticipants int             `json:"numberOfParticipants" binding:"required,min=1"`
	RecurrenceRule       *RecurrenceRule `json:"recurrenceRule"`
}

// CreateBookingResponse is returned on successful admission.
type CreateBookingResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"bookingId"`
	Message   string `json:"message"`
}

// RejectBookingRequest is the payload for an admin rejection.
type RejectBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// DayAvailability describes, for one calendar day of a candidate request, the
// existing bookings it would collide with. Used by the advisory availability
// endpoint; the admission transaction recomputes all of this authoritatively.
type DayAvailability struct {
	Date             string `json:"date"`
	Conflicts        int    `json:"conflicts"`
	BufferConflicts  int    `json:"bufferConflicts"`
	ParticipantsUsed int    `json:"participantsUsed"`
	Admissible       bool   `json:"admissible"`
	Reason           string `json:"reason,omitempty"`
}

package models

// Booking notification events dispatched after a state transition commits.
const (
	NotifyBookingCreated  = "booking_created"
	NotifyBookingApproved = "booking_approved"
	NotifyBookingRejected = "booking_rejected"
	NotifyProgramDecision = "program_decision"
)

// NotifyPayload is the task payload enqueued for the notification worker.
// Delivery is best-effort and never feeds back into the transition that
// produced it.
type NotifyPayload struct {
	Event        string `json:"event"`
	BookingID    string `json:"bookingId,omitempty"`
	FacilityID   string `json:"facilityId,omitempty"`
	FacilityName string `json:"facilityName,omitempty"`
	ProgramID    string `json:"programId,omitempty"`
	ProgramTitle string `json:"programTitle,omitempty"`
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	UserEmail    string `json:"userEmail"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
	StartTime    string `json:"startTime,omitempty"`
	EndTime      string `json:"endTime,omitempty"`
	Status       string `json:"status,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

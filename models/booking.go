package models

import "time"

// Booking statuses. Pending and approved bookings count toward a facility's
// capacity; rejected, cancelled and completed are terminal and excluded.
const (
	BookingStatusPending   = "pending"
	BookingStatusApproved  = "approved"
	BookingStatusRejected  = "rejected"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Booking categories.
const (
	CategoryPersonal = "personal"
	CategoryClub     = "club"
	CategoryEvent    = "event"
	CategoryClass    = "class"
)

// RecurrenceRule restricts a multi-day booking to the listed weekdays
// (0=Sunday .. 6=Saturday). An absent or empty rule means every calendar day
// in the booking's date range is occupied.
type RecurrenceRule struct {
	Days []int `bson:"days" json:"days"`
}

// Booking represents a reservation of a facility over a date range.
// Dates are "YYYY-MM-DD", times are "HH:MM" 24-hour wall clock, all in the
// deployment's local time zone. Bookings never span midnight.
type Booking struct {
	ID         string `bson:"id" json:"id"`
	FacilityID string `bson:"facilityId" json:"facilityId"`

	// Denormalized submitter snapshot taken at creation time.
	UserID    string `bson:"userId" json:"userId"`
	UserName  string `bson:"userName" json:"userName"`
	UserEmail string `bson:"userEmail" json:"userEmail"`

	StartDate      string          `bson:"startDate" json:"startDate"`
	EndDate        string          `bson:"endDate" json:"endDate"`
	StartTime      string          `bson:"startTime" json:"startTime"`
	EndTime        string          `bson:"endTime" json:"endTime"`
	RecurrenceRule *RecurrenceRule `bson:"recurrenceRule,omitempty" json:"recurrenceRule,omitempty"`

	Purpose              string `bson:"purpose" json:"purpose"`
	Category             string `bson:"category" json:"category"`
	Organization         string `bson:"organization,omitempty" json:"organization,omitempty"`
	NumberOfParticipants int    `bson:"numberOfParticipants" json:"numberOfParticipants"`

	Status          string    `bson:"status" json:"status"`
	RejectionReason string    `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}

// Terminal reports whether the booking's status admits no further transitions.
func (b *Booking) Terminal() bool {
	switch b.Status {
	case BookingStatusRejected, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// CountsTowardCapacity reports whether the booking occupies facility capacity.
func (b *Booking) CountsTowardCapacity() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusApproved
}

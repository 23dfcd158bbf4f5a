package models

import "time"

// Program statuses.
const (
	ProgramStatusOpen   = "open"
	ProgramStatusClosed = "closed"
)

// ProgramApplication statuses.
const (
	ApplicationStatusApplied   = "applied"
	ApplicationStatusAccepted  = "accepted"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusCancelled = "cancelled"
)

// Program is a recurring class or course with a simple enrolled-count ceiling.
// Unlike facility bookings, programs carry no buffer or overlap policy.
type Program struct {
	ID            string    `bson:"id" json:"id"`
	Title         string    `bson:"title" json:"title"`
	Description   string    `bson:"description,omitempty" json:"description,omitempty"`
	FacilityID    string    `bson:"facilityId,omitempty" json:"facilityId,omitempty"`
	Capacity      int       `bson:"capacity" json:"capacity"` // >= 1
	EnrolledCount int       `bson:"enrolledCount" json:"enrolledCount"`
	StartDate     string    `bson:"startDate" json:"startDate"`
	EndDate       string    `bson:"endDate" json:"endDate"`
	Schedule      string    `bson:"schedule,omitempty" json:"schedule,omitempty"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProgramApplication records a user's enrollment request for a program.
type ProgramApplication struct {
	ID        string    `bson:"id" json:"id"`
	ProgramID string    `bson:"programId" json:"programId"`
	UserID    string    `bson:"userId" json:"userId"`
	UserName  string    `bson:"userName" json:"userName"`
	UserEmail string    `bson:"userEmail" json:"userEmail"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// ProgramInput is the payload for creating or updating a program.
type ProgramInput struct {
	Title       string `json:"title" binding:"required,min=2,max=100"`
	Description string `json:"description"`
	FacilityID  string `json:"facilityId"`
	Capacity    int    `json:"capacity" binding:"required,min=1"`
	StartDate   string `json:"startDate" binding:"required"`
	EndDate     string `json:"endDate" binding:"required"`
	Schedule    string `json:"schedule"`
}

// DecideApplicationRequest is the payload for an admin enrollment decision.
type DecideApplicationRequest struct {
	Accept bool `json:"accept"`
}

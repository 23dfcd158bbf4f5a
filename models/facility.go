package models

import "time"

// BookingPolicy controls how overlapping bookings are admitted for a facility.
// When AllowOverlap is false the facility is exclusive regardless of its
// numeric capacity. When true, up to MaxConcurrent bookings (not participants)
// may hold overlapping time slots. A facility with no policy falls back to its
// numeric capacity: exclusive at capacity 1, participant-sum sharing above it.
type BookingPolicy struct {
	AllowOverlap  bool `bson:"allowOverlap" json:"allowOverlap"`
	MaxConcurrent int  `bson:"maxConcurrent" json:"maxConcurrent"`
}

// Facility represents a bookable space.
//
// Capacity semantics depend on the policy: 1 means exclusive single-occupant
// use; >1 without an explicit overlap policy means a numeric participant
// ceiling summed across overlapping bookings.
type Facility struct {
	ID            string         `bson:"id" json:"id"`
	Name          string         `bson:"name" json:"name"`
	Description   string         `bson:"description,omitempty" json:"description,omitempty"`
	Location      string         `bson:"location,omitempty" json:"location,omitempty"`
	Capacity      int            `bson:"capacity" json:"capacity"`           // >= 1
	BufferMinutes int            `bson:"bufferMinutes" json:"bufferMinutes"` // >= 0, setup/teardown cushion
	BookingPolicy *BookingPolicy `bson:"bookingPolicy,omitempty" json:"bookingPolicy,omitempty"`
	ImageURL      string         `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// FacilityInput is the payload for creating or updating a facility.
type FacilityInput struct {
	Name          string         `json:"name" binding:"required"`
	Description   string         `json:"description"`
	Location      string         `json:"location"`
	Capacity      int            `json:"capacity" binding:"required,min=1"`
	BufferMinutes int            `json:"bufferMinutes" binding:"min=0"`
	BookingPolicy *BookingPolicy `json:"bookingPolicy"`
	ImageURL      string         `json:"imageUrl"`
}

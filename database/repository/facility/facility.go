package facilityRepo

import (
	"context"

	"flexspace/models"
)

// FacilityRepository defines data access for the facilities collection.
type FacilityRepository interface {
	Create(ctx context.Context, facility *models.Facility) error
	GetByID(ctx context.Context, id string) (*models.Facility, error)
	GetAll(ctx context.Context) ([]models.Facility, error)
	Update(ctx context.Context, facility *models.Facility) error
	Delete(ctx context.Context, id string) error

	// BumpBookingSeq increments the facility's booking sequence counter.
	// Mongo transactions only detect conflicts on documents both sides
	// write, so every admission-path transaction must write the facility
	// document: concurrent admissions for the same facility then collide,
	// the loser aborts with a write conflict and its retry sees the
	// winner's committed booking.
	BumpBookingSeq(ctx context.Context, id string) error
}

package facility

import (
	"context"
	"fmt"

	facilityRepo "flexspace/database/repository/facility"
	"flexspace/models"

	"github.com/google/uuid"
)

// FacilityService manages the facility catalogue. Capacity and policy edits
// are deliberately outside the booking engine's transaction scope; the engine
// re-reads the facility on every admission.
type FacilityService interface {
	CreateFacility(ctx context.Context, input models.FacilityInput) (*models.Facility, error)
	GetFacility(ctx context.Context, id string) (*models.Facility, error)
	ListFacilities(ctx context.Context) ([]models.Facility, error)
	UpdateFacility(ctx context.Context, id string, input models.FacilityInput) (*models.Facility, error)
	DeleteFacility(ctx context.Context, id string) error
}

// DefaultFacilityService is the production implementation.
type DefaultFacilityService struct {
	Repo facilityRepo.FacilityRepository
}

func validatePolicy(input *models.FacilityInput) error {
	if input.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1")
	}
	if input.BufferMinutes < 0 {
		return fmt.Errorf("bufferMinutes must not be negative")
	}
	if input.BookingPolicy != nil && input.BookingPolicy.AllowOverlap && input.BookingPolicy.MaxConcurrent < 1 {
		return fmt.Errorf("maxConcurrent must be at least 1 when overlap is allowed")
	}
	return nil
}

// CreateFacility validates and persists a new facility.
func (s *DefaultFacilityService) CreateFacility(ctx context.Context, input models.FacilityInput) (*models.Facility, error) {
	if err := validatePolicy(&input); err != nil {
		return nil, err
	}

	facility := &models.Facility{
		ID:            uuid.New().String(),
		Name:          input.Name,
		Description:   input.Description,
		Location:      input.Location,
		Capacity:      input.Capacity,
		BufferMinutes: input.BufferMinutes,
		BookingPolicy: input.BookingPolicy,
		ImageURL:      input.ImageURL,
	}
	if err := s.Repo.Create(ctx, facility); err != nil {
		return nil, err
	}
	return facility, nil
}

// GetFacility retrieves one facility.
func (s *DefaultFacilityService) GetFacility(ctx context.Context, id string) (*models.Facility, error) {
	f, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("facility with id %s not found", id)
	}
	return f, nil
}

// ListFacilities returns all facilities.
func (s *DefaultFacilityService) ListFacilities(ctx context.Context) ([]models.Facility, error) {
	return s.Repo.GetAll(ctx)
}

// UpdateFacility applies an edit to an existing facility.
func (s *DefaultFacilityService) UpdateFacility(ctx context.Context, id string, input models.FacilityInput) (*models.Facility, error) {
	if err := validatePolicy(&input); err != nil {
		return nil, err
	}

	f, err := s.GetFacility(ctx, id)
	if err != nil {
		return nil, err
	}

	f.Name = input.Name
	f.Description = input.Description
	f.Location = input.Location
	f.Capacity = input.Capacity
	f.BufferMinutes = input.BufferMinutes
	f.BookingPolicy = input.BookingPolicy
	if input.ImageURL != "" {
		f.ImageURL = input.ImageURL
	}

	if err := s.Repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// DeleteFacility removes a facility. Historic bookings keep their reference.
func (s *DefaultFacilityService) DeleteFacility(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

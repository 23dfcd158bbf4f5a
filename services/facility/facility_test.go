package facility

import (
	"context"
	"testing"

	"flexspace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFacilityRepo struct {
	facilities map[string]*models.Facility
}

func newMemFacilityRepo() *memFacilityRepo {
	return &memFacilityRepo{facilities: map[string]*models.Facility{}}
}

func (m *memFacilityRepo) Create(ctx context.Context, f *models.Facility) error {
	m.facilities[f.ID] = f
	return nil
}

func (m *memFacilityRepo) GetByID(ctx context.Context, id string) (*models.Facility, error) {
	return m.facilities[id], nil
}

func (m *memFacilityRepo) GetAll(ctx context.Context) ([]models.Facility, error) {
	var out []models.Facility
	for _, f := range m.facilities {
		out = append(out, *f)
	}
	return out, nil
}

func (m *memFacilityRepo) Update(ctx context.Context, f *models.Facility) error {
	m.facilities[f.ID] = f
	return nil
}

func (m *memFacilityRepo) Delete(ctx context.Context, id string) error {
	delete(m.facilities, id)
	return nil
}

func (m *memFacilityRepo) BumpBookingSeq(ctx context.Context, id string) error { return nil }

func validInput() models.FacilityInput {
	return models.FacilityInput{
		Name:          "Main Gym",
		Capacity:      30,
		BufferMinutes: 15,
	}
}

func TestCreateFacility(t *testing.T) {
	svc := &DefaultFacilityService{Repo: newMemFacilityRepo()}

	f, err := svc.CreateFacility(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, f.ID)
	assert.Equal(t, 30, f.Capacity)

	got, err := svc.GetFacility(context.Background(), f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Main Gym", got.Name)
}

func TestCreateFacilityValidation(t *testing.T) {
	svc := &DefaultFacilityService{Repo: newMemFacilityRepo()}

	input := validInput()
	input.Capacity = 0
	_, err := svc.CreateFacility(context.Background(), input)
	require.Error(t, err)

	input = validInput()
	input.BufferMinutes = -5
	_, err = svc.CreateFacility(context.Background(), input)
	require.Error(t, err)

	input = validInput()
	input.BookingPolicy = &models.BookingPolicy{AllowOverlap: true, MaxConcurrent: 0}
	_, err = svc.CreateFacility(context.Background(), input)
	require.Error(t, err)

	// allowOverlap=false does not need maxConcurrent.
	input = validInput()
	input.BookingPolicy = &models.BookingPolicy{AllowOverlap: false}
	_, err = svc.CreateFacility(context.Background(), input)
	assert.NoError(t, err)
}

func TestUpdateFacilityKeepsImageWhenInputOmitsIt(t *testing.T) {
	repo := newMemFacilityRepo()
	svc := &DefaultFacilityService{Repo: repo}

	input := validInput()
	input.ImageURL = "https://cdn.example.com/gym.jpg"
	f, err := svc.CreateFacility(context.Background(), input)
	require.NoError(t, err)

	update := validInput()
	update.Name = "Renovated Gym"
	got, err := svc.UpdateFacility(context.Background(), f.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Renovated Gym", got.Name)
	assert.Equal(t, "https://cdn.example.com/gym.jpg", got.ImageURL)
}

func TestGetFacilityNotFound(t *testing.T) {
	svc := &DefaultFacilityService{Repo: newMemFacilityRepo()}
	_, err := svc.GetFacility(context.Background(), "missing")
	require.Error(t, err)
}

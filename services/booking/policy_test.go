package booking

import (
	"testing"

	"flexspace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exclusiveRoom() *models.Facility {
	return &models.Facility{ID: "room", Name: "Meeting Room", Capacity: 1, BufferMinutes: 15}
}

func sharedGym() *models.Facility {
	return &models.Facility{ID: "gym", Name: "Main Gym", Capacity: 30}
}

func courtWithOverlapPolicy(maxConcurrent int) *models.Facility {
	return &models.Facility{
		ID:       "court",
		Name:     "Court",
		Capacity: 20,
		BookingPolicy: &models.BookingPolicy{
			AllowOverlap:  true,
			MaxConcurrent: maxConcurrent,
		},
	}
}

func TestExclusiveMode(t *testing.T) {
	assert.True(t, exclusiveMode(exclusiveRoom()), "capacity 1 is exclusive")
	assert.False(t, exclusiveMode(sharedGym()), "capacity above 1 without a policy shares by participant sum")
	assert.False(t, exclusiveMode(courtWithOverlapPolicy(3)))

	forcedExclusive := &models.Facility{
		ID:            "hall",
		Capacity:      50,
		BookingPolicy: &models.BookingPolicy{AllowOverlap: false},
	}
	assert.True(t, exclusiveMode(forcedExclusive), "explicit allowOverlap=false overrides capacity")
}

func TestEvaluateDayExclusiveRejectsAnyOverlap(t *testing.T) {
	f := exclusiveRoom()

	day := DayOverlap{Date: "2024-03-01", Bookings: []models.Booking{{ID: "b1"}}}
	rej := EvaluateDay(f, day, 1)
	require.NotNil(t, rej)
	assert.Equal(t, CodeFacilityExclusivelyBooked, rej.Code)

	// Buffer-only contact is a hard rejection in exclusive mode.
	day = DayOverlap{Date: "2024-03-01", BufferOnly: []models.Booking{{ID: "b1"}}}
	rej = EvaluateDay(f, day, 1)
	require.NotNil(t, rej)
	assert.Equal(t, CodeFacilityExclusivelyBooked, rej.Code)

	assert.Nil(t, EvaluateDay(f, DayOverlap{Date: "2024-03-01"}, 1))
}

func TestEvaluateDayMaxConcurrent(t *testing.T) {
	f := courtWithOverlapPolicy(2)

	one := DayOverlap{Date: "2024-03-01", Bookings: []models.Booking{{ID: "b1"}}, Participants: 8}
	assert.Nil(t, EvaluateDay(f, one, 40), "participant counts are ignored under an overlap policy")

	two := DayOverlap{Date: "2024-03-01", Bookings: []models.Booking{{ID: "b1"}, {ID: "b2"}}}
	rej := EvaluateDay(f, two, 1)
	require.NotNil(t, rej)
	assert.Equal(t, CodeMaxConcurrentExceeded, rej.Code)

	// Buffer contact stays advisory in shared modes.
	buffered := DayOverlap{Date: "2024-03-01", Bookings: []models.Booking{{ID: "b1"}}, BufferOnly: []models.Booking{{ID: "b3"}}}
	assert.Nil(t, EvaluateDay(f, buffered, 1))
}

func TestEvaluateDayParticipantCeiling(t *testing.T) {
	f := sharedGym() // capacity 30

	fits := DayOverlap{Date: "2024-03-01", Participants: 20}
	assert.Nil(t, EvaluateDay(f, fits, 10), "exactly at capacity is admissible")

	over := DayOverlap{Date: "2024-03-01", Participants: 20}
	rej := EvaluateDay(f, over, 11)
	require.NotNil(t, rej)
	assert.Equal(t, CodeCapacityExceeded, rej.Code)
}

func TestEvaluateRejectsOnFirstFailingDay(t *testing.T) {
	f := exclusiveRoom()
	f.BufferMinutes = 0

	// Candidate occupies three consecutive days; an existing booking collides
	// on the middle one only.
	tr, err := ParseTimeRange("2024-03-01", "2024-03-03", "10:00", "11:00", nil)
	require.NoError(t, err)
	existing := []models.Booking{
		mkBooking("mid", "2024-03-02", "2024-03-02", "10:30", "11:30", 1, nil),
	}

	rej := Evaluate(f, tr, existing, 1)
	require.NotNil(t, rej)
	assert.Equal(t, CodeFacilityExclusivelyBooked, rej.Code)
	assert.Contains(t, rej.Message, "2024-03-02")
}

func TestEvaluateAdmitsWhenNoDayFails(t *testing.T) {
	f := sharedGym()
	tr, err := ParseTimeRange("2024-03-01", "2024-03-02", "10:00", "11:00", nil)
	require.NoError(t, err)
	existing := []models.Booking{
		mkBooking("b1", "2024-03-01", "2024-03-01", "10:00", "11:00", 12, nil),
	}

	assert.Nil(t, Evaluate(f, tr, existing, 18))
	rej := Evaluate(f, tr, existing, 19)
	require.NotNil(t, rej)
	assert.Equal(t, CodeCapacityExceeded, rej.Code)
}

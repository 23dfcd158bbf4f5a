package booking

import (
	"testing"

	"flexspace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkBooking(id, startDate, endDate, startTime, endTime string, participants int, rule *models.RecurrenceRule) models.Booking {
	return models.Booking{
		ID:                   id,
		FacilityID:           "fac-1",
		StartDate:            startDate,
		EndDate:              endDate,
		StartTime:            startTime,
		EndTime:              endTime,
		RecurrenceRule:       rule,
		NumberOfParticipants: participants,
		Status:               models.BookingStatusApproved,
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	assert.True(t, overlaps(540, 600, 570, 630))  // partial overlap
	assert.True(t, overlaps(540, 600, 550, 590))  // containment
	assert.True(t, overlaps(540, 600, 500, 700))  // contained by
	assert.False(t, overlaps(540, 600, 600, 660)) // back to back
	assert.False(t, overlaps(600, 660, 540, 600)) // back to back, reversed
	assert.False(t, overlaps(540, 600, 700, 760)) // disjoint
}

func TestDetectConflictsBoundaryTouchIsNotConflict(t *testing.T) {
	existing := []models.Booking{
		mkBooking("b1", "2024-03-01", "2024-03-01", "10:00", "11:00", 4, nil),
	}
	cand := Occurrence{Date: "2024-03-01", Start: 11 * 60, End: 12 * 60}

	day := DetectConflicts(cand, existing, 0)
	assert.Empty(t, day.Bookings)
	assert.Empty(t, day.BufferOnly)
	assert.Zero(t, day.Participants)
}

func TestDetectConflictsBufferWidening(t *testing.T) {
	existing := []models.Booking{
		mkBooking("b1", "2024-03-01", "2024-03-01", "10:00", "11:00", 4, nil),
	}
	// 11:00-12:00 touches 10:00-11:00 only once widened by 15 minutes.
	cand := Occurrence{Date: "2024-03-01", Start: 11 * 60, End: 12 * 60}

	day := DetectConflicts(cand, existing, 15)
	assert.Empty(t, day.Bookings)
	require.Len(t, day.BufferOnly, 1)
	assert.Equal(t, "b1", day.BufferOnly[0].ID)
	// Buffer-only overlaps never count toward participant sums.
	assert.Zero(t, day.Participants)
}

func TestDetectConflictsRawOverlapCountsParticipants(t *testing.T) {
	existing := []models.Booking{
		mkBooking("b1", "2024-03-01", "2024-03-01", "09:00", "11:00", 4, nil),
		mkBooking("b2", "2024-03-01", "2024-03-01", "10:00", "12:00", 6, nil),
		mkBooking("b3", "2024-03-01", "2024-03-01", "13:00", "14:00", 9, nil),
	}
	cand := Occurrence{Date: "2024-03-01", Start: 10 * 60, End: 11 * 60}

	day := DetectConflicts(cand, existing, 0)
	require.Len(t, day.Bookings, 2)
	assert.Equal(t, 10, day.Participants)
}

func TestDetectConflictsRecurringExistingOnlyOnItsDays(t *testing.T) {
	// Existing booking runs Mondays and Wednesdays through January 2024.
	existing := []models.Booking{
		mkBooking("rec", "2024-01-01", "2024-01-31", "18:00", "20:00", 5,
			&models.RecurrenceRule{Days: []int{1, 3}}),
	}

	monday := Occurrence{Date: "2024-01-08", Start: 19 * 60, End: 21 * 60}
	day := DetectConflicts(monday, existing, 0)
	require.Len(t, day.Bookings, 1)

	tuesday := Occurrence{Date: "2024-01-09", Start: 19 * 60, End: 21 * 60}
	day = DetectConflicts(tuesday, existing, 0)
	assert.Empty(t, day.Bookings)
}

func TestDetectConflictsMultiDayExistingConflictsEveryDay(t *testing.T) {
	existing := []models.Booking{
		mkBooking("span", "2024-03-01", "2024-03-03", "09:00", "17:00", 2, nil),
	}

	for _, date := range []string{"2024-03-01", "2024-03-02", "2024-03-03"} {
		day := DetectConflicts(Occurrence{Date: date, Start: 10 * 60, End: 11 * 60}, existing, 0)
		require.Len(t, day.Bookings, 1, "expected conflict on %s", date)
	}

	day := DetectConflicts(Occurrence{Date: "2024-03-04", Start: 10 * 60, End: 11 * 60}, existing, 0)
	assert.Empty(t, day.Bookings)
}

func TestDetectConflictsSkipsUnparseableBookings(t *testing.T) {
	existing := []models.Booking{
		mkBooking("bad", "garbage", "2024-03-01", "10:00", "11:00", 4, nil),
		mkBooking("good", "2024-03-01", "2024-03-01", "10:00", "11:00", 3, nil),
	}
	cand := Occurrence{Date: "2024-03-01", Start: 10 * 60, End: 11 * 60}

	day := DetectConflicts(cand, existing, 0)
	require.Len(t, day.Bookings, 1)
	assert.Equal(t, "good", day.Bookings[0].ID)
}

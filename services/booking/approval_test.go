package booking

import (
	"context"
	"testing"

	"flexspace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingBooking(id, facilityID string, participants int) *models.Booking {
	b := mkBooking(id, "2024-03-01", "2024-03-01", "10:00", "11:00", participants, nil)
	b.FacilityID = facilityID
	b.Status = models.BookingStatusPending
	b.UserID = "u1"
	b.UserName = "Jordan"
	b.UserEmail = "jordan@example.com"
	return &b
}

func TestApproveBookingHappyPath(t *testing.T) {
	svc, br, _, nq := newTestService()
	b := pendingBooking("b1", "gym", 10)
	br.bookings["b1"] = b
	// The conflict query returns the booking under approval itself; it must be
	// excluded before the policy re-runs.
	br.active = []models.Booking{*b}

	require.NoError(t, svc.ApproveBooking(context.Background(), "b1"))
	assert.Equal(t, models.BookingStatusApproved, br.statusUpdates["b1"])

	require.Len(t, nq.payloads, 1)
	assert.Equal(t, models.NotifyBookingApproved, nq.payloads[0].Event)
	assert.Equal(t, "Main Gym", nq.payloads[0].FacilityName)
}

func TestApproveBookingWritesFacilityAnchorInsideTransaction(t *testing.T) {
	svc, br, fr, _ := newTestService()
	br.bookings["b1"] = pendingBooking("b1", "gym", 10)
	fr.bumpHook = func(id string) {
		assert.True(t, br.inTxn, "facility write must happen inside the transaction")
		assert.Equal(t, "gym", id)
	}

	require.NoError(t, svc.ApproveBooking(context.Background(), "b1"))
	assert.Equal(t, []string{"gym"}, fr.bumps)
}

func TestApproveBookingNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()
	err := svc.ApproveBooking(context.Background(), "missing")
	assert.Equal(t, CodeNotFound, admissionCode(t, err))
}

func TestApproveBookingRequiresPendingStatus(t *testing.T) {
	svc, br, _, _ := newTestService()
	b := pendingBooking("b1", "gym", 5)
	b.Status = models.BookingStatusApproved
	br.bookings["b1"] = b

	err := svc.ApproveBooking(context.Background(), "b1")
	assert.Equal(t, CodeValidation, admissionCode(t, err))
}

func TestApproveBookingReRunsCapacityPolicy(t *testing.T) {
	svc, br, _, nq := newTestService()
	b := pendingBooking("b1", "gym", 20)
	br.bookings["b1"] = b
	// Another 15-participant booking was approved after b1 was admitted; the
	// gym's capacity of 30 no longer holds.
	rival := mkBooking("rival", "2024-03-01", "2024-03-01", "10:00", "11:00", 15, nil)
	br.active = []models.Booking{*b, rival}

	err := svc.ApproveBooking(context.Background(), "b1")
	assert.Equal(t, CodeCapacityExceeded, admissionCode(t, err))
	assert.Empty(t, br.statusUpdates)
	assert.Empty(t, nq.payloads)
}

func TestRejectBookingRequiresReason(t *testing.T) {
	svc, _, _, _ := newTestService()
	err := svc.RejectBooking(context.Background(), "b1", "")
	assert.Equal(t, CodeValidation, admissionCode(t, err))
}

func TestRejectBookingHappyPath(t *testing.T) {
	svc, br, _, nq := newTestService()
	br.bookings["b1"] = pendingBooking("b1", "gym", 5)

	require.NoError(t, svc.RejectBooking(context.Background(), "b1", "maintenance window"))
	assert.Equal(t, models.BookingStatusRejected, br.statusUpdates["b1"])
	assert.Equal(t, "maintenance window", br.reasons["b1"])

	require.Len(t, nq.payloads, 1)
	assert.Equal(t, models.NotifyBookingRejected, nq.payloads[0].Event)
	assert.Equal(t, "maintenance window", nq.payloads[0].Reason)
}

func TestRejectBookingRefusesConcurrentStatusChange(t *testing.T) {
	svc, br, _, nq := newTestService()
	br.bookings["b1"] = pendingBooking("b1", "gym", 5)
	// An approval lands between the reject's pre-check and its update.
	br.statusRace = models.BookingStatusApproved

	err := svc.RejectBooking(context.Background(), "b1", "maintenance window")
	assert.Equal(t, CodeValidation, admissionCode(t, err))
	assert.Empty(t, br.statusUpdates)
	assert.Empty(t, nq.payloads)
}

func TestRejectBookingRequiresPendingStatus(t *testing.T) {
	svc, br, _, _ := newTestService()
	b := pendingBooking("b1", "gym", 5)
	b.Status = models.BookingStatusCancelled
	br.bookings["b1"] = b

	err := svc.RejectBooking(context.Background(), "b1", "too late")
	assert.Equal(t, CodeValidation, admissionCode(t, err))
}

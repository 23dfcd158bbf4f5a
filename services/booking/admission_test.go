package booking

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	bookingRepo "flexspace/database/repository/booking"
	"flexspace/models"
	"flexspace/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	utils.Logger = zap.NewNop()
	os.Exit(m.Run())
}

// mockBookingRepo is an in-memory BookingRepository with per-call overrides.
type mockBookingRepo struct {
	bookings  map[string]*models.Booking
	active    []models.Booking
	duplicate *models.Booking

	insertErr    error
	duplicateErr error
	listErr      error
	txnErr       error

	inserted      []*models.Booking
	statusUpdates map[string]string
	reasons       map[string]string
	completed     int64
	lastSweepDay  string

	// inTxn is true while a WithTransaction callback runs.
	inTxn bool
	// statusRace, when set, flips the stored status right before UpdateStatus
	// applies its precondition, simulating a transition that lands between
	// the caller's read and its update.
	statusRace string
	// conflictOnFirstAttempt simulates a write conflict on the facility
	// anchor: the first callback run is rolled back, the hook applies the
	// rival writer's committed state, then the callback is retried.
	conflictOnFirstAttempt func()
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{
		bookings:      map[string]*models.Booking{},
		statusUpdates: map[string]string{},
		reasons:       map[string]string{},
	}
}

func (m *mockBookingRepo) Insert(ctx context.Context, b *models.Booking) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, b)
	m.bookings[b.ID] = b
	return nil
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return m.bookings[id], nil
}

func (m *mockBookingRepo) List(ctx context.Context, filter bookingRepo.ListFilter) ([]models.Booking, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.Booking
	for _, b := range m.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (m *mockBookingRepo) ListActiveByFacility(ctx context.Context, facilityID, fromDate, toDate string) ([]models.Booking, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.active, nil
}

func (m *mockBookingRepo) FindRecentDuplicate(ctx context.Context, userID, facilityID, startDate, startTime string, window time.Duration) (*models.Booking, error) {
	if m.duplicateErr != nil {
		return nil, m.duplicateErr
	}
	return m.duplicate, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id, fromStatus, toStatus, rejectionReason string) error {
	b, ok := m.bookings[id]
	if ok && m.statusRace != "" {
		b.Status = m.statusRace
		m.statusRace = ""
	}
	if !ok || b.Status != fromStatus {
		return fmt.Errorf("booking %s is not %s: %w", id, fromStatus, bookingRepo.ErrStatusConflict)
	}
	m.statusUpdates[id] = toStatus
	if rejectionReason != "" {
		m.reasons[id] = rejectionReason
	}
	b.Status = toStatus
	b.RejectionReason = rejectionReason
	return nil
}

func (m *mockBookingRepo) CompleteElapsed(ctx context.Context, today string) (int64, error) {
	m.lastSweepDay = today
	return m.completed, nil
}

func (m *mockBookingRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.txnErr != nil {
		return m.txnErr
	}
	m.inTxn = true
	defer func() { m.inTxn = false }()

	if m.conflictOnFirstAttempt != nil {
		commit := m.conflictOnFirstAttempt
		m.conflictOnFirstAttempt = nil

		savedInserted := m.inserted
		savedBookings := map[string]*models.Booking{}
		for id, b := range m.bookings {
			savedBookings[id] = b
		}
		_ = fn(ctx) // aborted attempt, its writes are rolled back
		m.inserted = savedInserted
		m.bookings = savedBookings

		commit()
	}
	return fn(ctx)
}

type mockFacilityRepo struct {
	facilities map[string]*models.Facility
	getErr     error
	bumpErr    error

	bumps    []string
	bumpHook func(id string)
}

func (m *mockFacilityRepo) Create(ctx context.Context, f *models.Facility) error { return nil }
func (m *mockFacilityRepo) GetByID(ctx context.Context, id string) (*models.Facility, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.facilities[id], nil
}
func (m *mockFacilityRepo) GetAll(ctx context.Context) ([]models.Facility, error) { return nil, nil }
func (m *mockFacilityRepo) Update(ctx context.Context, f *models.Facility) error  { return nil }
func (m *mockFacilityRepo) Delete(ctx context.Context, id string) error           { return nil }
func (m *mockFacilityRepo) BumpBookingSeq(ctx context.Context, id string) error {
	if m.bumpHook != nil {
		m.bumpHook(id)
	}
	if m.bumpErr != nil {
		return m.bumpErr
	}
	m.bumps = append(m.bumps, id)
	return nil
}

type mockUserRepo struct {
	users map[string]*models.User
}

func (m *mockUserRepo) Create(ctx context.Context, u *models.User) error { return nil }
func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.users[id], nil
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, nil
}
func (m *mockUserRepo) GetAll(ctx context.Context) ([]models.User, error)            { return nil, nil }
func (m *mockUserRepo) Update(ctx context.Context, u *models.User) error             { return nil }
func (m *mockUserRepo) UpdateFCMToken(ctx context.Context, id, token string) error   { return nil }
func (m *mockUserRepo) SetTokenHash(ctx context.Context, id, tokenHash string) error { return nil }
func (m *mockUserRepo) Delete(ctx context.Context, id string) error                  { return nil }

type mockEnqueuer struct {
	payloads []models.NotifyPayload
	err      error
}

func (m *mockEnqueuer) EnqueueNotify(ctx context.Context, payload models.NotifyPayload) error {
	if m.err != nil {
		return m.err
	}
	m.payloads = append(m.payloads, payload)
	return nil
}

func testConfig() AdmissionConfig {
	return AdmissionConfig{
		PurposeMinLen:      2,
		PurposeMaxLen:      100,
		OrganizationMaxLen: 50,
		DuplicateWindow:    10 * time.Second,
	}
}

func newTestService() (*DefaultBookingService, *mockBookingRepo, *mockFacilityRepo, *mockEnqueuer) {
	br := newMockBookingRepo()
	fr := &mockFacilityRepo{facilities: map[string]*models.Facility{
		"gym":  {ID: "gym", Name: "Main Gym", Capacity: 30},
		"room": {ID: "room", Name: "Meeting Room", Capacity: 1, BufferMinutes: 15},
	}}
	ur := &mockUserRepo{users: map[string]*models.User{
		"u1": {ID: "u1", Name: "Jordan", Email: "jordan@example.com"},
	}}
	nq := &mockEnqueuer{}
	svc := &DefaultBookingService{
		Repo:         br,
		FacilityRepo: fr,
		UserRepo:     ur,
		Notify:       nq,
		Config:       testConfig(),
	}
	return svc, br, fr, nq
}

func validRequest() models.CreateBookingRequest {
	return models.CreateBookingRequest{
		FacilityID:           "gym",
		StartDate:            "2024-03-01",
		EndDate:              "2024-03-01",
		StartTime:            "10:00",
		EndTime:              "11:00",
		Purpose:              "weekly practice",
		Category:             models.CategoryClub,
		Organization:         "Badminton Club",
		NumberOfParticipants: 10,
	}
}

func admissionCode(t *testing.T, err error) string {
	t.Helper()
	var adm *AdmissionError
	require.ErrorAs(t, err, &adm)
	return adm.Code
}

func TestCreateBookingRequiresAuthentication(t *testing.T) {
	svc, br, _, _ := newTestService()

	_, err := svc.CreateBooking(context.Background(), "", validRequest())
	assert.Equal(t, CodeUnauthenticated, admissionCode(t, err))
	assert.Empty(t, br.inserted)
}

func TestCreateBookingValidation(t *testing.T) {
	svc, br, _, _ := newTestService()

	cases := []struct {
		name   string
		mutate func(*models.CreateBookingRequest)
	}{
		{"unknown category", func(r *models.CreateBookingRequest) { r.Category = "party" }},
		{"purpose too short", func(r *models.CreateBookingRequest) { r.Purpose = "x" }},
		{"purpose too long", func(r *models.CreateBookingRequest) {
			for len(r.Purpose) <= 100 {
				r.Purpose += r.Purpose
			}
		}},
		{"organization too long", func(r *models.CreateBookingRequest) {
			for len(r.Organization) <= 50 {
				r.Organization += r.Organization
			}
		}},
		{"zero participants", func(r *models.CreateBookingRequest) { r.NumberOfParticipants = 0 }},
		{"reversed dates", func(r *models.CreateBookingRequest) { r.StartDate, r.EndDate = "2024-03-05", "2024-03-01" }},
		{"reversed times", func(r *models.CreateBookingRequest) { r.StartTime, r.EndTime = "14:00", "10:00" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := svc.CreateBooking(context.Background(), "u1", req)
			assert.Equal(t, CodeValidation, admissionCode(t, err))
		})
	}
	assert.Empty(t, br.inserted, "no validation failure may reach the store")
}

func TestCreateBookingUnknownSubmitter(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CreateBooking(context.Background(), "ghost", validRequest())
	assert.Equal(t, CodeNotFound, admissionCode(t, err))
}

func TestCreateBookingDuplicateGuard(t *testing.T) {
	svc, br, _, nq := newTestService()
	br.duplicate = &models.Booking{ID: "earlier"}

	_, err := svc.CreateBooking(context.Background(), "u1", validRequest())
	assert.Equal(t, CodeDuplicateSubmission, admissionCode(t, err))
	assert.Empty(t, br.inserted)
	assert.Empty(t, nq.payloads)
}

func TestCreateBookingFacilityNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()
	req := validRequest()
	req.FacilityID = "missing"

	_, err := svc.CreateBooking(context.Background(), "u1", req)
	assert.Equal(t, CodeNotFound, admissionCode(t, err))
}

func TestCreateBookingPolicyRejectionInsideTransaction(t *testing.T) {
	svc, br, _, nq := newTestService()
	req := validRequest()
	req.FacilityID = "room" // exclusive
	req.NumberOfParticipants = 1
	br.active = []models.Booking{
		mkBooking("held", "2024-03-01", "2024-03-01", "10:30", "11:30", 1, nil),
	}

	_, err := svc.CreateBooking(context.Background(), "u1", req)
	assert.Equal(t, CodeFacilityExclusivelyBooked, admissionCode(t, err))
	assert.Empty(t, br.inserted)
	assert.Empty(t, nq.payloads)
}

func TestCreateBookingBufferRejectionOnExclusiveFacility(t *testing.T) {
	svc, br, _, _ := newTestService()
	req := validRequest()
	req.FacilityID = "room" // exclusive, 15 minute buffer
	req.NumberOfParticipants = 1
	req.StartTime, req.EndTime = "11:00", "12:00"
	br.active = []models.Booking{
		mkBooking("held", "2024-03-01", "2024-03-01", "10:00", "11:00", 1, nil),
	}

	_, err := svc.CreateBooking(context.Background(), "u1", req)
	assert.Equal(t, CodeFacilityExclusivelyBooked, admissionCode(t, err))
}

func TestCreateBookingSuccess(t *testing.T) {
	svc, br, _, nq := newTestService()
	br.active = []models.Booking{
		mkBooking("other", "2024-03-01", "2024-03-01", "10:00", "11:00", 15, nil),
	}

	resp, err := svc.CreateBooking(context.Background(), "u1", validRequest())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotEmpty(t, resp.BookingID)

	require.Len(t, br.inserted, 1)
	b := br.inserted[0]
	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Equal(t, "u1", b.UserID)
	assert.Equal(t, "Jordan", b.UserName)
	assert.False(t, b.CreatedAt.IsZero())

	require.Len(t, nq.payloads, 1)
	assert.Equal(t, models.NotifyBookingCreated, nq.payloads[0].Event)
	assert.Equal(t, b.ID, nq.payloads[0].BookingID)
	assert.Equal(t, "Main Gym", nq.payloads[0].FacilityName)
}

func TestCreateBookingNotifyFailureDoesNotFailBooking(t *testing.T) {
	svc, br, _, nq := newTestService()
	nq.err = errors.New("queue down")

	resp, err := svc.CreateBooking(context.Background(), "u1", validRequest())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Len(t, br.inserted, 1)
}

func TestCreateBookingTransactionFailureIsOpaque(t *testing.T) {
	svc, br, _, _ := newTestService()
	br.txnErr = errors.New("write conflict storm")

	_, err := svc.CreateBooking(context.Background(), "u1", validRequest())
	var adm *AdmissionError
	require.ErrorAs(t, err, &adm)
	assert.Equal(t, CodeInternal, adm.Code)
	assert.True(t, adm.Retryable())
	assert.NotContains(t, adm.Message, "write conflict storm")
}

func TestCreateBookingWritesFacilityAnchorInsideTransaction(t *testing.T) {
	svc, br, fr, _ := newTestService()
	fr.bumpHook = func(id string) {
		assert.True(t, br.inTxn, "facility write must happen inside the transaction")
		assert.Equal(t, "gym", id)
	}

	_, err := svc.CreateBooking(context.Background(), "u1", validRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"gym"}, fr.bumps)
}

func TestCreateBookingRetriedAfterWriteConflictSeesWinner(t *testing.T) {
	svc, br, _, nq := newTestService()
	req := validRequest()
	req.FacilityID = "room" // exclusive
	req.NumberOfParticipants = 1

	// Two submissions race for the last exclusive slot. Both anchor on the
	// facility document, so the loser's transaction aborts and is retried
	// against the winner's committed booking.
	br.conflictOnFirstAttempt = func() {
		br.active = []models.Booking{
			mkBooking("winner", "2024-03-01", "2024-03-01", "10:00", "11:00", 1, nil),
		}
	}

	_, err := svc.CreateBooking(context.Background(), "u1", req)
	assert.Equal(t, CodeFacilityExclusivelyBooked, admissionCode(t, err))
	assert.Empty(t, br.inserted, "the aborted attempt's insert must not survive")
	assert.Empty(t, nq.payloads)
}

func TestCreateBookingFacilityAnchorFailureIsOpaque(t *testing.T) {
	svc, br, fr, _ := newTestService()
	fr.bumpErr = errors.New("write conflict")

	_, err := svc.CreateBooking(context.Background(), "u1", validRequest())
	assert.Equal(t, CodeInternal, admissionCode(t, err))
	assert.Empty(t, br.inserted)
}

func TestCancelBooking(t *testing.T) {
	svc, br, _, _ := newTestService()
	br.bookings["b1"] = &models.Booking{ID: "b1", Status: models.BookingStatusPending}
	br.bookings["b2"] = &models.Booking{ID: "b2", Status: models.BookingStatusCompleted}

	require.NoError(t, svc.CancelBooking(context.Background(), "b1"))
	assert.Equal(t, models.BookingStatusCancelled, br.statusUpdates["b1"])

	err := svc.CancelBooking(context.Background(), "b2")
	assert.Equal(t, CodeValidation, admissionCode(t, err))

	err = svc.CancelBooking(context.Background(), "missing")
	assert.Equal(t, CodeNotFound, admissionCode(t, err))
}

func TestCancelBookingRefusesConcurrentStatusChange(t *testing.T) {
	svc, br, _, _ := newTestService()
	br.bookings["b1"] = &models.Booking{ID: "b1", Status: models.BookingStatusPending}
	// An approval lands between the cancel's status read and its update; the
	// preconditioned update must lose instead of overwriting the approval.
	br.statusRace = models.BookingStatusApproved

	err := svc.CancelBooking(context.Background(), "b1")
	assert.Equal(t, CodeValidation, admissionCode(t, err))
	assert.Empty(t, br.statusUpdates)
	assert.Equal(t, models.BookingStatusApproved, br.bookings["b1"].Status)
}

func TestCompleteElapsedBookings(t *testing.T) {
	svc, br, _, _ := newTestService()
	br.completed = 4

	n, err := svc.CompleteElapsedBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, time.Now().Format(dateLayout), br.lastSweepDay)
}

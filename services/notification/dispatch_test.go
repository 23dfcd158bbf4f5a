package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"flexspace/config"
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

type stubUserRepo struct {
	user *models.User
}

func (s *stubUserRepo) Create(ctx context.Context, u *models.User) error { return nil }
func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.user, nil
}
func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, nil
}
func (s *stubUserRepo) GetAll(ctx context.Context) ([]models.User, error)            { return nil, nil }
func (s *stubUserRepo) Update(ctx context.Context, u *models.User) error             { return nil }
func (s *stubUserRepo) UpdateFCMToken(ctx context.Context, id, token string) error   { return nil }
func (s *stubUserRepo) SetTokenHash(ctx context.Context, id, tokenHash string) error { return nil }
func (s *stubUserRepo) Delete(ctx context.Context, id string) error                  { return nil }

func TestRenderMessage(t *testing.T) {
	created := models.NotifyPayload{
		Event:        models.NotifyBookingCreated,
		UserName:     "Jordan",
		FacilityName: "Main Gym",
		StartDate:    "2024-03-01",
		EndDate:      "2024-03-01",
		StartTime:    "10:00",
		EndTime:      "11:00",
	}
	title, body := renderMessage(created)
	assert.Equal(t, "Booking received", title)
	assert.Contains(t, body, "Main Gym")
	assert.Contains(t, body, "2024-03-01 10:00-11:00")

	rejected := models.NotifyPayload{
		Event:     models.NotifyBookingRejected,
		UserName:  "Jordan",
		StartDate: "2024-03-01",
		EndDate:   "2024-03-05",
		StartTime: "10:00",
		EndTime:   "11:00",
		Reason:    "maintenance window",
	}
	title, body = renderMessage(rejected)
	assert.Equal(t, "Booking rejected", title)
	assert.Contains(t, body, "2024-03-01 to 2024-03-05")
	assert.Contains(t, body, "maintenance window")

	accepted := models.NotifyPayload{
		Event:        models.NotifyProgramDecision,
		UserName:     "Jordan",
		ProgramTitle: "Morning Yoga",
		Status:       models.ApplicationStatusAccepted,
	}
	title, body = renderMessage(accepted)
	assert.Equal(t, "Program enrollment accepted", title)
	assert.Contains(t, body, "Morning Yoga")
}

func TestDispatchPostsChatWebhook(t *testing.T) {
	var received chatMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	prev := config.AppConfig
	config.AppConfig.ChatWebhookURL = srv.URL
	config.AppConfig.SMTPHost = ""
	defer func() { config.AppConfig = prev }()

	svc := &DefaultNotificationService{UserRepo: &stubUserRepo{
		user: &models.User{ID: "u1", Name: "Jordan"}, // no FCM token, push skipped
	}}

	payload := models.NotifyPayload{
		Event:        models.NotifyBookingApproved,
		BookingID:    "b1",
		UserID:       "u1",
		UserName:     "Jordan",
		FacilityName: "Main Gym",
	}
	require.NoError(t, svc.Dispatch(context.Background(), payload))
	assert.Equal(t, models.NotifyBookingApproved, received.Event)
	assert.Equal(t, "b1", received.Detail.BookingID)
}

func TestDispatchErrorsWhenAllChannelsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	prev := config.AppConfig
	config.AppConfig.ChatWebhookURL = srv.URL
	config.AppConfig.SMTPHost = ""
	defer func() { config.AppConfig = prev }()

	svc := &DefaultNotificationService{UserRepo: &stubUserRepo{
		user: &models.User{ID: "u1", Name: "Jordan"},
	}}

	// No FCM token and no email: the webhook is the only attempted channel.
	err := svc.Dispatch(context.Background(), models.NotifyPayload{
		Event:    models.NotifyBookingCreated,
		UserID:   "u1",
		UserName: "Jordan",
	})
	require.Error(t, err)
}

func TestDispatchFailedPushWithOtherChannelsDisabledErrors(t *testing.T) {
	prev := config.AppConfig
	config.AppConfig.ChatWebhookURL = ""
	config.AppConfig.SMTPHost = ""
	defer func() { config.AppConfig = prev }()

	// The user has a device token but no FCM client is configured, so the
	// push attempt fails. Email and webhook are disabled, not attempted;
	// the dispatch must error so the worker retries it.
	svc := &DefaultNotificationService{UserRepo: &stubUserRepo{
		user: &models.User{ID: "u1", Name: "Jordan", FCMToken: "device-token"},
	}}

	err := svc.Dispatch(context.Background(), models.NotifyPayload{
		Event:    models.NotifyBookingApproved,
		UserID:   "u1",
		UserName: "Jordan",
	})
	require.Error(t, err)
}

func TestDispatchDisabledWebhookIsNotAFailure(t *testing.T) {
	prev := config.AppConfig
	config.AppConfig.ChatWebhookURL = ""
	config.AppConfig.SMTPHost = ""
	defer func() { config.AppConfig = prev }()

	svc := &DefaultNotificationService{UserRepo: &stubUserRepo{
		user: &models.User{ID: "u1", Name: "Jordan"},
	}}

	err := svc.Dispatch(context.Background(), models.NotifyPayload{
		Event:    models.NotifyBookingCreated,
		UserID:   "u1",
		UserName: "Jordan",
	})
	assert.NoError(t, err)
}

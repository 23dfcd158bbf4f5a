package notification

import (
	"context"
	"fmt"

	userRepo "flexspace/database/repository/user"
	"flexspace/models"
	"flexspace/utils"

	"go.uber.org/zap"
)

// DefaultNotificationService fans a payload out to push, email and the chat
// webhook. Channels are independent: a failure on one is logged and the rest
// still run. The whole dispatch only errors when every channel that had a
// target failed, so the worker's retry kicks in.
type DefaultNotificationService struct {
	UserRepo userRepo.UserRepository
}

// Dispatch delivers one notification payload across all channels.
func (s *DefaultNotificationService) Dispatch(ctx context.Context, payload models.NotifyPayload) error {
	logger := utils.GetLogger()

	title, body := renderMessage(payload)

	attempted, failed := 0, 0

	// Push: needs the submitter's current FCM token.
	usr, err := s.UserRepo.GetByID(ctx, payload.UserID)
	if err != nil {
		logger.Warn("notify: user lookup failed", zap.String("userID", payload.UserID), zap.Error(err))
	}
	if usr != nil && usr.FCMToken != "" {
		attempted++
		if err := sendPush(ctx, usr.FCMToken, title, body, payload); err != nil {
			failed++
			logger.Warn("notify: push delivery failed", zap.String("userID", payload.UserID), zap.Error(err))
		}
	}

	// Channels disabled by configuration are skipped, not counted: a nil
	// from a disabled channel must not mask a real delivery failure.
	if payload.UserEmail != "" && emailEnabled() {
		attempted++
		if err := sendEmail(payload.UserEmail, title, body); err != nil {
			failed++
			logger.Warn("notify: email delivery failed", zap.String("email", payload.UserEmail), zap.Error(err))
		}
	}

	if webhookEnabled() {
		attempted++
		if err := sendChatWebhook(ctx, title, body, payload); err != nil {
			failed++
			logger.Warn("notify: webhook delivery failed", zap.Error(err))
		}
	}

	if attempted > 0 && failed == attempted {
		return fmt.Errorf("all %d notification channels failed for event %s", attempted, payload.Event)
	}
	return nil
}

// renderMessage builds the human-readable title and body for an event.
func renderMessage(p models.NotifyPayload) (title, body string) {
	slot := fmt.Sprintf("%s %s-%s", p.StartDate, p.StartTime, p.EndTime)
	if p.EndDate != "" && p.EndDate != p.StartDate {
		slot = fmt.Sprintf("%s to %s, %s-%s", p.StartDate, p.EndDate, p.StartTime, p.EndTime)
	}

	switch p.Event {
	case models.NotifyBookingCreated:
		return "Booking received",
			fmt.Sprintf("Hi %s, your booking for %s (%s) was received and is awaiting approval.", p.UserName, p.FacilityName, slot)
	case models.NotifyBookingApproved:
		return "Booking approved",
			fmt.Sprintf("Hi %s, your booking for %s (%s) has been approved. See you there!", p.UserName, p.FacilityName, slot)
	case models.NotifyBookingRejected:
		return "Booking rejected",
			fmt.Sprintf("Hi %s, your booking (%s) was rejected: %s", p.UserName, slot, p.Reason)
	case models.NotifyProgramDecision:
		if p.Status == models.ApplicationStatusAccepted {
			return "Program enrollment accepted",
				fmt.Sprintf("Hi %s, you have been enrolled in %s.", p.UserName, p.ProgramTitle)
		}
		return "Program enrollment update",
			fmt.Sprintf("Hi %s, your application to %s was not accepted this time.", p.UserName, p.ProgramTitle)
	default:
		return "FlexSpace update", fmt.Sprintf("Hi %s, there is an update on your account.", p.UserName)
	}
}

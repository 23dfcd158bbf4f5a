package notification

import (
	"context"
	"fmt"

	"flexspace/models"
	"flexspace/utils"

	"firebase.google.com/go/v4/messaging"
)

// sendPush delivers one FCM message to the given device token.
func sendPush(ctx context.Context, token, title, body string, payload models.NotifyPayload) error {
	if utils.FCMClient == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"event":     payload.Event,
			"bookingId": payload.BookingID,
			"programId": payload.ProgramID,
			"status":    payload.Status,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "bookings",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}

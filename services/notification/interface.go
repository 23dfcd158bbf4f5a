package notification

import (
	"context"

	"flexspace/models"
)

// Enqueuer hands a notification payload to the background queue. Callers
// treat enqueue failures as log-and-continue: a committed booking is never
// rolled back or failed because its notification could not be queued.
type Enqueuer interface {
	EnqueueNotify(ctx context.Context, payload models.NotifyPayload) error
}

// NotificationService fans a payload out to every configured channel (push,
// email, chat webhook). Per-channel failures are logged and do not stop the
// remaining channels; the worker's retry policy covers transient outages.
type NotificationService interface {
	Dispatch(ctx context.Context, payload models.NotifyPayload) error
}

package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"flexspace/config"
	"flexspace/models"

	"github.com/hibiken/asynq"
)

// TypeNotify is the asynq task type consumed by the notification worker.
const TypeNotify = "notify:dispatch"

// AsynqEnqueuer pushes notification payloads onto the Redis-backed queue.
type AsynqEnqueuer struct {
	client *asynq.Client
}

// NewAsynqEnqueuer builds an enqueuer against the configured Redis queue DB.
func NewAsynqEnqueuer() *AsynqEnqueuer {
	return &AsynqEnqueuer{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisNotifyQueue,
		}),
	}
}

// EnqueueNotify queues a payload for background delivery. The worker retries
// failed deliveries with backoff; the caller never waits on delivery.
func (e *AsynqEnqueuer) EnqueueNotify(ctx context.Context, payload models.NotifyPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notify payload: %w", err)
	}
	task := asynq.NewTask(TypeNotify, data, asynq.MaxRetry(5))
	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue notify task: %w", err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (e *AsynqEnqueuer) Close() error {
	return e.client.Close()
}

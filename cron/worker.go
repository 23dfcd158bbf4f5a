package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"flexspace/config"
	"flexspace/models"
	"flexspace/services/booking"
	"flexspace/services/notification"

	"github.com/hibiken/asynq"
)

// TypeCompletionSweep is the periodic task that completes elapsed bookings.
const TypeCompletionSweep = "bookings:complete_elapsed"

// InitWorker runs the asynq worker and scheduler in background goroutines.
// The worker consumes queued notification fan-outs and the hourly completion
// sweep; both run fully outside the request path.
func InitWorker(notifSvc notification.NotificationService, bookingSvc booking.BookingService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisNotifyQueue,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeNotify, handleNotifyTask(notifSvc))
	mux.HandleFunc(TypeCompletionSweep, handleCompletionSweep(bookingSvc))

	// Start async worker with retry logic
	go func() {
		log.Println("[Worker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	// Register the hourly completion sweep.
	go func() {
		scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: time.Local})
		task := asynq.NewTask(TypeCompletionSweep, nil, asynq.MaxRetry(3))
		if _, err := scheduler.Register("@every 1h", task); err != nil {
			log.Printf("[Worker] failed to register completion sweep: %v", err)
			return
		}
		if err := scheduler.Run(); err != nil {
			log.Printf("[Worker] scheduler stopped: %v", err)
		}
	}()
}

func handleNotifyTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.NotifyPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[NotifyHandler] invalid payload: %v", err)
			return err
		}

		if err := notifSvc.Dispatch(ctx, p); err != nil {
			log.Printf("[NotifyHandler] dispatch failed for event %s: %v", p.Event, err)
			return err
		}
		return nil
	}
}

func handleCompletionSweep(bookingSvc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		n, err := bookingSvc.CompleteElapsedBookings(ctx)
		if err != nil {
			log.Printf("[CompletionSweep] sweep failed: %v", err)
			return err
		}
		if n > 0 {
			log.Printf("[CompletionSweep] completed %d elapsed bookings", n)
		}
		return nil
	}
}

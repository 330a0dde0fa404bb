package cron

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"

	"wezet/config"
	"wezet/models"
	"wezet/services/notification"
	"wezet/services/tasks"
)

// InitConfirmationWorker runs the async worker that delivers booking
// confirmation emails in the background. Delivery failures are retried by
// asynq; they never reach the booking flow.
func InitConfirmationWorker(sender notification.ConfirmationSender) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
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
	mux.HandleFunc(tasks.TypeBookingConfirmation, handleConfirmationTask(sender))

	go func() {
		log.Println("[ConfirmationWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[ConfirmationWorker] failed to start worker: %v", err)
		}
	}()
}

func handleConfirmationTask(sender notification.ConfirmationSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.BookingConfirmationPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ConfirmationWorker] invalid payload: %v", err)
			return err
		}
		if err := sender.SendBookingConfirmation(ctx, p); err != nil {
			log.Printf("[ConfirmationWorker] send failed for booking %s: %v", p.BookingID, err)
			return err
		}
		return nil
	}
}

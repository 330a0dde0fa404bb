package tasks

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"wezet/models"
)

const TypeBookingConfirmation = "booking:confirmation"

// NewConfirmationTask builds the asynq task for one confirmation email.
func NewConfirmationTask(payload models.BookingConfirmationPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingConfirmation, b), nil
}

// AsynqDispatcher enqueues confirmation emails on the shared redis queue.
type AsynqDispatcher struct {
	client *asynq.Client
}

// NewAsynqDispatcher constructs a dispatcher around an asynq client.
func NewAsynqDispatcher(client *asynq.Client) *AsynqDispatcher {
	return &AsynqDispatcher{client: client}
}

func (d *AsynqDispatcher) EnqueueConfirmation(ctx context.Context, payload models.BookingConfirmationPayload) error {
	task, err := NewConfirmationTask(payload)
	if err != nil {
		return err
	}
	_, err = d.client.EnqueueContext(ctx, task, asynq.MaxRetry(5), asynq.Queue("default"))
	return err
}

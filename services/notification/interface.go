package notification

import (
	"context"

	"wezet/models"
)

// Dispatcher hands a confirmation off for asynchronous delivery. The
// booking service only talks to this; actual sending happens in the worker.
type Dispatcher interface {
	EnqueueConfirmation(ctx context.Context, payload models.BookingConfirmationPayload) error
}

// ConfirmationSender delivers one booking confirmation to its recipient.
// Failures are the sender's problem (logged, retried by the queue); they
// must never roll back a booking.
type ConfirmationSender interface {
	SendBookingConfirmation(ctx context.Context, payload models.BookingConfirmationPayload) error
}

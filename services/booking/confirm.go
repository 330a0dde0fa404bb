package booking

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"wezet/models"
)

// HandlePaymentSucceeded is the contract exposed to the payment gateway's
// out-of-band success signal: given a successful payment reference for
// booking X, mark X confirmed exactly once. Repeated signals for an already
// confirmed booking are no-ops.
func (s *DefaultBookingService) HandlePaymentSucceeded(ctx context.Context, bookingRef string) error {
	confirmed, err := s.Bookings.ConfirmPending(ctx, bookingRef)
	if err != nil {
		return fmt.Errorf("confirm transition failed: %w", err)
	}

	booking, err := s.GetBooking(ctx, bookingRef)
	if err != nil {
		return err
	}

	if !confirmed {
		if booking.Status == models.BookingStatusConfirmed || booking.Status == models.BookingStatusCompleted {
			// Duplicate signal; the first delivery already did the work.
			return nil
		}
		return fmt.Errorf("payment success for %s booking %s: %w", booking.Status, bookingRef, ErrInvalidTransition)
	}

	if s.Logger != nil {
		s.Logger.Info("booking confirmed by payment",
			zap.String("bookingID", bookingRef))
	}
	s.dispatchConfirmation(ctx, booking)
	return nil
}

// dispatchConfirmation sends the confirmation email at most once per
// booking. The storage-level claim on confirmation_sent is what guarantees
// a booking confirmed through any path notifies exactly once; a failed
// enqueue releases the claim so a later confirmation attempt can retry.
// Notification problems are logged and never surfaced to the caller.
func (s *DefaultBookingService) dispatchConfirmation(ctx context.Context, booking *models.Booking) {
	claimed, err := s.Bookings.ClaimConfirmationSend(ctx, booking.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Error("confirmation claim failed",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
		return
	}
	if !claimed {
		return
	}

	payload := models.BookingConfirmationPayload{
		BookingID: booking.ID,
		Recipient: booking.CustomerEmail,
		Date:      booking.Date,
		StartTime: booking.StartTime,
		Price:     booking.Price,
		Currency:  booking.Currency,
	}
	if p, err := s.Directory.GetPractitioner(ctx, booking.PractitionerID); err == nil {
		payload.PractitionerName = p.Name
	}
	if svc, err := s.Directory.GetService(ctx, booking.ServiceID); err == nil {
		payload.ServiceName = svc.Name
	}

	if err := s.Dispatcher.EnqueueConfirmation(ctx, payload); err != nil {
		if s.Logger != nil {
			s.Logger.Error("confirmation enqueue failed",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
		if releaseErr := s.Bookings.ReleaseConfirmationClaim(ctx, booking.ID); releaseErr != nil && s.Logger != nil {
			s.Logger.Error("confirmation claim release failed",
				zap.String("bookingID", booking.ID), zap.Error(releaseErr))
		}
	}
}

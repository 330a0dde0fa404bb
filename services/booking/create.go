package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"wezet/models"
)

const checkoutCacheTTL = 30 * time.Minute

// CreateBooking validates the requested slot against current availability
// and takes one of the four payment paths. The credit and code paths debit
// the ledger before any booking exists, so their failures leave no partial
// state; the card path keeps its pending booking when checkout creation
// fails, which is retryable.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, *models.CheckoutIntent, error) {
	if in.BundlePurchaseID != "" && in.RedemptionCode != "" {
		return nil, nil, fmt.Errorf("at most one of bundle purchase and redemption code may be used: %w", ErrCodeInvalid)
	}

	svc, err := s.Directory.GetService(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, fmt.Errorf("service %s: %w", in.ServiceID, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("service lookup failed: %w", err)
	}

	// Stored times are compared lexicographically everywhere (slot
	// coverage, overlap filter), so the client string must be brought into
	// canonical zero-padded "HH:MM" form before anything else sees it.
	startTime, err := canonicalClock(in.StartTime)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid start time %q: %w", in.StartTime, ErrSlotUnavailable)
	}
	endTime, err := addMinutes(startTime, svc.DurationMinutes)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid start time %q: %w", in.StartTime, ErrSlotUnavailable)
	}

	// Defense against stale client-side slot caches: the requested range
	// must lie inside a slot resolved from current data, and must not
	// collide with another live booking.
	if err := s.ensureSlotAvailable(ctx, in.PractitionerID, in.ServiceID, in.Date, startTime, endTime); err != nil {
		return nil, nil, err
	}

	booking := &models.Booking{
		ID:             uuid.New().String(),
		CustomerID:     in.CustomerID,
		CustomerEmail:  in.CustomerEmail,
		PractitionerID: in.PractitionerID,
		ServiceID:      in.ServiceID,
		Date:           in.Date,
		StartTime:      startTime,
		EndTime:        endTime,
		Price:          svc.Price,
		Currency:       svc.Currency,
		Notes:          in.Notes,
	}

	switch {
	case in.BundlePurchaseID != "":
		return s.createViaCredit(ctx, booking, in.BundlePurchaseID)
	case in.RedemptionCode != "":
		return s.createViaCode(ctx, booking, in.RedemptionCode)
	case svc.Price == 0:
		return s.createFree(ctx, booking)
	default:
		return s.createViaCard(ctx, booking, svc)
	}
}

// ensureSlotAvailable re-resolves the date and rejects the request unless
// [start, end) fits inside one resolved slot.
func (s *DefaultBookingService) ensureSlotAvailable(ctx context.Context, practitionerID, serviceID, date, start, end string) error {
	slots, err := s.Resolver.ResolveSlots(ctx, practitionerID, serviceID, date, date)
	if err != nil {
		return fmt.Errorf("availability check failed: %w", err)
	}
	covered := false
	for _, slot := range slots {
		if slot.Start <= start && end <= slot.End {
			covered = true
			break
		}
	}
	if !covered {
		return fmt.Errorf("no slot covers %s-%s on %s: %w", start, end, date, ErrSlotUnavailable)
	}

	overlapping, err := s.Bookings.FindOverlapping(ctx, practitionerID, date, start, end)
	if err != nil {
		return fmt.Errorf("booking overlap check failed: %w", err)
	}
	if len(overlapping) > 0 {
		return fmt.Errorf("time already booked: %w", ErrSlotUnavailable)
	}
	return nil
}

// createViaCredit debits the bundle first; the booking is only inserted
// after a successful debit, and the debit is compensated if the insert
// fails. No booking can exist without its credit.
func (s *DefaultBookingService) createViaCredit(ctx context.Context, booking *models.Booking, purchaseID string) (*models.Booking, *models.CheckoutIntent, error) {
	purchase, err := s.Ledger.UseCredit(ctx, purchaseID)
	if err != nil {
		return nil, nil, err
	}

	booking.PaymentMethod = models.PaymentMethodBundleCredit
	booking.Price = 0
	booking.Currency = purchase.Currency
	s.markConfirmed(booking)

	if err := s.Bookings.Insert(ctx, booking); err != nil {
		if refundErr := s.Ledger.RefundCredit(ctx, purchaseID); refundErr != nil && s.Logger != nil {
			s.Logger.Error("credit refund after failed insert",
				zap.String("purchaseID", purchaseID), zap.Error(refundErr))
		}
		return nil, nil, fmt.Errorf("booking insert failed: %w", err)
	}

	s.dispatchConfirmation(ctx, booking)
	return booking, nil, nil
}

func (s *DefaultBookingService) createViaCode(ctx context.Context, booking *models.Booking, code string) (*models.Booking, *models.CheckoutIntent, error) {
	if _, err := s.Ledger.RedeemCode(ctx, code, booking.CustomerID); err != nil {
		return nil, nil, err
	}

	booking.PaymentMethod = models.PaymentMethodRedemptionCode
	booking.Price = 0
	s.markConfirmed(booking)

	if err := s.Bookings.Insert(ctx, booking); err != nil {
		if refundErr := s.Ledger.RefundCodeUse(ctx, code); refundErr != nil && s.Logger != nil {
			s.Logger.Error("code refund after failed insert",
				zap.String("code", code), zap.Error(refundErr))
		}
		return nil, nil, fmt.Errorf("booking insert failed: %w", err)
	}

	s.dispatchConfirmation(ctx, booking)
	return booking, nil, nil
}

func (s *DefaultBookingService) createFree(ctx context.Context, booking *models.Booking) (*models.Booking, *models.CheckoutIntent, error) {
	booking.PaymentMethod = models.PaymentMethodFree
	s.markConfirmed(booking)

	if err := s.Bookings.Insert(ctx, booking); err != nil {
		return nil, nil, fmt.Errorf("booking insert failed: %w", err)
	}
	s.dispatchConfirmation(ctx, booking)
	return booking, nil, nil
}

// createViaCard inserts the booking as pending, then asks the gateway for a
// checkout session. The gateway's success signal, not this method, flips the
// booking to confirmed.
func (s *DefaultBookingService) createViaCard(ctx context.Context, booking *models.Booking, svc *models.Service) (*models.Booking, *models.CheckoutIntent, error) {
	booking.PaymentMethod = models.PaymentMethodCard
	booking.Status = models.BookingStatusPending

	if err := s.Bookings.Insert(ctx, booking); err != nil {
		return nil, nil, fmt.Errorf("booking insert failed: %w", err)
	}

	sess, err := s.Gateway.CreateCheckoutSession(ctx, models.CheckoutRequest{
		BookingRef:    booking.ID,
		Amount:        booking.Price,
		Currency:      booking.Currency,
		Description:   fmt.Sprintf("%s on %s at %s", svc.Name, booking.Date, booking.StartTime),
		CustomerEmail: booking.CustomerEmail,
	})
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("checkout creation failed, booking kept pending",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
		return booking, nil, fmt.Errorf("gateway error for booking %s: %w", booking.ID, ErrPaymentInitiationFailed)
	}

	if err := s.Bookings.SetCheckoutSessionID(ctx, booking.ID, sess.ID); err != nil && s.Logger != nil {
		s.Logger.Warn("could not record checkout session id",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
	booking.CheckoutSessionID = sess.ID

	intent := &models.CheckoutIntent{BookingID: booking.ID, CheckoutURL: sess.URL}
	s.cacheCheckoutIntent(ctx, intent)
	return booking, intent, nil
}

func (s *DefaultBookingService) markConfirmed(booking *models.Booking) {
	now := time.Now()
	booking.Status = models.BookingStatusConfirmed
	booking.ConfirmedAt = &now
}

// cacheCheckoutIntent keeps the redirect URL around so an interrupted client
// can resume checkout without creating a second session. Best effort.
func (s *DefaultBookingService) cacheCheckoutIntent(ctx context.Context, intent *models.CheckoutIntent) {
	if s.Sessions == nil {
		return
	}
	data, err := json.Marshal(intent)
	if err != nil {
		return
	}
	if err := s.Sessions.Set(ctx, checkoutCacheKey(intent.BookingID), data, checkoutCacheTTL).Err(); err != nil && s.Logger != nil {
		s.Logger.Warn("checkout intent cache write failed",
			zap.String("bookingID", intent.BookingID), zap.Error(err))
	}
}

// GetCheckoutIntent returns the cached checkout redirect for a pending
// booking, if it is still live.
func (s *DefaultBookingService) GetCheckoutIntent(ctx context.Context, bookingID string) (*models.CheckoutIntent, error) {
	if s.Sessions == nil {
		return nil, ErrNotFound
	}
	data, err := s.Sessions.Get(ctx, checkoutCacheKey(bookingID)).Result()
	if err != nil {
		return nil, ErrNotFound
	}
	var intent models.CheckoutIntent
	if err := json.Unmarshal([]byte(data), &intent); err != nil {
		return nil, ErrNotFound
	}
	return &intent, nil
}

func checkoutCacheKey(bookingID string) string {
	return "checkout:" + bookingID
}

// canonicalClock parses a client-supplied clock string and returns it in
// zero-padded "HH:MM" form. time.Parse tolerates "9:00"; storing that raw
// would make the string invisible to every lexicographic comparison.
func canonicalClock(clock string) (string, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return "", err
	}
	return t.Format("15:04"), nil
}

// addMinutes computes an "HH:MM" end time. Same-day only; a session running
// past midnight is rejected upstream because no slot can cover it.
func addMinutes(clock string, minutes int) (string, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return "", err
	}
	end := t.Add(time.Duration(minutes) * time.Minute)
	if end.Day() != t.Day() {
		return "", fmt.Errorf("session crosses midnight")
	}
	return end.Format("15:04"), nil
}

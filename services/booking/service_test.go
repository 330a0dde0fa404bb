package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wezet/models"
)

const testDate = "2026-09-14"

type testEnv struct {
	svc        *DefaultBookingService
	bookings   *fakeBookingRepo
	bundles    *fakeBundleRepo
	codes      *fakeCodeRepo
	gateway    *fakeGateway
	dispatcher *fakeDispatcher
}

func newTestEnv() *testEnv {
	bookings := newFakeBookingRepo()
	bundles := &fakeBundleRepo{purchases: map[string]*models.BundlePurchase{}}
	codes := &fakeCodeRepo{codes: map[string]*models.RedemptionCode{}}
	gateway := &fakeGateway{}
	dispatcher := &fakeDispatcher{}

	directory := &fakeDirectory{
		practitioners: map[string]*models.Practitioner{
			"p1": {ID: "p1", Name: "Anna Kowalska", Active: true},
		},
		services: map[string]*models.Service{
			"yoga": {ID: "yoga", Name: "Yoga", DurationMinutes: 60, Price: 120, Currency: "PLN", Active: true},
			"open-day": {ID: "open-day", Name: "Open Day", DurationMinutes: 60, Price: 0, Currency: "PLN", Active: true},
		},
	}
	resolver := &fakeResolver{slots: []models.ResolvedSlot{
		{Date: testDate, Start: "09:00", End: "17:00", PractitionerID: "p1", Source: models.SlotSourceRule},
	}}

	svc := &DefaultBookingService{
		Bookings:   bookings,
		Directory:  directory,
		Resolver:   resolver,
		Ledger:     &DefaultLedger{Bundles: bundles, Codes: codes, Logger: zap.NewNop()},
		Gateway:    gateway,
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
	}
	return &testEnv{
		svc:        svc,
		bookings:   bookings,
		bundles:    bundles,
		codes:      codes,
		gateway:    gateway,
		dispatcher: dispatcher,
	}
}

func cardInput() CreateBookingInput {
	return CreateBookingInput{
		CustomerID:     "u1",
		CustomerEmail:  "u1@example.com",
		PractitionerID: "p1",
		ServiceID:      "yoga",
		Date:           testDate,
		StartTime:      "10:00",
	}
}

func TestCreateBookingCardPath(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	booking, intent, err := env.svc.CreateBooking(ctx, cardInput())
	require.NoError(t, err)
	require.NotNil(t, intent)

	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, models.PaymentMethodCard, booking.PaymentMethod)
	assert.Equal(t, "11:00", booking.EndTime)
	assert.Equal(t, 120.0, booking.Price)
	assert.Equal(t, booking.ID, intent.BookingID)
	assert.Contains(t, intent.CheckoutURL, booking.ID)
	assert.Equal(t, 1, env.gateway.calls)

	// No confirmation before the payment succeeds.
	assert.Equal(t, 0, env.dispatcher.sent())

	// Payment success confirms the booking and notifies once.
	require.NoError(t, env.svc.HandlePaymentSucceeded(ctx, booking.ID))
	stored, err := env.bookings.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, stored.Status)
	require.NotNil(t, stored.ConfirmedAt)
	assert.Equal(t, 1, env.dispatcher.sent())
}

// Stripe retries webhooks; a duplicate success signal must not notify twice.
func TestHandlePaymentSucceededIsIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	booking, _, err := env.svc.CreateBooking(ctx, cardInput())
	require.NoError(t, err)

	require.NoError(t, env.svc.HandlePaymentSucceeded(ctx, booking.ID))
	require.NoError(t, env.svc.HandlePaymentSucceeded(ctx, booking.ID))
	require.NoError(t, env.svc.HandlePaymentSucceeded(ctx, booking.ID))

	assert.Equal(t, 1, env.dispatcher.sent())
}

func TestHandlePaymentSucceededForCancelledBooking(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	booking, _, err := env.svc.CreateBooking(ctx, cardInput())
	require.NoError(t, err)
	require.NoError(t, env.svc.CancelBooking(ctx, booking.ID))

	err = env.svc.HandlePaymentSucceeded(ctx, booking.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 0, env.dispatcher.sent())
}

func TestHandlePaymentSucceededUnknownBooking(t *testing.T) {
	env := newTestEnv()
	err := env.svc.HandlePaymentSucceeded(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateBookingGatewayFailureKeepsPendingBooking(t *testing.T) {
	env := newTestEnv()
	env.gateway.failWith = errors.New("stripe is down")
	ctx := context.Background()

	booking, intent, err := env.svc.CreateBooking(ctx, cardInput())
	require.ErrorIs(t, err, ErrPaymentInitiationFailed)
	assert.Nil(t, intent)
	require.NotNil(t, booking, "the pending booking is returned for retry")

	stored, getErr := env.bookings.GetByID(ctx, booking.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.BookingStatusPending, stored.Status)
}

func TestCreateBookingViaCredit(t *testing.T) {
	env := newTestEnv()
	env.bundles.purchases["bp1"] = &models.BundlePurchase{
		ID: "bp1", UserID: "u1", RemainingCredits: 2,
		Status: models.BundleStatusActive, Currency: "PLN",
	}
	in := cardInput()
	in.BundlePurchaseID = "bp1"
	ctx := context.Background()

	booking, intent, err := env.svc.CreateBooking(ctx, in)
	require.NoError(t, err)
	assert.Nil(t, intent, "credit bookings need no checkout")

	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, models.PaymentMethodBundleCredit, booking.PaymentMethod)
	assert.Equal(t, 0.0, booking.Price)
	assert.Equal(t, 0, env.gateway.calls)
	assert.Equal(t, 1, env.dispatcher.sent())

	purchase, _ := env.bundles.GetByID(ctx, "bp1")
	assert.Equal(t, 1, purchase.RemainingCredits)
}

func TestCreateBookingCreditLastOneExhaustsBundle(t *testing.T) {
	env := newTestEnv()
	env.bundles.purchases["bp1"] = &models.BundlePurchase{
		ID: "bp1", UserID: "u1", RemainingCredits: 1,
		Status: models.BundleStatusActive, Currency: "PLN",
	}
	in := cardInput()
	in.BundlePurchaseID = "bp1"
	ctx := context.Background()

	_, _, err := env.svc.CreateBooking(ctx, in)
	require.NoError(t, err)

	purchase, _ := env.bundles.GetByID(ctx, "bp1")
	assert.Equal(t, 0, purchase.RemainingCredits)
	assert.Equal(t, models.BundleStatusExhausted, purchase.Status)

	// The next attempt finds no credit and creates nothing.
	in.StartTime = "14:00"
	_, _, err = env.svc.CreateBooking(ctx, in)
	assert.ErrorIs(t, err, ErrCreditExhausted)
	bookings, _ := env.bookings.ListByCustomer(ctx, "u1")
	assert.Len(t, bookings, 1)
}

func TestCreateBookingUnknownBundle(t *testing.T) {
	env := newTestEnv()
	in := cardInput()
	in.BundlePurchaseID = "missing"

	_, _, err := env.svc.CreateBooking(context.Background(), in)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateBookingCreditRefundedWhenInsertFails(t *testing.T) {
	env := newTestEnv()
	env.bundles.purchases["bp1"] = &models.BundlePurchase{
		ID: "bp1", UserID: "u1", RemainingCredits: 2,
		Status: models.BundleStatusActive, Currency: "PLN",
	}
	env.bookings.insertErr = errors.New("write failed")
	in := cardInput()
	in.BundlePurchaseID = "bp1"
	ctx := context.Background()

	_, _, err := env.svc.CreateBooking(ctx, in)
	require.Error(t, err)

	purchase, _ := env.bundles.GetByID(ctx, "bp1")
	assert.Equal(t, 2, purchase.RemainingCredits, "debit must be compensated")
}

func TestCreateBookingViaCode(t *testing.T) {
	env := newTestEnv()
	env.codes.codes["WELLNESS10"] = &models.RedemptionCode{
		Code: "WELLNESS10", UserID: "u1", Status: models.CodeStatusActive, RemainingUses: 3,
	}
	in := cardInput()
	in.RedemptionCode = "WELLNESS10"
	ctx := context.Background()

	booking, intent, err := env.svc.CreateBooking(ctx, in)
	require.NoError(t, err)
	assert.Nil(t, intent)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, models.PaymentMethodRedemptionCode, booking.PaymentMethod)
	assert.Equal(t, 1, env.dispatcher.sent())

	rc, _ := env.codes.GetByCode(ctx, "WELLNESS10")
	assert.Equal(t, 2, rc.RemainingUses)
}

func TestCreateBookingCodeFailures(t *testing.T) {
	env := newTestEnv()
	env.codes.codes["THEIRS"] = &models.RedemptionCode{
		Code: "THEIRS", UserID: "someone-else", Status: models.CodeStatusActive, RemainingUses: 1,
	}
	env.codes.codes["EXPIRED"] = &models.RedemptionCode{
		Code: "EXPIRED", UserID: "u1", Status: models.CodeStatusExpired, RemainingUses: 1,
	}
	env.codes.codes["SPENT"] = &models.RedemptionCode{
		Code: "SPENT", UserID: "u1", Status: models.CodeStatusActive, RemainingUses: 0,
	}
	ctx := context.Background()

	cases := []struct {
		code string
		want error
	}{
		{"UNKNOWN", ErrCodeInvalid},
		{"THEIRS", ErrCodeNotOwned},
		{"EXPIRED", ErrCodeInvalid},
		{"SPENT", ErrCodeInvalid},
	}
	for _, tc := range cases {
		in := cardInput()
		in.RedemptionCode = tc.code
		_, _, err := env.svc.CreateBooking(ctx, in)
		assert.ErrorIs(t, err, tc.want, "code %s", tc.code)
	}
	assert.Equal(t, 0, env.dispatcher.sent())
}

func TestCreateBookingRejectsBundleAndCodeTogether(t *testing.T) {
	env := newTestEnv()
	in := cardInput()
	in.BundlePurchaseID = "bp1"
	in.RedemptionCode = "WELLNESS10"

	_, _, err := env.svc.CreateBooking(context.Background(), in)
	assert.Error(t, err)
}

func TestCreateBookingFreeService(t *testing.T) {
	env := newTestEnv()
	in := cardInput()
	in.ServiceID = "open-day"

	booking, intent, err := env.svc.CreateBooking(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, intent)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, models.PaymentMethodFree, booking.PaymentMethod)
	assert.Equal(t, 0, env.gateway.calls)
	assert.Equal(t, 1, env.dispatcher.sent())
}

func TestCreateBookingSlotNotCovered(t *testing.T) {
	env := newTestEnv()
	in := cardInput()
	in.StartTime = "16:30" // session would run to 17:30, past the slot end

	_, _, err := env.svc.CreateBooking(context.Background(), in)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestCreateBookingUnknownService(t *testing.T) {
	env := newTestEnv()
	in := cardInput()
	in.ServiceID = "pilates"

	_, _, err := env.svc.CreateBooking(context.Background(), in)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateBookingRejectsOverlapWithLiveBooking(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, _, err := env.svc.CreateBooking(ctx, cardInput())
	require.NoError(t, err)

	// Second request for an overlapping range loses.
	in := cardInput()
	in.CustomerID = "u2"
	in.StartTime = "10:30"
	_, _, err = env.svc.CreateBooking(ctx, in)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// A cancelled booking frees the range again.
	bookings, _ := env.bookings.ListByCustomer(ctx, "u1")
	require.NoError(t, env.svc.CancelBooking(ctx, bookings[0].ID))
	_, _, err = env.svc.CreateBooking(ctx, in)
	assert.NoError(t, err)
}

// Unpadded clock strings must be canonicalized before storage: a booking
// stored as "9:00" would compare lexicographically against "09:30" and slip
// past the overlap guard.
func TestCreateBookingCanonicalizesStartTime(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	in := cardInput()
	in.StartTime = "9:00"
	booking, _, err := env.svc.CreateBooking(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "09:00", booking.StartTime)
	assert.Equal(t, "10:00", booking.EndTime)

	stored, err := env.bookings.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:00", stored.StartTime)

	// The canonical form is visible to the overlap guard.
	second := cardInput()
	second.CustomerID = "u2"
	second.StartTime = "09:30"
	_, _, err = env.svc.CreateBooking(ctx, second)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// And the padded spelling of the same instant collides too.
	third := cardInput()
	third.CustomerID = "u3"
	third.StartTime = "9:30"
	_, _, err = env.svc.CreateBooking(ctx, third)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestCreateBookingRejectsMalformedStartTime(t *testing.T) {
	env := newTestEnv()
	for _, bad := range []string{"", "25:00", "09:61", "next tuesday", "0900"} {
		in := cardInput()
		in.StartTime = bad
		_, _, err := env.svc.CreateBooking(context.Background(), in)
		assert.ErrorIs(t, err, ErrSlotUnavailable, "start time %q", bad)
	}
}

func TestCancelBookingTransitions(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	booking, _, err := env.svc.CreateBooking(ctx, cardInput())
	require.NoError(t, err)

	require.NoError(t, env.svc.CancelBooking(ctx, booking.ID))
	stored, _ := env.bookings.GetByID(ctx, booking.ID)
	assert.Equal(t, models.BookingStatusCancelled, stored.Status)

	// Cancelling again is rejected, as is cancelling the unknown.
	assert.ErrorIs(t, env.svc.CancelBooking(ctx, booking.ID), ErrInvalidTransition)
	assert.ErrorIs(t, env.svc.CancelBooking(ctx, "nope"), ErrNotFound)
}

func TestCompleteBookingTransitions(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	booking, _, err := env.svc.CreateBooking(ctx, cardInput())
	require.NoError(t, err)

	// Pending bookings cannot be completed.
	assert.ErrorIs(t, env.svc.CompleteBooking(ctx, booking.ID), ErrInvalidTransition)

	require.NoError(t, env.svc.HandlePaymentSucceeded(ctx, booking.ID))
	require.NoError(t, env.svc.CompleteBooking(ctx, booking.ID))

	stored, _ := env.bookings.GetByID(ctx, booking.ID)
	assert.Equal(t, models.BookingStatusCompleted, stored.Status)
}

// A failed enqueue releases the confirmation claim so a later confirmation
// can retry the send.
func TestConfirmationClaimReleasedOnEnqueueFailure(t *testing.T) {
	env := newTestEnv()
	env.dispatcher.failWith = errors.New("queue down")
	ctx := context.Background()

	booking, _, err := env.svc.CreateBooking(ctx, cardInput())
	require.NoError(t, err)
	require.NoError(t, env.svc.HandlePaymentSucceeded(ctx, booking.ID))

	assert.Equal(t, 0, env.dispatcher.sent())
	stored, _ := env.bookings.GetByID(ctx, booking.ID)
	assert.False(t, stored.ConfirmationSent)
}

func TestGetBookingUnknown(t *testing.T) {
	env := newTestEnv()
	_, err := env.svc.GetBooking(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"wezet/models"
)

// In-memory stand-ins for the booking service's collaborators. The booking
// and ledger fakes mirror the conditional-update contracts of the real
// repositories, mutex in place of the storage engine.

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking

	insertErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (f *fakeBookingRepo) Insert(ctx context.Context, booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	copied := *booking
	f.bookings[booking.ID] = &copied
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) transition(id, from, to string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	if to == models.BookingStatusConfirmed {
		now := time.Now()
		b.ConfirmedAt = &now
	}
	return true, nil
}

func (f *fakeBookingRepo) ConfirmPending(ctx context.Context, id string) (bool, error) {
	return f.transition(id, models.BookingStatusPending, models.BookingStatusConfirmed)
}

func (f *fakeBookingRepo) CancelPending(ctx context.Context, id string) (bool, error) {
	return f.transition(id, models.BookingStatusPending, models.BookingStatusCancelled)
}

func (f *fakeBookingRepo) CompleteConfirmed(ctx context.Context, id string) (bool, error) {
	return f.transition(id, models.BookingStatusConfirmed, models.BookingStatusCompleted)
}

func (f *fakeBookingRepo) SetCheckoutSessionID(ctx context.Context, id, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	b.CheckoutSessionID = sessionID
	return nil
}

func (f *fakeBookingRepo) ClaimConfirmationSend(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.ConfirmationSent {
		return false, nil
	}
	b.ConfirmationSent = true
	return true, nil
}

func (f *fakeBookingRepo) ReleaseConfirmationClaim(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.bookings[id]; ok {
		b.ConfirmationSent = false
	}
	return nil
}

func (f *fakeBookingRepo) FindOverlapping(ctx context.Context, practitionerID, date, start, end string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.PractitionerID != practitionerID || b.Date != date {
			continue
		}
		if b.Status != models.BookingStatusPending && b.Status != models.BookingStatusConfirmed {
			continue
		}
		if b.StartTime < end && start < b.EndTime {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByPractitioner(ctx context.Context, practitionerID, from, to string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.PractitionerID != practitionerID {
			continue
		}
		if from != "" && b.Date < from {
			continue
		}
		if to != "" && b.Date > to {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeDirectory struct {
	practitioners map[string]*models.Practitioner
	services      map[string]*models.Service
}

func (f *fakeDirectory) GetPractitioner(ctx context.Context, id string) (*models.Practitioner, error) {
	if p, ok := f.practitioners[id]; ok {
		return p, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeDirectory) GetService(ctx context.Context, id string) (*models.Service, error) {
	if s, ok := f.services[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeDirectory) GetLocation(ctx context.Context, id string) (*models.Location, error) {
	return nil, mongo.ErrNoDocuments
}

// fakeResolver serves a fixed slot list regardless of range.
type fakeResolver struct {
	slots []models.ResolvedSlot
}

func (f *fakeResolver) ResolveSlots(ctx context.Context, practitionerID, serviceID, from, to string) ([]models.ResolvedSlot, error) {
	return f.slots, nil
}

func (f *fakeResolver) ResolveMonth(ctx context.Context, practitionerID, serviceID string, year int, month time.Month) ([]models.ResolvedSlot, error) {
	return f.slots, nil
}

type fakeGateway struct {
	mu       sync.Mutex
	calls    int
	failWith error
}

func (f *fakeGateway) CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &models.CheckoutSession{
		ID:  "cs_" + req.BookingRef,
		URL: "https://checkout.example/" + req.BookingRef,
	}, nil
}

type fakeDispatcher struct {
	mu       sync.Mutex
	payloads []models.BookingConfirmationPayload
	failWith error
}

func (f *fakeDispatcher) EnqueueConfirmation(ctx context.Context, payload models.BookingConfirmationPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

func (f *fakeDispatcher) sent() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payloads)
}

type fakeBundleRepo struct {
	mu        sync.Mutex
	purchases map[string]*models.BundlePurchase
}

func (f *fakeBundleRepo) GetByID(ctx context.Context, id string) (*models.BundlePurchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.purchases[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *p
	return &copied, nil
}

func (f *fakeBundleRepo) ListForUser(ctx context.Context, userID string) ([]models.BundlePurchase, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBundleRepo) UseCredit(ctx context.Context, id string) (*models.BundlePurchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.purchases[id]
	if !ok || p.Status != models.BundleStatusActive || p.RemainingCredits <= 0 {
		return nil, mongo.ErrNoDocuments
	}
	p.RemainingCredits--
	if p.RemainingCredits == 0 {
		p.Status = models.BundleStatusExhausted
	}
	copied := *p
	return &copied, nil
}

func (f *fakeBundleRepo) RefundCredit(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.purchases[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.RemainingCredits++
	p.Status = models.BundleStatusActive
	return nil
}

type fakeCodeRepo struct {
	mu    sync.Mutex
	codes map[string]*models.RedemptionCode
}

func (f *fakeCodeRepo) GetByCode(ctx context.Context, code string) (*models.RedemptionCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rc, ok := f.codes[code]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *rc
	return &copied, nil
}

func (f *fakeCodeRepo) Redeem(ctx context.Context, code, userID string) (*models.RedemptionCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rc, ok := f.codes[code]
	if !ok || rc.UserID != userID || rc.Status != models.CodeStatusActive || rc.RemainingUses <= 0 {
		return nil, mongo.ErrNoDocuments
	}
	rc.RemainingUses--
	copied := *rc
	return &copied, nil
}

func (f *fakeCodeRepo) RefundUse(ctx context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rc, ok := f.codes[code]
	if !ok {
		return mongo.ErrNoDocuments
	}
	rc.RemainingUses++
	return nil
}

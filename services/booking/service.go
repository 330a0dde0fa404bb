package booking

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	bookingRepo "wezet/database/repository/booking"
	directoryRepo "wezet/database/repository/directory"
	"wezet/models"
	"wezet/services/availability"
	"wezet/services/notification"
)

// Service is the booking lifecycle manager: it creates bookings against
// currently-resolved slots, coordinates the payment / credit / code paths
// and owns the pending->confirmed / pending->cancelled transitions.
type Service interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, *models.CheckoutIntent, error)
	HandlePaymentSucceeded(ctx context.Context, bookingRef string) error
	GetCheckoutIntent(ctx context.Context, bookingID string) (*models.CheckoutIntent, error)
	CancelBooking(ctx context.Context, id string) error
	CompleteBooking(ctx context.Context, id string) error
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListForPractitioner(ctx context.Context, practitionerID, from, to string) ([]models.Booking, error)
	ListForCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
}

// CreateBookingInput is one checkout attempt from the booking UI. At most
// one of BundlePurchaseID / RedemptionCode may be set; with neither, the
// card path is taken (or the booking is free when the service price is 0).
type CreateBookingInput struct {
	CustomerID       string `json:"customerId"`
	CustomerEmail    string `json:"customerEmail"`
	PractitionerID   string `json:"practitionerId"`
	ServiceID        string `json:"serviceId"`
	Date             string `json:"date"`
	StartTime        string `json:"startTime"`
	Notes            string `json:"notes"`
	BundlePurchaseID string `json:"bundlePurchaseId"`
	RedemptionCode   string `json:"redemptionCode"`
}

// DefaultBookingService implements Service. All collaborators are injected;
// the service itself is stateless between requests.
type DefaultBookingService struct {
	Bookings   bookingRepo.BookingRepository
	Directory  directoryRepo.DirectoryRepository
	Resolver   availability.SlotResolver
	Ledger     Ledger
	Gateway    PaymentGateway
	Dispatcher notification.Dispatcher
	Sessions   *redis.Client // checkout descriptor cache, optional
	Logger     *zap.Logger
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *DefaultBookingService) ListForPractitioner(ctx context.Context, practitionerID, from, to string) ([]models.Booking, error) {
	return s.Bookings.ListByPractitioner(ctx, practitionerID, from, to)
}

func (s *DefaultBookingService) ListForCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	return s.Bookings.ListByCustomer(ctx, customerID)
}

// CancelBooking moves pending to cancelled. Any other state is rejected:
// confirmed bookings are never silently reverted.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, id string) error {
	ok, err := s.Bookings.CancelPending(ctx, id)
	if err != nil {
		return err
	}
	if ok {
		if s.Logger != nil {
			s.Logger.Info("booking cancelled", zap.String("bookingID", id))
		}
		return nil
	}
	if _, err := s.GetBooking(ctx, id); err != nil {
		return err
	}
	return ErrInvalidTransition
}

// CompleteBooking marks a confirmed booking completed after the session took
// place (admin dashboard action).
func (s *DefaultBookingService) CompleteBooking(ctx context.Context, id string) error {
	ok, err := s.Bookings.CompleteConfirmed(ctx, id)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if _, err := s.GetBooking(ctx, id); err != nil {
		return err
	}
	return ErrInvalidTransition
}

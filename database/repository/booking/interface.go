// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"wezet/models"
)

// BookingRepository persists booking records. Status transitions are
// conditional updates so that a stale caller can never move a booking
// backwards: ConfirmPending and CancelPending match only pending rows,
// CompleteConfirmed only confirmed ones.
//
// ClaimConfirmationSend flips the confirmation_sent flag exactly once per
// booking; the caller may only dispatch the confirmation email when the
// claim succeeded, which is what makes the side effect idempotent.
type BookingRepository interface {
	Insert(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ConfirmPending(ctx context.Context, id string) (bool, error)
	CancelPending(ctx context.Context, id string) (bool, error)
	CompleteConfirmed(ctx context.Context, id string) (bool, error)
	SetCheckoutSessionID(ctx context.Context, id, sessionID string) error
	ClaimConfirmationSend(ctx context.Context, id string) (bool, error)
	ReleaseConfirmationClaim(ctx context.Context, id string) error
	FindOverlapping(ctx context.Context, practitionerID, date, start, end string) ([]models.Booking, error)
	ListByPractitioner(ctx context.Context, practitionerID, from, to string) ([]models.Booking, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a MongoDB-backed BookingRepository.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	return &mongoBookingRepo{coll: db.Collection("bookings")}
}

// File: database/repository/booking/transitions.go
package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"wezet/models"
)

// conditionalTransition updates a booking only when it is currently in the
// expected status. The boolean reports whether this call performed the
// transition, so repeated payment-success signals collapse into one.
func (r *mongoBookingRepo) conditionalTransition(ctx context.Context, id, fromStatus string, set bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set["updated_at"] = time.Now()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": fromStatus},
		bson.M{"$set": set},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (r *mongoBookingRepo) ConfirmPending(ctx context.Context, id string) (bool, error) {
	now := time.Now()
	return r.conditionalTransition(ctx, id, models.BookingStatusPending, bson.M{
		"status":       models.BookingStatusConfirmed,
		"confirmed_at": now,
	})
}

func (r *mongoBookingRepo) CancelPending(ctx context.Context, id string) (bool, error) {
	return r.conditionalTransition(ctx, id, models.BookingStatusPending, bson.M{
		"status": models.BookingStatusCancelled,
	})
}

func (r *mongoBookingRepo) CompleteConfirmed(ctx context.Context, id string) (bool, error) {
	return r.conditionalTransition(ctx, id, models.BookingStatusConfirmed, bson.M{
		"status": models.BookingStatusCompleted,
	})
}

func (r *mongoBookingRepo) ClaimConfirmationSend(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": models.BookingStatusConfirmed, "confirmation_sent": false},
		bson.M{"$set": bson.M{"confirmation_sent": true, "updated_at": time.Now()}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (r *mongoBookingRepo) ReleaseConfirmationClaim(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"confirmation_sent": false, "updated_at": time.Now()}},
	)
	return err
}

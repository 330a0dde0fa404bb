// File: database/repository/bundle/crud.go
package bundleRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wezet/models"
)

func (r *mongoBundlePurchaseRepo) GetByID(ctx context.Context, id string) (*models.BundlePurchase, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var purchase models.BundlePurchase
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&purchase); err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *mongoBundlePurchaseRepo) ListForUser(ctx context.Context, userID string) ([]models.BundlePurchase, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var purchases []models.BundlePurchase
	if err := cursor.All(ctx, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *mongoBundlePurchaseRepo) UseCredit(ctx context.Context, id string) (*models.BundlePurchase, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Guard filter plus $inc in one FindOneAndUpdate: the decrement happens
	// only when a credit is actually left, so remaining_credits can never go
	// negative under concurrent debits.
	filter := bson.M{
		"id":                id,
		"status":            models.BundleStatusActive,
		"remaining_credits": bson.M{"$gt": 0},
	}
	update := bson.M{
		"$inc": bson.M{"remaining_credits": -1},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var purchase models.BundlePurchase
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&purchase); err != nil {
		return nil, err
	}

	if purchase.RemainingCredits == 0 {
		// Status flip after the fact; the guard above is what enforces
		// correctness, exhausted is presentation state.
		_, _ = r.coll.UpdateOne(ctx,
			bson.M{"id": id, "remaining_credits": 0},
			bson.M{"$set": bson.M{"status": models.BundleStatusExhausted, "updated_at": time.Now()}},
		)
		purchase.Status = models.BundleStatusExhausted
	}
	return &purchase, nil
}

func (r *mongoBundlePurchaseRepo) RefundCredit(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"remaining_credits": 1},
		"$set": bson.M{"status": models.BundleStatusActive, "updated_at": time.Now()},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	return err
}

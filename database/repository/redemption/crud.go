// File: database/repository/redemption/crud.go
package redemptionRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wezet/models"
)

func (r *mongoRedemptionCodeRepo) GetByCode(ctx context.Context, code string) (*models.RedemptionCode, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rc models.RedemptionCode
	if err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&rc); err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *mongoRedemptionCodeRepo) Redeem(ctx context.Context, code, userID string) (*models.RedemptionCode, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"code":           code,
		"user_id":        userID,
		"status":         models.CodeStatusActive,
		"remaining_uses": bson.M{"$gt": 0},
	}
	update := bson.M{
		"$inc": bson.M{"remaining_uses": -1},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rc models.RedemptionCode
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rc); err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *mongoRedemptionCodeRepo) RefundUse(ctx context.Context, code string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"remaining_uses": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"code": code}, update)
	return err
}

// File: database/repository/redemption/interface.go
package redemptionRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"wezet/models"
)

// RedemptionCodeRepository stores limited-use promo/gift codes. Redeem has
// the same atomicity contract as the bundle ledger: one conditional
// decrement at the storage layer.
type RedemptionCodeRepository interface {
	GetByCode(ctx context.Context, code string) (*models.RedemptionCode, error)
	// Redeem decrements remaining_uses by one iff the code is active, owned
	// by userID and has uses left. Returns mongo.ErrNoDocuments otherwise.
	Redeem(ctx context.Context, code, userID string) (*models.RedemptionCode, error)
	// RefundUse is the compensating increment for a failed booking insert.
	RefundUse(ctx context.Context, code string) error
}

type mongoRedemptionCodeRepo struct {
	coll *mongo.Collection
}

// NewMongoRedemptionCodeRepo constructs a MongoDB-backed RedemptionCodeRepository.
func NewMongoRedemptionCodeRepo(db *mongo.Database) RedemptionCodeRepository {
	return &mongoRedemptionCodeRepo{coll: db.Collection("redemption_codes")}
}

// File: database/repository/bundle/interface.go
package bundleRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"wezet/models"
)

// BundlePurchaseRepository tracks prepaid credit packs. UseCredit must be a
// single conditional decrement at the storage layer, never a read-then-write
// from the application tier, so two concurrent bookings can never both spend
// the last credit.
type BundlePurchaseRepository interface {
	GetByID(ctx context.Context, id string) (*models.BundlePurchase, error)
	ListForUser(ctx context.Context, userID string) ([]models.BundlePurchase, error)
	// UseCredit decrements remaining_credits by one iff the purchase is
	// active and has credits left. Returns mongo.ErrNoDocuments when no
	// matching purchase could be debited.
	UseCredit(ctx context.Context, id string) (*models.BundlePurchase, error)
	// RefundCredit puts one credit back; compensating action for a booking
	// insert that failed after a successful debit.
	RefundCredit(ctx context.Context, id string) error
}

type mongoBundlePurchaseRepo struct {
	coll *mongo.Collection
}

// NewMongoBundlePurchaseRepo constructs a MongoDB-backed BundlePurchaseRepository.
func NewMongoBundlePurchaseRepo(db *mongo.Database) BundlePurchaseRepository {
	return &mongoBundlePurchaseRepo{coll: db.Collection("bundle_purchases")}
}

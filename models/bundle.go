package models

import "time"

// Bundle purchase states.
const (
	BundleStatusActive    = "active"
	BundleStatusExhausted = "exhausted"
	BundleStatusCancelled = "cancelled"
)

// BundlePurchase is a customer's instance of a prepaid session pack.
// RemainingCredits only ever decreases, one credit per booking, and must be
// debited via the repository's atomic conditional decrement.
type BundlePurchase struct {
	ID               string    `bson:"id" json:"id"`
	UserID           string    `bson:"user_id" json:"userId"`
	BundleID         string    `bson:"bundle_id" json:"bundleId"`
	RemainingCredits int       `bson:"remaining_credits" json:"remainingCredits"`
	Status           string    `bson:"status" json:"status"`
	Currency         string    `bson:"currency" json:"currency"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updatedAt"`
}

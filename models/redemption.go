package models

import "time"

// Redemption code states.
const (
	CodeStatusActive  = "active"
	CodeStatusExpired = "expired"
)

// RedemptionCode substitutes for payment. A code belongs to one user and
// carries a limited number of uses, decremented atomically on redemption.
type RedemptionCode struct {
	Code          string    `bson:"code" json:"code"`
	UserID        string    `bson:"user_id" json:"userId"`
	Status        string    `bson:"status" json:"status"`
	RemainingUses int       `bson:"remaining_uses" json:"remainingUses"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}

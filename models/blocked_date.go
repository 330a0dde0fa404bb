package models

import "time"

// Blocked-date categories shown in the admin calendar.
const (
	BlockTypeVacation = "vacation"
	BlockTypeSick     = "sick"
	BlockTypePersonal = "personal"
	BlockTypeOther    = "other"
)

// BlockedDate marks a whole day as unavailable for a practitioner,
// regardless of rules and exceptions.
type BlockedDate struct {
	ID             string    `bson:"id" json:"id"`
	PractitionerID string    `bson:"practitioner_id" json:"practitionerId"`
	Date           string    `bson:"date" json:"date"` // "2006-01-02"
	Reason         string    `bson:"reason" json:"reason"`
	Type           string    `bson:"type" json:"type"` // vacation|sick|personal|other
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}

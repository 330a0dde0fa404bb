package models

import "time"

// AvailabilityException is a one-off override for a single date. With
// IsAvailable=true the range becomes bookable even if no weekly rule covers
// it; with IsAvailable=false the range is removed even if a rule produced it.
// Exceptions always win over rule-derived slots on overlap.
type AvailabilityException struct {
	ID             string    `bson:"id" json:"id"`
	PractitionerID string    `bson:"practitioner_id" json:"practitionerId"`
	ServiceID      string    `bson:"service_id" json:"serviceId"` // empty = all services
	Date           string    `bson:"date" json:"date"`            // "2006-01-02"
	StartTime      string    `bson:"start_time" json:"startTime"` // "HH:MM"
	EndTime        string    `bson:"end_time" json:"endTime"`
	IsAvailable    bool      `bson:"is_available" json:"isAvailable"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}

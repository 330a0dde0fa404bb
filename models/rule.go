package models

import "time"

// TimeRange is a clock interval within a single day. Start is inclusive,
// End is exclusive, both "HH:MM" 24h strings.
type TimeRange struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// WeeklyRule is the recurring per-weekday availability template for a
// practitioner. ServiceID scopes the rule to one service; empty means the
// rule applies to all of the practitioner's services. Ranges within a day
// must not overlap.
type WeeklyRule struct {
	ID             string      `bson:"id" json:"id"`
	PractitionerID string      `bson:"practitioner_id" json:"practitionerId"`
	ServiceID      string      `bson:"service_id" json:"serviceId"`
	DayOfWeek      int         `bson:"day_of_week" json:"dayOfWeek"` // 0=Sunday .. 6=Saturday
	Enabled        bool        `bson:"enabled" json:"enabled"`
	TimeRanges     []TimeRange `bson:"time_ranges" json:"timeRanges"`
	CreatedAt      time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time   `bson:"updated_at" json:"updatedAt"`
}

package models

// Directory reference data. The booking core reads these by id and never
// mutates them; the admin CRUD surface that manages them lives outside the
// core.

// Practitioner is a service-providing team member with their own schedule.
type Practitioner struct {
	ID         string `bson:"id" json:"id"`
	Name       string `bson:"name" json:"name"`
	Email      string `bson:"email" json:"email"`
	LocationID string `bson:"location_id" json:"locationId"`
	Active     bool   `bson:"active" json:"active"`
}

// Service is a bookable session template.
type Service struct {
	ID              string  `bson:"id" json:"id"`
	Name            string  `bson:"name" json:"name"`
	DurationMinutes int     `bson:"duration_minutes" json:"durationMinutes"`
	Price           float64 `bson:"price" json:"price"`
	Currency        string  `bson:"currency" json:"currency"`
	Active          bool    `bson:"active" json:"active"`
}

// Location is a physical studio/room services are held at.
type Location struct {
	ID      string `bson:"id" json:"id"`
	Name    string `bson:"name" json:"name"`
	Address string `bson:"address" json:"address"`
}

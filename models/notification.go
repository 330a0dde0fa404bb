package models

// BookingConfirmationPayload is the asynq task payload for one confirmation
// email. It carries the rendered facts, not ids, so the worker does not need
// repository access.
type BookingConfirmationPayload struct {
	BookingID        string  `json:"bookingId"`
	Recipient        string  `json:"recipient"`
	PractitionerName string  `json:"practitionerName"`
	ServiceName      string  `json:"serviceName"`
	Date             string  `json:"date"`
	StartTime        string  `json:"startTime"`
	Price            float64 `json:"price"`
	Currency         string  `json:"currency"`
}

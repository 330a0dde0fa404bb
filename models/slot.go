package models

// Provenance of a resolved slot. The admin UI renders recurring and manual
// slots differently and turns an edited recurring slot into an exception.
const (
	SlotSourceRule      = "rule"
	SlotSourceException = "exception"
)

// ResolvedSlot is one bookable time range for a practitioner on a date.
// It is computed on every query and never persisted.
type ResolvedSlot struct {
	Date           string `json:"date"`  // "2006-01-02"
	Start          string `json:"start"` // "HH:MM"
	End            string `json:"end"`
	PractitionerID string `json:"practitionerId"`
	ServiceID      string `json:"serviceId,omitempty"`
	Source         string `json:"source"` // "rule" | "exception"
}

// BookableStart is a concrete session start offered to the booking UI,
// produced by cutting resolved slots into fixed-duration pieces.
type BookableStart struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

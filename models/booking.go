package models

import "time"

// Booking status lifecycle: pending -> confirmed, pending -> cancelled,
// confirmed -> completed. Confirmed bookings are never reverted.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// How a booking was paid for.
const (
	PaymentMethodCard           = "card"
	PaymentMethodBundleCredit   = "bundle-credit"
	PaymentMethodRedemptionCode = "redemption-code"
	PaymentMethodFree           = "free"
)

// Booking is a customer's reservation of one slot with one practitioner.
// Soft lifecycle only: bookings are never deleted.
type Booking struct {
	ID                string     `bson:"id" json:"id"`
	CustomerID        string     `bson:"customer_id" json:"customerId"`
	CustomerEmail     string     `bson:"customer_email" json:"customerEmail"`
	PractitionerID    string     `bson:"practitioner_id" json:"practitionerId"`
	ServiceID         string     `bson:"service_id" json:"serviceId"`
	Date              string     `bson:"date" json:"date"`             // "2006-01-02"
	StartTime         string     `bson:"start_time" json:"startTime"`  // "HH:MM"
	EndTime           string     `bson:"end_time" json:"endTime"`
	Price             float64    `bson:"price" json:"price"`
	Currency          string     `bson:"currency" json:"currency"`
	Status            string     `bson:"status" json:"status"`
	PaymentMethod     string     `bson:"payment_method" json:"paymentMethod"`
	Notes             string     `bson:"notes,omitempty" json:"notes,omitempty"`
	CheckoutSessionID string     `bson:"checkout_session_id,omitempty" json:"-"`
	ConfirmationSent  bool       `bson:"confirmation_sent" json:"-"`
	CreatedAt         time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time  `bson:"updated_at" json:"updatedAt"`
	ConfirmedAt       *time.Time `bson:"confirmed_at,omitempty" json:"confirmedAt,omitempty"`
}

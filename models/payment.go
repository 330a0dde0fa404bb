package models

// CheckoutRequest is everything the payment gateway needs to open a hosted
// checkout for one pending booking.
type CheckoutRequest struct {
	BookingRef    string  `json:"bookingRef"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Description   string  `json:"description"`
	CustomerEmail string  `json:"customerEmail"`
}

// CheckoutSession is the gateway's answer: where to send the customer.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckoutIntent is returned to the booking UI when the card path is taken.
type CheckoutIntent struct {
	BookingID   string `json:"bookingId"`
	CheckoutURL string `json:"checkoutUrl"`
}

package booking

import "fmt"

// Error is a coded booking failure. Handlers map codes onto HTTP statuses;
// the UI layer owns the user-facing copy.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// The booking error taxonomy. Callers test with errors.Is against these
// sentinels; wrapped variants carry detail.
var (
	// ErrSlotUnavailable: the requested time no longer resolves to an
	// available slot. Re-fetch availability and retry.
	ErrSlotUnavailable = &Error{Code: "slotUnavailable", Message: "requested time is no longer available"}

	// ErrPaymentInitiationFailed: the gateway was unreachable or rejected
	// the checkout. The pending booking is kept and retryable.
	ErrPaymentInitiationFailed = &Error{Code: "paymentInitiationFailed", Message: "could not start checkout"}

	// ErrCreditExhausted: the bundle has no credits left (or lost the race
	// for the last one). No booking was created.
	ErrCreditExhausted = &Error{Code: "creditExhausted", Message: "no bundle credits remaining"}

	// ErrCodeInvalid: unknown, expired or used-up redemption code.
	ErrCodeInvalid = &Error{Code: "codeInvalid", Message: "redemption code is not valid"}

	// ErrCodeNotOwned: the code exists but belongs to a different user.
	ErrCodeNotOwned = &Error{Code: "codeNotOwned", Message: "redemption code belongs to another user"}

	ErrNotFound = &Error{Code: "notFound", Message: "record not found"}

	// ErrInvalidTransition: the booking is not in a state that permits the
	// requested transition. Confirmed bookings are never reverted.
	ErrInvalidTransition = &Error{Code: "invalidTransition", Message: "booking state does not permit this transition"}
)

// Package payment holds the card payment types and the confirmation
// provider integration for the listing fee.
package payment

import "fmt"

// Status is the provider-side state of a payment intent.
type Status string

const (
	StatusSucceeded       Status = "succeeded"
	StatusProcessing      Status = "processing"
	StatusRequiresAction  Status = "requires_action"
	StatusRequiresPayment Status = "requires_payment_method"
	StatusCanceled        Status = "canceled"
)

// Final reports whether the status is a terminal success. Anything else
// after a confirmation attempt is treated as an unexpected state.
func (s Status) Final() bool {
	return s == StatusSucceeded
}

// Intent is a server-issued payment intent. The client secret is opaque
// and consumed by exactly one confirmation attempt.
type Intent struct {
	ClientSecret string `json:"clientSecret"`
	ID           string `json:"paymentIntentId"`
}

// Result is the outcome of a confirmation attempt.
type Result struct {
	IntentID          string
	Amount            int64 // minor currency units
	Status            Status
	ConfirmationToken string
}

// Card holds the card details entered by the user. The embeddable widget
// front end never exposes these to the host; the headless confirmer
// collects them directly.
type Card struct {
	Number   string
	ExpMonth int64
	ExpYear  int64
	CVC      string
	Name     string
}

// CodeError is a confirmation failure with a provider error code. These
// are recoverable: the user may retry in the same dialog with corrected
// details or a different card.
type CodeError struct {
	Code    string
	Message string
}

func (e *CodeError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("payment confirmation failed (%s)", e.Code)
}

// messages maps provider error codes to user-facing text. Unknown codes
// fall back to the provider's own message or a generic one.
var messages = map[string]string{
	"card_declined":      "Your card was declined. Please try a different payment method.",
	"insufficient_funds": "Insufficient funds. Please use a different payment method.",
	"expired_card":       "Your card has expired. Please use a different payment method.",
	"incorrect_cvc":      "Incorrect security code. Please check your card details.",
}

// MessageForCode returns the user-facing message for a provider error
// code, falling back to the provided message and then to a generic one.
func MessageForCode(code, fallback string) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	if fallback != "" {
		return fallback
	}
	return "Payment failed. Please try again."
}

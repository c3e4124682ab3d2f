// Package listing sequences the paid listing submission: draft
// validation, payment-intent acquisition, card confirmation, and
// property creation, as one logical transaction with partial-failure
// recovery.
package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mkhalil/rent-finder/internal/api"
	"github.com/mkhalil/rent-finder/internal/payment"
	"github.com/mkhalil/rent-finder/internal/property"
)

// Stage identifies where in the pipeline a failure happened.
type Stage string

const (
	StageValidate Stage = "validate"
	StageIntent   Stage = "intent"
	StageConfirm  Stage = "confirm"
	StageCreate   Stage = "create"
)

// ErrBusy is returned when a submission is already in flight; the
// confirm action must stay disabled until it settles.
var ErrBusy = errors.New("a submission is already in progress")

// Error is a recoverable pipeline failure. The draft is retained and the
// user may retry: with corrected fields for StageValidate, or with a
// corrected or different card for StageIntent and StageConfirm.
type Error struct {
	Stage   Stage
	Message string
	Fields  map[string][]string // field errors, StageValidate only
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("submission failed at %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// PostChargeError is the severe partial-failure case: the charge
// succeeded but the listing was not created. It is never retried
// automatically; the user is pointed at support with the intent id.
type PostChargeError struct {
	IntentID string
	Amount   int64
	Err      error
}

func (e *PostChargeError) Error() string {
	return fmt.Sprintf(
		"your payment succeeded (payment id %s) but the listing could not be created: %v. "+
			"The charge will not be retried; please contact support with payment id %s.",
		e.IntentID, e.Err, e.IntentID)
}

func (e *PostChargeError) Unwrap() error { return e.Err }

// IntentCreator obtains a fresh payment intent for the listing fee.
type IntentCreator interface {
	CreateIntent(ctx context.Context, currency string, amountMinor int64) (*payment.Intent, error)
}

// Creator submits the multipart listing creation request.
type Creator interface {
	CreateProperty(ctx context.Context, req api.CreateRequest) (int64, error)
}

// Listing fee charged per submission, in minor currency units.
const (
	FeeCurrency    = "USD"
	FeeAmountCents = 5000
)

// Pipeline runs paid listing submissions. One pipeline serves one add-
// property form; concurrent submissions are rejected.
type Pipeline struct {
	intents   IntentCreator
	confirmer payment.Confirmer
	creator   Creator

	currency string
	fee      int64

	mu   sync.Mutex
	busy bool
}

// New creates a submission pipeline charging the standard listing fee.
func New(intents IntentCreator, confirmer payment.Confirmer, creator Creator) *Pipeline {
	return &Pipeline{
		intents:   intents,
		confirmer: confirmer,
		creator:   creator,
		currency:  FeeCurrency,
		fee:       FeeAmountCents,
	}
}

// Submit validates the draft, charges the listing fee, and creates the
// listing. The payment strictly precedes creation, and creation is
// attempted at most once per successful charge. On success the draft is
// reset and the new property id returned.
func (p *Pipeline) Submit(ctx context.Context, draft *property.Draft, card payment.Card) (int64, error) {
	p.mu.Lock()
	if p.busy {
		p.mu.Unlock()
		return 0, ErrBusy
	}
	p.busy = true
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.busy = false
		p.mu.Unlock()
	}()

	// Precondition: no network calls for an invalid draft.
	if fieldErrs := draft.Validate(); fieldErrs != nil {
		return 0, &Error{
			Stage:   StageValidate,
			Message: "the listing form has errors",
			Fields:  fieldErrs,
		}
	}

	// A fresh intent per attempt; a secret from a failed confirmation
	// is never reused.
	intent, err := p.intents.CreateIntent(ctx, p.currency, p.fee)
	if err != nil {
		return 0, &Error{Stage: StageIntent, Err: err}
	}

	result, err := p.confirmer.Confirm(ctx, intent.ClientSecret, card)
	if err != nil {
		return 0, confirmError(err)
	}
	if !result.Status.Final() {
		slog.Warn("unexpected payment status", "intent", result.IntentID, "status", result.Status)
		return 0, &Error{
			Stage:   StageConfirm,
			Message: fmt.Sprintf("unexpected payment status: %s", result.Status),
		}
	}

	id, err := p.creator.CreateProperty(ctx, api.CreateRequest{
		Draft:           draft,
		PaymentIntentID: result.IntentID,
		PaymentAmount:   result.Amount,
		IdempotencyKey:  uuid.NewString(),
	})
	if err != nil {
		slog.Error("listing creation failed after successful charge",
			"intent", result.IntentID, "error", err)
		return 0, &PostChargeError{IntentID: result.IntentID, Amount: result.Amount, Err: err}
	}

	draft.Reset()
	return id, nil
}

// confirmError wraps a confirmation failure with its user-facing
// message. Provider code errors keep the user in the dialog for a retry
// with a different instrument.
func confirmError(err error) *Error {
	var codeErr *payment.CodeError
	if errors.As(err, &codeErr) {
		return &Error{
			Stage:   StageConfirm,
			Message: payment.MessageForCode(codeErr.Code, codeErr.Message),
			Err:     err,
		}
	}
	return &Error{Stage: StageConfirm, Err: err}
}

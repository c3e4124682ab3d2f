package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

// StripeConfirmer confirms card payments directly against the Stripe API.
// It is the headless counterpart of the embeddable card widget: hosts
// without a web view collect card details and confirm here.
type StripeConfirmer struct {
	api *client.API
}

// NewStripeConfirmer creates a confirmer using the given Stripe key.
func NewStripeConfirmer(key string) (*StripeConfirmer, error) {
	if key == "" {
		return nil, fmt.Errorf("stripe key is required")
	}
	api := &client.API{}
	api.Init(key, nil)
	return &StripeConfirmer{api: api}, nil
}

// Confirm tokenizes the card as a payment method and confirms the intent
// identified by the client secret. Provider failures come back as
// *CodeError so callers can map them to user-facing messages.
func (s *StripeConfirmer) Confirm(ctx context.Context, clientSecret string, card Card) (*Result, error) {
	intentID, err := IntentIDFromSecret(clientSecret)
	if err != nil {
		return nil, err
	}

	pm, err := s.api.PaymentMethods.New(&stripe.PaymentMethodParams{
		Params: stripe.Params{Context: ctx},
		Type:   stripe.String("card"),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(card.Number),
			ExpMonth: stripe.Int64(card.ExpMonth),
			ExpYear:  stripe.Int64(card.ExpYear),
			CVC:      stripe.String(card.CVC),
		},
		BillingDetails: &stripe.PaymentMethodBillingDetailsParams{
			Name: stripe.String(card.Name),
		},
	})
	if err != nil {
		return nil, asCodeError(err)
	}

	confirmParams := &stripe.PaymentIntentConfirmParams{
		Params:        stripe.Params{Context: ctx},
		PaymentMethod: stripe.String(pm.ID),
	}
	// PaymentIntentConfirmParams has no ClientSecret field in stripe-go;
	// send the same client_secret form field via AddExtra.
	confirmParams.AddExtra("client_secret", clientSecret)
	pi, err := s.api.PaymentIntents.Confirm(intentID, confirmParams)
	if err != nil {
		return nil, asCodeError(err)
	}

	return &Result{
		IntentID:          pi.ID,
		Amount:            pi.Amount,
		Status:            Status(pi.Status),
		ConfirmationToken: clientSecret,
	}, nil
}

// asCodeError converts a stripe error into a *CodeError, preferring the
// decline code when present (card_declined alone is too coarse for the
// user-facing message map).
func asCodeError(err error) error {
	var serr *stripe.Error
	if !errors.As(err, &serr) {
		return err
	}

	code := string(serr.Code)
	if serr.DeclineCode != "" {
		if _, known := messages[string(serr.DeclineCode)]; known {
			code = string(serr.DeclineCode)
		}
	}
	return &CodeError{Code: code, Message: serr.Msg}
}

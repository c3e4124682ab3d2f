package api

import (
	"context"
	"fmt"

	"github.com/mkhalil/rent-finder/internal/payment"
)

// CreateIntent asks the backend for a fresh payment intent covering the
// listing fee. Every attempt must request a new intent; a client secret
// from a failed confirmation is never reused.
func (c *Client) CreateIntent(ctx context.Context, currency string, amountMinor int64) (*payment.Intent, error) {
	body := map[string]interface{}{
		"currency": currency,
		"amount":   amountMinor,
	}

	var intent payment.Intent
	if err := c.post(ctx, "/api/Payment/create-or-update-payment-intent", body, &intent); err != nil {
		return nil, err
	}
	if intent.ClientSecret == "" {
		return nil, fmt.Errorf("payment intent response has no client secret")
	}
	return &intent, nil
}

package payment

import (
	"context"
	"fmt"
	"strings"
)

// Confirmer confirms a card charge against the payment provider using a
// client secret issued by the backend.
type Confirmer interface {
	Confirm(ctx context.Context, clientSecret string, card Card) (*Result, error)
}

// IntentIDFromSecret derives the intent id from a client secret of the
// form "pi_XXX_secret_YYY".
func IntentIDFromSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret_")
	if !found || id == "" {
		return "", fmt.Errorf("malformed client secret")
	}
	return id, nil
}

package cli

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

// unsignedToken builds a syntactically valid token for commands that
// only inspect claims.
func unsignedToken(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims(claims)).SignedString([]byte("test"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestShowRequiresID(t *testing.T) {
	_, err := executeCommand("show")
	if err == nil {
		t.Fatal("expected error when no id provided")
	}
}

func TestShowRejectsNonNumericID(t *testing.T) {
	_, err := executeCommand("show", "abc")
	if err == nil {
		t.Fatal("expected error for non-numeric id")
	}
	if !strings.Contains(err.Error(), "invalid listing id") {
		t.Errorf("err = %v, want invalid listing id", err)
	}
}

func TestFavoriteRequiresID(t *testing.T) {
	_, err := executeCommand("favorite")
	if err == nil {
		t.Fatal("expected error when no id provided")
	}
}

func TestReviewRejectsOutOfRangeRating(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RF_TOKEN", unsignedToken(t, map[string]interface{}{"sub": "user-1"}))

	_, err := executeCommand("review", "1", "--rating", "9")
	if err == nil {
		t.Fatal("expected error for rating 9")
	}
	if !strings.Contains(err.Error(), "rating must be 1-5") {
		t.Errorf("err = %v, want rating range error", err)
	}
}

func TestAddRequiresPaymentKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RF_STRIPE_KEY", "")

	_, err := executeCommand("add", "--title", "Nice flat")
	if err == nil {
		t.Fatal("expected error without a payment key")
	}
	if !strings.Contains(err.Error(), "payment key") {
		t.Errorf("err = %v, want missing payment key error", err)
	}
}

func TestSignupRequiresEmailAndPassword(t *testing.T) {
	_, err := executeCommand("signup", "--first-name", "Mina")
	if err == nil {
		t.Fatal("expected error without email and password")
	}
}

func TestResetRequiresPasswordWithOTP(t *testing.T) {
	_, err := executeCommand("reset", "user@example.com", "--otp", "123456")
	if err == nil {
		t.Fatal("expected error when --otp is given without --password")
	}
}

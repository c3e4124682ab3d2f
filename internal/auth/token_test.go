package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return s
}

func TestUserIDClaimFallbackChain(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   string
	}{
		{"sub claim", jwt.MapClaims{"sub": "u-1"}, "u-1"},
		{"nameid claim", jwt.MapClaims{"nameid": "u-2"}, "u-2"},
		{"full dotnet claim", jwt.MapClaims{dotnetNameIdentifier: "u-3"}, "u-3"},
		{"sub wins over nameid", jwt.MapClaims{"sub": "u-1", "nameid": "u-2"}, "u-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UserID(signToken(t, tt.claims))
			if err != nil {
				t.Fatalf("user id: %v", err)
			}
			if got != tt.want {
				t.Errorf("user id = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserIDMissing(t *testing.T) {
	if _, err := UserID(signToken(t, jwt.MapClaims{"email": "a@b.c"})); err == nil {
		t.Fatal("expected error for token without user id claim")
	}
}

func TestExpired(t *testing.T) {
	past := signToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})
	if !Expired(past) {
		t.Error("token with past exp should be expired")
	}

	future := signToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	if Expired(future) {
		t.Error("token with future exp should not be expired")
	}

	noExp := signToken(t, jwt.MapClaims{"sub": "u-1"})
	if Expired(noExp) {
		t.Error("token without exp should not be expired")
	}

	if !Expired("not-a-token") {
		t.Error("malformed token should be treated as expired")
	}
}

func TestIsAuthenticated(t *testing.T) {
	if IsAuthenticated("") {
		t.Error("empty token should not be authenticated")
	}
	valid := signToken(t, jwt.MapClaims{"sub": "u-1", "exp": time.Now().Add(time.Hour).Unix()})
	if !IsAuthenticated(valid) {
		t.Error("valid token should be authenticated")
	}
}

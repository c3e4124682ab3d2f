// Package auth handles the bearer token issued by the rental backend.
//
// The client never verifies token signatures (it holds no signing key);
// it only inspects claims to decide whether the user looks logged in and
// to resolve the user id needed by user-scoped API routes.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// dotnetNameIdentifier is the full claim URI ASP.NET Identity uses for
// the user id when claims are not shortened.
const dotnetNameIdentifier = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"

// userIDClaims is the order in which user-id claims are tried. The
// backend has emitted all three shapes at different times.
var userIDClaims = []string{"sub", "nameid", dotnetNameIdentifier}

// Claims parses a token without verifying its signature and returns the
// claim map.
func Claims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	return claims, nil
}

// UserID extracts the user id from a token, trying the known claim names
// in order.
func UserID(token string) (string, error) {
	claims, err := Claims(token)
	if err != nil {
		return "", err
	}

	for _, name := range userIDClaims {
		if v, ok := claims[name]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, nil
			}
		}
	}

	return "", fmt.Errorf("token has no user id claim")
}

// Expired reports whether the token's exp claim is in the past. Tokens
// without an exp claim are treated as unexpired; malformed tokens as
// expired.
func Expired(token string) bool {
	claims, err := Claims(token)
	if err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return err != nil
	}

	return time.Now().After(exp.Time)
}

// IsAuthenticated reports whether the stored token looks usable: present
// and not expired.
func IsAuthenticated(token string) bool {
	return token != "" && !Expired(token)
}

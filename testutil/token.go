// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var signingKey = []byte("coffeehouse-test-key")

// MintToken signs claims with a throwaway HMAC key. Callers decode without
// verification, so the key only has to produce a well-formed token.
func MintToken(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return token
}

// ReaderToken mints a token for a typical signed-in reader.
func ReaderToken(t testing.TB, sub, name, email string) string {
	t.Helper()
	now := time.Now()
	return MintToken(t, jwt.MapClaims{
		"sub":     sub,
		"name":    name,
		"email":   email,
		"picture": "https://example.com/" + sub + ".png",
		"iss":     "https://accounts.google.com",
		"aud":     "coffeehouse",
		"iat":     now.Unix(),
		"exp":     now.Add(time.Hour).Unix(),
	})
}

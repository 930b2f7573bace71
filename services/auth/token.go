package auth

import (
	"fmt"

	"coffeehouse/api"

	"github.com/lestrrat-go/jwx/jwt"
)

// ParseToken decodes an ID token's payload. The signature is not checked:
// the backend verified the token when it issued it.
func ParseToken(raw string) (api.ParsedToken, error) {
	tok, err := jwt.ParseString(raw)
	if err != nil {
		return api.ParsedToken{}, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}
	if tok.Subject() == "" {
		return api.ParsedToken{}, fmt.Errorf("%w: missing sub claim", ErrInvalidToken)
	}

	parsed := api.ParsedToken{
		Subject:    tok.Subject(),
		Issuer:     tok.Issuer(),
		Audience:   tok.Audience(),
		Name:       stringClaim(tok, "name"),
		GivenName:  stringClaim(tok, "given_name"),
		FamilyName: stringClaim(tok, "family_name"),
		Email:      stringClaim(tok, "email"),
		Picture:    stringClaim(tok, "picture"),
	}
	if exp := tok.Expiration(); !exp.IsZero() {
		parsed.ExpiresAt = exp.Unix()
	}
	if iat := tok.IssuedAt(); !iat.IsZero() {
		parsed.IssuedAt = iat.Unix()
	}
	return parsed, nil
}

// stringClaim returns a private claim if it is a string; anything else is
// dropped.
func stringClaim(tok jwt.Token, name string) string {
	v, ok := tok.Get(name)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

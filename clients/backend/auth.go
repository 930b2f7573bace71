package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"coffeehouse/api"

	"github.com/go-resty/resty/v2"
)

const retrieveTokenPOST = "/api/retrieve-token"

// ErrEmptyToken is returned when the backend answers the exchange with no token.
var ErrEmptyToken = errors.New("backend returned an empty token")

// AuthGateway exchanges authorization codes for ID tokens.
type AuthGateway struct {
	http *resty.Client
}

func NewAuthGateway(client *resty.Client) *AuthGateway {
	return &AuthGateway{http: client}
}

// RetrieveToken exchanges an auth code and the redirect URI it was issued
// for into an ID token. The backend answers with a JSON string; a bare token
// is accepted as well.
func (a *AuthGateway) RetrieveToken(ctx context.Context, code, redirectURI string) (string, error) {
	resp, err := a.http.R().
		SetContext(ctx).
		SetBody(api.RetrieveTokenRequest{Code: code, RedirectURI: redirectURI}).
		Post(retrieveTokenPOST)
	if err != nil {
		slog.With("error", err.Error()).Error("Error retrieving token")
		return "", fmt.Errorf("failed to retrieve token: %w", err)
	}
	if resp.IsError() {
		return "", parseError(resp)
	}

	var token string
	if err := json.Unmarshal(resp.Body(), &token); err != nil {
		token = resp.String()
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}

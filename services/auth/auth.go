package auth

import (
	"context"
	"log/slog"
	"time"

	"coffeehouse/api"
	"coffeehouse/services/session"
)

// Provider is the identity provider's interactive consent flow.
type Provider interface {
	// GrantOfflineAccess asks the user to consent to scopes and returns the
	// resulting authorization code.
	GrantOfflineAccess(ctx context.Context, scopes string) (string, error)
	// RedirectURI is the URI the authorization code was issued for.
	RedirectURI() string
	IsSignedIn() bool
	SignOut(ctx context.Context) error
}

// Gateway exchanges an authorization code for an ID token.
type Gateway interface {
	RetrieveToken(ctx context.Context, code, redirectURI string) (string, error)
}

type Service interface {
	// SignIn runs consent and token exchange end to end and records the
	// token in the session. Every failure is a *FailureToSignInError.
	SignIn(ctx context.Context, scopes string) (string, error)
	// SignOut returns false if nobody was signed in. It never fails.
	SignOut(ctx context.Context) bool
	// GetParsedToken decodes the cached token's payload.
	GetParsedToken() (api.ParsedToken, error)
}

type service struct {
	provider       Provider
	backend        Gateway
	session        *session.Store
	consentTimeout time.Duration
}

var _ Service = (*service)(nil)

func NewService(provider Provider, backend Gateway, store *session.Store, consentTimeout time.Duration) Service {
	return &service{
		provider:       provider,
		backend:        backend,
		session:        store,
		consentTimeout: consentTimeout,
	}
}

func (s *service) SignIn(ctx context.Context, scopes string) (string, error) {
	code, err := s.authCode(ctx, scopes)
	if err != nil {
		slog.With("error", err.Error()).Warn("consent was not granted")
		return "", s.abandon(ctx, err)
	}

	token, err := s.backend.RetrieveToken(ctx, code, s.provider.RedirectURI())
	if err != nil {
		slog.With("error", err.Error()).Error("Failed to exchange auth code for token")
		return "", s.abandon(ctx, err)
	}
	if token == "" {
		return "", s.abandon(ctx, ErrNoToken)
	}
	// The exchange result is authoritative; the provider is only asked once
	// to confirm it agrees.
	if !s.provider.IsSignedIn() {
		return "", s.abandon(ctx, ErrProviderNotSignedIn)
	}

	s.session.SetUserToken(ctx, token)
	s.session.SetUserLoginStatus(ctx, true)
	return token, nil
}

// abandon drops whatever consent the provider recorded for a sign-in that
// did not complete, so the provider never reports a user the session lacks.
func (s *service) abandon(ctx context.Context, cause error) error {
	if s.provider.IsSignedIn() {
		if err := s.provider.SignOut(ctx); err != nil {
			slog.With("error", err.Error()).Warn("identity provider sign out failed")
		}
	}
	return &FailureToSignInError{Err: cause}
}

func (s *service) authCode(ctx context.Context, scopes string) (string, error) {
	if s.consentTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.consentTimeout)
		defer cancel()
	}
	code, err := s.provider.GrantOfflineAccess(ctx, scopes)
	if err != nil {
		return "", err
	}
	if code == "" {
		return "", ErrNoAuthCode
	}
	return code, nil
}

func (s *service) SignOut(ctx context.Context) bool {
	if !s.provider.IsSignedIn() && !s.session.GetUserLoginStatus() {
		return false
	}
	if err := s.provider.SignOut(ctx); err != nil {
		slog.With("error", err.Error()).Warn("identity provider sign out failed")
	}
	s.session.SetUserLoginStatus(ctx, false)
	return true
}

func (s *service) GetParsedToken() (api.ParsedToken, error) {
	token, ok := s.session.GetUserToken()
	if !ok {
		return api.ParsedToken{}, ErrNoToken
	}
	return ParseToken(token)
}

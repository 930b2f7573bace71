// Package services wires the session store, the gateways and the handler
// services into one context shared by the CLI and the companion server.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"coffeehouse/api"
	"coffeehouse/clients/backend"
	"coffeehouse/clients/gcp"
	"coffeehouse/clients/google"
	"coffeehouse/envvars"
	"coffeehouse/services/auth"
	"coffeehouse/services/clubs"
	"coffeehouse/services/profile"
	"coffeehouse/services/session"

	"github.com/google/uuid"
)

type Services struct {
	Env     envvars.Env
	Session *session.Store
	Auth    auth.Service
	Profile profile.Service
	Clubs   clubs.Service
}

// New builds every service for env. The caller must Close the result.
func New(ctx context.Context, env envvars.Env) (*Services, error) {
	kv, err := openStore(ctx, env)
	if err != nil {
		return nil, err
	}
	store := session.NewStore(ctx, kv)

	client := backend.NewClient(env.APIURL, env.HTTPTimeout)
	provider := google.NewProvider(env.GoogleClientID, env.RedirectPort, os.Stderr)

	return &Services{
		Env:     env,
		Session: store,
		Auth:    auth.NewService(provider, backend.NewAuthGateway(client), store, env.ConsentTimeout),
		Profile: profile.NewService(backend.NewProfileGateway(client)),
		Clubs:   clubs.NewService(backend.NewClubGateway(client)),
	}, nil
}

func openStore(ctx context.Context, env envvars.Env) (session.KeyValueStore, error) {
	switch env.SessionStore {
	case envvars.MemorySessionStore:
		return session.NewMemoryStore(), nil
	case envvars.FirestoreStore:
		client, err := gcp.CreateFirestore(ctx, env.GCPProjectID, env.GoogleCredentials)
		if err != nil {
			return nil, err
		}
		return session.NewFirestoreStore(client, deviceID(env)), nil
	case envvars.SQLiteSessionStore, "":
		kv, err := session.OpenSQLiteStore(env.SessionPath)
		if err != nil {
			return nil, err
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown session store %q", env.SessionStore)
	}
}

// deviceID keys this machine's session document. Without an explicit id it
// is derived from the hostname so it is stable across runs.
func deviceID(env envvars.Env) string {
	if env.DeviceID != "" {
		return env.DeviceID
	}
	host, err := os.Hostname()
	if err != nil {
		slog.With("error", err.Error()).Warn("no hostname, using a random device id")
		return uuid.NewString()
	}
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(host)).String()
}

func (s *Services) Close() error {
	return s.Session.Close()
}

// SignIn runs the consent flow, decodes the new token and makes sure the
// reader has a profile. A profile failure does not undo the sign-in: the
// response then carries no person.
func (s *Services) SignIn(ctx context.Context, scopes string) (*api.LoginResponse, error) {
	if scopes == "" {
		scopes = s.Env.Scopes
	}
	token, err := s.Auth.SignIn(ctx, scopes)
	if err != nil {
		return nil, err
	}
	claims, err := s.Auth.GetParsedToken()
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			slog.With("error", err.Error()).Warn("signed in with a token that has no readable claims")
			return &api.LoginResponse{Token: token}, nil
		}
		return nil, err
	}

	resp := &api.LoginResponse{Token: token, Claims: claims}
	person, err := s.Profile.EnsurePerson(ctx, token, claims)
	if err != nil {
		slog.With("error", err.Error()).Warn("signed in without a profile")
		return resp, nil
	}
	resp.Person = person
	return resp, nil
}

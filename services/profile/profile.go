package profile

import (
	"context"
	"errors"

	"coffeehouse/api"
	"coffeehouse/generator"

	"github.com/rs/zerolog/log"
)

// Gateway is the backend's profile surface.
type Gateway interface {
	LoadProfile(ctx context.Context, token string) (*api.Person, error)
	UpdateProfile(ctx context.Context, person api.Person, token string) (*api.Person, error)
	CreatePerson(ctx context.Context, person api.Person) (*api.Person, error)
	DeleteProfile(ctx context.Context, userID string) (bool, error)
}

type Service interface {
	GetPerson(ctx context.Context, token string) (*api.Person, error)
	UpdatePerson(ctx context.Context, person api.Person, token string) (*api.Person, error)
	CreatePerson(ctx context.Context, person api.Person) (*api.Person, error)
	// DeletePerson always fails: the backend has no delete operation.
	DeletePerson(ctx context.Context, userID string) error
	// EnsurePerson loads the caller's profile, creating it from the token
	// claims when none exists yet.
	EnsurePerson(ctx context.Context, token string, claims api.ParsedToken) (*api.Person, error)
}

type service struct {
	gateway Gateway
}

var _ Service = (*service)(nil)

func NewService(gateway Gateway) Service {
	return &service{gateway: gateway}
}

func (s *service) GetPerson(ctx context.Context, token string) (*api.Person, error) {
	person, err := s.gateway.LoadProfile(ctx, token)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load profile")
		return nil, &NonExistentProfileError{Err: err}
	}
	return person, nil
}

func (s *service) UpdatePerson(ctx context.Context, person api.Person, token string) (*api.Person, error) {
	updated, err := s.gateway.UpdateProfile(ctx, person, token)
	if err != nil {
		log.Error().Err(err).Str("userId", person.UserID).Msg("Failed to update profile")
		return nil, &FailureToUpdateProfileError{Err: err}
	}
	return updated, nil
}

func (s *service) CreatePerson(ctx context.Context, person api.Person) (*api.Person, error) {
	created, err := s.gateway.CreatePerson(ctx, person)
	if err != nil {
		log.Error().Err(err).Str("nickname", person.Nickname).Msg("Failed to create person")
		return nil, &FailureToCreatePersonError{Err: err}
	}
	return created, nil
}

func (s *service) DeletePerson(ctx context.Context, userID string) error {
	deleted, err := s.gateway.DeleteProfile(ctx, userID)
	if err != nil {
		return &NonExistentProfileError{Err: err}
	}
	if !deleted {
		return &NonExistentProfileError{}
	}
	return nil
}

func (s *service) EnsurePerson(ctx context.Context, token string, claims api.ParsedToken) (*api.Person, error) {
	person, err := s.GetPerson(ctx, token)
	if err == nil {
		return person, nil
	}
	var missing *NonExistentProfileError
	if !errors.As(err, &missing) {
		return nil, err
	}

	log.Info().Str("userId", claims.Subject).Msg("Creating profile on first sign in")
	return s.CreatePerson(ctx, api.PersonFromToken(claims, generator.ReaderName()))
}

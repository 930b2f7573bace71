package backend

import (
	"context"
	"fmt"

	"coffeehouse/api"

	"github.com/go-resty/resty/v2"
)

const (
	getProfileGET    = "/api/get-profile"
	updatePersonPOST = "/api/update-person"
	createPersonPOST = "/api/create-person"
)

// ProfileGateway performs the profile requests.
type ProfileGateway struct {
	http *resty.Client
}

func NewProfileGateway(client *resty.Client) *ProfileGateway {
	return &ProfileGateway{http: client}
}

// LoadProfile returns the profile belonging to the ID token.
func (p *ProfileGateway) LoadProfile(ctx context.Context, token string) (*api.Person, error) {
	resp, err := p.http.R().
		SetContext(ctx).
		SetQueryParam("idToken", token).
		Get(getProfileGET)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	person := &api.Person{}
	if err := decode(resp, person); err != nil {
		return nil, err
	}
	return person, nil
}

// UpdateProfile replaces the profile of the ID token's owner.
func (p *ProfileGateway) UpdateProfile(ctx context.Context, person api.Person, token string) (*api.Person, error) {
	resp, err := p.http.R().
		SetContext(ctx).
		SetBody(api.UpdatePersonRequest{IDToken: token, Person: person}).
		Post(updatePersonPOST)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	updated := &api.Person{}
	if err := decode(resp, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// CreatePerson creates a new profile.
func (p *ProfileGateway) CreatePerson(ctx context.Context, person api.Person) (*api.Person, error) {
	resp, err := p.http.R().
		SetContext(ctx).
		SetBody(person).
		Post(createPersonPOST)
	if err != nil {
		return nil, fmt.Errorf("failed to create person: %w", err)
	}
	created := &api.Person{}
	if err := decode(resp, created); err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteProfile always reports false: the backend has no delete endpoint.
func (p *ProfileGateway) DeleteProfile(ctx context.Context, userID string) (bool, error) {
	return false, nil
}

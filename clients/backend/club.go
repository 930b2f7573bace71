package backend

import (
	"context"
	"fmt"

	"coffeehouse/api"

	"github.com/go-resty/resty/v2"
)

const (
	createClubPOST = "/api/create-club"
	listClubsGET   = "/api/list-clubs"
	leaveClubPOST  = "/api/leave-club"
	joinClubPOST   = "/api/join-club"
	getClubGET     = "/api/get-club"
	updateClubPOST = "/api/update-club"
)

// ClubGateway performs the club requests.
type ClubGateway struct {
	http *resty.Client
}

func NewClubGateway(client *resty.Client) *ClubGateway {
	return &ClubGateway{http: client}
}

// CreateClub creates a club from the given club object.
func (c *ClubGateway) CreateClub(ctx context.Context, club api.Club) (*api.Club, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(club).
		Post(createClubPOST)
	if err != nil {
		return nil, fmt.Errorf("failed to create club: %w", err)
	}
	created := &api.Club{}
	if err := decode(resp, created); err != nil {
		return nil, err
	}
	return created, nil
}

// ListClubs returns the clubs the token's owner is, or is not, a member of.
func (c *ClubGateway) ListClubs(ctx context.Context, membership api.MembershipStatus, token string) ([]api.Club, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"idToken":          token,
			"membershipStatus": string(membership),
		}).
		Get(listClubsGET)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	clubs := make([]api.Club, 0)
	if err := decode(resp, &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

// LeaveClub removes the token's owner from a club and returns the response
// status code.
func (c *ClubGateway) LeaveClub(ctx context.Context, clubID, token string) (int, error) {
	return c.membership(ctx, leaveClubPOST, clubID, token)
}

// JoinClub adds the token's owner to a club and returns the response status
// code.
func (c *ClubGateway) JoinClub(ctx context.Context, clubID, token string) (int, error) {
	return c.membership(ctx, joinClubPOST, clubID, token)
}

func (c *ClubGateway) membership(ctx context.Context, path, clubID, token string) (int, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(api.MembershipRequest{ClubID: clubID, IDToken: token}).
		Post(path)
	if err != nil {
		return 0, fmt.Errorf("failed to call %s: %w", path, err)
	}
	return resp.StatusCode(), nil
}

// GetClub returns a club by ID.
func (c *ClubGateway) GetClub(ctx context.Context, clubID string) (*api.Club, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("clubId", clubID).
		Get(getClubGET)
	if err != nil {
		return nil, fmt.Errorf("failed to get club: %w", err)
	}
	club := &api.Club{}
	if err := decode(resp, club); err != nil {
		return nil, err
	}
	return club, nil
}

// UpdateClub applies the fields named by the request's update mask.
func (c *ClubGateway) UpdateClub(ctx context.Context, req api.UpdateClubRequest) (*api.Club, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(updateClubPOST)
	if err != nil {
		return nil, fmt.Errorf("failed to update club: %w", err)
	}
	club := &api.Club{}
	if err := decode(resp, club); err != nil {
		return nil, err
	}
	return club, nil
}

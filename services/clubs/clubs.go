package clubs

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"coffeehouse/api"
	"coffeehouse/set"

	"github.com/rs/zerolog/log"
)

// Gateway is the backend's club surface. Membership calls report the raw
// HTTP status.
type Gateway interface {
	CreateClub(ctx context.Context, club api.Club) (*api.Club, error)
	ListClubs(ctx context.Context, membership api.MembershipStatus, token string) ([]api.Club, error)
	LeaveClub(ctx context.Context, clubID, token string) (int, error)
	JoinClub(ctx context.Context, clubID, token string) (int, error)
	GetClub(ctx context.Context, clubID string) (*api.Club, error)
	UpdateClub(ctx context.Context, req api.UpdateClubRequest) (*api.Club, error)
}

type Service interface {
	CreateClub(ctx context.Context, club api.Club) (*api.Club, error)
	ListClubs(ctx context.Context, token string, membership api.MembershipStatus) ([]api.Club, error)
	// LeaveClub reports whether the backend answered 200. It never fails.
	LeaveClub(ctx context.Context, clubID, token string) bool
	// JoinClub reports whether the backend answered 200. It never fails.
	JoinClub(ctx context.Context, clubID, token string) bool
	GetClub(ctx context.Context, clubID string) (*api.Club, error)
	// UpdateClub applies mask, or every set updatable field when mask is empty.
	UpdateClub(ctx context.Context, club api.Club, token, mask string) (*api.Club, error)
}

type service struct {
	gateway Gateway
}

var _ Service = (*service)(nil)

func NewService(gateway Gateway) Service {
	return &service{gateway: gateway}
}

func (s *service) CreateClub(ctx context.Context, club api.Club) (*api.Club, error) {
	club = club.WithDefaults()
	club.ContentWarnings = normalizeWarnings(club.ContentWarnings)
	created, err := s.gateway.CreateClub(ctx, club)
	if err != nil {
		log.Error().Err(err).Str("name", club.Name).Msg("Failed to create club")
		return nil, &FailureToCreateClubError{Club: club, Err: err}
	}
	return created, nil
}

func (s *service) ListClubs(ctx context.Context, token string, membership api.MembershipStatus) ([]api.Club, error) {
	clubs, err := s.gateway.ListClubs(ctx, membership, token)
	if err != nil {
		log.Warn().Err(err).Str("membership", string(membership)).Msg("Failed to list clubs")
		return nil, &FailureToGetClubsError{Err: err}
	}
	if clubs == nil {
		clubs = make([]api.Club, 0)
	}
	return clubs, nil
}

func (s *service) LeaveClub(ctx context.Context, clubID, token string) bool {
	status, err := s.gateway.LeaveClub(ctx, clubID, token)
	return membershipChanged(clubID, "leave", status, err)
}

func (s *service) JoinClub(ctx context.Context, clubID, token string) bool {
	status, err := s.gateway.JoinClub(ctx, clubID, token)
	return membershipChanged(clubID, "join", status, err)
}

func membershipChanged(clubID, action string, status int, err error) bool {
	if err != nil {
		log.Warn().Err(err).Str("clubId", clubID).Str("action", action).Msg("Membership request failed")
		return false
	}
	if status != http.StatusOK {
		log.Warn().Int("status", status).Str("clubId", clubID).Str("action", action).Msg("Membership request rejected")
		return false
	}
	return true
}

func (s *service) GetClub(ctx context.Context, clubID string) (*api.Club, error) {
	club, err := s.gateway.GetClub(ctx, clubID)
	if err != nil {
		log.Warn().Err(err).Str("clubId", clubID).Msg("Failed to get club")
		return nil, &FailureToGetClubsError{Err: err}
	}
	return club, nil
}

var ErrNothingToUpdate = errors.New("no updatable fields set")

func (s *service) UpdateClub(ctx context.Context, club api.Club, token, mask string) (*api.Club, error) {
	if strings.TrimSpace(mask) == "" {
		mask = UpdateMask(club)
	}
	mask, err := ValidateMask(mask)
	if err != nil {
		return nil, &FailureToUpdateClubError{Err: err}
	}
	if mask == "" {
		return nil, &FailureToUpdateClubError{Err: ErrNothingToUpdate}
	}
	if maskNames(mask, "contentWarnings") {
		club = club.WithDefaults()
	}
	if club.ContentWarnings != nil {
		club.ContentWarnings = normalizeWarnings(club.ContentWarnings)
	}

	updated, err := s.gateway.UpdateClub(ctx, api.UpdateClubRequest{
		IDToken:    token,
		Club:       club,
		UpdateMask: mask,
	})
	if err != nil {
		log.Error().Err(err).Str("clubId", club.ClubID).Str("mask", mask).Msg("Failed to update club")
		return nil, &FailureToUpdateClubError{Err: err}
	}
	return updated, nil
}

// normalizeWarnings trims warnings and drops blanks and repeats, keeping the
// first spelling. The result is never nil.
func normalizeWarnings(warnings []string) []string {
	seen := set.New[string]()
	for _, w := range warnings {
		if w = strings.TrimSpace(w); w != "" {
			seen.Add(w)
		}
	}
	return seen.ToSlice()
}

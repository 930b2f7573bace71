package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"coffeehouse/api"
	"coffeehouse/clients/backend"
	"coffeehouse/services"
	"coffeehouse/services/auth"
	"coffeehouse/services/clubs"
	"coffeehouse/services/profile"
	"coffeehouse/utils"
	"coffeehouse/validator"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

type Server struct {
	Services *services.Services
}

func NewServer(svc *services.Services) Server {
	return Server{Services: svc}
}

func (s Server) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, api.Pong{Ping: "pong"})
}

func (s Server) GetSession(c *gin.Context) {
	resp := api.SessionResponse{LoggedIn: s.Services.Session.GetUserLoginStatus()}
	if resp.LoggedIn {
		if claims, err := s.Services.Auth.GetParsedToken(); err == nil {
			resp.Claims = utils.ToPointer(claims)
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s Server) Login(c *gin.Context) {
	var req api.LoginRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	resp, err := s.Services.SignIn(c.Request.Context(), req.Scope)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s Server) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, api.LogoutResponse{SignedOut: s.Services.Auth.SignOut(c.Request.Context())})
}

func (s Server) GetProfile(c *gin.Context) {
	token, ok := idToken(c)
	if !ok {
		return
	}
	person, err := s.Services.Profile.GetPerson(c.Request.Context(), token)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

func (s Server) UpdateProfile(c *gin.Context) {
	token, ok := idToken(c)
	if !ok {
		return
	}
	var person api.Person
	if err := c.ShouldBindJSON(&person); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := s.Services.Profile.UpdatePerson(c.Request.Context(), person, token)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s Server) CreateProfile(c *gin.Context) {
	var person api.Person
	if err := c.ShouldBindJSON(&person); err != nil {
		badRequest(c, err)
		return
	}
	created, err := s.Services.Profile.CreatePerson(c.Request.Context(), person)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s Server) ListClubs(c *gin.Context) {
	token, ok := idToken(c)
	if !ok {
		return
	}
	var raw string
	if err := runtime.BindQueryParameter("form", true, true, "membership", c.Request.URL.Query(), &raw); err != nil {
		badRequest(c, err)
		return
	}
	membership, valid := api.ParseMembershipStatus(raw)
	if !valid {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "membership must be \"member\" or \"not member\""})
		return
	}
	list, err := s.Services.Clubs.ListClubs(c.Request.Context(), token, membership)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s Server) CreateClub(c *gin.Context) {
	token, ok := idToken(c)
	if !ok {
		return
	}
	var club api.Club
	if err := c.ShouldBindJSON(&club); err != nil {
		badRequest(c, err)
		return
	}
	// Clubs belong to the caller unless the body says otherwise.
	if club.OwnerID == "" {
		if claims, err := auth.ParseToken(token); err == nil {
			club.OwnerID = claims.Subject
		}
	}
	created, err := s.Services.Clubs.CreateClub(c.Request.Context(), club)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s Server) GetClub(c *gin.Context) {
	clubID, ok := clubIDParam(c)
	if !ok {
		return
	}
	club, err := s.Services.Clubs.GetClub(c.Request.Context(), clubID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, club)
}

func (s Server) UpdateClub(c *gin.Context) {
	token, ok := idToken(c)
	if !ok {
		return
	}
	clubID, ok := clubIDParam(c)
	if !ok {
		return
	}
	var mask string
	if err := runtime.BindQueryParameter("form", true, false, "updateMask", c.Request.URL.Query(), &mask); err != nil {
		badRequest(c, err)
		return
	}
	var club api.Club
	if err := c.ShouldBindJSON(&club); err != nil {
		badRequest(c, err)
		return
	}
	club.ClubID = clubID
	updated, err := s.Services.Clubs.UpdateClub(c.Request.Context(), club, token, mask)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s Server) JoinClub(c *gin.Context) {
	s.membership(c, s.Services.Clubs.JoinClub)
}

func (s Server) LeaveClub(c *gin.Context) {
	s.membership(c, s.Services.Clubs.LeaveClub)
}

func (s Server) membership(c *gin.Context, change func(ctx context.Context, clubID, token string) bool) {
	token, ok := idToken(c)
	if !ok {
		return
	}
	clubID, ok := clubIDParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, api.MembershipResponse{
		ClubID:  clubID,
		Success: change(c.Request.Context(), clubID, token),
	})
}

// idToken returns the token the authenticator attached to the request.
func idToken(c *gin.Context) (string, bool) {
	access, ok := validator.FromContext(c)
	if !ok || access.IDToken == "" {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing access token"})
		return "", false
	}
	return access.IDToken, true
}

func clubIDParam(c *gin.Context) (string, bool) {
	var clubID string
	err := runtime.BindStyledParameterWithOptions("simple", "clubId", c.Param("clubId"), &clubID, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		badRequest(c, err)
		return "", false
	}
	return clubID, true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
}

// fail writes err with the status its domain error maps to.
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.With("error", err.Error()).Error("request failed", "path", c.FullPath())
	}
	c.JSON(status, api.ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var (
		signIn       *auth.FailureToSignInError
		noProfile    *profile.NonExistentProfileError
		createPerson *profile.FailureToCreatePersonError
		updatePerson *profile.FailureToUpdateProfileError
		createClub   *clubs.FailureToCreateClubError
		getClubs     *clubs.FailureToGetClubsError
		updateClub   *clubs.FailureToUpdateClubError
		backendErr   *backend.Error
	)
	switch {
	case errors.As(err, &signIn):
		return http.StatusUnauthorized
	case errors.As(err, &noProfile):
		return http.StatusNotFound
	case errors.As(err, &createPerson), errors.As(err, &createClub):
		return http.StatusBadRequest
	case errors.Is(err, clubs.ErrInvalidMask), errors.Is(err, clubs.ErrNothingToUpdate):
		return http.StatusBadRequest
	case errors.As(err, &backendErr) && backendErr.IsForbidden():
		return http.StatusForbidden
	case errors.As(err, &getClubs) && errors.As(err, &backendErr) && backendErr.IsNotFound():
		return http.StatusNotFound
	case errors.As(err, &updatePerson), errors.As(err, &getClubs), errors.As(err, &updateClub):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

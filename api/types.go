package api

import "strings"

// Person is a member profile as stored by the backend.
type Person struct {
	UserID   string `json:"userId,omitempty" yaml:"userId,omitempty"`
	Nickname string `json:"nickname" yaml:"nickname"`
	Email    string `json:"email" yaml:"email"`
	Pronouns string `json:"pronouns,omitempty" yaml:"pronouns,omitempty"`
}

// Book is always embedded in a Club and has no lifecycle of its own.
type Book struct {
	BookID string `json:"bookId,omitempty" yaml:"bookId,omitempty" structs:"bookId"`
	Title  string `json:"title" yaml:"title" structs:"title"`
	Author string `json:"author" yaml:"author" structs:"author"`
	ISBN   string `json:"isbn,omitempty" yaml:"isbn,omitempty" structs:"isbn"`
}

// Club is a book club. ContentWarnings is never sent as null on creation.
type Club struct {
	ClubID          string   `json:"clubId,omitempty" yaml:"clubId,omitempty" structs:"clubId"`
	Name            string   `json:"name" yaml:"name" structs:"name"`
	OwnerID         string   `json:"ownerId" yaml:"ownerId" structs:"ownerId"`
	Description     string   `json:"description" yaml:"description" structs:"description"`
	ContentWarnings []string `json:"contentWarnings" yaml:"contentWarnings" structs:"contentWarnings"`
	CurrentBook     Book     `json:"currentBook" yaml:"currentBook" structs:"currentBook"`
}

// MembershipStatus filters club listings by the caller's relation to a club.
type MembershipStatus string

const (
	Member    MembershipStatus = "member"
	NotMember MembershipStatus = "not member"
)

func (m MembershipStatus) Valid() bool {
	return m == Member || m == NotMember
}

// ParseMembershipStatus accepts the wire values plus the dashed and underscored
// spellings that are easier to type on a command line.
func ParseMembershipStatus(s string) (MembershipStatus, bool) {
	normalized := strings.NewReplacer("-", " ", "_", " ").Replace(strings.ToLower(strings.TrimSpace(s)))
	m := MembershipStatus(normalized)
	return m, m.Valid()
}

// Session is the client-side authentication state.
// LoggedIn implies Token is set; the reverse does not hold.
type Session struct {
	Token    string `json:"token,omitempty" yaml:"token,omitempty"`
	LoggedIn bool   `json:"loggedIn" yaml:"loggedIn"`
}

// ParsedToken is the decoded payload of an OpenID Connect ID token.
// Subject is required, everything else is optional.
type ParsedToken struct {
	Subject    string   `json:"sub" yaml:"sub"`
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	GivenName  string   `json:"given_name,omitempty" yaml:"given_name,omitempty"`
	FamilyName string   `json:"family_name,omitempty" yaml:"family_name,omitempty"`
	Email      string   `json:"email,omitempty" yaml:"email,omitempty"`
	Picture    string   `json:"picture,omitempty" yaml:"picture,omitempty"`
	Issuer     string   `json:"iss,omitempty" yaml:"iss,omitempty"`
	Audience   []string `json:"aud,omitempty" yaml:"aud,omitempty"`
	ExpiresAt  int64    `json:"exp,omitempty" yaml:"exp,omitempty"`
	IssuedAt   int64    `json:"iat,omitempty" yaml:"iat,omitempty"`
}

// UpdatePersonRequest is the body of POST /api/update-person.
type UpdatePersonRequest struct {
	IDToken string `json:"idToken"`
	Person  Person `json:"person"`
}

// RetrieveTokenRequest is the body of POST /api/retrieve-token.
type RetrieveTokenRequest struct {
	Code        string `json:"code"`
	RedirectURI string `json:"redirectUri"`
}

// MembershipRequest is the body of the join and leave endpoints.
type MembershipRequest struct {
	ClubID  string `json:"clubId"`
	IDToken string `json:"idToken"`
}

// UpdateClubRequest is the body of POST /api/update-club. UpdateMask is a
// comma separated list of field paths, e.g. "description,currentBook.title".
type UpdateClubRequest struct {
	IDToken    string `json:"idToken"`
	Club       Club   `json:"club"`
	UpdateMask string `json:"updateMask,omitempty"`
}

// SessionResponse is returned by the companion API's GET /session.
type SessionResponse struct {
	LoggedIn bool         `json:"loggedIn" yaml:"loggedIn"`
	Claims   *ParsedToken `json:"claims,omitempty" yaml:"claims,omitempty"`
}

// LoginRequest is the optional body of the companion API's POST /login.
type LoginRequest struct {
	Scope string `json:"scope,omitempty"`
}

// LoginResponse is returned after a successful sign-in.
type LoginResponse struct {
	Token  string      `json:"token" yaml:"token"`
	Claims ParsedToken `json:"claims" yaml:"claims"`
	Person *Person     `json:"person,omitempty" yaml:"person,omitempty"`
}

// LogoutResponse reports whether there was a session to end.
type LogoutResponse struct {
	SignedOut bool `json:"signedOut" yaml:"signedOut"`
}

// MembershipResponse reports the outcome of a join or leave.
type MembershipResponse struct {
	ClubID  string `json:"clubId" yaml:"clubId"`
	Success bool   `json:"success" yaml:"success"`
}

// Pong answers GET /ping.
type Pong struct {
	Ping string `json:"ping"`
}

// ErrorResponse is the body of every non-2xx companion API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

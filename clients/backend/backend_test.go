package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"coffeehouse/api"
)

var testClub = api.Club{
	ClubID:          "CLUB_ID",
	Name:            "NAME",
	OwnerID:         "OWNER_ID",
	Description:     "DESCRIPTION",
	ContentWarnings: []string{"1", "2"},
	CurrentBook:     api.Book{BookID: "BOOK_ID", Title: "TITLE", Author: "AUTHOR", ISBN: "ISBN"},
}

func newTestServer(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server.URL
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode: %v", err)
	}
}

func TestRetrieveToken(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr bool
	}{
		{"json string", http.StatusOK, `"abc.def.ghi"`, "abc.def.ghi", false},
		{"raw text", http.StatusOK, "abc.def.ghi\n", "abc.def.ghi", false},
		{"empty", http.StatusOK, `""`, "", true},
		{"forbidden", http.StatusForbidden, "- invalid ID token.", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/api/retrieve-token" {
					t.Errorf("request = %s %s, want POST /api/retrieve-token", r.Method, r.URL.Path)
				}
				var body api.RetrieveTokenRequest
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("decode body: %v", err)
				}
				if body.Code != "code-123" || body.RedirectURI != "http://127.0.0.1:8085" {
					t.Errorf("body = %+v", body)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			gw := NewAuthGateway(NewClient(url, time.Second))

			got, err := gw.RetrieveToken(context.Background(), "code-123", "http://127.0.0.1:8085")
			if (err != nil) != tt.wantErr {
				t.Fatalf("RetrieveToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("RetrieveToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadProfile(t *testing.T) {
	person := api.Person{UserID: "USER_ID", Nickname: "NICKNAME", Email: "EMAIL"}
	url := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/get-profile" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("idToken"); got != "Token" {
			t.Errorf("idToken = %q, want Token", got)
		}
		writeJSON(t, w, http.StatusOK, person)
	})
	gw := NewProfileGateway(NewClient(url, time.Second))

	got, err := gw.LoadProfile(context.Background(), "Token")
	if err != nil {
		t.Fatalf("LoadProfile() unexpected error: %v", err)
	}
	if *got != person {
		t.Errorf("LoadProfile() = %+v, want %+v", *got, person)
	}
}

func TestLoadProfileNotFound(t *testing.T) {
	url := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]string{"error": "no such person"})
	})
	gw := NewProfileGateway(NewClient(url, time.Second))

	_, err := gw.LoadProfile(context.Background(), "Token")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("LoadProfile() error = %v, want *Error", err)
	}
	if !apiErr.IsNotFound() {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Message != "no such person" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestUpdateProfile(t *testing.T) {
	person := api.Person{UserID: "USER_ID", Nickname: "NICK", Email: "EMAIL", Pronouns: "they/them"}
	url := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/update-person" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		var body api.UpdatePersonRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if body.IDToken != "Token" {
			t.Errorf("idToken = %q", body.IDToken)
		}
		writeJSON(t, w, http.StatusOK, body.Person)
	})
	gw := NewProfileGateway(NewClient(url, time.Second))

	got, err := gw.UpdateProfile(context.Background(), person, "Token")
	if err != nil {
		t.Fatalf("UpdateProfile() unexpected error: %v", err)
	}
	if *got != person {
		t.Errorf("UpdateProfile() = %+v, want %+v", *got, person)
	}
}

func TestCreatePerson(t *testing.T) {
	url := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/create-person" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body api.Person
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		body.UserID = "NEW_ID"
		writeJSON(t, w, http.StatusOK, body)
	})
	gw := NewProfileGateway(NewClient(url, time.Second))

	got, err := gw.CreatePerson(context.Background(), api.Person{Nickname: "N", Email: "E"})
	if err != nil {
		t.Fatalf("CreatePerson() unexpected error: %v", err)
	}
	if got.UserID != "NEW_ID" {
		t.Errorf("UserID = %q, want NEW_ID", got.UserID)
	}
}

func TestCreateAndGetClub(t *testing.T) {
	url := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/create-club":
			var body api.Club
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decode: %v", err)
			}
			writeJSON(t, w, http.StatusOK, body)
		case "/api/get-club":
			if got := r.URL.Query().Get("clubId"); got != "CLUB_ID" {
				t.Errorf("clubId = %q", got)
			}
			writeJSON(t, w, http.StatusOK, testClub)
		default:
			http.NotFound(w, r)
		}
	})
	gw := NewClubGateway(NewClient(url, time.Second))

	created, err := gw.CreateClub(context.Background(), testClub)
	if err != nil {
		t.Fatalf("CreateClub() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(*created, testClub) {
		t.Errorf("CreateClub() = %+v, want %+v", *created, testClub)
	}
	got, err := gw.GetClub(context.Background(), "CLUB_ID")
	if err != nil {
		t.Fatalf("GetClub() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(*got, testClub) {
		t.Errorf("GetClub() = %+v, want %+v", *got, testClub)
	}
}

func TestListClubs(t *testing.T) {
	tests := []struct {
		name       string
		membership api.MembershipStatus
		response   []api.Club
		want       int
	}{
		{"member", api.Member, []api.Club{testClub}, 1},
		{"not member", api.NotMember, []api.Club{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				if q.Get("idToken") != "Token" || q.Get("membershipStatus") != string(tt.membership) {
					t.Errorf("query = %v", q)
				}
				writeJSON(t, w, http.StatusOK, tt.response)
			})
			gw := NewClubGateway(NewClient(url, time.Second))

			got, err := gw.ListClubs(context.Background(), tt.membership, "Token")
			if err != nil {
				t.Fatalf("ListClubs() unexpected error: %v", err)
			}
			if got == nil || len(got) != tt.want {
				t.Errorf("ListClubs() = %v, want %d clubs", got, tt.want)
			}
		})
	}
}

func TestMembershipReturnsStatusCode(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"ok", http.StatusOK},
		{"not found", http.StatusNotFound},
		{"server error", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				var body api.MembershipRequest
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("decode: %v", err)
				}
				if body.ClubID != "CLUB_ID" || body.IDToken != "Token" {
					t.Errorf("body = %+v", body)
				}
				w.WriteHeader(tt.status)
			})
			gw := NewClubGateway(NewClient(url, time.Second))

			join, err := gw.JoinClub(context.Background(), "CLUB_ID", "Token")
			if err != nil {
				t.Fatalf("JoinClub() unexpected error: %v", err)
			}
			leave, err := gw.LeaveClub(context.Background(), "CLUB_ID", "Token")
			if err != nil {
				t.Fatalf("LeaveClub() unexpected error: %v", err)
			}
			if join != tt.status || leave != tt.status {
				t.Errorf("status = %d/%d, want %d", join, leave, tt.status)
			}
		})
	}
}

func TestUpdateClub(t *testing.T) {
	url := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/update-club" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body api.UpdateClubRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if body.UpdateMask != "description" || body.IDToken != "Token" {
			t.Errorf("body = %+v", body)
		}
		writeJSON(t, w, http.StatusOK, body.Club)
	})
	gw := NewClubGateway(NewClient(url, time.Second))

	got, err := gw.UpdateClub(context.Background(), api.UpdateClubRequest{IDToken: "Token", Club: testClub, UpdateMask: "description"})
	if err != nil {
		t.Fatalf("UpdateClub() unexpected error: %v", err)
	}
	if got.ClubID != testClub.ClubID {
		t.Errorf("ClubID = %q", got.ClubID)
	}
}

func TestTransportErrorIsReturned(t *testing.T) {
	gw := NewClubGateway(NewClient("http://127.0.0.1:1", 100*time.Millisecond))
	if _, err := gw.GetClub(context.Background(), "CLUB_ID"); err == nil {
		t.Error("GetClub() expected error for unreachable backend")
	}
	if _, err := gw.JoinClub(context.Background(), "CLUB_ID", "Token"); err == nil {
		t.Error("JoinClub() expected error for unreachable backend")
	}
}

package profile

import (
	"context"
	"errors"
	"testing"

	"coffeehouse/api"
)

// echoGateway returns whatever it is given, like a backend that accepts
// every write as is.
type echoGateway struct {
	profile *api.Person
	loadErr error
	err     error
	created []api.Person
}

func (g *echoGateway) LoadProfile(context.Context, string) (*api.Person, error) {
	return g.profile, g.loadErr
}

func (g *echoGateway) UpdateProfile(_ context.Context, person api.Person, _ string) (*api.Person, error) {
	if g.err != nil {
		return nil, g.err
	}
	stored := person
	g.profile = &stored
	return &person, nil
}

func (g *echoGateway) CreatePerson(_ context.Context, person api.Person) (*api.Person, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.created = append(g.created, person)
	return &person, nil
}

func (g *echoGateway) DeleteProfile(context.Context, string) (bool, error) {
	return false, nil
}

func TestGetPerson(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		want := &api.Person{UserID: "u1", Nickname: "Ada"}
		svc := NewService(&echoGateway{profile: want})
		got, err := svc.GetPerson(ctx, "tok")
		if err != nil {
			t.Fatalf("GetPerson() error = %v", err)
		}
		if *got != *want {
			t.Errorf("GetPerson() = %+v, want %+v", got, want)
		}
	})

	t.Run("gateway failure is non existent profile", func(t *testing.T) {
		cause := errors.New("404")
		svc := NewService(&echoGateway{loadErr: cause})
		_, err := svc.GetPerson(ctx, "tok")
		var target *NonExistentProfileError
		if !errors.As(err, &target) {
			t.Fatalf("GetPerson() error = %v, want *NonExistentProfileError", err)
		}
		if !errors.Is(err, cause) {
			t.Errorf("GetPerson() error does not wrap %v", cause)
		}
	})
}

func TestUpdateAndCreateEcho(t *testing.T) {
	ctx := context.Background()
	person := api.Person{UserID: "u1", Nickname: "Ada", Email: "ada@example.com", Pronouns: "she/her"}
	svc := NewService(&echoGateway{})

	updated, err := svc.UpdatePerson(ctx, person, "tok")
	if err != nil {
		t.Fatalf("UpdatePerson() error = %v", err)
	}
	if *updated != person {
		t.Errorf("UpdatePerson() = %+v, want %+v", updated, person)
	}
	got, err := svc.GetPerson(ctx, "tok")
	if err != nil {
		t.Fatalf("GetPerson() error = %v", err)
	}
	if *got != person {
		t.Errorf("GetPerson() after update = %+v, want %+v", got, person)
	}

	created, err := svc.CreatePerson(ctx, person)
	if err != nil {
		t.Fatalf("CreatePerson() error = %v", err)
	}
	if *created != person {
		t.Errorf("CreatePerson() = %+v, want %+v", created, person)
	}
}

func TestWriteFailures(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&echoGateway{err: errors.New("boom")})

	_, err := svc.UpdatePerson(ctx, api.Person{}, "tok")
	var updateErr *FailureToUpdateProfileError
	if !errors.As(err, &updateErr) {
		t.Errorf("UpdatePerson() error = %v, want *FailureToUpdateProfileError", err)
	}

	_, err = svc.CreatePerson(ctx, api.Person{})
	var createErr *FailureToCreatePersonError
	if !errors.As(err, &createErr) {
		t.Errorf("CreatePerson() error = %v, want *FailureToCreatePersonError", err)
	}
}

func TestDeletePerson(t *testing.T) {
	svc := NewService(&echoGateway{})
	err := svc.DeletePerson(context.Background(), "u1")
	var target *NonExistentProfileError
	if !errors.As(err, &target) {
		t.Errorf("DeletePerson() error = %v, want *NonExistentProfileError", err)
	}
}

func TestEnsurePerson(t *testing.T) {
	ctx := context.Background()
	claims := api.ParsedToken{Subject: "u1", Name: "Ada Lovelace", Email: "ada@example.com"}

	t.Run("existing profile is returned", func(t *testing.T) {
		gw := &echoGateway{profile: &api.Person{UserID: "u1", Nickname: "Countess"}}
		got, err := NewService(gw).EnsurePerson(ctx, "tok", claims)
		if err != nil {
			t.Fatalf("EnsurePerson() error = %v", err)
		}
		if got.Nickname != "Countess" {
			t.Errorf("EnsurePerson() nickname = %q, want Countess", got.Nickname)
		}
		if len(gw.created) != 0 {
			t.Errorf("created %d profiles, want 0", len(gw.created))
		}
	})

	t.Run("missing profile is created from claims", func(t *testing.T) {
		gw := &echoGateway{loadErr: errors.New("not found")}
		got, err := NewService(gw).EnsurePerson(ctx, "tok", claims)
		if err != nil {
			t.Fatalf("EnsurePerson() error = %v", err)
		}
		want := api.Person{UserID: "u1", Nickname: "Ada Lovelace", Email: "ada@example.com"}
		if *got != want {
			t.Errorf("EnsurePerson() = %+v, want %+v", got, want)
		}
	})

	t.Run("nameless token gets generated nickname", func(t *testing.T) {
		gw := &echoGateway{loadErr: errors.New("not found")}
		got, err := NewService(gw).EnsurePerson(ctx, "tok", api.ParsedToken{Subject: "u2"})
		if err != nil {
			t.Fatalf("EnsurePerson() error = %v", err)
		}
		if got.Nickname == "" {
			t.Error("EnsurePerson() nickname is empty")
		}
	})
}

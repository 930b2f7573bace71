package envvars

import (
	"os"
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	// Backup and defer restore of environment variables
	backup := os.Environ()
	defer func() {
		os.Clearenv()
		for _, env := range backup {
			pair := splitEnv(env)
			os.Setenv(pair[0], pair[1])
		}
	}()

	t.Run("all env vars set", func(t *testing.T) {
		os.Clearenv()
		os.Setenv(APIURL, "https://coffeehouse.example.com")
		os.Setenv(GoogleClientID, "client-id")
		os.Setenv(Scopes, "openid email")
		os.Setenv(RedirectPort, "9999")
		os.Setenv(SessionStore, FirestoreStore)
		os.Setenv(SessionPath, "/tmp/session.db")
		os.Setenv(DeviceID, "laptop")
		os.Setenv(GCPProjectID, "coffeehouse-project")
		os.Setenv(GoogleCredentials, "/tmp/creds.json")
		os.Setenv(HTTPTimeout, "5s")
		os.Setenv(ConsentTimeout, "1m")
		os.Setenv(ListenAddr, "0.0.0.0:9000")
		os.Setenv(Environment, ProductionEnv)

		expected := Env{
			APIURL:            "https://coffeehouse.example.com",
			GoogleClientID:    "client-id",
			Scopes:            "openid email",
			RedirectPort:      9999,
			SessionStore:      FirestoreStore,
			SessionPath:       "/tmp/session.db",
			DeviceID:          "laptop",
			GCPProjectID:      "coffeehouse-project",
			GoogleCredentials: "/tmp/creds.json",
			HTTPTimeout:       5 * time.Second,
			ConsentTimeout:    time.Minute,
			ListenAddr:        "0.0.0.0:9000",
			Environment:       ProductionEnv,
		}

		if got := GetEnv(); got != expected {
			t.Errorf("GetEnv() = %+v, want %+v", got, expected)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		os.Clearenv()

		got := GetEnv()
		if got.Environment != DevEnv {
			t.Errorf("Expected environment to default to dev, got %s", got.Environment)
		}
		if got.Scopes != DefaultScopes {
			t.Errorf("Scopes = %q, want %q", got.Scopes, DefaultScopes)
		}
		if got.SessionStore != SQLiteSessionStore {
			t.Errorf("SessionStore = %q, want %q", got.SessionStore, SQLiteSessionStore)
		}
		if got.RedirectPort != 8085 {
			t.Errorf("RedirectPort = %d, want 8085", got.RedirectPort)
		}
		if got.HTTPTimeout != 30*time.Second {
			t.Errorf("HTTPTimeout = %v, want 30s", got.HTTPTimeout)
		}
	})

	t.Run("invalid numbers fall back", func(t *testing.T) {
		os.Clearenv()
		os.Setenv(RedirectPort, "eighty")
		os.Setenv(ConsentTimeout, "forever")

		got := GetEnv()
		if got.RedirectPort != 8085 {
			t.Errorf("RedirectPort = %d, want 8085", got.RedirectPort)
		}
		if got.ConsentTimeout != 5*time.Minute {
			t.Errorf("ConsentTimeout = %v, want 5m", got.ConsentTimeout)
		}
	})
}

func TestIsProd(t *testing.T) {
	tests := []struct {
		name string
		env  Env
		want bool
	}{
		{"production env", Env{Environment: ProductionEnv}, true},
		{"dev env", Env{Environment: DevEnv}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsProd(tt.env); got != tt.want {
				t.Errorf("IsProd() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDev(t *testing.T) {
	tests := []struct {
		name string
		env  Env
		want bool
	}{
		{"production env", Env{Environment: ProductionEnv}, false},
		{"dev env", Env{Environment: DevEnv}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDev(tt.env); got != tt.want {
				t.Errorf("IsDev() = %v, want %v", got, tt.want)
			}
		})
	}
}

func splitEnv(env string) []string {
	var s []string
	for i := 0; i < len(env); i++ {
		if env[i] == '=' {
			s = append(s, env[:i])
			s = append(s, env[i+1:])
			return s
		}
	}
	// Return slice with empty strings if no '=' is found
	return []string{"", ""}
}

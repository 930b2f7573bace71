package envvars

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	APIURL             = "COFFEEHOUSE_API_URL"
	GoogleClientID     = "GOOGLE_CLIENT_ID"
	Scopes             = "COFFEEHOUSE_SCOPES"
	RedirectPort       = "COFFEEHOUSE_REDIRECT_PORT"
	SessionStore       = "COFFEEHOUSE_SESSION_STORE"
	SessionPath        = "COFFEEHOUSE_SESSION_PATH"
	DeviceID           = "COFFEEHOUSE_DEVICE_ID"
	GCPProjectID       = "GCP_PROJECT_ID"
	GoogleCredentials  = "GOOGLE_APPLICATION_CREDENTIALS"
	HTTPTimeout        = "COFFEEHOUSE_HTTP_TIMEOUT"
	ConsentTimeout     = "COFFEEHOUSE_CONSENT_TIMEOUT"
	ListenAddr         = "COFFEEHOUSE_LISTEN_ADDR"
	Environment        = "ENVIRONMENT"
	ProductionEnv      = "production"
	DevEnv             = "dev"
	SQLiteSessionStore = "sqlite"
	FirestoreStore     = "firestore"
	MemorySessionStore = "memory"
)

// DefaultScopes are the OpenID scopes requested during sign-in.
const DefaultScopes = "profile email openid"

type Env struct {
	APIURL            string
	GoogleClientID    string
	Scopes            string
	RedirectPort      int
	SessionStore      string
	SessionPath       string
	DeviceID          string
	GCPProjectID      string
	GoogleCredentials string
	HTTPTimeout       time.Duration
	ConsentTimeout    time.Duration
	ListenAddr        string
	Environment       string
}

func GetEnv() Env {
	environment, ok := os.LookupEnv(Environment)
	if !ok {
		environment = DevEnv
	}
	return Env{
		APIURL:            getEnv(APIURL, "http://localhost:8080"),
		GoogleClientID:    getEnv(GoogleClientID, ""),
		Scopes:            getEnv(Scopes, DefaultScopes),
		RedirectPort:      getInt(RedirectPort, 8085),
		SessionStore:      getEnv(SessionStore, SQLiteSessionStore),
		SessionPath:       getEnv(SessionPath, defaultSessionPath()),
		DeviceID:          getEnv(DeviceID, ""),
		GCPProjectID:      getEnv(GCPProjectID, ""),
		GoogleCredentials: getEnv(GoogleCredentials, ""),
		HTTPTimeout:       getDuration(HTTPTimeout, 30*time.Second),
		ConsentTimeout:    getDuration(ConsentTimeout, 5*time.Minute),
		ListenAddr:        getEnv(ListenAddr, "127.0.0.1:8090"),
		Environment:       environment,
	}
}

func IsProd(env Env) bool {
	return env.Environment == ProductionEnv
}

func IsDev(env Env) bool {
	return env.Environment == DevEnv
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v)
		return fallback
	}
	return i
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", v)
		return fallback
	}
	return d
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "coffeehouse", "session.db")
}

// Package google runs Google's OAuth 2.0 consent flow for a command line
// client: it opens the consent page in a browser and receives the
// authorization code on a loopback redirect.
package google

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	ErrConsentDenied = errors.New("consent was denied")
	ErrStateMismatch = errors.New("oauth state does not match")
	ErrNoCode        = errors.New("redirect carried no authorization code")
)

const shutdownTimeout = 2 * time.Second

// Provider implements the identity provider contract the auth service needs.
type Provider struct {
	clientID string
	port     int
	out      io.Writer
	// OpenBrowser is replaced in tests.
	OpenBrowser func(url string) error

	mu          sync.Mutex
	signedIn    bool
	redirectURI string
}

// NewProvider returns a provider whose redirect listens on 127.0.0.1:port.
// Port 0 picks a free port per sign-in. The consent URL is also written to
// out in case no browser can be opened.
func NewProvider(clientID string, port int, out io.Writer) *Provider {
	return &Provider{
		clientID:    clientID,
		port:        port,
		out:         out,
		OpenBrowser: openBrowser,
		redirectURI: fmt.Sprintf("http://127.0.0.1:%d", port),
	}
}

type callbackResult struct {
	code string
	err  error
}

// GrantOfflineAccess blocks until the user answers the consent page or ctx
// is done, and returns the authorization code.
func (p *Provider) GrantOfflineAccess(ctx context.Context, scopes string) (string, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", p.port))
	if err != nil {
		return "", fmt.Errorf("failed to listen for oauth redirect: %w", err)
	}
	redirectURI := "http://" + ln.Addr().String()
	p.mu.Lock()
	p.redirectURI = redirectURI
	p.mu.Unlock()

	state := uuid.NewString()
	results := make(chan callbackResult, 1)
	srv := &http.Server{Handler: callbackRouter(state, results)}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.With("error", err.Error()).Error("oauth redirect server failed")
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	authURL := p.authCodeURL(state, redirectURI, scopes)
	fmt.Fprintf(p.out, "Opening your browser to sign in. If it does not open, visit:\n\n  %s\n\n", authURL)
	if err := p.OpenBrowser(authURL); err != nil {
		slog.With("error", err.Error()).Warn("could not open browser")
	}

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("waiting for consent: %w", ctx.Err())
	case res := <-results:
		if res.err != nil {
			return "", res.err
		}
		p.mu.Lock()
		p.signedIn = true
		p.mu.Unlock()
		return res.code, nil
	}
}

func (p *Provider) authCodeURL(state, redirectURI, scopes string) string {
	cfg := &oauth2.Config{
		ClientID:    p.clientID,
		Endpoint:    google.Endpoint,
		RedirectURL: redirectURI,
		Scopes:      strings.Fields(scopes),
	}
	return cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

func callbackRouter(state string, results chan<- callbackResult) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/", func(c *gin.Context) {
		res := readCallback(c, state)
		if res.err != nil {
			c.String(http.StatusBadRequest, "Sign in failed: %s. You can close this window.", res.err.Error())
		} else {
			c.String(http.StatusOK, "Signed in to Coffeehouse. You can close this window.")
		}
		select {
		case results <- res:
		default:
		}
	})
	return r
}

func readCallback(c *gin.Context, state string) callbackResult {
	if reason := c.Query("error"); reason != "" {
		return callbackResult{err: fmt.Errorf("%w: %s", ErrConsentDenied, reason)}
	}
	if c.Query("state") != state {
		return callbackResult{err: ErrStateMismatch}
	}
	code := c.Query("code")
	if code == "" {
		return callbackResult{err: ErrNoCode}
	}
	return callbackResult{code: code}
}

func (p *Provider) RedirectURI() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.redirectURI
}

func (p *Provider) IsSignedIn() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.signedIn
}

// SignOut forgets the local consent. The offline grant itself is held by
// the backend, which owns revocation.
func (p *Provider) SignOut(context.Context) error {
	p.mu.Lock()
	p.signedIn = false
	p.mu.Unlock()
	return nil
}

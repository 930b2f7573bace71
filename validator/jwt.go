package validator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3filter"
	middleware "github.com/oapi-codegen/gin-middleware"
)

type key string

const accessToken key = "access_info"

// SchemeName is the security scheme declared in api/openapi.yaml.
const SchemeName = "bearerAuth"

// Access is the ID token a request is authorized with.
type Access struct {
	IDToken string
	// FromSession is true when the request carried no Authorization header
	// and the signed in session's token was used instead.
	FromSession bool
}

// FromContext works with a *gin.Context, which resolves string keys from its
// own key store.
func FromContext(ctx context.Context) (*Access, bool) {
	t, ok := ctx.Value(string(accessToken)).(*Access)
	return t, ok
}

var (
	ErrNoAuthHeader      = errors.New("Authorization header is missing")
	ErrInvalidAuthHeader = errors.New("Authorization header is malformed")
	ErrNoGinContext      = errors.New("request is not served by gin")
)

// TokenSource supplies the signed in session's token.
type TokenSource interface {
	GetUserToken() (string, bool)
}

// GetJWSFromRequest extracts a JWS string from an Authorization: Bearer <jws> header
func GetJWSFromRequest(req *http.Request) (string, error) {
	authHdr := req.Header.Get("Authorization")
	if authHdr == "" {
		return "", ErrNoAuthHeader
	}
	prefix := "Bearer "
	if !strings.HasPrefix(authHdr, prefix) {
		return "", ErrInvalidAuthHeader
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHdr, prefix))
	if token == "" {
		return "", ErrInvalidAuthHeader
	}
	return token, nil
}

// NewAuthenticator returns the request validator's authentication hook. A
// bearer token wins; without an Authorization header the session token is
// used. The token is passed through to the backend, which verifies it.
func NewAuthenticator(session TokenSource) openapi3filter.AuthenticationFunc {
	return func(ctx context.Context, input *openapi3filter.AuthenticationInput) error {
		if input.SecuritySchemeName != SchemeName {
			return fmt.Errorf("security scheme %s != '%s'", input.SecuritySchemeName, SchemeName)
		}

		access := &Access{}
		jws, err := GetJWSFromRequest(input.RequestValidationInput.Request)
		switch {
		case errors.Is(err, ErrNoAuthHeader):
			cached, ok := session.GetUserToken()
			if !ok {
				return fmt.Errorf("getting jws: %w", err)
			}
			access.IDToken = cached
			access.FromSession = true
		case err != nil:
			return fmt.Errorf("getting jws: %w", err)
		default:
			access.IDToken = jws
		}

		gCtx := middleware.GetGinContext(ctx)
		if gCtx == nil {
			return ErrNoGinContext
		}
		gCtx.Set(string(accessToken), access)
		return nil
	}
}

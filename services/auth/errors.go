package auth

import "errors"

var (
	ErrNoToken             = errors.New("no cached token")
	ErrInvalidToken        = errors.New("token payload could not be decoded")
	ErrNoAuthCode          = errors.New("identity provider returned no auth code")
	ErrProviderNotSignedIn = errors.New("identity provider does not report a signed in user")
)

// FailureToSignInError covers every way a sign-in can fail: consent denied,
// provider error, or a failed token exchange. Err holds the cause.
type FailureToSignInError struct {
	Err error
}

func (e *FailureToSignInError) Error() string {
	if e.Err == nil {
		return "sign in has failed"
	}
	return "sign in has failed: " + e.Err.Error()
}

func (e *FailureToSignInError) Unwrap() error {
	return e.Err
}

// Package backend holds the gateways to the book-club backend. They are the
// only code that talks to it over the network and they do no error
// translation: non-2xx responses come back as *Error.
package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "coffeehouse-client"

// NewClient returns the resty client shared by every gateway.
func NewClient(baseURL string, timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetDebug(false)
	c.SetBaseURL(strings.TrimRight(baseURL, "/"))
	c.SetTimeout(timeout)
	c.SetHeaders(map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
		"User-Agent":   userAgent,
	})
	return c
}

// Error is a non-2xx response from the backend.
type Error struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded with %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("backend responded with %d: %s", e.StatusCode, e.Message)
}

func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func (e *Error) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

func parseError(resp *resty.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode()}
	body := resp.Body()
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}

// decode checks the status of a finished request and unmarshals its JSON body
// into out.
func decode(resp *resty.Response, out any) error {
	if resp.IsError() {
		return parseError(resp)
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", resp.Request.URL, err)
	}
	return nil
}

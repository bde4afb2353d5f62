package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SessionExpiredError is returned when a protected call comes back 401. By
// the time the caller sees it the session has already been logged out; the
// caller's remaining duty is to navigate to RedirectTo.
type SessionExpiredError struct {
	Message    string
	RedirectTo string
}

func (e *SessionExpiredError) Error() string {
	return fmt.Sprintf("session expired: %s", e.Message)
}

// ForbiddenError is returned for 403 responses. The caller is authenticated
// but under-privileged, so the session is left intact.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Message)
}

// APIError covers the remaining non-2xx responses. Session state is never
// touched for these.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client is the API client for the commerce service. Every protected request
// carries the session's credential as a bearer token; a 401 response forces
// the session's Logout transition (reactive invalidation of the optimistic
// stored credential) before the error is surfaced.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// New builds a client over the given session.
func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		session: session,
	}
}

// Session exposes the backing session store.
func (c *Client) Session() *Session {
	return c.session
}

type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if state := c.session.Current(); state.IsAuthenticated {
		req.Header.Set("Authorization", "Bearer "+state.Credential)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}

	var failure errorBody
	_ = json.NewDecoder(resp.Body).Decode(&failure)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		// The server rejected the credential: the optimistic trust in the
		// stored token was wrong. Clear it and send the caller to login.
		_ = c.session.Logout()
		return &SessionExpiredError{Message: failure.Message, RedirectTo: LoginRoute}
	case http.StatusForbidden:
		return &ForbiddenError{Message: failure.Message}
	default:
		return &APIError{StatusCode: resp.StatusCode, Message: failure.Message}
	}
}

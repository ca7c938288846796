// Package client implements the consumer side of the auth API: a thin HTTP
// client plus the session storage used by the authctl command.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Profile is a user record as returned by GET /profile/:id.
type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileUpdate carries the optional fields of PUT /profile/:id. Nil fields
// are omitted from the request body and left untouched by the server.
type ProfileUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// Client talks to one auth API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Register creates an account and returns the session minted for it.
func (c *Client) Register(ctx context.Context, username, email, password string) (*Session, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var sess Session
	if err := c.do(ctx, http.MethodPost, "/register", "", body, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Login exchanges credentials for a fresh session.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	body := map[string]string{"username": username, "password": password}
	var sess Session
	if err := c.do(ctx, http.MethodPost, "/login", "", body, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// GetProfile fetches the profile of the session's own user.
func (c *Client) GetProfile(ctx context.Context, sess *Session) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/profile/"+sess.UserID, sess.Token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile applies the non-nil fields of upd to the session's own user.
func (c *Client) UpdateProfile(ctx context.Context, sess *Session, upd ProfileUpdate) error {
	return c.do(ctx, http.MethodPut, "/profile/"+sess.UserID, sess.Token, upd, nil)
}

// DeleteProfile permanently deletes the session's own user.
func (c *Client) DeleteProfile(ctx context.Context, sess *Session) error {
	return c.do(ctx, http.MethodDelete, "/profile/"+sess.UserID, sess.Token, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var envelope struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&envelope) == nil && envelope.Error != "" {
			apiErr.Message = envelope.Error
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

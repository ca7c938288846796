package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/platformlab/auth-api/internal/api/middleware"
	"github.com/platformlab/auth-api/internal/core/domain"
	"github.com/platformlab/auth-api/internal/core/ports"
)

func withToken(c echo.Context, token string) echo.Context {
	c.Set(middleware.TokenKey, token)
	return c
}

func TestProfileHandler_Get_Success(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubAuthService{
		getFn: func(ctx context.Context, token string) (*ports.Profile, error) {
			if token != "tok" {
				t.Fatalf("unexpected token %q", token)
			}
			return &ports.Profile{ID: "user-1", Username: "alice", Email: "a@example.com", CreatedAt: created, UpdatedAt: created}, nil
		},
	}
	h := NewProfileHandler(stub)

	c, rec := newContext(t, http.MethodGet, "/profile/user-1", "")
	if err := h.Get(withToken(c, "tok")); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "user-1" || resp["username"] != "alice" || resp["email"] != "a@example.com" {
		t.Fatalf("unexpected payload: %v", resp)
	}

	// No hash-like field may ever appear in a profile response.
	for _, key := range []string{"password", "password_hash", "passwordHash"} {
		if _, ok := resp[key]; ok {
			t.Fatalf("response leaks %q", key)
		}
	}
}

func TestProfileHandler_Get_NoToken(t *testing.T) {
	stub := &stubAuthService{
		getFn: func(ctx context.Context, token string) (*ports.Profile, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewProfileHandler(stub)

	c, _ := newContext(t, http.MethodGet, "/profile/user-1", "")
	if err := h.Get(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestProfileHandler_Get_UserGone(t *testing.T) {
	stub := &stubAuthService{
		getFn: func(ctx context.Context, token string) (*ports.Profile, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewProfileHandler(stub)

	c, _ := newContext(t, http.MethodGet, "/profile/user-1", "")
	if err := h.Get(withToken(c, "tok")); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestProfileHandler_Update_PartialBody(t *testing.T) {
	stub := &stubAuthService{
		updateFn: func(ctx context.Context, token string, in ports.UpdateProfileInput) error {
			if token != "tok" {
				t.Fatalf("unexpected token %q", token)
			}
			if in.Email == nil || *in.Email != "new@example.com" {
				t.Fatalf("email not forwarded: %+v", in)
			}
			if in.Username != nil || in.Password != nil {
				t.Fatalf("absent fields must stay nil: %+v", in)
			}
			return nil
		},
	}
	h := NewProfileHandler(stub)

	c, rec := newContext(t, http.MethodPut, "/profile/user-1", `{"email":"new@example.com"}`)
	if err := h.Update(withToken(c, "tok")); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Profile updated successfully" {
		t.Fatalf("unexpected ack: %v", resp)
	}
}

func TestProfileHandler_Update_IgnoresPathID(t *testing.T) {
	// The identity updated is the token's subject; a mismatched path id must
	// have no effect on what gets passed to the service.
	called := false
	stub := &stubAuthService{
		updateFn: func(ctx context.Context, token string, in ports.UpdateProfileInput) error {
			called = true
			if token != "tok" {
				t.Fatalf("unexpected token %q", token)
			}
			return nil
		},
	}
	h := NewProfileHandler(stub)

	c, _ := newContext(t, http.MethodPut, "/profile/somebody-else", `{"email":"new@example.com"}`)
	c.SetParamNames("id")
	c.SetParamValues("somebody-else")

	if err := h.Update(withToken(c, "tok")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("service not called")
	}
}

func TestProfileHandler_Update_BadEmail(t *testing.T) {
	stub := &stubAuthService{
		updateFn: func(ctx context.Context, token string, in ports.UpdateProfileInput) error {
			t.Fatalf("service should not be called")
			return nil
		},
	}
	h := NewProfileHandler(stub)

	c, _ := newContext(t, http.MethodPut, "/profile/user-1", `{"email":"nope"}`)
	if err := h.Update(withToken(c, "tok")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestProfileHandler_Delete_Success(t *testing.T) {
	stub := &stubAuthService{
		deleteFn: func(ctx context.Context, token string) error {
			if token != "tok" {
				t.Fatalf("unexpected token %q", token)
			}
			return nil
		},
	}
	h := NewProfileHandler(stub)

	c, rec := newContext(t, http.MethodDelete, "/profile/user-1", "")
	if err := h.Delete(withToken(c, "tok")); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "User deleted successfully" {
		t.Fatalf("unexpected ack: %v", resp)
	}
}

func TestProfileHandler_Delete_NoToken(t *testing.T) {
	stub := &stubAuthService{
		deleteFn: func(ctx context.Context, token string) error {
			t.Fatalf("service should not be called")
			return nil
		},
	}
	h := NewProfileHandler(stub)

	c, _ := newContext(t, http.MethodDelete, "/profile/user-1", "")
	if err := h.Delete(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

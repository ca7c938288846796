package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/platformlab/auth-api/internal/core/domain"
)

func handleError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error envelope: %v", err)
	}
	return rec.Code, resp.Error
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"conflict", domain.ErrConflict, http.StatusBadRequest},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		code, msg := handleError(t, tc.err)
		if code != tc.wantCode {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.wantCode, code)
		}
		if msg == "" {
			t.Fatalf("%s: empty error message", tc.name)
		}
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	code, msg := handleError(t, fmt.Errorf("%w: username is required", domain.ErrValidation))
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if msg != "missing or malformed input: username is required" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	code, msg := handleError(t, echo.NewHTTPError(http.StatusTeapot, "short and stout"))
	if code != http.StatusTeapot || msg != "short and stout" {
		t.Fatalf("unexpected mapping: %d %q", code, msg)
	}
}

func TestHTTPErrorHandler_UnknownError(t *testing.T) {
	code, msg := handleError(t, errors.New("mongo exploded: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	// Internal causes must never leak to the client.
	if msg != "internal server error" {
		t.Fatalf("internal detail leaked: %q", msg)
	}
}

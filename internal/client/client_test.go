package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_RegisterAndLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}

		switch r.URL.Path {
		case "/register":
			if body["username"] != "alice" || body["email"] != "a@x.com" || body["password"] != "pw" {
				t.Fatalf("unexpected register body: %v", body)
			}
			w.WriteHeader(http.StatusCreated)
		case "/login":
			if body["username"] != "alice" || body["password"] != "pw" {
				t.Fatalf("unexpected login body: %v", body)
			}
			if _, ok := body["email"]; ok {
				t.Fatalf("login must not send email")
			}
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}

		_ = json.NewEncoder(w).Encode(Session{Token: "tok", UserID: "user-1", Username: "alice"})
	}))
	defer srv.Close()

	c := New(srv.URL)

	sess, err := c.Register(context.Background(), "alice", "a@x.com", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if sess.Token != "tok" || sess.UserID != "user-1" || sess.Username != "alice" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	if _, err := c.Login(context.Background(), "alice", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestClient_ProfileOperations(t *testing.T) {
	sess := &Session{Token: "tok", UserID: "user-1", Username: "alice"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/profile/user-1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("unexpected auth header %q", got)
		}

		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(Profile{ID: "user-1", Username: "alice", Email: "a@x.com"})
		case http.MethodPut:
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["email"] != "new@x.com" {
				t.Fatalf("unexpected update body: %v", body)
			}
			if _, ok := body["username"]; ok {
				t.Fatalf("nil fields must be omitted from the body")
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		case http.MethodDelete:
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)

	profile, err := c.GetProfile(context.Background(), sess)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.Username != "alice" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	email := "new@x.com"
	if err := c.UpdateProfile(context.Background(), sess, ProfileUpdate{Email: &email}); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if err := c.DeleteProfile(context.Background(), sess); err != nil {
		t.Fatalf("delete profile: %v", err)
	}
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Login(context.Background(), "alice", "bad")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "invalid credentials" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestClient_APIError_NoBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Login(context.Background(), "alice", "pw")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway || apiErr.Message == "" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

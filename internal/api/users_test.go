package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hacksnooze/snooze/internal/logger"
)

func recordingClient(t *testing.T, status int, respBody string) (*Client, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.body = string(body)
		captured.auth = r.Header.Get("Authorization")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, logger.Nop()), captured
}

type capturedRequest struct {
	method string
	path   string
	body   string
	auth   string
}

func TestUserCreate(t *testing.T) {
	resp := `{"token": "tok-new", "user": {"username": "kay", "name": "Kay", "favorites": [], "stories": []}}`
	c, captured := recordingClient(t, http.StatusCreated, resp)

	session, err := c.Users().Create(context.Background(), Signup{
		Username: "kay", Password: "pw", Name: "Kay",
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if captured.method != http.MethodPost || captured.path != "/signup" {
		t.Errorf("request = %s %s, want POST /signup", captured.method, captured.path)
	}
	if session.Token != "tok-new" || session.Username != "kay" || session.Name != "Kay" {
		t.Errorf("session = %+v, want populated from response", session)
	}
	if len(session.Favorites) != 0 || len(session.OwnStories) != 0 {
		t.Errorf("fresh account should have empty collections: %+v", session)
	}
}

func TestUserCreatePhoneOmittedWhenEmpty(t *testing.T) {
	resp := `{"token": "t", "user": {"username": "kay", "name": "Kay"}}`

	tests := []struct {
		name      string
		phone     string
		wantPhone bool
	}{
		{name: "no phone", phone: "", wantPhone: false},
		{name: "with phone", phone: "5551234567", wantPhone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, captured := recordingClient(t, http.StatusCreated, resp)
			_, err := c.Users().Create(context.Background(), Signup{
				Username: "kay", Password: "pw", Name: "Kay", Phone: tt.phone,
			})
			if err != nil {
				t.Fatalf("Create() failed: %v", err)
			}

			hasPhone := strings.Contains(captured.body, "phone")
			if hasPhone != tt.wantPhone {
				t.Errorf("body phone presence = %v, want %v (body: %s)", hasPhone, tt.wantPhone, captured.body)
			}
		})
	}
}

func TestUserCreateValidation(t *testing.T) {
	c := NewClient("http://unused", time.Second, logger.Nop())

	tests := []struct {
		name   string
		signup Signup
		field  string
	}{
		{name: "missing username", signup: Signup{Password: "pw", Name: "Kay"}, field: "username"},
		{name: "missing password", signup: Signup{Username: "kay", Name: "Kay"}, field: "password"},
		{name: "missing name", signup: Signup{Username: "kay", Password: "pw"}, field: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Users().Create(context.Background(), tt.signup)

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if vErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", vErr.Field, tt.field)
			}
		})
	}
}

func TestUserLogin(t *testing.T) {
	c, captured := recordingClient(t, http.StatusOK, `{"token": "tok-9"}`)

	token, err := c.Users().Login(context.Background(), "kay", "pw")
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if token != "tok-9" {
		t.Errorf("token = %q, want tok-9", token)
	}

	var envelope struct {
		User loginBody `json:"user"`
	}
	if err := json.Unmarshal([]byte(captured.body), &envelope); err != nil {
		t.Fatalf("request body is not the expected envelope: %v", err)
	}
	if envelope.User.Username != "kay" || envelope.User.Password != "pw" {
		t.Errorf("login body = %+v", envelope.User)
	}
}

func TestUpdateProfileOmitsBlankPassword(t *testing.T) {
	tests := []struct {
		name         string
		update       ProfileUpdate
		wantPassword bool
	}{
		{name: "blank password omitted", update: ProfileUpdate{Name: "X", Password: ""}, wantPassword: false},
		{name: "password included when set", update: ProfileUpdate{Name: "X", Password: "new-pw"}, wantPassword: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, captured := recordingClient(t, http.StatusOK, `{}`)
			if err := c.Users().UpdateProfile(context.Background(), "tok", "kay", tt.update); err != nil {
				t.Fatalf("UpdateProfile() failed: %v", err)
			}

			var body map[string]map[string]interface{}
			if err := json.Unmarshal([]byte(captured.body), &body); err != nil {
				t.Fatalf("bad request body: %v", err)
			}
			_, hasPassword := body["user"]["password"]
			if hasPassword != tt.wantPassword {
				t.Errorf("password field present = %v, want %v (body: %s)", hasPassword, tt.wantPassword, captured.body)
			}
			if body["user"]["name"] != "X" {
				t.Errorf("name = %v, want X", body["user"]["name"])
			}
		})
	}
}

func TestFetchProfile(t *testing.T) {
	resp := `{"user": {"username": "kay", "name": "Kay",
		"favorites": [{"storyId": 1, "title": "one"}],
		"stories": [{"storyId": "2", "title": "two", "username": "kay"}]}}`
	c, captured := recordingClient(t, http.StatusOK, resp)

	profile, err := c.Users().FetchProfile(context.Background(), "tok", "kay")
	if err != nil {
		t.Fatalf("FetchProfile() failed: %v", err)
	}

	if captured.method != http.MethodGet || captured.path != "/users/kay" {
		t.Errorf("request = %s %s, want GET /users/kay", captured.method, captured.path)
	}
	if captured.auth != "Bearer tok" {
		t.Errorf("auth = %q, want Bearer tok", captured.auth)
	}
	if len(profile.Favorites) != 1 || profile.Favorites[0].ID != "1" {
		t.Errorf("Favorites = %+v", profile.Favorites)
	}
	if len(profile.OwnStories) != 1 || profile.OwnStories[0].ID != "2" {
		t.Errorf("OwnStories = %+v", profile.OwnStories)
	}
}

func TestFavoriteEndpoints(t *testing.T) {
	tests := []struct {
		name       string
		call       func(u *UserService) error
		wantMethod string
	}{
		{
			name: "add favorite",
			call: func(u *UserService) error {
				return u.AddFavorite(context.Background(), "tok", "kay", "7")
			},
			wantMethod: http.MethodPost,
		},
		{
			name: "remove favorite",
			call: func(u *UserService) error {
				return u.RemoveFavorite(context.Background(), "tok", "kay", "7")
			},
			wantMethod: http.MethodDelete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, captured := recordingClient(t, http.StatusOK, `{}`)
			if err := tt.call(c.Users()); err != nil {
				t.Fatalf("call failed: %v", err)
			}
			if captured.method != tt.wantMethod {
				t.Errorf("method = %s, want %s", captured.method, tt.wantMethod)
			}
			if captured.path != "/users/kay/favorites/7" {
				t.Errorf("path = %s, want /users/kay/favorites/7", captured.path)
			}
		})
	}
}

func TestResetPassword(t *testing.T) {
	c, captured := recordingClient(t, http.StatusOK, `{"message": "password updated"}`)

	msg, err := c.Users().ResetPassword(context.Background(), "123456", "kay", "new-pw")
	if err != nil {
		t.Fatalf("ResetPassword() failed: %v", err)
	}
	if msg != "password updated" {
		t.Errorf("message = %q", msg)
	}
	if captured.method != http.MethodPatch || captured.path != "/users/kay/recovery" {
		t.Errorf("request = %s %s, want PATCH /users/kay/recovery", captured.method, captured.path)
	}
	if captured.auth != "" {
		t.Error("recovery reset must be unauthenticated")
	}
}

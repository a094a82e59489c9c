package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/hacksnooze/snooze/internal/logger"
)

func TestStoryList(t *testing.T) {
	resp := `{"stories": [
		{"storyId": 3, "author": "A", "title": "newest", "url": "http://c.d", "username": "a"},
		{"storyId": "2", "author": "B", "title": "older", "url": "http://e.f", "username": "b"}
	]}`
	c, captured := recordingClient(t, http.StatusOK, resp)

	stories, err := c.Stories().List(context.Background())
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	if captured.method != http.MethodGet || captured.path != "/stories" {
		t.Errorf("request = %s %s, want GET /stories", captured.method, captured.path)
	}
	if captured.auth != "" {
		t.Error("List must be unauthenticated")
	}
	if len(stories) != 2 {
		t.Fatalf("got %d stories, want 2", len(stories))
	}
	// Server order preserved, ids normalized regardless of wire type.
	if stories[0].ID != "3" || stories[1].ID != "2" {
		t.Errorf("ids = %v, %v; want 3, 2", stories[0].ID, stories[1].ID)
	}
}

func TestStoryCreate(t *testing.T) {
	c, captured := recordingClient(t, http.StatusCreated, `{}`)

	err := c.Stories().Create(context.Background(), "tok", NewStory{
		Author: "Kay", Title: "t", URL: "http://a.b.com",
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if captured.method != http.MethodPost || captured.path != "/stories" {
		t.Errorf("request = %s %s, want POST /stories", captured.method, captured.path)
	}
	if captured.auth != "Bearer tok" {
		t.Errorf("auth = %q", captured.auth)
	}

	var envelope struct {
		Story NewStory `json:"story"`
	}
	if err := json.Unmarshal([]byte(captured.body), &envelope); err != nil {
		t.Fatalf("bad request body: %v", err)
	}
	if envelope.Story.Title != "t" || envelope.Story.URL != "http://a.b.com" {
		t.Errorf("story body = %+v", envelope.Story)
	}
}

func TestStoryCreateValidation(t *testing.T) {
	c := NewClient("http://unused", time.Second, logger.Nop())

	tests := []struct {
		name  string
		story NewStory
		field string
	}{
		{name: "missing title", story: NewStory{URL: "http://a.b"}, field: "title"},
		{name: "missing url", story: NewStory{Title: "t"}, field: "url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Stories().Create(context.Background(), "tok", tt.story)

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

func TestStoryDelete(t *testing.T) {
	c, captured := recordingClient(t, http.StatusOK, `{}`)

	if err := c.Stories().Delete(context.Background(), "tok", "42"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if captured.method != http.MethodDelete || captured.path != "/stories/42" {
		t.Errorf("request = %s %s, want DELETE /stories/42", captured.method, captured.path)
	}
}

func TestStoryDeleteAlreadyGone(t *testing.T) {
	c, _ := recordingClient(t, http.StatusNotFound, `{"message": "no such story"}`)

	err := c.Stories().Delete(context.Background(), "tok", "42")

	// Callers decide how to treat this; the service just reports it.
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", apiErr.Status)
	}
}

func TestStoryUpdate(t *testing.T) {
	c, captured := recordingClient(t, http.StatusOK, `{}`)

	err := c.Stories().Update(context.Background(), "tok", "42", NewStory{
		Author: "Kay", Title: "edited", URL: "http://a.b.com",
	})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if captured.method != http.MethodPatch || captured.path != "/stories/42" {
		t.Errorf("request = %s %s, want PATCH /stories/42", captured.method, captured.path)
	}
}

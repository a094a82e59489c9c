package api

import (
	"context"
	"net/http"

	"github.com/hacksnooze/snooze/internal/domain"
)

// NewStory is the payload for creating or editing a story.
type NewStory struct {
	Author string `json:"author"`
	Title  string `json:"title"`
	URL    string `json:"url"`
}

// StoryService issues story requests. It is stateless; the bearer
// token is supplied per call.
type StoryService struct {
	c *Client
}

// List fetches the current front page: at most the server's page size
// (25 stories), newest first. Unauthenticated.
func (s *StoryService) List(ctx context.Context) ([]domain.Story, error) {
	var resp storiesResponse
	if err := s.c.do(ctx, http.MethodGet, "/stories", "", nil, &resp); err != nil {
		return nil, err
	}
	return storiesToDomain(resp.Stories), nil
}

// Create submits a new story. The created story is not returned; the
// caller observes it through the next profile resync, keeping the
// server as the single source of truth.
func (s *StoryService) Create(ctx context.Context, token string, story NewStory) error {
	if story.Title == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	if story.URL == "" {
		return &ValidationError{Field: "url", Reason: "required"}
	}
	return s.c.do(ctx, http.MethodPost, "/stories", token, storyEnvelope{Story: story}, nil)
}

// Delete removes a story by id. Deleting an id the server no longer
// knows surfaces as *APIError; callers treat that as already gone.
func (s *StoryService) Delete(ctx context.Context, token string, id domain.StoryID) error {
	return s.c.do(ctx, http.MethodDelete, "/stories/"+string(id), token, nil, nil)
}

// Update patches a story's content.
func (s *StoryService) Update(ctx context.Context, token string, id domain.StoryID, story NewStory) error {
	if story.Title == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	if story.URL == "" {
		return &ValidationError{Field: "url", Reason: "required"}
	}
	return s.c.do(ctx, http.MethodPatch, "/stories/"+string(id), token, storyEnvelope{Story: story}, nil)
}

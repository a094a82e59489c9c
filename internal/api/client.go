// Package api wraps the hosted Hack-or-Snooze REST endpoints in two
// stateless service types. All responses are mapped onto domain values
// at this boundary, including story id normalization.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hacksnooze/snooze/internal/logger"
	"github.com/hacksnooze/snooze/internal/utils"
)

// Client issues HTTP requests against the remote API. It holds no
// session state; bearer tokens are passed per call.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// NewClient builds a Client for the given base URL. timeout is the
// single per-request deadline; there is no retry layer.
func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Stories returns the story operations bound to this client.
func (c *Client) Stories() *StoryService { return &StoryService{c: c} }

// Users returns the account operations bound to this client.
func (c *Client) Users() *UserService { return &UserService{c: c} }

// do executes one JSON round trip. token is added as a bearer header
// when non-empty; body and out may each be nil. Non-2xx responses are
// returned as *APIError, transport failures as *NetworkError.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	defer utils.Close(resp.Body)

	c.log.Debug("api request",
		logger.String("method", method),
		logger.String("path", path),
		logger.Int("status", resp.StatusCode),
		logger.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// readErrorMessage pulls a human-readable message out of an error
// response. The API uses both {"error": {...}} and {"message": ...}
// shapes across endpoints.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var envelope struct {
		Error struct {
			Title   string `json:"title"`
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ""
	}
	if envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	if envelope.Error.Title != "" {
		return envelope.Error.Title
	}
	return envelope.Message
}

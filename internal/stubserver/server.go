// Package stubserver is a local stand-in for the hosted Hack-or-Snooze
// API: the full endpoint table over in-memory state. It exists for
// offline development and for integration tests that run the real
// client against a real HTTP surface.
package stubserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hacksnooze/snooze/internal/logger"
)

// Router builds the chi router over the given state. Exposed so tests
// can mount it on an httptest server.
func Router(state *State, log logger.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer) // never crash the process on panic
	r.Use(middleware.Timeout(5 * time.Second))
	r.Use(logRequests(log))

	r.Get("/healthz", handleHealthz)

	r.Post("/signup", state.handleSignup)
	r.Post("/login", state.handleLogin)

	r.Get("/stories", state.handleListStories)
	r.Post("/stories", state.handleCreateStory)
	r.Delete("/stories/{storyID}", state.handleDeleteStory)
	r.Patch("/stories/{storyID}", state.handleUpdateStory)

	r.Get("/users/{username}", state.handleGetProfile)
	r.Patch("/users/{username}", state.handleUpdateProfile)
	r.Delete("/users/{username}", state.handleDeleteAccount)

	r.Post("/users/{username}/favorites/{storyID}", state.handleAddFavorite)
	r.Delete("/users/{username}/favorites/{storyID}", state.handleRemoveFavorite)

	r.Post("/users/{username}/recovery", state.handleSendRecoveryCode)
	r.Patch("/users/{username}/recovery", state.handleResetPassword)

	return r
}

// Server wraps the HTTP server for standalone runs (cmd/snoozestub).
type Server struct {
	http *http.Server
	log  logger.Logger
}

// New builds a Server listening on addr.
func New(addr string, state *State, log logger.Logger) *Server {
	s := &http.Server{
		Addr:              addr,
		Handler:           Router(state, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
	return &Server{http: s, log: log}
}

// Start runs the server, blocking until error or shutdown.
func (s *Server) Start() error {
	s.log.Infof("stub API listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("stub API shutting down...")
	return s.http.Shutdown(ctx)
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

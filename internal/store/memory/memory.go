// Package memory implements an in-memory credential store for tests
// and ephemeral runs where nothing should outlive the process.
package memory

import (
	"context"
	"sync"

	"github.com/hacksnooze/snooze/internal/session"
)

// Store implements session.CredStore in process memory.
type Store struct {
	mu               sync.Mutex
	token            string
	username         string
	recoveryUsername string
}

var _ session.CredStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{}
}

func (s *Store) SaveCreds(_ context.Context, token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.username = username
	return nil
}

func (s *Store) LoadCreds(_ context.Context) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.username, nil
}

func (s *Store) ClearCreds(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.username = ""
	return nil
}

func (s *Store) SaveRecoveryUsername(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recoveryUsername = username
	return nil
}

func (s *Store) LoadRecoveryUsername(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recoveryUsername, nil
}

func (s *Store) ClearRecoveryUsername(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recoveryUsername = ""
	return nil
}

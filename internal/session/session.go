// Package session owns the client's cached identity and keeps it
// consistent with the remote source of truth. The only consistency
// mechanism is wholesale replacement: after every mutating operation
// the profile is re-fetched and applied before anything renders.
package session

import (
	"context"
	"fmt"

	"github.com/hacksnooze/snooze/internal/api"
	"github.com/hacksnooze/snooze/internal/domain"
	"github.com/hacksnooze/snooze/internal/logger"
)

// CredStore is the durable mirror of the credential pair (plus the
// transient recovery username). It is the local-storage analog: read
// once at startup for silent re-authentication, cleared on logout.
type CredStore interface {
	SaveCreds(ctx context.Context, token, username string) error
	// LoadCreds returns empty strings when nothing is stored.
	LoadCreds(ctx context.Context) (token, username string, err error)
	ClearCreds(ctx context.Context) error

	SaveRecoveryUsername(ctx context.Context, username string) error
	LoadRecoveryUsername(ctx context.Context) (string, error)
	ClearRecoveryUsername(ctx context.Context) error
}

// Manager holds the in-memory session and its durable mirror.
type Manager struct {
	users *api.UserService
	creds CredStore
	log   logger.Logger

	current domain.Session
}

// NewManager builds a Manager around the given user service and
// credential store. The session starts logged out.
func NewManager(users *api.UserService, creds CredStore, log logger.Logger) *Manager {
	return &Manager{users: users, creds: creds, log: log}
}

// Current returns the session. Callers must not retain the pointer
// across commands; every mutating command replaces the profile.
func (m *Manager) Current() *domain.Session {
	return &m.current
}

// Restore attempts silent re-authentication from the durable store.
// It reports whether a session was restored. A stored token that the
// server rejects is discarded rather than surfaced as a failure.
func (m *Manager) Restore(ctx context.Context) (bool, error) {
	token, username, err := m.creds.LoadCreds(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read stored credentials: %w", err)
	}
	if token == "" {
		return false, nil
	}

	m.current.Token = token
	m.current.Username = username

	if err := m.Resync(ctx); err != nil {
		m.log.Warn("stored credentials rejected, discarding",
			logger.String("username", username),
			logger.Error(err))
		m.current.Reset()
		_ = m.creds.ClearCreds(ctx)
		return false, nil
	}
	return true, nil
}

// Begin installs a fresh credential pair (from login or signup) and
// mirrors it durably.
func (m *Manager) Begin(ctx context.Context, token, username string) error {
	m.current.Reset()
	m.current.Token = token
	m.current.Username = username

	if err := m.creds.SaveCreds(ctx, token, username); err != nil {
		return fmt.Errorf("failed to persist credentials: %w", err)
	}
	return nil
}

// Resync replaces the profile from the server. This must complete
// before any render reads the session.
func (m *Manager) Resync(ctx context.Context) error {
	profile, err := m.users.FetchProfile(ctx, m.current.Token, m.current.Username)
	if err != nil {
		return err
	}
	m.current.ApplyProfile(profile)
	return nil
}

// ResyncAfterMutation is Resync with one retry. A mutation that
// already succeeded server-side must not be retried, but the resync
// that follows it is read-only and safe to attempt again, which keeps
// the inconsistency window between a successful mutation and a failed
// refresh as small as possible.
func (m *Manager) ResyncAfterMutation(ctx context.Context) error {
	err := m.Resync(ctx)
	if err == nil {
		return nil
	}
	m.log.Warn("profile resync failed after mutation, retrying once", logger.Error(err))
	return m.Resync(ctx)
}

// End clears the in-memory session and the durable mirror. No server
// call is made.
func (m *Manager) End(ctx context.Context) error {
	m.current.Reset()
	if err := m.creds.ClearCreds(ctx); err != nil {
		return fmt.Errorf("failed to clear stored credentials: %w", err)
	}
	return nil
}

// StashRecoveryUsername persists the username between the two steps of
// the password recovery flow.
func (m *Manager) StashRecoveryUsername(ctx context.Context, username string) error {
	return m.creds.SaveRecoveryUsername(ctx, username)
}

// RecoveryUsername returns the stashed recovery username, if any.
func (m *Manager) RecoveryUsername(ctx context.Context) (string, error) {
	return m.creds.LoadRecoveryUsername(ctx)
}

// ClearRecoveryUsername drops the stash once the flow completes.
func (m *Manager) ClearRecoveryUsername(ctx context.Context) error {
	return m.creds.ClearRecoveryUsername(ctx)
}

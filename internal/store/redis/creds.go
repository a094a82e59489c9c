// Package redis persists the client's credential pair in Redis. It is
// the durable stand-in for browser local storage: a handful of flat
// keys with no TTL, cleared on logout.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hacksnooze/snooze/internal/session"
)

// Store implements session.CredStore on a Redis client.
type Store struct {
	client *redis.Client
}

var _ session.CredStore = (*Store)(nil)

// NewStore creates a credential store over the given client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// SaveCreds mirrors the token and username durably.
func (s *Store) SaveCreds(ctx context.Context, token, username string) error {
	if err := s.client.Set(ctx, KeyToken, token, 0).Err(); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	if err := s.client.Set(ctx, KeyUsername, username, 0).Err(); err != nil {
		return fmt.Errorf("failed to save username: %w", err)
	}
	return nil
}

// LoadCreds returns the stored pair, or empty strings when absent.
func (s *Store) LoadCreds(ctx context.Context) (string, string, error) {
	token, err := s.getOrEmpty(ctx, KeyToken)
	if err != nil {
		return "", "", fmt.Errorf("failed to load token: %w", err)
	}
	username, err := s.getOrEmpty(ctx, KeyUsername)
	if err != nil {
		return "", "", fmt.Errorf("failed to load username: %w", err)
	}
	return token, username, nil
}

// ClearCreds removes the stored pair.
func (s *Store) ClearCreds(ctx context.Context) error {
	if err := s.client.Del(ctx, KeyToken, KeyUsername).Err(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

// SaveRecoveryUsername stashes the recovery-flow username.
func (s *Store) SaveRecoveryUsername(ctx context.Context, username string) error {
	if err := s.client.Set(ctx, KeyRecoveryUsername, username, 0).Err(); err != nil {
		return fmt.Errorf("failed to save recovery username: %w", err)
	}
	return nil
}

// LoadRecoveryUsername returns the stash, or empty when absent.
func (s *Store) LoadRecoveryUsername(ctx context.Context) (string, error) {
	v, err := s.getOrEmpty(ctx, KeyRecoveryUsername)
	if err != nil {
		return "", fmt.Errorf("failed to load recovery username: %w", err)
	}
	return v, nil
}

// ClearRecoveryUsername drops the stash.
func (s *Store) ClearRecoveryUsername(ctx context.Context) error {
	if err := s.client.Del(ctx, KeyRecoveryUsername).Err(); err != nil {
		return fmt.Errorf("failed to clear recovery username: %w", err)
	}
	return nil
}

func (s *Store) getOrEmpty(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return v, nil
}

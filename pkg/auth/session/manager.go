package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"github.com/rossellmestanza/menudigital/pkg/config"
	redisclient "github.com/rossellmestanza/menudigital/pkg/redis"
)

// ErrSessionNotFound is returned when the session id has no active entry.
var ErrSessionNotFound = errors.New("session not found")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(sessionID string) string
}

// Manager tracks active admin sessions in Redis so tokens can be revoked
// before they expire.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// Checker exposes the read-only surface needed by middleware.
type Checker interface {
	HasSession(ctx context.Context, sessionID string) (bool, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.SessionTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}

	return &Manager{
		store: client,
		keyer: client,
		ttl:   ttl,
	}, nil
}

// Create registers a new session for the admin and returns its id,
// used as the JWT jti.
func (m *Manager) Create(ctx context.Context, adminID string) (string, error) {
	if strings.TrimSpace(adminID) == "" {
		return "", fmt.Errorf("admin id is required")
	}
	sessionID := NewSessionID()
	if err := m.store.Set(ctx, m.keyer.SessionKey(sessionID), adminID, m.ttl); err != nil {
		return "", err
	}
	return sessionID, nil
}

// Revoke deletes the session so the matching token stops being accepted.
func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	return m.store.Del(ctx, m.keyer.SessionKey(sessionID))
}

// HasSession reports whether the session id is still active.
func (m *Manager) HasSession(ctx context.Context, sessionID string) (bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return false, fmt.Errorf("session id is required")
	}
	if _, err := m.store.Get(ctx, m.keyer.SessionKey(sessionID)); err != nil {
		if errors.Is(err, redislib.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// AdminID returns the admin bound to the session.
func (m *Manager) AdminID(ctx context.Context, sessionID string) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", fmt.Errorf("session id is required")
	}
	adminID, err := m.store.Get(ctx, m.keyer.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	return adminID, nil
}

// NewSessionID produces a stable identifier used as the JWT jti/Redis key.
func NewSessionID() string {
	return uuid.NewString()
}

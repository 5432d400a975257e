package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SttarkMax/sistema/pkg/config"
	"github.com/SttarkMax/sistema/pkg/models"
	redisclient "github.com/SttarkMax/sistema/pkg/redis"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(sessionID string) string
}

// Record is what the console remembers about a browser session between requests.
type Record struct {
	SessionID      string              `json:"sessionId"`
	User           models.LoggedInUser `json:"user"`
	Company        *models.CompanyInfo `json:"company,omitempty"`
	BackendCookies map[string]string   `json:"backendCookies,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	VerifiedAt     time.Time           `json:"verifiedAt"`
}

// NeedsRevalidation reports whether the backend should confirm the session again.
func (r Record) NeedsRevalidation(now time.Time, interval time.Duration) bool {
	if interval <= 0 {
		return true
	}
	return now.Sub(r.VerifiedAt) >= interval
}

// Manager stores session records in Redis for the lifetime of the session cookie.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// Store exposes the surface used by middleware and controllers.
type Store interface {
	Create(ctx context.Context, rec Record) (Record, error)
	Load(ctx context.Context, sessionID string) (*Record, error)
	Save(ctx context.Context, rec Record) error
	Revoke(ctx context.Context, sessionID string) error
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return newManager(client, client, cfg.Expiration())
}

func newManager(store sessionStore, keyer sessionKeyer, ttl time.Duration) (*Manager, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{store: store, keyer: keyer, ttl: ttl}, nil
}

// TTL is how long a record lives after its last save.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create assigns a fresh session id when rec has none and stores it.
func (m *Manager) Create(ctx context.Context, rec Record) (Record, error) {
	if strings.TrimSpace(rec.SessionID) == "" {
		rec.SessionID = NewSessionID()
	}
	if err := m.Save(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Load returns the stored record or ErrSessionNotFound.
func (m *Manager) Load(ctx context.Context, sessionID string) (*Record, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrSessionNotFound
	}
	raw, err := m.store.Get(ctx, m.keyer.SessionKey(sessionID))
	if err != nil {
		return nil, wrapNotFound(err)
	}
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("decoding session record: %w", err)
	}
	return &rec, nil
}

// Save overwrites the record and restarts its TTL. Concurrent saves are last-write-wins.
func (m *Manager) Save(ctx context.Context, rec Record) error {
	if strings.TrimSpace(rec.SessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding session record: %w", err)
	}
	return m.store.Set(ctx, m.keyer.SessionKey(rec.SessionID), string(payload), m.ttl)
}

// Revoke deletes the record tied to the session id.
func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	return m.store.Del(ctx, m.keyer.SessionKey(sessionID))
}

// NewSessionID produces the identifier used as the JWT jti and Redis key.
func NewSessionID() string {
	return uuid.NewString()
}

func wrapNotFound(err error) error {
	if errors.Is(err, redislib.Nil) {
		return ErrSessionNotFound
	}
	return err
}

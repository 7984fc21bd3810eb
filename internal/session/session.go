// Package session implements the client-side session gate: a persisted
// bearer token plus its start timestamp, discarded after a fixed ceiling,
// and the role-based capability matrix.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/grooming-is/schedule-web/pkg/logging"
)

var (
	// ErrNotFound means no session is stored under the given id.
	ErrNotFound = errors.New("session: not found")

	// ErrExpired means the session existed but passed the ceiling (or its
	// token's own expiry) and has been discarded.
	ErrExpired = errors.New("session: expired")
)

// Session is the persisted client state: the backend token, who holds it
// and when it was started. State carries the opaque UI snapshot (active
// period, filter, draft) between page loads.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Login     string    `json:"login"`
	FullName  string    `json:"full_name,omitempty"`
	Role      string    `json:"role"`
	StartedAt time.Time `json:"started_at"`
	State     []byte    `json:"state,omitempty"`
}

// Store persists sessions between page loads.
type Store interface {
	Put(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// Gate enforces the session timeout policy. The ceiling is advisory,
// re-checked only at page load; the backend still enforces real token
// expiry on every call.
type Gate struct {
	store  Store
	ttl    time.Duration
	logger *logging.Logger
}

// NewGate constructs a gate over a session store.
func NewGate(store Store, ttl time.Duration, logger *logging.Logger) *Gate {
	if ttl <= 0 {
		ttl = 3 * time.Hour
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Gate{store: store, ttl: ttl, logger: logger}
}

// TTL returns the session ceiling.
func (g *Gate) TTL() time.Duration { return g.ttl }

// Issue creates and persists a fresh session for a signed-in account.
func (g *Gate) Issue(ctx context.Context, token, login, fullName, role string) (*Session, error) {
	s := &Session{
		ID:        uuid.NewString(),
		Token:     token,
		Login:     login,
		FullName:  fullName,
		Role:      role,
		StartedAt: time.Now(),
	}
	if err := g.store.Put(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Resolve loads a session and applies the timeout policy. A session with a
// missing start timestamp, one older than the ceiling, or one whose bearer
// token already expired by its own claims is deleted and reported expired.
func (g *Gate) Resolve(ctx context.Context, id string, now time.Time) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	s, err := g.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.StartedAt.IsZero() || now.Sub(s.StartedAt) > g.ttl {
		g.drop(ctx, id, "session ceiling passed")
		return nil, ErrExpired
	}
	if exp, ok := tokenExpiry(s.Token); ok && now.After(exp) {
		g.drop(ctx, id, "bearer token expired")
		return nil, ErrExpired
	}
	return s, nil
}

// Save persists an updated session (UI state changes).
func (g *Gate) Save(ctx context.Context, s *Session) error {
	return g.store.Put(ctx, s)
}

// Drop removes a session (logout).
func (g *Gate) Drop(ctx context.Context, id string) error {
	return g.store.Delete(ctx, id)
}

func (g *Gate) drop(ctx context.Context, id, reason string) {
	if err := g.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		g.logger.Warn("failed to drop session", "session_id", id, "error", err)
		return
	}
	g.logger.Info("session discarded", "session_id", id, "reason", reason)
}

// tokenExpiry reads the exp claim without verifying the signature. The
// signature belongs to the backend; this is only an early exit before a
// doomed API call.
func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

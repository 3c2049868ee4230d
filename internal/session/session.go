// Package session holds the locally persisted credential and identity state
// established at login and cleared at logout.
package session

import (
	"context"
	"sync"

	"github.com/aristath/moneyball/internal/domain"
)

// Fixed keys the session fields are stored under.
const (
	KeyToken    = "token"
	KeyUsername = "username"
	KeyRole     = "role"
)

// Keys lists every persisted session key.
var Keys = []string{KeyToken, KeyUsername, KeyRole}

// Session is the persisted identity of the current user
type Session struct {
	Token    string
	Username string
	Role     domain.Role
}

// Authenticated reports whether a bearer token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// FromAuth builds a session from exactly the fields the backend returned.
func FromAuth(resp domain.AuthResponse) Session {
	return Session{
		Token:    resp.AccessToken,
		Username: resp.Username,
		Role:     resp.Role,
	}
}

// Store persists a Session. Clear removes every field.
type Store interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

type contextKey struct{}

// NewContext returns a context carrying the store of the current user.
func NewContext(ctx context.Context, store Store) context.Context {
	return context.WithValue(ctx, contextKey{}, store)
}

// FromContext returns the store attached with NewContext.
func FromContext(ctx context.Context) (Store, bool) {
	store, ok := ctx.Value(contextKey{}).(Store)
	return store, ok
}

// Tokens resolves the bearer token for outgoing backend calls. The store in
// the request context wins; Fallback is used for single-user frontends.
type Tokens struct {
	Fallback Store
}

// Token returns the current bearer token, or "" when logged out.
func (t Tokens) Token(ctx context.Context) (string, error) {
	store, ok := FromContext(ctx)
	if !ok {
		store = t.Fallback
	}
	if store == nil {
		return "", nil
	}
	s, err := store.Load(ctx)
	if err != nil {
		return "", err
	}
	return s.Token, nil
}

// MemoryStore keeps the session in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	session Session
}

// NewMemoryStore returns a store holding s.
func NewMemoryStore(s Session) *MemoryStore {
	return &MemoryStore{session: s}
}

func (m *MemoryStore) Load(ctx context.Context) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, nil
}

func (m *MemoryStore) Save(ctx context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = Session{}
	return nil
}

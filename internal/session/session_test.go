package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/moneyball/internal/domain"
)

type failingStore struct{ MemoryStore }

func (f *failingStore) Load(ctx context.Context) (Session, error) {
	return Session{}, errors.New("disk on fire")
}

func TestFromAuth(t *testing.T) {
	s := FromAuth(domain.AuthResponse{AccessToken: "tok", Username: "carol", Role: domain.RoleUser})
	assert.Equal(t, Session{Token: "tok", Username: "carol", Role: domain.RoleUser}, s)
}

func TestTokens_Token(t *testing.T) {
	ctxStore := NewMemoryStore(Session{Token: "from-context"})
	fallback := NewMemoryStore(Session{Token: "from-fallback"})

	t.Run("context store wins", func(t *testing.T) {
		ctx := NewContext(context.Background(), ctxStore)
		token, err := Tokens{Fallback: fallback}.Token(ctx)
		require.NoError(t, err)
		assert.Equal(t, "from-context", token)
	})

	t.Run("fallback without context store", func(t *testing.T) {
		token, err := Tokens{Fallback: fallback}.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "from-fallback", token)
	})

	t.Run("no store at all", func(t *testing.T) {
		token, err := Tokens{}.Token(context.Background())
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("store error propagates", func(t *testing.T) {
		_, err := Tokens{Fallback: &failingStore{}}.Token(context.Background())
		assert.Error(t, err)
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(Session{})

	require.NoError(t, store.Save(ctx, Session{Token: "a", Username: "b", Role: domain.RoleGuest}))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Token)

	require.NoError(t, store.Clear(ctx))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Session{}, got)
}

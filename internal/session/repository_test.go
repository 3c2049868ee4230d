package session

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/moneyball/internal/domain"
	testingpkg "github.com/aristath/moneyball/internal/testing"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE session (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	require.NoError(t, err)
	return db
}

func TestRepository_LoadEmpty(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())

	s, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Session{}, s)
	assert.False(t, s.Authenticated())
}

func TestRepository_SaveLoadRoundTrip(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())
	ctx := context.Background()

	want := Session{Token: "jwt-abc", Username: "alice", Role: domain.RoleGuest}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, got.Authenticated())
}

func TestRepository_SaveOverwritesEveryField(t *testing.T) {
	repo := NewRepository(setupTestDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, Session{Token: "old", Username: "alice", Role: domain.RoleAdmin}))
	require.NoError(t, repo.Save(ctx, Session{Token: "new", Username: "bob"}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Session{Token: "new", Username: "bob"}, got)
}

func TestRepository_ClearRemovesAllRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, Session{Token: "t", Username: "u", Role: domain.RoleGuest}))
	_, err := db.Exec("INSERT INTO session (key, value, updated_at) VALUES ('stray', 'x', 0)")
	require.NoError(t, err)

	require.NoError(t, repo.Clear(ctx))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM session").Scan(&count))
	assert.Equal(t, 0, count)

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Session{}, got)
}

func TestRepository_PersistsAcrossReopen(t *testing.T) {
	db := testingpkg.NewTestDB(t, "session")
	ctx := context.Background()

	want := Session{Token: "jwt-xyz", Username: "carol", Role: domain.RoleUser}
	require.NoError(t, NewRepository(db.Conn(), zerolog.Nop()).Save(ctx, want))

	// A second repository over the same migrated file sees the saved session.
	got, err := NewRepository(db.Conn(), zerolog.Nop()).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

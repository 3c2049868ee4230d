package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/moneyball/internal/database"
	"github.com/aristath/moneyball/internal/domain"
)

// Repository stores the session as key/value rows in the session table.
// It is the terminal frontend's equivalent of browser local storage.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a session repository over a migrated session database.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "session").Logger(),
	}
}

// Load reads every persisted field. Missing keys are empty.
func (r *Repository) Load(ctx context.Context) (Session, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT key, value FROM session")
	if err != nil {
		return Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	defer rows.Close()

	var s Session
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			r.log.Warn().Err(err).Msg("Failed to scan session row")
			continue
		}
		switch key {
		case KeyToken:
			s.Token = value
		case KeyUsername:
			s.Username = value
		case KeyRole:
			s.Role = domain.Role(value)
		}
	}
	if err := rows.Err(); err != nil {
		return Session{}, fmt.Errorf("error iterating session rows: %w", err)
	}
	return s, nil
}

// Save overwrites every field in one transaction.
func (r *Repository) Save(ctx context.Context, s Session) error {
	now := time.Now().Unix()
	values := map[string]string{
		KeyToken:    s.Token,
		KeyUsername: s.Username,
		KeyRole:     string(s.Role),
	}

	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		for _, key := range Keys {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO session (key, value, updated_at)
				VALUES (?, ?, ?)
				ON CONFLICT(key) DO UPDATE SET
					value = excluded.value,
					updated_at = excluded.updated_at
			`, key, values[key], now)
			if err != nil {
				return fmt.Errorf("failed to save session key %s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.log.Debug().Str("username", s.Username).Msg("Session saved")
	return nil
}

// Clear removes every row, whatever key it was stored under.
func (r *Repository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM session"); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	r.log.Debug().Msg("Session cleared")
	return nil
}

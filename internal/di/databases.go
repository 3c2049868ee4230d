package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/moneyball/internal/config"
	"github.com/aristath/moneyball/internal/database"
	"github.com/aristath/moneyball/internal/session"
)

// InitializeSessionDatabase opens session.db in the data directory, applies
// its schema and creates the session repository.
func InitializeSessionDatabase(container *Container, cfg *config.Config, log zerolog.Logger) error {
	db, err := database.New(database.Config{
		Path: cfg.SessionDBPath(),
		Name: "session",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize session database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return fmt.Errorf("failed to migrate session database: %w", err)
	}

	container.SessionDB = db
	container.SessionRepo = session.NewRepository(db.Conn(), log)

	log.Info().Str("path", db.Path()).Msg("Session database initialized")
	return nil
}

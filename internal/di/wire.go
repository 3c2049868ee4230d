package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/moneyball/internal/config"
	"github.com/aristath/moneyball/internal/session"
)

// WireServer builds the container for the web frontend. Tokens come from the
// browser cookie bound to each request.
func WireServer(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	if err := InitializeMetrics(container); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	container.Cookies = session.NewCookieStore(session.CookieOptions{
		Secret: cfg.SessionSecret,
		Secure: !cfg.DevMode,
	})

	InitializeBackend(container, cfg, nil, log)

	log.Info().Msg("Dependency injection wiring completed successfully")
	return container, nil
}

// WireTerminal builds the container for the terminal frontend. The session
// lives in session.db and also supplies the bearer token.
func WireTerminal(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	if err := InitializeMetrics(container); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	if err := InitializeSessionDatabase(container, cfg, log); err != nil {
		return nil, err
	}

	InitializeBackend(container, cfg, container.SessionRepo, log)

	log.Info().Msg("Dependency injection wiring completed successfully")
	return container, nil
}

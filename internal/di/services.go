package di

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/aristath/moneyball/internal/clients/backend"
	"github.com/aristath/moneyball/internal/config"
	"github.com/aristath/moneyball/internal/session"
)

// InitializeMetrics creates the metrics registry with the runtime collectors
// and the backend call metrics.
func InitializeMetrics(container *Container) error {
	registry := prometheus.NewRegistry()
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return fmt.Errorf("failed to register go collector: %w", err)
	}
	if err := registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return fmt.Errorf("failed to register process collector: %w", err)
	}

	metrics, err := backend.NewMetrics(registry)
	if err != nil {
		return err
	}

	container.Registry = registry
	container.Metrics = metrics
	return nil
}

// InitializeBackend creates the API client. fallback supplies the token when
// the request context carries no session store.
func InitializeBackend(container *Container, cfg *config.Config, fallback session.Store, log zerolog.Logger) {
	container.Backend = backend.NewClient(
		cfg.APIURL,
		session.Tokens{Fallback: fallback},
		log,
		backend.WithTimeout(cfg.RequestTimeout),
		backend.WithMetrics(container.Metrics),
	)
	log.Info().Str("api_url", container.Backend.BaseURL()).Msg("Backend client initialized")
}

// Package di provides dependency injection type definitions.
package di

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aristath/moneyball/internal/clients/backend"
	"github.com/aristath/moneyball/internal/database"
	"github.com/aristath/moneyball/internal/session"
)

// Container holds all dependencies for one frontend.
type Container struct {
	// Metrics
	Registry *prometheus.Registry
	Metrics  *backend.Metrics

	// Backend API client
	Backend *backend.Client

	// Web frontend session
	Cookies *session.CookieStore

	// Terminal frontend session
	SessionDB   *database.DB
	SessionRepo *session.Repository
}

// Close releases the container's databases.
func (c *Container) Close() error {
	if c.SessionDB != nil {
		return c.SessionDB.Close()
	}
	return nil
}

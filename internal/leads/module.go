// Package leads wires the lead data source the analytics engine reads from:
// the Postgres reporting tables or the seeded in-memory fixture.
package leads

import (
	"context"
	"fmt"
	"time"

	"contactcenter_backend/internal/leads/domain"
	"contactcenter_backend/internal/leads/fixture"
	"contactcenter_backend/internal/leads/repository"
	"contactcenter_backend/migrations"
	"contactcenter_backend/platform/config"
	"contactcenter_backend/platform/db"
	"contactcenter_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config combines the settings needed to open a data source.
type Config interface {
	config.AnalyticsConfig
	config.MigrationConfig
}

// Store reads leads, contact events and bases.
type Store interface {
	FetchLeads(ctx context.Context, filter domain.Filter) ([]domain.Lead, error)
	FetchEvents(ctx context.Context, filter domain.Filter) ([]domain.ContactEvent, error)
	ListBases(ctx context.Context) ([]domain.Base, error)
}

// HealthChecker reports data source readiness.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Module holds the opened data source.
type Module struct {
	store  Store
	health HealthChecker
	pool   *pgxpool.Pool
}

// Open connects the configured data source. For postgres it retries the
// connection and applies migrations when enabled. The fixture is anchored at
// today's date.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*Module, error) {
	switch cfg.GetDataSource() {
	case config.DataSourceFixture:
		store, err := fixture.Load(cfg.GetFixtureSeed(), cfg.GetFixtureSize(), time.Now(), cfg.GetEnrollmentCode())
		if err != nil {
			return nil, fmt.Errorf("load fixture: %w", err)
		}
		log.Info("fixture data source loaded", "seed", cfg.GetFixtureSeed(), "size", cfg.GetFixtureSize())
		return &Module{store: store, health: db.StaticHealth{}}, nil

	case config.DataSourcePostgres:
		var pool *pgxpool.Pool
		if err := db.WithRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
			p, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			pool = p
			return nil
		}); err != nil {
			return nil, err
		}
		log.Info("database connection established")

		if cfg.GetRunMigrations() {
			if err := db.RunMigrations(ctx, pool, migrations.FS); err != nil {
				pool.Close()
				return nil, fmt.Errorf("run migrations: %w", err)
			}
			log.Info("database migrations complete")
		}
		return &Module{store: repository.New(pool), health: db.NewPoolAdapter(pool), pool: pool}, nil

	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.GetDataSource())
	}
}

// Store returns the lead, event and base store.
func (m *Module) Store() Store {
	return m.store
}

// Health returns the readiness checker for the data source.
func (m *Module) Health() HealthChecker {
	return m.health
}

// Close releases the database pool, if any.
func (m *Module) Close() {
	if m.pool != nil {
		m.pool.Close()
	}
}

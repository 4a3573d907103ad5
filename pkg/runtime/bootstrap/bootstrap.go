package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/paas-statements/pkg/services/billing"
	"github.com/de-tools/paas-statements/pkg/services/config"
	"github.com/de-tools/paas-statements/pkg/services/directory"
	"github.com/de-tools/paas-statements/pkg/services/statement"
	"github.com/de-tools/paas-statements/pkg/store/duckdb"
	"github.com/de-tools/paas-statements/pkg/store/duckdb/events"
	sqlstore "github.com/de-tools/paas-statements/pkg/store/sql"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// App holds the collaborators a statement front-end needs.
type App struct {
	Generator statement.Generator
	closers   []func() error
}

func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ResolveConfig loads the config file and fills missing upstream settings
// from the selected ini profile.
func ResolveConfig(ctx context.Context, path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if cfg.Profile != "" && cfg.ProfilesPath != "" {
		registry, err := config.NewRegistry(cfg.ProfilesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load profiles: %w", err)
		}
		profile, err := registry.GetProfile(ctx, cfg.Profile)
		if err != nil {
			return nil, err
		}
		profile.Apply(cfg)
		zerolog.Ctx(ctx).Info().Msgf("Profile `%s` loaded from `%s`", cfg.Profile, cfg.ProfilesPath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// New builds the statement generator for cfg. reg may be nil.
func New(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (*App, error) {
	app := &App{}

	sources := billing.NewRegistry(map[string]billing.ProviderFactory{
		config.SourceAPI: func(context.Context) (billing.Provider, error) {
			return billing.NewClient(billing.ClientConfig{
				APIEndpoint: cfg.Billing.APIEndpoint,
				AccessToken: cfg.Billing.Token,
				Timeout:     cfg.Billing.Timeout,
			})
		},
		config.SourceSQL: func(ctx context.Context) (billing.Provider, error) {
			db, err := sql.Open("postgres", cfg.Billing.DSN)
			if err != nil {
				return nil, fmt.Errorf("failed to open billing database: %w", err)
			}
			pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			if err := db.PingContext(pingCtx); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("failed to reach billing database: %w", err)
			}
			app.closers = append(app.closers, db.Close)
			return sqlstore.NewEventProvider(db), nil
		},
		config.SourceDuckDB: func(context.Context) (billing.Provider, error) {
			db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.Billing.DuckDBPath})
			if err != nil {
				return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
			}
			app.closers = append(app.closers, db.Close)
			store, err := events.NewStore(db)
			if err != nil {
				return nil, fmt.Errorf("failed to create event store: %w", err)
			}
			return events.NewProvider(store), nil
		},
	})

	provider, err := sources.Create(ctx, cfg.Billing.Source)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	dir, err := directory.NewClient(directory.ClientConfig{
		APIEndpoint: cfg.Directory.APIEndpoint,
		AccessToken: cfg.Directory.Token,
		Timeout:     cfg.Directory.Timeout,
	})
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	var metrics *statement.Metrics
	if reg != nil {
		metrics = statement.NewMetrics(reg)
	}
	app.Generator, err = statement.NewGenerator(statement.Options{
		Billing:   provider,
		Directory: dir,
		Metrics:   metrics,
	})
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("source", cfg.Billing.Source).
		Strs("sources", sources.ListSources()).
		Msg("billing event source ready")
	return app, nil
}

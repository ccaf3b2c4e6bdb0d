package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/audit"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/compare"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/config"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/metrics"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/providers/apisports"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/providers/nbastats"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/publisher"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/registry"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/contracts"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// App holds the wired service components
type App struct {
	Config   *config.Config
	Registry *registry.Registry
	Provider contracts.ShotProvider
	Comparer *compare.Comparer
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	closers []func() error
}

// NewRegistry registers every provider the configuration can construct
func NewRegistry(cfg config.ProviderConfig, m *metrics.Metrics) (*registry.Registry, error) {
	reg := registry.New(nbastats.New(nbastats.Config{
		BaseURL:    cfg.NBAStatsURL,
		Timeout:    cfg.Timeout,
		Retries:    cfg.Retries,
		SeasonType: cfg.SeasonType,
	}, m))

	api, err := apisports.New(apisports.Config{
		BaseURL: cfg.APISportsURL,
		Host:    cfg.APISportsHost,
		APIKey:  cfg.RapidAPIKey,
		Timeout: cfg.Timeout,
		Retries: cfg.Retries,
	}, m)
	switch {
	case err == nil:
		reg.Register(api)
	case errors.Is(err, apisports.ErrMissingAPIKey):
		if cfg.Key == apisports.ProviderKey {
			return nil, err
		}
	default:
		return nil, err
	}

	return reg, nil
}

// NewApp wires providers, side channels and the comparer from cfg
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(promRegistry)

	reg, err := NewRegistry(cfg.Provider, m)
	if err != nil {
		return nil, err
	}
	provider, err := reg.GetProvider(cfg.Provider.Key)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, reg.Keys())
	}
	app := &App{
		Config:   cfg,
		Registry: reg,
		Provider: provider,
		Metrics:  m,
		Gatherer: promRegistry,
	}

	compareCfg := compare.Config{
		Provider:  provider,
		Metrics:   m,
		Synthetic: cfg.Provider.Synthetic,
		Seed:      cfg.Provider.Seed,
	}

	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		client := redis.NewClient(opts)
		app.closers = append(app.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		compareCfg.Publisher = publisher.NewStreamPublisher(client, cfg.Redis.Stream)
		log.Info().Str("stream", cfg.Redis.Stream).Msg("publishing comparisons to Redis")
	}

	if cfg.Audit.DSN != "" {
		db, err := audit.Open(ctx, cfg.Audit.DSN)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, db.Close)
		logger := audit.NewComparisonLogger(db)
		if err := logger.EnsureSchema(ctx); err != nil {
			app.Close()
			return nil, err
		}
		compareCfg.Audit = logger
		log.Info().Msg("logging comparisons to audit database")
	}

	if provider.GetSchemaVariant() == models.VariantAPISports && !cfg.Provider.Synthetic {
		log.Warn().
			Str("provider", provider.GetProviderKey()).
			Msg("provider has no shot locations; enable SYNTHETIC_SHOTS to render generated charts")
	}

	app.Comparer = compare.New(compareCfg)
	return app, nil
}

// Close releases connections opened by NewApp
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Warn().Err(err).Msg("error closing resource")
		}
	}
	a.closers = nil
}

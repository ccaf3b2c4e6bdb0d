package compare

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/metrics"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/normalize"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/render"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/stats"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/contracts"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// sideChannelTimeout bounds publishing and audit logging after a comparison
const sideChannelTimeout = 3 * time.Second

// Publisher receives a summary of every comparison
type Publisher interface {
	PublishComparison(ctx context.Context, summary *models.ComparisonSummary) error
}

// AuditLogger records every comparison attempt
type AuditLogger interface {
	LogComparison(ctx context.Context, summary *models.ComparisonSummary) error
}

// Config wires a Comparer. Only Provider is required.
type Config struct {
	Provider  contracts.ShotProvider
	Publisher Publisher
	Audit     AuditLogger
	Metrics   *metrics.Metrics

	// Synthetic enables generated coordinates for providers without shot
	// locations. Seed 0 seeds from the clock.
	Synthetic bool
	Seed      int64
}

// Request asks for two players in one season
type Request struct {
	Players [2]string
	Season  string
}

// PlayerResult is the output of one per-player pipeline. When Err is set the
// pipeline stopped at that step and later fields are zero.
type PlayerResult struct {
	Query   string
	Player  *models.Player
	Table   models.ShotTable
	Stats   models.AggregateStats
	Scatter []byte
	Heatmap []byte
	Err     error
}

// Chart returns the rendered SVG for mode
func (r *PlayerResult) Chart(mode render.Mode) []byte {
	switch mode {
	case render.ModeHeatmap:
		return r.Heatmap
	default:
		return r.Scatter
	}
}

// Summary strips chart bodies for publishing and JSON responses
func (r *PlayerResult) Summary() models.PlayerSummary {
	s := models.PlayerSummary{
		Query:     r.Query,
		Player:    r.Player,
		Stats:     r.Stats,
		Empty:     r.Table.Empty,
		Synthetic: r.Table.Synthetic,
		Dropped:   r.Table.Dropped,
	}
	if r.Err != nil {
		s.ErrorKind = models.ErrorKind(r.Err)
		s.Error = r.Err.Error()
	}
	return s
}

func (r *PlayerResult) result() string {
	switch {
	case r.Err != nil:
		return models.ErrorKind(r.Err)
	case r.Table.IsEmpty():
		return metrics.OutcomeEmpty
	default:
		return metrics.OutcomeOK
	}
}

// Comparison holds both players' results
type Comparison struct {
	ID        string
	Provider  string
	Season    string
	Players   [2]*PlayerResult
	StartedAt time.Time
	Duration  time.Duration
}

// Outcome is "ok" when both pipelines finished, "partial" when one failed and
// "failed" when both did. Empty results count as finished.
func (c *Comparison) Outcome() string {
	failed := 0
	for _, p := range c.Players {
		if p.Err != nil {
			failed++
		}
	}
	switch failed {
	case 0:
		return metrics.OutcomeOK
	case len(c.Players):
		return metrics.OutcomeFailed
	default:
		return metrics.OutcomePartial
	}
}

// Summary describes the comparison without chart bodies
func (c *Comparison) Summary() *models.ComparisonSummary {
	players := make([]models.PlayerSummary, 0, len(c.Players))
	for _, p := range c.Players {
		players = append(players, p.Summary())
	}
	return &models.ComparisonSummary{
		ID:         c.ID,
		Provider:   c.Provider,
		Season:     c.Season,
		Outcome:    c.Outcome(),
		Players:    players,
		StartedAt:  c.StartedAt,
		DurationMs: c.Duration.Milliseconds(),
	}
}

// Comparer runs the fetch, normalize, aggregate and render pipeline
type Comparer struct {
	provider  contracts.ShotProvider
	publisher Publisher
	audit     AuditLogger
	metrics   *metrics.Metrics
	synthetic bool
	seed      int64
}

// New creates a comparer
func New(cfg Config) *Comparer {
	return &Comparer{
		provider:  cfg.Provider,
		publisher: cfg.Publisher,
		audit:     cfg.Audit,
		metrics:   cfg.Metrics,
		synthetic: cfg.Synthetic,
		seed:      cfg.Seed,
	}
}

// Provider returns the active shot provider
func (c *Comparer) Provider() contracts.ShotProvider {
	return c.provider
}

// Compare runs both players' pipelines concurrently. A failure in one
// pipeline is recorded on that player's result and never affects the other.
// Only an invalid request returns an error.
func (c *Comparer) Compare(ctx context.Context, req Request) (*Comparison, error) {
	if err := models.ValidateSeason(req.Season); err != nil {
		return nil, err
	}

	cmp := &Comparison{
		ID:        uuid.NewString(),
		Provider:  c.provider.GetProviderKey(),
		Season:    req.Season,
		StartedAt: time.Now().UTC(),
	}

	var wg sync.WaitGroup
	for i, query := range req.Players {
		wg.Add(1)
		go func(i int, query string) {
			defer wg.Done()
			cmp.Players[i] = c.runPlayer(ctx, query, req.Season)
		}(i, query)
	}
	wg.Wait()

	cmp.Duration = time.Since(cmp.StartedAt)
	c.metrics.ObserveComparison(cmp.Outcome())

	summary := cmp.Summary()
	log.Info().
		Str("comparison_id", cmp.ID).
		Str("provider", cmp.Provider).
		Str("season", cmp.Season).
		Str("outcome", summary.Outcome).
		Dur("took", cmp.Duration).
		Msg("comparison finished")

	c.emit(ctx, summary)
	return cmp, nil
}

// Player runs a single player's pipeline
func (c *Comparer) Player(ctx context.Context, query, season string) (*PlayerResult, error) {
	if err := models.ValidateSeason(season); err != nil {
		return nil, err
	}
	return c.runPlayer(ctx, query, season), nil
}

func (c *Comparer) runPlayer(ctx context.Context, query, season string) *PlayerResult {
	res := &PlayerResult{Query: strings.TrimSpace(query)}
	defer func() {
		c.metrics.ObservePlayer(c.provider.GetProviderKey(), res.result())
		if res.Err != nil {
			log.Warn().
				Str("player", res.Query).
				Str("season", season).
				Str("kind", models.ErrorKind(res.Err)).
				Err(res.Err).
				Msg("player pipeline stopped")
		}
	}()

	if res.Query == "" {
		res.Err = &models.ResolutionError{Provider: c.provider.GetProviderKey(), Player: query}
		return res
	}

	player, err := c.provider.ResolvePlayer(ctx, res.Query)
	if err != nil {
		res.Err = err
		return res
	}
	res.Player = player

	payload, err := c.provider.FetchShots(ctx, player, season)
	if err != nil {
		res.Err = err
		return res
	}

	table, err := normalize.Normalize(payload, c.provider.GetSchemaVariant(), normalize.Options{
		Player:    *player,
		Season:    season,
		Synthetic: c.synthetic,
		Rand:      c.newRand(player, season),
	})
	if err != nil {
		res.Err = fmt.Errorf("normalizing shots for %s: %w", player.Name, err)
		return res
	}
	res.Table = table
	res.Stats = stats.Aggregate(table)

	opts := render.DefaultOptions(render.Title(player.Name, season))
	if res.Scatter, err = c.renderChart(render.ModeScatter, res, opts); err != nil {
		res.Err = err
		return res
	}
	if res.Heatmap, err = c.renderChart(render.ModeHeatmap, res, opts); err != nil {
		res.Err = err
		return res
	}

	log.Debug().
		Str("player", player.Name).
		Str("season", season).
		Int("attempts", table.Len()).
		Int("dropped", table.Dropped).
		Str("empty", string(table.Empty)).
		Bool("synthetic", table.Synthetic).
		Msg("player pipeline finished")

	return res
}

func (c *Comparer) renderChart(mode render.Mode, res *PlayerResult, opts render.Options) ([]byte, error) {
	out, err := render.RenderSVG(mode, res.Table, res.Stats, opts)
	if err != nil {
		return nil, fmt.Errorf("rendering %s chart: %w", mode, err)
	}
	c.metrics.AddRenderedShots(string(mode), res.Table.Len())
	return out, nil
}

// newRand gives every player pipeline its own source. A fixed seed yields the
// same synthetic chart for the same player and season.
func (c *Comparer) newRand(player *models.Player, season string) *rand.Rand {
	if !c.synthetic {
		return nil
	}
	if c.seed == 0 {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	h := fnv.New64a()
	h.Write([]byte(player.ID))
	h.Write([]byte(season))
	return rand.New(rand.NewSource(c.seed ^ int64(h.Sum64())))
}

// emit sends the summary to the optional side channels. Failures are logged
// and do not affect the comparison.
func (c *Comparer) emit(ctx context.Context, summary *models.ComparisonSummary) {
	if c.publisher == nil && c.audit == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideChannelTimeout)
	defer cancel()

	if c.publisher != nil {
		if err := c.publisher.PublishComparison(ctx, summary); err != nil {
			log.Error().Err(err).Str("comparison_id", summary.ID).Msg("failed to publish comparison")
		}
	}
	if c.audit != nil {
		if err := c.audit.LogComparison(ctx, summary); err != nil {
			log.Error().Err(err).Str("comparison_id", summary.ID).Msg("failed to log comparison")
		}
	}
}

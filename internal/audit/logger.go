package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
	_ "github.com/lib/pq"
)

// Schema creates the comparison log table
const Schema = `
	CREATE TABLE IF NOT EXISTS comparison_logs (
		id             BIGSERIAL PRIMARY KEY,
		comparison_id  UUID        NOT NULL,
		provider       TEXT        NOT NULL,
		season         TEXT        NOT NULL,
		player_query   TEXT        NOT NULL,
		player_id      TEXT,
		total_attempts INTEGER     NOT NULL DEFAULT 0,
		fg_percent     NUMERIC(5,1) NOT NULL DEFAULT 0,
		empty_reason   TEXT,
		synthetic      BOOLEAN     NOT NULL DEFAULT FALSE,
		error_kind     TEXT,
		error_message  TEXT,
		latency_ms     INTEGER     NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// ComparisonLogger logs comparison attempts to the comparison_logs table,
// one row per player
type ComparisonLogger struct {
	db *sql.DB
}

// ComparisonLog represents one comparison_logs row
type ComparisonLog struct {
	ComparisonID  string
	Provider      string
	Season        string
	PlayerQuery   string
	PlayerID      *string
	TotalAttempts int
	FGPercent     float64
	EmptyReason   *string
	Synthetic     bool
	ErrorKind     *string
	ErrorMessage  *string
	LatencyMs     int64
}

// Open connects to Postgres and verifies the connection
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging audit database: %w", err)
	}
	return db, nil
}

// NewComparisonLogger creates a new comparison logger
func NewComparisonLogger(db *sql.DB) *ComparisonLogger {
	return &ComparisonLogger{
		db: db,
	}
}

// EnsureSchema creates the log table when missing
func (l *ComparisonLogger) EnsureSchema(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("creating comparison_logs: %w", err)
	}
	return nil
}

// LogComparison writes one row per player of summary
func (l *ComparisonLogger) LogComparison(ctx context.Context, summary *models.ComparisonSummary) error {
	for _, row := range Rows(summary) {
		if err := l.LogEntry(ctx, &row); err != nil {
			return err
		}
	}
	return nil
}

// LogEntry writes a single comparison_logs row
func (l *ComparisonLogger) LogEntry(ctx context.Context, log *ComparisonLog) error {
	query := `
		INSERT INTO comparison_logs (
			comparison_id, provider, season, player_query, player_id,
			total_attempts, fg_percent, empty_reason, synthetic,
			error_kind, error_message, latency_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := l.db.ExecContext(ctx, query,
		log.ComparisonID,
		log.Provider,
		log.Season,
		log.PlayerQuery,
		log.PlayerID,
		log.TotalAttempts,
		log.FGPercent,
		log.EmptyReason,
		log.Synthetic,
		log.ErrorKind,
		log.ErrorMessage,
		log.LatencyMs,
	)
	if err != nil {
		return fmt.Errorf("failed to log comparison: %w", err)
	}
	return nil
}

// Rows flattens a summary into per-player log rows
func Rows(summary *models.ComparisonSummary) []ComparisonLog {
	rows := make([]ComparisonLog, 0, len(summary.Players))
	for _, p := range summary.Players {
		row := ComparisonLog{
			ComparisonID:  summary.ID,
			Provider:      summary.Provider,
			Season:        summary.Season,
			PlayerQuery:   p.Query,
			TotalAttempts: p.Stats.TotalAttempts,
			FGPercent:     p.Stats.FGPercent,
			Synthetic:     p.Synthetic,
			LatencyMs:     summary.DurationMs,
		}
		if p.Player != nil {
			row.PlayerID = &p.Player.ID
		}
		row.EmptyReason = optional(string(p.Empty))
		row.ErrorKind = optional(p.ErrorKind)
		row.ErrorMessage = optional(p.Error)
		rows = append(rows, row)
	}
	return rows
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package models

import "time"

// PlayerSummary is the outcome of one per-player pipeline, without chart bodies
type PlayerSummary struct {
	Query     string         `json:"query"`
	Player    *Player        `json:"player,omitempty"`
	Stats     AggregateStats `json:"stats"`
	Empty     EmptyReason    `json:"empty,omitempty"`
	Synthetic bool           `json:"synthetic"`
	Dropped   int            `json:"dropped"`
	ErrorKind string         `json:"error_kind,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// Failed reports whether the pipeline stopped on an error
func (p PlayerSummary) Failed() bool {
	return p.ErrorKind != ""
}

// ComparisonSummary describes one two-player comparison
type ComparisonSummary struct {
	ID         string          `json:"comparison_id"`
	Provider   string          `json:"provider"`
	Season     string          `json:"season"`
	Outcome    string          `json:"outcome"`
	Players    []PlayerSummary `json:"players"`
	StartedAt  time.Time       `json:"started_at"`
	DurationMs int64           `json:"duration_ms"`
}

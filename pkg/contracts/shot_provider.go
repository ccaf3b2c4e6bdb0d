package contracts

import (
	"context"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
)

// ShotProvider is the pluggable interface for upstream shot data sources
type ShotProvider interface {
	// Identification
	GetProviderKey() string                 // "nbastats", "apisports"
	GetDisplayName() string                 // "NBA Stats", "API-NBA (RapidAPI)"
	GetSchemaVariant() models.SchemaVariant // payload shape FetchShots returns

	// ResolvePlayer maps a display name onto the upstream player record.
	// No match is reported as *models.ResolutionError.
	ResolvePlayer(ctx context.Context, name string) (*models.Player, error)

	// FetchShots returns the raw shot payload for one player and season.
	// Transport and status failures are reported as *models.FetchError.
	FetchShots(ctx context.Context, player *models.Player, season string) ([]byte, error)
}

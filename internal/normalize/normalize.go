package normalize

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
)

var (
	// ErrUnknownVariant is returned for a schema variant with no adapter
	ErrUnknownVariant = errors.New("unknown schema variant")

	// ErrNoShotLocations is returned when a payload has no per-shot
	// coordinates and synthetic generation is disabled
	ErrNoShotLocations = errors.New("payload has no shot locations; synthetic mode is disabled")

	// ErrMalformedPayload is returned when a payload cannot be decoded
	ErrMalformedPayload = errors.New("malformed payload")
)

// Options controls normalization
type Options struct {
	Player models.Player
	Season string

	// Synthetic allows fabricating shot coordinates for payloads that only
	// carry per-game totals. Charts built this way are demo output only.
	Synthetic bool
	Rand      *rand.Rand
}

// adapter maps one upstream payload shape onto the canonical table
type adapter func(payload []byte, opts Options) (models.ShotTable, error)

var adapters = map[models.SchemaVariant]adapter{
	models.VariantNBAStats:  fromNBAStats,
	models.VariantAPISports: fromAPISports,
}

// Normalize converts a raw upstream payload into a ShotTable. A table with no
// valid rows is returned with its Empty reason set, not as an error.
func Normalize(payload []byte, variant models.SchemaVariant, opts Options) (models.ShotTable, error) {
	adapt, ok := adapters[variant]
	if !ok {
		return models.ShotTable{}, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}

	table, err := adapt(payload, opts)
	if err != nil {
		return models.ShotTable{}, err
	}

	table.Player = opts.Player
	table.Season = opts.Season
	table.Variant = variant

	if len(table.Shots) == 0 && table.Empty == models.EmptyNone {
		if table.Dropped > 0 {
			table.Empty = models.EmptyAllDropped
		} else {
			table.Empty = models.EmptyNoAttempts
		}
	}

	return table, nil
}

// Variants lists the supported schema variants
func Variants() []models.SchemaVariant {
	return []models.SchemaVariant{models.VariantNBAStats, models.VariantAPISports}
}

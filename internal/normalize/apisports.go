package normalize

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
	"github.com/tidwall/gjson"
)

// Court box synthetic shots are drawn from
const (
	syntheticMinX = -250.0
	syntheticMaxX = 250.0
	syntheticMinY = -47.5
	syntheticMaxY = 422.5

	maxSampleAttempts = 1000
)

// gameTotals is one game's shooting line from /players/statistics
type gameTotals struct {
	FGA, FGM int
	TPA, TPM int
	HasThrees bool
}

func fromAPISports(payload []byte, opts Options) (models.ShotTable, error) {
	if !gjson.ValidBytes(payload) {
		return models.ShotTable{}, fmt.Errorf("%w: invalid JSON", ErrMalformedPayload)
	}

	response := gjson.GetBytes(payload, "response")
	if !response.IsArray() {
		return models.ShotTable{}, fmt.Errorf("%w: response is not an array", ErrMalformedPayload)
	}

	var games []gameTotals
	attempts := 0
	response.ForEach(func(_, game gjson.Result) bool {
		fga, okA := countField(game.Get("fga"))
		fgm, okM := countField(game.Get("fgm"))
		if !okA || !okM {
			return true
		}
		g := gameTotals{FGA: fga}
		g.FGM = clampInt(fgm, 0, g.FGA)

		tpa, okTA := countField(game.Get("tpa"))
		tpm, okTM := countField(game.Get("tpm"))
		if okTA && okTM {
			g.HasThrees = true
			g.TPA = clampInt(tpa, 0, g.FGA)
			g.TPM = clampInt(tpm, 0, g.TPA)
		}

		attempts += g.FGA
		games = append(games, g)
		return true
	})

	if attempts == 0 {
		return models.ShotTable{Empty: models.EmptyNoAttempts}, nil
	}

	if !opts.Synthetic {
		return models.ShotTable{}, ErrNoShotLocations
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	table := models.ShotTable{
		Shots:     make([]models.ShotRecord, 0, attempts),
		Synthetic: true,
	}
	for _, g := range games {
		table.Shots = append(table.Shots, synthesizeGame(g, rng)...)
	}

	return table, nil
}

// countField reads a shooting count. JSON numbers and numeric strings are
// accepted; null, missing or non-numeric values report false.
func countField(r gjson.Result) (int, bool) {
	switch r.Type {
	case gjson.Number:
		return max(int(r.Int()), 0), true
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(r.Str))
		if err != nil {
			return 0, false
		}
		return max(n, 0), true
	default:
		return 0, false
	}
}

// synthesizeGame fabricates one record per attempt. Coordinates are uniform
// over the court box. When the game line carries three-point totals, exactly
// TPA samples land beyond the arc so that shot type and distance agree.
func synthesizeGame(g gameTotals, rng *rand.Rand) []models.ShotRecord {
	shots := make([]models.ShotRecord, 0, g.FGA)

	if !g.HasThrees {
		for i := 0; i < g.FGA; i++ {
			x, y := samplePoint(rng)
			shots = append(shots, models.NewShotRecord(x, y, i < g.FGM, ""))
		}
		return shots
	}

	twoMade := clampInt(g.FGM-g.TPM, 0, g.FGA-g.TPA)
	for i := 0; i < g.TPA; i++ {
		x, y := sampleClass(rng, models.ThreePoint)
		shots = append(shots, models.NewShotRecord(x, y, i < g.TPM, models.ThreePoint))
	}
	for i := 0; i < g.FGA-g.TPA; i++ {
		x, y := sampleClass(rng, models.TwoPoint)
		shots = append(shots, models.NewShotRecord(x, y, i < twoMade, models.TwoPoint))
	}

	return shots
}

func samplePoint(rng *rand.Rand) (float64, float64) {
	x := syntheticMinX + rng.Float64()*(syntheticMaxX-syntheticMinX)
	y := syntheticMinY + rng.Float64()*(syntheticMaxY-syntheticMinY)
	return x, y
}

// sampleClass rejection-samples a point whose distance class is want
func sampleClass(rng *rand.Rand, want models.ShotType) (float64, float64) {
	for i := 0; i < maxSampleAttempts; i++ {
		x, y := samplePoint(rng)
		if models.ClassifyDistance(math.Hypot(x, y)) == want {
			return x, y
		}
	}
	if want == models.ThreePoint {
		return 0, 300
	}
	return 0, 100
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

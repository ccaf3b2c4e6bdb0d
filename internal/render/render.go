package render

import (
	"bytes"
	"fmt"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/canvas"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/court"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/stats"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
)

// Mode selects the chart type
type Mode string

const (
	ModeScatter Mode = "scatter"
	ModeHeatmap Mode = "heatmap"
)

const (
	placeholderText = "No data available"
	syntheticBadge  = "SYNTHETIC DATA - generated locations, not real shots"
)

// Fixed annotation anchors in court units
var (
	statsAnchor       = canvas.Point{X: 0, Y: -100}
	placeholderAnchor = canvas.Point{X: 0, Y: 0}
	badgeAnchor       = canvas.Point{X: 0, Y: 400}
)

// Options controls chart rendering
type Options struct {
	Title      string
	CourtStyle court.Style
	GridSize   int // hexagons across the court width in heatmap mode
}

// DefaultOptions returns the chart defaults
func DefaultOptions(title string) Options {
	return Options{
		Title:      title,
		CourtStyle: court.DefaultStyle,
		GridSize:   DefaultGridSize,
	}
}

// ParseMode validates a mode string
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeScatter, ModeHeatmap:
		return Mode(s), nil
	case "":
		return ModeScatter, nil
	default:
		return "", fmt.Errorf("unknown chart mode %q", s)
	}
}

// Title builds the chart title used by the dashboard and CLI
func Title(player, season string) string {
	return fmt.Sprintf("%s - %s", player, season)
}

// backdrop draws the parts shared by every chart. It reports false when the
// table is empty and the placeholder was drawn instead of shot overlays.
func backdrop(s canvas.Surface, table models.ShotTable, opts Options) bool {
	if opts.Title != "" {
		s.Title(opts.Title)
	}
	court.Draw(s, opts.CourtStyle)

	if table.IsEmpty() {
		s.Text(placeholderAnchor, []string{placeholderText}, canvas.TextStyle{Size: 12, Anchor: "middle"})
		return false
	}
	return true
}

// annotate draws the statistics block below the basket and the synthetic badge
func annotate(s canvas.Surface, table models.ShotTable, agg models.AggregateStats) {
	s.Text(statsAnchor, stats.FormatLines(agg), canvas.TextStyle{Size: 9, Anchor: "middle", Boxed: true})
	if table.Synthetic {
		s.Text(badgeAnchor, []string{syntheticBadge}, canvas.TextStyle{Size: 10, Color: "#b00020", Anchor: "middle", Boxed: true})
	}
}

// Draw renders table onto s in the given mode
func Draw(s canvas.Surface, mode Mode, table models.ShotTable, agg models.AggregateStats, opts Options) error {
	switch mode {
	case ModeScatter:
		Scatter(s, table, agg, opts)
	case ModeHeatmap:
		Density(s, table, agg, opts)
	default:
		return fmt.Errorf("unknown chart mode %q", mode)
	}
	return nil
}

// RenderSVG renders one chart as an SVG document
func RenderSVG(mode Mode, table models.ShotTable, agg models.AggregateStats, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	surface := canvas.NewSVG(&buf, canvas.DefaultFrame)
	if err := Draw(surface, mode, table, agg, opts); err != nil {
		return nil, err
	}
	surface.Close()
	return buf.Bytes(), nil
}

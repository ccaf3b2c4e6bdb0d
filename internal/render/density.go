package render

import (
	"fmt"
	"math"
	"sort"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/canvas"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/court"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
)

// DefaultGridSize is the number of hexagons across the court width
const DefaultGridSize = 25

const colorBarLabel = "Shot Frequency (log scale)"

// plasma colormap, low to high
var plasma = []string{
	"#0d0887", "#4b03a1", "#7d03a8", "#a82296", "#cb4679",
	"#e56b5d", "#f89441", "#fdc328", "#f0f921",
}

// Bin is one occupied hexagonal cell
type Bin struct {
	Q, R   int // axial coordinates
	Center canvas.Point
	Count  int
}

// HexGrid maps court coordinates onto pointy-top hexagons anchored at the
// lower-left corner of the court
type HexGrid struct {
	Radius float64 // centre to vertex
	Origin canvas.Point
}

// NewHexGrid sizes hexagons so gridSize of them span the court width
func NewHexGrid(gridSize int) HexGrid {
	if gridSize <= 0 {
		gridSize = DefaultGridSize
	}
	width := (court.MaxX - court.MinX) / float64(gridSize)
	return HexGrid{
		Radius: width / math.Sqrt(3),
		Origin: canvas.Point{X: court.MinX, Y: court.MinY},
	}
}

// Cell returns the axial coordinates of the hexagon containing p
func (g HexGrid) Cell(p canvas.Point) (int, int) {
	x := p.X - g.Origin.X
	y := p.Y - g.Origin.Y
	q := (math.Sqrt(3)/3*x - y/3) / g.Radius
	r := (2.0 / 3 * y) / g.Radius
	return cubeRound(q, r)
}

// Center returns the centre of hexagon (q, r)
func (g HexGrid) Center(q, r int) canvas.Point {
	return canvas.Point{
		X: g.Origin.X + g.Radius*math.Sqrt(3)*(float64(q)+float64(r)/2),
		Y: g.Origin.Y + g.Radius*1.5*float64(r),
	}
}

// Vertices returns the six corners of hexagon (q, r)
func (g HexGrid) Vertices(q, r int) []canvas.Point {
	c := g.Center(q, r)
	pts := make([]canvas.Point, 6)
	for i := range pts {
		angle := (60*float64(i) + 30) * math.Pi / 180
		pts[i] = canvas.Point{X: c.X + g.Radius*math.Cos(angle), Y: c.Y + g.Radius*math.Sin(angle)}
	}
	return pts
}

func cubeRound(q, r float64) (int, int) {
	s := -q - r
	rq, rr, rs := math.Round(q), math.Round(r), math.Round(s)
	dq, dr, ds := math.Abs(rq-q), math.Abs(rr-r), math.Abs(rs-s)
	switch {
	case dq > dr && dq > ds:
		rq = -rr - rs
	case dr > ds:
		rr = -rq - rs
	}
	return int(rq), int(rr)
}

// HexBin counts every attempt, made or missed, into hexagonal cells.
// Only occupied cells are returned, ordered by row then column.
func HexBin(table models.ShotTable, gridSize int) []Bin {
	grid := NewHexGrid(gridSize)
	counts := make(map[[2]int]int)
	for _, shot := range table.Shots {
		q, r := grid.Cell(canvas.Point{X: shot.LocX, Y: shot.LocY})
		counts[[2]int{q, r}]++
	}

	bins := make([]Bin, 0, len(counts))
	for key, n := range counts {
		bins = append(bins, Bin{Q: key[0], R: key[1], Center: grid.Center(key[0], key[1]), Count: n})
	}
	sort.Slice(bins, func(i, j int) bool {
		if bins[i].R != bins[j].R {
			return bins[i].R < bins[j].R
		}
		return bins[i].Q < bins[j].Q
	})
	return bins
}

// LogScale maps counts onto [0,1] by log10 between the smallest and largest
// occupied cell
type LogScale struct {
	Min, Max int
}

// NewLogScale spans the counts in bins
func NewLogScale(bins []Bin) LogScale {
	sc := LogScale{}
	for i, b := range bins {
		if i == 0 || b.Count < sc.Min {
			sc.Min = b.Count
		}
		if b.Count > sc.Max {
			sc.Max = b.Count
		}
	}
	return sc
}

// Normalize returns the position of count on the scale
func (sc LogScale) Normalize(count int) float64 {
	if count <= 0 || sc.Max <= 0 {
		return 0
	}
	lo, hi := math.Log10(float64(sc.Min)), math.Log10(float64(sc.Max))
	if hi <= lo {
		return 1
	}
	v := (math.Log10(float64(count)) - lo) / (hi - lo)
	return math.Max(0, math.Min(1, v))
}

// Color picks the colormap entry for count
func (sc LogScale) Color(count int) string {
	return colormap(sc.Normalize(count))
}

// Stops builds colour bar ticks evenly spaced in log space
func (sc LogScale) Stops() []canvas.ColorStop {
	if sc.Max <= 0 {
		return nil
	}
	if sc.Max == sc.Min {
		return []canvas.ColorStop{{Label: fmt.Sprintf("%d", sc.Max), Color: colormap(1)}}
	}

	lo, hi := math.Log10(float64(sc.Min)), math.Log10(float64(sc.Max))
	stops := make([]canvas.ColorStop, len(plasma))
	for i := range stops {
		f := float64(i) / float64(len(plasma)-1)
		stops[i] = canvas.ColorStop{Color: colormap(f)}
		if i%2 == 0 {
			stops[i].Label = fmt.Sprintf("%.0f", math.Pow(10, lo+f*(hi-lo)))
		}
	}
	return stops
}

func colormap(v float64) string {
	idx := int(math.Round(v * float64(len(plasma)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(plasma) {
		idx = len(plasma) - 1
	}
	return plasma[idx]
}

// Density draws a log-scaled hexbin heatmap of every attempt
func Density(s canvas.Surface, table models.ShotTable, agg models.AggregateStats, opts Options) {
	if backdrop(s, table, opts) {
		grid := NewHexGrid(opts.GridSize)
		bins := HexBin(table, opts.GridSize)
		scale := NewLogScale(bins)

		for _, b := range bins {
			s.Polygon(grid.Vertices(b.Q, b.R), canvas.Style{Fill: scale.Color(b.Count), Opacity: 0.85})
		}
		s.ColorBar(canvas.ColorBar{Label: colorBarLabel, Stops: scale.Stops()})
	}
	annotate(s, table, agg)
}

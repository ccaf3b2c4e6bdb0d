package canvas_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/canvas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArcSpan(t *testing.T) {
	tests := []struct {
		t1, t2 float64
		want   float64
	}{
		{0, 180, 180},
		{180, 360, 180},
		{22, 158, 136},
		{0, 360, 360},
		{270, 90, 180},
		{90, 90, 360},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, canvas.ArcSpan(tt.t1, tt.t2), "%v -> %v", tt.t1, tt.t2)
	}
}

func TestRecorder_KeepsOrderAndCopies(t *testing.T) {
	rec := canvas.NewRecorder()
	var s canvas.Surface = rec

	lines := []string{"a", "b"}
	pts := []canvas.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}

	s.Title("t")
	s.Text(canvas.Point{}, lines, canvas.TextStyle{})
	s.Polygon(pts, canvas.Style{Fill: "red"})
	s.Marker(canvas.Point{X: 3, Y: 4}, canvas.Style{Fill: "green"})

	lines[0] = "changed"
	pts[0] = canvas.Point{X: 9, Y: 9}

	require.Len(t, rec.Ops, 4)
	assert.Equal(t, canvas.OpTitle, rec.Ops[0].Kind)
	assert.Equal(t, []string{"a", "b"}, rec.Ops[1].Lines)
	assert.Equal(t, canvas.Point{}, rec.Ops[2].Points[0])
	assert.Equal(t, 1, rec.Count(canvas.OpMarker))
	assert.Equal(t, "green", rec.Filter(canvas.OpMarker)[0].Style.Fill)
	assert.Empty(t, rec.Filter(canvas.OpArc))
}

func TestSVG_WritesDocument(t *testing.T) {
	var buf bytes.Buffer
	s := canvas.NewSVG(&buf, canvas.DefaultFrame)

	s.Title("Shot Chart")
	s.Circle(canvas.Point{}, 7.5, canvas.Style{Stroke: "black", Width: 1})
	s.Arc(canvas.Point{}, 237.5, 22, 158, canvas.Style{Stroke: "black", Width: 1})
	s.Line(canvas.Point{X: -220, Y: -47.5}, canvas.Point{X: -220, Y: 92.5}, canvas.Style{Stroke: "black", Width: 1, Dashed: true})
	s.Marker(canvas.Point{X: 10, Y: 10}, canvas.Style{Fill: "green", Opacity: 0.7, Size: 3})
	s.Text(canvas.Point{X: 0, Y: -100}, []string{"Total Attempts: 1"}, canvas.TextStyle{Size: 9, Boxed: true})
	s.Legend([]canvas.LegendEntry{{Label: "Made", Color: "green"}})
	s.ColorBar(canvas.ColorBar{Label: "Shot Frequency", Stops: []canvas.ColorStop{{Label: "1", Color: "#0d0887"}}})
	s.Close()

	doc := buf.String()
	assert.True(t, strings.HasPrefix(doc, "<?xml"))
	assert.Contains(t, doc, "<svg")
	assert.Contains(t, doc, "<title>Shot Chart</title>")
	assert.Contains(t, doc, "Total Attempts: 1")
	assert.Contains(t, doc, "stroke-dasharray")
	assert.Contains(t, doc, "opacity:0.70")
	assert.Contains(t, doc, "Made")
	assert.Contains(t, doc, "writing-mode:tb")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(doc), "</svg>"))

	w, h := s.Size()
	assert.Equal(t, 800+140, w)
	assert.Equal(t, 884+48, h)
}

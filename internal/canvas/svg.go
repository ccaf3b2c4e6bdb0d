package canvas

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// Frame is the court-unit window an SVG surface maps onto pixels
type Frame struct {
	MinX, MaxX float64
	MinY, MaxY float64
	Scale      float64 // pixels per court unit
	Header     int     // pixels reserved above the court for the title
	SidePanel  int     // pixels reserved right of the court for colour bars
}

// DefaultFrame covers the half court plus room below the baseline for the
// statistics annotation
var DefaultFrame = Frame{
	MinX:      -250,
	MaxX:      250,
	MinY:      -130,
	MaxY:      422.5,
	Scale:     1.6,
	Header:    48,
	SidePanel: 140,
}

// SVG is a Surface that writes an SVG document
type SVG struct {
	canvas *svg.SVG
	frame  Frame
	width  int
	height int
}

// NewSVG starts an SVG document on w. Call Close to finish it.
func NewSVG(w io.Writer, frame Frame) *SVG {
	if frame.Scale <= 0 {
		frame.Scale = 1
	}
	s := &SVG{
		canvas: svg.New(w),
		frame:  frame,
	}
	s.width = int(math.Round((frame.MaxX-frame.MinX)*frame.Scale)) + frame.SidePanel
	s.height = int(math.Round((frame.MaxY-frame.MinY)*frame.Scale)) + frame.Header

	s.canvas.Start(s.width, s.height)
	s.canvas.Rect(0, 0, s.width, s.height, "fill:white")
	return s
}

// Close writes the closing tag
func (s *SVG) Close() {
	s.canvas.End()
}

// Size returns the document size in pixels
func (s *SVG) Size() (int, int) {
	return s.width, s.height
}

func (s *SVG) px(p Point) (int, int) {
	x := (p.X - s.frame.MinX) * s.frame.Scale
	y := float64(s.frame.Header) + (s.frame.MaxY-p.Y)*s.frame.Scale
	return int(math.Round(x)), int(math.Round(y))
}

func (s *SVG) length(v float64) int {
	return int(math.Round(v * s.frame.Scale))
}

func (s *SVG) style(st Style) string {
	parts := make([]string, 0, 5)
	if st.Fill != "" {
		parts = append(parts, "fill:"+st.Fill)
	} else {
		parts = append(parts, "fill:none")
	}
	if st.Stroke != "" {
		width := st.Width * s.frame.Scale
		if width <= 0 {
			width = 1
		}
		parts = append(parts, "stroke:"+st.Stroke, fmt.Sprintf("stroke-width:%.2f", width))
		if st.Dashed {
			parts = append(parts, fmt.Sprintf("stroke-dasharray:%.1f,%.1f", 4*width, 3*width))
		}
	}
	if st.Opacity > 0 && st.Opacity < 1 {
		parts = append(parts, fmt.Sprintf("opacity:%.2f", st.Opacity))
	}
	return strings.Join(parts, ";")
}

func textStyle(size int, color, anchor string) string {
	if color == "" {
		color = "black"
	}
	if anchor == "" {
		anchor = "middle"
	}
	return fmt.Sprintf("font-family:sans-serif;font-size:%dpx;fill:%s;text-anchor:%s", size, color, anchor)
}

func (s *SVG) Title(title string) {
	s.canvas.Title(title)
	courtWidth := s.width - s.frame.SidePanel
	s.canvas.Text(courtWidth/2, s.frame.Header*2/3, title, textStyle(22, "black", "middle"))
}

func (s *SVG) Circle(center Point, radius float64, st Style) {
	x, y := s.px(center)
	s.canvas.Circle(x, y, s.length(radius), s.style(st))
}

func (s *SVG) Rect(origin Point, width, height float64, st Style) {
	// origin is the lower-left corner in court units, SVG wants upper-left
	x, y := s.px(Point{X: origin.X, Y: origin.Y + height})
	s.canvas.Rect(x, y, s.length(width), s.length(height), s.style(st))
}

func (s *SVG) Line(from, to Point, st Style) {
	x1, y1 := s.px(from)
	x2, y2 := s.px(to)
	s.canvas.Line(x1, y1, x2, y2, s.style(st))
}

func (s *SVG) Arc(center Point, radius, theta1, theta2 float64, st Style) {
	span := ArcSpan(theta1, theta2)
	start := polar(center, radius, theta1)
	end := polar(center, radius, theta1+span)

	sx, sy := s.px(start)
	ex, ey := s.px(end)
	r := s.length(radius)
	// y is flipped, so a counter-clockwise court arc is a negative-sweep SVG arc
	s.canvas.Arc(sx, sy, r, r, 0, span > 180, false, ex, ey, s.style(st))
}

func (s *SVG) Marker(at Point, st Style) {
	x, y := s.px(at)
	r := s.length(st.Size)
	if r < 1 {
		r = 1
	}
	s.canvas.Circle(x, y, r, s.style(st))
}

func (s *SVG) Polygon(points []Point, st Style) {
	xs := make([]int, len(points))
	ys := make([]int, len(points))
	for i, p := range points {
		xs[i], ys[i] = s.px(p)
	}
	s.canvas.Polygon(xs, ys, s.style(st))
}

func (s *SVG) Text(at Point, lines []string, st TextStyle) {
	if len(lines) == 0 {
		return
	}
	size := s.length(st.Size)
	if size < 8 {
		size = 8
	}
	lineHeight := size * 5 / 4
	x, y := s.px(at)
	top := y - lineHeight*len(lines)/2

	if st.Boxed {
		longest := 0
		for _, l := range lines {
			if len(l) > longest {
				longest = len(l)
			}
		}
		boxWidth := longest*size*3/5 + size
		s.canvas.Rect(x-boxWidth/2, top-size/4, boxWidth, lineHeight*len(lines)+size/2,
			"fill:white;opacity:0.7;stroke:#999999;stroke-width:1")
	}

	for i, line := range lines {
		s.canvas.Text(x, top+lineHeight*(i+1)-size/4, line, textStyle(size, st.Color, st.Anchor))
	}
}

func (s *SVG) Legend(entries []LegendEntry) {
	if len(entries) == 0 {
		return
	}
	courtWidth := s.width - s.frame.SidePanel
	x := courtWidth - 130
	y := s.frame.Header + 10
	s.canvas.Rect(x, y, 120, 12+22*len(entries), "fill:white;opacity:0.8;stroke:#999999;stroke-width:1")
	for i, e := range entries {
		cy := y + 18 + 22*i
		s.canvas.Circle(x+16, cy, 6, "fill:"+e.Color+";opacity:0.7")
		s.canvas.Text(x+30, cy+5, e.Label, textStyle(14, "black", "start"))
	}
}

func (s *SVG) ColorBar(bar ColorBar) {
	if len(bar.Stops) == 0 {
		return
	}
	courtWidth := s.width - s.frame.SidePanel
	x := courtWidth + 30
	top := s.frame.Header + 20
	height := (s.height - s.frame.Header) * 2 / 3
	band := height / len(bar.Stops)
	if band < 1 {
		band = 1
	}

	// highest stop at the top
	for i, stop := range bar.Stops {
		y := top + height - band*(i+1)
		s.canvas.Rect(x, y, 24, band, "fill:"+stop.Color)
		if stop.Label != "" {
			s.canvas.Text(x+30, y+band/2+4, stop.Label, textStyle(12, "black", "start"))
		}
	}
	s.canvas.Rect(x, top+height-band*len(bar.Stops), 24, band*len(bar.Stops), "fill:none;stroke:black;stroke-width:1")

	lx, ly := x-8, top+height/2
	s.canvas.Text(lx, ly, bar.Label, textStyle(13, "black", "middle")+";writing-mode:tb")
}

func polar(center Point, radius, theta float64) Point {
	rad := theta * math.Pi / 180
	return Point{
		X: center.X + radius*math.Cos(rad),
		Y: center.Y + radius*math.Sin(rad),
	}
}

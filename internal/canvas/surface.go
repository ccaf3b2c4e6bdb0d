package canvas

// Point is a position in court units
type Point struct {
	X float64
	Y float64
}

// Style describes how a shape is stroked and filled
type Style struct {
	Stroke  string  // empty means no stroke
	Fill    string  // empty means no fill
	Width   float64 // stroke width in court units
	Dashed  bool
	Opacity float64 // 0 means fully opaque
	Size    float64 // marker radius in court units
}

// TextStyle describes a text annotation
type TextStyle struct {
	Size   float64 // font size in court units
	Color  string
	Anchor string // "start", "middle", "end"
	Boxed  bool   // draw a translucent white box behind the text
}

// LegendEntry is one row of a categorical legend
type LegendEntry struct {
	Label string
	Color string
}

// ColorStop maps a tick label to a colour on a colour bar
type ColorStop struct {
	Label string
	Color string
}

// ColorBar is a continuous scale legend; Stops run low to high
type ColorBar struct {
	Label string
	Stops []ColorStop
}

// Surface is the 2D drawing target the court and shot overlays render onto.
// Arc angles are in degrees, counter-clockwise from the positive x axis, and
// an arc is swept counter-clockwise from Theta1 to Theta2.
type Surface interface {
	Title(title string)
	Circle(center Point, radius float64, st Style)
	Rect(origin Point, width, height float64, st Style)
	Line(from, to Point, st Style)
	Arc(center Point, radius, theta1, theta2 float64, st Style)
	Marker(at Point, st Style)
	Polygon(points []Point, st Style)
	Text(at Point, lines []string, st TextStyle)
	Legend(entries []LegendEntry)
	ColorBar(bar ColorBar)
}

// ArcSpan returns the counter-clockwise sweep from theta1 to theta2 in (0, 360]
func ArcSpan(theta1, theta2 float64) float64 {
	span := theta2 - theta1
	for span <= 0 {
		span += 360
	}
	for span > 360 {
		span -= 360
	}
	return span
}

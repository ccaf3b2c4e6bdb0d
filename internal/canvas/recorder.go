package canvas

// OpKind names a recorded drawing call
type OpKind string

const (
	OpTitle    OpKind = "title"
	OpCircle   OpKind = "circle"
	OpRect     OpKind = "rect"
	OpLine     OpKind = "line"
	OpArc      OpKind = "arc"
	OpMarker   OpKind = "marker"
	OpPolygon  OpKind = "polygon"
	OpText     OpKind = "text"
	OpLegend   OpKind = "legend"
	OpColorBar OpKind = "colorbar"
)

// Op is a single recorded drawing call
type Op struct {
	Kind      OpKind
	Points    []Point // centre, origin, endpoints or polygon vertices
	Radius    float64
	Width     float64
	Height    float64
	Theta1    float64
	Theta2    float64
	Style     Style
	TextStyle TextStyle
	Lines     []string
	Legend    []LegendEntry
	Bar       *ColorBar
}

// Recorder is an in-memory Surface that keeps every call in order
type Recorder struct {
	Ops []Op
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Title(title string) {
	r.Ops = append(r.Ops, Op{Kind: OpTitle, Lines: []string{title}})
}

func (r *Recorder) Circle(center Point, radius float64, st Style) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, Points: []Point{center}, Radius: radius, Style: st})
}

func (r *Recorder) Rect(origin Point, width, height float64, st Style) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, Points: []Point{origin}, Width: width, Height: height, Style: st})
}

func (r *Recorder) Line(from, to Point, st Style) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Points: []Point{from, to}, Style: st})
}

func (r *Recorder) Arc(center Point, radius, theta1, theta2 float64, st Style) {
	r.Ops = append(r.Ops, Op{Kind: OpArc, Points: []Point{center}, Radius: radius, Theta1: theta1, Theta2: theta2, Style: st})
}

func (r *Recorder) Marker(at Point, st Style) {
	r.Ops = append(r.Ops, Op{Kind: OpMarker, Points: []Point{at}, Style: st})
}

func (r *Recorder) Polygon(points []Point, st Style) {
	pts := make([]Point, len(points))
	copy(pts, points)
	r.Ops = append(r.Ops, Op{Kind: OpPolygon, Points: pts, Style: st})
}

func (r *Recorder) Text(at Point, lines []string, st TextStyle) {
	ls := make([]string, len(lines))
	copy(ls, lines)
	r.Ops = append(r.Ops, Op{Kind: OpText, Points: []Point{at}, Lines: ls, TextStyle: st})
}

func (r *Recorder) Legend(entries []LegendEntry) {
	es := make([]LegendEntry, len(entries))
	copy(es, entries)
	r.Ops = append(r.Ops, Op{Kind: OpLegend, Legend: es})
}

func (r *Recorder) ColorBar(bar ColorBar) {
	b := bar
	b.Stops = append([]ColorStop(nil), bar.Stops...)
	r.Ops = append(r.Ops, Op{Kind: OpColorBar, Bar: &b})
}

// Count returns how many ops of kind were recorded
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the recorded ops of kind in order
func (r *Recorder) Filter(kind OpKind) []Op {
	var ops []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			ops = append(ops, op)
		}
	}
	return ops
}

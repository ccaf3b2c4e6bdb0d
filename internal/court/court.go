package court

import (
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/canvas"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
)

// Court dimensions in court units (0.1 ft), basket centre at the origin
const (
	HoopRadius       = 7.5
	BackboardY       = -7.5
	BackboardHalf    = 30.0
	BaselineY        = -47.5
	PaintOuterWidth  = 160.0
	PaintInnerWidth  = 120.0
	PaintHeight      = 190.0
	FreeThrowY       = 142.5
	FreeThrowRadius  = 60.0
	RestrictedRadius = 40.0
	CornerThreeX     = 220.0
	CornerThreeLen   = 140.0 // measured from the baseline (y=-47.5), so the segment ends at y=92.5
	ThreePointRadius = models.ThreePointRadius
	ThreeArcStart    = 22.0
	ThreeArcEnd      = 158.0
	HalfCourtY       = 422.5
	CenterOuter      = 60.0
	CenterInner      = 20.0
	CourtHalfWidth   = 250.0
	CourtLength      = 470.0
)

// Bounds of the drawn half court
const (
	MinX = -CourtHalfWidth
	MaxX = CourtHalfWidth
	MinY = BaselineY
	MaxY = HalfCourtY
)

// Shape is the kind of primitive an Element describes
type Shape string

const (
	ShapeCircle Shape = "circle"
	ShapeRect   Shape = "rect"
	ShapeLine   Shape = "line"
	ShapeArc    Shape = "arc"
)

// Element is one named court primitive
type Element struct {
	Name   string
	Shape  Shape
	Center canvas.Point // circle, arc
	Radius float64      // circle, arc
	Theta1 float64      // arc
	Theta2 float64      // arc
	Origin canvas.Point // rect lower-left corner
	Width  float64      // rect
	Height float64      // rect
	From   canvas.Point // line
	To     canvas.Point // line
	Style  canvas.Style
}

// Style controls how the court lines are drawn
type Style struct {
	Color      string
	LineWidth  float64
	OuterLines bool
}

// DefaultStyle matches the chart backdrop
var DefaultStyle = Style{Color: "black", LineWidth: 1}

// Diagram is the full set of court primitives for a style
type Diagram struct {
	Elements []Element
}

// New builds the court diagram. The result depends only on style.
func New(style Style) Diagram {
	if style.Color == "" {
		style.Color = DefaultStyle.Color
	}
	if style.LineWidth <= 0 {
		style.LineWidth = DefaultStyle.LineWidth
	}

	line := canvas.Style{Stroke: style.Color, Width: style.LineWidth}
	dashed := line
	dashed.Dashed = true

	elements := []Element{
		{Name: "hoop", Shape: ShapeCircle, Center: canvas.Point{}, Radius: HoopRadius, Style: line},
		{Name: "backboard", Shape: ShapeLine,
			From: canvas.Point{X: -BackboardHalf, Y: BackboardY}, To: canvas.Point{X: BackboardHalf, Y: BackboardY}, Style: line},
		{Name: "paint_outer", Shape: ShapeRect,
			Origin: canvas.Point{X: -PaintOuterWidth / 2, Y: BaselineY}, Width: PaintOuterWidth, Height: PaintHeight, Style: line},
		{Name: "paint_inner", Shape: ShapeRect,
			Origin: canvas.Point{X: -PaintInnerWidth / 2, Y: BaselineY}, Width: PaintInnerWidth, Height: PaintHeight, Style: line},
		{Name: "free_throw_top", Shape: ShapeArc,
			Center: canvas.Point{Y: FreeThrowY}, Radius: FreeThrowRadius, Theta1: 0, Theta2: 180, Style: line},
		{Name: "free_throw_bottom", Shape: ShapeArc,
			Center: canvas.Point{Y: FreeThrowY}, Radius: FreeThrowRadius, Theta1: 180, Theta2: 360, Style: dashed},
		{Name: "restricted_area", Shape: ShapeArc,
			Center: canvas.Point{}, Radius: RestrictedRadius, Theta1: 0, Theta2: 180, Style: line},
		{Name: "corner_three_left", Shape: ShapeLine,
			From: canvas.Point{X: -CornerThreeX, Y: BaselineY}, To: canvas.Point{X: -CornerThreeX, Y: BaselineY + CornerThreeLen}, Style: line},
		{Name: "corner_three_right", Shape: ShapeLine,
			From: canvas.Point{X: CornerThreeX, Y: BaselineY}, To: canvas.Point{X: CornerThreeX, Y: BaselineY + CornerThreeLen}, Style: line},
		{Name: "three_point_arc", Shape: ShapeArc,
			Center: canvas.Point{}, Radius: ThreePointRadius, Theta1: ThreeArcStart, Theta2: ThreeArcEnd, Style: line},
		{Name: "center_outer", Shape: ShapeArc,
			Center: canvas.Point{Y: HalfCourtY}, Radius: CenterOuter, Theta1: 180, Theta2: 360, Style: line},
		{Name: "center_inner", Shape: ShapeArc,
			Center: canvas.Point{Y: HalfCourtY}, Radius: CenterInner, Theta1: 180, Theta2: 360, Style: line},
	}

	if style.OuterLines {
		elements = append(elements, Element{Name: "outer_lines", Shape: ShapeRect,
			Origin: canvas.Point{X: MinX, Y: BaselineY}, Width: 2 * CourtHalfWidth, Height: CourtLength, Style: line})
	}

	return Diagram{Elements: elements}
}

// Draw renders every element onto surface
func (d Diagram) Draw(surface canvas.Surface) {
	for _, e := range d.Elements {
		switch e.Shape {
		case ShapeCircle:
			surface.Circle(e.Center, e.Radius, e.Style)
		case ShapeRect:
			surface.Rect(e.Origin, e.Width, e.Height, e.Style)
		case ShapeLine:
			surface.Line(e.From, e.To, e.Style)
		case ShapeArc:
			surface.Arc(e.Center, e.Radius, e.Theta1, e.Theta2, e.Style)
		}
	}
}

// Element looks up a primitive by name
func (d Diagram) Element(name string) (Element, bool) {
	for _, e := range d.Elements {
		if e.Name == name {
			return e, true
		}
	}
	return Element{}, false
}

// Draw draws the court onto target and returns it.
// A nil target gets a fresh in-memory recorder.
func Draw(target canvas.Surface, style Style) canvas.Surface {
	if target == nil {
		target = canvas.NewRecorder()
	}
	New(style).Draw(target)
	return target
}

// InBounds reports whether p lies on the drawn half court
func InBounds(p canvas.Point) bool {
	return p.X >= MinX && p.X <= MaxX && p.Y >= MinY && p.Y <= MaxY
}

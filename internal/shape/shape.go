// Package shape defines the records a drawing is made of: the four shape
// variants, measurement annotations and the document holding both.
//
// Shape is a closed set. Code that needs per-variant behaviour switches on
// the concrete type and must handle *Line, *Rect, *Circle and *Triangle.
package shape

import (
	"github.com/example/drafter/internal/geom"
)

// Kind tags a shape variant on the wire and in listings.
type Kind string

const (
	KindLine     Kind = "line"
	KindRect     Kind = "rect"
	KindCircle   Kind = "circle"
	KindTriangle Kind = "triangle"
)

// TriangleSides is the fixed vertex count of a Triangle.
const TriangleSides = 3

// Shape is implemented only by *Line, *Rect, *Circle and *Triangle.
type Shape interface {
	Kind() Kind
	// Common exposes the fields every variant carries.
	Common() *Base
	// Position is the anchor moved by a drag: the first endpoint of a line,
	// the corner of a rect, the centre of a circle or triangle.
	Position() geom.Point
	// MoveTo places the anchor at p, keeping every other field.
	MoveTo(p geom.Point)

	clone() Shape
}

// Base holds the fields shared by all variants.
type Base struct {
	ID          string  `json:"id"`
	StrokeColor string  `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"`
	Draggable   bool    `json:"draggable"`
}

// Common returns b itself so embedding types satisfy Shape.
func (b *Base) Common() *Base { return b }

// Transform is the rotation and scale state of boxed variants. Scale is
// only ever stored as (1, 1); a resize bakes it into the geometry.
type Transform struct {
	Rotation float64 `json:"rotation"`
	ScaleX   float64 `json:"scaleX"`
	ScaleY   float64 `json:"scaleY"`
}

// UnitTransform is the identity transform given to new shapes.
func UnitTransform() Transform { return Transform{ScaleX: 1, ScaleY: 1} }

// Line is a straight segment.
type Line struct {
	Base
	Points [4]float64 `json:"points"`
}

func (l *Line) Kind() Kind { return KindLine }

func (l *Line) Position() geom.Point { return geom.Pt(l.Points[0], l.Points[1]) }

// MoveTo shifts both endpoints by the distance the first endpoint travels.
func (l *Line) MoveTo(p geom.Point) {
	dx, dy := p.X-l.Points[0], p.Y-l.Points[1]
	l.Points[0] += dx
	l.Points[1] += dy
	l.Points[2] += dx
	l.Points[3] += dy
}

// Start and End return the two endpoints.
func (l *Line) Start() geom.Point { return geom.Pt(l.Points[0], l.Points[1]) }
func (l *Line) End() geom.Point { return geom.Pt(l.Points[2], l.Points[3]) }

func (l *Line) clone() Shape { c := *l; return &c }

// Rect is an axis-aligned rectangle before rotation. Width and Height may be
// negative when drawn up or to the left.
type Rect struct {
	Base
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Transform
}

func (r *Rect) Kind() Kind { return KindRect }
func (r *Rect) Position() geom.Point { return geom.Pt(r.X, r.Y) }
func (r *Rect) MoveTo(p geom.Point) { r.X, r.Y = p.X, p.Y }
func (r *Rect) Box() geom.Box { return geom.Box{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height} }
func (r *Rect) clone() Shape { c := *r; return &c }

// Circle is centred on (X, Y).
type Circle struct {
	Base
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Transform
}

func (c *Circle) Kind() Kind { return KindCircle }
func (c *Circle) Position() geom.Point { return geom.Pt(c.X, c.Y) }
func (c *Circle) MoveTo(p geom.Point) { c.X, c.Y = p.X, p.Y }
func (c *Circle) clone() Shape { cp := *c; return &cp }

// Triangle is a regular triangle inscribed in a circle of Radius around
// (X, Y), pointing up before rotation.
type Triangle struct {
	Base
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Transform
}

func (t *Triangle) Kind() Kind { return KindTriangle }
func (t *Triangle) Position() geom.Point { return geom.Pt(t.X, t.Y) }
func (t *Triangle) MoveTo(p geom.Point) { t.X, t.Y = p.X, p.Y }
func (t *Triangle) Sides() int { return TriangleSides }
func (t *Triangle) clone() Shape { c := *t; return &c }

// Vertices returns the three corners after rotation.
func (t *Triangle) Vertices() []geom.Point {
	return geom.RegularPolygon(geom.Pt(t.X, t.Y), t.Radius, TriangleSides, t.Rotation)
}

// Clone returns a deep copy of s. A nil shape clones to nil.
func Clone(s Shape) Shape {
	if s == nil {
		return nil
	}
	return s.clone()
}

// Bounds returns the normalized box covering s, rotation included.
func Bounds(s Shape) geom.Box {
	switch v := s.(type) {
	case *Line:
		return geom.Bounds(v.Start(), v.End())
	case *Rect:
		b := v.Box()
		origin := geom.Pt(v.X, v.Y)
		corners := []geom.Point{
			origin,
			geom.Pt(b.X+b.Width, b.Y),
			geom.Pt(b.X+b.Width, b.Y+b.Height),
			geom.Pt(b.X, b.Y+b.Height),
		}
		for i, p := range corners {
			corners[i] = geom.Rotate(p, origin, v.Rotation)
		}
		return geom.Bounds(corners...)
	case *Circle:
		return geom.Box{X: v.X - v.Radius, Y: v.Y - v.Radius, Width: 2 * v.Radius, Height: 2 * v.Radius}
	case *Triangle:
		return geom.Bounds(v.Vertices()...)
	}
	return geom.Box{}
}

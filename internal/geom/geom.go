// Package geom holds the pure geometry used by the drawing surface. Nothing
// in here keeps state; identical inputs always give identical outputs.
package geom

import (
	"fmt"
	"math"
)

// MeasurementUnit is appended to every formatted distance.
const MeasurementUnit = "units"

// Point is a position in surface-local coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Box is an axis-aligned box anchored at (X, Y). Width and Height keep the
// sign of the drag that produced them.
type Box struct {
	X, Y          float64
	Width, Height float64
}

// Distance returns the Euclidean distance between (x1, y1) and (x2, y2).
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt((x2-x1)*(x2-x1) + (y2-y1)*(y2-y1))
}

// FormatMeasurement renders d with exactly two decimals and the unit suffix,
// for example "141.42 units".
func FormatMeasurement(d float64) string {
	return fmt.Sprintf("%.2f %s", d, MeasurementUnit)
}

// DeriveRect returns the box spanned from anchor to current. The extents are
// not normalized, so dragging up or left yields negative sizes.
func DeriveRect(anchor, current Point) Box {
	return Box{
		X:      anchor.X,
		Y:      anchor.Y,
		Width:  current.X - anchor.X,
		Height: current.Y - anchor.Y,
	}
}

// DeriveRadius returns the distance from center to current.
func DeriveRadius(center, current Point) float64 {
	return Distance(center.X, center.Y, current.X, current.Y)
}

// Normalize returns the same area with non-negative extents.
func (b Box) Normalize() Box {
	if b.Width < 0 {
		b.X += b.Width
		b.Width = -b.Width
	}
	if b.Height < 0 {
		b.Y += b.Height
		b.Height = -b.Height
	}
	return b
}

// Contains reports whether p lies inside b, edges included. Negative extents
// are handled.
func (b Box) Contains(p Point) bool {
	n := b.Normalize()
	return p.X >= n.X && p.X <= n.X+n.Width && p.Y >= n.Y && p.Y <= n.Y+n.Height
}

// Center returns the midpoint of b.
func (b Box) Center() Point {
	return Point{b.X + b.Width/2, b.Y + b.Height/2}
}

// Bounds returns the smallest normalized box holding every point.
func Bounds(pts ...Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Box{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// SegmentDistance returns the shortest distance from p to the segment a-b.
func SegmentDistance(p, a, b Point) float64 {
	d := b.Sub(a)
	l2 := d.X*d.X + d.Y*d.Y
	if l2 == 0 {
		return Distance(p.X, p.Y, a.X, a.Y)
	}
	t := ((p.X-a.X)*d.X + (p.Y-a.Y)*d.Y) / l2
	t = math.Max(0, math.Min(1, t))
	proj := Point{a.X + t*d.X, a.Y + t*d.Y}
	return Distance(p.X, p.Y, proj.X, proj.Y)
}

// Rotate turns p about origin by degrees, clockwise in screen space (y down).
func Rotate(p, origin Point, degrees float64) Point {
	if degrees == 0 {
		return p
	}
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	v := p.Sub(origin)
	return Point{
		X: origin.X + v.X*cos - v.Y*sin,
		Y: origin.Y + v.X*sin + v.Y*cos,
	}
}

// RegularPolygon returns the vertices of a regular polygon with the given
// number of sides inscribed in a circle of radius r around c. The first
// vertex points straight up before rotation is applied.
func RegularPolygon(c Point, r float64, sides int, rotation float64) []Point {
	if sides < 3 {
		return nil
	}
	pts := make([]Point, sides)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(sides)
		p := Point{c.X + r*math.Sin(a), c.Y - r*math.Cos(a)}
		pts[i] = Rotate(p, c, rotation)
	}
	return pts
}

// PolygonContains reports whether p is inside the closed polygon using the
// even-odd rule.
func PolygonContains(poly []Point, p Point) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

package render

import (
	"math"

	"golang.org/x/image/vector"

	"github.com/example/drafter/internal/geom"
)

// All sub-paths added to one rasterizer pass wind the same way so that
// overlapping pieces merge instead of cancelling. Only the inner edge of a
// ring is wound backwards.

func polygon(r *vector.Rasterizer, pts []geom.Point) {
	if len(pts) < 3 {
		return
	}
	if signedArea(pts) < 0 {
		rev := make([]geom.Point, len(pts))
		for i, p := range pts {
			rev[len(pts)-1-i] = p
		}
		pts = rev
	}
	r.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		r.LineTo(float32(p.X), float32(p.Y))
	}
	r.ClosePath()
}

func signedArea(pts []geom.Point) float64 {
	a := 0.0
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

func circleSteps(radius float64) int {
	n := int(math.Ceil(2 * math.Pi * radius / 4))
	if n < 16 {
		return 16
	}
	if n > 256 {
		return 256
	}
	return n
}

func circlePoints(c geom.Point, radius float64) []geom.Point {
	n := circleSteps(radius)
	pts := make([]geom.Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geom.Pt(c.X+radius*math.Cos(a), c.Y+radius*math.Sin(a))
	}
	return pts
}

// dot fills a disc, used for round caps and joins.
func dot(r *vector.Rasterizer, c geom.Point, radius float64) {
	if radius <= 0 {
		return
	}
	polygon(r, circlePoints(c, radius))
}

// segment strokes a-b with the given width and round caps.
func segment(r *vector.Rasterizer, a, b geom.Point, width float64) {
	hw := width / 2
	dot(r, a, hw)
	dot(r, b, hw)
	d := b.Sub(a)
	l := math.Hypot(d.X, d.Y)
	if l == 0 {
		return
	}
	n := geom.Pt(-d.Y/l*hw, d.X/l*hw)
	polygon(r, []geom.Point{a.Sub(n), b.Sub(n), b.Add(n), a.Add(n)})
}

// outline strokes a closed polyline.
func outline(r *vector.Rasterizer, pts []geom.Point, width float64) {
	for i := range pts {
		segment(r, pts[i], pts[(i+1)%len(pts)], width)
	}
}

// ring strokes a circle as an annulus.
func ring(r *vector.Rasterizer, c geom.Point, radius, width float64) {
	outer := radius + width/2
	inner := radius - width/2
	polygon(r, circlePoints(c, outer))
	if inner <= 0 {
		return
	}
	pts := circlePoints(c, inner)
	r.MoveTo(float32(pts[len(pts)-1].X), float32(pts[len(pts)-1].Y))
	for i := len(pts) - 2; i >= 0; i-- {
		r.LineTo(float32(pts[i].X), float32(pts[i].Y))
	}
	r.ClosePath()
}

// dashed strokes a-b as alternating dash and gap runs of the given length.
func dashed(r *vector.Rasterizer, a, b geom.Point, width, dash, gap float64) {
	d := b.Sub(a)
	l := math.Hypot(d.X, d.Y)
	if l == 0 || dash <= 0 {
		segment(r, a, b, width)
		return
	}
	ux, uy := d.X/l, d.Y/l
	for s := 0.0; s < l; s += dash + gap {
		e := math.Min(s+dash, l)
		segment(r, geom.Pt(a.X+ux*s, a.Y+uy*s), geom.Pt(a.X+ux*e, a.Y+uy*e), width)
	}
}

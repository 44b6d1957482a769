package render

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/example/drafter/internal/board"
	"github.com/example/drafter/internal/geom"
	"github.com/example/drafter/internal/shape"
)

// Overlay element ids. Every one of them satisfies board.IsOverlayID.
const (
	HandleNW     = board.OverlayPrefix + "nw"
	HandleNE     = board.OverlayPrefix + "ne"
	HandleSE     = board.OverlayPrefix + "se"
	HandleSW     = board.OverlayPrefix + "sw"
	HandleRotate = board.OverlayPrefix + "rotate"
)

const (
	handleSize     = 8
	rotateDistance = 24
	// hitSlop widens thin strokes so they can be picked.
	hitSlop = 4
)

// Handle is one grab point of the transform overlay.
type Handle struct {
	ID     string
	Center geom.Point
}

// Rect returns the square drawn for h.
func (h Handle) Rect() image.Rectangle {
	x, y := int(math.Round(h.Center.X)), int(math.Round(h.Center.Y))
	return image.Rect(x-handleSize/2, y-handleSize/2, x+handleSize/2, y+handleSize/2)
}

// Frame is the box the overlay is drawn around: the axis-aligned bounds of
// the shape.
func Frame(s shape.Shape) geom.Box {
	return shape.Bounds(s)
}

// Handles returns the corner handles and the rotate handle for box b.
func Handles(b geom.Box) []Handle {
	b = b.Normalize()
	return []Handle{
		{HandleNW, geom.Pt(b.X, b.Y)},
		{HandleNE, geom.Pt(b.X+b.Width, b.Y)},
		{HandleSE, geom.Pt(b.X+b.Width, b.Y+b.Height)},
		{HandleSW, geom.Pt(b.X, b.Y+b.Height)},
		{HandleRotate, geom.Pt(b.X+b.Width/2, b.Y-rotateDistance)},
	}
}

func (c *Canvas) paintOverlay(s shape.Shape) {
	b := Frame(s)
	sel := image.NewUniform(c.theme.Selection)
	c.fill(c.theme.Selection, func(r *vector.Rasterizer) {
		corners := []geom.Point{
			geom.Pt(b.X, b.Y),
			geom.Pt(b.X+b.Width, b.Y),
			geom.Pt(b.X+b.Width, b.Y+b.Height),
			geom.Pt(b.X, b.Y+b.Height),
		}
		for i := range corners {
			dashed(r, corners[i], corners[(i+1)%4], 1, 4, 4)
		}
		top := geom.Pt(b.X+b.Width/2, b.Y)
		segment(r, top, geom.Pt(top.X, top.Y-rotateDistance), 1)
	})
	fill := image.NewUniform(c.theme.Handle)
	for _, h := range Handles(b) {
		rect := h.Rect()
		draw.Draw(c.img, rect, sel, image.Point{}, draw.Src)
		draw.Draw(c.img, rect.Inset(1), fill, image.Point{}, draw.Src)
	}
}

// PickAt resolves p against the last painted frame.
func (c *Canvas) PickAt(p geom.Point) string { return Pick(c.frame, p) }

// Pick resolves p against f. Overlay handles of the selected shape win, then
// shapes from the topmost (last appended) down.
func Pick(f board.Frame, p geom.Point) string {
	if f.Selected != "" {
		if _, s := f.Document.Find(f.Selected); s != nil {
			for _, h := range Handles(Frame(s)) {
				if geom.Distance(p.X, p.Y, h.Center.X, h.Center.Y) <= handleSize {
					return h.ID
				}
			}
		}
	}
	shapes := f.Document.Shapes
	for i := len(shapes) - 1; i >= 0; i-- {
		if Hit(shapes[i], p) {
			return shapes[i].Common().ID
		}
	}
	return ""
}

// Hit reports whether p touches s: its stroke for a line, and the stroke or
// the enclosed area for the closed shapes.
func Hit(s shape.Shape, p geom.Point) bool {
	tol := s.Common().StrokeWidth/2 + hitSlop
	switch v := s.(type) {
	case *shape.Line:
		return geom.SegmentDistance(p, v.Start(), v.End()) <= tol
	case *shape.Rect:
		pts := rectCorners(v)
		return geom.PolygonContains(pts, p) || nearOutline(pts, p, tol)
	case *shape.Circle:
		return geom.Distance(p.X, p.Y, v.X, v.Y) <= v.Radius+tol
	case *shape.Triangle:
		pts := v.Vertices()
		return geom.PolygonContains(pts, p) || nearOutline(pts, p, tol)
	}
	return false
}

func nearOutline(pts []geom.Point, p geom.Point, tol float64) bool {
	for i := range pts {
		if geom.SegmentDistance(p, pts[i], pts[(i+1)%len(pts)]) <= tol {
			return true
		}
	}
	return false
}

// Resize returns the frame produced by dragging corner handle id by delta,
// keeping the opposite corner fixed. The result is normalized.
func Resize(start geom.Box, id string, delta geom.Point) geom.Box {
	b := start.Normalize()
	x0, y0, x1, y1 := b.X, b.Y, b.X+b.Width, b.Y+b.Height
	switch id {
	case HandleNW:
		x0, y0 = x0+delta.X, y0+delta.Y
	case HandleNE:
		x1, y0 = x1+delta.X, y0+delta.Y
	case HandleSE:
		x1, y1 = x1+delta.X, y1+delta.Y
	case HandleSW:
		x0, y1 = x0+delta.X, y1+delta.Y
	}
	return geom.Bounds(geom.Pt(x0, y0), geom.Pt(x1, y1))
}

// RotationAt returns the rotation, in degrees clockwise from straight up,
// of p around the centre of frame b.
func RotationAt(b geom.Box, p geom.Point) float64 {
	c := b.Normalize().Center()
	return math.Atan2(p.X-c.X, c.Y-p.Y) * 180 / math.Pi
}

// TransformArgs converts an overlay gesture into the arguments of
// board.Session.CommitTransform. from and to are frames as returned by
// Frame and Resize; spin is the rotation added by the gesture in degrees.
func TransformArgs(s shape.Shape, from, to geom.Box, spin float64) (x, y, w, h, rotation float64) {
	from = from.Normalize()
	to = to.Normalize()
	sx, sy := 1.0, 1.0
	if from.Width > 0 {
		sx = to.Width / from.Width
	}
	if from.Height > 0 {
		sy = to.Height / from.Height
	}
	mapX := func(v float64) float64 { return to.X + (v-from.X)*sx }
	mapY := func(v float64) float64 { return to.Y + (v-from.Y)*sy }

	switch v := s.(type) {
	case *shape.Line:
		return to.X, to.Y, to.Width, to.Height, spin
	case *shape.Rect:
		box := v.Box()
		if v.Rotation == 0 {
			box = box.Normalize()
		}
		return mapX(box.X), mapY(box.Y), box.Width * sx, box.Height * sy, v.Rotation + spin
	case *shape.Circle:
		return mapX(v.X), mapY(v.Y), 2 * v.Radius * sx, 2 * v.Radius * sy, v.Rotation + spin
	case *shape.Triangle:
		return mapX(v.X), mapY(v.Y), 2 * v.Radius * sx, 2 * v.Radius * sy, v.Rotation + spin
	}
	return from.X, from.Y, from.Width, from.Height, spin
}

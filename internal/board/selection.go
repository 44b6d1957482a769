package board

import (
	"math"
	"strings"

	"github.com/example/drafter/internal/geom"
	"github.com/example/drafter/internal/shape"
)

// MinTransformSize is the smallest width or height a transform may leave.
const MinTransformSize = 5

// OverlayPrefix marks ids that belong to the transform overlay rather than
// to a shape.
const OverlayPrefix = "overlay:"

// IsOverlayID reports whether id names part of the transform overlay.
func IsOverlayID(id string) bool { return strings.HasPrefix(id, OverlayPrefix) }

// Pick selects the shape named by id. The empty id, or one that names no
// shape, clears the selection. Overlay ids leave it alone. Outside the
// select tool nothing happens and Pick returns false.
func (s *Session) Pick(id string) bool {
	if s.tool != ToolSelect || IsOverlayID(id) {
		return false
	}
	if _, sh := s.doc.Find(id); sh == nil {
		s.selected = ""
		return true
	}
	s.selected = id
	return true
}

// SelectedShape returns a copy of the selected shape, or nil.
func (s *Session) SelectedShape() shape.Shape {
	if s.selected == "" {
		return nil
	}
	_, sh := s.doc.Find(s.selected)
	return shape.Clone(sh)
}

// CommitDrag moves the shape named id so its anchor lands on (x, y). A line
// keeps its length and direction. It reports whether a shape changed.
func (s *Session) CommitDrag(id string, x, y float64) bool {
	if s.tool != ToolSelect {
		return false
	}
	_, sh := s.doc.Find(id)
	if sh == nil {
		return false
	}
	sh.MoveTo(geom.Pt(x, y))
	return true
}

// CommitTransform applies a finished resize or rotate gesture. A proposal
// that Fits rejects is dropped and the shape keeps its prior geometry.
// Scale is always reset to 1.
func (s *Session) CommitTransform(id string, x, y, w, h, rotation float64) bool {
	if s.tool != ToolSelect {
		return false
	}
	_, sh := s.doc.Find(id)
	if sh == nil || !Fits(sh, w, h) {
		return false
	}
	switch v := sh.(type) {
	case *shape.Rect:
		v.X, v.Y, v.Width, v.Height = x, y, w, h
		v.Transform = shape.Transform{Rotation: rotation, ScaleX: 1, ScaleY: 1}
	case *shape.Circle:
		v.X, v.Y, v.Radius = x, y, (w+h)/4
		v.Transform = shape.Transform{Rotation: rotation, ScaleX: 1, ScaleY: 1}
	case *shape.Triangle:
		v.X, v.Y, v.Radius = x, y, (w+h)/4
		v.Transform = shape.Transform{Rotation: rotation, ScaleX: 1, ScaleY: 1}
	case *shape.Line:
		v.Points = fitLine(v.Points, geom.Box{X: x, Y: y, Width: w, Height: h}, rotation)
	}
	return true
}

// fitLine maps the endpoints from their bounding box into box and then
// rotates them about the box origin. An axis with no extent keeps a factor
// of one.
func fitLine(pts [4]float64, box geom.Box, rotation float64) [4]float64 {
	old := geom.Bounds(geom.Pt(pts[0], pts[1]), geom.Pt(pts[2], pts[3]))
	sx, sy := 1.0, 1.0
	if old.Width > 0 {
		sx = box.Width / old.Width
	}
	if old.Height > 0 {
		sy = box.Height / old.Height
	}
	origin := geom.Pt(box.X, box.Y)
	var out [4]float64
	for i := 0; i < 4; i += 2 {
		p := geom.Pt(box.X+(pts[i]-old.X)*sx, box.Y+(pts[i+1]-old.Y)*sy)
		p = geom.Rotate(p, origin, rotation)
		out[i], out[i+1] = p.X, p.Y
	}
	return out
}

// Fits reports whether a w by h box is large enough for sh. Both extents
// must reach MinTransformSize, except for a line, whose box may be flat on
// one axis as long as the other reaches it.
func Fits(sh shape.Shape, w, h float64) bool {
	if _, ok := sh.(*shape.Line); ok {
		return w >= 0 && h >= 0 && math.Max(w, h) >= MinTransformSize
	}
	return w >= MinTransformSize && h >= MinTransformSize
}

// ProposeBox is the guard adapters apply on every step of a resize: it
// returns proposed when it Fits sh and old otherwise.
func ProposeBox(sh shape.Shape, old, proposed geom.Box) geom.Box {
	if !Fits(sh, proposed.Width, proposed.Height) {
		return old
	}
	return proposed
}

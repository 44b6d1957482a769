package board

import (
	"github.com/example/drafter/internal/geom"
	"github.com/example/drafter/internal/shape"
)

// Frame is a self-contained snapshot of what should be on screen. It shares
// no memory with the Session it came from.
type Frame struct {
	Document              shape.Document
	Provisional           shape.Shape
	ProvisionalAnnotation *shape.Annotation
	Selected              string
	ShowAnnotations       bool
	Tool                  Tool
	StrokeColor           string
	StrokeWidth           int
}

// Surface is the render and interaction adapter a Session talks to.
type Surface interface {
	// Paint draws f.
	Paint(f Frame)
	// PickAt returns the id of the topmost element under p, an overlay id
	// for a transform handle, or "" for the background.
	PickAt(p geom.Point) string
}

// Frame returns a snapshot for painting.
func (s *Session) Frame() Frame {
	prov, an := s.Provisional()
	return Frame{
		Document:              s.doc.Clone(),
		Provisional:           prov,
		ProvisionalAnnotation: an,
		Selected:              s.selected,
		ShowAnnotations:       s.showAnnotations,
		Tool:                  s.tool,
		StrokeColor:           s.strokeColor,
		StrokeWidth:           s.strokeWidth,
	}
}

// Paint hands the current frame to the attached surface, if any.
func (s *Session) Paint() {
	if s.surface != nil {
		s.surface.Paint(s.Frame())
	}
}

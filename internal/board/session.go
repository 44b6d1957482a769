// Package board is the drawing session: the pointer-driven state machine
// that builds shapes and annotations, and the selection controller that
// moves and resizes them under the select tool.
//
// A Session has no locks. Drive it from one goroutine.
package board

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/drafter/internal/geom"
	"github.com/example/drafter/internal/shape"
)

const (
	DefaultStrokeColor = "#000000"
	DefaultStrokeWidth = 2
	MinStrokeWidth     = 1
	MaxStrokeWidth     = 20
)

var (
	// ErrToolLocked is returned by SetTool while a shape is being drawn.
	ErrToolLocked = errors.New("tool cannot change while drawing")
	// ErrStrokeWidth is returned for widths outside MinStrokeWidth..MaxStrokeWidth.
	ErrStrokeWidth = fmt.Errorf("stroke width must be between %d and %d", MinStrokeWidth, MaxStrokeWidth)
)

// Session holds the document being edited and everything transient about
// the edit: the tool, stroke settings, the entity in progress and the
// selection.
type Session struct {
	doc shape.Document

	tool            Tool
	strokeColor     string
	strokeWidth     int
	showAnnotations bool

	drawing       bool
	provisional   shape.Shape
	provisionalAn *shape.Annotation
	selected      string

	newID   func() string
	surface Surface
}

// Option configures a Session.
type Option func(*Session)

// WithIDGenerator replaces uuid.NewString as the id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

// WithDocument starts the session from doc instead of an empty drawing.
func WithDocument(doc shape.Document) Option {
	return func(s *Session) { s.doc = doc.Clone() }
}

// NewSession returns an idle session with the line tool active.
func NewSession(opts ...Option) *Session {
	s := &Session{
		tool:            ToolLine,
		strokeColor:     DefaultStrokeColor,
		strokeWidth:     DefaultStrokeWidth,
		showAnnotations: true,
		newID:           uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Attach sets or replaces the surface used for picking.
func (s *Session) Attach(sf Surface) { s.surface = sf }

func (s *Session) Tool() Tool { return s.tool }
func (s *Session) StrokeColor() string { return s.strokeColor }
func (s *Session) StrokeWidth() int { return s.strokeWidth }
func (s *Session) Drawing() bool { return s.drawing }
func (s *Session) Selected() string { return s.selected }
func (s *Session) ShowAnnotations() bool { return s.showAnnotations }
func (s *Session) Document() shape.Document { return s.doc.Clone() }

// Provisional returns copies of the entity in progress. At most one of the
// results is non-nil and both are nil while idle.
func (s *Session) Provisional() (shape.Shape, *shape.Annotation) {
	var an *shape.Annotation
	if s.provisionalAn != nil {
		cp := *s.provisionalAn
		an = &cp
	}
	return shape.Clone(s.provisional), an
}

// SetTool activates t. It fails with ErrToolLocked while drawing. A drawing
// tool drops the current selection.
func (s *Session) SetTool(t Tool) error {
	if !t.valid() {
		return fmt.Errorf("unknown tool %q", string(t))
	}
	if s.drawing {
		return ErrToolLocked
	}
	s.tool = t
	if t.Drawing() {
		s.selected = ""
	}
	return nil
}

// SetStrokeColor sets the colour given to new entities.
func (s *Session) SetStrokeColor(c string) error {
	if _, err := ParseColor(c); err != nil {
		return err
	}
	s.strokeColor = c
	return nil
}

// SetStrokeWidth sets the width given to new entities.
func (s *Session) SetStrokeWidth(w int) error {
	if w < MinStrokeWidth || w > MaxStrokeWidth {
		return ErrStrokeWidth
	}
	s.strokeWidth = w
	return nil
}

// ToggleAnnotations flips annotation visibility and returns the new state.
func (s *Session) ToggleAnnotations() bool {
	s.showAnnotations = !s.showAnnotations
	return s.showAnnotations
}

// SetShowAnnotations sets annotation visibility.
func (s *Session) SetShowAnnotations(v bool) { s.showAnnotations = v }

// Clear empties the document, drops the selection and abandons any entity
// in progress.
func (s *Session) Clear() {
	s.doc = shape.Document{}
	s.selected = ""
	s.resetProvisional()
}

// Replace swaps in a loaded document. Transient state is reset the same way
// Clear resets it.
func (s *Session) Replace(doc shape.Document) {
	s.Clear()
	s.doc = doc.Clone()
}

func (s *Session) resetProvisional() {
	s.drawing = false
	s.provisional = nil
	s.provisionalAn = nil
}

func (s *Session) base() shape.Base {
	return shape.Base{
		ID:          s.newID(),
		StrokeColor: s.strokeColor,
		StrokeWidth: float64(s.strokeWidth),
	}
}

// PointerDown starts a new entity at p under a drawing tool. Under the
// select tool the press is resolved through the attached surface and
// handed to Pick. A press while already drawing is ignored.
func (s *Session) PointerDown(p geom.Point) {
	if s.drawing {
		return
	}
	if s.tool == ToolSelect {
		if s.surface != nil {
			s.Pick(s.surface.PickAt(p))
		}
		return
	}
	switch s.tool {
	case ToolLine:
		s.provisional = &shape.Line{Base: s.base(), Points: [4]float64{p.X, p.Y, p.X, p.Y}}
	case ToolRect:
		s.provisional = &shape.Rect{Base: s.base(), X: p.X, Y: p.Y, Transform: shape.UnitTransform()}
	case ToolCircle:
		s.provisional = &shape.Circle{Base: s.base(), X: p.X, Y: p.Y, Transform: shape.UnitTransform()}
	case ToolTriangle:
		s.provisional = &shape.Triangle{Base: s.base(), X: p.X, Y: p.Y, Transform: shape.UnitTransform()}
	case ToolAnnotate:
		b := s.base()
		s.provisionalAn = &shape.Annotation{
			ID:          b.ID,
			Points:      [4]float64{p.X, p.Y, p.X, p.Y},
			StrokeColor: b.StrokeColor,
			StrokeWidth: b.StrokeWidth,
		}
	default:
		return
	}
	s.drawing = true
}

// PointerMove recomputes the entity in progress from p.
func (s *Session) PointerMove(p geom.Point) {
	if !s.drawing {
		return
	}
	if s.provisionalAn != nil {
		s.provisionalAn.Points[2], s.provisionalAn.Points[3] = p.X, p.Y
		return
	}
	switch v := s.provisional.(type) {
	case *shape.Line:
		v.Points[2], v.Points[3] = p.X, p.Y
	case *shape.Rect:
		b := geom.DeriveRect(geom.Pt(v.X, v.Y), p)
		v.Width, v.Height = b.Width, b.Height
	case *shape.Circle:
		v.Radius = geom.DeriveRadius(geom.Pt(v.X, v.Y), p)
	case *shape.Triangle:
		v.Radius = geom.DeriveRadius(geom.Pt(v.X, v.Y), p)
	}
}

// PointerUp appends the entity in progress to the document. Annotations get
// their measurement text here.
func (s *Session) PointerUp() {
	if !s.drawing {
		return
	}
	if s.provisionalAn != nil {
		an := *s.provisionalAn
		an.Finalize()
		s.doc.Annotations = append(s.doc.Annotations, an)
	}
	if s.provisional != nil {
		s.provisional.Common().Draggable = true
		s.doc.Shapes = append(s.doc.Shapes, s.provisional)
	}
	s.resetProvisional()
}

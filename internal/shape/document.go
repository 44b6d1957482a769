package shape

import (
	"github.com/example/drafter/internal/geom"
)

// Annotation is a measured segment. Text is derived from Points by Finalize
// and is never entered by the user.
type Annotation struct {
	ID          string     `json:"id"`
	Points      [4]float64 `json:"points"`
	Text        string     `json:"text"`
	StrokeColor string     `json:"strokeColor"`
	StrokeWidth float64    `json:"strokeWidth"`
}

// Length is the distance between the two endpoints.
func (a *Annotation) Length() float64 {
	return geom.Distance(a.Points[0], a.Points[1], a.Points[2], a.Points[3])
}

// Finalize recomputes Text from the current endpoints.
func (a *Annotation) Finalize() {
	a.Text = geom.FormatMeasurement(a.Length())
}

// LabelPosition is where the measurement text is drawn: slightly up and left
// of the segment midpoint.
func (a *Annotation) LabelPosition() geom.Point {
	return geom.Pt((a.Points[0]+a.Points[2])/2-20, (a.Points[1]+a.Points[3])/2-10)
}

// Document is the persisted drawing. Order is append-only and decides paint
// order: later entries are drawn on top. Empty sequences are nil.
type Document struct {
	Shapes      List
	Annotations []Annotation
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	var out Document
	if len(d.Shapes) > 0 {
		out.Shapes = make(List, len(d.Shapes))
		for i, s := range d.Shapes {
			out.Shapes[i] = Clone(s)
		}
	}
	if len(d.Annotations) > 0 {
		out.Annotations = make([]Annotation, len(d.Annotations))
		copy(out.Annotations, d.Annotations)
	}
	return out
}

// Empty reports whether d holds nothing at all.
func (d Document) Empty() bool {
	return len(d.Shapes) == 0 && len(d.Annotations) == 0
}

// Find returns the index and shape with the given id, or -1 and nil.
func (d Document) Find(id string) (int, Shape) {
	for i, s := range d.Shapes {
		if s.Common().ID == id {
			return i, s
		}
	}
	return -1, nil
}

package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/drafter/internal/geom"
	"github.com/example/drafter/internal/shape"
)

type fakeSurface struct {
	hits   map[geom.Point]string
	frames []Frame
}

func (f *fakeSurface) Paint(fr Frame) { f.frames = append(f.frames, fr) }
func (f *fakeSurface) PickAt(p geom.Point) string { return f.hits[p] }

func selectSession(t *testing.T) *Session {
	t.Helper()
	// ids are handed out in drawing order: rect id-1, circle id-2,
	// line id-3, triangle id-4
	s := newTestSession()
	draw(t, s, ToolRect, geom.Pt(0, 0), geom.Pt(20, 10))
	draw(t, s, ToolCircle, geom.Pt(50, 50), geom.Pt(53, 54))
	draw(t, s, ToolLine, geom.Pt(10, 10), geom.Pt(30, 40))
	draw(t, s, ToolTriangle, geom.Pt(80, 80), geom.Pt(80, 90))
	require.NoError(t, s.SetTool(ToolSelect))
	return s
}

func TestPick(t *testing.T) {
	s := selectSession(t)
	assert.True(t, s.Pick("id-2"))
	assert.Equal(t, "id-2", s.Selected())
	assert.Equal(t, shape.KindCircle, s.SelectedShape().Kind())

	assert.False(t, s.Pick(OverlayPrefix+"handle-se"))
	assert.Equal(t, "id-2", s.Selected())

	assert.True(t, s.Pick("missing"))
	assert.Empty(t, s.Selected())

	s.Pick("id-1")
	assert.True(t, s.Pick(""))
	assert.Empty(t, s.Selected())
	assert.Nil(t, s.SelectedShape())
}

func TestPickOnlyUnderSelect(t *testing.T) {
	s := selectSession(t)
	require.NoError(t, s.SetTool(ToolLine))
	assert.False(t, s.Pick("id-1"))
	assert.False(t, s.CommitDrag("id-1", 1, 1))
	assert.False(t, s.CommitTransform("id-1", 0, 0, 50, 50, 0))
	assert.Empty(t, s.Selected())
}

func TestDrawingToolClearsSelection(t *testing.T) {
	s := selectSession(t)
	s.Pick("id-1")
	require.NoError(t, s.SetTool(ToolSelect))
	assert.Equal(t, "id-1", s.Selected())
	require.NoError(t, s.SetTool(ToolCircle))
	assert.Empty(t, s.Selected())
}

func TestPointerDownUnderSelectUsesSurface(t *testing.T) {
	sf := &fakeSurface{hits: map[geom.Point]string{
		geom.Pt(5, 5): "id-1",
		geom.Pt(9, 9): OverlayPrefix + "rotate",
	}}
	s := selectSession(t)
	s.Attach(sf)

	s.PointerDown(geom.Pt(5, 5))
	assert.Equal(t, "id-1", s.Selected())
	assert.False(t, s.Drawing())

	s.PointerDown(geom.Pt(9, 9))
	assert.Equal(t, "id-1", s.Selected())

	s.PointerDown(geom.Pt(500, 500))
	assert.Empty(t, s.Selected())
	assert.Len(t, s.Document().Shapes, 4)

	s.Paint()
	require.Len(t, sf.frames, 1)
	assert.Len(t, sf.frames[0].Document.Shapes, 4)
}

func TestCommitDrag(t *testing.T) {
	s := selectSession(t)
	require.True(t, s.CommitDrag("id-1", 7, 8))
	r := s.Document().Shapes[0].(*shape.Rect)
	assert.Equal(t, geom.Box{X: 7, Y: 8, Width: 20, Height: 10}, r.Box())

	require.True(t, s.CommitDrag("id-3", 0, 0))
	l := s.Document().Shapes[2].(*shape.Line)
	assert.Equal(t, [4]float64{0, 0, 20, 30}, l.Points)

	before := s.Document()
	assert.False(t, s.CommitDrag("nope", 1, 1))
	assert.Equal(t, before, s.Document())
}

func TestResizeGuard(t *testing.T) {
	for _, id := range []string{"id-1", "id-2", "id-3", "id-4"} {
		s := selectSession(t)
		before := s.Document()
		assert.False(t, s.CommitTransform(id, 1, 1, 4.99, 100, 0), id)
		assert.False(t, s.CommitTransform(id, 1, 1, 100, 4, 0), id)
		assert.False(t, s.CommitTransform(id, 1, 1, -50, 50, 0), id)
		assert.Equal(t, before, s.Document(), id)

		assert.True(t, s.CommitTransform(id, 1, 1, 5, 5, 0), id)
		assert.NotEqual(t, before, s.Document(), id)
	}
}

func TestCommitTransformBakesScale(t *testing.T) {
	s := selectSession(t)
	require.True(t, s.CommitTransform("id-1", 2, 3, 40, 30, 45))
	require.True(t, s.CommitTransform("id-1", 2, 3, 80, 60, 45))
	r := s.Document().Shapes[0].(*shape.Rect)
	assert.Equal(t, geom.Box{X: 2, Y: 3, Width: 80, Height: 60}, r.Box())
	assert.Equal(t, shape.Transform{Rotation: 45, ScaleX: 1, ScaleY: 1}, r.Transform)

	require.True(t, s.CommitTransform("id-2", 50, 50, 20, 10, 30))
	c := s.Document().Shapes[1].(*shape.Circle)
	assert.Equal(t, 7.5, c.Radius)
	assert.Equal(t, 30.0, c.Rotation)
	assert.Equal(t, 1.0, c.ScaleX)

	require.True(t, s.CommitTransform("id-4", 80, 80, 20, 20, 0))
	assert.Equal(t, 10.0, s.Document().Shapes[3].(*shape.Triangle).Radius)

	assert.False(t, s.CommitTransform("nope", 0, 0, 50, 50, 0))
}

func TestCommitTransformLine(t *testing.T) {
	s := selectSession(t)
	// endpoints (10,10)-(30,40): box 20x30 at (10,10)
	require.True(t, s.CommitTransform("id-3", 0, 0, 40, 60, 0))
	l := s.Document().Shapes[2].(*shape.Line)
	assert.Equal(t, [4]float64{0, 0, 40, 60}, l.Points)

	require.True(t, s.CommitTransform("id-3", 0, 0, 40, 60, 90))
	l = s.Document().Shapes[2].(*shape.Line)
	assert.InDelta(t, 0, l.Points[0], 1e-9)
	assert.InDelta(t, 0, l.Points[1], 1e-9)
	assert.InDelta(t, -60, l.Points[2], 1e-9)
	assert.InDelta(t, 40, l.Points[3], 1e-9)
}

func TestCommitTransformFlatLine(t *testing.T) {
	s := newTestSession()
	draw(t, s, ToolLine, geom.Pt(10, 50), geom.Pt(110, 50))
	draw(t, s, ToolLine, geom.Pt(200, 10), geom.Pt(200, 40))
	require.NoError(t, s.SetTool(ToolSelect))

	require.True(t, s.CommitTransform("id-1", 10, 50, 100, 0, 90))
	l := s.Document().Shapes[0].(*shape.Line)
	assert.InDelta(t, 10, l.Points[0], 1e-9)
	assert.InDelta(t, 50, l.Points[1], 1e-9)
	assert.InDelta(t, 10, l.Points[2], 1e-9)
	assert.InDelta(t, 150, l.Points[3], 1e-9)

	require.True(t, s.CommitTransform("id-2", 200, 10, 0, 60, 0))
	assert.Equal(t, [4]float64{200, 10, 200, 70}, s.Document().Shapes[1].(*shape.Line).Points)

	assert.False(t, s.CommitTransform("id-2", 200, 10, 0, 4, 0))
	assert.False(t, s.CommitTransform("id-2", 200, 10, -1, 60, 0))
	assert.Equal(t, [4]float64{200, 10, 200, 70}, s.Document().Shapes[1].(*shape.Line).Points)
}

func TestFits(t *testing.T) {
	line := &shape.Line{}
	rect := &shape.Rect{}
	tests := []struct {
		name string
		sh   shape.Shape
		w, h float64
		want bool
	}{
		{"rect square", rect, 5, 5, true},
		{"rect thin", rect, 4, 50, false},
		{"rect flat", rect, 50, 0, false},
		{"line flat", line, 50, 0, true},
		{"line upright", line, 0, 50, true},
		{"line short", line, 4, 4, false},
		{"line negative", line, 50, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fits(tt.sh, tt.w, tt.h))
		})
	}
}

func TestProposeBox(t *testing.T) {
	rect := &shape.Rect{}
	old := geom.Box{X: 0, Y: 0, Width: 10, Height: 10}
	assert.Equal(t, old, ProposeBox(rect, old, geom.Box{Width: 4, Height: 50}))
	assert.Equal(t, old, ProposeBox(rect, old, geom.Box{Width: 50, Height: -50}))
	ok := geom.Box{X: 1, Y: 1, Width: 5, Height: 5}
	assert.Equal(t, ok, ProposeBox(rect, old, ok))

	flat := geom.Box{X: 0, Y: 0, Width: 80, Height: 0}
	assert.Equal(t, flat, ProposeBox(&shape.Line{}, old, flat))
}

package board

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/drafter/internal/geom"
	"github.com/example/drafter/internal/shape"
)

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestSession(opts ...Option) *Session {
	return NewSession(append([]Option{WithIDGenerator(counterIDs())}, opts...)...)
}

func draw(t *testing.T, s *Session, tool Tool, from, to geom.Point) {
	t.Helper()
	require.NoError(t, s.SetTool(tool))
	s.PointerDown(from)
	s.PointerMove(to)
	s.PointerUp()
}

func assertExclusive(t *testing.T, s *Session) {
	t.Helper()
	sh, an := s.Provisional()
	if s.Drawing() {
		assert.True(t, (sh == nil) != (an == nil), "exactly one provisional entity while drawing")
	} else {
		assert.Nil(t, sh)
		assert.Nil(t, an)
	}
}

func TestDefaults(t *testing.T) {
	s := NewSession()
	assert.Equal(t, ToolLine, s.Tool())
	assert.Equal(t, "#000000", s.StrokeColor())
	assert.Equal(t, 2, s.StrokeWidth())
	assert.True(t, s.ShowAnnotations())
	assert.False(t, s.Drawing())
	assert.True(t, s.Document().Empty())
}

func TestLineEndpointsProperty(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		s := newTestSession()
		down := geom.Pt(r.Float64()*1000-500, r.Float64()*1000-500)
		s.PointerDown(down)
		last := down
		for m := r.IntN(20); m > 0; m-- {
			last = geom.Pt(r.Float64()*1000-500, r.Float64()*1000-500)
			s.PointerMove(last)
			assertExclusive(t, s)
		}
		s.PointerUp()
		assertExclusive(t, s)

		doc := s.Document()
		require.Len(t, doc.Shapes, 1)
		l := doc.Shapes[0].(*shape.Line)
		assert.Equal(t, [4]float64{down.X, down.Y, last.X, last.Y}, l.Points)
		assert.True(t, l.Draggable)
	}
}

func TestCircleScenario(t *testing.T) {
	s := newTestSession()
	draw(t, s, ToolCircle, geom.Pt(10, 10), geom.Pt(13, 14))
	doc := s.Document()
	require.Len(t, doc.Shapes, 1)
	c := doc.Shapes[0].(*shape.Circle)
	assert.Equal(t, 10.0, c.X)
	assert.Equal(t, 10.0, c.Y)
	assert.Equal(t, 5.0, c.Radius)
	assert.Equal(t, shape.UnitTransform(), c.Transform)
	assert.Equal(t, "id-1", c.ID)
}

func TestZeroLengthAnnotation(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.SetTool(ToolAnnotate))
	s.PointerDown(geom.Pt(0, 0))
	assertExclusive(t, s)
	s.PointerUp()

	doc := s.Document()
	assert.Empty(t, doc.Shapes)
	require.Len(t, doc.Annotations, 1)
	assert.Equal(t, "0.00 units", doc.Annotations[0].Text)
}

func TestRectKeepsNegativeExtent(t *testing.T) {
	s := newTestSession()
	draw(t, s, ToolRect, geom.Pt(50, 40), geom.Pt(30, 60))
	r := s.Document().Shapes[0].(*shape.Rect)
	assert.Equal(t, -20.0, r.Width)
	assert.Equal(t, 20.0, r.Height)
}

func TestTriangleRadius(t *testing.T) {
	s := newTestSession()
	draw(t, s, ToolTriangle, geom.Pt(0, 0), geom.Pt(6, 8))
	tr := s.Document().Shapes[0].(*shape.Triangle)
	assert.Equal(t, 10.0, tr.Radius)
	assert.Equal(t, 3, tr.Sides())
}

func TestIdleEventsAreNoops(t *testing.T) {
	s := newTestSession()
	s.PointerMove(geom.Pt(5, 5))
	s.PointerUp()
	assert.True(t, s.Document().Empty())
	assertExclusive(t, s)
}

func TestPressWhileDrawingIgnored(t *testing.T) {
	s := newTestSession()
	s.PointerDown(geom.Pt(1, 1))
	s.PointerDown(geom.Pt(9, 9))
	s.PointerUp()
	doc := s.Document()
	require.Len(t, doc.Shapes, 1)
	assert.Equal(t, [4]float64{1, 1, 1, 1}, doc.Shapes[0].(*shape.Line).Points)
}

func TestToolLockedWhileDrawing(t *testing.T) {
	s := newTestSession()
	s.PointerDown(geom.Pt(0, 0))
	assert.ErrorIs(t, s.SetTool(ToolRect), ErrToolLocked)
	assert.Equal(t, ToolLine, s.Tool())
	s.PointerUp()
	assert.NoError(t, s.SetTool(ToolRect))
	assert.Error(t, s.SetTool(Tool("brush")))
}

func TestStrokeSettings(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.SetStrokeColor("tomato"))
	require.NoError(t, s.SetStrokeColor("#abc"))
	assert.Error(t, s.SetStrokeColor("nope"))
	assert.Error(t, s.SetStrokeColor("#12345"))
	assert.Equal(t, "#abc", s.StrokeColor())

	assert.ErrorIs(t, s.SetStrokeWidth(0), ErrStrokeWidth)
	assert.ErrorIs(t, s.SetStrokeWidth(21), ErrStrokeWidth)
	require.NoError(t, s.SetStrokeWidth(20))

	draw(t, s, ToolLine, geom.Pt(0, 0), geom.Pt(1, 1))
	b := s.Document().Shapes[0].Common()
	assert.Equal(t, "#abc", b.StrokeColor)
	assert.Equal(t, 20.0, b.StrokeWidth)
}

func TestClearDiscardsEverything(t *testing.T) {
	s := newTestSession()
	draw(t, s, ToolRect, geom.Pt(0, 0), geom.Pt(10, 10))
	require.NoError(t, s.SetTool(ToolSelect))
	require.True(t, s.Pick("id-1"))
	require.NoError(t, s.SetTool(ToolLine))
	s.PointerDown(geom.Pt(3, 3))

	s.Clear()
	assert.True(t, s.Document().Empty())
	assert.Empty(t, s.Selected())
	assert.False(t, s.Drawing())
	assertExclusive(t, s)
}

func TestToggleAnnotations(t *testing.T) {
	s := newTestSession()
	assert.False(t, s.ToggleAnnotations())
	assert.False(t, s.Frame().ShowAnnotations)
	assert.True(t, s.ToggleAnnotations())
}

func TestDocumentIsSnapshot(t *testing.T) {
	s := newTestSession()
	draw(t, s, ToolCircle, geom.Pt(0, 0), geom.Pt(3, 4))
	doc := s.Document()
	doc.Shapes[0].MoveTo(geom.Pt(100, 100))
	assert.Equal(t, 0.0, s.Document().Shapes[0].(*shape.Circle).X)

	f := s.Frame()
	f.Document.Shapes[0].MoveTo(geom.Pt(7, 7))
	assert.Equal(t, 0.0, s.Document().Shapes[0].(*shape.Circle).X)
}

func TestReplace(t *testing.T) {
	s := newTestSession()
	s.PointerDown(geom.Pt(0, 0))
	loaded := shape.Document{Shapes: shape.List{&shape.Rect{Base: shape.Base{ID: "r"}, Width: 5, Height: 5}}}
	s.Replace(loaded)
	assert.False(t, s.Drawing())
	assert.Equal(t, loaded, s.Document())
}

func TestApplyScript(t *testing.T) {
	script := strings.Join([]string{
		`# draw a rect then move it`,
		`{"type":"tool","tool":"rect"}`,
		`{"type":"down","x":0,"y":0}`,
		`{"type":"move","x":20,"y":10}`,
		`{"type":"up"}`,
		``,
		`{"type":"tool","tool":"select"}`,
		`{"type":"pick","id":"id-1"}`,
		`{"type":"drag","id":"id-1","x":5,"y":6}`,
		`{"type":"transform","id":"id-1","x":5,"y":6,"width":40,"height":30,"rotation":90}`,
	}, "\n")
	events, err := ReadScript(strings.NewReader(script))
	require.NoError(t, err)
	require.Len(t, events, 8)

	s := newTestSession()
	for _, e := range events {
		require.NoError(t, s.Apply(e))
	}
	assert.Equal(t, "id-1", s.Selected())
	r := s.Document().Shapes[0].(*shape.Rect)
	assert.Equal(t, geom.Box{X: 5, Y: 6, Width: 40, Height: 30}, r.Box())
	assert.Equal(t, 90.0, r.Rotation)

	require.NoError(t, s.Apply(Clear{}))
	assert.True(t, s.Document().Empty())
}

func TestReadScriptErrors(t *testing.T) {
	_, err := ReadScript(strings.NewReader("{\"type\":\"down\"}\n{\"type\":\"jump\"}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = ReadScript(strings.NewReader(`{"type":"tool","tool":"brush"}`))
	assert.Error(t, err)
	_, err = ReadScript(strings.NewReader(`{}`))
	assert.Error(t, err)
}

func TestParseTool(t *testing.T) {
	tool, err := ParseTool(" Measure ")
	require.NoError(t, err)
	assert.Equal(t, ToolAnnotate, tool)
	for _, want := range Tools {
		got, err := ParseTool(string(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err = ParseTool("eraser")
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff000080")
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), c.R)
	assert.Equal(t, uint8(0x80), c.A)

	c, err = ParseColor("#0f0")
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), c.G)
	assert.Equal(t, uint8(0xff), c.A)

	c, err = ParseColor("RED")
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), c.R)

	_, err = ParseColor("#gggggg")
	assert.Error(t, err)
	_, err = ParseColor("")
	assert.Error(t, err)
}

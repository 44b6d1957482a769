package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/drafter/internal/board"
	"github.com/example/drafter/internal/geom"
	"github.com/example/drafter/internal/shape"
)

func rect(id string, x, y, w, h float64) *shape.Rect {
	return &shape.Rect{
		Base:      shape.Base{ID: id, StrokeColor: "red", StrokeWidth: 2, Draggable: true},
		X:         x,
		Y:         y,
		Width:     w,
		Height:    h,
		Transform: shape.UnitTransform(),
	}
}

func isRed(t *testing.T, c *Canvas, x, y int) bool {
	t.Helper()
	px := c.Image().RGBAAt(x, y)
	return px.R > 200 && px.G < 60 && px.B < 60
}

func TestPaintNegativeWidthRect(t *testing.T) {
	c := New(100, 100, WithGrid(0))
	c.Paint(board.Frame{Document: shape.Document{Shapes: shape.List{rect("r", 50, 50, -20, 20)}}})

	assert.True(t, isRed(t, c, 30, 60), "left edge at the normalized x")
	assert.True(t, isRed(t, c, 50, 60), "right edge at the anchor")
	assert.True(t, isRed(t, c, 40, 50), "top edge")
	bg := c.Image().RGBAAt(70, 61)
	assert.Equal(t, c.Theme().Background, bg)
	assert.Equal(t, c.Theme().Background, c.Image().RGBAAt(40, 60), "interior is not filled")
}

func TestPaintCircleAndTriangle(t *testing.T) {
	c := New(100, 100, WithGrid(0))
	c.Paint(board.Frame{Document: shape.Document{Shapes: shape.List{
		&shape.Circle{Base: shape.Base{ID: "c", StrokeColor: "#ff0000", StrokeWidth: 3}, X: 30, Y: 30, Radius: 10, Transform: shape.UnitTransform()},
		&shape.Triangle{Base: shape.Base{ID: "t", StrokeColor: "#ff0000", StrokeWidth: 3}, X: 70, Y: 70, Radius: 20, Transform: shape.UnitTransform()},
	}}})
	assert.True(t, isRed(t, c, 40, 30), "circle stroke")
	assert.False(t, isRed(t, c, 30, 30), "circle centre is hollow")
	assert.True(t, isRed(t, c, 70, 50), "triangle apex")
}

func TestPaintAnnotationsToggle(t *testing.T) {
	an := shape.Annotation{ID: "a", Points: [4]float64{10, 90, 90, 90}, Text: "80.00 units", StrokeColor: "red", StrokeWidth: 2}
	doc := shape.Document{Annotations: []shape.Annotation{an}}

	c := New(100, 100, WithGrid(0))
	c.Paint(board.Frame{Document: doc, ShowAnnotations: true})
	assert.True(t, isRed(t, c, 12, 90))

	c.Paint(board.Frame{Document: doc, ShowAnnotations: false})
	assert.False(t, isRed(t, c, 12, 90))
}

func TestPaintGrid(t *testing.T) {
	c := New(50, 50)
	c.Paint(board.Frame{})
	assert.Equal(t, c.Theme().Grid, c.Image().RGBAAt(20, 7))
	assert.Equal(t, c.Theme().Background, c.Image().RGBAAt(21, 7))
}

func TestPickTopmost(t *testing.T) {
	c := New(200, 200)
	doc := shape.Document{Shapes: shape.List{
		rect("bottom", 10, 10, 100, 100),
		rect("top", 50, 50, 100, 100),
		&shape.Line{Base: shape.Base{ID: "line", StrokeWidth: 2}, Points: [4]float64{150, 10, 190, 10}},
	}}
	c.Paint(board.Frame{Document: doc})

	assert.Equal(t, "top", c.PickAt(geom.Pt(60, 60)))
	assert.Equal(t, "bottom", c.PickAt(geom.Pt(20, 20)))
	assert.Equal(t, "line", c.PickAt(geom.Pt(170, 12)))
	assert.Equal(t, "", c.PickAt(geom.Pt(190, 190)))
}

func TestPickOverlayHandle(t *testing.T) {
	c := New(200, 200)
	doc := shape.Document{Shapes: shape.List{rect("r", 40, 40, 60, 60)}}
	c.Paint(board.Frame{Document: doc, Selected: "r"})

	id := c.PickAt(geom.Pt(100, 100))
	assert.Equal(t, HandleSE, id)
	assert.True(t, board.IsOverlayID(id))
	assert.Equal(t, HandleRotate, c.PickAt(geom.Pt(70, 40-rotateDistance)))
}

func TestCanvasDrivesSessionPick(t *testing.T) {
	c := New(200, 200)
	s := board.NewSession()
	s.Attach(c)
	s.PointerDown(geom.Pt(10, 10))
	s.PointerMove(geom.Pt(60, 60))
	s.PointerUp()
	id := s.Document().Shapes[0].Common().ID

	require.NoError(t, s.SetTool(board.ToolSelect))
	s.Paint()
	s.PointerDown(geom.Pt(35, 35))
	assert.Equal(t, id, s.Selected())

	s.Paint()
	s.PointerDown(geom.Pt(60, 60))
	assert.Equal(t, id, s.Selected(), "overlay handle keeps selection")

	s.PointerDown(geom.Pt(150, 20))
	assert.Empty(t, s.Selected())
}

func TestEncodePNG(t *testing.T) {
	c := New(32, 16)
	c.Paint(board.Frame{})
	var buf bytes.Buffer
	require.NoError(t, c.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
}

func TestResizeAndTransformArgs(t *testing.T) {
	r := rect("r", 50, 50, -20, 20)
	from := Frame(r)
	assert.Equal(t, geom.Box{X: 30, Y: 50, Width: 20, Height: 20}, from)

	to := Resize(from, HandleSE, geom.Pt(20, 10))
	assert.Equal(t, geom.Box{X: 30, Y: 50, Width: 40, Height: 30}, to)

	x, y, w, h, rot := TransformArgs(r, from, to, 0)
	assert.Equal(t, []float64{30, 50, 40, 30, 0}, []float64{x, y, w, h, rot})

	c := &shape.Circle{X: 10, Y: 10, Radius: 5, Transform: shape.UnitTransform()}
	cf := Frame(c)
	x, y, w, h, _ = TransformArgs(c, cf, cf, 0)
	assert.Equal(t, []float64{10, 10, 10, 10}, []float64{x, y, w, h})

	assert.InDelta(t, 90, RotationAt(geom.Box{Width: 10, Height: 10}, geom.Pt(20, 5)), 1e-9)
}

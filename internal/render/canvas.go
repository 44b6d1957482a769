// Package render paints board frames into an RGBA image and answers pick
// queries against the last painted frame.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/example/drafter/internal/board"
	"github.com/example/drafter/internal/geom"
	"github.com/example/drafter/internal/shape"
	"github.com/example/drafter/internal/theme"
)

const (
	DefaultGridSize = 20
	labelPadding    = 2
	dashLength      = 5
)

// Canvas is a raster board.Surface.
type Canvas struct {
	theme    *theme.Theme
	gridSize int

	img   *image.RGBA
	ras   *vector.Rasterizer
	frame board.Frame
}

var _ board.Surface = (*Canvas)(nil)

// Option configures a Canvas.
type Option func(*Canvas)

// WithTheme sets the surface colours. A nil theme keeps the default.
func WithTheme(t *theme.Theme) Option {
	return func(c *Canvas) {
		if t != nil {
			c.theme = t
		}
	}
}

// WithGrid sets the grid spacing in pixels. Zero hides the grid.
func WithGrid(size int) Option {
	return func(c *Canvas) { c.gridSize = size }
}

// New returns a blank canvas of the given size.
func New(width, height int, opts ...Option) *Canvas {
	c := &Canvas{
		theme:    theme.Default(),
		gridSize: DefaultGridSize,
	}
	for _, o := range opts {
		o(c)
	}
	c.Resize(width, height)
	return c
}

// Resize changes the canvas size. The next Paint redraws everything.
func (c *Canvas) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	c.ras = vector.NewRasterizer(width, height)
}

// Image returns the painted pixels. The canvas keeps ownership.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Theme returns the colours in use.
func (c *Canvas) Theme() *theme.Theme { return c.theme }

// EncodePNG writes the current pixels as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Paint redraws the whole canvas from f: grid, shapes in document order,
// annotations when visible, the entity in progress and then the selection
// overlay.
func (c *Canvas) Paint(f board.Frame) {
	c.frame = f
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.theme.Background), image.Point{}, draw.Src)
	c.paintGrid()
	for _, s := range f.Document.Shapes {
		c.paintShape(s, strokeColor(s.Common().StrokeColor))
	}
	if f.ShowAnnotations {
		for i := range f.Document.Annotations {
			c.paintAnnotation(&f.Document.Annotations[i], true)
		}
	}
	if f.Provisional != nil {
		c.paintShape(f.Provisional, strokeColor(f.Provisional.Common().StrokeColor))
	}
	if f.ProvisionalAnnotation != nil {
		c.paintAnnotation(f.ProvisionalAnnotation, false)
	}
	if f.Selected != "" {
		if _, s := f.Document.Find(f.Selected); s != nil {
			c.paintOverlay(s)
		}
	}
}

func strokeColor(spec string) color.Color {
	col, err := board.ParseColor(spec)
	if err != nil {
		return color.Black
	}
	return col
}

func (c *Canvas) paintGrid() {
	if c.gridSize <= 0 {
		return
	}
	b := c.img.Bounds()
	src := image.NewUniform(c.theme.Grid)
	for x := 0; x < b.Max.X; x += c.gridSize {
		draw.Draw(c.img, image.Rect(x, 0, x+1, b.Max.Y), src, image.Point{}, draw.Over)
	}
	for y := 0; y < b.Max.Y; y += c.gridSize {
		draw.Draw(c.img, image.Rect(0, y, b.Max.X, y+1), src, image.Point{}, draw.Over)
	}
}

// fill rasterizes whatever paths build adds in one pass.
func (c *Canvas) fill(col color.Color, build func(r *vector.Rasterizer)) {
	b := c.img.Bounds()
	c.ras.Reset(b.Dx(), b.Dy())
	c.ras.DrawOp = draw.Over
	build(c.ras)
	c.ras.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

func (c *Canvas) paintShape(s shape.Shape, col color.Color) {
	width := s.Common().StrokeWidth
	if width <= 0 {
		width = 1
	}
	c.fill(col, func(r *vector.Rasterizer) {
		switch v := s.(type) {
		case *shape.Line:
			segment(r, v.Start(), v.End(), width)
		case *shape.Rect:
			outline(r, rectCorners(v), width)
		case *shape.Circle:
			ring(r, geom.Pt(v.X, v.Y), v.Radius, width)
		case *shape.Triangle:
			outline(r, v.Vertices(), width)
		}
	})
}

// rectCorners returns the four corners of r after rotation about its anchor.
// Negative extents simply put the corners on the other side of the anchor.
func rectCorners(r *shape.Rect) []geom.Point {
	origin := geom.Pt(r.X, r.Y)
	pts := []geom.Point{
		origin,
		geom.Pt(r.X+r.Width, r.Y),
		geom.Pt(r.X+r.Width, r.Y+r.Height),
		geom.Pt(r.X, r.Y+r.Height),
	}
	for i, p := range pts {
		pts[i] = geom.Rotate(p, origin, r.Rotation)
	}
	return pts
}

// paintAnnotation draws the dashed measured segment and its label. A final
// annotation shows its stored text; one still being drawn shows the live
// length in the provisional colour.
func (c *Canvas) paintAnnotation(a *shape.Annotation, final bool) {
	col := strokeColor(a.StrokeColor)
	width := a.StrokeWidth
	if width <= 0 {
		width = 1
	}
	c.fill(col, func(r *vector.Rasterizer) {
		dashed(r, geom.Pt(a.Points[0], a.Points[1]), geom.Pt(a.Points[2], a.Points[3]), width, dashLength, dashLength)
	})
	text := a.Text
	textCol := col
	if !final {
		text = geom.FormatMeasurement(a.Length())
		textCol = c.theme.Provisional
	}
	c.label(a.LabelPosition(), text, textCol)
}

// label draws text with its top-left corner at p on a background-coloured
// box.
func (c *Canvas) label(p geom.Point, text string, col color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: c.img, Src: image.NewUniform(col), Face: face}
	w := d.MeasureString(text).Ceil()
	m := face.Metrics()
	h := (m.Ascent + m.Descent).Ceil()
	x, y := int(p.X), int(p.Y)
	box := image.Rect(x, y, x+w+2*labelPadding, y+h+2*labelPadding)
	draw.Draw(c.img, box, image.NewUniform(c.theme.Background), image.Point{}, draw.Src)
	d.Dot = fixed.P(x+labelPadding, y+labelPadding+m.Ascent.Ceil())
	d.DrawString(text)
}

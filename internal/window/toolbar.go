package window

import (
	"fmt"
	"image"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/drafter/internal/board"
	"github.com/example/drafter/internal/theme"
)

const (
	toolbarHeight = 24
	buttonPadding = 8
)

var toolLabels = map[board.Tool]string{
	board.ToolLine:     "L:Line",
	board.ToolRect:     "R:Rect",
	board.ToolCircle:   "C:Circle",
	board.ToolTriangle: "T:Triangle",
	board.ToolAnnotate: "M:Measure",
	board.ToolSelect:   "S:Select",
}

type toolButton struct {
	tool  board.Tool
	label string
	rect  image.Rectangle
}

// toolButtons lays the tool buttons out left to right along the toolbar.
func toolButtons() []toolButton {
	d := &font.Drawer{Face: basicfont.Face7x13}
	x := 0
	buttons := make([]toolButton, 0, len(board.Tools))
	for _, t := range board.Tools {
		label := toolLabels[t]
		w := d.MeasureString(label).Ceil() + 2*buttonPadding
		buttons = append(buttons, toolButton{tool: t, label: label, rect: image.Rect(x, 0, x+w, toolbarHeight)})
		x += w
	}
	return buttons
}

// toolbarHit returns the action bound to the button at p, if any.
func toolbarHit(p image.Point) string {
	for _, b := range toolButtons() {
		if p.In(b.rect) {
			return string(b.tool)
		}
	}
	return ""
}

func drawToolbar(dst *image.RGBA, th *theme.Theme, st paintState) {
	bar := image.Rect(0, 0, dst.Bounds().Dx(), toolbarHeight)
	draw.Draw(dst, bar, image.NewUniform(th.Toolbar), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ToolbarText), Face: face}
	baseline := (toolbarHeight + face.Metrics().Ascent.Ceil() - face.Metrics().Descent.Ceil()) / 2

	right := 0
	for _, b := range toolButtons() {
		if b.tool == st.frame.Tool {
			draw.Draw(dst, b.rect.Inset(2), image.NewUniform(th.ToolActive), image.Point{}, draw.Src)
		}
		d.Dot = fixed.P(b.rect.Min.X+buttonPadding, baseline)
		d.DrawString(b.label)
		right = b.rect.Max.X
	}

	d.Dot = fixed.P(right+buttonPadding, baseline)
	d.DrawString(statusLine(st))
}

func statusLine(st paintState) string {
	parts := []string{
		fmt.Sprintf("[%d]", st.frame.StrokeWidth),
		st.frame.StrokeColor,
	}
	if !st.frame.ShowAnnotations {
		parts = append(parts, "annotations hidden")
	}
	if st.message != "" {
		parts = append(parts, st.message)
	}
	return strings.Join(parts, "  ")
}

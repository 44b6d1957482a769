package window

import (
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/drafter/internal/board"
	"github.com/example/drafter/internal/geom"
	"github.com/example/drafter/internal/persist"
	"github.com/example/drafter/internal/render"
	"github.com/example/drafter/internal/shape"
	"github.com/example/drafter/internal/store"
	"github.com/example/drafter/internal/theme"
)

func newTestController(repo *persist.Repository) *controller {
	n := 0
	s := board.NewSession(board.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}))
	return newController(s, repo, nil)
}

func press(c *controller, x, y float64) {
	c.pointer(mouse.Event{Button: mouse.ButtonLeft, Direction: mouse.DirPress}, geom.Pt(x, y))
}

func move(c *controller, x, y float64) {
	c.pointer(mouse.Event{Direction: mouse.DirNone}, geom.Pt(x, y))
}

func release(c *controller, x, y float64) {
	c.pointer(mouse.Event{Button: mouse.ButtonLeft, Direction: mouse.DirRelease}, geom.Pt(x, y))
}

func typeRune(c *controller, r rune, mods key.Modifiers) {
	c.key(key.Event{Rune: r, Modifiers: mods, Direction: key.DirPress})
}

func drawRect(t *testing.T, c *controller) {
	t.Helper()
	typeRune(c, 'r', 0)
	require.Equal(t, board.ToolRect, c.session.Tool())
	press(c, 10, 10)
	move(c, 40, 30)
	move(c, 60, 40)
	release(c, 60, 40)
	require.Len(t, c.session.Document().Shapes, 1)
}

func TestToolShortcuts(t *testing.T) {
	c := newTestController(nil)
	for r, want := range map[rune]board.Tool{
		'L': board.ToolLine,
		'r': board.ToolRect,
		'c': board.ToolCircle,
		't': board.ToolTriangle,
		'm': board.ToolAnnotate,
		's': board.ToolSelect,
	} {
		typeRune(c, r, 0)
		assert.Equal(t, want, c.session.Tool(), string(r))
	}
	typeRune(c, 's', 0)
	assert.Equal(t, board.ToolSelect, c.surface.frame.Tool)

	c.key(key.Event{Rune: 'r', Direction: key.DirRelease})
	assert.Equal(t, board.ToolSelect, c.session.Tool(), "releases are ignored")
}

func TestWidthShortcuts(t *testing.T) {
	c := newTestController(nil)
	typeRune(c, ']', 0)
	assert.Equal(t, board.DefaultStrokeWidth+1, c.session.StrokeWidth())
	for i := 0; i < 30; i++ {
		typeRune(c, '[', 0)
	}
	assert.Equal(t, board.MinStrokeWidth, c.session.StrokeWidth())
	assert.NotEmpty(t, c.message)
}

func TestDrawWithPointer(t *testing.T) {
	c := newTestController(nil)
	drawRect(t, c)
	r := c.session.Document().Shapes[0].(*shape.Rect)
	assert.Equal(t, geom.Box{X: 10, Y: 10, Width: 50, Height: 30}, r.Box())
	assert.Len(t, c.surface.frame.Document.Shapes, 1)
	assert.Nil(t, c.surface.frame.Provisional)
}

func TestToolLockedMidStroke(t *testing.T) {
	c := newTestController(nil)
	press(c, 0, 0)
	typeRune(c, 'c', 0)
	assert.Equal(t, board.ToolLine, c.session.Tool())
	assert.Equal(t, board.ErrToolLocked.Error(), c.message)
	release(c, 5, 5)
}

func TestDragAndResizeSelected(t *testing.T) {
	c := newTestController(nil)
	drawRect(t, c)
	typeRune(c, 's', 0)

	press(c, 30, 25)
	assert.Equal(t, "id-1", c.session.Selected())
	move(c, 35, 30)
	r := c.surface.frame.Document.Shapes[0].(*shape.Rect)
	assert.Equal(t, geom.Pt(15, 15), r.Position(), "preview follows the pointer")
	assert.Equal(t, 10.0, c.session.Document().Shapes[0].(*shape.Rect).X, "not committed yet")
	release(c, 40, 35)
	r = c.session.Document().Shapes[0].(*shape.Rect)
	assert.Equal(t, geom.Box{X: 20, Y: 20, Width: 50, Height: 30}, r.Box())

	// south-east handle of the 50x30 frame at (20,20)
	press(c, 70, 50)
	require.NotNil(t, c.drag)
	assert.Equal(t, render.HandleSE, c.drag.handle)
	release(c, 90, 60)
	r = c.session.Document().Shapes[0].(*shape.Rect)
	assert.InDelta(t, 20, r.X, 1e-9)
	assert.InDelta(t, 20, r.Y, 1e-9)
	assert.InDelta(t, 70, r.Width, 1e-9)
	assert.InDelta(t, 40, r.Height, 1e-9)
	assert.Equal(t, "id-1", c.session.Selected())
}

func TestRotateHandle(t *testing.T) {
	c := newTestController(nil)
	drawRect(t, c)
	typeRune(c, 's', 0)
	press(c, 30, 25)
	release(c, 30, 25)

	// rotate handle sits above the top edge centre of the (10,10) 50x30 frame
	press(c, 35, 10-24)
	require.NotNil(t, c.drag)
	assert.Equal(t, render.HandleRotate, c.drag.handle)
	release(c, 35+100, 25)
	r := c.session.Document().Shapes[0].(*shape.Rect)
	assert.InDelta(t, 90, r.Rotation, 1e-9)
	assert.Equal(t, 50.0, r.Width)
}

func TestRotateAndStretchFlatLine(t *testing.T) {
	c := newTestController(nil)
	require.Equal(t, board.ToolLine, c.session.Tool())
	press(c, 10, 50)
	move(c, 110, 50)
	release(c, 110, 50)
	require.Len(t, c.session.Document().Shapes, 1)

	typeRune(c, 's', 0)
	press(c, 60, 50)
	release(c, 60, 50)
	require.Equal(t, "id-1", c.session.Selected())

	// east end of the 100x0 frame; both right-hand corners sit on it
	press(c, 110, 50)
	require.NotNil(t, c.drag)
	release(c, 150, 50)
	l := c.session.Document().Shapes[0].(*shape.Line)
	assert.Equal(t, [4]float64{10, 50, 150, 50}, l.Points)

	press(c, 80, 50-24)
	require.NotNil(t, c.drag)
	assert.Equal(t, render.HandleRotate, c.drag.handle)
	release(c, 80+100, 50)
	l = c.session.Document().Shapes[0].(*shape.Line)
	assert.InDelta(t, 10, l.Points[0], 1e-9)
	assert.InDelta(t, 50, l.Points[1], 1e-9)
	assert.InDelta(t, 10, l.Points[2], 1e-9)
	assert.InDelta(t, 190, l.Points[3], 1e-9)
}

func TestResizeTooSmallKeepsShape(t *testing.T) {
	c := newTestController(nil)
	drawRect(t, c)
	typeRune(c, 's', 0)
	press(c, 30, 25)
	release(c, 30, 25)
	before := c.session.Document()

	press(c, 60, 40)
	release(c, 12, 12)
	assert.Equal(t, before, c.session.Document())
}

func TestClearNeedsConfirmation(t *testing.T) {
	c := newTestController(nil)
	drawRect(t, c)
	typeRune(c, 'x', 0)
	assert.Len(t, c.session.Document().Shapes, 1)
	typeRune(c, 'h', 0)
	typeRune(c, 'x', 0)
	assert.Len(t, c.session.Document().Shapes, 1, "another action resets the confirmation")
	typeRune(c, 'x', 0)
	assert.True(t, c.session.Document().Empty())
	assert.False(t, c.surface.frame.ShowAnnotations)
}

func TestSaveAndLoadShortcuts(t *testing.T) {
	repo := persist.New(store.NewMem(0))

	c := newTestController(repo)
	typeRune(c, 'o', key.ModControl)
	assert.Equal(t, persist.ErrNotFound.Error(), c.message)

	drawRect(t, c)
	typeRune(c, 's', key.ModControl)
	assert.Equal(t, "saved", c.message)

	other := newTestController(repo)
	typeRune(other, 'o', key.ModControl)
	assert.Equal(t, c.session.Document(), other.session.Document())
	assert.Equal(t, "loaded 1 shapes", other.message)
}

func TestSaveFailureLeavesSession(t *testing.T) {
	var logged []string
	old := logf
	logf = func(format string, args ...any) { logged = append(logged, fmt.Sprintf(format, args...)) }
	t.Cleanup(func() { logf = old })

	c := newTestController(persist.New(store.NewMem(1)))
	drawRect(t, c)
	before := c.session.Document()
	typeRune(c, 's', key.ModControl)
	assert.Equal(t, "save failed", c.message)
	assert.Equal(t, before, c.session.Document())
	require.Len(t, logged, 1)
}

func TestCopyShortcut(t *testing.T) {
	var got image.Image
	oldCopy, oldLog := copyImage, logf
	copyImage = func(img image.Image) error {
		got = img
		return nil
	}
	logf = func(string, ...any) {}
	t.Cleanup(func() {
		copyImage = oldCopy
		logf = oldLog
	})

	c := newTestController(nil)
	c.exporter = func() *render.Canvas { return render.New(20, 10) }
	typeRune(c, 'c', key.ModControl)
	require.NotNil(t, got)
	assert.Equal(t, 20, got.Bounds().Dx())
	assert.Equal(t, board.ToolLine, c.session.Tool(), "ctrl-c is not the circle tool")

	copyImage = func(image.Image) error { return errors.New("no display") }
	typeRune(c, 'c', key.ModControl)
	assert.Equal(t, "copy failed", c.message)
}

func TestQuitAndToolbar(t *testing.T) {
	c := newTestController(nil)
	c.key(key.Event{Code: key.CodeEscape, Direction: key.DirPress})
	assert.True(t, c.quit)

	buttons := toolButtons()
	require.Len(t, buttons, len(board.Tools))
	mid := buttons[1].rect.Min.Add(image.Pt(2, 2))
	assert.Equal(t, string(buttons[1].tool), toolbarHit(mid))
	assert.Equal(t, "", toolbarHit(image.Pt(-1, 2)))
	assert.True(t, c.trigger(toolbarHit(mid)))
	assert.Equal(t, buttons[1].tool, c.session.Tool())
	assert.False(t, c.trigger("nope"))
}

func TestDrawToolbar(t *testing.T) {
	c := newTestController(nil)
	typeRune(c, 's', 0)
	st := paintState{frame: c.surface.frame, width: 400, height: 10, message: "hello"}
	dst := image.NewRGBA(image.Rect(0, 0, 400, toolbarHeight))
	th := theme.Default()
	drawToolbar(dst, th, st)

	var sel toolButton
	for _, b := range toolButtons() {
		if b.tool == board.ToolSelect {
			sel = b
		}
	}
	assert.Equal(t, th.ToolActive, dst.RGBAAt(sel.rect.Min.X+3, sel.rect.Min.Y+3))
	assert.Equal(t, th.Toolbar, dst.RGBAAt(0, 0))
	assert.Contains(t, statusLine(st), "hello")
	assert.Contains(t, statusLine(st), "[2]")
}

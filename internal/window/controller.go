package window

import (
	"errors"
	"fmt"
	"log"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/drafter/internal/board"
	"github.com/example/drafter/internal/clipboard"
	"github.com/example/drafter/internal/geom"
	"github.com/example/drafter/internal/notify"
	"github.com/example/drafter/internal/persist"
	"github.com/example/drafter/internal/render"
	"github.com/example/drafter/internal/shape"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

type action struct {
	name string
	fn   func()
}

// Seams for tests.
var (
	copyImage = clipboard.WriteImage
	logf      = log.Printf
)

// surface picks against the last frame handed to the paint worker, so the
// event loop never touches the worker's canvas.
type surface struct {
	frame board.Frame
	post  func(board.Frame)
}

func (s *surface) Paint(f board.Frame) {
	s.frame = f
	if s.post != nil {
		s.post(f)
	}
}

func (s *surface) PickAt(p geom.Point) string { return render.Pick(s.frame, p) }

// gesture is a select-tool drag in progress: either the body of the selected
// shape or one of its overlay handles.
type gesture struct {
	id     string
	handle string
	start  geom.Point
	last   geom.Point
	origin geom.Point
	from   geom.Box
	shape  shape.Shape
}

// controller turns window input into session calls. It is driven from the
// event loop goroutine only.
type controller struct {
	session  *board.Session
	surface  *surface
	repo     *persist.Repository
	notifier *notify.Notifier
	exporter func() *render.Canvas

	actions      []action
	bound        map[KeyShortcut]int
	drag         *gesture
	pressed      bool
	confirmClear bool
	message      string
	quit         bool
}

func newController(s *board.Session, repo *persist.Repository, n *notify.Notifier) *controller {
	c := &controller{
		session:  s,
		surface:  &surface{},
		repo:     repo,
		notifier: n,
	}
	s.Attach(c.surface)
	c.register()
	return c
}

func (c *controller) register() {
	c.actions = nil
	c.bound = map[KeyShortcut]int{}
	add := func(name string, fn func(), keys ...KeyShortcut) {
		c.actions = append(c.actions, action{name: name, fn: fn})
		for _, k := range keys {
			c.bound[k] = len(c.actions) - 1
		}
	}
	toolKeys := map[board.Tool]rune{
		board.ToolLine:     'l',
		board.ToolRect:     'r',
		board.ToolCircle:   'c',
		board.ToolTriangle: 't',
		board.ToolAnnotate: 'm',
		board.ToolSelect:   's',
	}
	for _, t := range board.Tools {
		tool := t
		add(string(tool), func() { c.selectTool(tool) }, KeyShortcut{Rune: toolKeys[tool]})
	}
	add("thinner", func() { c.adjustWidth(-1) }, KeyShortcut{Rune: '['})
	add("thicker", func() { c.adjustWidth(1) }, KeyShortcut{Rune: ']'})
	add("annotations", func() {
		if c.session.ToggleAnnotations() {
			c.message = "annotations shown"
		} else {
			c.message = "annotations hidden"
		}
	}, KeyShortcut{Rune: 'h'})
	add("clear", c.clear, KeyShortcut{Rune: 'x'})
	add("save", c.save, KeyShortcut{Rune: 's', Modifiers: key.ModControl})
	add("load", c.load, KeyShortcut{Rune: 'o', Modifiers: key.ModControl})
	add("copy", c.copy, KeyShortcut{Rune: 'c', Modifiers: key.ModControl})
	add("quit", func() { c.quit = true }, KeyShortcut{Rune: 'q'}, KeyShortcut{Code: key.CodeEscape})
}

// trigger runs the named action as if its shortcut had been pressed.
func (c *controller) trigger(name string) bool {
	for _, a := range c.actions {
		if a.name == name {
			c.run(a)
			return true
		}
	}
	return false
}

func (c *controller) run(a action) {
	if a.name != "clear" {
		c.confirmClear = false
	}
	a.fn()
	c.paint()
}

func (c *controller) key(e key.Event) {
	if e.Direction != key.DirPress {
		return
	}
	ks := KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: e.Modifiers}
	if e.Rune <= 0 {
		ks = KeyShortcut{Code: e.Code, Modifiers: e.Modifiers}
	}
	if i, ok := c.bound[ks]; ok {
		c.run(c.actions[i])
	}
}

func (c *controller) selectTool(t board.Tool) {
	if err := c.session.SetTool(t); err != nil {
		c.message = err.Error()
		return
	}
	c.message = ""
}

func (c *controller) adjustWidth(delta int) {
	if err := c.session.SetStrokeWidth(c.session.StrokeWidth() + delta); err != nil {
		c.message = err.Error()
	}
}

func (c *controller) clear() {
	if !c.confirmClear {
		c.confirmClear = true
		c.message = "press X again to clear the drawing"
		return
	}
	c.confirmClear = false
	c.drag = nil
	c.session.Clear()
	c.message = "cleared"
}

func (c *controller) save() {
	if c.repo == nil {
		return
	}
	if err := c.repo.Save(c.session.Document()); err != nil {
		logf("save: %v", err)
		c.message = "save failed"
		return
	}
	c.message = "saved"
	if c.notifier != nil {
		c.notifier.Save(c.repo.Key())
	}
}

func (c *controller) load() {
	if c.repo == nil {
		return
	}
	doc, err := c.repo.Load()
	switch {
	case errors.Is(err, persist.ErrNotFound):
		c.message = err.Error()
		return
	case err != nil:
		logf("load: %v", err)
		c.message = "load failed"
		return
	}
	c.drag = nil
	c.session.Replace(doc)
	c.message = fmt.Sprintf("loaded %d shapes", len(doc.Shapes))
	if c.notifier != nil {
		c.notifier.Load(c.message)
	}
}

func (c *controller) copy() {
	if c.exporter == nil {
		return
	}
	canvas := c.exporter()
	if err := copyImage(canvas.Image()); err != nil {
		logf("copy: %v", err)
		c.message = "copy failed"
		return
	}
	c.message = "image copied to clipboard"
	if c.notifier != nil {
		c.notifier.Copy("drawing", canvas.Image())
	}
}

// pointer handles a mouse event already translated to canvas coordinates.
func (c *controller) pointer(e mouse.Event, p geom.Point) {
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		c.pressed = true
		c.press(p)
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		c.pressed = false
		c.release(p)
	case e.Direction == mouse.DirNone && c.pressed:
		c.motion(p)
	default:
		return
	}
	c.paint()
}

// paint publishes the session frame, with any gesture in progress applied.
func (c *controller) paint() {
	f := c.session.Frame()
	if c.drag != nil {
		f = c.drag.preview(f)
	}
	c.surface.Paint(f)
}

func (c *controller) press(p geom.Point) {
	c.confirmClear = false
	if c.session.Tool() != board.ToolSelect {
		c.session.PointerDown(p)
		return
	}
	hit := c.surface.PickAt(p)
	if sel := c.session.SelectedShape(); sel != nil && board.IsOverlayID(hit) {
		c.drag = &gesture{id: sel.Common().ID, handle: hit, start: p, last: p, from: render.Frame(sel), shape: sel}
		return
	}
	c.session.PointerDown(p)
	if sel := c.session.SelectedShape(); sel != nil && sel.Common().ID == hit && sel.Common().Draggable {
		c.drag = &gesture{id: hit, start: p, last: p, origin: sel.Position(), shape: sel}
	}
}

func (c *controller) motion(p geom.Point) {
	if c.drag != nil {
		c.drag.last = p
		return
	}
	c.session.PointerMove(p)
}

func (c *controller) release(p geom.Point) {
	g := c.drag
	if g == nil {
		c.session.PointerUp()
		return
	}
	c.drag = nil
	g.last = p
	if g.last == g.start {
		return
	}
	if !g.commit(c.session) {
		c.message = "transform rejected"
	}
}

// commit applies the gesture to s.
func (g *gesture) commit(s *board.Session) bool {
	if g.handle == "" {
		to := g.origin.Add(g.last.Sub(g.start))
		return s.CommitDrag(g.id, to.X, to.Y)
	}
	x, y, w, h, rot := g.args()
	return s.CommitTransform(g.id, x, y, w, h, rot)
}

func (g *gesture) args() (x, y, w, h, rotation float64) {
	if g.handle == render.HandleRotate {
		spin := render.RotationAt(g.from, g.last) - render.RotationAt(g.from, g.start)
		return render.TransformArgs(g.shape, g.from, g.from, spin)
	}
	to := render.Resize(g.from, g.handle, g.last.Sub(g.start))
	to = board.ProposeBox(g.shape, g.from, to)
	return render.TransformArgs(g.shape, g.from, to, 0)
}

// preview returns f with the gesture applied to a copy of its document so the
// shape follows the pointer before the gesture is committed.
func (g *gesture) preview(f board.Frame) board.Frame {
	scratch := board.NewSession(board.WithDocument(f.Document))
	if err := scratch.SetTool(board.ToolSelect); err != nil {
		return f
	}
	if g.commit(scratch) {
		f.Document = scratch.Document()
	}
	return f
}

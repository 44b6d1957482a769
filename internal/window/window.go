// Package window runs a drafting session in a desktop window.
package window

import (
	"context"
	"image"
	"image/draw"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/drafter/internal/board"
	"github.com/example/drafter/internal/geom"
	"github.com/example/drafter/internal/notify"
	"github.com/example/drafter/internal/persist"
	"github.com/example/drafter/internal/render"
	"github.com/example/drafter/internal/theme"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Window shows a session and feeds it pointer and keyboard input.
type Window struct {
	session  *board.Session
	repo     *persist.Repository
	notifier *notify.Notifier
	theme    *theme.Theme
	grid     int
	width    int
	height   int
	onClose  func()
}

// Option modifies a Window during creation.
type Option func(*Window)

// WithRepository enables ctrl-s and ctrl-o.
func WithRepository(r *persist.Repository) Option { return func(w *Window) { w.repo = r } }

// WithNotifier reports save, load and copy through desktop notifications.
func WithNotifier(n *notify.Notifier) Option { return func(w *Window) { w.notifier = n } }

// WithTheme sets the colours used for the canvas and the toolbar. A nil
// theme keeps the default.
func WithTheme(t *theme.Theme) Option {
	return func(w *Window) {
		if t != nil {
			w.theme = t
		}
	}
}

// WithGrid sets the grid spacing. Zero hides the grid.
func WithGrid(size int) Option { return func(w *Window) { w.grid = size } }

// WithSize sets the initial canvas size in pixels.
func WithSize(width, height int) Option {
	return func(w *Window) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(w *Window) { w.onClose = fn } }

// New creates a Window for s.
func New(s *board.Session, opts ...Option) *Window {
	w := &Window{
		session: s,
		theme:   theme.Default(),
		grid:    render.DefaultGridSize,
		width:   DefaultWidth,
		height:  DefaultHeight,
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// paintState is everything the paint worker needs for one frame.
type paintState struct {
	frame   board.Frame
	width   int
	height  int
	message string
}

// Run executes the UI loop using shiny's driver. It returns when the window
// is closed.
func (w *Window) Run() { driver.Main(w.Main) }

// Main runs the event loop on s.
func (w *Window) Main(s screen.Screen) {
	if w.onClose != nil {
		defer w.onClose()
	}
	width, height := w.width, w.height
	win, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  width,
		Height: height + toolbarHeight,
		Title:  "Drafter",
	})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer win.Release()

	c := newController(w.session, w.repo, w.notifier)
	c.exporter = func() *render.Canvas {
		cv := render.New(width, height, render.WithTheme(w.theme), render.WithGrid(0))
		f := w.session.Frame()
		f.Selected = ""
		cv.Paint(f)
		return cv
	}

	var (
		paintMu     sync.Mutex
		paintCancel context.CancelFunc
	)
	paintCh := make(chan paintState, 1)
	go func() {
		canvas := render.New(width, height, render.WithTheme(w.theme), render.WithGrid(w.grid))
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			w.drawFrame(ctx, s, win, canvas, st)
			paintMu.Lock()
			paintCancel = nil
			paintMu.Unlock()
			cancel()
		}
	}()
	defer close(paintCh)

	c.surface.post = func(f board.Frame) {
		st := paintState{frame: f, width: width, height: height, message: c.message}
		select {
		case paintCh <- st:
		default:
			select {
			case <-paintCh:
			default:
			}
			paintCh <- st
		}
	}
	c.paint()

	for {
		switch e := win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx - toolbarHeight
			if height < 1 {
				height = 1
			}
			c.paint()
		case paint.Event:
			c.paint()
		case key.Event:
			c.key(e)
		case mouse.Event:
			if int(e.Y) < toolbarHeight {
				if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
					if name := toolbarHit(image.Pt(int(e.X), int(e.Y))); name != "" {
						c.trigger(name)
					}
				}
				if e.Direction != mouse.DirRelease {
					continue
				}
			}
			c.pointer(e, geom.Pt(float64(e.X), float64(e.Y)-toolbarHeight))
		}
		if c.quit {
			return
		}
	}
}

func (w *Window) drawFrame(ctx context.Context, s screen.Screen, win screen.Window, canvas *render.Canvas, st paintState) {
	b, err := s.NewBuffer(image.Pt(st.width, st.height+toolbarHeight))
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	if bounds := canvas.Image().Bounds(); bounds.Dx() != st.width || bounds.Dy() != st.height {
		canvas.Resize(st.width, st.height)
	}
	canvas.Paint(st.frame)
	if ctx.Err() != nil {
		return
	}
	dst := b.RGBA()
	draw.Draw(dst, image.Rect(0, toolbarHeight, st.width, st.height+toolbarHeight), canvas.Image(), image.Point{}, draw.Src)
	drawToolbar(dst, w.theme, st)
	if ctx.Err() != nil {
		return
	}
	win.Upload(image.Point{}, b, b.Bounds())
	win.Publish()
}

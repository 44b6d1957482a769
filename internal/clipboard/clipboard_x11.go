//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	initOnce sync.Once
	initErr  error
	owner    *selectionOwner
)

func ensureInit() error {
	initOnce.Do(func() {
		if initErr = checkDisplay(); initErr != nil {
			return
		}
		o, err := newSelectionOwner()
		if err != nil {
			initErr = fmt.Errorf("connect to X server: %w", err)
			return
		}
		owner = o
	})
	return initErr
}

func writePNG(data []byte) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return owner.offer(map[string][]byte{"image/png": data})
}

func writeDocument(data []byte) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return owner.offer(map[string][]byte{
		DocumentType:               data,
		"UTF8_STRING":              data,
		"STRING":                   data,
		"text/plain;charset=utf-8": data,
	})
}

func readDocument() ([]byte, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	for _, target := range []string{DocumentType, "UTF8_STRING", "STRING"} {
		data, err := owner.request(target)
		if err == nil && len(data) > 0 {
			return data, nil
		}
	}
	return nil, fmt.Errorf("clipboard does not contain a drawing")
}

// selectionOwner holds the CLIPBOARD selection on a hidden window and
// answers conversion requests from whatever it was last asked to offer.
type selectionOwner struct {
	conn      *xgb.Conn
	window    xproto.Window
	clipboard xproto.Atom
	targets   xproto.Atom
	property  xproto.Atom

	mu      sync.RWMutex
	atoms   map[string]xproto.Atom
	payload map[xproto.Atom][]byte
}

func newSelectionOwner() (*selectionOwner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	mask := []uint32{xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify}
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, mask).Check(); err != nil {
		conn.Close()
		return nil, err
	}
	o := &selectionOwner{conn: conn, window: window, atoms: map[string]xproto.Atom{}}
	for name, dst := range map[string]*xproto.Atom{
		"CLIPBOARD":         &o.clipboard,
		"TARGETS":           &o.targets,
		"DRAFTER_CLIPBOARD": &o.property,
	} {
		if *dst, err = o.atom(name); err != nil {
			xproto.DestroyWindow(conn, window)
			conn.Close()
			return nil, err
		}
	}
	go o.serve()
	return o, nil
}

func (o *selectionOwner) atom(name string) (xproto.Atom, error) {
	o.mu.RLock()
	a, ok := o.atoms[name]
	o.mu.RUnlock()
	if ok {
		return a, nil
	}
	if name == "STRING" {
		return xproto.AtomString, nil
	}
	reply, err := xproto.InternAtom(o.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern atom %s: %w", name, err)
	}
	o.mu.Lock()
	o.atoms[name] = reply.Atom
	o.mu.Unlock()
	return reply.Atom, nil
}

// offer replaces everything served with the given target payloads and takes
// ownership of the selection.
func (o *selectionOwner) offer(targets map[string][]byte) error {
	payload := make(map[xproto.Atom][]byte, len(targets))
	for name, data := range targets {
		a, err := o.atom(name)
		if err != nil {
			return err
		}
		payload[a] = append([]byte(nil), data...)
	}
	o.mu.Lock()
	o.payload = payload
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.window, o.clipboard, xproto.TimeCurrentTime).Check()
}

func (o *selectionOwner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.payload = nil
			o.mu.Unlock()
		}
	}
}

func (o *selectionOwner) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}

	o.mu.RLock()
	data, ok := o.payload[e.Target]
	available := make([]xproto.Atom, 0, len(o.payload)+1)
	available = append(available, o.targets)
	for a := range o.payload {
		available = append(available, a)
	}
	o.mu.RUnlock()

	switch {
	case e.Target == o.targets:
		buf := make([]byte, len(available)*4)
		for i, a := range available {
			xgb.Put32(buf[i*4:], uint32(a))
		}
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, xproto.AtomAtom, 32, uint32(len(available)), buf)
	case ok:
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, e.Target, 8, uint32(len(data)), data)
	default:
		property = xproto.AtomNone
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	xproto.SendEvent(o.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// request converts the selection to target on a short-lived connection so
// that a selection held by this process can still be read back.
func (o *selectionOwner) request(target string) ([]byte, error) {
	want, err := o.atom(target)
	if err != nil {
		return nil, err
	}
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	if err := xproto.ConvertSelectionChecked(conn, window, o.clipboard, want, o.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		n, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if n.Property == xproto.AtomNone {
			return nil, fmt.Errorf("clipboard has no %s", target)
		}
		reply, perr := xproto.GetProperty(conn, true, window, o.property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if perr != nil {
			return nil, perr
		}
		return append([]byte(nil), reply.Value...), nil
	}
}

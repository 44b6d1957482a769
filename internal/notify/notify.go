// Package notify raises desktop notifications for drawing transfers: saves,
// loads, PNG exports and clipboard copies.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/drafter/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	EventSave   Event = "save"
	EventLoad   Event = "load"
	EventExport Event = "export"
	EventCopy   Event = "copy"
)

// Events lists every event in a stable order.
var Events = []Event{EventSave, EventLoad, EventExport, EventCopy}

// presentation is how each event is shown, independent of its text.
var presentation = map[Event]platform.Options{
	EventSave:   {Category: "transfer.complete", Replace: true},
	EventLoad:   {Category: "transfer", Transient: true},
	EventExport: {Category: "transfer.complete"},
	EventCopy:   {Category: "transfer", Transient: true},
}

// EventPreference holds the body template for one event. The template gets
// a single %s: the store location, drawing summary or file path.
type EventPreference struct {
	Template string
}

// Preferences is the notification title and per-event text.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

func DefaultPreferences() Preferences {
	return Preferences{
		Title: platform.AppName,
		Events: map[Event]EventPreference{
			EventSave:   {Template: "Saved drawing to %s"},
			EventLoad:   {Template: "Loaded %s"},
			EventExport: {Template: "Exported %s"},
			EventCopy:   {Template: "Copied %s to clipboard"},
		},
	}
}

// LoadPreferences applies DRAFTER_NOTIFY_TITLE and
// DRAFTER_NOTIFY_<EVENT>_TEXT over the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("DRAFTER_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for _, event := range Events {
		v := strings.TrimSpace(os.Getenv("DRAFTER_NOTIFY_" + strings.ToUpper(string(event)) + "_TEXT"))
		if v != "" {
			prefs.Events[event] = EventPreference{Template: v}
		}
	}
	return prefs
}

// send is swapped in tests.
var send = platform.Notify

// Notifier sends the enabled events. Every event starts disabled. A nil
// Notifier is valid and sends nothing.
type Notifier struct {
	title     string
	templates map[Event]string
	enabled   map[Event]bool
}

func New(prefs Preferences) *Notifier {
	n := &Notifier{
		title:     prefs.Title,
		templates: make(map[Event]string, len(prefs.Events)),
		enabled:   make(map[Event]bool),
	}
	for event, p := range prefs.Events {
		n.templates[event] = strings.TrimSpace(p.Template)
	}
	return n
}

// Enable turns event on or off.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n != nil {
		n.enabled[event] = enabled
	}
}

func (n *Notifier) on(event Event) bool {
	return n != nil && n.enabled[event] && n.templates[event] != ""
}

// Save reports a drawing written to location.
func (n *Notifier) Save(location string) {
	n.dispatch(EventSave, location, "")
}

// Load reports a restored drawing; detail summarises it.
func (n *Notifier) Load(detail string) {
	n.dispatch(EventLoad, orDrawing(detail), "")
}

// Export reports a written PNG and shows the file itself as the icon.
func (n *Notifier) Export(path string) {
	if !n.on(EventExport) {
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		n.dispatch(EventExport, path, "")
		return
	}
	icon := ""
	if _, err := os.Stat(abs); err == nil {
		icon = abs
	}
	n.dispatch(EventExport, abs, icon)
}

// Copy reports a clipboard write. img, when set, is written to a temporary
// preview that lives until the notification has been sent.
func (n *Notifier) Copy(detail string, img image.Image) {
	if !n.on(EventCopy) {
		return
	}
	icon := ""
	if img != nil {
		path, err := writePreview(img)
		if err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer removePreview(path)
			icon = path
		}
	}
	n.dispatch(EventCopy, orDrawing(detail), icon)
}

func (n *Notifier) dispatch(event Event, detail, icon string) {
	if !n.on(event) {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(n.templates[event], strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	opts := presentation[event]
	opts.IconPath = icon
	if err := send(n.title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func orDrawing(detail string) string {
	if strings.TrimSpace(detail) == "" {
		return "drawing"
	}
	return detail
}

func writePreview(img image.Image) (string, error) {
	f, err := os.CreateTemp("", "drafter-preview-*.png")
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func removePreview(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("remove preview: %v", err)
	}
}

package notify

import (
	"image"
	"os"
	"testing"

	"github.com/example/drafter/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func capture(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	orig := send
	send = func(title, body string, opts platform.Options) error {
		got = append(got, sent{title, body, opts})
		return nil
	}
	t.Cleanup(func() { send = orig })
	return &got
}

func TestDisabledByDefault(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Save("drafter.document")
	n.Load("")
	n.Copy("", nil)
	if len(*got) != 0 {
		t.Fatalf("expected no notifications, got %v", *got)
	}
}

func TestEnabledEvents(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Enable(EventLoad, true)
	n.Save("drafter.document")
	n.Load("")
	if len(*got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(*got))
	}
	if (*got)[0].body != "Saved drawing to drafter.document" {
		t.Errorf("save body = %q", (*got)[0].body)
	}
	if (*got)[1].body != "Loaded drawing" {
		t.Errorf("load body = %q", (*got)[1].body)
	}
	if (*got)[0].title != platform.AppName {
		t.Errorf("title = %q", (*got)[0].title)
	}
	if !(*got)[0].opts.Replace {
		t.Error("repeated saves should replace the previous notification")
	}
	if !(*got)[1].opts.Transient {
		t.Error("load notifications should be transient")
	}
}

func TestCopyPreviewIsRemoved(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy("image", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if len(*got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(*got))
	}
	icon := (*got)[0].opts.IconPath
	if icon == "" {
		t.Fatal("expected preview icon")
	}
	if _, err := os.Stat(icon); !os.IsNotExist(err) {
		t.Errorf("preview %s should be removed after dispatch", icon)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("DRAFTER_NOTIFY_TITLE", "Board")
	t.Setenv("DRAFTER_NOTIFY_EXPORT_TEXT", "PNG at %s")
	prefs := LoadPreferences()
	if prefs.Title != "Board" {
		t.Errorf("title = %q", prefs.Title)
	}
	if prefs.Events[EventExport].Template != "PNG at %s" {
		t.Errorf("export template = %q", prefs.Events[EventExport].Template)
	}
	if prefs.Events[EventSave].Template != DefaultPreferences().Events[EventSave].Template {
		t.Error("unset events keep their default template")
	}
}

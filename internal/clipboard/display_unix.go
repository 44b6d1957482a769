//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clipboard

import (
	"errors"
	"os"
)

var errNoDisplay = errors.New("clipboard needs an X11 or Wayland session (DISPLAY or WAYLAND_DISPLAY)")

// checkDisplay fails fast in headless sessions, where both backends would
// otherwise block or panic while connecting.
func checkDisplay() error {
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return errNoDisplay
	}
	return nil
}

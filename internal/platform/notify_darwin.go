//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify shows body through Notification Center. The category, when set,
// becomes the subtitle. Replace, Transient and Timeout are not supported
// by osascript.
func Notify(title, body string, opts Options) error {
	script := fmt.Sprintf("display notification %q with title %q", body, title)
	if opts.Category != "" {
		script += fmt.Sprintf(" subtitle %q", opts.Category)
	}
	return exec.Command("osascript", "-e", script).Run()
}

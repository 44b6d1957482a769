package platform

import "time"

// AppName is the application name shown by notification centres.
const AppName = "Drafter"

// DefaultTimeout is how long a notification stays up when Options leaves
// Timeout unset.
const DefaultTimeout = 5 * time.Second

// Options configures how a drafter notification is displayed.
type Options struct {
	// IconPath points at an image shown with the notification, usually the
	// exported PNG or a preview of the copied drawing.
	IconPath string
	// Category groups notifications, e.g. "transfer.complete" for saves and
	// exports. Only some platforms show it.
	Category string
	// Transient notifications are not kept in the notification history.
	Transient bool
	// Replace asks the platform to reuse the bubble previously shown for the
	// same Category instead of stacking a new one.
	Replace bool
	Timeout time.Duration
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

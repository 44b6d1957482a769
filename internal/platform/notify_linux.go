//go:build linux

package platform

import (
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest   = "org.freedesktop.Notifications"
	notifyPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyMethod = notifyDest + ".Notify"
)

var (
	replaceMu sync.Mutex
	// replaceIDs remembers the server id of the last bubble per category.
	replaceIDs = map[string]uint32{}
)

// Notify sends a desktop notification over the session bus.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{}
	if opts.Category != "" {
		hints["category"] = dbus.MakeVariant(opts.Category)
	}
	if opts.Transient {
		hints["transient"] = dbus.MakeVariant(true)
	}
	if opts.IconPath != "" {
		hints["image-path"] = dbus.MakeVariant(opts.IconPath)
	}

	var replaces uint32
	if opts.Replace {
		replaceMu.Lock()
		replaces = replaceIDs[opts.Category]
		replaceMu.Unlock()
	}

	var id uint32
	obj := conn.Object(notifyDest, notifyPath)
	err = obj.Call(notifyMethod, 0, AppName, replaces, opts.IconPath, title, body,
		[]string{}, hints, int32(opts.timeout().Milliseconds())).Store(&id)
	if err != nil {
		return err
	}
	if opts.Replace {
		replaceMu.Lock()
		replaceIDs[opts.Category] = id
		replaceMu.Unlock()
	}
	return nil
}

//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	notificationsName = "org.freedesktop.Notifications"
	notificationsPath = dbus.ObjectPath("/org/freedesktop/Notifications")
)

// caller is the part of dbus.BusObject the notifier uses.
type caller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

type dbusNotifier struct {
	obj caller
}

// New returns a Notifier backed by the freedesktop notification server on
// the session bus, or by beeep when there is no session bus.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return &beeepNotifier{}, nil //nolint:nilerr // fallback when D-Bus unavailable
	}
	return &dbusNotifier{obj: conn.Object(notificationsName, notificationsPath)}, nil
}

func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(notif.Urgency)),
		"desktop-entry": dbus.MakeVariant(desktopEntry),
	}

	// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout)
	var id uint32
	err := n.obj.Call(notificationsName+".Notify", 0,
		AppName,
		notif.ReplacesID,
		notif.Icon,
		notif.Title,
		notif.Body,
		[]string{},
		hints,
		notif.Timeout,
	).Store(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (n *dbusNotifier) Close(id uint32) error {
	return n.obj.Call(notificationsName+".CloseNotification", 0, id).Err
}

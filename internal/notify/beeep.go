package notify

import "github.com/gen2brain/beeep"

// Swapped in tests.
var (
	beeepNotify = beeep.Notify
	beeepAlert  = beeep.Alert
)

// beeepNotifier sends notifications through the platform's native
// mechanism. It cannot replace or close notifications.
type beeepNotifier struct{}

func (b *beeepNotifier) Notify(n Notification) (uint32, error) {
	if n.Urgency == UrgencyCritical {
		return 0, beeepAlert(n.Title, n.Body, n.Icon)
	}
	return 0, beeepNotify(n.Title, n.Body, n.Icon)
}

func (b *beeepNotifier) Close(_ uint32) error {
	return nil
}

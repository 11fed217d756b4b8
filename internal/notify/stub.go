//go:build !linux

package notify

// New returns a beeep-backed notifier on non-Linux platforms.
func New() (Notifier, error) {
	return &beeepNotifier{}, nil
}

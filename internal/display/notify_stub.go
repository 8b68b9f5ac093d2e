//go:build !windows && !linux

package display

import "context"

type nopNotifier struct{}

// NewNotifier creates the platform display change notifier. On this
// platform it never fires and changes are picked up by polling alone.
func NewNotifier() Notifier {
	return nopNotifier{}
}

func (nopNotifier) Start(ctx context.Context) (<-chan struct{}, error) {
	changes := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(changes)
	}()
	return changes, nil
}

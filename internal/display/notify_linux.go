//go:build linux

package display

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// recvTimeout bounds each blocking read so cancellation is noticed
const recvTimeout = 500 * time.Millisecond

// ueventNotifier listens for drm hotplug uevents on a netlink socket
type ueventNotifier struct{}

// NewNotifier creates the platform display change notifier
func NewNotifier() Notifier {
	return ueventNotifier{}
}

func (ueventNotifier) Start(ctx context.Context) (<-chan struct{}, error) {
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW|unix.SOCK_CLOEXEC, unix.NETLINK_KOBJECT_UEVENT)
	if err != nil {
		return nil, fmt.Errorf("netlink socket: %w", err)
	}

	// group 1 carries kernel uevents
	if err := unix.Bind(fd, &unix.SockaddrNetlink{Family: unix.AF_NETLINK, Groups: 1}); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("netlink bind: %w", err)
	}

	tv := unix.NsecToTimeval(recvTimeout.Nanoseconds())
	if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("netlink timeout: %w", err)
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		defer unix.Close(fd)

		log.Debug("Display: watching drm uevents")
		buf := make([]byte, 16*1024)
		for ctx.Err() == nil {
			n, _, err := unix.Recvfrom(fd, buf, 0)
			if err != nil {
				if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
					continue
				}
				log.WithError(err).Warn("Display: uevent read failed, notifier stopped")
				return
			}
			if isDisplayUevent(buf[:n]) {
				select {
				case changes <- struct{}{}:
				default:
				}
			}
		}
	}()

	return changes, nil
}

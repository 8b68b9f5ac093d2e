package posture

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"tkm/internal/dispatch"
	"tkm/internal/display"
)

// DefaultInterval is the polling period between detections
const DefaultInterval = 500 * time.Millisecond

// Monitor re-runs detection on a timer and on OS display change signals.
// Every detection runs on the dispatch queue.
type Monitor struct {
	classifier *Classifier
	queue      *dispatch.Queue
	notifier   display.Notifier
	interval   time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed atomic.Bool
}

// NewMonitor creates a monitor. notifier may be nil to rely on polling.
func NewMonitor(c *Classifier, q *dispatch.Queue, notifier display.Notifier, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		classifier: c,
		queue:      q,
		notifier:   notifier,
		interval:   interval,
	}
}

// Start posts an initial detection and launches the producers
func (m *Monitor) Start(ctx context.Context) error {
	ctx, m.cancel = context.WithCancel(ctx)

	if err := m.queue.Post(m.detect); err != nil {
		m.cancel()
		return err
	}

	var changes <-chan struct{}
	if m.notifier != nil {
		ch, err := m.notifier.Start(ctx)
		if err != nil {
			log.WithError(err).Warn("Monitor: display change notifier unavailable, polling only")
		} else {
			changes = ch
		}
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			case _, ok := <-changes:
				if !ok {
					changes = nil
					continue
				}
				log.Debug("Monitor: display configuration changed")
			}
			if err := m.queue.Post(m.detect); err != nil {
				return
			}
		}
	}()

	log.Infof("Monitor: started, polling every %v", m.interval)
	return nil
}

func (m *Monitor) detect() {
	if m.closed.Load() {
		return
	}
	m.classifier.DetectPosture()
}

// Close stops the producers. Once it returns no further event is emitted.
// It must not be called from the dispatch queue itself.
func (m *Monitor) Close() {
	if !m.closed.CompareAndSwap(false, true) {
		return
	}
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()

	// flush a detection that may already be running
	_ = m.queue.Do(context.Background(), func() {})
	log.Info("Monitor: stopped")
}

package cli

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"tkm/internal/appstate"
	"tkm/internal/config"
	"tkm/internal/dispatch"
	"tkm/internal/display"
	"tkm/internal/gesture"
	"tkm/internal/hotkey"
	"tkm/internal/input"
	"tkm/internal/placement"
	"tkm/internal/posture"
	"tkm/internal/touch"
)

// appDeps are the platform pieces an app runs on
type appDeps struct {
	Enumerator display.Enumerator
	// Notifier may be nil to rely on polling alone
	Notifier display.Notifier
	Injector input.Injector
	Window   placement.Window
	Status   placement.Status
	// Store may be nil to skip geometry persistence
	Store *appstate.Store
}

// app owns the running service. Posture handling, gestures and placement
// all run on its queue.
type app struct {
	cfgMgr     *config.Manager
	queue      *dispatch.Queue
	classifier *posture.Classifier
	monitor    *posture.Monitor
	policy     *placement.Policy
	trackpad   *gesture.Trackpad
	injector   input.Injector
	hotkeys    *hotkey.Manager

	cancel      context.CancelFunc
	queueDone   chan struct{}
	touchCancel context.CancelFunc
	touchWG     sync.WaitGroup
	stopOnce    sync.Once
}

func newApp(cfgMgr *config.Manager, deps appDeps) *app {
	cfg := cfgMgr.Get()
	q := dispatch.New(dispatch.DefaultSize)

	a := &app{
		cfgMgr:     cfgMgr,
		queue:      q,
		classifier: posture.NewClassifier(deps.Enumerator, cfg.Posture.Tolerance),
		policy:     placement.NewPolicy(deps.Window, deps.Status, deps.Store),
		trackpad:   gesture.NewTrackpad(cfg.Trackpad.Gesture(), deps.Injector),
		injector:   deps.Injector,
		queueDone:  make(chan struct{}),
	}
	a.policy.SetDefaultFullscreen(cfg.General.Fullscreen)
	if cfg.General.StartMinimized {
		a.policy.StartMinimized()
	}
	a.classifier.Subscribe(a.policy.Handle)
	a.monitor = posture.NewMonitor(a.classifier, q, deps.Notifier, cfg.Posture.PollInterval())
	a.hotkeys = hotkey.NewManager(a.post)
	a.registerHotkeys(cfg)
	cfgMgr.RegisterChangeCallback(a.configChanged)
	return a
}

// post queues a job, dropping it once the app is stopping
func (a *app) post(job func()) {
	if err := a.queue.Post(job); err != nil {
		log.WithError(err).Debug("App: job dropped")
	}
}

// start runs the queue and the posture monitor. Global hotkeys are
// optional and only warn when unavailable.
func (a *app) start(ctx context.Context, withHotkeys bool) error {
	ctx, a.cancel = context.WithCancel(ctx)

	go func() {
		defer close(a.queueDone)
		if err := a.queue.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Warn("App: queue stopped")
		}
	}()

	if err := a.monitor.Start(ctx); err != nil {
		a.cancel()
		<-a.queueDone
		return err
	}

	if withHotkeys {
		if err := a.hotkeys.Start(ctx); err != nil {
			log.WithError(err).Warn("Hotkey: global hotkeys unavailable")
		}
	}
	return nil
}

// attachTouch feeds a touch device into the trackpad until stop
func (a *app) attachTouch(ctx context.Context, dev *touch.Device) {
	ctx, a.touchCancel = context.WithCancel(ctx)
	a.touchWG.Add(1)
	go func() {
		defer a.touchWG.Done()
		defer dev.Close()
		err := dev.Run(ctx, a.queue, a.trackpad)
		if err != nil && ctx.Err() == nil {
			log.WithError(err).Error("Touch: device stopped")
		}
	}()
}

func (a *app) showKeyboard() {
	a.post(a.policy.ShowKeyboard)
}

func (a *app) registerHotkeys(cfg config.Config) {
	a.hotkeys.Clear()
	if err := a.hotkeys.Register(cfg.General.ShowHotkey, a.policy.ShowKeyboard); err != nil {
		log.WithError(err).Warnf("Hotkey: cannot register %q", cfg.General.ShowHotkey)
		return
	}
	if cfg.General.ShowHotkey != "" {
		log.Infof("Hotkey: %s shows the keyboard", cfg.General.ShowHotkey)
	}
}

// configChanged applies settings that can change while running. Posture
// tuning takes effect on the next start.
func (a *app) configChanged() {
	cfg := a.cfgMgr.Get()
	a.registerHotkeys(cfg)
	a.post(func() {
		a.trackpad.Engine().SetConfig(cfg.Trackpad.Gesture())
		log.Info("App: trackpad settings reloaded")
	})
}

// stop tears down in dependency order: no posture events after the
// monitor closes, touch input is cancelled on the queue, held buttons are
// released and the window geometry saved, then the queue and the injector go.
func (a *app) stop() {
	a.stopOnce.Do(func() {
		if a.cancel == nil {
			// never started, nothing drains the queue
			a.closeInjector()
			return
		}
		a.monitor.Close()

		if a.touchCancel != nil {
			a.touchCancel()
			a.touchWG.Wait()
		}

		ctx := context.Background()
		err := a.queue.Do(ctx, func() {
			a.trackpad.Cancel()
			a.policy.Close()
		})
		if err != nil {
			log.WithError(err).Debug("App: trackpad not cancelled")
		}

		a.cancel()
		<-a.queueDone
		a.closeInjector()
		log.Info("App: stopped")
	})
}

func (a *app) closeInjector() {
	if err := a.injector.Close(); err != nil {
		log.WithError(err).Warn("App: injector close failed")
	}
}

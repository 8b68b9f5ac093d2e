package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tkm/internal/appstate"
	"tkm/internal/config"
	"tkm/internal/gesture"
	"tkm/internal/input"
	"tkm/internal/keyboard"
	"tkm/internal/placement"
)

type testApp struct {
	*app
	rec    *input.Recorder
	window *placement.LogWindow
	cfgMgr *config.Manager
}

func newTestApp(t *testing.T, mutate func(*config.Config)) *testApp {
	t.Helper()
	return newTestAppWithStore(t, mutate, nil)
}

func newTestAppWithStore(t *testing.T, mutate func(*config.Config), store *appstate.Store) *testApp {
	t.Helper()
	cfgMgr := config.NewManagerAt(tempConfig(t))
	if mutate != nil {
		cfg := cfgMgr.Get()
		mutate(&cfg)
		require.NoError(t, cfgMgr.Set(cfg))
	}

	rec := input.NewRecorder(false)
	w := &placement.LogWindow{}
	a := newApp(cfgMgr, appDeps{
		Enumerator: bookLayout,
		Injector:   rec,
		Window:     w,
		Status:     placement.LogStatus{},
		Store:      store,
	})
	return &testApp{app: a, rec: rec, window: w, cfgMgr: cfgMgr}
}

// onQueue reads app state from the queue goroutine that owns it
func (ta *testApp) onQueue(t *testing.T, fn func()) {
	t.Helper()
	require.NoError(t, ta.queue.Do(context.Background(), fn))
}

func (ta *testApp) visible(t *testing.T) bool {
	var v bool
	ta.onQueue(t, func() { v = ta.window.Visible })
	return v
}

func TestAppShowsKeyboardInBookMode(t *testing.T) {
	ta := newTestApp(t, nil)
	require.NoError(t, ta.start(context.Background(), false))
	defer ta.stop()

	assert.Eventually(t, func() bool { return ta.visible(t) }, time.Second, 10*time.Millisecond)

	var bounds, want string
	ta.onQueue(t, func() { bounds = ta.window.Bounds.String() })
	want = bookLayout[0].WorkArea.String()
	assert.Equal(t, want, bounds)
}

func TestAppTouchReachesInjector(t *testing.T) {
	ta := newTestApp(t, nil)
	require.NoError(t, ta.start(context.Background(), false))
	defer ta.stop()

	ta.onQueue(t, func() {
		ta.trackpad.ContactDown(1, gesture.Point{X: 10, Y: 10}, time.Now())
		ta.trackpad.ContactUp(1, time.Now())
	})
	assert.Equal(t, []input.Call{{Op: "click", Button: input.ButtonLeft}}, ta.rec.Calls())
}

func TestAppHotkeyShowsMinimizedKeyboard(t *testing.T) {
	ta := newTestApp(t, func(c *config.Config) {
		c.General.StartMinimized = true
		c.General.ShowHotkey = "Ctrl+Alt+K"
	})
	require.NoError(t, ta.start(context.Background(), false))
	defer ta.stop()

	// let the first detection run
	ta.onQueue(t, func() {})
	ta.onQueue(t, func() {})
	assert.False(t, ta.visible(t))

	ta.hotkeys.UpdateState(keyboard.VKControl, true)
	ta.hotkeys.UpdateState(keyboard.VKMenu, true)
	ta.hotkeys.UpdateState('K', true)

	assert.Eventually(t, func() bool { return ta.visible(t) }, time.Second, 10*time.Millisecond)
}

func TestAppConfigChangeReachesTrackpad(t *testing.T) {
	ta := newTestApp(t, nil)
	require.NoError(t, ta.start(context.Background(), false))
	defer ta.stop()

	cfg := ta.cfgMgr.Get()
	cfg.Trackpad.Sensitivity = 3
	require.NoError(t, ta.cfgMgr.Set(cfg))

	var got float64
	ta.onQueue(t, func() { got = ta.trackpad.Engine().Config().Sensitivity })
	assert.Equal(t, 3.0, got)
}

func TestAppStopReleasesButtons(t *testing.T) {
	ta := newTestApp(t, nil)
	require.NoError(t, ta.start(context.Background(), false))

	ta.onQueue(t, func() { ta.trackpad.Buttons().Press(input.ButtonLeft) })
	ta.stop()

	calls := ta.rec.Calls()
	require.NotEmpty(t, calls)
	assert.Equal(t, input.Call{Op: "button", Button: input.ButtonLeft, Down: false}, calls[len(calls)-1])

	// stopped queue refuses work and a second stop is a no-op
	assert.Error(t, ta.queue.Post(func() {}))
	assert.NotPanics(t, ta.stop)
}

func TestAppStopWithoutStart(t *testing.T) {
	ta := newTestApp(t, nil)
	assert.NotPanics(t, ta.stop)
}

func TestAppStopSavesWindowGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), appstate.FileName)
	ta := newTestAppWithStore(t, nil, appstate.NewStore(path))
	require.NoError(t, ta.start(context.Background(), false))

	assert.Eventually(t, func() bool { return ta.visible(t) }, time.Second, 10*time.Millisecond)
	ta.stop()

	saved, err := appstate.NewStore(path).Load()
	require.NoError(t, err)
	area := bookLayout[0].WorkArea
	assert.Equal(t, appstate.Window{
		Left:   float64(area.Left),
		Top:    float64(area.Top),
		Width:  float64(area.Width()),
		Height: float64(area.Height()),
	}, saved.Window)
}

// Package tray provides the notification area icon using getlantern/systray.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
	log "github.com/sirupsen/logrus"
)

// MenuItem represents a menu item
type MenuItem struct {
	ID       int
	Title    string
	Callback func()
	checked  bool
	item     *systray.MenuItem
}

// Tray manages the tray icon, its menu and the posture status line. The
// status setters may be called before Run; values are applied once the
// tray is ready.
type Tray struct {
	mu      sync.Mutex
	title   string
	tooltip string
	status  string
	items   []*MenuItem
	ready   bool

	statusItem *systray.MenuItem
	quitCh     chan struct{}
}

// New creates a tray with a title, initial tooltip and status line
func New(title, tooltip, status string) *Tray {
	return &Tray{
		title:   title,
		tooltip: tooltip,
		status:  status,
		quitCh:  make(chan struct{}),
	}
}

// AddMenuItem adds a menu item below the status line. Items must be added
// before Run.
func (t *Tray) AddMenuItem(title string, callback func()) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := len(t.items)
	t.items = append(t.items, &MenuItem{ID: id, Title: title, Callback: callback})
	return id
}

// AddSeparator adds a separator to the menu
func (t *Tray) AddSeparator() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, nil) // nil indicates separator
}

// SetItemChecked sets the checked state of a menu item
func (t *Tray) SetItemChecked(id int, checked bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id < 0 || id >= len(t.items) || t.items[id] == nil {
		return
	}
	mi := t.items[id]
	mi.checked = checked
	if mi.item == nil {
		return
	}
	if checked {
		mi.item.Check()
	} else {
		mi.item.Uncheck()
	}
}

// SetPostureStatus updates the disabled status line at the top of the menu
func (t *Tray) SetPostureStatus(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = text
	if t.statusItem != nil {
		t.statusItem.SetTitle(text)
	}
}

// SetTooltip updates the icon tooltip
func (t *Tray) SetTooltip(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tooltip = text
	if t.ready {
		systray.SetTooltip(text)
	}
}

// Notify reports a short message. systray has no balloon API, so the
// message goes to the log.
func (t *Tray) Notify(title, message string) {
	log.WithField("title", title).Info("Tray: " + message)
}

// Status returns the current status line
func (t *Tray) Status() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Tooltip returns the current tooltip
func (t *Tray) Tooltip() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tooltip
}

// Run starts the tray event loop and blocks until Stop. It must be called
// from the main goroutine on macOS.
func (t *Tray) Run(onExit func()) {
	systray.Run(t.setupMenu, func() {
		close(t.quitCh)
		if onExit != nil {
			onExit()
		}
	})
}

// setupMenu is called when systray is ready
func (t *Tray) setupMenu() {
	t.mu.Lock()
	defer t.mu.Unlock()

	systray.SetIcon(trayIcon())
	systray.SetTitle(t.title)
	systray.SetTooltip(t.tooltip)

	t.statusItem = systray.AddMenuItem(t.status, "")
	t.statusItem.Disable()
	systray.AddSeparator()

	for _, mi := range t.items {
		if mi == nil {
			systray.AddSeparator()
			continue
		}
		mi.item = systray.AddMenuItem(mi.Title, "")
		if mi.checked {
			mi.item.Check()
		}
		if mi.Callback != nil {
			go t.watch(mi)
		}
	}
	t.ready = true
	log.Debug("Tray: ready")
}

func (t *Tray) watch(mi *MenuItem) {
	for {
		select {
		case <-mi.item.ClickedCh:
			mi.Callback()
		case <-t.quitCh:
			return
		}
	}
}

// Stop stops the tray
func (t *Tray) Stop() {
	systray.Quit()
}

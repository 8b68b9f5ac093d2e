package placement

import (
	log "github.com/sirupsen/logrus"

	"tkm/internal/display"
)

// LogWindow is a Window with no surface of its own. It logs what a real
// window would do, for headless and dry runs.
type LogWindow struct {
	Visible    bool
	Bounds     display.Rect
	Fullscreen bool
}

func (w *LogWindow) Show() error {
	w.Visible = true
	log.Infof("Window: show at %s", w.Bounds)
	return nil
}

func (w *LogWindow) Hide() error {
	w.Visible = false
	log.Info("Window: hide")
	return nil
}

func (w *LogWindow) Place(bounds display.Rect, fullscreen bool) error {
	w.Bounds, w.Fullscreen = bounds, fullscreen
	log.Debugf("Window: place %s fullscreen=%v", bounds, fullscreen)
	return nil
}

// Geometry reports the last placement
func (w *LogWindow) Geometry() (display.Rect, bool, bool) {
	return w.Bounds, w.Fullscreen, w.Bounds != (display.Rect{})
}

// LogStatus is a Status that writes to the log
type LogStatus struct{}

func (LogStatus) SetPostureStatus(text string) {
	log.Info(text)
}

func (LogStatus) SetTooltip(string) {}

func (LogStatus) Notify(title, message string) {
	log.Infof("%s: %s", title, message)
}

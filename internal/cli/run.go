package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tkm/internal/appstate"
	"tkm/internal/autostart"
	"tkm/internal/config"
	"tkm/internal/display"
	"tkm/internal/input"
	"tkm/internal/osutils"
	"tkm/internal/placement"
	"tkm/internal/posture"
	"tkm/internal/touch"
	"tkm/internal/tray"
)

var (
	dryRun      bool
	noTray      bool
	noTouch     bool
	noHotkeys   bool
	touchDevice string
)

// platform constructors, replaced in tests
var (
	newEnumerator = display.NewEnumerator
	newNotifier   = display.NewNotifier
	newInjector   = func() (input.Injector, error) { return input.NewInjector() }
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the keyboard service",
	Long: `Run the service: watch the display arrangement, place the keyboard for
the current posture and turn touches on the lower screen into pointer input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgMgr, err := loadConfig()
		if err != nil {
			return err
		}
		return runService(cfgMgr)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log injected input instead of sending it")
	runCmd.Flags().BoolVar(&noTray, "no-tray", false, "run without the tray icon")
	runCmd.Flags().BoolVar(&noTouch, "no-touch", false, "do not read a touch device")
	runCmd.Flags().BoolVar(&noHotkeys, "no-hotkeys", false, "do not install global hotkeys")
	runCmd.Flags().StringVar(&touchDevice, "device", "", "touch event device (default from config, else auto-detect)")
}

func runService(cfgMgr *config.Manager) error {
	log.Infof("TKM %s starting...", version)
	cfg := cfgMgr.Get()

	enum, err := newEnumerator()
	if err != nil {
		return fmt.Errorf("display enumeration unavailable: %w", err)
	}

	var injector input.Injector
	if dryRun {
		injector = input.NewRecorder(true)
	} else {
		if injector, err = newInjector(); err != nil {
			return fmt.Errorf("input injection unavailable (try --dry-run): %w", err)
		}
		if runtime.GOOS == "windows" && !osutils.IsAdmin() {
			log.Info("Note: input does not reach elevated windows unless tkm runs as Administrator")
		}
		syncAutostart(cfg.General.StartOnBoot)
	}

	var notifier display.Notifier
	if cfg.Posture.UseNotifier {
		notifier = newNotifier()
	}

	// geometry lives next to the config file
	store := appstate.NewStore(appstate.DefaultPath(filepath.Dir(cfgMgr.Path())))
	showTray := cfg.General.ShowTray && !noTray

	var t *tray.Tray
	var status placement.Status = placement.LogStatus{}
	if showTray {
		t = tray.New("TKM", placement.TooltipDefault, "Posture: "+posture.PostureUnknown.Describe())
		status = t
	}

	a := newApp(cfgMgr, appDeps{
		Enumerator: enum,
		Notifier:   notifier,
		Injector:   injector,
		Window:     &placement.LogWindow{},
		Status:     status,
		Store:      store,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.start(ctx, !noHotkeys); err != nil {
		a.stop()
		return err
	}
	defer a.stop()

	if cfg.Touch.Enabled && !noTouch {
		path := touchDevice
		if path == "" {
			path = cfg.Touch.Device
		}
		dev, err := touch.Open(touch.Options{Path: path, Grab: cfg.Touch.Grab, Scale: cfg.Touch.Scale})
		if err != nil {
			log.WithError(err).Warn("Touch: no touch input, trackpad disabled")
		} else {
			a.attachTouch(ctx, dev)
		}
	}

	if t == nil {
		<-ctx.Done()
		log.Info("TKM shutting down...")
		return nil
	}

	buildMenu(t, a, cfgMgr)
	go func() {
		<-ctx.Done()
		t.Stop()
	}()
	// blocks the main goroutine, as macOS requires
	t.Run(nil)
	log.Info("TKM shutting down...")
	return nil
}

func buildMenu(t *tray.Tray, a *app, cfgMgr *config.Manager) {
	t.AddMenuItem("Show Keyboard", a.showKeyboard)
	t.AddMenuItem("Settings", func() {
		if _, err := os.Stat(cfgMgr.Path()); os.IsNotExist(err) {
			if err := cfgMgr.Save(); err != nil {
				log.WithError(err).Warn("Tray: could not write config")
				return
			}
		}
		if err := osutils.OpenPath(cfgMgr.Path()); err != nil {
			log.WithError(err).Warn("Tray: could not open settings")
		}
	})
	t.AddMenuItem("Reload Settings", func() {
		if err := cfgMgr.Load(); err != nil {
			log.WithError(err).Warn("Tray: settings not reloaded")
		}
	})

	var loginID int
	loginID = t.AddMenuItem("Start on Login", func() {
		on := !autostart.IsEnabled()
		if err := setAutostart(cfgMgr, on); err != nil {
			log.WithError(err).Warn("Tray: autostart not changed")
			return
		}
		t.SetItemChecked(loginID, on)
	})
	t.SetItemChecked(loginID, autostart.IsEnabled())

	t.AddSeparator()
	t.AddMenuItem("Quit", t.Stop)
}

// syncAutostart makes the login entry match the config
func syncAutostart(want bool) {
	if autostart.IsEnabled() == want {
		return
	}
	var err error
	if want {
		err = autostart.Enable()
	} else {
		err = autostart.Disable()
	}
	if err != nil {
		log.WithError(err).Warn("Autostart: could not apply start_on_boot")
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"tkm/internal/dispatch"
	"tkm/internal/display"
	"tkm/internal/posture"
)

var postureWatch bool

// postureReport is the output of the posture command
type postureReport struct {
	Posture        string `json:"posture"`
	Arrangement    string `json:"arrangement"`
	Screens        int    `json:"screens"`
	ShowKeyboard   bool   `json:"show_keyboard"`
	KeyboardScreen string `json:"keyboard_screen,omitempty"`
}

func report(c *posture.Classifier, screens int) postureReport {
	r := postureReport{
		Posture:      c.Posture().Describe(),
		Arrangement:  c.Arrangement().String(),
		Screens:      screens,
		ShowKeyboard: c.ShouldShowKeyboard(),
	}
	if s, ok := c.KeyboardScreen(); ok {
		r.KeyboardScreen = s.ID
	}
	return r
}

var postureCmd = &cobra.Command{
	Use:   "posture",
	Short: "Detect the device posture",
	Long: `Classify the current display arrangement. With --watch, keep running and
print every posture change until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgMgr, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := cfgMgr.Get()

		enum, err := newEnumerator()
		if err != nil {
			return err
		}
		c := posture.NewClassifier(enum, cfg.Posture.Tolerance)
		out := cmd.OutOrStdout()

		if !postureWatch {
			c.DetectPosture()
			screens, err := c.Screens()
			if err != nil {
				return err
			}
			return printJSON(out, report(c, len(screens)))
		}

		var notifier display.Notifier
		if cfg.Posture.UseNotifier {
			notifier = newNotifier()
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watchPosture(ctx, c, notifier, cfg.Posture.PollInterval(), out)
	},
}

// watchPosture prints an event line per posture change until ctx is done
func watchPosture(ctx context.Context, c *posture.Classifier, notifier display.Notifier, interval time.Duration, out io.Writer) error {
	q := dispatch.New(0)
	c.Subscribe(func(ev posture.Event) {
		fmt.Fprintf(out, "%s\t%s\t%d screens\n", ev.Posture.Describe(), ev.Arrangement, len(ev.Screens))
	})

	m := posture.NewMonitor(c, q, notifier, interval)

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- q.Run(runCtx) }()

	if err := m.Start(ctx); err != nil {
		cancel()
		<-done
		return err
	}
	<-ctx.Done()
	m.Close()
	cancel()
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func init() {
	rootCmd.AddCommand(postureCmd)
	postureCmd.Flags().BoolVar(&postureWatch, "watch", false, "print posture changes until interrupted")
}

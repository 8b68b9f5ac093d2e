package cli

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tkm/internal/input"
	"tkm/internal/keyboard"
)

var (
	keyDryRun bool
	keyList   bool
)

var keyCmd = &cobra.Command{
	Use:   "key [tag|chord]...",
	Short: "Send keys as the on-screen keyboard would",
	Long: `Send each argument as a key press. A plain tag ("Enter", "F5", "A") is a
single key; a "+" separated chord ("Ctrl+Alt+T") is pressed together.`,
	Example: `  tkm key Ctrl+C
  tkm key H I Enter
  tkm key --list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if keyList {
			for _, tag := range keyboard.Tags() {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		}
		if len(args) == 0 {
			return errors.New("no keys given")
		}

		var injector input.Injector
		if keyDryRun {
			injector = input.NewRecorder(true)
		} else {
			var err error
			if injector, err = newInjector(); err != nil {
				return err
			}
		}
		defer injector.Close()

		return sendKeys(keyboard.New(injector), args)
	},
}

// sendKeys presses each tag or chord in order, stopping at the first bad one
func sendKeys(kb *keyboard.Keyboard, args []string) error {
	for _, arg := range args {
		var err error
		if strings.Contains(arg, "+") && len(arg) > 1 {
			err = kb.SendChord(arg)
		} else {
			err = kb.Press(arg)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
		log.WithField("key", arg).Debug("Key: sent")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.Flags().BoolVar(&keyDryRun, "dry-run", false, "print the input instead of sending it")
	keyCmd.Flags().BoolVar(&keyList, "list", false, "list the known key tags")
}

// Package cli implements the tkm command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tkm/internal/config"
)

const version = "dev"

var (
	verbose    bool
	configPath string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tkm",
	Short: "Touch keyboard and trackpad for dual-screen laptops",
	Long: `tkm turns the lower screen of a dual-screen laptop into a keyboard and
trackpad. It follows the device posture: the keyboard shows in book mode and
hides when the screens sit side by side.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func initConfig() {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is the per-user config dir)")
}

// Execute runs the root command
func Execute() error {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	return rootCmd.Execute()
}

// loadConfig opens the config file. A broken file is reported and the
// defaults are used, as the service must still come up.
func loadConfig() (*config.Manager, error) {
	var mgr *config.Manager
	if configPath != "" {
		mgr = config.NewManagerAt(configPath)
	} else {
		var err error
		if mgr, err = config.NewManager(); err != nil {
			return nil, fmt.Errorf("failed to initialize config: %w", err)
		}
	}
	if err := mgr.Load(); err != nil {
		log.WithError(err).Warn("Config: failed to load, using defaults")
	}
	return mgr, nil
}

// printJSON writes data as indented JSON
func printJSON(w io.Writer, data any) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

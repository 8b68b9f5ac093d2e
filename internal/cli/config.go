package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tkm/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgMgr, err := loadConfig()
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), cfgMgr.Get())
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgMgr, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cfgMgr.Path())
		return nil
	},
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgMgr, err := loadConfig()
		if err != nil {
			return err
		}
		if _, err := os.Stat(cfgMgr.Path()); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", cfgMgr.Path())
		}
		if err := cfgMgr.Set(*config.DefaultConfig()); err != nil {
			return err
		}
		if err := cfgMgr.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cfgMgr.Path())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <section.key> <value>",
	Short: "Change one setting",
	Example: `  tkm config set trackpad.sensitivity 2
  tkm config set general.show_hotkey Ctrl+Alt+K`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgMgr, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := cfgMgr.Get()
		if err := cfg.SetValue(args[0], args[1]); err != nil {
			return err
		}
		if err := cfgMgr.Set(cfg); err != nil {
			return err
		}
		return cfgMgr.Save()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configPathCmd, configInitCmd, configSetCmd)
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
}

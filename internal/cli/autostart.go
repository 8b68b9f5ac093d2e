package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tkm/internal/autostart"
	"tkm/internal/config"
)

var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Manage starting on login",
}

var autostartEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Start tkm when you log in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeAutostart(cmd, true)
	},
}

var autostartDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Stop starting tkm on login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeAutostart(cmd, false)
	},
}

var autostartStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether tkm starts on login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), onOff(autostart.IsEnabled()))
		return nil
	},
}

func changeAutostart(cmd *cobra.Command, on bool) error {
	cfgMgr, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setAutostart(cfgMgr, on); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), onOff(on))
	return nil
}

// setAutostart applies the login entry and records it in the config
func setAutostart(cfgMgr *config.Manager, on bool) error {
	var err error
	if on {
		err = autostart.Enable()
	} else {
		err = autostart.Disable()
	}
	if err != nil {
		return err
	}

	cfg := cfgMgr.Get()
	cfg.General.StartOnBoot = on
	if err := cfgMgr.Set(cfg); err != nil {
		return err
	}
	return cfgMgr.Save()
}

func onOff(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}

func init() {
	rootCmd.AddCommand(autostartCmd)
	autostartCmd.AddCommand(autostartEnableCmd, autostartDisableCmd, autostartStatusCmd)
}

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tkm/internal/posture"
)

var screensJSON bool

var screensCmd = &cobra.Command{
	Use:   "screens",
	Short: "List connected displays",
	Long:  `List the active displays, sorted left to right then top to bottom.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		enum, err := newEnumerator()
		if err != nil {
			return err
		}
		screens, err := enum.ListDisplays()
		if err != nil {
			return err
		}
		posture.Sort(screens)

		if screensJSON {
			return printJSON(cmd.OutOrStdout(), screens)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tBOUNDS\tWORK AREA\tPRIMARY")
		for _, s := range screens {
			primary := ""
			if s.Primary {
				primary = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Bounds, s.WorkArea, primary)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(screensCmd)
	screensCmd.Flags().BoolVar(&screensJSON, "json", false, "print JSON")
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Show the valid learner id range",
	Args:  cobra.NoArgs,
	RunE:  runRange,
}

func init() {
	rootCmd.AddCommand(rangeCmd)
}

func runRange(cmd *cobra.Command, _ []string) error {
	svc, err := loadService(cmd.Context(), 0)
	if err != nil {
		return err
	}

	r, err := svc.Range(cmd.Context())
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), r)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Learner ids: %d..%d\n", r.Min, r.Max)
	return nil
}

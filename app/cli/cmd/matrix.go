package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var flagMatrixDataset string

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Print the cosine similarity matrix of a signal dataset",
	Args:  cobra.NoArgs,
	RunE:  runMatrix,
}

func init() {
	matrixCmd.Flags().StringVarP(&flagMatrixDataset, "dataset", "d", "", "Signal dataset name")
	_ = matrixCmd.MarkFlagRequired("dataset")
	rootCmd.AddCommand(matrixCmd)
}

func runMatrix(cmd *cobra.Command, _ []string) error {
	svc, err := loadService(cmd.Context(), 0)
	if err != nil {
		return err
	}

	view, err := svc.Matrix(cmd.Context(), flagMatrixDataset)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return printJSON(out, view)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	var b strings.Builder
	b.WriteString("\t")
	for _, id := range view.LearnerIDs {
		fmt.Fprintf(&b, "%d\t", id)
	}
	fmt.Fprintln(tw, b.String())

	for i, row := range view.Rows {
		b.Reset()
		fmt.Fprintf(&b, "%d\t", view.LearnerIDs[i])
		for _, v := range row {
			fmt.Fprintf(&b, "%.3f\t", v)
		}
		fmt.Fprintln(tw, b.String())
	}
	return tw.Flush()
}

package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// same bound as the HTTP similar endpoint
const maxSimilarK = 50

var (
	flagSimilarLearner int
	flagSimilarK       int
)

var similarCmd = &cobra.Command{
	Use:   "similar",
	Short: "List the most similar learners in each signal dataset",
	Args:  cobra.NoArgs,
	RunE:  runSimilar,
}

func init() {
	similarCmd.Flags().IntVarP(&flagSimilarLearner, "learner", "l", 0, "Learner id")
	similarCmd.Flags().IntVar(&flagSimilarK, "k", 0, "Neighbors per dataset (default from manifest)")
	_ = similarCmd.MarkFlagRequired("learner")
	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, _ []string) error {
	if flagSimilarK < 0 || flagSimilarK > maxSimilarK {
		return fmt.Errorf("--k must be between 1 and %d", maxSimilarK)
	}

	svc, err := loadService(cmd.Context(), flagSimilarK)
	if err != nil {
		return err
	}

	similar, err := svc.SimilarLearners(cmd.Context(), flagSimilarLearner, 0)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return printJSON(out, similar)
	}

	names := make([]string, 0, len(similar.ByDataset))
	for name := range similar.ByDataset {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATASET\tRANK\tLEARNER\tSIMILARITY")
	for _, name := range names {
		for i, n := range similar.ByDataset[name] {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%.4f\n", name, i+1, n.LearnerID, n.Similarity)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nGroup: %s\n", joinInts(similar.Group))
	return nil
}

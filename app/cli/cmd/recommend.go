package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var flagRecommendLearner int

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend a platform for a learner",
	Args:  cobra.NoArgs,
	RunE:  runRecommend,
}

func init() {
	recommendCmd.Flags().IntVarP(&flagRecommendLearner, "learner", "l", 0, "Learner id")
	_ = recommendCmd.MarkFlagRequired("learner")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	svc, err := loadService(cmd.Context(), 0)
	if err != nil {
		return err
	}

	result, err := svc.RecommendFor(cmd.Context(), flagRecommendLearner)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return printJSON(out, result)
	}

	if result.Recommended {
		fmt.Fprintf(out, "Recommended platform for learner %d: %s\n", result.LearnerID, result.Platform)
	} else {
		fmt.Fprintf(out, "No platform has attention data for the learners similar to %d\n", result.LearnerID)
	}
	fmt.Fprintf(out, "Similar learners: %s\n\n", joinInts(result.Candidates))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PLATFORM\tMEAN ATTENTION\tSAMPLES")
	for _, s := range result.Scores {
		mean := "n/a"
		if s.Mean != nil {
			mean = strconv.FormatFloat(*s.Mean, 'f', 4, 64)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", s.Platform, mean, s.Samples)
	}
	return tw.Flush()
}

func joinInts(ids []int) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

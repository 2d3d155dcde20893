package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"eduPlatformReco/business/recommend"
	"eduPlatformReco/internal/repository/csvfile"
	"eduPlatformReco/pkg/config"
	"eduPlatformReco/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	flagManifest string
	flagJSON     bool
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:          "platformreco",
	Short:        "Recommend a learning platform from learner behaviour signals",
	SilenceUsage: true,
	Long: `platformreco loads the two signal datasets and the platform attention
datasets named in a manifest, finds the learners most similar to a given
learner and reports the platform on which that group was most attentive.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		env := "production"
		if flagVerbose {
			env = "development"
		}
		logger.InitWithWriter(env, cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagManifest, "manifest", "m", defaultManifest(), "Path to the dataset manifest (YAML)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log at debug level to stderr")
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultManifest() string {
	if p := os.Getenv("DATASET_MANIFEST"); p != "" {
		return p
	}
	return "datasets.yaml"
}

// loadService reads the manifest's CSV files and builds a ready service.
// k <= 0 falls back to the manifest, then the built-in default.
func loadService(ctx context.Context, k int) (*recommend.Service, error) {
	manifest, err := config.LoadManifest(flagManifest)
	if err != nil {
		return nil, err
	}
	if err := config.RequirePaths(manifest); err != nil {
		return nil, err
	}
	if k <= 0 {
		k = manifest.Neighbors
	}

	svc := recommend.NewService(csvfile.NewDatasetRepository(manifest), k)
	if err := svc.Reload(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

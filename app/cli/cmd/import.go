package cmd

import (
	"errors"
	"fmt"

	"eduPlatformReco/business/featurestore"
	"eduPlatformReco/internal/repository/csvfile"
	psqlRepo "eduPlatformReco/internal/repository/postgres"
	"eduPlatformReco/pkg/config"
	"eduPlatformReco/pkg/database"
	"eduPlatformReco/pkg/logger"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy the manifest's CSV datasets into Postgres",
	Long: `Validates the CSV datasets named in the manifest and writes them to the
signal_features and attention_samples tables, for servers started with
DATASET_SOURCE=postgres. Connection settings come from the DB_* variables.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Database.Password == "" {
		return errors.New("missing database password (DB_PASSWORD)")
	}

	manifest, err := config.LoadManifest(flagManifest)
	if err != nil {
		return err
	}
	if err := config.RequirePaths(manifest); err != nil {
		return err
	}

	data, err := csvfile.NewDatasetRepository(manifest).Load(ctx)
	if err != nil {
		return err
	}
	if _, err := featurestore.New(data); err != nil {
		return fmt.Errorf("refusing to import: %w", err)
	}

	db, err := database.InitPostgres(cfg)
	if err != nil {
		return err
	}
	repo := psqlRepo.NewDatasetRepository(db, manifest)
	if err := repo.Migrate(ctx); err != nil {
		return err
	}

	if err := repo.Import(ctx, data); err != nil {
		return err
	}
	for _, ds := range data.Signals {
		logger.Info("Imported signal dataset", "dataset", ds.Name, "rows", len(ds.Records))
	}
	for _, ds := range data.Platforms {
		logger.Info("Imported platform dataset", "platform", ds.Name, "samples", len(ds.Samples))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d signal and %d platform datasets\n", len(data.Signals), len(data.Platforms))
	return nil
}

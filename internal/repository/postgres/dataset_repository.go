package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"eduPlatformReco/business/featurestore"
	"eduPlatformReco/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DatasetRepository reads signal and platform datasets from Postgres.
// Dataset names in the manifest select rows by signal_features.dataset and
// attention_samples.platform.
type DatasetRepository struct {
	DB       *gorm.DB
	manifest domain.DatasetManifest
}

func NewDatasetRepository(db *gorm.DB, manifest domain.DatasetManifest) *DatasetRepository {
	return &DatasetRepository{
		DB:       db,
		manifest: manifest,
	}
}

func (r *DatasetRepository) Migrate(ctx context.Context) error {
	if err := r.DB.WithContext(ctx).AutoMigrate(&domain.SignalFeatureRow{}, &domain.AttentionSampleRow{}); err != nil {
		return fmt.Errorf("failed to migrate dataset tables: %w", err)
	}
	return nil
}

func (r *DatasetRepository) Load(ctx context.Context) (featurestore.Datasets, error) {
	if err := ctx.Err(); err != nil {
		return featurestore.Datasets{}, fmt.Errorf("context error: %w", err)
	}

	var out featurestore.Datasets

	for _, src := range r.manifest.Signals {
		ds, err := r.loadSignals(ctx, src.Name)
		if err != nil {
			return featurestore.Datasets{}, err
		}
		out.Signals = append(out.Signals, ds)
	}

	for _, src := range r.manifest.Platforms {
		ds, err := r.loadPlatform(ctx, src.Name)
		if err != nil {
			return featurestore.Datasets{}, err
		}
		out.Platforms = append(out.Platforms, ds)
	}

	return out, nil
}

func (r *DatasetRepository) loadSignals(ctx context.Context, name string) (domain.SignalDataset, error) {
	var rows []domain.SignalFeatureRow
	err := r.DB.WithContext(ctx).
		Where("dataset = ?", name).
		Order("learner_id ASC").
		Find(&rows).Error
	if err != nil {
		return domain.SignalDataset{}, fmt.Errorf("failed to query signal_features for %s: %w", name, err)
	}

	return signalDatasetFromRows(name, rows)
}

func signalDatasetFromRows(name string, rows []domain.SignalFeatureRow) (domain.SignalDataset, error) {
	ds := domain.SignalDataset{Name: name, Records: make([]domain.LearnerRecord, 0, len(rows))}
	for _, row := range rows {
		var features []float64
		if err := json.Unmarshal(row.Features, &features); err != nil {
			return domain.SignalDataset{}, &domain.InvalidInputError{
				Dataset:   name,
				LearnerID: row.LearnerID,
				Reason:    "features column is not a JSON number array",
			}
		}
		ds.Records = append(ds.Records, domain.LearnerRecord{LearnerID: row.LearnerID, Features: features})
	}

	return ds, nil
}

func (r *DatasetRepository) loadPlatform(ctx context.Context, name string) (domain.PlatformDataset, error) {
	var rows []domain.AttentionSampleRow
	err := r.DB.WithContext(ctx).
		Where("platform = ?", name).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return domain.PlatformDataset{}, fmt.Errorf("failed to query attention_samples for %s: %w", name, err)
	}

	ds := domain.PlatformDataset{Name: name, Samples: make([]domain.AttentionRecord, 0, len(rows))}
	for _, row := range rows {
		ds.Samples = append(ds.Samples, domain.AttentionRecord{LearnerID: row.LearnerID, Attention: row.Attention})
	}

	return ds, nil
}

// Import replaces the stored rows of every dataset in data. All datasets are
// written in one transaction, so a failed import leaves the previous data intact.
func (r *DatasetRepository) Import(ctx context.Context, data featurestore.Datasets) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return writeDatasets(gormWriter{tx: tx}, data)
	})
}

// tableWriter replaces all rows of one dataset.
type tableWriter interface {
	ReplaceSignals(dataset string, rows []domain.SignalFeatureRow) error
	ReplacePlatform(platform string, rows []domain.AttentionSampleRow) error
}

func writeDatasets(w tableWriter, data featurestore.Datasets) error {
	for _, ds := range data.Signals {
		rows, err := signalRows(ds)
		if err != nil {
			return err
		}
		if err := w.ReplaceSignals(ds.Name, rows); err != nil {
			return err
		}
	}
	for _, ds := range data.Platforms {
		if err := w.ReplacePlatform(ds.Name, platformRows(ds)); err != nil {
			return err
		}
	}
	return nil
}

type gormWriter struct {
	tx *gorm.DB
}

func (g gormWriter) ReplaceSignals(dataset string, rows []domain.SignalFeatureRow) error {
	if err := g.tx.Where("dataset = ?", dataset).Delete(&domain.SignalFeatureRow{}).Error; err != nil {
		return fmt.Errorf("failed to clear signal_features for %s: %w", dataset, err)
	}
	if len(rows) == 0 {
		return nil
	}
	if err := g.tx.CreateInBatches(&rows, 500).Error; err != nil {
		return fmt.Errorf("failed to insert signal_features for %s: %w", dataset, err)
	}
	return nil
}

func (g gormWriter) ReplacePlatform(platform string, rows []domain.AttentionSampleRow) error {
	if err := g.tx.Where("platform = ?", platform).Delete(&domain.AttentionSampleRow{}).Error; err != nil {
		return fmt.Errorf("failed to clear attention_samples for %s: %w", platform, err)
	}
	if len(rows) == 0 {
		return nil
	}
	if err := g.tx.CreateInBatches(&rows, 500).Error; err != nil {
		return fmt.Errorf("failed to insert attention_samples for %s: %w", platform, err)
	}
	return nil
}

func platformRows(ds domain.PlatformDataset) []domain.AttentionSampleRow {
	rows := make([]domain.AttentionSampleRow, 0, len(ds.Samples))
	for _, s := range ds.Samples {
		rows = append(rows, domain.AttentionSampleRow{
			Platform:  ds.Name,
			LearnerID: s.LearnerID,
			Attention: s.Attention,
		})
	}
	return rows
}

func signalRows(ds domain.SignalDataset) ([]domain.SignalFeatureRow, error) {
	rows := make([]domain.SignalFeatureRow, 0, len(ds.Records))
	for _, rec := range ds.Records {
		raw, err := json.Marshal(rec.Features)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal features: %w", err)
		}
		rows = append(rows, domain.SignalFeatureRow{
			Dataset:   ds.Name,
			LearnerID: rec.LearnerID,
			Features:  datatypes.JSON(raw),
		})
	}
	return rows, nil
}

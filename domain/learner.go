package domain

import (
	"gorm.io/datatypes"
)

// LearnerRecord is one row of a signal dataset: a learner and the biosignal
// features recorded while they watched the instructional video.
type LearnerRecord struct {
	LearnerID int       `json:"learner_id"`
	Features  []float64 `json:"features"`
}

// SignalDataset is used only for similarity. Row order is preserved.
type SignalDataset struct {
	Name    string          `json:"name"`
	Records []LearnerRecord `json:"records"`
}

// CREATE TABLE public.signal_features (
//     dataset     TEXT NOT NULL,
//     learner_id  BIGINT NOT NULL,
//     features    JSONB NOT NULL,
//     PRIMARY KEY (dataset, learner_id)
// );

type SignalFeatureRow struct {
	Dataset   string         `gorm:"column:dataset;primaryKey;type:text"`
	LearnerID int            `gorm:"column:learner_id;primaryKey;autoIncrement:false"`
	Features  datatypes.JSON `gorm:"column:features;type:jsonb;not null"`
}

func (SignalFeatureRow) TableName() string {
	return "signal_features"
}

package domain

// AttentionRecord is one attentiveness sample. A learner may have any number
// of samples per platform; none means "no signal", not zero attention.
type AttentionRecord struct {
	LearnerID int     `json:"learner_id"`
	Attention float64 `json:"attention"`
}

type PlatformDataset struct {
	Name    string            `json:"name"`
	Samples []AttentionRecord `json:"samples"`
}

// CREATE TABLE public.attention_samples (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     platform    TEXT NOT NULL,
//     learner_id  BIGINT NOT NULL,
//     attention   DOUBLE PRECISION NOT NULL
// );

type AttentionSampleRow struct {
	ID        uint64  `gorm:"primaryKey;column:id;autoIncrement"`
	Platform  string  `gorm:"column:platform;type:text;not null;index"`
	LearnerID int     `gorm:"column:learner_id;not null"`
	Attention float64 `gorm:"column:attention;not null"`
}

func (AttentionSampleRow) TableName() string {
	return "attention_samples"
}

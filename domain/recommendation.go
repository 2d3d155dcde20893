package domain

// PlatformScore is the attentiveness of a candidate group on one platform.
// Mean is nil when the group has no samples there.
type PlatformScore struct {
	Platform string   `json:"platform"`
	Mean     *float64 `json:"mean"`
	Samples  int      `json:"samples"`
}

// RecommendationResult is produced per request and never stored.
// Recommended is false (and Platform empty) when no platform has data
// for the learner's group.
type RecommendationResult struct {
	LearnerID   int             `json:"learner_id"`
	Platform    string          `json:"platform"`
	Recommended bool            `json:"recommended"`
	Candidates  []int           `json:"candidates"`
	Scores      []PlatformScore `json:"scores"`
}

type LearnerRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r LearnerRange) Contains(learnerID int) bool {
	return learnerID >= r.Min && learnerID <= r.Max
}

type SimilarLearner struct {
	LearnerID  int     `json:"learner_id"`
	Similarity float64 `json:"similarity"`
}

// SimilarLearners is the diagnostic view of neighbor selection.
type SimilarLearners struct {
	LearnerID int                         `json:"learner_id"`
	K         int                         `json:"k"`
	ByDataset map[string][]SimilarLearner `json:"by_dataset"`
	Group     []int                       `json:"group"`
}

type SimilarityMatrixView struct {
	Dataset    string      `json:"dataset"`
	LearnerIDs []int       `json:"learner_ids"`
	Rows       [][]float64 `json:"rows"`
}

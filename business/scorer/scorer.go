package scorer

import (
	"eduPlatformReco/domain"

	"gonum.org/v1/gonum/stat"
)

// Outcome is the scorer's verdict for one learner group. Scores follow the
// order of the platform datasets passed in.
type Outcome struct {
	Platform    string
	Recommended bool
	Scores      []domain.PlatformScore
}

// Recommend picks the platform where the learner and their candidate group
// were most attentive on average.
//
// platforms is also the precedence order: equal means go to the platform
// listed first. A platform without any sample for the group ranks below every
// platform that has one, and when none has data the outcome is not
// Recommended.
func Recommend(learnerID int, candidates []int, platforms []domain.PlatformDataset) Outcome {
	group := make(map[int]struct{}, len(candidates)+1)
	for _, id := range candidates {
		group[id] = struct{}{}
	}
	group[learnerID] = struct{}{}

	out := Outcome{Scores: make([]domain.PlatformScore, 0, len(platforms))}
	best := -1
	var bestMean float64

	for i, p := range platforms {
		score := Score(p, group)
		out.Scores = append(out.Scores, score)

		if score.Mean == nil {
			continue
		}
		if best < 0 || *score.Mean > bestMean {
			best = i
			bestMean = *score.Mean
		}
	}

	if best >= 0 {
		out.Platform = platforms[best].Name
		out.Recommended = true
	}
	return out
}

// Score averages the attention samples of one platform over group.
func Score(p domain.PlatformDataset, group map[int]struct{}) domain.PlatformScore {
	values := make([]float64, 0)
	for _, s := range p.Samples {
		if _, ok := group[s.LearnerID]; ok {
			values = append(values, s.Attention)
		}
	}

	score := domain.PlatformScore{Platform: p.Name, Samples: len(values)}
	if len(values) > 0 {
		mean := stat.Mean(values, nil)
		score.Mean = &mean
	}
	return score
}

package neighbor

import (
	"fmt"
	"sort"

	"eduPlatformReco/business/similarity"
	"eduPlatformReco/domain"
)

// DefaultK is the number of neighbors taken from each matrix.
const DefaultK = 2

// TopK returns the k learners most similar to learnerID in m, most similar
// first. Equal similarities are ordered by ascending learner id. The learner
// itself never takes a slot.
func TopK(m *similarity.Matrix, learnerID, k int) ([]domain.SimilarLearner, error) {
	if k < 1 {
		return nil, &domain.InvalidInputError{
			Dataset:   m.Name(),
			LearnerID: learnerID,
			Reason:    fmt.Sprintf("k must be at least 1, got %d", k),
		}
	}

	self, ok := m.Index(learnerID)
	if !ok {
		return nil, outOfRange(m, learnerID)
	}

	ranked := make([]domain.SimilarLearner, 0, m.Len()-1)
	for j := 0; j < m.Len(); j++ {
		if j == self {
			continue
		}
		ranked = append(ranked, domain.SimilarLearner{
			LearnerID:  m.LearnerAt(j),
			Similarity: m.At(self, j),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Similarity == ranked[j].Similarity {
			return ranked[i].LearnerID < ranked[j].LearnerID
		}
		return ranked[i].Similarity > ranked[j].Similarity
	})

	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked, nil
}

// FindSimilar merges the top-k neighbors of learnerID from both matrices into
// one deduplicated candidate group, returned in ascending id order. The query
// learner is never part of the result.
func FindSimilar(learnerID int, a, b *similarity.Matrix, k int) ([]int, error) {
	seen := make(map[int]struct{}, 2*k)

	for _, m := range []*similarity.Matrix{a, b} {
		top, err := TopK(m, learnerID, k)
		if err != nil {
			return nil, err
		}
		for _, n := range top {
			seen[n.LearnerID] = struct{}{}
		}
	}
	delete(seen, learnerID)

	group := make([]int, 0, len(seen))
	for id := range seen {
		group = append(group, id)
	}
	sort.Ints(group)

	return group, nil
}

func outOfRange(m *similarity.Matrix, learnerID int) error {
	oor := &domain.OutOfRangeError{Dataset: m.Name(), LearnerID: learnerID}
	ids := m.IDs()
	if len(ids) > 0 {
		sort.Ints(ids)
		oor.Min, oor.Max = ids[0], ids[len(ids)-1]
	}
	return oor
}

package similarity

import (
	"fmt"
	"math"

	"eduPlatformReco/domain"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix holds pairwise cosine similarities over one signal dataset.
// It is built once per dataset load and never mutated afterwards, so it may
// be shared by any number of concurrent readers.
type Matrix struct {
	name  string
	ids   []int
	index map[int]int
	sim   *mat.SymDense
}

// Build computes the similarity matrix for a signal dataset. Any degenerate
// row fails the whole build; no partial matrix is ever returned.
func Build(ds domain.SignalDataset) (*Matrix, error) {
	n := len(ds.Records)
	if n < 2 {
		return nil, invalid(ds.Name, 0, fmt.Sprintf("need at least 2 rows, got %d", n))
	}

	dim := len(ds.Records[0].Features)
	if dim == 0 {
		return nil, invalid(ds.Name, ds.Records[0].LearnerID, "no feature columns")
	}

	ids := make([]int, n)
	index := make(map[int]int, n)
	norms := make([]float64, n)

	for i, rec := range ds.Records {
		if rec.LearnerID <= 0 {
			return nil, invalid(ds.Name, rec.LearnerID, "learner id must be positive")
		}
		if _, dup := index[rec.LearnerID]; dup {
			return nil, invalid(ds.Name, rec.LearnerID, "duplicate learner id")
		}
		if len(rec.Features) != dim {
			return nil, invalid(ds.Name, rec.LearnerID,
				fmt.Sprintf("feature length %d, expected %d", len(rec.Features), dim))
		}
		for _, v := range rec.Features {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, invalid(ds.Name, rec.LearnerID, "non-finite feature value")
			}
		}

		norm := floats.Norm(rec.Features, 2)
		if norm == 0 {
			return nil, invalid(ds.Name, rec.LearnerID, "zero-magnitude feature vector")
		}
		if math.IsInf(norm, 0) {
			return nil, invalid(ds.Name, rec.LearnerID, "feature vector magnitude overflows")
		}

		ids[i] = rec.LearnerID
		index[rec.LearnerID] = i
		norms[i] = norm
	}

	sim := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		sim.SetSym(i, i, 1)
		a := ds.Records[i].Features
		for j := i + 1; j < n; j++ {
			b := ds.Records[j].Features
			sim.SetSym(i, j, clamp(floats.Dot(a, b)/(norms[i]*norms[j])))
		}
	}

	return &Matrix{
		name:  ds.Name,
		ids:   ids,
		index: index,
		sim:   sim,
	}, nil
}

func invalid(dataset string, learnerID int, reason string) error {
	return &domain.InvalidInputError{Dataset: dataset, LearnerID: learnerID, Reason: reason}
}

// Name is the signal dataset the matrix was built from.
func (m *Matrix) Name() string { return m.name }

func (m *Matrix) Len() int { return len(m.ids) }

// IDs returns learner ids in row order.
func (m *Matrix) IDs() []int {
	out := make([]int, len(m.ids))
	copy(out, m.ids)
	return out
}

// Index maps a learner id to its row.
func (m *Matrix) Index(learnerID int) (int, bool) {
	i, ok := m.index[learnerID]
	return i, ok
}

// LearnerAt maps a row back to its learner id.
func (m *Matrix) LearnerAt(row int) int {
	return m.ids[row]
}

func (m *Matrix) At(i, j int) float64 {
	return m.sim.At(i, j)
}

// Similarity looks up two learners by id.
func (m *Matrix) Similarity(a, b int) (float64, error) {
	i, ok := m.index[a]
	if !ok {
		return 0, m.outOfRange(a)
	}
	j, ok := m.index[b]
	if !ok {
		return 0, m.outOfRange(b)
	}
	return m.sim.At(i, j), nil
}

// Row returns a copy of the learner's similarity row.
func (m *Matrix) Row(learnerID int) ([]float64, error) {
	i, ok := m.index[learnerID]
	if !ok {
		return nil, m.outOfRange(learnerID)
	}
	return m.row(i), nil
}

// Rows returns a dense copy of the whole matrix.
func (m *Matrix) Rows() [][]float64 {
	out := make([][]float64, len(m.ids))
	for i := range m.ids {
		out[i] = m.row(i)
	}
	return out
}

func (m *Matrix) row(i int) []float64 {
	out := make([]float64, len(m.ids))
	for j := range m.ids {
		out[j] = m.sim.At(i, j)
	}
	return out
}

func (m *Matrix) outOfRange(learnerID int) error {
	oor := &domain.OutOfRangeError{Dataset: m.name, LearnerID: learnerID}
	if len(m.ids) > 0 {
		oor.Min, oor.Max = minMax(m.ids)
	}
	return oor
}

func minMax(ids []int) (int, int) {
	lo, hi := ids[0], ids[0]
	for _, id := range ids[1:] {
		if id < lo {
			lo = id
		}
		if id > hi {
			hi = id
		}
	}
	return lo, hi
}

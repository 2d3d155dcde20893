package featurestore

import (
	"fmt"
	"math"
	"sort"

	"eduPlatformReco/domain"
)

// Datasets is what a loader hands to the store.
type Datasets struct {
	Signals   []domain.SignalDataset
	Platforms []domain.PlatformDataset
}

// Store owns the loaded datasets. It is read-only once built; a reload
// produces a new Store.
type Store struct {
	signals   [2]domain.SignalDataset
	platforms []domain.PlatformDataset
	learners  domain.LearnerRange
}

// New validates the datasets and builds a store.
//
// Both signal datasets must cover exactly the same learners, and dataset names
// must be unique. Feature-level checks (vector lengths, magnitudes) belong to
// the similarity build.
func New(ds Datasets) (*Store, error) {
	if len(ds.Signals) != 2 {
		return nil, &domain.InvalidInputError{
			Reason: fmt.Sprintf("expected 2 signal datasets, got %d", len(ds.Signals)),
		}
	}
	if len(ds.Platforms) < 2 {
		return nil, &domain.InvalidInputError{
			Reason: fmt.Sprintf("expected at least 2 platform datasets, got %d", len(ds.Platforms)),
		}
	}

	names := make(map[string]struct{}, len(ds.Signals)+len(ds.Platforms))
	checkName := func(name string) error {
		if name == "" {
			return &domain.InvalidInputError{Reason: "dataset name is required"}
		}
		if _, dup := names[name]; dup {
			return &domain.InvalidInputError{Dataset: name, Reason: "duplicate dataset name"}
		}
		names[name] = struct{}{}
		return nil
	}

	for _, s := range ds.Signals {
		if err := checkName(s.Name); err != nil {
			return nil, err
		}
		if len(s.Records) == 0 {
			return nil, &domain.InvalidInputError{Dataset: s.Name, Reason: "no rows"}
		}
	}
	for _, p := range ds.Platforms {
		if err := checkName(p.Name); err != nil {
			return nil, err
		}
		for _, smp := range p.Samples {
			if math.IsNaN(smp.Attention) || math.IsInf(smp.Attention, 0) {
				return nil, &domain.InvalidInputError{Dataset: p.Name, LearnerID: smp.LearnerID, Reason: "attention is not a finite number"}
			}
		}
	}

	a, b := ds.Signals[0], ds.Signals[1]
	idsA, err := learnerIDs(a)
	if err != nil {
		return nil, err
	}
	idsB, err := learnerIDs(b)
	if err != nil {
		return nil, err
	}
	if err := sameLearners(a.Name, idsA, b.Name, idsB); err != nil {
		return nil, err
	}

	platforms := make([]domain.PlatformDataset, len(ds.Platforms))
	copy(platforms, ds.Platforms)

	return &Store{
		signals:   [2]domain.SignalDataset{a, b},
		platforms: platforms,
		learners:  domain.LearnerRange{Min: idsA[0], Max: idsA[len(idsA)-1]},
	}, nil
}

// learnerIDs returns the sorted ids of a signal dataset.
func learnerIDs(ds domain.SignalDataset) ([]int, error) {
	ids := make([]int, 0, len(ds.Records))
	seen := make(map[int]struct{}, len(ds.Records))
	for _, r := range ds.Records {
		if r.LearnerID <= 0 {
			return nil, &domain.InvalidInputError{Dataset: ds.Name, LearnerID: r.LearnerID, Reason: "learner id must be positive"}
		}
		if _, dup := seen[r.LearnerID]; dup {
			return nil, &domain.InvalidInputError{Dataset: ds.Name, LearnerID: r.LearnerID, Reason: "duplicate learner id"}
		}
		seen[r.LearnerID] = struct{}{}
		ids = append(ids, r.LearnerID)
	}
	sort.Ints(ids)
	return ids, nil
}

func sameLearners(nameA string, a []int, nameB string, b []int) error {
	if len(a) != len(b) {
		return &domain.InvalidInputError{
			Dataset: nameB,
			Reason:  fmt.Sprintf("has %d learners, %s has %d", len(b), nameA, len(a)),
		}
	}
	for i := range a {
		if a[i] != b[i] {
			missing := a[i]
			ds := nameB
			if b[i] < a[i] {
				missing, ds = b[i], nameA
			}
			return &domain.InvalidInputError{Dataset: ds, LearnerID: missing, Reason: "learner missing from this signal dataset"}
		}
	}
	return nil
}

// Signals returns the two signal datasets in manifest order.
func (s *Store) Signals() [2]domain.SignalDataset { return s.signals }

// Platforms returns the platform datasets in precedence order.
func (s *Store) Platforms() []domain.PlatformDataset { return s.platforms }

// Range is the advertised learner id range.
func (s *Store) Range() domain.LearnerRange { return s.learners }

func (s *Store) Platform(name string) (domain.PlatformDataset, bool) {
	for _, p := range s.platforms {
		if p.Name == name {
			return p, true
		}
	}
	return domain.PlatformDataset{}, false
}

func (s *Store) PlatformNames() []string {
	names := make([]string, len(s.platforms))
	for i, p := range s.platforms {
		names[i] = p.Name
	}
	return names
}

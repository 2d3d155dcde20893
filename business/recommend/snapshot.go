package recommend

import (
	"fmt"
	"time"

	"eduPlatformReco/business/featurestore"
	"eduPlatformReco/business/similarity"
)

// Snapshot is one immutable, fully built generation of datasets and matrices.
// Requests hold on to the snapshot they started with.
type Snapshot struct {
	Version  int64
	LoadedAt time.Time
	Store    *featurestore.Store
	Matrices [2]*similarity.Matrix
}

// NewSnapshot builds both similarity matrices for a store. Any build failure
// fails the whole snapshot.
func NewSnapshot(store *featurestore.Store, version int64) (*Snapshot, error) {
	snap := &Snapshot{
		Version:  version,
		LoadedAt: time.Now(),
		Store:    store,
	}

	for i, ds := range store.Signals() {
		m, err := similarity.Build(ds)
		if err != nil {
			return nil, fmt.Errorf("build similarity matrix %q: %w", ds.Name, err)
		}
		snap.Matrices[i] = m
	}

	return snap, nil
}

func (s *Snapshot) Matrix(name string) (*similarity.Matrix, bool) {
	for _, m := range s.Matrices {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

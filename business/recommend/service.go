package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"eduPlatformReco/business/featurestore"
	"eduPlatformReco/business/neighbor"
	"eduPlatformReco/business/scorer"
	"eduPlatformReco/domain"
	"eduPlatformReco/pkg/logger"
)

var (
	ErrNotLoaded      = errors.New("datasets not loaded")
	ErrUnknownDataset = errors.New("unknown signal dataset")
)

// DatasetSource loads the raw datasets. Implementations live in
// internal/repository.
type DatasetSource interface {
	Load(ctx context.Context) (featurestore.Datasets, error)
}

type Service struct {
	source DatasetSource
	k      int

	current atomic.Pointer[Snapshot]
	version atomic.Int64
	// serializes reloads; readers never take it
	reloadMu sync.Mutex
}

func NewService(source DatasetSource, k int) *Service {
	if k <= 0 {
		k = neighbor.DefaultK
	}
	return &Service{
		source: source,
		k:      k,
	}
}

// K is the per-matrix neighbor count used by RecommendFor.
func (s *Service) K() int { return s.k }

// Reload loads and builds a new snapshot, then publishes it. On failure the
// previously published snapshot stays in place.
func (s *Service) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()

	raw, err := s.source.Load(ctx)
	if err != nil {
		DatasetReloadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("load datasets: %w", err)
	}

	store, err := featurestore.New(raw)
	if err != nil {
		DatasetReloadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("validate datasets: %w", err)
	}

	snap, err := NewSnapshot(store, s.version.Load()+1)
	if err != nil {
		DatasetReloadsTotal.WithLabelValues("error").Inc()
		return err
	}

	s.Publish(snap)

	DatasetReloadsTotal.WithLabelValues("ok").Inc()
	logger.Info("Datasets loaded",
		"version", snap.Version,
		"learners", snap.Matrices[0].Len(),
		"min_learner", store.Range().Min,
		"max_learner", store.Range().Max,
		"platforms", store.PlatformNames(),
		"took", time.Since(start),
	)

	return nil
}

// Publish swaps in a prebuilt snapshot.
func (s *Service) Publish(snap *Snapshot) {
	s.version.Store(snap.Version)
	s.current.Store(snap)
	LoadedLearners.Set(float64(snap.Matrices[0].Len()))
}

// Snapshot returns the published snapshot, or nil before the first load.
func (s *Service) Snapshot() *Snapshot {
	return s.current.Load()
}

// Version of the published snapshot; 0 before the first load.
func (s *Service) Version() int64 {
	if snap := s.current.Load(); snap != nil {
		return snap.Version
	}
	return 0
}

func (s *Service) snapshot(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap, nil
}

// Range is the valid learner id range of the published datasets.
func (s *Service) Range(ctx context.Context) (domain.LearnerRange, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.LearnerRange{}, err
	}
	return snap.Store.Range(), nil
}

// RecommendFor selects the learner's similar group and picks the platform on
// which that group was most attentive.
func (s *Service) RecommendFor(ctx context.Context, learnerID int) (domain.RecommendationResult, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.RecommendationResult{}, err
	}

	if err := checkRange(snap, learnerID); err != nil {
		return domain.RecommendationResult{}, err
	}

	candidates, err := neighbor.FindSimilar(learnerID, snap.Matrices[0], snap.Matrices[1], s.k)
	if err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("find similar learners: %w", err)
	}

	outcome := scorer.Recommend(learnerID, candidates, snap.Store.Platforms())

	label := outcome.Platform
	if !outcome.Recommended {
		label = noRecommendationLabel
	}
	PlatformRecommendationsTotal.WithLabelValues(label).Inc()

	logger.Debug("platform_recommend",
		"trace_id", TraceIDFromContext(ctx),
		"learner_id", learnerID,
		"candidates", candidates,
		"platform", label,
		"snapshot_version", snap.Version,
	)

	return domain.RecommendationResult{
		LearnerID:   learnerID,
		Platform:    outcome.Platform,
		Recommended: outcome.Recommended,
		Candidates:  candidates,
		Scores:      outcome.Scores,
	}, nil
}

// SimilarLearners returns the ranked neighbors per signal dataset and the
// merged candidate group. k <= 0 uses the service default.
func (s *Service) SimilarLearners(ctx context.Context, learnerID, k int) (domain.SimilarLearners, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.SimilarLearners{}, err
	}
	if k <= 0 {
		k = s.k
	}
	if err := checkRange(snap, learnerID); err != nil {
		return domain.SimilarLearners{}, err
	}

	out := domain.SimilarLearners{
		LearnerID: learnerID,
		K:         k,
		ByDataset: make(map[string][]domain.SimilarLearner, len(snap.Matrices)),
	}
	for _, m := range snap.Matrices {
		top, err := neighbor.TopK(m, learnerID, k)
		if err != nil {
			return domain.SimilarLearners{}, err
		}
		out.ByDataset[m.Name()] = top
	}

	group, err := neighbor.FindSimilar(learnerID, snap.Matrices[0], snap.Matrices[1], k)
	if err != nil {
		return domain.SimilarLearners{}, err
	}
	out.Group = group

	return out, nil
}

// Matrix exposes a built similarity matrix for diagnostics.
func (s *Service) Matrix(ctx context.Context, dataset string) (domain.SimilarityMatrixView, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.SimilarityMatrixView{}, err
	}
	m, ok := snap.Matrix(dataset)
	if !ok {
		return domain.SimilarityMatrixView{}, fmt.Errorf("%w: %q", ErrUnknownDataset, dataset)
	}
	return domain.SimilarityMatrixView{
		Dataset:    m.Name(),
		LearnerIDs: m.IDs(),
		Rows:       m.Rows(),
	}, nil
}

func checkRange(snap *Snapshot, learnerID int) error {
	r := snap.Store.Range()
	if !r.Contains(learnerID) {
		return &domain.OutOfRangeError{LearnerID: learnerID, Min: r.Min, Max: r.Max}
	}
	return nil
}

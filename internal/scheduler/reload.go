package scheduler

import (
	"context"
	"fmt"
	"time"

	"eduPlatformReco/pkg/logger"

	"github.com/robfig/cron/v3"
)

type Reloader interface {
	Reload(ctx context.Context) error
}

// ReloadScheduler periodically rebuilds the published datasets.
type ReloadScheduler struct {
	cron     *cron.Cron
	reloader Reloader
	timeout  time.Duration
	entry    cron.EntryID
}

// NewReloadScheduler accepts standard 5-field cron specs and descriptors such
// as "@every 10m" or "@hourly".
func NewReloadScheduler(schedule string, reloader Reloader) (*ReloadScheduler, error) {
	s := &ReloadScheduler{
		cron:     cron.New(),
		reloader: reloader,
		timeout:  5 * time.Minute,
	}

	id, err := s.cron.AddFunc(schedule, s.run)
	if err != nil {
		return nil, fmt.Errorf("invalid reload schedule %q: %w", schedule, err)
	}
	s.entry = id

	return s, nil
}

func (s *ReloadScheduler) Start() {
	s.cron.Start()
	logger.Info("Dataset reload scheduler started", "next_run", s.Next())
}

// Stop waits for a running reload to finish.
func (s *ReloadScheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info("Dataset reload scheduler stopped")
}

func (s *ReloadScheduler) Next() time.Time {
	return s.cron.Entry(s.entry).Next
}

func (s *ReloadScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.reloader.Reload(ctx); err != nil {
		logger.Error("Scheduled dataset reload failed", err)
		return
	}
	logger.Info("Scheduled dataset reload finished")
}

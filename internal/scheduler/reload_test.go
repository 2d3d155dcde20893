package scheduler

import (
	"context"
	"errors"
	"testing"
)

type countingReloader struct {
	calls int
	err   error
}

func (c *countingReloader) Reload(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("reload called without deadline")
	}
	c.calls++
	return c.err
}

func TestNewReloadScheduler(t *testing.T) {
	tests := []struct {
		schedule string
		wantErr  bool
	}{
		{"@every 10m", false},
		{"0 */6 * * *", false},
		{"@hourly", false},
		{"not a schedule", true},
		{"* * *", true},
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			_, err := NewReloadScheduler(tt.schedule, &countingReloader{})
			if (err != nil) != tt.wantErr {
				t.Errorf("NewReloadScheduler(%q) error = %v, wantErr %v", tt.schedule, err, tt.wantErr)
			}
		})
	}
}

func TestReloadScheduler_RunCallsReloader(t *testing.T) {
	r := &countingReloader{}
	s, err := NewReloadScheduler("@every 1h", r)
	if err != nil {
		t.Fatalf("NewReloadScheduler: %v", err)
	}

	s.run()
	r.err = errors.New("bad data")
	s.run()

	if r.calls != 2 {
		t.Errorf("Reload called %d times, want 2", r.calls)
	}
}

func TestReloadScheduler_StartStop(t *testing.T) {
	s, err := NewReloadScheduler("@every 1h", &countingReloader{})
	if err != nil {
		t.Fatalf("NewReloadScheduler: %v", err)
	}
	s.Start()
	if s.Next().IsZero() {
		t.Error("Next() is zero after Start")
	}
	s.Stop()
}

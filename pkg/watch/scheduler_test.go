package watch

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduler_Add(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{"empty is ignored", "", false},
		{"standard", "0 3 * * *", false},
		{"descriptor", "@every 5m", false},
		{"invalid", "every day", true},
		{"too many fields", "0 0 3 * * *", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler(nil)
			err := s.Add("job", tt.spec, func() {})
			if (err != nil) != tt.wantErr {
				t.Errorf("Add(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
		})
	}
}

func TestScheduler_DuplicateName(t *testing.T) {
	s := NewScheduler(nil)
	if err := s.Add("prune", "0 3 * * *", func() {}); err != nil {
		t.Fatal(err)
	}
	if err := s.Add("prune", "0 4 * * *", func() {}); err == nil {
		t.Error("expected an error for a duplicate job name")
	}
}

func TestScheduler_RunsJobs(t *testing.T) {
	s := NewScheduler(nil)

	var runs atomic.Int32
	if err := s.Add("tick", "@every 1s", func() { runs.Add(1) }); err != nil {
		t.Fatal(err)
	}
	if s.NextRun("tick") != nil {
		t.Error("NextRun() before Start should be nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	if !s.IsRunning() {
		t.Fatal("scheduler not running after Start")
	}

	// cron computes the next run asynchronously after Start.
	deadline := time.Now().Add(time.Second)
	for s.NextRun("tick") == nil && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if next := s.NextRun("tick"); next == nil {
		t.Error("NextRun() = nil after Start")
	}

	deadline = time.Now().Add(3 * time.Second)
	for runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	if runs.Load() == 0 {
		t.Fatal("job never ran")
	}

	cancel()
	deadline = time.Now().Add(time.Second)
	for s.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if s.IsRunning() {
		t.Error("scheduler still running after context cancel")
	}
	if s.NextRun("unknown") != nil {
		t.Error("NextRun() of an unknown job should be nil")
	}
}

package retention

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goliatone/go-wallet-accounts/core"
)

type countingPruner struct {
	calls   atomic.Int64
	removed int
	err     error
}

func (p *countingPruner) Prune(_ context.Context, policy core.EventRetentionPolicy) (int, error) {
	p.calls.Add(1)
	if p.err != nil {
		return 0, p.err
	}
	if policy.RowCap <= 0 && policy.TTL <= 0 {
		return 0, fmt.Errorf("empty policy reached pruner")
	}
	return p.removed, nil
}

func TestNewRunner_RejectsEmptyPolicy(t *testing.T) {
	if _, err := NewRunner(&countingPruner{}, core.EventRetentionPolicy{}); err == nil {
		t.Fatalf("expected empty policy rejection")
	}
	if _, err := NewRunner(nil, core.EventRetentionPolicy{RowCap: 10}); err == nil {
		t.Fatalf("expected missing pruner rejection")
	}
}

func TestRunOnce_DelegatesPolicy(t *testing.T) {
	pruner := &countingPruner{removed: 3}
	runner, err := NewRunnerFromConfig(pruner, core.EventLogConfig{RetentionRowCap: 100})
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	removed, err := runner.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed, got %d", removed)
	}
	if pruner.calls.Load() != 1 {
		t.Fatalf("expected 1 prune call, got %d", pruner.calls.Load())
	}
}

func TestRun_PrunesOnIntervalUntilCancelled(t *testing.T) {
	pruner := &countingPruner{removed: 1}
	runner, err := NewRunner(pruner, core.EventRetentionPolicy{RowCap: 10}, WithInterval(5*time.Millisecond))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx)
	}()

	deadline := time.After(2 * time.Second)
	for pruner.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 2 prune calls, got %d", pruner.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	if err := <-done; err != context.Canceled {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestRun_KeepsGoingAfterPruneFailure(t *testing.T) {
	pruner := &countingPruner{err: fmt.Errorf("storage offline")}
	runner, err := NewRunner(pruner, core.EventRetentionPolicy{TTL: time.Hour}, WithInterval(5*time.Millisecond))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx)
	}()

	deadline := time.After(2 * time.Second)
	for pruner.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected retries after failure, got %d calls", pruner.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done
}

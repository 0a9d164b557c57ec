// Package retention runs the event-log retention policy in the background,
// deleting rows past their TTL and trimming overflow beyond the row cap.
// The Runner schedules prune runs; with a queue enqueuer configured it
// publishes go-job messages that a Worker consumes, otherwise it prunes
// in-process.
package retention

import (
	"context"
	"fmt"
	"time"

	job "github.com/goliatone/go-job"
	"github.com/goliatone/go-job/queue"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-wallet-accounts/adapters/gologger"
	"github.com/goliatone/go-wallet-accounts/core"
)

const DefaultInterval = time.Hour

type Runner struct {
	pruner   core.EventRetentionPruner
	policy   core.EventRetentionPolicy
	interval time.Duration
	enqueuer queue.Enqueuer
	logger   job.Logger
}

type Option func(*Runner)

func WithInterval(interval time.Duration) Option {
	return func(r *Runner) {
		if interval > 0 {
			r.interval = interval
		}
	}
}

func WithLogger(logger glog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = gologger.ToJobLogger(logger)
		}
	}
}

func WithLoggerProvider(provider glog.LoggerProvider) Option {
	return func(r *Runner) {
		if provider != nil {
			r.logger = gologger.ToJobProvider(provider).GetLogger("retention")
		}
	}
}

// WithEnqueuer hands each tick's prune message to a go-job queue instead of
// pruning in-process. A Worker on the other side of the queue applies it.
func WithEnqueuer(enqueuer queue.Enqueuer) Option {
	return func(r *Runner) {
		if enqueuer != nil {
			r.enqueuer = enqueuer
		}
	}
}

// NewRunner builds a runner from the configured event-log retention settings.
// A policy without a TTL or row cap is rejected; with nothing to enforce there
// is no reason to schedule the job.
func NewRunner(pruner core.EventRetentionPruner, policy core.EventRetentionPolicy, opts ...Option) (*Runner, error) {
	if pruner == nil {
		return nil, fmt.Errorf("retention: event pruner is required")
	}
	if policy.TTL <= 0 && policy.RowCap <= 0 {
		return nil, fmt.Errorf("retention: policy needs a ttl or a row cap")
	}

	runner := &Runner{
		pruner:   pruner,
		policy:   policy,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(runner)
	}
	if runner.logger == nil {
		_, resolved, _, _ := gologger.ResolveForJob("retention", nil, nil)
		runner.logger = gologger.ToJobLogger(glog.Ensure(resolved))
	}
	return runner, nil
}

// NewRunnerFromConfig wires the runner from the service's event-log config.
func NewRunnerFromConfig(pruner core.EventRetentionPruner, cfg core.EventLogConfig, opts ...Option) (*Runner, error) {
	return NewRunner(pruner, core.EventRetentionPolicy{
		TTL:    cfg.RetentionTTL,
		RowCap: cfg.RetentionRowCap,
	}, opts...)
}

// RunOnce applies the retention policy a single time.
func (r *Runner) RunOnce(ctx context.Context) (int, error) {
	if r == nil || r.pruner == nil {
		return 0, fmt.Errorf("retention: runner is not configured")
	}
	removed, err := r.pruner.Prune(ctx, r.policy)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		r.logger.Info("pruned event log", "removed", removed)
	}
	return removed, nil
}

// Run fires the policy on the configured interval until ctx is cancelled.
// With an enqueuer the tick publishes a prune message for a Worker to apply;
// without one the runner prunes in-process. Failures are logged and retried
// on the next tick.
func (r *Runner) Run(ctx context.Context) error {
	if r == nil || r.pruner == nil {
		return fmt.Errorf("retention: runner is not configured")
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case firedAt := <-ticker.C:
			if err := r.fire(ctx, firedAt); err != nil {
				r.logger.Error("event log prune failed", "error", err)
			}
		}
	}
}

func (r *Runner) fire(ctx context.Context, firedAt time.Time) error {
	if r.enqueuer != nil {
		_, err := r.enqueuer.Enqueue(ctx, NewPruneMessage(r.policy, firedAt))
		return err
	}
	_, err := r.RunOnce(ctx)
	return err
}

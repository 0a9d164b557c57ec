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

const DefaultRetryDelay = time.Minute

// Worker drains prune messages from a go-job queue and applies them against
// the event store. One delivery per prune run; transient failures are nacked
// back for redelivery, malformed messages are dead-lettered.
type Worker struct {
	pruner     core.EventRetentionPruner
	dequeuer   queue.Dequeuer
	retryDelay time.Duration
	logger     job.Logger
}

type WorkerOption func(*Worker)

func WithRetryDelay(delay time.Duration) WorkerOption {
	return func(w *Worker) {
		if delay > 0 {
			w.retryDelay = delay
		}
	}
}

func WithWorkerLogger(logger job.Logger) WorkerOption {
	return func(w *Worker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

func NewWorker(pruner core.EventRetentionPruner, dequeuer queue.Dequeuer, opts ...WorkerOption) (*Worker, error) {
	if pruner == nil {
		return nil, fmt.Errorf("retention: event pruner is required")
	}
	if dequeuer == nil {
		return nil, fmt.Errorf("retention: queue dequeuer is required")
	}

	worker := &Worker{
		pruner:     pruner,
		dequeuer:   dequeuer,
		retryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(worker)
	}
	if worker.logger == nil {
		_, resolved, _, _ := gologger.ResolveForJob("retention", nil, nil)
		worker.logger = gologger.ToJobLogger(glog.Ensure(resolved))
	}
	return worker, nil
}

// ProcessOne takes the next delivery off the queue and settles it.
func (w *Worker) ProcessOne(ctx context.Context) error {
	if w == nil || w.dequeuer == nil {
		return fmt.Errorf("retention: worker is not configured")
	}
	delivery, err := w.dequeuer.Dequeue(ctx)
	if err != nil {
		return err
	}
	if delivery == nil {
		return fmt.Errorf("retention: queue returned nil delivery")
	}
	return w.settle(ctx, delivery)
}

func (w *Worker) settle(ctx context.Context, delivery queue.Delivery) error {
	policy, err := PolicyFromMessage(delivery.Message())
	if err != nil {
		// A malformed message can never succeed; requeueing would loop forever.
		return delivery.Nack(ctx, queue.NackOptions{
			Disposition: queue.NackDispositionDeadLetter,
			Reason:      err.Error(),
		})
	}

	removed, err := w.pruner.Prune(ctx, policy)
	if err != nil {
		w.logger.Error("event log prune failed", "error", err)
		return delivery.Nack(ctx, queue.NackOptions{
			Disposition: queue.NackDispositionRetry,
			Delay:       w.retryDelay,
			Reason:      err.Error(),
		})
	}
	if removed > 0 {
		w.logger.Info("pruned event log", "removed", removed)
	}
	return delivery.Ack(ctx)
}

// Run processes deliveries until ctx is cancelled. Dequeue failures back off
// for the retry delay instead of spinning against a broken queue.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil || w.dequeuer == nil {
		return fmt.Errorf("retention: worker is not configured")
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.ProcessOne(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Error("retention delivery failed", "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.retryDelay):
			}
		}
	}
}

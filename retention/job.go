package retention

import (
	"fmt"
	"time"

	job "github.com/goliatone/go-job"
	"github.com/goliatone/go-wallet-accounts/core"
)

const JobIDPruneEventLog = "accounts.event_log.prune"

const (
	paramTTL    = "ttl"
	paramRowCap = "row_cap"
)

// NewPruneMessage builds the queue message for one prune run. The idempotency
// key is derived from the tick so a re-enqueued tick deduplicates instead of
// pruning twice.
func NewPruneMessage(policy core.EventRetentionPolicy, firedAt time.Time) *job.ExecutionMessage {
	return &job.ExecutionMessage{
		JobID: JobIDPruneEventLog,
		Parameters: map[string]any{
			paramTTL:    policy.TTL.String(),
			paramRowCap: policy.RowCap,
		},
		IdempotencyKey: fmt.Sprintf("%s::%d", JobIDPruneEventLog, firedAt.UTC().Unix()),
		DedupPolicy:    job.DeduplicationPolicy("drop"),
	}
}

// PolicyFromMessage recovers the retention policy carried by a prune message.
func PolicyFromMessage(msg *job.ExecutionMessage) (core.EventRetentionPolicy, error) {
	if msg == nil {
		return core.EventRetentionPolicy{}, fmt.Errorf("retention: execution message is required")
	}
	if msg.JobID != JobIDPruneEventLog {
		return core.EventRetentionPolicy{}, fmt.Errorf("retention: unexpected job id %q", msg.JobID)
	}

	policy := core.EventRetentionPolicy{}
	if raw, ok := msg.Parameters[paramTTL]; ok {
		switch value := raw.(type) {
		case time.Duration:
			policy.TTL = value
		case string:
			parsed, err := time.ParseDuration(value)
			if err != nil {
				return core.EventRetentionPolicy{}, fmt.Errorf("retention: parse ttl parameter: %w", err)
			}
			policy.TTL = parsed
		}
	}
	if raw, ok := msg.Parameters[paramRowCap]; ok {
		switch value := raw.(type) {
		case int:
			policy.RowCap = value
		case int64:
			policy.RowCap = int(value)
		case float64:
			policy.RowCap = int(value)
		}
	}

	if policy.TTL <= 0 && policy.RowCap <= 0 {
		return core.EventRetentionPolicy{}, fmt.Errorf("retention: prune message carries no ttl or row cap")
	}
	return policy, nil
}

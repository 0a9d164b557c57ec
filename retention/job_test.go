package retention

import (
	"strings"
	"testing"
	"time"

	job "github.com/goliatone/go-job"
	"github.com/goliatone/go-wallet-accounts/core"
)

func TestPruneMessage_RoundTrip(t *testing.T) {
	firedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	policy := core.EventRetentionPolicy{
		TTL:    48 * time.Hour,
		RowCap: 10000,
	}

	msg := NewPruneMessage(policy, firedAt)
	if msg.JobID != JobIDPruneEventLog {
		t.Fatalf("expected job id %q, got %q", JobIDPruneEventLog, msg.JobID)
	}
	if !strings.HasPrefix(msg.IdempotencyKey, JobIDPruneEventLog+"::") {
		t.Fatalf("expected tick-derived idempotency key, got %q", msg.IdempotencyKey)
	}
	if msg.DedupPolicy != job.DeduplicationPolicy("drop") {
		t.Fatalf("expected drop dedup policy, got %q", msg.DedupPolicy)
	}

	recovered, err := PolicyFromMessage(msg)
	if err != nil {
		t.Fatalf("policy from message: %v", err)
	}
	if recovered.TTL != policy.TTL || recovered.RowCap != policy.RowCap {
		t.Fatalf("expected %+v back, got %+v", policy, recovered)
	}
}

func TestPruneMessage_SameTickSharesIdempotencyKey(t *testing.T) {
	firedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	policy := core.EventRetentionPolicy{RowCap: 100}

	first := NewPruneMessage(policy, firedAt)
	second := NewPruneMessage(policy, firedAt)
	if first.IdempotencyKey != second.IdempotencyKey {
		t.Fatalf("expected re-enqueued tick to deduplicate, got %q and %q", first.IdempotencyKey, second.IdempotencyKey)
	}
}

func TestPolicyFromMessage_RejectsBadMessages(t *testing.T) {
	if _, err := PolicyFromMessage(nil); err == nil {
		t.Fatalf("expected nil message rejection")
	}
	if _, err := PolicyFromMessage(&job.ExecutionMessage{JobID: "accounts.other"}); err == nil {
		t.Fatalf("expected foreign job id rejection")
	}
	if _, err := PolicyFromMessage(&job.ExecutionMessage{
		JobID:      JobIDPruneEventLog,
		Parameters: map[string]any{paramTTL: "0s", paramRowCap: 0},
	}); err == nil {
		t.Fatalf("expected empty policy rejection")
	}
	if _, err := PolicyFromMessage(&job.ExecutionMessage{
		JobID:      JobIDPruneEventLog,
		Parameters: map[string]any{paramTTL: "yesterday"},
	}); err == nil {
		t.Fatalf("expected unparseable ttl rejection")
	}
}

func TestPolicyFromMessage_AcceptsNumericRowCapVariants(t *testing.T) {
	// Queue transports that serialize parameters as JSON hand numbers back
	// as float64.
	recovered, err := PolicyFromMessage(&job.ExecutionMessage{
		JobID:      JobIDPruneEventLog,
		Parameters: map[string]any{paramRowCap: float64(250)},
	})
	if err != nil {
		t.Fatalf("policy from message: %v", err)
	}
	if recovered.RowCap != 250 {
		t.Fatalf("expected row cap 250, got %d", recovered.RowCap)
	}
}

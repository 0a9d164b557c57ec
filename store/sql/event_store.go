package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-wallet-accounts/core"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// EventStore persists the append-only event log. Appends never join an
// ambient transaction: an event records that something happened and must
// survive a rollback of the surrounding workflow.
type EventStore struct {
	db     *bun.DB
	events repository.Repository[*eventRecord]
}

func NewEventStore(db *bun.DB) (*EventStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	return &EventStore{
		db:     db,
		events: repository.NewRepository[*eventRecord](db, eventHandlers()),
	}, nil
}

func (s *EventStore) Append(ctx context.Context, event core.Event) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: event store is not configured")
	}
	if strings.TrimSpace(string(event.Action)) == "" {
		return fmt.Errorf("sqlstore: event action is required")
	}

	record := &eventRecord{
		ID:         strings.TrimSpace(event.ID),
		Tenant:     strings.TrimSpace(event.Tenant),
		Action:     string(event.Action),
		Originator: strings.TrimSpace(event.Originator),
		AccountID:  strings.TrimSpace(event.Account),
		WalletID:   optionalString(event.Wallet),
		Data:       copyAnyMap(event.Data),
		CreatedAt:  event.CreatedAt,
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	// Insert on the base db, not idb(ctx, ...): appends stay out of ambient
	// transactions.
	_, err := s.db.NewInsert().Model(record).Exec(ctx)
	return err
}

// Filter loads the tenant's log in insertion order and hands it to the pure
// query engine. The action predicate is the one filter pushed down to SQL;
// everything else, including payload fields, is evaluated in process.
func (s *EventStore) Filter(ctx context.Context, tenant string, filter core.EventLogFilter) (core.EventLogPage, error) {
	if s == nil || s.db == nil {
		return core.EventLogPage{}, fmt.Errorf("sqlstore: event store is not configured")
	}

	query := idb(ctx, s.db).NewSelect().
		Model((*eventRecord)(nil)).
		Where("we.tenant = ?", strings.TrimSpace(tenant)).
		OrderExpr("we.seq ASC")
	if action, ok := filter.Data["action"]; ok && strings.TrimSpace(action) != "" {
		query = query.Where("we.action = ?", action)
	}

	var records []*eventRecord
	if err := query.Scan(ctx, &records); err != nil {
		return core.EventLogPage{}, err
	}

	events := make([]core.Event, 0, len(records))
	for _, record := range records {
		events = append(events, record.toDomain())
	}
	return core.FilterEvents(events, filter), nil
}

// Prune removes rows older than the TTL and, when a row cap is set, trims the
// oldest overflow beyond the cap. Returns the number of rows removed.
func (s *EventStore) Prune(ctx context.Context, policy core.EventRetentionPolicy) (int, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("sqlstore: event store is not configured")
	}

	removed := 0
	if policy.TTL > 0 {
		cutoff := time.Now().UTC().Add(-policy.TTL)
		result, err := s.db.NewDelete().
			Model((*eventRecord)(nil)).
			Where("created_at < ?", cutoff).
			Exec(ctx)
		if err != nil {
			return removed, err
		}
		if affected, err := result.RowsAffected(); err == nil {
			removed += int(affected)
		}
	}

	if policy.RowCap > 0 {
		total, err := s.db.NewSelect().Model((*eventRecord)(nil)).Count(ctx)
		if err != nil {
			return removed, err
		}
		overflow := total - policy.RowCap
		if overflow > 0 {
			result, err := s.db.NewDelete().
				Model((*eventRecord)(nil)).
				Where("seq IN (SELECT seq FROM wallet_events ORDER BY seq ASC LIMIT ?)", overflow).
				Exec(ctx)
			if err != nil {
				return removed, err
			}
			if affected, err := result.RowsAffected(); err == nil {
				removed += int(affected)
			}
		}
	}

	return removed, nil
}

var _ core.EventStore = (*EventStore)(nil)
var _ core.EventRetentionPruner = (*EventStore)(nil)

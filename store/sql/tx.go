package sqlstore

import (
	"context"
	"fmt"

	"github.com/goliatone/go-wallet-accounts/core"
	"github.com/uptrace/bun"
)

type txContextKey struct{}

// BunTransactionScope bounds the statements issued inside fn to a single bun
// transaction. The transaction handle travels in the context so stores used
// inside fn join it transparently.
type BunTransactionScope struct {
	db *bun.DB
}

func NewBunTransactionScope(db *bun.DB) (*BunTransactionScope, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	return &BunTransactionScope{db: db}, nil
}

func (s *BunTransactionScope) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: transaction scope is not configured")
	}
	if fn == nil {
		return fmt.Errorf("sqlstore: transaction body is required")
	}
	if _, ok := txFromContext(ctx); ok {
		// Already inside an ambient transaction; nest into it.
		return fn(ctx)
	}
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

func txFromContext(ctx context.Context) (bun.Tx, bool) {
	tx, ok := ctx.Value(txContextKey{}).(bun.Tx)
	return tx, ok
}

// idb returns the ambient transaction when one is in flight, the base db
// otherwise.
func idb(ctx context.Context, db *bun.DB) bun.IDB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return db
}

var _ core.TransactionScope = (*BunTransactionScope)(nil)

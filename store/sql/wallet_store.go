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

type WalletStore struct {
	db       *bun.DB
	wallets  repository.Repository[*walletRecord]
	mappings repository.Repository[*accountWalletRecord]
}

func NewWalletStore(db *bun.DB) (*WalletStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	return &WalletStore{
		db:       db,
		wallets:  repository.NewRepository[*walletRecord](db, walletHandlers()),
		mappings: repository.NewRepository[*accountWalletRecord](db, accountWalletHandlers()),
	}, nil
}

// CreateWallet persists one wallet row. Provisioning flows call it inside the
// ambient registration transaction.
func (s *WalletStore) CreateWallet(ctx context.Context, name string) (core.Wallet, error) {
	if s == nil || s.wallets == nil {
		return core.Wallet{}, fmt.Errorf("sqlstore: wallet store is not configured")
	}
	record := &walletRecord{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.wallets.CreateTx(ctx, idb(ctx, s.db), record)
	if err != nil {
		return core.Wallet{}, err
	}
	return core.Wallet{ID: created.ID, Name: created.Name, CreatedAt: created.CreatedAt}, nil
}

func (s *WalletStore) AddMapping(ctx context.Context, in core.AddWalletMappingInput) error {
	if s == nil || s.mappings == nil {
		return fmt.Errorf("sqlstore: wallet store is not configured")
	}
	if strings.TrimSpace(in.AccountID) == "" {
		return fmt.Errorf("sqlstore: account id is required")
	}
	if strings.TrimSpace(in.WalletID) == "" {
		return fmt.Errorf("sqlstore: wallet id is required")
	}
	if err := in.Permission.Validate(); err != nil {
		return err
	}

	record := &accountWalletRecord{
		ID:         uuid.NewString(),
		Tenant:     strings.TrimSpace(in.Tenant),
		AccountID:  strings.TrimSpace(in.AccountID),
		WalletID:   strings.TrimSpace(in.WalletID),
		Permission: string(in.Permission),
		AddedOn:    time.Now().UTC(),
	}
	_, err := s.mappings.CreateTx(ctx, idb(ctx, s.db), record)
	return err
}

// ListMappings returns the account's wallets in the order the mappings were
// added.
func (s *WalletStore) ListMappings(ctx context.Context, tenant string, accountID string) ([]core.WalletListing, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: wallet store is not configured")
	}

	var rows []struct {
		WalletID   string    `bun:"wallet_id"`
		Name       string    `bun:"name"`
		CreatedOn  time.Time `bun:"created_on"`
		AddedOn    time.Time `bun:"added_on"`
		Permission string    `bun:"permission"`
	}
	err := idb(ctx, s.db).NewSelect().
		Model((*accountWalletRecord)(nil)).
		ColumnExpr("awm.wallet_id AS wallet_id").
		ColumnExpr("w.name AS name").
		ColumnExpr("w.created_at AS created_on").
		ColumnExpr("awm.added_on AS added_on").
		ColumnExpr("awm.permission AS permission").
		Join("JOIN wallets AS w ON w.id = awm.wallet_id").
		Where("awm.tenant = ?", strings.TrimSpace(tenant)).
		Where("awm.account_id = ?", strings.TrimSpace(accountID)).
		OrderExpr("awm.added_on ASC, awm.id ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	out := make([]core.WalletListing, 0, len(rows))
	for _, row := range rows {
		out = append(out, core.WalletListing{
			ID:         row.WalletID,
			Name:       row.Name,
			CreatedOn:  row.CreatedOn,
			AddedOn:    row.AddedOn,
			Permission: core.WalletPermission(row.Permission),
		})
	}
	return out, nil
}

var _ core.WalletStore = (*WalletStore)(nil)

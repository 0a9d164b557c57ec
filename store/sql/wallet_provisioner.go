package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-wallet-accounts/core"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LocalWalletProvisioner provisions wallets directly in this module's storage.
// Deployments that delegate wallet management to an external platform plug in
// their own provisioner; this one backs single-binary setups and integration
// tests.
type LocalWalletProvisioner struct {
	db      *bun.DB
	wallets *WalletStore
}

func NewLocalWalletProvisioner(db *bun.DB, wallets *WalletStore) (*LocalWalletProvisioner, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	if wallets == nil {
		return nil, fmt.Errorf("sqlstore: wallet store is required")
	}
	return &LocalWalletProvisioner{db: db, wallets: wallets}, nil
}

func (p *LocalWalletProvisioner) CreateWallet(ctx context.Context, tenant string, accountID string) (string, error) {
	if p == nil || p.wallets == nil {
		return "", fmt.Errorf("sqlstore: wallet provisioner is not configured")
	}
	if strings.TrimSpace(accountID) == "" {
		return "", fmt.Errorf("sqlstore: account id is required")
	}
	wallet, err := p.wallets.CreateWallet(ctx, fmt.Sprintf("%s wallet", strings.TrimSpace(accountID)))
	if err != nil {
		return "", err
	}
	return wallet.ID, nil
}

func (p *LocalWalletProvisioner) WalletService(ctx context.Context, tenant string, accountID string, walletID string) (core.WalletService, error) {
	if p == nil || p.db == nil {
		return nil, fmt.Errorf("sqlstore: wallet provisioner is not configured")
	}
	trimmed := strings.TrimSpace(walletID)
	if trimmed == "" {
		return nil, fmt.Errorf("sqlstore: wallet id is required")
	}
	exists, err := idb(ctx, p.db).NewSelect().
		Model((*walletRecord)(nil)).
		Where("id = ?", trimmed).
		Count(ctx)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("sqlstore: wallet %q not found", trimmed)
	}
	return &localWalletService{db: p.db, walletID: trimmed}, nil
}

type localWalletService struct {
	db       *bun.DB
	walletID string
}

func (s *localWalletService) CreateDid(ctx context.Context, kind string, options map[string]any) (string, error) {
	if s == nil || s.db == nil {
		return "", fmt.Errorf("sqlstore: wallet service is not configured")
	}
	method := strings.TrimSpace(kind)
	if method == "" {
		method = "key"
	}
	return fmt.Sprintf("did:%s:%s", method, uuid.NewString()), nil
}

func (s *localWalletService) SetDefault(ctx context.Context, didID string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: wallet service is not configured")
	}
	trimmed := strings.TrimSpace(didID)
	if trimmed == "" {
		return fmt.Errorf("sqlstore: did id is required")
	}
	_, err := idb(ctx, s.db).NewUpdate().
		Model((*walletRecord)(nil)).
		Set("default_did = ?", trimmed).
		Where("id = ?", s.walletID).
		Exec(ctx)
	return err
}

var _ core.WalletProvisioner = (*LocalWalletProvisioner)(nil)
var _ core.WalletService = (*localWalletService)(nil)

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

type AccountStore struct {
	db   *bun.DB
	repo repository.Repository[*accountRecord]
}

func NewAccountStore(db *bun.DB) (*AccountStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*accountRecord](db, accountHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid account repository wiring: %w", err)
		}
	}
	return &AccountStore{db: db, repo: repo}, nil
}

func (s *AccountStore) CreateEmailAccount(ctx context.Context, in core.CreateEmailAccountInput) (core.Account, error) {
	if s == nil || s.repo == nil {
		return core.Account{}, fmt.Errorf("sqlstore: account store is not configured")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return core.Account{}, fmt.Errorf("sqlstore: email is required")
	}
	if strings.TrimSpace(in.PasswordHash) == "" {
		return core.Account{}, fmt.Errorf("sqlstore: password hash is required")
	}

	record := &accountRecord{
		ID:           uuid.NewString(),
		Tenant:       strings.TrimSpace(in.Tenant),
		Name:         displayName(in.Name, email),
		Email:        &email,
		PasswordHash: optionalString(in.PasswordHash),
		CreatedAt:    time.Now().UTC(),
	}
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return core.Account{}, err
	}
	return created.toDomain(), nil
}

func (s *AccountStore) CreateAddressAccount(ctx context.Context, in core.CreateAddressAccountInput) (core.Account, error) {
	if s == nil || s.repo == nil {
		return core.Account{}, fmt.Errorf("sqlstore: account store is not configured")
	}
	address := strings.TrimSpace(in.Address)
	if address == "" {
		return core.Account{}, fmt.Errorf("sqlstore: wallet address is required")
	}

	record := &accountRecord{
		ID:            uuid.NewString(),
		Tenant:        strings.TrimSpace(in.Tenant),
		Name:          displayName(in.Name, address),
		WalletAddress: &address,
		CreatedAt:     time.Now().UTC(),
	}
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return core.Account{}, err
	}
	return created.toDomain(), nil
}

// GetByEmail returns the account and its stored password hash for one
// tenant-scoped email.
func (s *AccountStore) GetByEmail(ctx context.Context, tenant string, email string) (core.Account, string, error) {
	if s == nil || s.repo == nil {
		return core.Account{}, "", fmt.Errorf("sqlstore: account store is not configured")
	}
	normalized := strings.ToLower(strings.TrimSpace(email))
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("tenant", "=", strings.TrimSpace(tenant)),
		repository.SelectBy("email", "=", normalized),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return core.Account{}, "", err
	}
	if len(records) == 0 {
		return core.Account{}, "", fmt.Errorf("sqlstore: account for email %q not found", normalized)
	}
	record := records[0]
	hash := ""
	if record.PasswordHash != nil {
		hash = *record.PasswordHash
	}
	return record.toDomain(), hash, nil
}

// GetByID fails hard when the id has no row; callers treat absence as
// exceptional.
func (s *AccountStore) GetByID(ctx context.Context, id string) (core.Account, error) {
	if s == nil || s.repo == nil {
		return core.Account{}, fmt.Errorf("sqlstore: account store is not configured")
	}
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return core.Account{}, fmt.Errorf("sqlstore: account id is required")
	}
	record, err := s.repo.GetByID(ctx, trimmed)
	if err != nil {
		return core.Account{}, fmt.Errorf("sqlstore: account %q not found: %w", trimmed, err)
	}
	return record.toDomain(), nil
}

func (s *AccountStore) HasEmail(ctx context.Context, tenant string, email string) (bool, error) {
	if s == nil || s.db == nil {
		return false, fmt.Errorf("sqlstore: account store is not configured")
	}
	count, err := idb(ctx, s.db).NewSelect().
		Model((*accountRecord)(nil)).
		Where("tenant = ?", strings.TrimSpace(tenant)).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasWalletAddress is not tenant-filtered; wallet addresses identify the
// holder across tenants.
func (s *AccountStore) HasWalletAddress(ctx context.Context, address string) (bool, error) {
	if s == nil || s.db == nil {
		return false, fmt.Errorf("sqlstore: account store is not configured")
	}
	count, err := idb(ctx, s.db).NewSelect().
		Model((*accountRecord)(nil)).
		Where("wallet_address = ?", strings.TrimSpace(address)).
		Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *AccountStore) FindByWalletAddress(ctx context.Context, address string) ([]core.Account, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: account store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("wallet_address", "=", strings.TrimSpace(address)),
		repository.OrderBy("created_at ASC"),
	)
	if err != nil {
		return nil, err
	}
	out := make([]core.Account, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

func displayName(name string, fallback string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed != "" {
		return trimmed
	}
	return fallback
}

var _ core.AccountStore = (*AccountStore)(nil)

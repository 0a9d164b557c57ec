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

type IssuerStore struct {
	db      *bun.DB
	issuers repository.Repository[*issuerRecord]
	links   repository.Repository[*accountIssuerRecord]
}

func NewIssuerStore(db *bun.DB) (*IssuerStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	return &IssuerStore{
		db:      db,
		issuers: repository.NewRepository[*issuerRecord](db, issuerHandlers()),
		links:   repository.NewRepository[*accountIssuerRecord](db, accountIssuerHandlers()),
	}, nil
}

// RegisterIssuer makes an issuer available for onboarding links. Idempotent
// per name.
func (s *IssuerStore) RegisterIssuer(ctx context.Context, name string) (string, error) {
	if s == nil || s.db == nil {
		return "", fmt.Errorf("sqlstore: issuer store is not configured")
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("sqlstore: issuer name is required")
	}
	if existing, err := s.FindIssuerIDByName(ctx, trimmed); err != nil {
		return "", err
	} else if existing != "" {
		return existing, nil
	}
	record := &issuerRecord{
		ID:        uuid.NewString(),
		Name:      trimmed,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.issuers.CreateTx(ctx, idb(ctx, s.db), record)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

// FindIssuerIDByName returns "" with a nil error when no issuer carries the
// name.
func (s *IssuerStore) FindIssuerIDByName(ctx context.Context, name string) (string, error) {
	if s == nil || s.db == nil {
		return "", fmt.Errorf("sqlstore: issuer store is not configured")
	}
	var records []*issuerRecord
	err := idb(ctx, s.db).NewSelect().
		Model(&records).
		Where("name = ?", strings.TrimSpace(name)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", nil
	}
	return records[0].ID, nil
}

func (s *IssuerStore) LinkAccount(ctx context.Context, in core.LinkIssuerInput) error {
	if s == nil || s.links == nil {
		return fmt.Errorf("sqlstore: issuer store is not configured")
	}
	if strings.TrimSpace(in.AccountID) == "" {
		return fmt.Errorf("sqlstore: account id is required")
	}
	if strings.TrimSpace(in.IssuerID) == "" {
		return fmt.Errorf("sqlstore: issuer id is required")
	}

	record := &accountIssuerRecord{
		ID:        uuid.NewString(),
		Tenant:    strings.TrimSpace(in.Tenant),
		AccountID: strings.TrimSpace(in.AccountID),
		IssuerID:  strings.TrimSpace(in.IssuerID),
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.links.CreateTx(ctx, idb(ctx, s.db), record)
	return err
}

var _ core.IssuerDirectory = (*IssuerStore)(nil)

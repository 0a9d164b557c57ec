package sqlstore

import (
	"strings"
	"time"

	"github.com/goliatone/go-wallet-accounts/core"
	"github.com/uptrace/bun"
)

type accountRecord struct {
	bun.BaseModel `bun:"table:wallet_accounts,alias:wa"`

	ID            string    `bun:"id,pk"`
	Tenant        string    `bun:"tenant,notnull"`
	Name          string    `bun:"name,notnull"`
	Email         *string   `bun:"email"`
	PasswordHash  *string   `bun:"password_hash"`
	WalletAddress *string   `bun:"wallet_address"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (r *accountRecord) toDomain() core.Account {
	if r == nil {
		return core.Account{}
	}
	account := core.Account{
		ID:        r.ID,
		Tenant:    r.Tenant,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
	}
	if r.Email != nil {
		account.Email = strings.TrimSpace(*r.Email)
	}
	if r.WalletAddress != nil {
		account.WalletAddress = strings.TrimSpace(*r.WalletAddress)
	}
	return account
}

type walletRecord struct {
	bun.BaseModel `bun:"table:wallets,alias:w"`

	ID         string    `bun:"id,pk"`
	Name       string    `bun:"name,notnull"`
	DefaultDid *string   `bun:"default_did"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type accountWalletRecord struct {
	bun.BaseModel `bun:"table:account_wallet_mappings,alias:awm"`

	ID         string    `bun:"id,pk"`
	Tenant     string    `bun:"tenant,notnull"`
	AccountID  string    `bun:"account_id,notnull"`
	WalletID   string    `bun:"wallet_id,notnull"`
	Permission string    `bun:"permission,notnull"`
	AddedOn    time.Time `bun:"added_on,nullzero,notnull,default:current_timestamp"`
}

type issuerRecord struct {
	bun.BaseModel `bun:"table:issuers,alias:i"`

	ID        string    `bun:"id,pk"`
	Name      string    `bun:"name,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type accountIssuerRecord struct {
	bun.BaseModel `bun:"table:account_issuers,alias:ai"`

	ID        string    `bun:"id,pk"`
	Tenant    string    `bun:"tenant,notnull"`
	AccountID string    `bun:"account_id,notnull"`
	IssuerID  string    `bun:"issuer_id,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// eventRecord rows are append-only. Seq is the per-table insertion key that
// gives the log its total order; ID is the caller-visible cursor value.
type eventRecord struct {
	bun.BaseModel `bun:"table:wallet_events,alias:we"`

	Seq        int64          `bun:"seq,pk,autoincrement"`
	ID         string         `bun:"id,notnull"`
	Tenant     string         `bun:"tenant,notnull"`
	Action     string         `bun:"action,notnull"`
	Originator string         `bun:"originator,notnull"`
	AccountID  string         `bun:"account_id,notnull"`
	WalletID   *string        `bun:"wallet_id"`
	Data       map[string]any `bun:"data,type:jsonb,notnull"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (r *eventRecord) toDomain() core.Event {
	if r == nil {
		return core.Event{}
	}
	event := core.Event{
		ID:         r.ID,
		Tenant:     r.Tenant,
		Action:     core.EventAction(r.Action),
		Originator: r.Originator,
		Account:    r.AccountID,
		Data:       copyAnyMap(r.Data),
		CreatedAt:  r.CreatedAt,
	}
	if r.WalletID != nil {
		event.Wallet = strings.TrimSpace(*r.WalletID)
	}
	return event
}

func copyAnyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

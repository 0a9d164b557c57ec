package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

// AccountStrategy is the credential-kind-specific half of registration and
// authentication. Implementations persist their own credential material; the
// orchestrator handles everything after the account row exists.
type AccountStrategy interface {
	Register(ctx context.Context, tenant string, request AccountRequest) (RegistrationResult, error)
	Authenticate(ctx context.Context, tenant string, request AccountRequest) (AuthenticatedUser, error)
}

// WalletProvisioner is the external wallet-provisioning collaborator. It owns
// wallet and identifier creation; this module only drives it.
type WalletProvisioner interface {
	CreateWallet(ctx context.Context, tenant string, accountID string) (string, error)
	WalletService(ctx context.Context, tenant string, accountID string, walletID string) (WalletService, error)
}

type WalletService interface {
	CreateDid(ctx context.Context, kind string, options map[string]any) (string, error)
	SetDefault(ctx context.Context, didID string) error
}

type TokenIssuer interface {
	GenerateToken(ctx context.Context) (string, error)
}

// TransactionScope bounds the statements executed inside fn to one storage
// transaction. Atomicity covers only those statements.
type TransactionScope interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type IssuerDirectory interface {
	// FindIssuerIDByName returns the issuer id, or "" when no issuer with
	// that name exists. Absence is not an error.
	FindIssuerIDByName(ctx context.Context, name string) (string, error)
	LinkAccount(ctx context.Context, in LinkIssuerInput) error
}

type AccountStore interface {
	CreateEmailAccount(ctx context.Context, in CreateEmailAccountInput) (Account, error)
	CreateAddressAccount(ctx context.Context, in CreateAddressAccountInput) (Account, error)
	GetByEmail(ctx context.Context, tenant string, email string) (Account, string, error)
	GetByID(ctx context.Context, id string) (Account, error)
	HasEmail(ctx context.Context, tenant string, email string) (bool, error)
	HasWalletAddress(ctx context.Context, address string) (bool, error)
	FindByWalletAddress(ctx context.Context, address string) ([]Account, error)
}

type WalletStore interface {
	AddMapping(ctx context.Context, in AddWalletMappingInput) error
	ListMappings(ctx context.Context, tenant string, accountID string) ([]WalletListing, error)
}

// EventStore owns the append-only event log. Filter must honor the
// EventLogFilter semantics: AND of equality predicates, sortable fields,
// strictly-after cursor pagination.
type EventStore interface {
	Append(ctx context.Context, event Event) error
	Filter(ctx context.Context, tenant string, filter EventLogFilter) (EventLogPage, error)
}

type EventRetentionPolicy struct {
	TTL    time.Duration
	RowCap int
}

type EventRetentionPruner interface {
	Prune(ctx context.Context, policy EventRetentionPolicy) (int, error)
}

// AccountDirectory is the read side consumed by external callers.
type AccountDirectory interface {
	GetAccountWalletMappings(ctx context.Context, tenant string, accountID string) (AccountWalletListing, error)
	HasAccountEmail(ctx context.Context, tenant string, email string) (bool, error)
	HasAccountWalletAddress(ctx context.Context, address string) (bool, error)
	GetAccountByWalletAddress(ctx context.Context, address string) ([]Account, error)
	GetNameFor(ctx context.Context, accountID string) (string, error)
}

type StoreProvider interface {
	AccountStore() AccountStore
	WalletStore() WalletStore
	EventStore() EventStore
	IssuerDirectory() IssuerDirectory
	TransactionScope() TransactionScope
}

// RepositoryStoreFactory lets NewService build stores lazily from a
// persistence client handed in at construction time.
type RepositoryStoreFactory interface {
	BuildStores(persistenceClient any) (StoreProvider, error)
}

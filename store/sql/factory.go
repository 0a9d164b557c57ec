package sqlstore

import (
	"fmt"

	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-wallet-accounts/core"
	"github.com/uptrace/bun"
)

type RepositoryFactory struct {
	db *bun.DB

	accountStore      *AccountStore
	walletStore       *WalletStore
	issuerStore       *IssuerStore
	eventStore        *EventStore
	transactionScope  *BunTransactionScope
	walletProvisioner *LocalWalletProvisioner
}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{}
}

func NewRepositoryFactoryFromPersistence(client *persistence.Client) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if _, err := factory.BuildStores(client); err != nil {
		return nil, err
	}
	return factory, nil
}

func NewRepositoryFactoryFromDB(db *bun.DB) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if _, err := factory.BuildStores(db); err != nil {
		return nil, err
	}
	return factory, nil
}

func (f *RepositoryFactory) BuildStores(persistenceClient any) (core.StoreProvider, error) {
	if f == nil {
		return nil, fmt.Errorf("sqlstore: repository factory is nil")
	}
	if f.db == nil {
		db, err := resolveBunDB(persistenceClient)
		if err != nil {
			return nil, err
		}
		f.db = db
	}
	if f.accountStore != nil && f.eventStore != nil {
		return f, nil
	}
	if err := f.initStores(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *RepositoryFactory) DB() *bun.DB {
	if f == nil {
		return nil
	}
	return f.db
}

func (f *RepositoryFactory) AccountStore() core.AccountStore {
	if f == nil {
		return nil
	}
	return f.accountStore
}

func (f *RepositoryFactory) WalletStore() core.WalletStore {
	if f == nil {
		return nil
	}
	return f.walletStore
}

func (f *RepositoryFactory) EventStore() core.EventStore {
	if f == nil {
		return nil
	}
	return f.eventStore
}

func (f *RepositoryFactory) IssuerDirectory() core.IssuerDirectory {
	if f == nil {
		return nil
	}
	return f.issuerStore
}

func (f *RepositoryFactory) TransactionScope() core.TransactionScope {
	if f == nil {
		return nil
	}
	return f.transactionScope
}

// IssuerStore exposes the concrete issuer store for seeding flows that need
// RegisterIssuer on top of the directory contract.
func (f *RepositoryFactory) IssuerStore() *IssuerStore {
	if f == nil {
		return nil
	}
	return f.issuerStore
}

// WalletProvisioner returns the storage-backed provisioner for deployments
// without an external wallet platform.
func (f *RepositoryFactory) WalletProvisioner() core.WalletProvisioner {
	if f == nil {
		return nil
	}
	return f.walletProvisioner
}

func (f *RepositoryFactory) initStores() error {
	accountStore, err := NewAccountStore(f.db)
	if err != nil {
		return err
	}
	f.accountStore = accountStore

	walletStore, err := NewWalletStore(f.db)
	if err != nil {
		return err
	}
	f.walletStore = walletStore

	issuerStore, err := NewIssuerStore(f.db)
	if err != nil {
		return err
	}
	f.issuerStore = issuerStore

	eventStore, err := NewEventStore(f.db)
	if err != nil {
		return err
	}
	f.eventStore = eventStore

	transactionScope, err := NewBunTransactionScope(f.db)
	if err != nil {
		return err
	}
	f.transactionScope = transactionScope

	walletProvisioner, err := NewLocalWalletProvisioner(f.db, walletStore)
	if err != nil {
		return err
	}
	f.walletProvisioner = walletProvisioner

	return nil
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}

var _ core.StoreProvider = (*RepositoryFactory)(nil)
var _ core.RepositoryStoreFactory = (*RepositoryFactory)(nil)

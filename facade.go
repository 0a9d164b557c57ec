package walletaccounts

import (
	"fmt"
	"reflect"

	accountscommand "github.com/goliatone/go-wallet-accounts/command"
	"github.com/goliatone/go-wallet-accounts/core"
	accountsquery "github.com/goliatone/go-wallet-accounts/query"
)

type CommandQueryService interface {
	accountscommand.MutatingService
	accountsquery.EventLogReader
	accountsquery.AccountDirectoryReader
}

type Commands struct {
	RegisterAccount *accountscommand.RegisterAccountCommand
	Authenticate    *accountscommand.AuthenticateCommand
	PruneEventLog   *accountscommand.PruneEventLogCommand
}

type Queries struct {
	FilterEventLog           *accountsquery.FilterEventLogQuery
	GetAccountWalletMappings *accountsquery.GetAccountWalletMappingsQuery
	GetAccountName           *accountsquery.GetAccountNameQuery
	GetAccountByAddress      *accountsquery.GetAccountByAddressQuery
	HasAccountEmail          *accountsquery.HasAccountEmailQuery
	HasAccountWalletAddress  *accountsquery.HasAccountWalletAddressQuery
}

type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	eventPruner core.EventRetentionPruner
}

func WithEventPruner(pruner core.EventRetentionPruner) FacadeOption {
	return func(options *facadeOptions) {
		options.eventPruner = pruner
	}
}

func NewFacade(service CommandQueryService, opts ...FacadeOption) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("accounts: command/query service is required")
	}
	cfg := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	pruner := cfg.eventPruner
	if pruner == nil {
		pruner = resolveEventPruner(service)
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		RegisterAccount: accountscommand.NewRegisterAccountCommand(service),
		Authenticate:    accountscommand.NewAuthenticateCommand(service),
		PruneEventLog:   accountscommand.NewPruneEventLogCommand(pruner),
	}
	facade.queries = Queries{
		FilterEventLog:           accountsquery.NewFilterEventLogQuery(service),
		GetAccountWalletMappings: accountsquery.NewGetAccountWalletMappingsQuery(service),
		GetAccountName:           accountsquery.NewGetAccountNameQuery(service),
		GetAccountByAddress:      accountsquery.NewGetAccountByAddressQuery(service),
		HasAccountEmail:          accountsquery.NewHasAccountEmailQuery(service),
		HasAccountWalletAddress:  accountsquery.NewHasAccountWalletAddressQuery(service),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}

// resolveEventPruner finds the retention pruner behind the service's wiring:
// either the event store itself supports pruning, or the repository factory
// can hand back one that does.
func resolveEventPruner(service CommandQueryService) core.EventRetentionPruner {
	if service == nil {
		return nil
	}
	if pruner, ok := service.(core.EventRetentionPruner); ok {
		return pruner
	}
	provider, ok := service.(interface {
		Dependencies() core.ServiceDependencies
	})
	if !ok {
		return nil
	}
	deps := provider.Dependencies()
	if pruner, ok := deps.EventStore.(core.EventRetentionPruner); ok {
		return pruner
	}
	if deps.RepositoryFactory == nil {
		return nil
	}

	factoryValue := reflect.ValueOf(deps.RepositoryFactory)
	if !factoryValue.IsValid() {
		return nil
	}
	if factoryValue.Kind() == reflect.Ptr && factoryValue.IsNil() {
		return nil
	}
	method := factoryValue.MethodByName("EventStore")
	if !method.IsValid() || method.Type().NumIn() != 0 || method.Type().NumOut() != 1 {
		return nil
	}

	results, ok := safeReflectCall(method)
	if !ok || len(results) != 1 {
		return nil
	}
	candidate := results[0]
	if !candidate.IsValid() {
		return nil
	}
	if candidate.Kind() == reflect.Ptr && candidate.IsNil() {
		return nil
	}
	pruner, ok := candidate.Interface().(core.EventRetentionPruner)
	if !ok {
		return nil
	}
	return pruner
}

func safeReflectCall(method reflect.Value) (_ []reflect.Value, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return method.Call(nil), true
}

var _ CommandQueryService = (*core.Service)(nil)

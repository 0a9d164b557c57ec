// Package walletaccounts provides multi-tenant account registration and
// authentication for wallet holders, plus the append-only event log that
// records every provisioning and login action.
package walletaccounts

import "github.com/goliatone/go-wallet-accounts/core"

type Config = core.Config

type OnboardingConfig = core.OnboardingConfig

type EventLogConfig = core.EventLogConfig

type Option = core.Option

type Service = core.Service

type ServiceDependencies = core.ServiceDependencies

type Account = core.Account
type AccountRequest = core.AccountRequest
type EmailAccountRequest = core.EmailAccountRequest
type AddressAccountRequest = core.AddressAccountRequest
type RegistrationResult = core.RegistrationResult
type AuthenticationResult = core.AuthenticationResult

type Event = core.Event
type EventLogFilter = core.EventLogFilter
type EventLogPage = core.EventLogPage
type WalletListing = core.WalletListing
type AccountWalletListing = core.AccountWalletListing

var (
	WithLogger            = core.WithLogger
	WithLoggerProvider    = core.WithLoggerProvider
	WithErrorFactory      = core.WithErrorFactory
	WithErrorMapper       = core.WithErrorMapper
	WithPersistenceClient = core.WithPersistenceClient
	WithRepositoryFactory = core.WithRepositoryFactory
	WithConfigProvider    = core.WithConfigProvider
	WithOptionsResolver   = core.WithOptionsResolver
	WithWalletProvisioner = core.WithWalletProvisioner
	WithTokenIssuer       = core.WithTokenIssuer
	WithEmailStrategy     = core.WithEmailStrategy
	WithAddressStrategy   = core.WithAddressStrategy
	WithAccountStore      = core.WithAccountStore
	WithWalletStore       = core.WithWalletStore
	WithEventStore        = core.WithEventStore
	WithIssuerDirectory   = core.WithIssuerDirectory
	WithTransactionScope  = core.WithTransactionScope
	WithRuntimeConfig     = core.WithRuntimeConfig
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// New builds the account service. See core.NewService for wiring details.
func New(cfg Config, opts ...Option) (*Service, error) {
	return core.NewService(cfg, opts...)
}

// ParseEventLogFilter normalizes raw query-string input into a filter.
func ParseEventLogFilter(limit string, pairs []string, startingAfter string, sortBy string, sortOrder string) EventLogFilter {
	return core.ParseEventLogFilter(limit, pairs, startingAfter, sortBy, sortOrder)
}

package core

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

var (
	ErrStrategyNotConfigured = errors.New("core: no strategy configured for request variant")
)

// Service drives the account provisioning and authentication workflows and
// fronts the event-log query engine. One logical workflow per call; no
// workflow state survives the call.
type Service struct {
	config            Config
	logger            Logger
	loggerProvider    LoggerProvider
	errorFactory      ErrorFactory
	errorMapper       ErrorMapper
	persistenceClient any
	repositoryFactory any
	configProvider    ConfigProvider
	optionsResolver   OptionsResolver
	provisioner       WalletProvisioner
	tokenIssuer       TokenIssuer
	emailStrategy     AccountStrategy
	addressStrategy   AccountStrategy
	accountStore      AccountStore
	walletStore       WalletStore
	eventStore        EventStore
	issuerDirectory   IssuerDirectory
	txScope           TransactionScope
}

type ServiceDependencies struct {
	Logger            Logger
	LoggerProvider    LoggerProvider
	ErrorFactory      ErrorFactory
	ErrorMapper       ErrorMapper
	PersistenceClient any
	RepositoryFactory any
	ConfigProvider    ConfigProvider
	OptionsResolver   OptionsResolver
	WalletProvisioner WalletProvisioner
	TokenIssuer       TokenIssuer
	EmailStrategy     AccountStrategy
	AddressStrategy   AccountStrategy
	AccountStore      AccountStore
	WalletStore       WalletStore
	EventStore        EventStore
	IssuerDirectory   IssuerDirectory
	TransactionScope  TransactionScope
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("accounts", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("accounts"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	if builder.tokenIssuer == nil {
		builder.tokenIssuer = OpaqueTokenIssuer{Bytes: finalConfig.TokenBytes}
	}

	if storesMissing(&builder) && builder.repositoryFactory != nil {
		if storeFactory, ok := builder.repositoryFactory.(RepositoryStoreFactory); ok {
			provider, buildErr := storeFactory.BuildStores(builder.persistenceClient)
			if buildErr != nil {
				return nil, mapBuildError(builder.errorMapper, buildErr)
			}
			adoptStoreProvider(&builder, provider)
		} else if provider, ok := builder.repositoryFactory.(StoreProvider); ok {
			adoptStoreProvider(&builder, provider)
		}
	}

	return &Service{
		config:            finalConfig,
		logger:            logger,
		loggerProvider:    provider,
		errorFactory:      builder.errorFactory,
		errorMapper:       builder.errorMapper,
		persistenceClient: builder.persistenceClient,
		repositoryFactory: builder.repositoryFactory,
		configProvider:    builder.configProvider,
		optionsResolver:   builder.optionsResolver,
		provisioner:       builder.provisioner,
		tokenIssuer:       builder.tokenIssuer,
		emailStrategy:     builder.emailStrategy,
		addressStrategy:   builder.addressStrategy,
		accountStore:      builder.accountStore,
		walletStore:       builder.walletStore,
		eventStore:        builder.eventStore,
		issuerDirectory:   builder.issuerDirectory,
		txScope:           builder.txScope,
	}, nil
}

func Setup(cfg Config, opts ...Option) (*Service, error) {
	return NewService(cfg, opts...)
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

func (s *Service) Dependencies() ServiceDependencies {
	if s == nil {
		return ServiceDependencies{}
	}
	return ServiceDependencies{
		Logger:            s.logger,
		LoggerProvider:    s.loggerProvider,
		ErrorFactory:      s.errorFactory,
		ErrorMapper:       s.errorMapper,
		PersistenceClient: s.persistenceClient,
		RepositoryFactory: s.repositoryFactory,
		ConfigProvider:    s.configProvider,
		OptionsResolver:   s.optionsResolver,
		WalletProvisioner: s.provisioner,
		TokenIssuer:       s.tokenIssuer,
		EmailStrategy:     s.emailStrategy,
		AddressStrategy:   s.addressStrategy,
		AccountStore:      s.accountStore,
		WalletStore:       s.walletStore,
		EventStore:        s.eventStore,
		IssuerDirectory:   s.issuerDirectory,
		TransactionScope:  s.txScope,
	}
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	if s == nil || s.errorMapper == nil {
		return err
	}
	mapped := s.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

// strategyFor dispatches on the closed request union. Unknown variants are a
// wiring bug, not caller input.
func (s *Service) strategyFor(request AccountRequest) (AccountStrategy, error) {
	switch request.(type) {
	case EmailAccountRequest, *EmailAccountRequest:
		if s.emailStrategy == nil {
			return nil, ErrStrategyNotConfigured
		}
		return s.emailStrategy, nil
	case AddressAccountRequest, *AddressAccountRequest:
		if s.addressStrategy == nil {
			return nil, ErrStrategyNotConfigured
		}
		return s.addressStrategy, nil
	default:
		return nil, ErrStrategyNotConfigured
	}
}

func storesMissing(builder *serviceBuilder) bool {
	return builder.accountStore == nil ||
		builder.walletStore == nil ||
		builder.eventStore == nil ||
		builder.issuerDirectory == nil ||
		builder.txScope == nil
}

func adoptStoreProvider(builder *serviceBuilder, provider StoreProvider) {
	if provider == nil {
		return
	}
	if builder.accountStore == nil {
		builder.accountStore = provider.AccountStore()
	}
	if builder.walletStore == nil {
		builder.walletStore = provider.WalletStore()
	}
	if builder.eventStore == nil {
		builder.eventStore = provider.EventStore()
	}
	if builder.issuerDirectory == nil {
		builder.issuerDirectory = provider.IssuerDirectory()
	}
	if builder.txScope == nil {
		builder.txScope = provider.TransactionScope()
	}
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-config/cfgx"
	goerrors "github.com/goliatone/go-errors"
	opts "github.com/goliatone/go-options"
)

type ErrorFactory func(message string, category ...goerrors.Category) *goerrors.Error

type ErrorMapper func(err error) *goerrors.Error

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

type serviceBuilder struct {
	runtimeConfig     Config
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

type Option func(*serviceBuilder)

func WithLogger(logger Logger) Option {
	return func(b *serviceBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider LoggerProvider) Option {
	return func(b *serviceBuilder) {
		b.loggerProvider = provider
	}
}

func WithErrorFactory(factory ErrorFactory) Option {
	return func(b *serviceBuilder) {
		b.errorFactory = factory
	}
}

func WithErrorMapper(mapper ErrorMapper) Option {
	return func(b *serviceBuilder) {
		b.errorMapper = mapper
	}
}

func WithPersistenceClient(client any) Option {
	return func(b *serviceBuilder) {
		b.persistenceClient = client
	}
}

func WithRepositoryFactory(factory any) Option {
	return func(b *serviceBuilder) {
		b.repositoryFactory = factory
	}
}

func WithConfigProvider(provider ConfigProvider) Option {
	return func(b *serviceBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver OptionsResolver) Option {
	return func(b *serviceBuilder) {
		b.optionsResolver = resolver
	}
}

func WithWalletProvisioner(provisioner WalletProvisioner) Option {
	return func(b *serviceBuilder) {
		b.provisioner = provisioner
	}
}

func WithTokenIssuer(issuer TokenIssuer) Option {
	return func(b *serviceBuilder) {
		b.tokenIssuer = issuer
	}
}

func WithEmailStrategy(strategy AccountStrategy) Option {
	return func(b *serviceBuilder) {
		b.emailStrategy = strategy
	}
}

func WithAddressStrategy(strategy AccountStrategy) Option {
	return func(b *serviceBuilder) {
		b.addressStrategy = strategy
	}
}

func WithAccountStore(store AccountStore) Option {
	return func(b *serviceBuilder) {
		b.accountStore = store
	}
}

func WithWalletStore(store WalletStore) Option {
	return func(b *serviceBuilder) {
		b.walletStore = store
	}
}

func WithEventStore(store EventStore) Option {
	return func(b *serviceBuilder) {
		b.eventStore = store
	}
}

func WithIssuerDirectory(directory IssuerDirectory) Option {
	return func(b *serviceBuilder) {
		b.issuerDirectory = directory
	}
}

func WithTransactionScope(scope TransactionScope) Option {
	return func(b *serviceBuilder) {
		b.txScope = scope
	}
}

func WithRuntimeConfig(cfg Config) Option {
	return func(b *serviceBuilder) {
		b.runtimeConfig = cfg
	}
}

func defaultServiceBuilder(cfg Config) serviceBuilder {
	return serviceBuilder{
		runtimeConfig: cfg,
	}
}

func defaultErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	return accountErrorMapper(err)
}

type staticRawConfigLoader struct {
	Values map[string]any
}

func (l staticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = staticRawConfigLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg, err := cfgx.Build[Config](raw,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	defaultLayer := configToLayerMap(defaults, true)
	loadedLayer := configToLayerMap(loaded, false)
	runtimeLayer := configToLayerMap(runtime, false)

	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			defaultLayer,
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			loadedLayer,
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			runtimeLayer,
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	if err := resolved.Validate(); err != nil {
		return Config{}, err
	}
	return resolved, nil
}

func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.ServiceName) != "" {
		layer["service_name"] = cfg.ServiceName
	}
	if includeZero || strings.TrimSpace(cfg.Originator) != "" {
		layer["originator"] = cfg.Originator
	}
	if includeZero || cfg.TokenBytes > 0 {
		layer["token_bytes"] = cfg.TokenBytes
	}

	onboarding := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.Onboarding.DefaultIssuerName) != "" {
		onboarding["default_issuer_name"] = cfg.Onboarding.DefaultIssuerName
	}
	if includeZero || strings.TrimSpace(cfg.Onboarding.DefaultDidKind) != "" {
		onboarding["default_did_kind"] = cfg.Onboarding.DefaultDidKind
	}
	if includeZero || strings.TrimSpace(cfg.Onboarding.DefaultDidAlias) != "" {
		onboarding["default_did_alias"] = cfg.Onboarding.DefaultDidAlias
	}
	if len(onboarding) > 0 {
		layer["onboarding"] = onboarding
	}

	eventLog := map[string]any{}
	if includeZero || cfg.EventLog.DefaultPageSize > 0 {
		eventLog["default_page_size"] = cfg.EventLog.DefaultPageSize
	}
	if includeZero || cfg.EventLog.RetentionTTL > time.Duration(0) {
		eventLog["retention_ttl"] = cfg.EventLog.RetentionTTL
	}
	if includeZero || cfg.EventLog.RetentionRowCap > 0 {
		eventLog["retention_row_cap"] = cfg.EventLog.RetentionRowCap
	}
	if len(eventLog) > 0 {
		layer["event_log"] = eventLog
	}
	return layer
}

package core

import (
	"fmt"
	"strings"
	"time"
)

type OnboardingConfig struct {
	DefaultIssuerName string `koanf:"default_issuer_name" mapstructure:"default_issuer_name"`
	DefaultDidKind    string `koanf:"default_did_kind" mapstructure:"default_did_kind"`
	DefaultDidAlias   string `koanf:"default_did_alias" mapstructure:"default_did_alias"`
}

type EventLogConfig struct {
	DefaultPageSize int           `koanf:"default_page_size" mapstructure:"default_page_size"`
	RetentionTTL    time.Duration `koanf:"retention_ttl" mapstructure:"retention_ttl"`
	RetentionRowCap int           `koanf:"retention_row_cap" mapstructure:"retention_row_cap"`
}

type Config struct {
	ServiceName string           `koanf:"service_name" mapstructure:"service_name"`
	Originator  string           `koanf:"originator" mapstructure:"originator"`
	TokenBytes  int              `koanf:"token_bytes" mapstructure:"token_bytes"`
	Onboarding  OnboardingConfig `koanf:"onboarding" mapstructure:"onboarding"`
	EventLog    EventLogConfig   `koanf:"event_log" mapstructure:"event_log"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "accounts",
		Originator:  "wallet",
		TokenBytes:  defaultTokenBytes,
		Onboarding: OnboardingConfig{
			DefaultIssuerName: "walt.id",
			DefaultDidKind:    "key",
			DefaultDidAlias:   "Onboarding",
		},
		EventLog: EventLogConfig{
			DefaultPageSize: 25,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if strings.TrimSpace(c.Originator) == "" {
		return fmt.Errorf("core: originator is required")
	}
	if c.TokenBytes < 0 {
		return fmt.Errorf("core: token_bytes must be >= 0")
	}
	if c.EventLog.DefaultPageSize < 0 {
		return fmt.Errorf("core: event_log.default_page_size must be >= 0")
	}
	return nil
}

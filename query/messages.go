package query

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-wallet-accounts/core"
)

const (
	TypeFilterEventLog           = "accounts.query.event_log.filter"
	TypeGetAccountWalletMappings = "accounts.query.wallet_mappings.get"
	TypeGetAccountName           = "accounts.query.account_name.get"
	TypeGetAccountByAddress      = "accounts.query.account_by_address.get"
	TypeHasAccountEmail          = "accounts.query.account_email.has"
	TypeHasAccountWalletAddress  = "accounts.query.account_address.has"
)

type FilterEventLogMessage struct {
	Tenant string
	Filter core.EventLogFilter
}

func (FilterEventLogMessage) Type() string { return TypeFilterEventLog }

func (m FilterEventLogMessage) Validate() error {
	if strings.TrimSpace(m.Tenant) == "" {
		return fmt.Errorf("query: tenant is required")
	}
	return nil
}

type GetAccountWalletMappingsMessage struct {
	Tenant    string
	AccountID string
}

func (GetAccountWalletMappingsMessage) Type() string { return TypeGetAccountWalletMappings }

func (m GetAccountWalletMappingsMessage) Validate() error {
	if strings.TrimSpace(m.Tenant) == "" {
		return fmt.Errorf("query: tenant is required")
	}
	if strings.TrimSpace(m.AccountID) == "" {
		return fmt.Errorf("query: account id is required")
	}
	return nil
}

type GetAccountNameMessage struct {
	AccountID string
}

func (GetAccountNameMessage) Type() string { return TypeGetAccountName }

func (m GetAccountNameMessage) Validate() error {
	if strings.TrimSpace(m.AccountID) == "" {
		return fmt.Errorf("query: account id is required")
	}
	return nil
}

type GetAccountByAddressMessage struct {
	Address string
}

func (GetAccountByAddressMessage) Type() string { return TypeGetAccountByAddress }

func (m GetAccountByAddressMessage) Validate() error {
	if strings.TrimSpace(m.Address) == "" {
		return fmt.Errorf("query: wallet address is required")
	}
	return nil
}

type HasAccountEmailMessage struct {
	Tenant string
	Email  string
}

func (HasAccountEmailMessage) Type() string { return TypeHasAccountEmail }

func (m HasAccountEmailMessage) Validate() error {
	if strings.TrimSpace(m.Tenant) == "" {
		return fmt.Errorf("query: tenant is required")
	}
	if strings.TrimSpace(m.Email) == "" {
		return fmt.Errorf("query: email is required")
	}
	return nil
}

// HasAccountWalletAddressMessage carries no tenant: wallet-address identity
// is global.
type HasAccountWalletAddressMessage struct {
	Address string
}

func (HasAccountWalletAddressMessage) Type() string { return TypeHasAccountWalletAddress }

func (m HasAccountWalletAddressMessage) Validate() error {
	if strings.TrimSpace(m.Address) == "" {
		return fmt.Errorf("query: wallet address is required")
	}
	return nil
}

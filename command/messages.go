package command

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-wallet-accounts/core"
)

const (
	TypeRegisterAccount = "accounts.command.register"
	TypeAuthenticate    = "accounts.command.authenticate"
	TypePruneEventLog   = "accounts.command.event_log.prune"
)

type RegisterAccountMessage struct {
	Tenant  string
	Request core.AccountRequest
}

func (RegisterAccountMessage) Type() string { return TypeRegisterAccount }

func (m RegisterAccountMessage) Validate() error {
	if strings.TrimSpace(m.Tenant) == "" {
		return fmt.Errorf("command: tenant is required")
	}
	if m.Request == nil {
		return fmt.Errorf("command: account request is required")
	}
	return nil
}

type AuthenticateMessage struct {
	Tenant  string
	Request core.AccountRequest
}

func (AuthenticateMessage) Type() string { return TypeAuthenticate }

func (m AuthenticateMessage) Validate() error {
	if strings.TrimSpace(m.Tenant) == "" {
		return fmt.Errorf("command: tenant is required")
	}
	if m.Request == nil {
		return fmt.Errorf("command: account request is required")
	}
	return nil
}

type PruneEventLogMessage struct {
	Policy core.EventRetentionPolicy
}

func (PruneEventLogMessage) Type() string { return TypePruneEventLog }

func (m PruneEventLogMessage) Validate() error {
	if m.Policy.TTL <= 0 && m.Policy.RowCap <= 0 {
		return fmt.Errorf("command: retention policy needs a ttl or a row cap")
	}
	return nil
}

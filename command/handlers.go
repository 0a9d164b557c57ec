package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-wallet-accounts/core"
)

type MutatingService interface {
	Register(ctx context.Context, tenant string, request core.AccountRequest) (core.RegistrationResult, error)
	Authenticate(ctx context.Context, tenant string, request core.AccountRequest) (core.AuthenticationResult, error)
}

type RegisterAccountCommand struct {
	service MutatingService
}

func NewRegisterAccountCommand(service MutatingService) *RegisterAccountCommand {
	return &RegisterAccountCommand{service: service}
}

func (c *RegisterAccountCommand) Execute(ctx context.Context, msg RegisterAccountMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: register service is required")
	}
	out, err := c.service.Register(ctx, msg.Tenant, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type AuthenticateCommand struct {
	service MutatingService
}

func NewAuthenticateCommand(service MutatingService) *AuthenticateCommand {
	return &AuthenticateCommand{service: service}
}

func (c *AuthenticateCommand) Execute(ctx context.Context, msg AuthenticateMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: authenticate service is required")
	}
	out, err := c.service.Authenticate(ctx, msg.Tenant, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type PruneEventLogCommand struct {
	pruner core.EventRetentionPruner
}

func NewPruneEventLogCommand(pruner core.EventRetentionPruner) *PruneEventLogCommand {
	return &PruneEventLogCommand{pruner: pruner}
}

func (c *PruneEventLogCommand) Execute(ctx context.Context, msg PruneEventLogMessage) error {
	if c == nil || c.pruner == nil {
		return commandDependencyError("command: event log pruner is required")
	}
	removed, err := c.pruner.Prune(ctx, msg.Policy)
	if err != nil {
		return err
	}
	storeResult(ctx, removed)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}

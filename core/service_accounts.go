package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Register runs the provisioning workflow for a new account. The strategy's
// own domain failure is returned unchanged; any fault after the account row
// exists is wrapped once as a registration failure carrying the cause. Steps
// are strictly sequential and there is no rollback of committed steps.
func (s *Service) Register(ctx context.Context, tenant string, request AccountRequest) (RegistrationResult, error) {
	if s == nil {
		return RegistrationResult{}, fmt.Errorf("core: service is not configured")
	}
	if request == nil {
		return RegistrationResult{}, s.mapError(fmt.Errorf("core: account request is required"))
	}
	if s.provisioner == nil || s.eventStore == nil || s.walletStore == nil || s.txScope == nil {
		return RegistrationResult{}, s.mapError(fmt.Errorf("core: register requires provisioner, wallet, event, and transaction wiring"))
	}

	strategy, err := s.strategyFor(request)
	if err != nil {
		return RegistrationResult{}, s.mapError(err)
	}

	result, err := strategy.Register(ctx, tenant, request)
	if err != nil {
		return RegistrationResult{}, err
	}
	accountID := result.ID

	var walletID string
	err = s.txScope.RunInTransaction(ctx, func(ctx context.Context) error {
		createdWalletID, createErr := s.provisioner.CreateWallet(ctx, tenant, accountID)
		if createErr != nil {
			return createErr
		}
		walletID = createdWalletID
		return s.walletStore.AddMapping(ctx, AddWalletMappingInput{
			Tenant:     tenant,
			AccountID:  accountID,
			WalletID:   walletID,
			Permission: WalletPermissionOwner,
		})
	})
	if err != nil {
		return RegistrationResult{}, RegistrationFailedError(err)
	}

	walletService, err := s.provisioner.WalletService(ctx, tenant, accountID, walletID)
	if err != nil {
		return RegistrationResult{}, RegistrationFailedError(err)
	}

	// Provisioning-started signal. Emitted before the DID and issuer steps
	// complete, and outside their transactions.
	if err := s.eventStore.Append(ctx, Event{
		ID:         uuid.NewString(),
		Tenant:     tenant,
		Action:     EventAccountCreate,
		Originator: s.config.Originator,
		Account:    accountID,
		Wallet:     walletID,
		Data:       map[string]any{"accountId": request.DisplayName()},
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		return RegistrationResult{}, RegistrationFailedError(err)
	}

	didID, err := walletService.CreateDid(ctx, s.config.Onboarding.DefaultDidKind, map[string]any{
		"alias": s.config.Onboarding.DefaultDidAlias,
	})
	if err != nil {
		return RegistrationResult{}, RegistrationFailedError(err)
	}
	if err := walletService.SetDefault(ctx, didID); err != nil {
		return RegistrationResult{}, RegistrationFailedError(err)
	}

	if s.issuerDirectory != nil {
		err = s.txScope.RunInTransaction(ctx, func(ctx context.Context) error {
			issuerID, findErr := s.issuerDirectory.FindIssuerIDByName(ctx, s.config.Onboarding.DefaultIssuerName)
			if findErr != nil {
				return findErr
			}
			if strings.TrimSpace(issuerID) == "" {
				// No default issuer provisioned for this deployment.
				return nil
			}
			return s.issuerDirectory.LinkAccount(ctx, LinkIssuerInput{
				Tenant:    tenant,
				AccountID: accountID,
				IssuerID:  issuerID,
			})
		})
		if err != nil {
			return RegistrationResult{}, RegistrationFailedError(err)
		}
	}

	s.logger.Info("account registered",
		"tenant", tenant,
		"account", accountID,
		"wallet", walletID,
	)
	return result, nil
}

// Authenticate verifies the request's credential material, records the login
// event, and issues a fresh session token. Strategy failures of any kind are
// converted into a typed error result, never re-raised as a fault.
func (s *Service) Authenticate(ctx context.Context, tenant string, request AccountRequest) (AuthenticationResult, error) {
	if s == nil {
		return AuthenticationResult{}, fmt.Errorf("core: service is not configured")
	}
	if request == nil {
		return AuthenticationResult{}, s.mapError(fmt.Errorf("core: account request is required"))
	}
	if s.eventStore == nil || s.tokenIssuer == nil {
		return AuthenticationResult{}, s.mapError(fmt.Errorf("core: authenticate requires event store and token issuer wiring"))
	}

	strategy, err := s.strategyFor(request)
	if err != nil {
		return AuthenticationResult{}, s.mapError(err)
	}

	user, err := strategy.Authenticate(ctx, tenant, request)
	if err != nil {
		return AuthenticationResult{}, s.mapError(err)
	}

	if err := s.eventStore.Append(ctx, Event{
		ID:         uuid.NewString(),
		Tenant:     tenant,
		Action:     EventAccountLogin,
		Originator: s.config.Originator,
		Account:    user.ID,
		Data:       map[string]any{"accountId": user.Username},
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		return AuthenticationResult{}, s.mapError(err)
	}

	token, err := s.tokenIssuer.GenerateToken(ctx)
	if err != nil {
		return AuthenticationResult{}, s.mapError(err)
	}

	return AuthenticationResult{
		ID:       user.ID,
		Username: user.Username,
		Token:    token,
	}, nil
}

// FilterEventLog queries the tenant's event log. A zero limit falls back to
// the configured default page size; a negative limit means unlimited.
func (s *Service) FilterEventLog(ctx context.Context, tenant string, filter EventLogFilter) (EventLogPage, error) {
	if s == nil || s.eventStore == nil {
		return EventLogPage{}, fmt.Errorf("core: event store is not configured")
	}
	if filter.Limit == 0 && s.config.EventLog.DefaultPageSize > 0 {
		filter.Limit = s.config.EventLog.DefaultPageSize
	}
	page, err := s.eventStore.Filter(ctx, tenant, filter)
	if err != nil {
		return EventLogPage{}, s.mapError(err)
	}
	return page, nil
}

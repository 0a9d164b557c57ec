package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-wallet-accounts/core"
	"golang.org/x/crypto/bcrypt"
)

// Email authenticates holders with a tenant-scoped email and a bcrypt-hashed
// secret.
type Email struct {
	accounts core.AccountStore
	cost     int
}

type EmailOption func(*Email)

func WithBcryptCost(cost int) EmailOption {
	return func(s *Email) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.cost = cost
		}
	}
}

func NewEmail(accounts core.AccountStore, opts ...EmailOption) (*Email, error) {
	if accounts == nil {
		return nil, fmt.Errorf("strategy: account store is required")
	}
	strategy := &Email{accounts: accounts, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(strategy)
	}
	return strategy, nil
}

func (s *Email) Register(ctx context.Context, tenant string, request core.AccountRequest) (core.RegistrationResult, error) {
	if s == nil || s.accounts == nil {
		return core.RegistrationResult{}, fmt.Errorf("strategy: email strategy is not configured")
	}
	req, err := emailRequest(request)
	if err != nil {
		return core.RegistrationResult{}, err
	}
	email := normalizeEmail(req.Email)
	if email == "" {
		return core.RegistrationResult{}, fmt.Errorf("strategy: email is required")
	}
	if strings.TrimSpace(req.Password) == "" {
		return core.RegistrationResult{}, fmt.Errorf("strategy: password is required")
	}

	exists, err := s.accounts.HasEmail(ctx, tenant, email)
	if err != nil {
		return core.RegistrationResult{}, err
	}
	if exists {
		return core.RegistrationResult{}, core.DuplicateCredentialError(
			fmt.Sprintf("strategy: email %q is already registered for tenant %q", email, tenant),
		)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return core.RegistrationResult{}, fmt.Errorf("strategy: hash password: %w", err)
	}

	account, err := s.accounts.CreateEmailAccount(ctx, core.CreateEmailAccountInput{
		Tenant:       tenant,
		Name:         req.DisplayName(),
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return core.RegistrationResult{}, err
	}
	return core.RegistrationResult{ID: account.ID}, nil
}

func (s *Email) Authenticate(ctx context.Context, tenant string, request core.AccountRequest) (core.AuthenticatedUser, error) {
	if s == nil || s.accounts == nil {
		return core.AuthenticatedUser{}, fmt.Errorf("strategy: email strategy is not configured")
	}
	req, err := emailRequest(request)
	if err != nil {
		return core.AuthenticatedUser{}, err
	}
	email := normalizeEmail(req.Email)
	if email == "" || strings.TrimSpace(req.Password) == "" {
		return core.AuthenticatedUser{}, core.InvalidCredentialError("strategy: email and password are required")
	}

	account, hash, err := s.accounts.GetByEmail(ctx, tenant, email)
	if err != nil {
		// Unknown email and wrong password are indistinguishable to callers.
		return core.AuthenticatedUser{}, core.InvalidCredentialError("strategy: unknown email or wrong password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return core.AuthenticatedUser{}, core.InvalidCredentialError("strategy: unknown email or wrong password")
	}

	return core.AuthenticatedUser{
		ID:       account.ID,
		Username: account.Email,
	}, nil
}

var _ core.AccountStrategy = (*Email)(nil)

package command

import (
	"context"
	"fmt"
	"testing"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-wallet-accounts/core"
)

type stubMutatingService struct {
	registerFn     func(ctx context.Context, tenant string, request core.AccountRequest) (core.RegistrationResult, error)
	authenticateFn func(ctx context.Context, tenant string, request core.AccountRequest) (core.AuthenticationResult, error)
}

func (s stubMutatingService) Register(ctx context.Context, tenant string, request core.AccountRequest) (core.RegistrationResult, error) {
	if s.registerFn == nil {
		return core.RegistrationResult{}, fmt.Errorf("unexpected register call")
	}
	return s.registerFn(ctx, tenant, request)
}

func (s stubMutatingService) Authenticate(ctx context.Context, tenant string, request core.AccountRequest) (core.AuthenticationResult, error) {
	if s.authenticateFn == nil {
		return core.AuthenticationResult{}, fmt.Errorf("unexpected authenticate call")
	}
	return s.authenticateFn(ctx, tenant, request)
}

type stubPruner struct {
	pruneFn func(ctx context.Context, policy core.EventRetentionPolicy) (int, error)
}

func (s stubPruner) Prune(ctx context.Context, policy core.EventRetentionPolicy) (int, error) {
	if s.pruneFn == nil {
		return 0, fmt.Errorf("unexpected prune call")
	}
	return s.pruneFn(ctx, policy)
}

func TestRegisterAccountCommand_ExecuteDelegatesAndStoresResult(t *testing.T) {
	expected := core.RegistrationResult{ID: "acct_1"}
	called := false

	svc := stubMutatingService{
		registerFn: func(_ context.Context, tenant string, request core.AccountRequest) (core.RegistrationResult, error) {
			called = true
			if tenant != "tenant-a" {
				t.Fatalf("expected tenant-a, got %q", tenant)
			}
			if request.DisplayName() != "ada@example.com" {
				t.Fatalf("unexpected request name: %q", request.DisplayName())
			}
			return expected, nil
		},
	}

	cmd := NewRegisterAccountCommand(svc)
	collector := gocmd.NewResult[core.RegistrationResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	err := cmd.Execute(ctx, RegisterAccountMessage{
		Tenant:  "tenant-a",
		Request: core.EmailAccountRequest{Email: "ada@example.com", Password: "pw"},
	})
	if err != nil {
		t.Fatalf("execute register: %v", err)
	}
	if !called {
		t.Fatalf("expected register service invocation")
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if result.ID != expected.ID {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestAuthenticateCommand_ExecuteDelegatesAndStoresResult(t *testing.T) {
	expected := core.AuthenticationResult{ID: "acct_1", Username: "ada@example.com", Token: "tok"}

	svc := stubMutatingService{
		authenticateFn: func(_ context.Context, tenant string, _ core.AccountRequest) (core.AuthenticationResult, error) {
			if tenant != "tenant-a" {
				t.Fatalf("expected tenant-a, got %q", tenant)
			}
			return expected, nil
		},
	}

	cmd := NewAuthenticateCommand(svc)
	collector := gocmd.NewResult[core.AuthenticationResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	err := cmd.Execute(ctx, AuthenticateMessage{
		Tenant:  "tenant-a",
		Request: core.EmailAccountRequest{Email: "ada@example.com", Password: "pw"},
	})
	if err != nil {
		t.Fatalf("execute authenticate: %v", err)
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if result.Token != expected.Token {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestAuthenticateCommand_ExecutePropagatesServiceError(t *testing.T) {
	wantErr := fmt.Errorf("bad credentials")
	svc := stubMutatingService{
		authenticateFn: func(context.Context, string, core.AccountRequest) (core.AuthenticationResult, error) {
			return core.AuthenticationResult{}, wantErr
		},
	}

	cmd := NewAuthenticateCommand(svc)
	err := cmd.Execute(context.Background(), AuthenticateMessage{
		Tenant:  "tenant-a",
		Request: core.EmailAccountRequest{Email: "ada@example.com", Password: "pw"},
	})
	if err == nil {
		t.Fatalf("expected authentication error")
	}
}

func TestPruneEventLogCommand_ExecuteStoresRemovedCount(t *testing.T) {
	pruner := stubPruner{
		pruneFn: func(_ context.Context, policy core.EventRetentionPolicy) (int, error) {
			if policy.RowCap != 100 {
				t.Fatalf("expected row cap 100, got %d", policy.RowCap)
			}
			return 7, nil
		},
	}

	cmd := NewPruneEventLogCommand(pruner)
	collector := gocmd.NewResult[int]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := cmd.Execute(ctx, PruneEventLogMessage{Policy: core.EventRetentionPolicy{RowCap: 100}}); err != nil {
		t.Fatalf("execute prune: %v", err)
	}
	removed, ok := collector.Load()
	if !ok {
		t.Fatalf("expected removed count to be stored")
	}
	if removed != 7 {
		t.Fatalf("expected 7 removed rows, got %d", removed)
	}
}

func TestMessages_Validate(t *testing.T) {
	if err := (RegisterAccountMessage{}).Validate(); err == nil {
		t.Fatalf("expected tenant validation error")
	}
	if err := (RegisterAccountMessage{Tenant: "tenant-a"}).Validate(); err == nil {
		t.Fatalf("expected request validation error")
	}
	if err := (AuthenticateMessage{Tenant: "tenant-a", Request: core.EmailAccountRequest{}}).Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if err := (PruneEventLogMessage{}).Validate(); err == nil {
		t.Fatalf("expected retention policy validation error")
	}
}

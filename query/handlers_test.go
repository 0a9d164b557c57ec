package query

import (
	"context"
	"fmt"
	"testing"

	"github.com/goliatone/go-wallet-accounts/core"
)

type stubEventLogReader struct {
	filterFn func(ctx context.Context, tenant string, filter core.EventLogFilter) (core.EventLogPage, error)
}

func (s stubEventLogReader) FilterEventLog(ctx context.Context, tenant string, filter core.EventLogFilter) (core.EventLogPage, error) {
	if s.filterFn == nil {
		return core.EventLogPage{}, fmt.Errorf("unexpected filter call")
	}
	return s.filterFn(ctx, tenant, filter)
}

type stubDirectoryReader struct {
	mappingsFn func(ctx context.Context, tenant string, accountID string) (core.AccountWalletListing, error)
	hasEmailFn func(ctx context.Context, tenant string, email string) (bool, error)
	hasAddrFn  func(ctx context.Context, address string) (bool, error)
	byAddrFn   func(ctx context.Context, address string) ([]core.Account, error)
	nameFn     func(ctx context.Context, accountID string) (string, error)
}

func (s stubDirectoryReader) GetAccountWalletMappings(ctx context.Context, tenant string, accountID string) (core.AccountWalletListing, error) {
	if s.mappingsFn == nil {
		return core.AccountWalletListing{}, fmt.Errorf("unexpected mappings call")
	}
	return s.mappingsFn(ctx, tenant, accountID)
}

func (s stubDirectoryReader) HasAccountEmail(ctx context.Context, tenant string, email string) (bool, error) {
	if s.hasEmailFn == nil {
		return false, fmt.Errorf("unexpected has-email call")
	}
	return s.hasEmailFn(ctx, tenant, email)
}

func (s stubDirectoryReader) HasAccountWalletAddress(ctx context.Context, address string) (bool, error) {
	if s.hasAddrFn == nil {
		return false, fmt.Errorf("unexpected has-address call")
	}
	return s.hasAddrFn(ctx, address)
}

func (s stubDirectoryReader) GetAccountByWalletAddress(ctx context.Context, address string) ([]core.Account, error) {
	if s.byAddrFn == nil {
		return nil, fmt.Errorf("unexpected by-address call")
	}
	return s.byAddrFn(ctx, address)
}

func (s stubDirectoryReader) GetNameFor(ctx context.Context, accountID string) (string, error) {
	if s.nameFn == nil {
		return "", fmt.Errorf("unexpected name call")
	}
	return s.nameFn(ctx, accountID)
}

func TestFilterEventLogQuery_QueryDelegates(t *testing.T) {
	expected := core.EventLogPage{
		Events:  []core.Event{{ID: "evt_1", Action: core.EventAccountLogin}},
		HasMore: true,
	}
	called := false
	reader := stubEventLogReader{
		filterFn: func(_ context.Context, tenant string, filter core.EventLogFilter) (core.EventLogPage, error) {
			called = true
			if tenant != "tenant-a" {
				t.Fatalf("expected tenant-a, got %q", tenant)
			}
			if filter.Limit != 10 {
				t.Fatalf("expected limit 10, got %d", filter.Limit)
			}
			return expected, nil
		},
	}

	qry := NewFilterEventLogQuery(reader)
	result, err := qry.Query(context.Background(), FilterEventLogMessage{
		Tenant: "tenant-a",
		Filter: core.EventLogFilter{Limit: 10},
	})
	if err != nil {
		t.Fatalf("query event log: %v", err)
	}
	if !called {
		t.Fatalf("expected event log reader invocation")
	}
	if len(result.Events) != 1 || result.Events[0].ID != "evt_1" {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestDirectoryQueries_Delegate(t *testing.T) {
	reader := stubDirectoryReader{
		mappingsFn: func(_ context.Context, tenant string, accountID string) (core.AccountWalletListing, error) {
			if tenant != "tenant-a" || accountID != "acct_1" {
				t.Fatalf("unexpected mappings request: %q %q", tenant, accountID)
			}
			return core.AccountWalletListing{Account: accountID, Wallets: []core.WalletListing{{ID: "w_1"}}}, nil
		},
		hasEmailFn: func(_ context.Context, tenant string, email string) (bool, error) {
			return tenant == "tenant-a" && email == "ada@example.com", nil
		},
		hasAddrFn: func(_ context.Context, address string) (bool, error) {
			return address == "0xabc", nil
		},
		byAddrFn: func(_ context.Context, address string) ([]core.Account, error) {
			return []core.Account{{ID: "acct_1", WalletAddress: address}}, nil
		},
		nameFn: func(_ context.Context, accountID string) (string, error) {
			return "ada@example.com", nil
		},
	}

	listing, err := NewGetAccountWalletMappingsQuery(reader).Query(context.Background(), GetAccountWalletMappingsMessage{
		Tenant:    "tenant-a",
		AccountID: "acct_1",
	})
	if err != nil {
		t.Fatalf("query mappings: %v", err)
	}
	if len(listing.Wallets) != 1 || listing.Wallets[0].ID != "w_1" {
		t.Fatalf("unexpected listing: %#v", listing)
	}

	has, err := NewHasAccountEmailQuery(reader).Query(context.Background(), HasAccountEmailMessage{
		Tenant: "tenant-a",
		Email:  "ada@example.com",
	})
	if err != nil {
		t.Fatalf("query has email: %v", err)
	}
	if !has {
		t.Fatalf("expected email to exist")
	}

	hasAddr, err := NewHasAccountWalletAddressQuery(reader).Query(context.Background(), HasAccountWalletAddressMessage{
		Address: "0xabc",
	})
	if err != nil {
		t.Fatalf("query has address: %v", err)
	}
	if !hasAddr {
		t.Fatalf("expected wallet address to exist")
	}

	accounts, err := NewGetAccountByAddressQuery(reader).Query(context.Background(), GetAccountByAddressMessage{
		Address: "0xabc",
	})
	if err != nil {
		t.Fatalf("query by address: %v", err)
	}
	if len(accounts) != 1 || accounts[0].WalletAddress != "0xabc" {
		t.Fatalf("unexpected accounts: %#v", accounts)
	}

	name, err := NewGetAccountNameQuery(reader).Query(context.Background(), GetAccountNameMessage{AccountID: "acct_1"})
	if err != nil {
		t.Fatalf("query name: %v", err)
	}
	if name != "ada@example.com" {
		t.Fatalf("unexpected name: %q", name)
	}
}

func TestQueryMessages_Validate(t *testing.T) {
	if err := (FilterEventLogMessage{}).Validate(); err == nil {
		t.Fatalf("expected tenant validation error")
	}
	if err := (GetAccountWalletMappingsMessage{Tenant: "tenant-a"}).Validate(); err == nil {
		t.Fatalf("expected account id validation error")
	}
	if err := (GetAccountNameMessage{}).Validate(); err == nil {
		t.Fatalf("expected account id validation error")
	}
	if err := (GetAccountByAddressMessage{}).Validate(); err == nil {
		t.Fatalf("expected address validation error")
	}
	if err := (HasAccountEmailMessage{Tenant: "tenant-a"}).Validate(); err == nil {
		t.Fatalf("expected email validation error")
	}
	if err := (HasAccountWalletAddressMessage{}).Validate(); err == nil {
		t.Fatalf("expected address validation error")
	}
}

func TestQueries_ReportMissingReader(t *testing.T) {
	var qry *FilterEventLogQuery
	if _, err := qry.Query(context.Background(), FilterEventLogMessage{Tenant: "tenant-a"}); err == nil {
		t.Fatalf("expected dependency error")
	}
}

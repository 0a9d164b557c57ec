package query

import (
	"context"

	"github.com/goliatone/go-wallet-accounts/core"
)

type EventLogReader interface {
	FilterEventLog(ctx context.Context, tenant string, filter core.EventLogFilter) (core.EventLogPage, error)
}

type AccountDirectoryReader interface {
	GetAccountWalletMappings(ctx context.Context, tenant string, accountID string) (core.AccountWalletListing, error)
	HasAccountEmail(ctx context.Context, tenant string, email string) (bool, error)
	HasAccountWalletAddress(ctx context.Context, address string) (bool, error)
	GetAccountByWalletAddress(ctx context.Context, address string) ([]core.Account, error)
	GetNameFor(ctx context.Context, accountID string) (string, error)
}

type FilterEventLogQuery struct {
	reader EventLogReader
}

func NewFilterEventLogQuery(reader EventLogReader) *FilterEventLogQuery {
	return &FilterEventLogQuery{reader: reader}
}

func (q *FilterEventLogQuery) Query(ctx context.Context, msg FilterEventLogMessage) (core.EventLogPage, error) {
	if q == nil || q.reader == nil {
		return core.EventLogPage{}, queryDependencyError("query: event log reader is required")
	}
	return q.reader.FilterEventLog(ctx, msg.Tenant, msg.Filter)
}

type GetAccountWalletMappingsQuery struct {
	reader AccountDirectoryReader
}

func NewGetAccountWalletMappingsQuery(reader AccountDirectoryReader) *GetAccountWalletMappingsQuery {
	return &GetAccountWalletMappingsQuery{reader: reader}
}

func (q *GetAccountWalletMappingsQuery) Query(
	ctx context.Context,
	msg GetAccountWalletMappingsMessage,
) (core.AccountWalletListing, error) {
	if q == nil || q.reader == nil {
		return core.AccountWalletListing{}, queryDependencyError("query: account directory reader is required")
	}
	return q.reader.GetAccountWalletMappings(ctx, msg.Tenant, msg.AccountID)
}

type GetAccountNameQuery struct {
	reader AccountDirectoryReader
}

func NewGetAccountNameQuery(reader AccountDirectoryReader) *GetAccountNameQuery {
	return &GetAccountNameQuery{reader: reader}
}

func (q *GetAccountNameQuery) Query(ctx context.Context, msg GetAccountNameMessage) (string, error) {
	if q == nil || q.reader == nil {
		return "", queryDependencyError("query: account directory reader is required")
	}
	return q.reader.GetNameFor(ctx, msg.AccountID)
}

type GetAccountByAddressQuery struct {
	reader AccountDirectoryReader
}

func NewGetAccountByAddressQuery(reader AccountDirectoryReader) *GetAccountByAddressQuery {
	return &GetAccountByAddressQuery{reader: reader}
}

func (q *GetAccountByAddressQuery) Query(ctx context.Context, msg GetAccountByAddressMessage) ([]core.Account, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: account directory reader is required")
	}
	return q.reader.GetAccountByWalletAddress(ctx, msg.Address)
}

type HasAccountEmailQuery struct {
	reader AccountDirectoryReader
}

func NewHasAccountEmailQuery(reader AccountDirectoryReader) *HasAccountEmailQuery {
	return &HasAccountEmailQuery{reader: reader}
}

func (q *HasAccountEmailQuery) Query(ctx context.Context, msg HasAccountEmailMessage) (bool, error) {
	if q == nil || q.reader == nil {
		return false, queryDependencyError("query: account directory reader is required")
	}
	return q.reader.HasAccountEmail(ctx, msg.Tenant, msg.Email)
}

type HasAccountWalletAddressQuery struct {
	reader AccountDirectoryReader
}

func NewHasAccountWalletAddressQuery(reader AccountDirectoryReader) *HasAccountWalletAddressQuery {
	return &HasAccountWalletAddressQuery{reader: reader}
}

func (q *HasAccountWalletAddressQuery) Query(ctx context.Context, msg HasAccountWalletAddressMessage) (bool, error) {
	if q == nil || q.reader == nil {
		return false, queryDependencyError("query: account directory reader is required")
	}
	return q.reader.HasAccountWalletAddress(ctx, msg.Address)
}

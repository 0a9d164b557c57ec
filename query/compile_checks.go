package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-wallet-accounts/core"
)

var (
	_ gocmd.Querier[FilterEventLogMessage, core.EventLogPage]                   = (*FilterEventLogQuery)(nil)
	_ gocmd.Querier[GetAccountWalletMappingsMessage, core.AccountWalletListing] = (*GetAccountWalletMappingsQuery)(nil)
	_ gocmd.Querier[GetAccountNameMessage, string]                              = (*GetAccountNameQuery)(nil)
	_ gocmd.Querier[GetAccountByAddressMessage, []core.Account]                 = (*GetAccountByAddressQuery)(nil)
	_ gocmd.Querier[HasAccountEmailMessage, bool]                               = (*HasAccountEmailQuery)(nil)
	_ gocmd.Querier[HasAccountWalletAddressMessage, bool]                       = (*HasAccountWalletAddressQuery)(nil)
)

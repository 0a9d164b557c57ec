package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[RegisterAccountMessage] = (*RegisterAccountCommand)(nil)
	_ gocmd.Commander[AuthenticateMessage]    = (*AuthenticateCommand)(nil)
	_ gocmd.Commander[PruneEventLogMessage]   = (*PruneEventLogCommand)(nil)
)

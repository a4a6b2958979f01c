package core

import "context"

// CmdRouter dispatches transport slash-commands (/clear, /topics, ...).
// Execute reports handled=false when input is not a command, in which
// case the transport forwards it to the query pipeline instead.
type CmdRouter interface {
	Execute(ctx context.Context, sessionID, input string) (response string, handled bool)
	ListCommands() []Command
}

// Command is one slash-command. sessionID scopes it to the calling
// conversation so per-session memory can be addressed.
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionID string, args []string) (string, error)
}

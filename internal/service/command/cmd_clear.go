package command

import (
	"context"

	"github.com/sandevgo/helpbuddy/internal/core"
	"github.com/sandevgo/helpbuddy/internal/service/agent"
)

type ClearCommand struct {
	sessions  *agent.Sessions
	formatter *ResponseFormatter
}

func NewClearCommand(sessions *agent.Sessions) core.Command {
	return &ClearCommand{
		sessions:  sessions,
		formatter: NewResponseFormatter(),
	}
}

func (c *ClearCommand) Name() string {
	return "clear"
}

func (c *ClearCommand) Description() string {
	return "Forget this conversation's history"
}

func (c *ClearCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	c.sessions.Get(sessionID).ClearMemory()
	return c.formatter.Success("Conversation history cleared"), nil
}

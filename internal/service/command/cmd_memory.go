package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/helpbuddy/internal/core"
	"github.com/sandevgo/helpbuddy/internal/service/agent"
)

type MemoryCommand struct {
	sessions  *agent.Sessions
	formatter *ResponseFormatter
}

func NewMemoryCommand(sessions *agent.Sessions) core.Command {
	return &MemoryCommand{
		sessions:  sessions,
		formatter: NewResponseFormatter(),
	}
}

func (c *MemoryCommand) Name() string {
	return "memory"
}

func (c *MemoryCommand) Description() string {
	return "Show conversation memory usage"
}

func (c *MemoryCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	info := c.sessions.Get(sessionID).MemoryInfo()

	return c.formatter.Combine(
		c.formatter.Info("Conversation Memory"),
		c.formatter.Label("Interactions", fmt.Sprintf("%d / %d", info.Size, info.MaxHistory)),
		c.formatter.Label("Context items", fmt.Sprintf("%d", info.UserContextItems)),
		c.formatter.Label("Usage", fmt.Sprintf("%.1f KB", info.MemoryUsageKB)),
		c.formatter.Label("Max age", fmt.Sprintf("%dh", info.MaxAgeHours)),
	), nil
}

package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/helpbuddy/internal/core"
	"github.com/sandevgo/helpbuddy/internal/service/agent"
)

type TopicsCommand struct {
	sessions  *agent.Sessions
	formatter *ResponseFormatter
}

func NewTopicsCommand(sessions *agent.Sessions) core.Command {
	return &TopicsCommand{
		sessions:  sessions,
		formatter: NewResponseFormatter(),
	}
}

func (c *TopicsCommand) Name() string {
	return "topics"
}

func (c *TopicsCommand) Description() string {
	return "Show topics discussed in this conversation"
}

func (c *TopicsCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	summary := c.sessions.Get(sessionID).Summary()

	if summary.TotalInteractions == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Conversation Topics"),
			c.formatter.Label("Status", "No questions asked yet"),
			c.formatter.Tip("Ask me anything about NCERT Science Class 8"),
		), nil
	}

	return c.formatter.Combine(
		c.formatter.Info("Conversation Topics"),
		c.formatter.Label("Questions", fmt.Sprintf("%d", summary.TotalInteractions)),
		c.formatter.List(summary.TopicsDiscussed),
	), nil
}

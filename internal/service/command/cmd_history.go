package command

import (
	"context"
	"strings"

	"github.com/sandevgo/helpbuddy/internal/core"
	"github.com/sandevgo/helpbuddy/internal/service/agent"
)

type HistoryCommand struct {
	sessions *agent.Sessions
}

func NewHistoryCommand(sessions *agent.Sessions) core.Command {
	return &HistoryCommand{sessions: sessions}
}

func (c *HistoryCommand) Name() string {
	return "history"
}

func (c *HistoryCommand) Description() string {
	return "Answer a question about your past questions"
}

// Execute routes straight to the memory's history answers, the same
// ones "what did I ask first" style questions get in chat.
func (c *HistoryCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	query := strings.Join(args, " ")
	if query == "" {
		query = "all questions"
	}
	return c.sessions.Get(sessionID).HistoryInfo(query), nil
}

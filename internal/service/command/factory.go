package command

import (
	"github.com/sandevgo/helpbuddy/internal/core"
	"github.com/sandevgo/helpbuddy/internal/service/agent"
)

func NewCommands(
	cfg core.ProviderConfig,
	sessions *agent.Sessions,
) []core.Command {
	return []core.Command{
		NewClearCommand(sessions),
		NewHistoryCommand(sessions),
		NewTopicsCommand(sessions),
		NewMemoryCommand(sessions),
		NewModelCommand(cfg),
	}
}

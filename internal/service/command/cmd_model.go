package command

import (
	"context"

	"github.com/sandevgo/helpbuddy/internal/core"
)

type ModelCommand struct {
	cfg       core.ProviderConfig
	formatter *ResponseFormatter
}

func NewModelCommand(cfg core.ProviderConfig) *ModelCommand {
	return &ModelCommand{
		cfg:       cfg,
		formatter: NewResponseFormatter(),
	}
}

func (c *ModelCommand) Name() string {
	return "model"
}

func (c *ModelCommand) Description() string {
	return "Show the configured provider and model"
}

// Execute only reports the configuration; the model is fixed at startup
// through the environment.
func (c *ModelCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	return c.formatter.Combine(
		c.formatter.Info("Current Model"),
		c.formatter.Label("Provider", c.cfg.GetProvider()),
		c.formatter.Label("Model", c.cfg.GetModel()),
		c.formatter.Tip("Set LLM_PROVIDER and the matching *_MODEL variable to change it"),
	), nil
}

package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sandevgo/helpbuddy/internal/core"
)

// Router dispatches slash-commands by name. "/help" is built in and
// lists everything registered.
type Router struct {
	commands map[string]core.Command
}

func New(commands []core.Command) *Router {
	c := &Router{
		commands: make(map[string]core.Command),
	}

	for _, cmd := range commands {
		c.commands[cmd.Name()] = cmd
	}
	return c
}

func (c *Router) Execute(ctx context.Context, sessionID, input string) (string, bool) {
	if !strings.HasPrefix(input, "/") {
		return "", false
	}

	parts := strings.Fields(input)
	name := strings.TrimPrefix(parts[0], "/")
	args := parts[1:]

	if name == "help" {
		return c.helpText(), true
	}

	cmd, ok := c.commands[name]
	if !ok {
		return fmt.Sprintf("Unknown command: /%s. Try /help.", name), true
	}

	result, err := cmd.Execute(ctx, sessionID, args)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), true
	}
	return result, true
}

func (c *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}

func (c *Router) helpText() string {
	var sb strings.Builder
	sb.WriteString("**Available commands**\n\n")
	for _, cmd := range c.ListCommands() {
		sb.WriteString(fmt.Sprintf("/%s - %s\n", cmd.Name(), cmd.Description()))
	}
	return sb.String()
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/sandevgo/helpbuddy/internal/config"
	"github.com/sandevgo/helpbuddy/internal/core"
	"github.com/sandevgo/helpbuddy/internal/service/agent"
	"github.com/sandevgo/helpbuddy/internal/service/scope"
	"github.com/sandevgo/helpbuddy/pkg/log"
)

const defaultSessionID = "cli-local"

type ReadLine struct {
	cfg      *config.AppConfig
	sessions *agent.Sessions
	commands core.CmdRouter
	rl       *readline.Instance
}

func NewReadLine(sessions *agent.Sessions, commands core.CmdRouter, cfg *config.AppConfig) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:      cfg,
		sessions: sessions,
		commands: commands,
		rl:       rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("HelpBuddy chat started. Type 'exit' to quit.")

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if resp, handled := r.commands.Execute(ctx, defaultSessionID, line); handled {
			fmt.Fprintf(r.rl.Stdout(), "%s\n", resp)
			continue
		}

		if safety := scope.CheckSafety(line); !safety.Safe {
			logger.Warn().Str("reason", safety.Reason).Msg("input rejected by safety filter")
			fmt.Fprintf(r.rl.Stdout(), "%s\n", scope.SafetyRefusal)
			continue
		}

		result := r.sessions.Get(defaultSessionID).ProcessQuery(ctx, core.QueryRequest{Query: line})
		fmt.Fprintf(r.rl.Stdout(), "%s\n", result.Response)
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sandevgo/helpbuddy/pkg/log"
	"github.com/sandevgo/helpbuddy/pkg/srv"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HelpBuddy assistant",
	Long:  `Initializes the passage index, providers and enabled transports (CLI, Telegram) and serves questions until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting helpbuddy")

		services := NewServices(ctx)

		// Start services
		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("helpbuddy has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}

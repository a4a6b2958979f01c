package main

import (
	"github.com/spf13/cobra"

	"github.com/sandevgo/helpbuddy/internal/config"
	"github.com/sandevgo/helpbuddy/internal/providers/rag"
	"github.com/sandevgo/helpbuddy/internal/service/ingest"
	"github.com/sandevgo/helpbuddy/pkg/log"
)

var indexReset bool

var indexCmd = &cobra.Command{
	Use:   "index [corpus.jsonl]",
	Short: "Build the passage index from a JSONL corpus",
	Long:  `Reads a JSONL corpus (one {"content", "page"} object per line), embeds every passage and writes the vectors into the local index.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}

		appCfg := config.NewAppConfig(ctx)
		ragCfg := config.NewRAGConfig(ctx)
		providerCfg := config.NewProviderSettings(ctx, appCfg)

		corpusPath := appCfg.GetCorpusPath()
		if len(args) == 1 {
			corpusPath = args[0]
		}

		db, repo, err := initStorage(ctx, appCfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if indexReset {
			if err := repo.Reset(ctx); err != nil {
				return err
			}
			logger.Info().Msg("existing passage index cleared")
		}

		embedder := rag.NewGeminiEmbedder(providerCfg.GetGeminiAPIKey(), providerCfg.GetGeminiEmbeddingModel())
		svc := ingest.NewService(embedder, repo, ragCfg)

		saved, err := svc.Run(ctx, corpusPath)
		if err != nil {
			return err
		}

		logger.Info().Int("passages", saved).Msg("passage index built")
		return nil
	},
}

func init() {
	indexCmd.Flags().BoolVar(&indexReset, "reset", false, "drop the existing index before ingesting")
	rootCmd.AddCommand(indexCmd)
}

package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sandevgo/helpbuddy/internal/config"
	"github.com/sandevgo/helpbuddy/internal/providers/llm"
	"github.com/sandevgo/helpbuddy/internal/providers/rag"
	"github.com/sandevgo/helpbuddy/internal/service/agent"
	"github.com/sandevgo/helpbuddy/internal/service/command"
	"github.com/sandevgo/helpbuddy/internal/service/scope"
	"github.com/sandevgo/helpbuddy/internal/service/vision"
	"github.com/sandevgo/helpbuddy/internal/storage/sqlite"
	"github.com/sandevgo/helpbuddy/internal/transport/cli"
	"github.com/sandevgo/helpbuddy/internal/transport/telegram"
	"github.com/sandevgo/helpbuddy/pkg/log"
	"github.com/sandevgo/helpbuddy/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	err := initEnv(ctx, config.GetRuntimePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	memCfg := config.NewMemoryConfig(ctx)
	ragCfg := config.NewRAGConfig(ctx)
	providerCfg := config.NewProviderSettings(ctx, appCfg)

	// 2. Storage
	db, passageRepo, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	if count, err := passageRepo.Count(ctx); err == nil && count == 0 {
		logger.Warn().Msg("passage index is empty, run 'helpbuddy index' to build it")
	}

	// 3. LLM providers
	completer, err := llm.NewCompleter(ctx, providerCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}
	describer := llm.NewDescriber(ctx, providerCfg)

	// 4. Retrieval
	embedder := rag.NewGeminiEmbedder(providerCfg.GetGeminiAPIKey(), providerCfg.GetGeminiEmbeddingModel())
	index := rag.NewIndex(embedder, passageRepo)
	retriever := rag.NewRetriever(index)

	// 5. Query pipeline
	classifier := scope.NewClassifier(completer)
	processor := vision.NewProcessor(describer)
	ag := agent.NewAgent(completer, retriever, classifier, processor, memCfg, ragCfg)
	sessions := agent.NewSessions(ag, memCfg)

	// 6. Slash commands
	cmdRouter := command.New(command.NewCommands(providerCfg, sessions))

	// 7. Transports
	transports, err := initTransports(ctx, appCfg, sessions, cmdRouter)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, *sqlite.PassageRepo, error) {
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, nil, err
	}
	return db, sqlite.NewPassageRepo(db), nil
}

func initTransports(
	ctx context.Context,
	cfg *config.AppConfig,
	sessions *agent.Sessions,
	cmdRouter *command.Router,
) ([]srv.Service, error) {
	var services []srv.Service

	if cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, sessions, cmdRouter)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if cfg.EnableCLI {
		repl, err := cli.NewReadLine(sessions, cmdRouter, cfg)
		if err != nil {
			return nil, err
		}
		services = append(services, repl)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}

package log

import (
	"context"

	"github.com/rs/zerolog"
)

// GooseLogger routes goose migration output through zerolog.
type GooseLogger struct {
	logger *zerolog.Logger
}

func NewGooseLoggerFromCtx(ctx context.Context) *GooseLogger {
	return &GooseLogger{logger: FromCtx(ctx)}
}

func (g *GooseLogger) Fatalf(format string, v ...any) {
	g.logger.Fatal().Msgf(format, v...)
}

func (g *GooseLogger) Printf(format string, v ...any) {
	g.logger.Info().Msgf(format, v...)
}

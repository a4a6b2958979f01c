package telegram

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/helpbuddy/internal/core"
	"github.com/sandevgo/helpbuddy/internal/service/agent"
	"github.com/sandevgo/helpbuddy/internal/service/scope"
	"github.com/sandevgo/helpbuddy/pkg/log"
)

const baseContextKey = "base_context"

const defaultImageQuery = "What does this image show?"

type Bot struct {
	bot      *tele.Bot
	sessions *agent.Sessions
	commands core.CmdRouter
	sender   *sender
	ownerID  int64
}

func NewBot(
	ctx context.Context,
	cfg core.TelegramConfig,
	sessions *agent.Sessions,
	commands core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.GetTelegramToken(),
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:      b,
		sessions: sessions,
		commands: commands,
		sender:   newSender(b),
		ownerID:  cfg.GetTelegramOwnerID(),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: owner 0 opens the bot to everyone
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if bot.ownerID != 0 && c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleText)
	b.Handle(tele.OnPhoto, bot.handlePhoto)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleText(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return nil
	}

	sessionID := sessionIDFor(c)
	if resp, handled := b.commands.Execute(ctx, sessionID, text); handled {
		return b.sender.sendMarkdown(ctx, c.Chat(), resp, false)
	}

	return b.answer(ctx, c, core.QueryRequest{Query: text})
}

func (b *Bot) handlePhoto(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)

	photo := c.Message().Photo
	if photo == nil {
		return nil
	}

	_ = c.Notify(tele.Typing)

	imageData, err := b.downloadPhoto(photo)
	if err != nil {
		logger.Error().Err(err).Msg("failed to download telegram photo")
		return c.Send("I couldn't read that image. Please try sending it again.")
	}

	query := strings.TrimSpace(c.Message().Caption)
	if query == "" {
		query = defaultImageQuery
	}

	return b.answer(ctx, c, core.QueryRequest{Query: query, ImageData: imageData})
}

func (b *Bot) answer(ctx context.Context, c tele.Context, req core.QueryRequest) error {
	logger := log.FromCtx(ctx)

	if safety := scope.CheckSafety(req.Query); !safety.Safe {
		logger.Warn().Str("reason", safety.Reason).Msg("input rejected by safety filter")
		return c.Send(scope.SafetyRefusal)
	}

	_ = c.Notify(tele.Typing)

	result := b.sessions.Get(sessionIDFor(c)).ProcessQuery(ctx, req)
	return b.sender.sendMarkdown(ctx, c.Chat(), result.Response, false)
}

func (b *Bot) downloadPhoto(photo *tele.Photo) (string, error) {
	rc, err := b.bot.File(&photo.File)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func sessionIDFor(c tele.Context) string {
	return fmt.Sprintf("telegram-%d", c.Chat().ID)
}

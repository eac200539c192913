// Package bot wires the Telegram dispatcher to the slug pipeline: commands,
// plain-text messages, inline-keyboard callbacks, and the top-level error
// hook.
package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"slugbot/internal/metrics"
	"slugbot/internal/service"
)

// API is the part of the Telegram client the bot needs. Tests swap in a
// recorder instead of hitting the network.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Bot struct {
	api      API
	sessions *service.SessionService
	slugs    *service.SlugService
	conv     *conversation
	log      *zap.SugaredLogger
}

func New(api API, sessions *service.SessionService, slugs *service.SlugService, log *zap.SugaredLogger) *Bot {
	return &Bot{
		api:      api,
		sessions: sessions,
		slugs:    slugs,
		conv:     newConversation(),
		log:      log,
	}
}

// Run consumes the long-polling update channel until ctx is done or the
// channel closes. Each update is handled on its own goroutine; the session
// store serializes per-user mutation, so concurrent users never corrupt
// each other's state.
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handle(ctx, u)
		}
	}
}

// handle is the error hook: any failure or panic from a handler ends here,
// gets logged with the triggering update, and never reaches the user beyond
// a generic apology.
func (b *Bot) handle(ctx context.Context, u tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			metrics.HandlerErrorsTotal.Inc()
			b.log.Errorw("handler panic", "update_id", u.UpdateID, "panic", r)

			if chatID, ok := chatOf(u); ok {
				_, _ = b.api.Send(tgbotapi.NewMessage(chatID, msgGenericError))
			}
		}
	}()

	if err := b.HandleUpdate(ctx, u); err != nil {
		metrics.HandlerErrorsTotal.Inc()
		b.log.Errorw("handler failed", "update_id", u.UpdateID, "err", err)

		if chatID, ok := chatOf(u); ok {
			_, _ = b.api.Send(tgbotapi.NewMessage(chatID, msgGenericError))
		}
	}
}

// HandleUpdate routes one update. Exposed for tests.
func (b *Bot) HandleUpdate(ctx context.Context, u tgbotapi.Update) error {
	switch {
	case u.CallbackQuery != nil:
		return b.handleCallback(ctx, u.CallbackQuery)
	case u.Message != nil && u.Message.IsCommand():
		return b.handleCommand(ctx, u.Message)
	case u.Message != nil:
		return b.handleText(ctx, u.Message)
	}
	return nil
}

func chatOf(u tgbotapi.Update) (int64, bool) {
	switch {
	case u.Message != nil:
		return u.Message.Chat.ID, true
	case u.CallbackQuery != nil && u.CallbackQuery.Message != nil:
		return u.CallbackQuery.Message.Chat.ID, true
	}
	return 0, false
}

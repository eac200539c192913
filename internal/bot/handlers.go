package bot

import (
	"context"
	"errors"
	"fmt"
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"slugbot/internal/domain"
	"slugbot/internal/transcript"
)

const (
	msgWelcome = "Welcome to the Headline Translator Bot!\n\n" +
		"Send me a headline in any language. I will translate it to English " +
		"and turn it into a URL-friendly slug."
	msgHelp = "Send me any text and you get back a slug.\n\n" +
		"/settings – separator preference\n" +
		"/history – your last translations\n" +
		"/cancel – leave the separator dialogue\n" +
		"/help – this message"
	msgGenericError    = "Sorry, something went wrong. Please try again later."
	msgTranslateError  = "Sorry, I could not translate that right now. Please try again later."
	msgEmptyText       = "Send me some text to translate."
	msgSeparatorPrompt = "Send me the new separator: - or _. Use /cancel to keep the current one."
	msgSeparatorBad    = "That separator will not work. Send a single - or _, or /cancel."
	msgNoHistory       = "No translations yet. Send me a headline first."
	msgNothingToCancel = "Nothing to cancel."
	msgCancelled       = "Okay, nothing changed."
	msgUnknownCommand  = "Unknown command. Try /help."
)

// historyShown is how many entries /history displays; the store keeps more.
const historyShown = 5

func (b *Bot) handleCommand(ctx context.Context, m *tgbotapi.Message) error {
	userID := m.From.ID
	chatID := m.Chat.ID

	switch m.Command() {
	case "start":
		return b.send(tgbotapi.NewMessage(chatID, msgWelcome))

	case "help":
		return b.send(tgbotapi.NewMessage(chatID, msgHelp))

	case "settings":
		sess, err := b.sessions.GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Current separator: <code>%s</code>", sess.Separator))
		msg.ParseMode = tgbotapi.ModeHTML
		msg.ReplyMarkup = settingsKeyboard()
		return b.send(msg)

	case "history":
		return b.sendHistory(ctx, userID, chatID)

	case "cancel":
		if b.conv.get(userID) != stateAwaitingSeparator {
			return b.send(tgbotapi.NewMessage(chatID, msgNothingToCancel))
		}
		b.conv.set(userID, stateIdle)
		return b.send(tgbotapi.NewMessage(chatID, msgCancelled))

	default:
		return b.send(tgbotapi.NewMessage(chatID, msgUnknownCommand))
	}
}

func (b *Bot) handleText(ctx context.Context, m *tgbotapi.Message) error {
	userID := m.From.ID
	chatID := m.Chat.ID

	if b.conv.get(userID) == stateAwaitingSeparator {
		return b.handleSeparatorReply(ctx, userID, chatID, m.Text)
	}

	res, err := b.slugs.Slugify(ctx, userID, m.Text)
	switch {
	case errors.Is(err, domain.ErrEmptyMessage):
		return b.send(tgbotapi.NewMessage(chatID, msgEmptyText))

	case errors.Is(err, domain.ErrTranslateFailed):
		// recovered locally: detail goes to the log, the user gets the
		// generic line, session state is already untouched
		b.log.Warnw("translation failed", "user", userID, "err", err)
		return b.send(tgbotapi.NewMessage(chatID, msgTranslateError))

	case err != nil:
		return err
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("<code>%s</code>", res.Slug))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = resultKeyboard()
	return b.send(msg)
}

func (b *Bot) handleSeparatorReply(ctx context.Context, userID, chatID int64, text string) error {
	sep, err := b.sessions.SetSeparator(ctx, userID, text)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSeparator) {
			// stay in the dialogue
			return b.send(tgbotapi.NewMessage(chatID, msgSeparatorBad))
		}
		return err
	}

	b.conv.set(userID, stateIdle)
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Separator set to <code>%s</code>.", sep))
	msg.ParseMode = tgbotapi.ModeHTML
	return b.send(msg)
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	// acknowledge first so the button stops spinning
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.log.Warnw("callback ack failed", "err", err)
	}

	userID := cq.From.ID
	chatID := userID // private chats share the user id
	if cq.Message != nil {
		chatID = cq.Message.Chat.ID
	}

	switch cq.Data {
	case callbackRetranslate:
		return b.retranslate(ctx, userID, chatID)

	case callbackCopySlug:
		return b.copySlug(ctx, userID, chatID)

	case callbackCustomize, callbackChangeSeparator:
		b.conv.set(userID, stateAwaitingSeparator)
		if cq.Message != nil {
			// replace the settings prompt in place
			return b.send(tgbotapi.NewEditMessageText(chatID, cq.Message.MessageID, msgSeparatorPrompt))
		}
		return b.send(tgbotapi.NewMessage(chatID, msgSeparatorPrompt))

	case callbackResetPreferences:
		if err := b.sessions.ResetSeparator(ctx, userID); err != nil {
			return err
		}
		text := "Current separator: <code>-</code>"
		if cq.Message != nil {
			edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, cq.Message.MessageID, text, settingsKeyboard())
			edit.ParseMode = tgbotapi.ModeHTML
			return b.send(edit)
		}
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeHTML
		return b.send(msg)

	default:
		b.log.Warnw("unknown callback payload", "data", cq.Data, "user", userID)
		return nil
	}
}

func (b *Bot) retranslate(ctx context.Context, userID, chatID int64) error {
	recent, err := b.sessions.Recent(ctx, userID, 1)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		return b.send(tgbotapi.NewMessage(chatID, msgNoHistory))
	}

	res, err := b.slugs.Slugify(ctx, userID, recent[0].Original)
	if errors.Is(err, domain.ErrTranslateFailed) {
		b.log.Warnw("translation failed", "user", userID, "err", err)
		return b.send(tgbotapi.NewMessage(chatID, msgTranslateError))
	}
	if err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("<code>%s</code>", res.Slug))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = resultKeyboard()
	return b.send(msg)
}

func (b *Bot) copySlug(ctx context.Context, userID, chatID int64) error {
	recent, err := b.sessions.Recent(ctx, userID, 1)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		return b.send(tgbotapi.NewMessage(chatID, msgNoHistory))
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("<code>%s</code>", recent[0].Slug))
	msg.ParseMode = tgbotapi.ModeHTML
	return b.send(msg)
}

func (b *Bot) sendHistory(ctx context.Context, userID, chatID int64) error {
	recent, err := b.sessions.Recent(ctx, userID, historyShown)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		return b.send(tgbotapi.NewMessage(chatID, msgNoHistory))
	}

	rows := make([]transcript.Entry, 0, len(recent))
	for _, e := range recent {
		rows = append(rows, transcript.Entry{Original: e.Original, Slug: e.Slug})
	}

	// originals are arbitrary user text; escape the whole block
	table := html.EscapeString(transcript.RenderHistory(rows))
	msg := tgbotapi.NewMessage(chatID, "<pre>"+table+"</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = historyKeyboard()
	return b.send(msg)
}

func (b *Bot) send(c tgbotapi.Chattable) error {
	_, err := b.api.Send(c)
	return err
}

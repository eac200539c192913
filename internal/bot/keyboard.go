package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Callback payloads carried by inline buttons.
const (
	callbackRetranslate      = "retranslate"
	callbackCustomize        = "customize"
	callbackCopySlug         = "copy_slug"
	callbackChangeSeparator  = "change_separator"
	callbackResetPreferences = "reset_preferences"
)

func resultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Retranslate", callbackRetranslate),
			tgbotapi.NewInlineKeyboardButtonData("Copy slug", callbackCopySlug),
			tgbotapi.NewInlineKeyboardButtonData("Customize", callbackCustomize),
		),
	)
}

func settingsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Change separator", callbackChangeSeparator),
			tgbotapi.NewInlineKeyboardButtonData("Reset preferences", callbackResetPreferences),
		),
	)
}

func historyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Retranslate", callbackRetranslate),
			tgbotapi.NewInlineKeyboardButtonData("Copy slug", callbackCopySlug),
		),
	)
}

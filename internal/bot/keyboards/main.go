package keyboards

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// CallbackAccessConfirmed is sent when the user confirms sharing the
// spreadsheet with the service account.
const CallbackAccessConfirmed = "gsa_added"

// ConfirmAccess creates the single-button keyboard of the onboarding
// instruction message.
func ConfirmAccess() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Добавил", CallbackAccessConfirmed),
		),
	)
}

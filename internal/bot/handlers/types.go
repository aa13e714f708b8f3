package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/fatsecret-exporter/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	SessionStore interfaces.SessionStoreInterface
	ReportSvc    interfaces.ReportServiceInterface
	SheetsSvc    interfaces.SheetsServiceInterface

	// ServiceAccountEmail is shown to the user so they can grant the bot
	// edit access to their spreadsheet.
	ServiceAccountEmail string
}

func sendText(api *tgbotapi.BotAPI, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := api.Send(msg)
	return err
}

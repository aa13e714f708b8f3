package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/fatsecret-exporter/internal/bot/keyboards"
	"github.com/vladimiradmaev/fatsecret-exporter/internal/logger"
)

// CallbackHandler handles inline keyboard button presses
type CallbackHandler struct {
	api *tgbotapi.BotAPI
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api *tgbotapi.BotAPI) *CallbackHandler {
	return &CallbackHandler{api: api}
}

// Handle processes a callback query. The access confirmation button is a
// purely instructional step: it sends the next onboarding prompt and
// never touches session state.
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	// Answer the callback query to remove the loading state
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := h.api.Request(callback); err != nil {
		logger.Warningf("Failed to answer callback query: %v", err)
	}

	switch query.Data {
	case keyboards.CallbackAccessConfirmed:
		return sendText(h.api, query.Message.Chat.ID,
			"Отлично. Теперь введи ID google таблицы (находится в адресной строке между /d/ и /edit, например 1qE-SjN7p3z-ojocJx0m1Xq-Y2rC8ArxUmDAMzKSXpqI)")
	}

	return nil
}

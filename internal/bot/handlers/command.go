package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/fatsecret-exporter/internal/bot/keyboards"
	"github.com/vladimiradmaev/fatsecret-exporter/internal/domain"
	"github.com/vladimiradmaev/fatsecret-exporter/internal/logger"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	api  *tgbotapi.BotAPI
	deps Dependencies
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api *tgbotapi.BotAPI, deps Dependencies) *CommandHandler {
	return &CommandHandler{
		api:  api,
		deps: deps,
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	logger.Infof("Handling command %s from user %d", message.Command(), message.From.ID)

	switch message.Command() {
	case "start":
		return h.handleStart(message)
	case "help":
		return h.handleHelp(message.Chat.ID)
	default:
		return h.handleUnknownCommand(message.Chat.ID)
	}
}

// handleStart resets the user to a fresh session. Any previously
// configured spreadsheet is silently forgotten: /start means full reset.
func (h *CommandHandler) handleStart(message *tgbotapi.Message) error {
	if err := h.deps.SessionStore.Create(message.From.ID, domain.UserSession{}); err != nil {
		logger.Error("Failed to create session", "user_id", message.From.ID, "error", err)
		return sendText(h.api, message.Chat.ID, "Произошла ошибка. Попробуйте еще раз через команду /start")
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf(
		"Привет! Для продолжения работы добавь в свою гугл таблицу пользователя %s с правами редактирования",
		h.deps.ServiceAccountEmail,
	))
	msg.ReplyMarkup = keyboards.ConfirmAccess()
	_, err := h.api.Send(msg)
	return err
}

// handleHelp handles the /help command
func (h *CommandHandler) handleHelp(chatID int64) error {
	text := `Бот переносит данные из отчетов FatSecret в гугл таблицу.

Доступные команды:
/start - Начать настройку заново
/help - Показать это сообщение

Как это работает:
1. Дай сервисному аккаунту бота доступ к своей гугл таблице
2. Отправь ID таблицы, затем название листа с питанием
3. Отправляй ссылки на отчеты "Сводка еды" формата CSV

Бот найдет в листе строку с датой отчета и запишет в нее калории, белки, жиры и углеводы.`

	return sendText(h.api, chatID, text)
}

// handleUnknownCommand handles unknown commands
func (h *CommandHandler) handleUnknownCommand(chatID int64) error {
	return sendText(h.api, chatID, "Неизвестная команда. Используйте /help для просмотра доступных команд.")
}

package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/fatsecret-exporter/internal/apperrors"
	"github.com/vladimiradmaev/fatsecret-exporter/internal/domain"
	"github.com/vladimiradmaev/fatsecret-exporter/internal/logger"
)

// TextHandler drives the onboarding conversation and the report
// ingestion pipeline.
type TextHandler struct {
	api  *tgbotapi.BotAPI
	deps Dependencies
}

// NewTextHandler creates a new text handler
func NewTextHandler(api *tgbotapi.BotAPI, deps Dependencies) *TextHandler {
	return &TextHandler{
		api:  api,
		deps: deps,
	}
}

// Handle processes a text message. The branch is picked from which
// session fields are still unset, checked in fixed order.
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	session, ok := h.deps.SessionStore.Get(message.From.ID)
	if !ok {
		return sendText(h.api, message.Chat.ID, "Нажмите /start")
	}

	switch session.Stage() {
	case domain.StageAwaitingSpreadsheetID:
		return h.handleSpreadsheetID(message, session)
	case domain.StageAwaitingSheetName:
		return h.handleSheetName(message, session)
	default:
		return h.handleReportURL(ctx, message, session)
	}
}

// handleSpreadsheetID accepts any text verbatim as the spreadsheet ID.
func (h *TextHandler) handleSpreadsheetID(message *tgbotapi.Message, session domain.UserSession) error {
	session.SpreadsheetID = strings.TrimSpace(message.Text)
	if err := h.deps.SessionStore.Update(message.From.ID, session); err != nil {
		return h.replyFailure(message.Chat.ID, err)
	}

	if err := sendText(h.api, message.Chat.ID, fmt.Sprintf("ID google таблицы: %s", session.SpreadsheetID)); err != nil {
		return err
	}
	return sendText(h.api, message.Chat.ID, "Теперь отправь название листа с питанием, например Питание1 или Питание2")
}

// handleSheetName accepts any text verbatim as the sheet name.
func (h *TextHandler) handleSheetName(message *tgbotapi.Message, session domain.UserSession) error {
	session.SheetName = strings.TrimSpace(message.Text)
	if err := h.deps.SessionStore.Update(message.From.ID, session); err != nil {
		return h.replyFailure(message.Chat.ID, err)
	}

	if err := sendText(h.api, message.Chat.ID, fmt.Sprintf("Название листа с питанием: %s", session.SheetName)); err != nil {
		return err
	}
	return sendText(h.api, message.Chat.ID, `Теперь отправь отчет о питании (тип отчета "Сводка еды", формат "CSV")`)
}

// handleReportURL validates the report link and runs the ingestion
// pipeline. A rejected link leaves the session untouched, so the user can
// simply resubmit. Successful or not, the user stays in this step and may
// send further reports.
func (h *TextHandler) handleReportURL(ctx context.Context, message *tgbotapi.Message, session domain.UserSession) error {
	reportURL := strings.TrimSpace(message.Text)

	if !h.deps.ReportSvc.IsExportURL(reportURL) {
		return sendText(h.api, message.Chat.ID, "Некорректная ссылка на отчет о питании")
	}
	if !h.deps.ReportSvc.IsMealsCSV(reportURL) {
		return sendText(h.api, message.Chat.ID, `Пока бот поддерживает только отчет типа "Сводка еды" формата "CSV"`)
	}

	if err := sendText(h.api, message.Chat.ID, "Загружаем отчет о питании..."); err != nil {
		return err
	}

	reportDate, err := h.deps.ReportSvc.ExtractDate(reportURL)
	if err != nil {
		return h.replyFailure(message.Chat.ID, err)
	}

	macros, err := h.deps.ReportSvc.FetchMacronutrients(ctx, reportURL)
	if err != nil {
		return h.replyFailure(message.Chat.ID, err)
	}

	if err := sendText(h.api, message.Chat.ID, "Обновляем гугл таблицу..."); err != nil {
		return err
	}

	err = h.deps.SheetsSvc.UpdateDailyRow(ctx, session.SpreadsheetID, session.SheetName, reportDate, macros)
	if errors.Is(err, apperrors.ErrDateNotFound) {
		return sendText(h.api, message.Chat.ID, fmt.Sprintf(`Дата отчета "%s" не найдена в гугл таблице`, reportDate))
	}
	if err != nil {
		return h.replyFailure(message.Chat.ID, err)
	}

	return sendText(h.api, message.Chat.ID, "✅ Обновление таблицы завершено")
}

// replyFailure logs the failure and sends the generic error reply.
// Internal details never reach the user.
func (h *TextHandler) replyFailure(chatID int64, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		logger.Error("Report processing failed", appErr.LogFields()...)
	} else {
		logger.Error("Report processing failed", "error", err)
	}

	if err := sendText(h.api, chatID, "Произошла ошибка"); err != nil {
		return err
	}
	return sendText(h.api, chatID, "Проверь корректность введенных данных, ввести их заново можно через команду /start")
}

package interfaces

import (
	"context"

	"github.com/vladimiradmaev/fatsecret-exporter/internal/domain"
)

// SessionStoreInterface defines the contract for durable per-user
// onboarding state. Mutations persist before returning; Get never fails
// for unknown users.
type SessionStoreInterface interface {
	Create(userID int64, session domain.UserSession) error
	Get(userID int64) (domain.UserSession, bool)
	Update(userID int64, session domain.UserSession) error
}

// ReportServiceInterface defines the contract for report URL validation
// and ingestion.
type ReportServiceInterface interface {
	IsExportURL(reportURL string) bool
	IsMealsCSV(reportURL string) bool
	ExtractDate(reportURL string) (string, error)
	FetchMacronutrients(ctx context.Context, reportURL string) (domain.Macronutrients, error)
}

// SheetsServiceInterface defines the contract for spreadsheet
// reconciliation.
type SheetsServiceInterface interface {
	UpdateDailyRow(ctx context.Context, spreadsheetID, sheetName, reportDate string, m domain.Macronutrients) error
}

package domain

// UserSession holds the per-user onboarding state. Fields are filled in a
// fixed order: SpreadsheetID first, then SheetName. A session with both
// fields empty is freshly created by /start.
type UserSession struct {
	SpreadsheetID string `json:"spreadsheetId"`
	SheetName     string `json:"sheetName"`
}

// Stage is the onboarding step derived from which session fields are set.
type Stage int

const (
	StageAwaitingSpreadsheetID Stage = iota
	StageAwaitingSheetName
	StageReady
)

// Stage derives the current onboarding step. The field fill order makes a
// session with SheetName set but SpreadsheetID empty unreachable.
func (s UserSession) Stage() Stage {
	switch {
	case s.SpreadsheetID == "":
		return StageAwaitingSpreadsheetID
	case s.SheetName == "":
		return StageAwaitingSheetName
	default:
		return StageReady
	}
}

// Ready reports whether the user finished onboarding and may submit reports.
func (s UserSession) Ready() bool {
	return s.Stage() == StageReady
}

// Macronutrients is the summary extracted from one FatSecret meals report.
// Values are already normalized from the export's decimal-comma form.
type Macronutrients struct {
	Total         float64
	Fat           float64
	Proteins      float64
	Carbohydrates float64
}

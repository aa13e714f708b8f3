package domain

import "testing"

func TestSessionStage(t *testing.T) {
	tests := []struct {
		name    string
		session UserSession
		want    Stage
	}{
		{"fresh session", UserSession{}, StageAwaitingSpreadsheetID},
		{"spreadsheet id set", UserSession{SpreadsheetID: "1qE-SjN7p3z"}, StageAwaitingSheetName},
		{"fully onboarded", UserSession{SpreadsheetID: "1qE-SjN7p3z", SheetName: "Питание1"}, StageReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.Stage(); got != tt.want {
				t.Errorf("Stage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionReady(t *testing.T) {
	if (UserSession{SpreadsheetID: "id"}).Ready() {
		t.Error("session without sheet name must not be ready")
	}
	if !(UserSession{SpreadsheetID: "id", SheetName: "Питание1"}).Ready() {
		t.Error("session with both fields set must be ready")
	}
}

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/vladimiradmaev/fatsecret-exporter/internal/domain"
)

func TestLoadMissingSnapshot(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "user-states.json"))
	store.Load()

	if _, ok := store.Get(42); ok {
		t.Error("expected empty state after loading missing snapshot")
	}
}

func TestLoadCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user-states.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write corrupt snapshot: %v", err)
	}

	store := NewFileStore(path)
	store.Load()

	if _, ok := store.Get(42); ok {
		t.Error("expected empty state after loading corrupt snapshot")
	}
}

func TestCreateOverwritesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user-states.json")
	store := NewFileStore(path)
	store.Load()

	if err := store.Create(42, domain.UserSession{SpreadsheetID: "OLD", SheetName: "Питание1"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := store.Create(42, domain.UserSession{}); err != nil {
		t.Fatalf("second create failed: %v", err)
	}

	session, ok := store.Get(42)
	if !ok {
		t.Fatal("session missing after create")
	}
	if session.SpreadsheetID != "" || session.SheetName != "" {
		t.Errorf("create must reset the session, got %+v", session)
	}
}

func TestUpdateSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user-states.json")

	store := NewFileStore(path)
	store.Load()
	if err := store.Create(42, domain.UserSession{}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := store.Update(42, domain.UserSession{SpreadsheetID: "SHEET1", SheetName: "Питание1"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	reloaded := NewFileStore(path)
	reloaded.Load()

	session, ok := reloaded.Get(42)
	if !ok {
		t.Fatal("session missing after reload")
	}
	if session.SpreadsheetID != "SHEET1" || session.SheetName != "Питание1" {
		t.Errorf("unexpected session after reload: %+v", session)
	}
}

func TestSnapshotFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user-states.json")
	store := NewFileStore(path)
	store.Load()

	if err := store.Update(42, domain.UserSession{SpreadsheetID: "SHEET1", SheetName: "Питание1"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}

	var raw map[string]map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("snapshot is not a flat key to object mapping: %v", err)
	}
	if raw["42"]["spreadsheetId"] != "SHEET1" || raw["42"]["sheetName"] != "Питание1" {
		t.Errorf("unexpected snapshot contents: %v", raw)
	}
}

func TestPersistErrorPropagates(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "no-such-dir", "user-states.json"))
	store.Load()

	if err := store.Create(42, domain.UserSession{}); err == nil {
		t.Error("expected an error when the snapshot cannot be written")
	}
}

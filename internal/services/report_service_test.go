package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vladimiradmaev/fatsecret-exporter/internal/apperrors"
)

const reportPreamble = "FatSecret\r\n" +
	"\r\n" +
	"Отчет \"Сводка еды\"\r\n" +
	"15 января 2024 - 15 января 2024\r\n" +
	"\r\n" +
	"Сгенерировано: 16.01.2024\r\n" +
	"\r\n"

const reportTable = "Прием пищи,Калории (ккал),Жиры (г),Насыщ. жиры (г),Углеводы (г),Сахар (г),Клетчатка (г),Белки (г),Натрий (мг)\r\n" +
	"Завтрак,\"450,5\",\"20,1\",\"5,0\",\"40,2\",\"10,0\",\"3,1\",\"25,3\",\"300,0\"\r\n" +
	"\r\n" +
	"Обед,\"784,0\",\"36,6\",\"6,1\",\"-27,9\",\"12,0\",\"4,9\",\"63,7\",\"1200,0\"\r\n" +
	"Итого,\"1234,5\",\"56,7\",\"11,1\",\"12,3\",\"22,0\",\"8,0\",\"89,0\",\"1500,0\"\r\n"

func TestExtractDate(t *testing.T) {
	svc := NewReportService()

	date, err := svc.ExtractDate("https://www.fatsecret.com/export/FoodDiary_240115_meals.csv?foo=bar")
	if err != nil {
		t.Fatalf("extract date failed: %v", err)
	}
	if date != "15.01.2024" {
		t.Errorf("got %q, want 15.01.2024", date)
	}
}

func TestExtractDateMissingToken(t *testing.T) {
	svc := NewReportService()

	_, err := svc.ExtractDate("https://www.fatsecret.com/export/FoodDiary_meals.csv")
	if !errors.Is(err, apperrors.ErrMalformedSource) {
		t.Errorf("expected MALFORMED_SOURCE, got %v", err)
	}
}

func TestReportURLPredicates(t *testing.T) {
	svc := NewReportService()

	tests := []struct {
		url         string
		exportURL   bool
		mealsReport bool
	}{
		{"https://www.fatsecret.com/export/FoodDiary_240115_meals.csv", true, true},
		{"https://www.fatsecret.com/export/FoodDiary_240115_foods.csv", true, false},
		{"https://example.com/export/FoodDiary_240115_meals.csv", false, true},
		{"совсем не ссылка", false, false},
	}

	for _, tt := range tests {
		if got := svc.IsExportURL(tt.url); got != tt.exportURL {
			t.Errorf("IsExportURL(%q) = %v, want %v", tt.url, got, tt.exportURL)
		}
		if got := svc.IsMealsCSV(tt.url); got != tt.mealsReport {
			t.Errorf("IsMealsCSV(%q) = %v, want %v", tt.url, got, tt.mealsReport)
		}
	}
}

func TestParseSummary(t *testing.T) {
	macros, err := parseSummary(reportPreamble + reportTable)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if macros.Total != 1234.5 {
		t.Errorf("total = %v, want 1234.5", macros.Total)
	}
	if macros.Fat != 56.7 {
		t.Errorf("fat = %v, want 56.7", macros.Fat)
	}
	if macros.Proteins != 89.0 {
		t.Errorf("proteins = %v, want 89.0", macros.Proteins)
	}
	if macros.Carbohydrates != 12.3 {
		t.Errorf("carbohydrates = %v, want 12.3", macros.Carbohydrates)
	}
}

func TestParseSummaryPreambleOnly(t *testing.T) {
	_, err := parseSummary(reportPreamble)
	if !errors.Is(err, apperrors.ErrEmptyOrMalformedTable) {
		t.Errorf("expected EMPTY_OR_MALFORMED_TABLE, got %v", err)
	}
}

func TestParseSummaryEmptyBody(t *testing.T) {
	_, err := parseSummary("")
	if !errors.Is(err, apperrors.ErrEmptyOrMalformedTable) {
		t.Errorf("expected EMPTY_OR_MALFORMED_TABLE, got %v", err)
	}
}

func TestParseSummaryShortRow(t *testing.T) {
	_, err := parseSummary(reportPreamble + "Итого,\"1234,5\",\"56,7\"\r\n")
	if !errors.Is(err, apperrors.ErrEmptyOrMalformedTable) {
		t.Errorf("expected EMPTY_OR_MALFORMED_TABLE, got %v", err)
	}
}

func TestParseSummaryNonNumericValue(t *testing.T) {
	row := "Итого,нет данных,\"56,7\",\"11,1\",\"12,3\",\"22,0\",\"8,0\",\"89,0\",\"1500,0\"\r\n"
	_, err := parseSummary(reportPreamble + row)
	if !errors.Is(err, apperrors.ErrEmptyOrMalformedTable) {
		t.Errorf("expected EMPTY_OR_MALFORMED_TABLE, got %v", err)
	}
}

func TestFetchMacronutrients(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(reportPreamble + reportTable))
	}))
	defer srv.Close()

	svc := NewReportService()
	macros, err := svc.FetchMacronutrients(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if macros.Total != 1234.5 || macros.Proteins != 89.0 {
		t.Errorf("unexpected macros: %+v", macros)
	}
}

func TestFetchMacronutrientsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewReportService()
	_, err := svc.FetchMacronutrients(context.Background(), srv.URL)
	if !errors.Is(err, apperrors.ErrTransportFailure) {
		t.Errorf("expected TRANSPORT_FAILURE, got %v", err)
	}
}

func TestParseSummaryUnixLineEndings(t *testing.T) {
	body := strings.ReplaceAll(reportPreamble+reportTable, "\r\n", "\n")
	macros, err := parseSummary(body)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if macros.Total != 1234.5 {
		t.Errorf("total = %v, want 1234.5", macros.Total)
	}
}

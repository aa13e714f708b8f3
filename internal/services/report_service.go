package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vladimiradmaev/fatsecret-exporter/internal/apperrors"
	"github.com/vladimiradmaev/fatsecret-exporter/internal/domain"
)

const (
	reportURLPrefix = "https://www.fatsecret.com/export"
	reportURLMarker = "meals.csv"

	// The export opens with a fixed block of non-data lines before the table.
	reportPreambleLines = 7
)

// Fixed zero-based column positions of the export's summary row. The
// header row is localized and unreliable, so columns are addressed by
// position, not by name.
const (
	columnTotal         = 1
	columnFat           = 2
	columnCarbohydrates = 4
	columnProteins      = 7
)

var reportDatePattern = regexp.MustCompile(`FoodDiary_(\d{6})_meals`)

// ReportService fetches FatSecret meals exports and extracts the daily
// macronutrient summary.
type ReportService struct {
	httpClient *http.Client
}

func NewReportService() *ReportService {
	return &ReportService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// IsReportURL checks both predicates a report link must satisfy: the
// FatSecret export prefix and the meals CSV report type marker.
func (s *ReportService) IsReportURL(reportURL string) bool {
	return s.IsExportURL(reportURL) && s.IsMealsCSV(reportURL)
}

// IsExportURL checks the FatSecret export host/path prefix.
func (s *ReportService) IsExportURL(reportURL string) bool {
	return strings.HasPrefix(reportURL, reportURLPrefix)
}

// IsMealsCSV checks the meals CSV report type marker.
func (s *ReportService) IsMealsCSV(reportURL string) bool {
	return strings.Contains(reportURL, reportURLMarker)
}

// ExtractDate derives the report's calendar date from the YYMMDD token
// embedded in the export URL, formatted as DD.MM.YYYY to match the sheet's
// date column.
func (s *ReportService) ExtractDate(reportURL string) (string, error) {
	match := reportDatePattern.FindStringSubmatch(reportURL)
	if match == nil {
		return "", apperrors.ErrMalformedSource.WithContext("url", reportURL)
	}

	token := match[1]
	year := token[0:2]
	month := token[2:4]
	day := token[4:6]

	return fmt.Sprintf("%s.%s.20%s", day, month, year), nil
}

// FetchMacronutrients downloads the export and extracts the four summary
// values from its final row, normalizing decimal commas.
func (s *ReportService) FetchMacronutrients(ctx context.Context, reportURL string) (domain.Macronutrients, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reportURL, nil)
	if err != nil {
		return domain.Macronutrients{}, apperrors.Wrap(err, apperrors.ErrorTypeExternal, "TRANSPORT_FAILURE", "Failed to build report request")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.Macronutrients{}, apperrors.Wrap(err, apperrors.ErrorTypeExternal, "TRANSPORT_FAILURE", "Failed to fetch report")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Macronutrients{}, apperrors.ErrTransportFailure.WithContext("status", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Macronutrients{}, apperrors.Wrap(err, apperrors.ErrorTypeExternal, "TRANSPORT_FAILURE", "Failed to read report body")
	}

	return parseSummary(string(body))
}

// parseSummary strips the preamble and blank lines, parses the remainder
// as CSV and reads the authoritative summary values from the last row.
func parseSummary(body string) (domain.Macronutrients, error) {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	if len(lines) <= reportPreambleLines {
		return domain.Macronutrients{}, apperrors.ErrEmptyOrMalformedTable
	}

	var rows []string
	for _, line := range lines[reportPreambleLines:] {
		if strings.TrimSpace(line) != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return domain.Macronutrients{}, apperrors.ErrEmptyOrMalformedTable
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(rows, "\n")))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return domain.Macronutrients{}, apperrors.Wrap(err, apperrors.ErrorTypeValidation, "EMPTY_OR_MALFORMED_TABLE", "Report body is not a parseable table")
	}
	if len(records) == 0 {
		return domain.Macronutrients{}, apperrors.ErrEmptyOrMalformedTable
	}

	summary := records[len(records)-1]
	if len(summary) <= columnProteins {
		return domain.Macronutrients{}, apperrors.ErrEmptyOrMalformedTable.WithContext("columns", len(summary))
	}

	total, err := parseDecimal(summary[columnTotal])
	if err != nil {
		return domain.Macronutrients{}, err
	}
	fat, err := parseDecimal(summary[columnFat])
	if err != nil {
		return domain.Macronutrients{}, err
	}
	proteins, err := parseDecimal(summary[columnProteins])
	if err != nil {
		return domain.Macronutrients{}, err
	}
	carbohydrates, err := parseDecimal(summary[columnCarbohydrates])
	if err != nil {
		return domain.Macronutrients{}, err
	}

	return domain.Macronutrients{
		Total:         total,
		Fat:           fat,
		Proteins:      proteins,
		Carbohydrates: carbohydrates,
	}, nil
}

// parseDecimal converts an export value in decimal-comma form to a float.
func parseDecimal(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."), 64)
	if err != nil {
		return 0, apperrors.ErrEmptyOrMalformedTable.WithContext("value", raw)
	}
	return value, nil
}

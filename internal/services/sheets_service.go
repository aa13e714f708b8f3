package services

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/vladimiradmaev/fatsecret-exporter/internal/apperrors"
	"github.com/vladimiradmaev/fatsecret-exporter/internal/domain"
	"github.com/vladimiradmaev/fatsecret-exporter/internal/logger"
)

// Fixed column contract of the nutrition sheet: B holds the date, the
// four value columns are not configurable.
const (
	dateColumn          = "B"
	totalColumn         = "D"
	proteinsColumn      = "F"
	fatColumn           = "H"
	carbohydratesColumn = "J"
)

// SheetsService writes daily macronutrient summaries into the user's
// Google spreadsheet.
type SheetsService struct {
	svc *sheets.Service
}

// NewSheetsService authenticates with a service-account JWT. The user
// grants access by sharing the spreadsheet with the service-account email.
func NewSheetsService(ctx context.Context, serviceAccountEmail, privateKey string) (*SheetsService, error) {
	conf := &jwt.Config{
		Email:      serviceAccountEmail,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return &SheetsService{svc: svc}, nil
}

// NewSheetsServiceWithOptions creates the service with explicit client
// options, used by tests to point at a fake endpoint.
func NewSheetsServiceWithOptions(ctx context.Context, opts ...option.ClientOption) (*SheetsService, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return &SheetsService{svc: svc}, nil
}

// UpdateDailyRow locates the row whose date column matches reportDate and
// writes the four macronutrient values into it as one batched update.
// Returns ErrDateNotFound, with zero writes performed, when no row matches.
// Re-running with identical values is idempotent; concurrent external
// edits are last-writer-wins.
func (s *SheetsService) UpdateDailyRow(ctx context.Context, spreadsheetID, sheetName, reportDate string, m domain.Macronutrients) error {
	rowNumber, err := s.findRowByDate(ctx, spreadsheetID, sheetName, reportDate)
	if err != nil {
		return err
	}

	cell := func(column string, v float64) *sheets.ValueRange {
		return &sheets.ValueRange{
			Range:  fmt.Sprintf("'%s'!%s%d", sheetName, column, rowNumber),
			Values: [][]interface{}{{v}},
		}
	}

	batch := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data: []*sheets.ValueRange{
			cell(totalColumn, m.Total),
			cell(proteinsColumn, m.Proteins),
			cell(fatColumn, m.Fat),
			cell(carbohydratesColumn, m.Carbohydrates),
		},
	}

	if _, err := s.svc.Spreadsheets.Values.BatchUpdate(spreadsheetID, batch).Context(ctx).Do(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrorTypeExternal, "TRANSPORT_FAILURE", "Failed to update sheet cells")
	}

	logger.Infof("Updated row %d of sheet %q for date %s", rowNumber, sheetName, reportDate)
	return nil
}

// findRowByDate scans the date column in sheet order and returns the
// 1-based row number of the first exact formatted match.
func (s *SheetsService) findRowByDate(ctx context.Context, spreadsheetID, sheetName, reportDate string) (int, error) {
	readRange := fmt.Sprintf("'%s'!%s:%s", sheetName, dateColumn, dateColumn)
	resp, err := s.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrorTypeExternal, "TRANSPORT_FAILURE", "Failed to read sheet date column")
	}

	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if formatted, ok := row[0].(string); ok && formatted == reportDate {
			return i + 1, nil
		}
	}

	return 0, apperrors.ErrDateNotFound.WithContext("date", reportDate)
}

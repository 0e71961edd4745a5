// Package export pushes computed month summaries to a Google spreadsheet
// using a service account.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/PixelForgeIT-GH/income-hue/internal/core"
)

// SheetsClient appends one row per exported month to a single report sheet.
type SheetsClient struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Config carries the spreadsheet target and service account credentials.
// Exactly one of CredentialsJSON or CredentialsFile must be set.
type Config struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON string
	CredentialsFile string
}

func NewSheetsClient(ctx context.Context, cfg Config) (*SheetsClient, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	sheetName := strings.TrimSpace(cfg.SheetName)
	if sheetName == "" {
		sheetName = "Reports"
	}

	credentials, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsClient{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func loadCredentials(cfg Config) ([]byte, error) {
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		return []byte(cfg.CredentialsJSON), nil
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials")
	}
}

// AppendMonthlyReport writes one summary row: month label, the four summary
// figures and the balance, all in whole currency units.
func (c *SheetsClient) AppendMonthlyReport(ctx context.Context, summary core.MonthSummary) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	// Next empty row follows the current height of column A.
	rng := fmt.Sprintf("%s!A:A", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get sheet dimensions for %s: %w", c.sheetName, err)
	}
	nextRow := len(resp.Values) + 1

	label := fmt.Sprintf("%04d-%02d", summary.Year, summary.Month)
	row := []any{
		label,
		toUnits(summary.RecurringIncome),
		toUnits(summary.RecurringExpenses),
		toUnits(summary.TransactionIncome),
		toUnits(summary.TransactionExpenses),
		toUnits(summary.Balance),
	}

	dataRange := fmt.Sprintf("%s!A%d:F%d", c.sheetName, nextRow, nextRow)
	vr := &gsheet.ValueRange{Values: [][]any{row}}

	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, dataRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", dataRange, err)
	}
	return nil
}

func toUnits(m core.Money) float64 {
	return float64(m.Cents) / 100.0
}

package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/orden-economico/gastos/internal/model"
)

// Sheets reads a ledger straight from a Google spreadsheet.
type Sheets struct {
	svc           *sheets.Service
	spreadsheetID string
	readRange     string
}

// SheetsConfig locates the spreadsheet and the service-account key used to
// read it.
type SheetsConfig struct {
	SpreadsheetID   string
	Range           string // e.g. "Gastos!A:E"
	CredentialsFile string
}

// NewSheets creates a read-only Sheets client.
func NewSheets(ctx context.Context, cfg SheetsConfig) (*Sheets, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if cfg.Range == "" {
		return nil, errors.New("missing spreadsheet range")
	}
	if cfg.CredentialsFile == "" {
		return nil, errors.New("missing credentials file")
	}

	creds, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &Sheets{svc: svc, spreadsheetID: cfg.SpreadsheetID, readRange: cfg.Range}, nil
}

// Read fetches the configured range.
func (s *Sheets) Read(ctx context.Context) (*model.Table, error) {
	slog.DebugContext(ctx, "fetching spreadsheet range", "spreadsheet", s.spreadsheetID, "range", s.readRange)

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.readRange, err)
	}
	return TableFromValues(resp.Values)
}

// TableFromValues converts a Sheets value grid (first row = header) to a Table.
// The API drops trailing empty cells, so short rows are padded.
func TableFromValues(values [][]any) (*model.Table, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: range is empty", ErrMalformedInput)
	}

	rows := make([][]string, len(values))
	for i, v := range values {
		cells := make([]string, len(v))
		for j, c := range v {
			if c != nil {
				cells[j] = fmt.Sprint(c)
			}
		}
		rows[i] = cells
	}
	return newTable(rows[0], rows[1:], 2)
}

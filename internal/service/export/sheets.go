package export

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
)

// SheetsConfig holds the Google Sheets mirror settings.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	SheetRange      string
}

// SheetAppender mirrors ledger entries into a Google Sheets kassabok. It
// satisfies the billing ledger sink.
type SheetAppender struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewSheetAppender builds a Google Sheets backed ledger mirror.
func NewSheetAppender(ctx context.Context, cfg SheetsConfig, logger *zap.Logger) (*SheetAppender, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("initialize sheets client: %w", err)
	}

	sheetRange := cfg.SheetRange
	if sheetRange == "" {
		sheetRange = "Kassabok!A:L"
	}
	return &SheetAppender{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    sheetRange,
		logger:        logger,
	}, nil
}

// AppendEntry appends one ledger entry as a row at the bottom of the
// configured range.
func (a *SheetAppender) AppendEntry(ctx context.Context, entry models.LedgerEntry) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{EntryRow(entry)}}

	call := a.service.Spreadsheets.Values.Append(a.spreadsheetID, a.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", a.sheetRange, err)
	}

	a.logger.Debug("ledger row mirrored to sheet",
		zap.String("range", a.sheetRange), zap.String("entry", entry.ID))
	return nil
}

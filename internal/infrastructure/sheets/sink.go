// Package sheets дописывает записи классификации строками в Google Sheets.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"corrosion-monitor/internal/domain/entity"
	"corrosion-monitor/internal/domain/port"
)

// Sink получатель записей в таблице.
type Sink struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
	sheetRange    string
}

// Config параметры подключения к таблице
type Config struct {
	SpreadsheetID string
	Range         string // лист или диапазон, например "Sheet1"
}

// New подключается к Sheets API. opts передаются клиенту как есть,
// обычно это option.WithCredentialsFile с ключом сервисного аккаунта.
func New(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Sink, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	if cfg.Range == "" {
		cfg.Range = "Sheet1"
	}

	opts = append([]option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}, opts...)
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Sink{
		values:        srv.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.Range,
	}, nil
}

// Append добавляет строку в конец таблицы.
func (s *Sink) Append(ctx context.Context, result entity.ClassificationResult) error {
	fields := result.Fields()
	row := make([]interface{}, len(fields))
	for i, f := range fields {
		row[i] = f
	}

	_, err := s.values.Append(s.spreadsheetID, s.sheetRange, &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%w: sheets append: %w", entity.ErrSinkUnavailable, err)
	}
	return nil
}

var _ port.ResultSink = (*Sink)(nil)

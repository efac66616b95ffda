package sheets

import (
	"context"
	"errors"

	"salesdesk/pkg/config"
)

var (
	// ErrNotConfigured means the logical workbook or worksheet has no
	// document ID or physical title in the configuration.
	ErrNotConfigured = config.ErrNotConfigured
	// ErrUnavailable means the remote refused or failed to open a handle.
	ErrUnavailable = errors.New("spreadsheet not available")
	// ErrAuth means the service account credentials are missing or invalid.
	ErrAuth = errors.New("spreadsheet authentication failed")
	// ErrWorksheetNotFound means the document has no tab with the title.
	ErrWorksheetNotFound = errors.New("worksheet not found")
)

// Remote opens spreadsheet documents by ID.
type Remote interface {
	OpenSpreadsheet(ctx context.Context, id string) (Spreadsheet, error)
}

// Spreadsheet is an opened document handle.
type Spreadsheet interface {
	ID() string
	Worksheet(ctx context.Context, title string) (Worksheet, error)
}

// Worksheet is an opened tab handle. Values returns the full grid with
// unformatted cell values; AppendRow adds one row after the last data row.
type Worksheet interface {
	Title() string
	Values(ctx context.Context) ([][]interface{}, error)
	AppendRow(ctx context.Context, row []interface{}) error
}

package sheets

import "context"

// Sheet identifies one worksheet inside a spreadsheet.
type Sheet struct {
	ID    int64
	Title string
}

// ValueRange is a block of rows written starting at Range.
type ValueRange struct {
	Range  string
	Values [][]any
}

// Client is the subset of the Drive and Sheets APIs the accessor relies on.
type Client interface {
	// FindSpreadsheet returns the id of the first non-trashed spreadsheet called
	// name, or errors.ErrSpreadsheetNotFound.
	FindSpreadsheet(ctx context.Context, name string) (string, error)
	CreateSpreadsheet(ctx context.Context, name string) (string, error)
	ListSheets(ctx context.Context, spreadsheetID string) ([]Sheet, error)
	// AddSheet adds a worksheet titled title and removes removeSheetIDs in the same batch.
	AddSheet(ctx context.Context, spreadsheetID, title string, removeSheetIDs []int64) error
	GetValues(ctx context.Context, spreadsheetID, rng string) ([][]any, error)
	BatchUpdateValues(ctx context.Context, spreadsheetID string, data []ValueRange) error
	AppendValues(ctx context.Context, spreadsheetID, rng string, rows [][]any) error
}

package sheets

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/jrsteele09/go-expenses-tracker/internal/errors"
	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const (
	spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"
	valueInputOption    = "USER_ENTERED"
)

var _ Client = (*GoogleClient)(nil)

// GoogleClient talks to Drive v3 (file search) and Sheets v4 (everything else)
// on behalf of one user.
type GoogleClient struct {
	drive  *drive.Service
	sheets *gsheets.Service
}

// NewGoogleClient authenticates both services with ts. Extra options are
// appended, which lets tests point the client at a local endpoint.
func NewGoogleClient(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*GoogleClient, error) {
	if ts != nil {
		opts = append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	}

	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("[NewGoogleClient] failed to create drive service: %w", err)
	}
	sheetsService, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("[NewGoogleClient] failed to create sheets service: %w", err)
	}

	return &GoogleClient{drive: driveService, sheets: sheetsService}, nil
}

// NewGoogleClientFunc adapts NewGoogleClient to a ClientFunc.
func NewGoogleClientFunc(opts ...option.ClientOption) ClientFunc {
	return func(ctx context.Context, ts oauth2.TokenSource) (Client, error) {
		return NewGoogleClient(ctx, ts, opts...)
	}
}

func (c *GoogleClient) FindSpreadsheet(ctx context.Context, name string) (string, error) {
	query := fmt.Sprintf("name = '%s' and mimeType = '%s'", escapeQuery(name), spreadsheetMimeType)
	page := ""

	for {
		call := c.drive.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, trashed)").
			Context(ctx)
		if page != "" {
			call.PageToken(page)
		}

		list, err := call.Do()
		if err != nil {
			return "", fmt.Errorf("failed to search for spreadsheet %q: %w", name, err)
		}

		for _, file := range list.Files {
			if !file.Trashed {
				return file.Id, nil
			}
		}

		if page = list.NextPageToken; page == "" {
			break
		}
	}

	return "", apperrors.ErrSpreadsheetNotFound
}

func (c *GoogleClient) CreateSpreadsheet(ctx context.Context, name string) (string, error) {
	spreadsheet := &gsheets.Spreadsheet{
		Properties: &gsheets.SpreadsheetProperties{
			Title: name,
		},
	}

	created, err := c.sheets.Spreadsheets.Create(spreadsheet).
		Fields("spreadsheetId").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to create spreadsheet %q: %w", name, err)
	}
	return created.SpreadsheetId, nil
}

func (c *GoogleClient) ListSheets(ctx context.Context, spreadsheetID string) ([]Sheet, error) {
	spreadsheet, err := c.sheets.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list worksheets: %w", err)
	}

	list := make([]Sheet, 0, len(spreadsheet.Sheets))
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties == nil {
			continue
		}
		list = append(list, Sheet{ID: sheet.Properties.SheetId, Title: sheet.Properties.Title})
	}
	return list, nil
}

func (c *GoogleClient) AddSheet(ctx context.Context, spreadsheetID, title string, removeSheetIDs []int64) error {
	requests := []*gsheets.Request{
		{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{
					Title: title,
				},
			},
		},
	}
	for _, id := range removeSheetIDs {
		requests = append(requests, &gsheets.Request{
			DeleteSheet: &gsheets.DeleteSheetRequest{
				SheetId: id,
				// SheetId 0 is the default worksheet and must still be sent.
				ForceSendFields: []string{"SheetId"},
			},
		})
	}

	rq := gsheets.BatchUpdateSpreadsheetRequest{Requests: requests}
	if _, err := c.sheets.Spreadsheets.BatchUpdate(spreadsheetID, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to add worksheet %q: %w", title, err)
	}
	return nil
}

func (c *GoogleClient) GetValues(ctx context.Context, spreadsheetID, rng string) ([][]any, error) {
	response, err := c.sheets.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rng, err)
	}
	return response.Values, nil
}

func (c *GoogleClient) BatchUpdateValues(ctx context.Context, spreadsheetID string, data []ValueRange) error {
	ranges := make([]*gsheets.ValueRange, 0, len(data))
	for _, d := range data {
		ranges = append(ranges, &gsheets.ValueRange{
			Range:          d.Range,
			MajorDimension: "ROWS",
			Values:         d.Values,
		})
	}

	rq := gsheets.BatchUpdateValuesRequest{
		ValueInputOption: valueInputOption,
		Data:             ranges,
	}
	if _, err := c.sheets.Spreadsheets.Values.BatchUpdate(spreadsheetID, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to update values: %w", err)
	}
	return nil
}

func (c *GoogleClient) AppendValues(ctx context.Context, spreadsheetID, rng string, rows [][]any) error {
	valueRange := &gsheets.ValueRange{
		Values: rows,
	}

	_, err := c.sheets.Spreadsheets.Values.Append(spreadsheetID, rng, valueRange).
		ValueInputOption(valueInputOption).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append rows: %w", err)
	}
	return nil
}

// escapeQuery escapes a literal for use inside a Drive query string.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

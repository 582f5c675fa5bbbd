package sheetsfake

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	apperrors "github.com/jrsteele09/go-expenses-tracker/internal/errors"
	"github.com/jrsteele09/go-expenses-tracker/sheets"
	"golang.org/x/oauth2"
)

var _ sheets.Client = (*FakeClient)(nil)

// Method names accepted by FailOn and Calls.
const (
	MethodFindSpreadsheet   = "FindSpreadsheet"
	MethodCreateSpreadsheet = "CreateSpreadsheet"
	MethodListSheets        = "ListSheets"
	MethodAddSheet          = "AddSheet"
	MethodGetValues         = "GetValues"
	MethodBatchUpdateValues = "BatchUpdateValues"
	MethodAppendValues      = "AppendValues"
)

type worksheet struct {
	id    int64
	title string
	cells [][]string
}

type spreadsheet struct {
	id      string
	name    string
	trashed bool
	sheets  []*worksheet
	nextID  int64
}

// FakeClient is an in-memory Drive + Sheets stand-in. It records calls and can
// be told to fail any method.
type FakeClient struct {
	lock         sync.Mutex
	spreadsheets []*spreadsheet
	calls        map[string]int
	failures     map[string]error
	lastRemoved  []int64
}

func NewFakeClient() *FakeClient {
	return &FakeClient{
		calls:    make(map[string]int),
		failures: make(map[string]error),
	}
}

// ClientFunc returns a sheets.ClientFunc that always hands out c.
func (c *FakeClient) ClientFunc() sheets.ClientFunc {
	return func(context.Context, oauth2.TokenSource) (sheets.Client, error) {
		return c, nil
	}
}

// FailOn makes method return err until cleared with a nil err.
func (c *FakeClient) FailOn(method string, err error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if err == nil {
		delete(c.failures, method)
		return
	}
	c.failures[method] = err
}

func (c *FakeClient) Calls(method string) int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.calls[method]
}

// LastRemoved returns the worksheet ids deleted by the most recent AddSheet.
func (c *FakeClient) LastRemoved() []int64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	return append([]int64(nil), c.lastRemoved...)
}

// AddSpreadsheet seeds a spreadsheet with the given worksheet titles and returns its id.
func (c *FakeClient) AddSpreadsheet(name string, trashed bool, titles ...string) string {
	c.lock.Lock()
	defer c.lock.Unlock()
	s := c.newSpreadsheet(name)
	s.trashed = trashed
	for _, title := range titles {
		s.addSheet(title)
	}
	return s.id
}

// SheetTitles lists worksheet titles in order.
func (c *FakeClient) SheetTitles(spreadsheetID string) []string {
	c.lock.Lock()
	defer c.lock.Unlock()
	s := c.byID(spreadsheetID)
	if s == nil {
		return nil
	}
	var titles []string
	for _, ws := range s.sheets {
		titles = append(titles, ws.title)
	}
	return titles
}

// Rows returns the stored cells of a worksheet.
func (c *FakeClient) Rows(spreadsheetID, title string) [][]string {
	c.lock.Lock()
	defer c.lock.Unlock()
	ws := c.sheet(spreadsheetID, title)
	if ws == nil {
		return nil
	}
	out := make([][]string, len(ws.cells))
	for i, row := range ws.cells {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// SetCell writes one cell directly, bypassing call accounting.
func (c *FakeClient) SetCell(spreadsheetID, title string, row, col int, value string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if ws := c.sheet(spreadsheetID, title); ws != nil {
		ws.set(row, col, value)
	}
}

func (c *FakeClient) FindSpreadsheet(_ context.Context, name string) (string, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if err := c.record(MethodFindSpreadsheet); err != nil {
		return "", err
	}
	for _, s := range c.spreadsheets {
		if s.name == name && !s.trashed {
			return s.id, nil
		}
	}
	return "", apperrors.ErrSpreadsheetNotFound
}

func (c *FakeClient) CreateSpreadsheet(_ context.Context, name string) (string, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if err := c.record(MethodCreateSpreadsheet); err != nil {
		return "", err
	}
	s := c.newSpreadsheet(name)
	s.addSheet("Sheet1")
	return s.id, nil
}

func (c *FakeClient) ListSheets(_ context.Context, spreadsheetID string) ([]sheets.Sheet, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if err := c.record(MethodListSheets); err != nil {
		return nil, err
	}
	s := c.byID(spreadsheetID)
	if s == nil {
		return nil, fmt.Errorf("spreadsheet %s: %w", spreadsheetID, apperrors.ErrSpreadsheetNotFound)
	}
	var list []sheets.Sheet
	for _, ws := range s.sheets {
		list = append(list, sheets.Sheet{ID: ws.id, Title: ws.title})
	}
	return list, nil
}

func (c *FakeClient) AddSheet(_ context.Context, spreadsheetID, title string, removeSheetIDs []int64) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if err := c.record(MethodAddSheet); err != nil {
		return err
	}
	s := c.byID(spreadsheetID)
	if s == nil {
		return fmt.Errorf("spreadsheet %s: %w", spreadsheetID, apperrors.ErrSpreadsheetNotFound)
	}
	for _, ws := range s.sheets {
		if ws.title == title {
			return fmt.Errorf("a sheet with the name %q already exists", title)
		}
	}
	s.addSheet(title)

	remove := map[int64]bool{}
	for _, id := range removeSheetIDs {
		remove[id] = true
	}
	kept := s.sheets[:0]
	for _, ws := range s.sheets {
		if !remove[ws.id] {
			kept = append(kept, ws)
		}
	}
	s.sheets = kept
	c.lastRemoved = append([]int64(nil), removeSheetIDs...)
	return nil
}

func (c *FakeClient) GetValues(_ context.Context, spreadsheetID, rng string) ([][]any, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if err := c.record(MethodGetValues); err != nil {
		return nil, err
	}
	title, _, _, err := parseRange(rng)
	if err != nil {
		return nil, err
	}
	ws := c.sheet(spreadsheetID, title)
	if ws == nil {
		return nil, fmt.Errorf("unable to parse range: %s", rng)
	}
	var out [][]any
	for _, row := range ws.cells {
		values := make([]any, 0, len(row))
		for _, cell := range trimRow(row) {
			values = append(values, cell)
		}
		out = append(out, values)
	}
	// Trailing empty rows are omitted, as the real API does.
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (c *FakeClient) BatchUpdateValues(_ context.Context, spreadsheetID string, data []sheets.ValueRange) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if err := c.record(MethodBatchUpdateValues); err != nil {
		return err
	}
	for _, d := range data {
		title, row, col, err := parseRange(d.Range)
		if err != nil {
			return err
		}
		ws := c.sheet(spreadsheetID, title)
		if ws == nil {
			return fmt.Errorf("unable to parse range: %s", d.Range)
		}
		for i, values := range d.Values {
			for j, v := range values {
				ws.set(row+i, col+j, fmt.Sprint(v))
			}
		}
	}
	return nil
}

// AppendValues writes rows below the last non-empty row at or after the range start.
func (c *FakeClient) AppendValues(_ context.Context, spreadsheetID, rng string, rows [][]any) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if err := c.record(MethodAppendValues); err != nil {
		return err
	}
	title, start, col, err := parseRange(rng)
	if err != nil {
		return err
	}
	ws := c.sheet(spreadsheetID, title)
	if ws == nil {
		return fmt.Errorf("unable to parse range: %s", rng)
	}
	next := start
	for i := start; i < len(ws.cells); i++ {
		if len(trimRow(ws.cells[i])) > 0 {
			next = i + 1
		}
	}
	for i, values := range rows {
		for j, v := range values {
			ws.set(next+i, col+j, fmt.Sprint(v))
		}
	}
	return nil
}

func (c *FakeClient) record(method string) error {
	c.calls[method]++
	return c.failures[method]
}

func (c *FakeClient) newSpreadsheet(name string) *spreadsheet {
	s := &spreadsheet{id: fmt.Sprintf("spreadsheet-%d", len(c.spreadsheets)+1), name: name}
	c.spreadsheets = append(c.spreadsheets, s)
	return s
}

func (c *FakeClient) byID(id string) *spreadsheet {
	for _, s := range c.spreadsheets {
		if s.id == id {
			return s
		}
	}
	return nil
}

func (c *FakeClient) sheet(spreadsheetID, title string) *worksheet {
	s := c.byID(spreadsheetID)
	if s == nil {
		return nil
	}
	for _, ws := range s.sheets {
		if ws.title == title {
			return ws
		}
	}
	return nil
}

func (s *spreadsheet) addSheet(title string) {
	s.sheets = append(s.sheets, &worksheet{id: s.nextID, title: title})
	s.nextID++
}

// set writes a 0-based cell, growing the grid as needed.
func (ws *worksheet) set(row, col int, value string) {
	for len(ws.cells) <= row {
		ws.cells = append(ws.cells, nil)
	}
	for len(ws.cells[row]) <= col {
		ws.cells[row] = append(ws.cells[row], "")
	}
	ws.cells[row][col] = value
}

func trimRow(row []string) []string {
	end := len(row)
	for end > 0 && row[end-1] == "" {
		end--
	}
	return row[:end]
}

// parseRange splits "'Title'!B3:D" into the title and the 0-based start cell.
func parseRange(rng string) (title string, row, col int, err error) {
	i := strings.LastIndex(rng, "!")
	if i < 0 {
		return "", 0, 0, fmt.Errorf("unable to parse range: %s", rng)
	}
	title = rng[:i]
	if strings.HasPrefix(title, "'") && strings.HasSuffix(title, "'") && len(title) >= 2 {
		title = strings.ReplaceAll(title[1:len(title)-1], "''", "'")
	}

	start := strings.SplitN(rng[i+1:], ":", 2)[0]
	letters := strings.TrimRightFunc(start, func(r rune) bool { return r >= '0' && r <= '9' })
	digits := start[len(letters):]
	if letters == "" {
		return "", 0, 0, fmt.Errorf("unable to parse range: %s", rng)
	}
	for _, r := range strings.ToUpper(letters) {
		if r < 'A' || r > 'Z' {
			return "", 0, 0, fmt.Errorf("unable to parse range: %s", rng)
		}
		col = col*26 + int(r-'A'+1)
	}
	col--

	if digits != "" {
		n, err := strconv.Atoi(digits)
		if err != nil || n < 1 {
			return "", 0, 0, fmt.Errorf("unable to parse range: %s", rng)
		}
		row = n - 1
	}
	return title, row, col, nil
}

package config

const (
	spreadsheetNameVar = "SPREADSHEET_NAME"
	periodFormatVar    = "PERIOD_FORMAT"
)

type SheetsConfig interface {
	GetSpreadsheetName() string
	GetPeriodFormat() string
}

type Sheets struct{}

var _ SheetsConfig = Sheets{}

func (Sheets) GetSpreadsheetName() string {
	return GetEnv(spreadsheetNameVar, "Expenses tracker")
}

// GetPeriodFormat is a Go time layout; one worksheet is kept per formatted value.
func (Sheets) GetPeriodFormat() string {
	return GetEnv(periodFormatVar, "2006-01")
}

// Package expenses defines the worksheet layout of the expenses tracker.
package expenses

import (
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/go-expenses-tracker/sheets"
)

// Summary field keys.
const (
	FieldBudget      = "budget"
	FieldSavingsGoal = "savingsGoal"
	FieldCurrency    = "currency"
)

// Ledger column keys.
const (
	ColumnDate        = "date"
	ColumnDescription = "description"
	ColumnCategory    = "category"
	ColumnAmount      = "amount"
)

// Schema returns the summary fields and ledger columns of every month sheet.
func Schema() sheets.Schema {
	return sheets.Schema{
		Summary: []sheets.Field{
			{Key: FieldBudget, Label: "Budget", InitialValue: "0", Format: Number},
			{Key: FieldSavingsGoal, Label: "Savings goal", InitialValue: "0", Format: Number},
			{Key: FieldCurrency, Label: "Currency", InitialValue: "PLN"},
		},
		Ledger: []sheets.Column{
			{Key: ColumnDate, Label: "Date"},
			{Key: ColumnDescription, Label: "Description"},
			{Key: ColumnCategory, Label: "Category"},
			{Key: ColumnAmount, Label: "Amount", Format: Number},
		},
	}
}

// Number parses a cell as a float, accepting a decimal comma and thousands
// separators. Cells that are not numbers are returned unchanged.
func Number(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0.0
	}
	s = strings.NewReplacer(" ", "", "\u00a0", "").Replace(s)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return raw
	}
	return f
}

// PeriodKey names the worksheet holding t's month.
func PeriodKey(t time.Time, layout string) string {
	return t.Format(layout)
}

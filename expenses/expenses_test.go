package expenses_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-expenses-tracker/expenses"
	"github.com/jrsteele09/go-expenses-tracker/sheets"
	"github.com/jrsteele09/go-expenses-tracker/sheets/sheetsfake"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"12.5", 12.5},
		{"12,5", 12.5},
		{"1,234.50", 1234.5},
		{"1 234,50", 1234.5},
		{"", 0.0},
		{"-3", -3.0},
		{"abc", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			require.Equal(t, tt.want, expenses.Number(tt.raw))
		})
	}
}

func TestPeriodKey(t *testing.T) {
	at := time.Date(2026, time.October, 18, 10, 0, 0, 0, time.UTC)
	require.Equal(t, "2026-10", expenses.PeriodKey(at, "2006-01"))
	require.Equal(t, "10.2026", expenses.PeriodKey(at, "01.2006"))
}

func TestSchema_MonthSheet(t *testing.T) {
	ctx := context.Background()
	client := sheetsfake.NewFakeClient()

	factory, err := sheets.NewFactory("Expenses tracker", expenses.Schema(), client.ClientFunc())
	require.NoError(t, err)

	a, err := factory.Open(ctx, nil, "2026-10")
	require.NoError(t, err)

	require.Equal(t, [][]string{
		{"Budget", "0"},
		{"Savings goal", "0"},
		{"Currency", "PLN"},
		{"Date", "Description", "Category", "Amount"},
	}, client.Rows(a.SpreadsheetID(), "2026-10"))

	require.NoError(t, a.Append(ctx, map[string]any{
		expenses.ColumnDate:        "2026-10-18",
		expenses.ColumnDescription: "Groceries",
		expenses.ColumnCategory:    "Food",
		expenses.ColumnAmount:      "54,20",
	}))

	data, err := a.GetAllData(ctx)
	require.NoError(t, err)
	require.Len(t, data.Entries, 1)
	require.Equal(t, 54.2, data.Entries[0][expenses.ColumnAmount])
	require.Equal(t, "PLN", data.Summary[expenses.FieldCurrency])
}

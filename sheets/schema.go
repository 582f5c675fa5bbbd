package sheets

import (
	"errors"
	"fmt"
)

// Formatter converts a raw cell value into the value handed to callers.
type Formatter func(raw string) any

// Field is a scalar summary setting kept in its own row above the ledger:
// label in column A, value in column B.
type Field struct {
	Key          string
	Label        string
	InitialValue string
	Format       Formatter
}

// Column is one ledger column.
type Column struct {
	Key    string
	Label  string
	Format Formatter
}

// Schema describes the layout of every period worksheet.
type Schema struct {
	Summary []Field
	Ledger  []Column
}

func (s Schema) validate() error {
	if len(s.Ledger) == 0 {
		return errors.New("schema needs at least one ledger column")
	}
	seen := map[string]struct{}{}
	check := func(key string) error {
		if key == "" {
			return errors.New("schema keys cannot be empty")
		}
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate schema key %q", key)
		}
		seen[key] = struct{}{}
		return nil
	}
	for _, f := range s.Summary {
		if err := check(f.Key); err != nil {
			return err
		}
	}
	for _, c := range s.Ledger {
		if err := check(c.Key); err != nil {
			return err
		}
	}
	return nil
}

// headerRow is the 1-based row holding the ledger column labels.
func (s Schema) headerRow() int {
	return len(s.Summary) + 1
}

// lastColumn is the rightmost column used by the layout. Summary rows always use A:B.
func (s Schema) lastColumn() string {
	return columnLetter(max(len(s.Ledger), 2))
}

// headerBlock is written when a period worksheet is created, and row by row
// when an existing worksheet is missing part of it.
func (s Schema) headerBlock() [][]any {
	rows := make([][]any, 0, len(s.Summary)+1)
	for _, f := range s.Summary {
		rows = append(rows, []any{f.Label, f.InitialValue})
	}
	labels := make([]any, 0, len(s.Ledger))
	for _, c := range s.Ledger {
		labels = append(labels, c.Label)
	}
	return append(rows, labels)
}

func format(f Formatter, raw string) any {
	if f == nil {
		return raw
	}
	return f(raw)
}

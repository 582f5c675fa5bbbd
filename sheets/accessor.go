package sheets

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Data is the content of one period worksheet.
type Data struct {
	Summary map[string]any   `json:"summary"`
	Entries []map[string]any `json:"entries"`
}

// Accessor reads and writes one provisioned period worksheet.
type Accessor struct {
	client        Client
	schema        Schema
	spreadsheetID string
	period        string
}

func (a *Accessor) SpreadsheetID() string {
	return a.spreadsheetID
}

func (a *Accessor) Period() string {
	return a.period
}

// GetAllData reads the summary block and every ledger row, applying formatters.
func (a *Accessor) GetAllData(ctx context.Context) (_ *Data, err error) {
	ctx, span := a.startSpan(ctx, "sheets.GetAllData")
	defer func() { endSpan(span, err) }()

	rows, err := a.client.GetValues(ctx, a.spreadsheetID, cellRange(a.period, "A1:%s", a.schema.lastColumn()))
	if err != nil {
		return nil, fmt.Errorf("[Accessor GetAllData] %w", err)
	}

	data := &Data{
		Summary: make(map[string]any, len(a.schema.Summary)),
		Entries: []map[string]any{},
	}

	for i, field := range a.schema.Summary {
		var row []any
		if i < len(rows) {
			row = rows[i]
		}
		data.Summary[field.Key] = format(field.Format, cellString(row, 1))
	}

	if len(rows) <= a.schema.headerRow() {
		return data, nil
	}
	for _, row := range rows[a.schema.headerRow():] {
		if len(row) == 0 {
			continue
		}
		entry := make(map[string]any, len(a.schema.Ledger))
		for j, column := range a.schema.Ledger {
			entry[column.Key] = format(column.Format, cellString(row, j))
		}
		data.Entries = append(data.Entries, entry)
	}

	return data, nil
}

// UpdateValues writes the summary fields present in update, each to its own
// cell, in one batch. Fields missing from update and keys outside the schema
// are left alone.
func (a *Accessor) UpdateValues(ctx context.Context, update map[string]any) (err error) {
	ctx, span := a.startSpan(ctx, "sheets.UpdateValues")
	defer func() { endSpan(span, err) }()

	var data []ValueRange
	for i, field := range a.schema.Summary {
		value, ok := update[field.Key]
		if !ok {
			continue
		}
		data = append(data, ValueRange{
			Range:  cellRange(a.period, "B%d", i+1),
			Values: [][]any{{value}},
		})
	}
	if len(data) == 0 {
		return nil
	}

	if err := a.client.BatchUpdateValues(ctx, a.spreadsheetID, data); err != nil {
		return fmt.Errorf("[Accessor UpdateValues] %w", err)
	}
	return nil
}

// Append adds one ledger row below the existing ones. Missing columns are written empty.
func (a *Accessor) Append(ctx context.Context, row map[string]any) (err error) {
	ctx, span := a.startSpan(ctx, "sheets.Append")
	defer func() { endSpan(span, err) }()

	values := make([]any, 0, len(a.schema.Ledger))
	for _, column := range a.schema.Ledger {
		v, ok := row[column.Key]
		if !ok || v == nil {
			v = ""
		}
		values = append(values, v)
	}

	rng := cellRange(a.period, "A%d", a.schema.headerRow())
	if err := a.client.AppendValues(ctx, a.spreadsheetID, rng, [][]any{values}); err != nil {
		return fmt.Errorf("[Accessor Append] %w", err)
	}
	return nil
}

func (a *Accessor) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("sheets.spreadsheet_id", a.spreadsheetID),
		attribute.String("sheets.period", a.period),
	))
}

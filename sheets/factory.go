package sheets

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/jrsteele09/go-expenses-tracker/internal/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
)

var tracer = otel.Tracer("github.com/jrsteele09/go-expenses-tracker/sheets")

// ClientFunc builds a Client authenticated as the owner of ts.
type ClientFunc func(ctx context.Context, ts oauth2.TokenSource) (Client, error)

// Factory binds a static schema and spreadsheet name to per-request accessors.
type Factory struct {
	name      string
	schema    Schema
	newClient ClientFunc
}

func NewFactory(spreadsheetName string, schema Schema, newClient ClientFunc) (*Factory, error) {
	if spreadsheetName == "" {
		return nil, errors.New("[NewFactory] spreadsheet name is required")
	}
	if newClient == nil {
		return nil, errors.New("[NewFactory] client func is required")
	}
	if err := schema.validate(); err != nil {
		return nil, fmt.Errorf("[NewFactory] invalid schema: %w", err)
	}
	return &Factory{name: spreadsheetName, schema: schema, newClient: newClient}, nil
}

func (f *Factory) Schema() Schema {
	return f.schema
}

// Open returns an accessor for the period worksheet, provisioning the
// spreadsheet and the worksheet first when they do not exist yet.
func (f *Factory) Open(ctx context.Context, ts oauth2.TokenSource, period string) (*Accessor, error) {
	if !ValidPeriod(period) {
		return nil, fmt.Errorf("[Factory Open] %w: %q", apperrors.ErrInvalidPeriod, period)
	}

	client, err := f.newClient(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("[Factory Open] %w", err)
	}

	spreadsheetID, err := f.provision(ctx, client, period)
	if err != nil {
		return nil, fmt.Errorf("[Factory Open] %w", err)
	}

	return &Accessor{
		client:        client,
		schema:        f.schema,
		spreadsheetID: spreadsheetID,
		period:        period,
	}, nil
}

// provision makes sure the named spreadsheet and the period worksheet exist.
// It mutates nothing when both are already present.
func (f *Factory) provision(ctx context.Context, client Client, period string) (_ string, err error) {
	ctx, span := tracer.Start(ctx, "sheets.provision", trace.WithAttributes(
		attribute.String("sheets.spreadsheet", f.name),
		attribute.String("sheets.period", period),
	))
	defer func() { endSpan(span, err) }()

	spreadsheetID, err := client.FindSpreadsheet(ctx, f.name)
	created := false
	switch {
	case errors.Is(err, apperrors.ErrSpreadsheetNotFound):
		if spreadsheetID, err = client.CreateSpreadsheet(ctx, f.name); err != nil {
			return "", err
		}
		created = true
		log.Info().Str("spreadsheet_id", spreadsheetID).Str("name", f.name).Msg("Created spreadsheet")
	case err != nil:
		return "", err
	}

	worksheets, err := client.ListSheets(ctx, spreadsheetID)
	if err != nil {
		return "", err
	}
	for _, ws := range worksheets {
		if ws.Title == period {
			return spreadsheetID, f.repairHeader(ctx, client, spreadsheetID, period)
		}
	}

	// The default worksheets only go away together with a brand new spreadsheet.
	var remove []int64
	if created {
		for _, ws := range worksheets {
			remove = append(remove, ws.ID)
		}
	}

	if err := client.AddSheet(ctx, spreadsheetID, period, remove); err != nil {
		return "", err
	}

	header := ValueRange{
		Range:  cellRange(period, "A1:%s%d", f.schema.lastColumn(), f.schema.headerRow()),
		Values: f.schema.headerBlock(),
	}
	if err := client.BatchUpdateValues(ctx, spreadsheetID, []ValueRange{header}); err != nil {
		return "", err
	}

	log.Info().
		Str("spreadsheet_id", spreadsheetID).
		Str("period", period).
		Int("removed_sheets", len(remove)).
		Msg("Created period worksheet")

	return spreadsheetID, nil
}

// repairHeader rewrites the header rows of an existing period worksheet that
// are empty, which happens when the worksheet was added but the header write
// failed. Rows that hold anything are left alone.
func (f *Factory) repairHeader(ctx context.Context, client Client, spreadsheetID, period string) error {
	headerRow := f.schema.headerRow()
	rows, err := client.GetValues(ctx, spreadsheetID, cellRange(period, "A1:%s%d", f.schema.lastColumn(), headerRow))
	if err != nil {
		return err
	}

	var missing []ValueRange
	for i, values := range f.schema.headerBlock() {
		if i < len(rows) && len(rows[i]) > 0 {
			continue
		}
		missing = append(missing, ValueRange{
			Range:  cellRange(period, "A%d", i+1),
			Values: [][]any{values},
		})
	}
	if len(missing) == 0 {
		return nil
	}

	if err := client.BatchUpdateValues(ctx, spreadsheetID, missing); err != nil {
		return err
	}
	log.Warn().
		Str("spreadsheet_id", spreadsheetID).
		Str("period", period).
		Int("rows", len(missing)).
		Msg("Repaired period worksheet header")
	return nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

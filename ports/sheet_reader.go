package ports

import (
	"context"

	"evalreport/domain/evaluation"
)

// SheetReaderPort loads the scenario sheets of an evaluation workbook
type SheetReaderPort interface {
	// ReadSheets returns every parseable scenario sheet in workbook order
	ReadSheets(ctx context.Context, path string) ([]evaluation.Sheet, error)
}

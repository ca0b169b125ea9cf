package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"evalreport/domain/evaluation"
	"evalreport/internal"
	apperrors "evalreport/internal/errors"

	"github.com/xuri/excelize/v2"
)

// SheetReader loads evaluation workbooks (.xlsx) into scenario sheets
type SheetReader struct {
	config  ReaderConfig
	pattern *regexp.Regexp
	logger  *internal.Logger
}

// NewSheetReader creates a reader; an invalid sheet pattern is a
// configuration error
func NewSheetReader(config ReaderConfig, logger *internal.Logger) (*SheetReader, error) {
	pattern, err := config.compile()
	if err != nil {
		return nil, apperrors.WithCode(apperrors.CodeConfigInvalid, err, "invalid sheet pattern")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &SheetReader{config: config, pattern: pattern, logger: logger}, nil
}

// ReadSheets reads every sheet whose name matches the scenario pattern.
// Sheets that do not follow the layout are logged and skipped unless the
// reader is strict.
func (r *SheetReader) ReadSheets(ctx context.Context, path string) ([]evaluation.Sheet, error) {
	r.logger.Debug("[SheetReader] opening workbook %s", path)

	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.WithCode(apperrors.CodeInvalidInput, err, "workbook not found")
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".xls" {
		return nil, apperrors.InvalidInput(fmt.Sprintf("%s is not an Excel workbook", path))
	}

	startTime := time.Now()
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.ParseError("failed to open workbook", err)
	}
	defer f.Close()

	var sheets []evaluation.Sheet
	skipped := 0
	for _, name := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !r.pattern.MatchString(name) {
			r.logger.Trace("[SheetReader] ignoring sheet %s", name)
			continue
		}

		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, apperrors.ParseError(fmt.Sprintf("failed to read sheet %s", name), err)
		}

		sheet, err := ParseSheet(name, rows)
		if err != nil {
			if r.config.StrictSheets {
				return nil, apperrors.ParseError(fmt.Sprintf("failed to parse sheet %s", name), err)
			}
			r.logger.Warn("[SheetReader] skipping sheet %s: %v", name, err)
			skipped++
			continue
		}
		r.logger.Debug("[SheetReader] sheet %s: %d responses", name, len(sheet.Responses))
		sheets = append(sheets, sheet)
	}

	r.logger.Info("[SheetReader] read %d scenario sheets from %s in %.2fms (%d skipped)",
		len(sheets), filepath.Base(path), float64(time.Since(startTime).Nanoseconds())/1e6, skipped)
	return sheets, nil
}

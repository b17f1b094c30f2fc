// Package spreadsheet converts Excel workbooks to delimited text so the
// ingest tokenizer only ever sees one input shape. The gatekeeper accepts
// .xlsx and .xls by extension; this adapter bridges those uploads to the
// text pipeline.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Converter renders the first populated worksheet of a workbook as CSV
// text. Rows come back comma-delimited with standard quoting, which the
// downstream delimiter inference resolves to comma.
type Converter struct {
	logger *slog.Logger
}

// NewConverter creates a converter with the given logger.
func NewConverter(logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		logger: logger.With(slog.String("component", "spreadsheet")),
	}
}

// ToDelimitedText opens the workbook from memory and returns its first
// populated sheet as CSV text. Fails when the payload is not a readable
// workbook or no sheet contains any rows.
func (c *Converter) ToDelimitedText(content []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var rows [][]string
	var sheetName string
	for _, name := range f.GetSheetList() {
		sheetRows, err := f.GetRows(name)
		if err != nil {
			c.logger.Warn("failed to read sheet, trying next",
				slog.String("sheet", name),
				slog.String("error", err.Error()))
			continue
		}
		if len(sheetRows) > 0 {
			rows = sheetRows
			sheetName = name
			break
		}
	}
	if rows == nil {
		return "", fmt.Errorf("workbook contains no populated sheet")
	}

	c.logger.Debug("converting sheet to delimited text",
		slog.String("sheet", sheetName),
		slog.Int("rows", len(rows)))

	var b strings.Builder
	w := csv.NewWriter(&b)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to encode row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush rows: %w", err)
	}
	return b.String(), nil
}

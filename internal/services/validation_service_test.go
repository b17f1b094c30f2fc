package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"dataniaga/internal/config"
	"dataniaga/internal/ingest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testValidationConfig() config.ValidationConfig {
	return config.ValidationConfig{
		RequiredColumns: []string{"InvoiceNo", "InvoiceDate", "PULAU", "PRODUCT_CATEGORY", "Quantity"},
		MaxFileSize:     ingest.MaxFileSize,
		MinRows:         100,
		MinCategories:   3,
		MinRegions:      2,
		DuplicatePolicy: "allow",
		RegionPolicy:    "warn",
		Regions:         ingest.DefaultRegions(),
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Run("maps all fields", func(t *testing.T) {
		cfg := config.ValidationConfig{
			RequiredColumns: []string{"A", "B"},
			MaxFileSize:     1024,
			MinRows:         10,
			MinCategories:   2,
			MinRegions:      1,
			DuplicatePolicy: "reject",
			RegionPolicy:    "off",
			Regions:         []string{"JAWA"},
		}

		opts := OptionsFromConfig(cfg)

		assert.Equal(t, ingest.Schema{"A", "B"}, opts.Schema)
		assert.Equal(t, int64(1024), opts.MaxFileSize)
		assert.Equal(t, 10, opts.MinRows)
		assert.Equal(t, ingest.RejectDuplicates, opts.DuplicatePolicy)
		assert.Equal(t, ingest.RegionFreeText, opts.RegionPolicy)
		assert.Equal(t, []string{"JAWA"}, opts.Regions)
	})

	t.Run("unknown policies fall back to defaults", func(t *testing.T) {
		opts := OptionsFromConfig(config.ValidationConfig{
			DuplicatePolicy: "sometimes",
			RegionPolicy:    "maybe",
		})

		assert.Equal(t, ingest.AllowDuplicates, opts.DuplicatePolicy)
		assert.Equal(t, ingest.RegionWarn, opts.RegionPolicy)
	})

	t.Run("zero config keeps defaults", func(t *testing.T) {
		opts := OptionsFromConfig(config.ValidationConfig{})
		assert.Equal(t, ingest.DefaultOptions(), opts)
	})
}

func TestValidateFileCSV(t *testing.T) {
	svc := NewValidationService(testValidationConfig(), nil, testLogger())

	t.Run("valid content", func(t *testing.T) {
		content := strings.Join([]string{
			"InvoiceNo,InvoiceDate,PULAU,PRODUCT_CATEGORY,Quantity",
			"INV-001,2024-01-15,JAWA,MINUMAN,10",
			"INV-002,2024-01-16,SUMATERA,MAKANAN,5",
		}, "\n")

		run, err := svc.ValidateFile(context.Background(), "sales.csv", []byte(content))

		require.NoError(t, err)
		assert.NotEmpty(t, run.RunID)
		assert.Equal(t, "sales.csv", run.Filename)
		assert.Equal(t, []byte(content), run.Content)
		assert.True(t, run.Report.IsValid)
		assert.Equal(t, 2, run.Report.Stats.TotalRows)
		assert.Equal(t, 2, run.Report.Stats.ValidRows)
		assert.NotEmpty(t, run.Report.Warnings)
	})

	t.Run("invalid rows produce a report not an error", func(t *testing.T) {
		content := strings.Join([]string{
			"InvoiceNo,InvoiceDate,PULAU,PRODUCT_CATEGORY,Quantity",
			",2024-01-15,JAWA,MINUMAN,10",
		}, "\n")

		run, err := svc.ValidateFile(context.Background(), "sales.csv", []byte(content))

		require.NoError(t, err)
		assert.False(t, run.Report.IsValid)
		require.Len(t, run.Report.Errors, 1)
		assert.Equal(t, "InvoiceNo", run.Report.Errors[0].Field)
		assert.Equal(t, 2, run.Report.Errors[0].RowNumber)
	})

	t.Run("unsupported extension is a hard error", func(t *testing.T) {
		_, err := svc.ValidateFile(context.Background(), "notes.txt", []byte("hello"))

		require.Error(t, err)
		var fileErr *ingest.FileError
		require.ErrorAs(t, err, &fileErr)
		assert.Equal(t, ingest.CodeUnsupportedFormat, fileErr.Code)
	})

	t.Run("empty file is a hard error", func(t *testing.T) {
		_, err := svc.ValidateFile(context.Background(), "empty.csv", nil)

		require.Error(t, err)
		var fileErr *ingest.FileError
		require.ErrorAs(t, err, &fileErr)
		assert.Equal(t, ingest.CodeEmptyFile, fileErr.Code)
	})
}

func TestValidateFileExcel(t *testing.T) {
	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	rows := [][]interface{}{
		{"InvoiceNo", "InvoiceDate", "PULAU", "PRODUCT_CATEGORY", "Quantity"},
		{"INV-001", "2024-01-15", "JAWA", "MINUMAN", 10},
		{"INV-002", "2024-01-16", "BALI", "MAKANAN", 3},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))

	svc := NewValidationService(testValidationConfig(), nil, testLogger())
	run, err := svc.ValidateFile(context.Background(), "sales.xlsx", buf.Bytes())

	require.NoError(t, err)
	assert.True(t, run.Report.IsValid)
	assert.Equal(t, 2, run.Report.Stats.TotalRows)
	assert.Equal(t, 2, run.Report.Stats.ValidRows)
	assert.Equal(t, buf.Bytes(), run.Content)
}

package ingest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataniaga/pkg/contracts/domain"
)

const cleanHeader = "InvoiceNo,InvoiceDate,PULAU,PRODUCT_CATEGORY,Quantity"

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	return New(DefaultOptions(), nil)
}

func TestValidateTextCleanFile(t *testing.T) {
	text := cleanHeader + "\n" +
		"INV001,2024-01-15,JAWA,ELEKTRONIK,5\n" +
		"INV002,15/01/2024,SUMATERA,FASHION,3\n" +
		"INV003,2024-02-01,BALI,MAKANAN,10\n"

	result := newTestValidator(t).ValidateText(context.Background(), text)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, domain.ValidationStats{TotalRows: 3, ValidRows: 3}, result.Stats)
}

func TestValidateTextMissingColumn(t *testing.T) {
	text := "InvoiceNo,InvoiceDate,PULAU,PRODUCT_CATEGORY\n" +
		"INV001,2024-01-15,JAWA,ELEKTRONIK\n" +
		"INV002,2024-01-16,BALI,FASHION\n"

	result := newTestValidator(t).ValidateText(context.Background(), text)

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, domain.FieldHeader, result.Errors[0].Field)
	assert.Equal(t, 1, result.Errors[0].RowNumber)
	assert.Contains(t, result.Errors[0].Reason, "Quantity")
	assert.Equal(t, 2, result.Stats.TotalRows)
	assert.Equal(t, 0, result.Stats.ValidRows)
}

func TestValidateTextShortCircuitInvariant(t *testing.T) {
	// Many broken data rows, but a missing column must yield exactly one
	// error regardless.
	var b strings.Builder
	b.WriteString("InvoiceNo,InvoiceDate,PULAU,PRODUCT_CATEGORY\n")
	for i := 0; i < 50; i++ {
		b.WriteString(",,,\n")
	}

	result := newTestValidator(t).ValidateText(context.Background(), b.String())

	assert.False(t, result.IsValid)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 0, result.Stats.ValidRows)
}

func TestValidateTextSmallDataset(t *testing.T) {
	var b strings.Builder
	b.WriteString(cleanHeader + "\n")
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, "INV%03d,2024-01-15,JAWA,CAT%d,5\n", i, i%5)
	}

	result := newTestValidator(t).ValidateText(context.Background(), b.String())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 30, result.Stats.TotalRows)

	joined := ""
	for _, w := range result.Warnings {
		joined += string(w) + "\n"
	}
	assert.Contains(t, joined, "minimum recommended transaction volume not met")
	assert.Contains(t, joined, "distinct regions")
	assert.NotContains(t, joined, "distinct product categories")
}

func TestValidateTextSemicolonDelimiter(t *testing.T) {
	text := "InvoiceNo;InvoiceDate;PULAU;PRODUCT_CATEGORY;Quantity\n" +
		"INV001;2024-01-15;JAWA;ELEKTRONIK;5\n"

	result := newTestValidator(t).ValidateText(context.Background(), text)

	assert.True(t, result.IsValid, "semicolon header must not be read as one column")
	assert.Equal(t, 1, result.Stats.TotalRows)
}

func TestValidateTextFieldOrderAcrossRows(t *testing.T) {
	text := cleanHeader + "\n" +
		"INV001,bad-date,JAWA,ELEKTRONIK,ten\n" +
		"INV002,2024-01-15,JAWA,ELEKTRONIK,0\n"

	result := newTestValidator(t).ValidateText(context.Background(), text)

	require.Len(t, result.Errors, 3)
	// Row 2: InvoiceDate before Quantity.
	assert.Equal(t, ColInvoiceDate, result.Errors[0].Field)
	assert.Equal(t, 2, result.Errors[0].RowNumber)
	assert.Equal(t, ColQuantity, result.Errors[1].Field)
	assert.Equal(t, 2, result.Errors[1].RowNumber)
	// Row 3 comes after row 2.
	assert.Equal(t, 3, result.Errors[2].RowNumber)
}

func TestValidateTextTooShort(t *testing.T) {
	for name, text := range map[string]string{
		"header only": cleanHeader + "\n",
		"empty":       "",
		"blank lines": "\n\n  \n",
	} {
		t.Run(name, func(t *testing.T) {
			result := newTestValidator(t).ValidateText(context.Background(), text)
			assert.False(t, result.IsValid)
			require.Len(t, result.Errors, 1)
			assert.Equal(t, domain.FieldGeneral, result.Errors[0].Field)
			assert.Equal(t, 0, result.Errors[0].RowNumber)
			assert.Equal(t, domain.ValidationStats{}, result.Stats)
		})
	}
}

func TestValidateTextIdempotent(t *testing.T) {
	text := cleanHeader + "\n" +
		"INV001,2024-01-15,JAWA,ELEKTRONIK,5\n" +
		"INV001,2024-01-15,ATLANTIS,FASHION,-1\n"

	v := newTestValidator(t)
	first := v.ValidateText(context.Background(), text)
	second := v.ValidateText(context.Background(), text)

	assert.Equal(t, first, second, "re-running validation must yield an identical report")
}

func TestValidateTextRowAccounting(t *testing.T) {
	text := cleanHeader + "\n" +
		"INV001,2024-01-15,JAWA,ELEKTRONIK,5\n" +
		",,,,\n" +
		"INV003,2024-01-15,BALI,FASHION,2\n"

	result := newTestValidator(t).ValidateText(context.Background(), text)

	assert.False(t, result.IsValid)
	assert.Equal(t, 3, result.Stats.TotalRows)
	assert.Equal(t, 2, result.Stats.ValidRows)
	assert.LessOrEqual(t, result.Stats.ValidRows, result.Stats.TotalRows)
	// The fully empty row carries one error per required field.
	assert.Len(t, result.Errors, 5)
}

func TestValidateRawFile(t *testing.T) {
	v := newTestValidator(t)

	t.Run("clean csv file", func(t *testing.T) {
		content := []byte(cleanHeader + "\nINV001,2024-01-15,JAWA,ELEKTRONIK,5\n")
		result, err := v.Validate(context.Background(), domain.RawFile{
			Name:    "sales.csv",
			Size:    int64(len(content)),
			Content: content,
		})
		require.NoError(t, err)
		assert.True(t, result.IsValid)
	})

	t.Run("gatekeeper rejection is a hard error", func(t *testing.T) {
		_, err := v.Validate(context.Background(), domain.RawFile{Name: "sales.txt", Size: 10})
		var fileErr *FileError
		require.ErrorAs(t, err, &fileErr)
		assert.Equal(t, CodeUnsupportedFormat, fileErr.Code)
	})

	t.Run("BOM does not corrupt the first header token", func(t *testing.T) {
		content := []byte("\xef\xbb\xbf" + cleanHeader + "\nINV001,2024-01-15,JAWA,ELEKTRONIK,5\n")
		result, err := v.Validate(context.Background(), domain.RawFile{
			Name:    "sales.csv",
			Size:    int64(len(content)),
			Content: content,
		})
		require.NoError(t, err)
		assert.True(t, result.IsValid)
	})
}

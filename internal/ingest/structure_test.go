package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataniaga/pkg/contracts/domain"
)

func TestValidateStructure(t *testing.T) {
	schema := DefaultSchema()

	t.Run("empty record set", func(t *testing.T) {
		err := ValidateStructure(nil, schema)
		require.NotNil(t, err)
		assert.Equal(t, domain.FieldGeneral, err.Field)
		assert.Equal(t, 0, err.RowNumber)
		assert.Equal(t, "no data rows found", err.Reason)
	})

	t.Run("complete header passes", func(t *testing.T) {
		rec := domain.Record{
			ColInvoiceNo: "", ColInvoiceDate: "", ColRegion: "",
			ColCategory: "", ColQuantity: "",
		}
		assert.Nil(t, ValidateStructure([]domain.Record{rec}, schema))
	})

	t.Run("missing columns listed in schema order", func(t *testing.T) {
		rec := domain.Record{ColInvoiceNo: "", ColRegion: ""}
		err := ValidateStructure([]domain.Record{rec}, schema)
		require.NotNil(t, err)
		assert.Equal(t, domain.FieldHeader, err.Field)
		assert.Equal(t, 1, err.RowNumber)
		assert.Equal(t, "missing required columns: InvoiceDate, PRODUCT_CATEGORY, Quantity", err.Reason)
	})

	t.Run("column match is case-sensitive", func(t *testing.T) {
		rec := domain.Record{
			"invoiceno": "", ColInvoiceDate: "", ColRegion: "",
			ColCategory: "", ColQuantity: "",
		}
		err := ValidateStructure([]domain.Record{rec}, schema)
		require.NotNil(t, err)
		assert.Contains(t, err.Reason, ColInvoiceNo)
	})
}

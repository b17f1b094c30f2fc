package ingest

import (
	"dataniaga/pkg/contracts/domain"
)

// Column names of the canonical transaction schema.
const (
	ColInvoiceNo   = "InvoiceNo"
	ColInvoiceDate = "InvoiceDate"
	ColRegion      = "PULAU"
	ColCategory    = "PRODUCT_CATEGORY"
	ColQuantity    = "Quantity"
)

// Schema is the ordered set of required column names. Matching against
// header tokens is case-sensitive and exact. The order doubles as the
// field-declaration order used when reporting row errors.
type Schema []string

// DefaultSchema returns the fixed column set the analytics backend expects.
func DefaultSchema() Schema {
	return Schema{ColInvoiceNo, ColInvoiceDate, ColRegion, ColCategory, ColQuantity}
}

// Missing returns the schema columns absent from the record, in schema order.
func (s Schema) Missing(rec domain.Record) []string {
	var missing []string
	for _, col := range s {
		if _, ok := rec[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

package ingest

import (
	"fmt"
	"strings"

	"dataniaga/pkg/contracts/domain"
)

// ValidateStructure confirms the record set is non-empty and that every
// required schema column is present in the header. A nil return means row
// validation may proceed. A non-nil return is the single structural error
// that becomes the sole content of the report; structural failure skips
// row scanning entirely.
func ValidateStructure(records []domain.Record, schema Schema) *domain.ValidationError {
	if len(records) == 0 {
		return &domain.ValidationError{
			Field:     domain.FieldGeneral,
			RowNumber: 0,
			Value:     "",
			Reason:    "no data rows found",
		}
	}

	missing := schema.Missing(records[0])
	if len(missing) > 0 {
		return &domain.ValidationError{
			Field:     domain.FieldHeader,
			RowNumber: 1,
			Value:     strings.Join(missing, ", "),
			Reason:    fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}

package ingest

import (
	"dataniaga/pkg/contracts/domain"
)

// Aggregate merges errors, warnings and row counts into the final report.
// Pure merge: IsValid holds iff no error exists, and slices are never nil
// so JSON clients always see arrays.
func Aggregate(errs []domain.ValidationError, warnings []domain.ValidationWarning, totalRows, validRows int) domain.DataValidationResult {
	if errs == nil {
		errs = []domain.ValidationError{}
	}
	if warnings == nil {
		warnings = []domain.ValidationWarning{}
	}
	return domain.DataValidationResult{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
		Stats: domain.ValidationStats{
			TotalRows: totalRows,
			ValidRows: validRows,
		},
	}
}

// structuralResult builds the report for a structural failure: the single
// error is the sole content, and no row counts as valid.
func structuralResult(err domain.ValidationError, totalRows int) domain.DataValidationResult {
	return domain.DataValidationResult{
		IsValid:  false,
		Errors:   []domain.ValidationError{err},
		Warnings: []domain.ValidationWarning{},
		Stats: domain.ValidationStats{
			TotalRows: totalRows,
			ValidRows: 0,
		},
	}
}

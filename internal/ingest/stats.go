package ingest

import (
	"fmt"

	"dataniaga/pkg/contracts/domain"
)

// ComputeWarnings evaluates corpus-level thresholds once all rows are
// scanned. The results are purely advisory: they never flip a report to
// invalid and never block downstream consumption.
func ComputeWarnings(totalRows, distinctCategories, distinctRegions int, opts Options) []domain.ValidationWarning {
	var warnings []domain.ValidationWarning
	if totalRows < opts.MinRows {
		warnings = append(warnings, domain.ValidationWarning(fmt.Sprintf(
			"minimum recommended transaction volume not met: %d rows (recommended at least %d)",
			totalRows, opts.MinRows)))
	}
	if distinctCategories < opts.MinCategories {
		warnings = append(warnings, domain.ValidationWarning(fmt.Sprintf(
			"only %d distinct product categories found (recommended at least %d)",
			distinctCategories, opts.MinCategories)))
	}
	if distinctRegions < opts.MinRegions {
		warnings = append(warnings, domain.ValidationWarning(fmt.Sprintf(
			"only %d distinct regions found (recommended at least %d)",
			distinctRegions, opts.MinRegions)))
	}
	return warnings
}

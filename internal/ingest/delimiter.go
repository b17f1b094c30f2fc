package ingest

import (
	"strings"

	"dataniaga/pkg/contracts/domain"
)

// InferDelimiter selects the most likely field separator by counting
// occurrences of comma, semicolon and tab in the header line. Comma is
// the default: another delimiter wins only when its count strictly
// exceeds both competitors. Never fails.
func InferDelimiter(firstLine string) domain.Delimiter {
	commas := strings.Count(firstLine, ",")
	semicolons := strings.Count(firstLine, ";")
	tabs := strings.Count(firstLine, "\t")

	switch {
	case semicolons > commas && semicolons > tabs:
		return domain.DelimiterSemicolon
	case tabs > commas && tabs > semicolons:
		return domain.DelimiterTab
	default:
		return domain.DelimiterComma
	}
}

package ingest

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeText converts raw upload bytes to a string, honoring UTF-8,
// UTF-16LE and UTF-16BE byte order marks. Input without a BOM is treated
// as UTF-8. Spreadsheet exports from Windows tooling routinely carry a
// BOM, which would otherwise corrupt the first header token.
func DecodeText(content []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, content)
	if err != nil {
		return "", fmt.Errorf("failed to decode file content: %w", err)
	}
	return string(decoded), nil
}

package ingest

import (
	"strings"

	"dataniaga/pkg/contracts/domain"
)

// ErrFileTooShort is returned by ParseTable when, after discarding blank
// lines, fewer than two non-blank lines remain. A usable file needs a
// header row plus at least one data row.
type ErrFileTooShort struct{}

func (ErrFileTooShort) Error() string {
	return "file must contain a header row and at least one data row"
}

// TokenizeLine splits one line into fields for the given delimiter,
// honoring quoted segments. A double quote toggles the in-quotes state;
// a doubled quote inside a quoted span emits one literal quote; the
// delimiter only terminates a field outside quotes. Each emitted field
// is trimmed of surrounding whitespace and stripped of one leading and
// one trailing quote character.
func TokenizeLine(line string, delim domain.Delimiter) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				// Escaped quote inside a quoted span.
				cur.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == rune(delim) && !inQuotes:
			fields = append(fields, cleanField(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}
	fields = append(fields, cleanField(cur.String()))
	return fields
}

// cleanField trims whitespace and then strips one surrounding quote pair.
// The quote state machine already removes balanced quotes; this second
// pass catches headers and values where a stray quote survived.
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return s
}

// ParseTable tokenizes decoded file text into one Record per data row,
// zipping each row's values against the tokenized header. Blank lines
// are discarded before any counting, so record i corresponds to file row
// i+2 (the header is row 1). Rows with missing trailing cells get empty
// strings for the absent columns; surplus cells are dropped.
func ParseTable(text string, delim domain.Delimiter) ([]domain.Record, error) {
	lines := splitNonBlankLines(text)
	if len(lines) < 2 {
		return nil, ErrFileTooShort{}
	}

	header := TokenizeLine(lines[0], delim)
	records := make([]domain.Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := TokenizeLine(line, delim)
		rec := make(domain.Record, len(header))
		for i, col := range header {
			if i < len(values) {
				rec[col] = values[i]
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func splitNonBlankLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

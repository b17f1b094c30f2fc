package domain

// RawFile is a candidate upload before any content inspection. Name and Size
// come from the transport layer; Content is the undecoded byte payload.
type RawFile struct {
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	Content []byte `json:"-"`
}

// Delimiter is the field separator inferred from a file's header line.
type Delimiter rune

const (
	DelimiterComma     Delimiter = ','
	DelimiterSemicolon Delimiter = ';'
	DelimiterTab       Delimiter = '\t'
)

// String returns a printable name for logs and reports.
func (d Delimiter) String() string {
	switch d {
	case DelimiterSemicolon:
		return "semicolon"
	case DelimiterTab:
		return "tab"
	default:
		return "comma"
	}
}

// Record is one tokenized data row keyed by header column name. Values are
// raw cell strings with surrounding quotes stripped; missing trailing cells
// are present as empty strings.
type Record map[string]string

// Field names reserved for errors that are not tied to a data column.
const (
	FieldHeader  = "header"
	FieldGeneral = "general"
)

// ValidationError describes one rule violation in an uploaded file.
// RowNumber is 1-based and counts the header as row 1, so the first data row
// is row 2. A single row may carry several errors.
type ValidationError struct {
	Field     string `json:"field"`
	RowNumber int    `json:"row_number"`
	Value     string `json:"value"`
	Reason    string `json:"reason"`
}

// ValidationWarning is an advisory observation about data sufficiency or
// conventions. Warnings never block downstream consumption.
type ValidationWarning string

// ValidationStats summarizes row accounting for one validation run.
type ValidationStats struct {
	TotalRows int `json:"total_rows"`
	ValidRows int `json:"valid_rows"`
}

// DataValidationResult is the immutable report handed to the caller.
// IsValid holds iff Errors is empty; ValidRows never exceeds TotalRows.
type DataValidationResult struct {
	IsValid  bool                `json:"is_valid"`
	Errors   []ValidationError   `json:"errors"`
	Warnings []ValidationWarning `json:"warnings"`
	Stats    ValidationStats     `json:"stats"`
}

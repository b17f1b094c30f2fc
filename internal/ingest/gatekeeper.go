package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"dataniaga/pkg/contracts/domain"
)

// FileError is a fatal pre-parse rejection. It halts the pipeline before
// any content is decoded; the caller shows a single message.
type FileError struct {
	Code    string
	Message string
}

func (e *FileError) Error() string {
	return e.Message
}

// File-kind error codes.
const (
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeEmptyFile         = "EMPTY_FILE"
	CodeFileTooLarge      = "FILE_TOO_LARGE"
)

// acceptedExtensions are matched case-insensitively against the file name.
// Spreadsheet formats pass the gate but must be converted to delimited
// text by the spreadsheet adapter before tokenization.
var acceptedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// CheckFile inspects a candidate file's extension, byte size and
// non-emptiness before any content is read. Pure inspection; no side
// effects.
func CheckFile(f domain.RawFile, maxSize int64) error {
	ext := strings.ToLower(filepath.Ext(f.Name))
	if !acceptedExtensions[ext] {
		return &FileError{
			Code:    CodeUnsupportedFormat,
			Message: fmt.Sprintf("file must be CSV (.csv) or Excel (.xlsx, .xls), got %q", ext),
		}
	}
	if f.Size == 0 {
		return &FileError{
			Code:    CodeEmptyFile,
			Message: "file is empty",
		}
	}
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}
	if f.Size > maxSize {
		return &FileError{
			Code:    CodeFileTooLarge,
			Message: fmt.Sprintf("file size %d bytes exceeds the %d byte limit", f.Size, maxSize),
		}
	}
	return nil
}

// IsSpreadsheet reports whether the file name carries a spreadsheet
// extension that needs conversion before parsing.
func IsSpreadsheet(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".xlsx" || ext == ".xls"
}

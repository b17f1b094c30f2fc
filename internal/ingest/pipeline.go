package ingest

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"dataniaga/pkg/contracts/domain"
)

// Validator runs the full validation pipeline over decoded file text.
// A Validator is cheap and safe to share: all per-run state lives in the
// accumulator created inside Validate.
type Validator struct {
	opts   Options
	logger *slog.Logger
}

// New creates a validator with the given options.
func New(opts Options, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	if len(opts.Schema) == 0 {
		opts.Schema = DefaultSchema()
	}
	return &Validator{
		opts:   opts,
		logger: logger.With(slog.String("component", "ingest")),
	}
}

// Options returns a copy of the validator's configuration.
func (v *Validator) Options() Options {
	return v.opts
}

// Validate runs gatekeeping, decoding and ValidateText over a raw file.
// A FileError from the gatekeeper or a decode failure is returned as a
// hard error; validation outcomes always arrive in the report.
func (v *Validator) Validate(ctx context.Context, f domain.RawFile) (domain.DataValidationResult, error) {
	if err := CheckFile(f, v.opts.MaxFileSize); err != nil {
		v.logger.WarnContext(ctx, "file rejected by gatekeeper",
			slog.String("file", f.Name),
			slog.Int64("size", f.Size),
			slog.String("error", err.Error()))
		return domain.DataValidationResult{}, err
	}
	text, err := DecodeText(f.Content)
	if err != nil {
		return domain.DataValidationResult{}, err
	}
	return v.ValidateText(ctx, text), nil
}

// ValidateText executes delimiter inference, tokenization, structural
// validation, row scanning and the statistical health checks as one
// uninterrupted synchronous pass. It always runs to completion; a caller
// wishing to abort simply discards the report.
func (v *Validator) ValidateText(ctx context.Context, text string) domain.DataValidationResult {
	firstLine := headerLine(text)
	delim := InferDelimiter(firstLine)
	v.logger.DebugContext(ctx, "delimiter inferred",
		slog.String("delimiter", delim.String()))

	records, err := ParseTable(text, delim)
	if err != nil {
		var short ErrFileTooShort
		if errors.As(err, &short) {
			return structuralResult(domain.ValidationError{
				Field:     domain.FieldGeneral,
				RowNumber: 0,
				Value:     "",
				Reason:    short.Error(),
			}, 0)
		}
		// ParseTable has no other failure mode today.
		return structuralResult(domain.ValidationError{
			Field:     domain.FieldGeneral,
			RowNumber: 0,
			Value:     "",
			Reason:    err.Error(),
		}, 0)
	}

	if structErr := ValidateStructure(records, v.opts.Schema); structErr != nil {
		total := len(records)
		if structErr.Field == domain.FieldGeneral {
			total = 0
		}
		v.logger.InfoContext(ctx, "structural validation failed",
			slog.String("field", structErr.Field),
			slog.String("reason", structErr.Reason))
		return structuralResult(*structErr, total)
	}

	acc := NewAccumulator()
	var errs []domain.ValidationError
	for i, rec := range records {
		// Header is row 1, so the first data row is row 2.
		rowNumber := i + 2
		errs = append(errs, ValidateRow(rec, rowNumber, acc, v.opts)...)
	}

	warnings := append(acc.Warnings,
		ComputeWarnings(len(records), len(acc.Categories), len(acc.Regions), v.opts)...)

	v.logger.InfoContext(ctx, "validation complete",
		slog.Int("total_rows", len(records)),
		slog.Int("valid_rows", acc.ValidRows),
		slog.Int("errors", len(errs)),
		slog.Int("warnings", len(warnings)))

	return Aggregate(errs, warnings, len(records), acc.ValidRows)
}

func headerLine(text string) string {
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

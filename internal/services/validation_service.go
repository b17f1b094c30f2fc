package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"dataniaga/internal/config"
	"dataniaga/internal/infrastructure"
	"dataniaga/internal/ingest"
	"dataniaga/internal/spreadsheet"
	"dataniaga/pkg/contracts/domain"
)

// ValidationRun is the outcome of one file passing through the pipeline.
type ValidationRun struct {
	RunID    string                      `json:"run_id"`
	Filename string                      `json:"filename"`
	Report   domain.DataValidationResult `json:"report"`
	// Content is the upload exactly as received. The downstream service
	// parses by extension, so a valid file is forwarded byte for byte
	// rather than as the decoded rendition the pipeline scanned.
	Content []byte `json:"-"`
}

// ValidationService runs uploaded files through the ingestion-validation
// pipeline, converting spreadsheets to delimited text first.
type ValidationService struct {
	validator *ingest.Validator
	converter *spreadsheet.Converter
	metrics   *infrastructure.ValidationMetrics
	tracer    trace.Tracer
	logger    *slog.Logger
}

// OptionsFromConfig maps the validation section of the application
// configuration onto pipeline options. Unknown policy strings fall back
// to the defaults.
func OptionsFromConfig(cfg config.ValidationConfig) ingest.Options {
	opts := ingest.DefaultOptions()
	if len(cfg.RequiredColumns) > 0 {
		opts.Schema = ingest.Schema(cfg.RequiredColumns)
	}
	if cfg.MaxFileSize > 0 {
		opts.MaxFileSize = cfg.MaxFileSize
	}
	if cfg.MinRows > 0 {
		opts.MinRows = cfg.MinRows
	}
	if cfg.MinCategories > 0 {
		opts.MinCategories = cfg.MinCategories
	}
	if cfg.MinRegions > 0 {
		opts.MinRegions = cfg.MinRegions
	}
	switch ingest.DuplicatePolicy(cfg.DuplicatePolicy) {
	case ingest.AllowDuplicates, ingest.RejectDuplicates:
		opts.DuplicatePolicy = ingest.DuplicatePolicy(cfg.DuplicatePolicy)
	}
	switch ingest.RegionPolicy(cfg.RegionPolicy) {
	case ingest.RegionFreeText, ingest.RegionWarn, ingest.RegionReject:
		opts.RegionPolicy = ingest.RegionPolicy(cfg.RegionPolicy)
	}
	if len(cfg.Regions) > 0 {
		opts.Regions = cfg.Regions
	}
	return opts
}

// NewValidationService creates the validation service. Metrics may be
// nil, in which case instruments are simply not recorded.
func NewValidationService(cfg config.ValidationConfig, metrics *infrastructure.ValidationMetrics, logger *slog.Logger) *ValidationService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "validation_service")

	return &ValidationService{
		validator: ingest.New(OptionsFromConfig(cfg), logger),
		converter: spreadsheet.NewConverter(logger),
		metrics:   metrics,
		tracer:    otel.Tracer(infrastructure.ServiceName),
		logger:    logger,
	}
}

// Options exposes the effective pipeline options.
func (s *ValidationService) Options() ingest.Options {
	return s.validator.Options()
}

// ValidateFile runs a single uploaded file through the full pipeline:
// gatekeeper, spreadsheet conversion when needed, decoding, then the
// structural and row validators. A non-nil error means the file never
// reached content validation.
func (s *ValidationService) ValidateFile(ctx context.Context, filename string, content []byte) (*ValidationRun, error) {
	runID := uuid.New().String()
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "validation.validate_file",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("file.name", filename),
			attribute.Int("file.size", len(content)),
		))
	defer span.End()

	logger := s.logger.With("run_id", runID, "filename", filename)
	logger.InfoContext(ctx, "validation run started", "size", len(content))

	f := domain.RawFile{
		Name:    filename,
		Size:    int64(len(content)),
		Content: content,
	}

	if err := ingest.CheckFile(f, s.validator.Options().MaxFileSize); err != nil {
		s.recordRejection(ctx, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "file rejected")
		logger.WarnContext(ctx, "file rejected before parsing", "error", err)
		return nil, err
	}

	text, err := s.decode(ctx, filename, content)
	if err != nil {
		s.recordRejection(ctx, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		logger.WarnContext(ctx, "file could not be decoded", "error", err)
		return nil, err
	}

	report := s.validator.ValidateText(ctx, text)
	s.recordRun(ctx, report, time.Since(start))

	span.SetAttributes(
		attribute.Bool("validation.is_valid", report.IsValid),
		attribute.Int("validation.errors", len(report.Errors)),
		attribute.Int("validation.warnings", len(report.Warnings)),
		attribute.Int("validation.total_rows", report.Stats.TotalRows),
	)
	logger.InfoContext(ctx, "validation run completed",
		"is_valid", report.IsValid,
		"errors", len(report.Errors),
		"warnings", len(report.Warnings),
		"total_rows", report.Stats.TotalRows,
		"valid_rows", report.Stats.ValidRows,
		"duration", time.Since(start).String())

	return &ValidationRun{
		RunID:    runID,
		Filename: filename,
		Report:   report,
		Content:  content,
	}, nil
}

// decode turns the raw upload into delimited text, converting Excel
// workbooks on the way.
func (s *ValidationService) decode(ctx context.Context, filename string, content []byte) (string, error) {
	if ingest.IsSpreadsheet(filename) {
		text, err := s.converter.ToDelimitedText(content)
		if err != nil {
			return "", fmt.Errorf("convert spreadsheet: %w", err)
		}
		return text, nil
	}
	text, err := ingest.DecodeText(content)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return text, nil
}

func (s *ValidationService) recordRejection(ctx context.Context, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.FilesRejected.Add(ctx, 1)
}

func (s *ValidationService) recordRun(ctx context.Context, report domain.DataValidationResult, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.FilesValidated.Add(ctx, 1,
		metric.WithAttributes(attribute.Bool("valid", report.IsValid)))
	s.metrics.RowsScanned.Add(ctx, int64(report.Stats.TotalRows))
	s.metrics.RowErrors.Add(ctx, int64(len(report.Errors)))
	s.metrics.Warnings.Add(ctx, int64(len(report.Warnings)))
	s.metrics.ValidationDuration.Record(ctx, elapsed.Seconds())
}

// RecordForwarded bumps the forwarded-uploads counter after a validated
// file is handed to the analytics service.
func (s *ValidationService) RecordForwarded(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	s.metrics.UploadsForwarded.Add(ctx, 1)
}

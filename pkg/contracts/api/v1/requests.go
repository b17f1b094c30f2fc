// Package api contains API contract definitions for the DataNiaga
// ingestion-validation service. Version v1 represents the current stable
// API version.
package api

import (
	"dataniaga/pkg/contracts/domain"
)

// UploadRequest carries the metadata of a multipart upload after the file
// part has been read. Validated with go-playground/validator before the
// pipeline runs.
type UploadRequest struct {
	Filename string `json:"filename" validate:"required"`
	Size     int64  `json:"size" validate:"min=0"`
}

// UploadResponse mirrors the analytics backend's reply shape for a
// successfully processed upload.
type UploadResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Records int    `json:"records"`
}

// ValidationResponse wraps a validation report together with the run
// identity so clients can correlate reports with server logs.
type ValidationResponse struct {
	RunID  string                      `json:"run_id"`
	Report domain.DataValidationResult `json:"report"`
}

// HealthResponse represents the health check reply.
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

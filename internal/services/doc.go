// Package services contains the business logic layer between the HTTP
// handlers and the validation pipeline: the validation service runs
// files through the ingest pipeline with tracing and metrics, and the
// health service reports process and dependency status.
package services

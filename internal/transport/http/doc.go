// Package http contains the chi HTTP handlers for the validation
// service: file upload and validation, health probes and Prometheus
// metrics. Handlers render JSON with go-chi/render and report failures
// as RFC 7807 problem documents.
package http

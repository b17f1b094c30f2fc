// Package app wires the validation service together: configuration,
// logging, OpenTelemetry, the chi router and the HTTP server lifecycle.
package app

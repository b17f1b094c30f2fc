// Package config loads and validates the application configuration from
// environment variables (DATANIAGA_ prefix) and an optional config.yaml.
// Environment variables take precedence over the file.
package config

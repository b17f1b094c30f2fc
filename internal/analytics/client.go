// Package analytics provides the HTTP client used to forward validated
// transaction files to the downstream analytics service for forecasting
// and market basket analysis.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	apierrors "dataniaga/internal/errors"
	"dataniaga/internal/infrastructure"
)

// UploadResult is the downstream service's response to an accepted upload.
type UploadResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Records int    `json:"records"`
}

// Client talks to the analytics service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an analytics client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: infrastructure.WithComponent(logger, "analytics"),
	}
}

// Upload forwards a validated file to the analytics service as a
// multipart form and decodes its acknowledgement.
func (c *Client) Upload(ctx context.Context, filename string, content []byte) (*UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	url := c.baseURL + "/api/upload-data"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if traceID := infrastructure.GetTraceID(ctx); traceID != "" {
		req.Header.Set("X-Request-ID", traceID)
	}

	c.logger.InfoContext(ctx, "forwarding file to analytics service",
		"filename", filename,
		"size", len(content),
		"url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "analytics service unreachable", "error", err)
		return nil, apierrors.AnalyticsError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.ErrorContext(ctx, "analytics service rejected upload",
			"status", resp.StatusCode,
			"body", string(respBody))
		return nil, apierrors.AnalyticsError(
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var result UploadResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	c.logger.InfoContext(ctx, "analytics service accepted upload",
		"records", result.Records)
	return &result, nil
}

// Ping checks whether the analytics service is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apierrors.AnalyticsError(err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode != http.StatusOK {
		return apierrors.AnalyticsError(
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	return nil
}

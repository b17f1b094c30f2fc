package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

// AnalyticsPinger is the subset of the analytics client the health
// service needs.
type AnalyticsPinger interface {
	Ping(ctx context.Context) error
}

// HealthService reports service health and runtime information.
type HealthService struct {
	version   string
	analytics AnalyticsPinger
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response.
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents an individual dependency's health.
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a health service. The analytics pinger is
// optional; pass nil when forwarding is disabled.
func NewHealthService(version string, analytics AnalyticsPinger, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		analytics: analytics,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck returns overall health status.
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck returns readiness status including dependency checks.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  make(map[string]interface{}),
	}

	status.Services["analytics"] = hs.checkAnalyticsHealth(ctx)

	for _, service := range status.Services {
		if sh, ok := service.(ServiceHealth); ok && sh.Status != "ready" {
			status.Status = "not_ready"
			break
		}
	}
	return status
}

// LivenessCheck returns liveness status with runtime details.
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version and build information.
func (hs *HealthService) Version() map[string]interface{} {
	return map[string]interface{}{
		"version":      hs.version,
		"go_version":   runtime.Version(),
		"os":           runtime.GOOS,
		"arch":         runtime.GOARCH,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}
}

func (hs *HealthService) checkAnalyticsHealth(ctx context.Context) ServiceHealth {
	if hs.analytics == nil {
		return ServiceHealth{
			Status:  "ready",
			Message: "analytics forwarding disabled",
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := hs.analytics.Ping(pingCtx); err != nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("analytics service unreachable: %v", err),
		}
	}
	return ServiceHealth{
		Status:  "ready",
		Message: "analytics service is healthy",
	}
}

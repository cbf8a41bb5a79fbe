package services

import (
	"context"
	"time"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// HealthStatus is the health endpoint response body.
type HealthStatus struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthService reports process liveness.
type HealthService struct {
	startedAt time.Time
}

// NewHealthService creates a health service anchored at the current time.
func NewHealthService() *HealthService {
	return &HealthService{startedAt: time.Now()}
}

// HealthCheck returns the current health snapshot.
func (s *HealthService) HealthCheck(_ context.Context) HealthStatus {
	return HealthStatus{
		Status:    "healthy",
		Version:   Version,
		Uptime:    time.Since(s.startedAt).Round(time.Second).String(),
		Timestamp: time.Now(),
	}
}

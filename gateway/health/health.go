package health

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/tair/storefront/gateway/config"
	"github.com/tair/storefront/pkg/logger"
)

// InstanceHealth represents the health of a single service instance
type InstanceHealth struct {
	URL     string        `json:"url"`
	Status  string        `json:"status"` // healthy, unhealthy
	Latency time.Duration `json:"latency_ms"`
	Error   string        `json:"error,omitempty"`
}

// ServiceHealth represents the health status of a service
type ServiceHealth struct {
	Name      string           `json:"name"`
	Status    string           `json:"status"` // healthy, degraded, unhealthy
	Instances []InstanceHealth `json:"instances"`
	Timestamp time.Time        `json:"timestamp"`
}

// GatewayHealth represents the overall gateway health
type GatewayHealth struct {
	Gateway  string                   `json:"gateway"`
	Status   string                   `json:"status"` // healthy, degraded, unhealthy
	Services map[string]ServiceHealth `json:"services"`
	Uptime   time.Duration            `json:"uptime_seconds"`
}

// HealthChecker checks health of downstream services
type HealthChecker struct {
	config    *config.GatewayConfig
	client    *http.Client
	startTime time.Time
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(cfg *config.GatewayConfig) *HealthChecker {
	return &HealthChecker{
		config: cfg,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		startTime: time.Now(),
	}
}

// CheckService probes every instance of a service. A service is healthy
// when all instances answer, degraded when only some do.
func (h *HealthChecker) CheckService(ctx context.Context, name string, svc config.ServiceConfig) ServiceHealth {
	result := ServiceHealth{
		Name:      name,
		Timestamp: time.Now(),
	}

	healthyCount := 0
	for _, instanceURL := range svc.Instances {
		instance := h.checkInstance(ctx, instanceURL, svc.HealthCheck)
		if instance.Status == "healthy" {
			healthyCount++
		}
		result.Instances = append(result.Instances, instance)
	}

	switch {
	case healthyCount == len(svc.Instances) && healthyCount > 0:
		result.Status = "healthy"
	case healthyCount > 0:
		result.Status = "degraded"
	default:
		result.Status = "unhealthy"
	}

	return result
}

// checkInstance probes a single instance's health endpoint
func (h *HealthChecker) checkInstance(ctx context.Context, instanceURL, healthPath string) InstanceHealth {
	start := time.Now()
	healthURL := strings.TrimSuffix(instanceURL, "/") + healthPath

	result := InstanceHealth{URL: instanceURL}

	req, err := http.NewRequestWithContext(ctx, "GET", healthURL, nil)
	if err != nil {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("Failed to create request: %v", err)
		result.Latency = time.Since(start)
		return result
	}

	resp, err := h.client.Do(req)
	if err != nil {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("Failed to reach instance: %v", err)
		result.Latency = time.Since(start)
		return result
	}
	defer resp.Body.Close()

	result.Latency = time.Since(start)

	if resp.StatusCode == http.StatusOK {
		result.Status = "healthy"
	} else {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("Unexpected status code: %d", resp.StatusCode)
	}

	return result
}

// CheckAllServices checks health of all downstream services
func (h *HealthChecker) CheckAllServices(ctx context.Context) GatewayHealth {
	services := make(map[string]ServiceHealth)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for name, svc := range h.config.Services {
		wg.Add(1)
		go func(n string, s config.ServiceConfig) {
			defer wg.Done()
			svcHealth := h.CheckService(ctx, n, s)

			mu.Lock()
			services[n] = svcHealth
			mu.Unlock()

			if svcHealth.Status == "healthy" {
				logger.Logger.Debug().
					Str("service", n).
					Str("status", svcHealth.Status).
					Msg("Service health check")
			} else {
				logger.Logger.Warn().
					Str("service", n).
					Str("status", svcHealth.Status).
					Msg("Service health check failed")
			}
		}(name, svc)
	}

	wg.Wait()

	return GatewayHealth{
		Gateway:  "storefront-gateway",
		Status:   h.determineOverallStatus(services),
		Services: services,
		Uptime:   time.Since(h.startTime),
	}
}

// determineOverallStatus determines the overall health status
func (h *HealthChecker) determineOverallStatus(services map[string]ServiceHealth) string {
	healthyCount := 0
	totalCount := len(services)

	for _, svc := range services {
		if svc.Status == "healthy" {
			healthyCount++
		}
	}

	if healthyCount == totalCount {
		return "healthy"
	} else if healthyCount > 0 {
		return "degraded"
	}
	return "unhealthy"
}

// QuickCheck performs a quick health check (just gateway itself)
func (h *HealthChecker) QuickCheck() map[string]interface{} {
	return map[string]interface{}{
		"status":    "healthy",
		"gateway":   "storefront-gateway",
		"uptime":    time.Since(h.startTime).Seconds(),
		"timestamp": time.Now(),
	}
}

package redis

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// HealthStatus is the outcome of a check. Redis is either reachable or not,
// disabled redis is reported by the caller.
type HealthStatus string

const (
	StatusUp   HealthStatus = "UP"
	StatusDown HealthStatus = "DOWN"
)

// RedisHealthCheck represents the health check response for Redis
type RedisHealthCheck struct {
	Status     HealthStatus      `json:"status"`
	Details    map[string]string `json:"details"`
	LockStatus map[string]bool   `json:"lock_status,omitempty"`
}

// HealthChecker provides Redis health checking functionality
type HealthChecker struct {
	client    *Client
	timeout   time.Duration
	mu        sync.Mutex
	lastCheck time.Time
	lastError string
}

// NewHealthChecker creates a new Redis health checker
func NewHealthChecker(client *Client) *HealthChecker {
	return &HealthChecker{
		client:  client,
		timeout: 2 * time.Second,
	}
}

// HealthCheck pings Redis and round-trips a marker key
func (h *HealthChecker) HealthCheck(ctx context.Context) RedisHealthCheck {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	pingOK := h.testPing(ctx)
	opsOK := pingOK && h.testBasicOperations(ctx)

	status := StatusDown
	if pingOK && opsOK {
		status = StatusUp
		h.lastError = ""
	}
	h.lastCheck = time.Now()

	config := h.client.GetConfig()
	details := map[string]string{
		"host":                  config.Host,
		"port":                  strconv.Itoa(config.Port),
		"database":              strconv.Itoa(config.Database),
		"ping_successful":       strconv.FormatBool(pingOK),
		"operations_successful": strconv.FormatBool(opsOK),
		"last_check":            h.lastCheck.Format(time.RFC3339),
	}
	if h.lastError != "" {
		details["last_error"] = h.lastError
	}

	return RedisHealthCheck{
		Status:     status,
		Details:    details,
		LockStatus: GetLockStatus(),
	}
}

func (h *HealthChecker) testPing(ctx context.Context) bool {
	if err := h.client.Ping(ctx); err != nil {
		h.lastError = fmt.Sprintf("ping failed: %v", err)
		return false
	}
	return true
}

func (h *HealthChecker) testBasicOperations(ctx context.Context) bool {
	const testKey = "health_check_test"

	if err := h.client.Set(ctx, testKey, "ok", time.Minute); err != nil {
		h.lastError = fmt.Sprintf("set operation failed: %v", err)
		return false
	}
	value, err := h.client.Get(ctx, testKey)
	if err != nil || value != "ok" {
		h.lastError = fmt.Sprintf("get operation failed: value=%q err=%v", value, err)
		return false
	}
	if err := h.client.Delete(ctx, testKey); err != nil {
		h.lastError = fmt.Sprintf("delete operation failed: %v", err)
		return false
	}
	return true
}

package health

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"netif-console/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// HealthService reports configuration store reachability and audit statistics
type HealthService struct {
	mu                sync.RWMutex
	clock             interfaces.Clock
	logger            *logrus.Logger
	startTime         time.Time
	storeHealthy      bool
	storeError        error
	storeBackend      string
	componentID       string
	auditCycles       int64
	lastAudit         time.Time
	auditedInterfaces int
	invalidInterfaces []string
}

// HealthStatus represents health check status
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResponse is the health check response struct
type HealthResponse struct {
	Status     HealthStatus           `json:"status"`
	Timestamp  string                 `json:"timestamp"`
	LastCheck  string                 `json:"last_check"`
	Components map[string]interface{} `json:"components"`
	Statistics map[string]interface{} `json:"statistics"`
}

// NewHealthService creates a new HealthService
func NewHealthService(clock interfaces.Clock, logger *logrus.Logger) *HealthService {
	return &HealthService{
		clock:             clock,
		logger:            logger,
		startTime:         clock.Now(),
		storeHealthy:      false,
		invalidInterfaces: []string{},
	}
}

// SetStore records which configuration store backend and component are served
func (h *HealthService) SetStore(backend, componentID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.storeBackend = backend
	h.componentID = componentID
}

// UpdateStoreHealth updates the configuration store health status
func (h *HealthService) UpdateStoreHealth(healthy bool, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.storeHealthy = healthy
	h.storeError = err
}

// RecordAudit stores the outcome of one audit cycle
func (h *HealthService) RecordAudit(total int, invalid []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.auditCycles++
	h.lastAudit = h.clock.Now()
	h.auditedInterfaces = total
	h.invalidInterfaces = append([]string{}, invalid...)
}

// ServeHTTP handles the HTTP health check endpoint
func (h *HealthService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := h.buildHealthResponse()

	// Set HTTP status code based on health status
	statusCode := http.StatusOK
	if response.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.WithError(err).Error("failed to encode health check response")
	}
}

// buildHealthResponse constructs the health check response
func (h *HealthService) buildHealthResponse() HealthResponse {
	h.mu.RLock()
	defer h.mu.RUnlock()

	now := h.clock.Now()

	components := map[string]interface{}{
		"store": map[string]interface{}{
			"healthy":      h.storeHealthy,
			"backend":      h.storeBackend,
			"component_id": h.componentID,
			"error":        h.formatError(h.storeError),
		},
	}

	lastAudit := ""
	if !h.lastAudit.IsZero() {
		lastAudit = h.lastAudit.Format(time.RFC3339)
	}

	statistics := map[string]interface{}{
		"audit_cycles":       h.auditCycles,
		"audited_interfaces": h.auditedInterfaces,
		"invalid_interfaces": h.invalidInterfaces,
		"uptime":             h.formatUptime(now.Sub(h.startTime)),
	}

	return HealthResponse{
		Status:     h.determineOverallStatus(),
		Timestamp:  now.Format(time.RFC3339),
		LastCheck:  lastAudit,
		Components: components,
		Statistics: statistics,
	}
}

// determineOverallStatus determines the overall health status
func (h *HealthService) determineOverallStatus() HealthStatus {
	// An unreachable store makes the agent useless
	if !h.storeHealthy {
		return StatusUnhealthy
	}

	// Stored configurations that violate their own state rules degrade the node
	if len(h.invalidInterfaces) > 0 {
		return StatusDegraded
	}

	return StatusHealthy
}

// formatError formats an error to string
func (h *HealthService) formatError(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// formatUptime formats uptime duration to human-readable format
func (h *HealthService) formatUptime(duration time.Duration) string {
	days := int(duration.Hours()) / 24
	hours := int(duration.Hours()) % 24
	minutes := int(duration.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd%dh%dm", days, hours, minutes)
	} else if hours > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

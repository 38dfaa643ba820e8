package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// 설정 조회/변경 관련 메트릭
	ConfigReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netif_config_reads_total",
			Help: "Total number of interface configuration reads",
		},
		[]string{"status"}, // success, failed
	)

	ConfigWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netif_config_writes_total",
			Help: "Total number of interface configuration writes",
		},
		[]string{"status"}, // success, rejected, failed
	)

	// 필드 검증 실패 메트릭
	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netif_validation_failures_total",
			Help: "Total number of field validation failures",
		},
		[]string{"field", "code"},
	)

	RegistryAppends = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "netif_registry_appends_total",
			Help: "Total number of interfaces appended to net.interfaces on write",
		},
	)

	// 설정 서비스 호출 메트릭
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netif_store_operation_duration_seconds",
			Help:    "Time spent in configuration service calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "backend"}, // fetch, apply
	)

	StoreConnectionStatus = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "netif_store_connection_status",
			Help: "Configuration store status (1 = reachable, 0 = unreachable)",
		},
	)

	// 감사(audit) 관련 메트릭
	AuditCycleCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "netif_audit_cycles_total",
			Help: "Total number of audit cycles executed",
		},
	)

	AuditCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netif_audit_cycle_duration_seconds",
			Help:    "Time spent in each audit cycle",
			Buckets: prometheus.DefBuckets,
		},
	)

	InvalidStoredInterfaces = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "netif_invalid_stored_interfaces",
			Help: "Number of registered interfaces whose stored configuration is invalid for its own state",
		},
	)

	PollingBackoffLevel = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "netif_polling_backoff_level",
			Help: "Current backoff level (0 = no backoff)",
		},
	)

	// 에러 메트릭
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netif_errors_total",
			Help: "Total number of errors encountered",
		},
		[]string{"error_type"}, // validation, service_unavailable, system
	)

	// 시스템 정보
	AgentInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "netif_agent_info",
			Help: "Agent information",
		},
		[]string{"version", "store_backend", "node_name"},
	)
)

// RecordConfigRead는 설정 조회 결과를 기록합니다
func RecordConfigRead(status string) {
	ConfigReads.WithLabelValues(status).Inc()
}

// RecordConfigWrite는 설정 변경 결과를 기록합니다
func RecordConfigWrite(status string) {
	ConfigWrites.WithLabelValues(status).Inc()
}

// RecordValidationFailure는 필드 검증 실패를 기록합니다
func RecordValidationFailure(field, code string) {
	ValidationFailures.WithLabelValues(field, code).Inc()
}

// RecordRegistryAppend는 레지스트리 자동 추가를 기록합니다
func RecordRegistryAppend() {
	RegistryAppends.Inc()
}

// RecordStoreOperation은 설정 서비스 호출 시간을 기록합니다
func RecordStoreOperation(operation, backend string, duration float64) {
	StoreOperationDuration.WithLabelValues(operation, backend).Observe(duration)
}

// RecordAuditCycle은 감사 사이클 메트릭을 기록합니다
func RecordAuditCycle(duration float64, invalid int) {
	AuditCycleCount.Inc()
	AuditCycleDuration.Observe(duration)
	InvalidStoredInterfaces.Set(float64(invalid))
}

// RecordError는 에러 발생을 기록합니다
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// SetBackoffLevel은 현재 백오프 레벨을 설정합니다
func SetBackoffLevel(level float64) {
	PollingBackoffLevel.Set(level)
}

// SetStoreConnectionStatus는 설정 저장소 연결 상태를 설정합니다
func SetStoreConnectionStatus(connected bool) {
	if connected {
		StoreConnectionStatus.Set(1)
	} else {
		StoreConnectionStatus.Set(0)
	}
}

// SetAgentInfo는 에이전트 정보를 설정합니다
func SetAgentInfo(version, storeBackend, nodeName string) {
	AgentInfo.WithLabelValues(version, storeBackend, nodeName).Set(1)
}

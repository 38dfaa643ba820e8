package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"netif-console/internal/application/polling"
	"netif-console/internal/application/usecases"
	"netif-console/internal/infrastructure/config"
	"netif-console/internal/infrastructure/container"
	"netif-console/internal/infrastructure/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const agentVersion = "1.0.0"

func main() {
	// 로거 초기화
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// LOG_LEVEL 환경 변수 설정
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr != "" {
		logLevel, err := logrus.ParseLevel(logLevelStr)
		if err != nil {
			logger.WithError(err).Warnf("Unknown LOG_LEVEL value: %s. Using default Info level.", logLevelStr)
			logger.SetLevel(logrus.InfoLevel)
		} else {
			logger.SetLevel(logLevel)
		}
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	// 설정 로드
	configLoader := config.NewEnvironmentConfigLoader()
	cfg, err := configLoader.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// 의존성 주입 컨테이너 생성
	appContainer, err := container.NewContainer(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create dependency injection container")
	}
	defer func() {
		if err := appContainer.Close(); err != nil {
			logger.WithError(err).Error("Failed to cleanup container")
		}
	}()

	app := NewApplication(appContainer, logger)
	if err := app.Run(); err != nil {
		logger.WithError(err).Fatal("Failed to run application")
	}
}

// Application은 감사 에이전트입니다
type Application struct {
	container    *container.Container
	logger       *logrus.Logger
	auditUseCase *usecases.AuditInterfacesUseCase
	healthServer *http.Server
}

// NewApplication은 새로운 Application을 생성합니다
func NewApplication(container *container.Container, logger *logrus.Logger) *Application {
	return &Application{
		container:    container,
		logger:       logger,
		auditUseCase: container.GetAuditInterfacesUseCase(),
	}
}

// Run은 헬스 서버를 띄우고 종료 신호가 올 때까지 감사 루프를 실행합니다
func (a *Application) Run() error {
	cfg := a.container.GetConfig()

	hostname, _ := os.Hostname()
	metrics.SetAgentInfo(agentVersion, cfg.Store.Backend, hostname)

	a.startHealthServer(cfg.Health.Port)
	defer a.shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 시작 시 저장소 연결 확인 (실패해도 감사 루프가 백오프하며 재시도)
	if err := a.container.GetConfigurationService().Ping(ctx); err != nil {
		a.logger.WithError(err).Warn("Configuration store is not reachable at startup")
		a.container.GetHealthService().UpdateStoreHealth(false, err)
		metrics.SetStoreConnectionStatus(false)
	}

	var strategy polling.Strategy
	if cfg.Agent.Backoff.Enabled {
		strategy = polling.NewExponentialBackoffStrategy(
			cfg.Agent.PollInterval,
			cfg.Agent.Backoff.MaxInterval,
			cfg.Agent.Backoff.Multiplier,
			a.logger,
		)
		a.logger.WithFields(logrus.Fields{
			"base_interval": cfg.Agent.PollInterval,
			"max_interval":  cfg.Agent.Backoff.MaxInterval,
			"multiplier":    cfg.Agent.Backoff.Multiplier,
		}).Info("Exponential backoff polling enabled")
	} else {
		strategy = polling.NewFixedIntervalStrategy(cfg.Agent.PollInterval)
		a.logger.WithField("interval", cfg.Agent.PollInterval).Info("Fixed interval polling enabled")
	}

	a.logger.WithFields(logrus.Fields{
		"store_backend": cfg.Store.Backend,
		"component_id":  cfg.Store.ComponentID,
	}).Info("netif-console agent started")

	err := polling.NewPollingController(strategy, a.logger).Start(ctx, a.audit)
	a.logger.Info("Received shutdown signal")
	return err
}

// audit는 감사 한 주기를 실행하고 헬스 상태를 갱신합니다
func (a *Application) audit(ctx context.Context) error {
	healthService := a.container.GetHealthService()

	output, err := a.auditUseCase.Execute(ctx)
	if err != nil {
		healthService.UpdateStoreHealth(false, err)
		metrics.SetStoreConnectionStatus(false)
		return err
	}
	healthService.UpdateStoreHealth(true, nil)
	metrics.SetStoreConnectionStatus(true)

	invalid := make([]string, 0, output.InvalidCount)
	for _, result := range output.Results {
		if !result.Valid {
			invalid = append(invalid, result.Name)
		}
	}
	healthService.RecordAudit(output.TotalCount, invalid)

	a.logger.WithFields(logrus.Fields{
		"total":   output.TotalCount,
		"invalid": output.InvalidCount,
	}).Debug("Audit cycle completed")

	return nil
}

// startHealthServer는 헬스체크 서버를 시작합니다
func (a *Application) startHealthServer(port string) {
	mux := http.NewServeMux()
	mux.Handle("/", a.container.GetHealthService())
	mux.Handle("/metrics", promhttp.Handler())

	a.healthServer = &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.logger.WithField("port", port).Info("Health check server started (with /metrics)")
		if err := a.healthServer.ListenAndServe(); err != http.ErrServerClosed {
			a.logger.WithError(err).Error("Health check server failed")
		}
	}()
}

// shutdown은 헬스체크 서버를 정리합니다
func (a *Application) shutdown() {
	if a.healthServer == nil {
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := a.healthServer.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Error("Failed to shutdown health check server")
	}
}

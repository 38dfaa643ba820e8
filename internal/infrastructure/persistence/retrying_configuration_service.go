package persistence

import (
	"context"
	"time"

	"netif-console/internal/domain/entities"
	"netif-console/internal/domain/errors"
	"netif-console/internal/domain/interfaces"
	"netif-console/internal/infrastructure/metrics"
	"netif-console/pkg/utils"

	"github.com/sirupsen/logrus"
)

// RetryingConfigurationService는 일시적인 저장소 실패를 지수 백오프로 재시도하고
// 호출 시간과 연결 상태를 메트릭으로 기록하는 ConfigurationService 데코레이터입니다.
// 검증 에러처럼 재시도해도 결과가 같은 에러는 즉시 반환합니다.
type RetryingConfigurationService struct {
	next    interfaces.ConfigurationService
	retry   utils.RetryConfig
	backend string
	logger  *logrus.Logger
}

// NewRetryingConfigurationService는 새로운 RetryingConfigurationService를 생성합니다
func NewRetryingConfigurationService(
	next interfaces.ConfigurationService,
	retry utils.RetryConfig,
	backend string,
	logger *logrus.Logger,
) *RetryingConfigurationService {
	retry.Retryable = isRetryable
	return &RetryingConfigurationService{
		next:    next,
		retry:   retry,
		backend: backend,
		logger:  logger,
	}
}

// FetchConfiguration은 재시도와 함께 스냅샷을 조회합니다
func (s *RetryingConfigurationService) FetchConfiguration(ctx context.Context, componentID string) (entities.Properties, error) {
	var props entities.Properties
	err := s.do(ctx, "fetch", componentID, func(ctx context.Context) error {
		var err error
		props, err = s.next.FetchConfiguration(ctx, componentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return props, nil
}

// ApplyConfiguration은 재시도와 함께 갱신 맵을 반영합니다.
// 갱신 맵은 전체 값을 담고 있으므로 같은 맵을 다시 적용해도 결과가 같습니다.
func (s *RetryingConfigurationService) ApplyConfiguration(ctx context.Context, componentID string, properties entities.Properties) error {
	return s.do(ctx, "apply", componentID, func(ctx context.Context) error {
		return s.next.ApplyConfiguration(ctx, componentID, properties)
	})
}

// Ping은 내부 구현이 HealthChecker를 제공하면 위임합니다
func (s *RetryingConfigurationService) Ping(ctx context.Context) error {
	checker, ok := s.next.(interfaces.HealthChecker)
	if !ok {
		return nil
	}
	err := checker.Ping(ctx)
	metrics.SetStoreConnectionStatus(err == nil)
	return err
}

func (s *RetryingConfigurationService) do(ctx context.Context, operation, componentID string, call func(context.Context) error) error {
	err := utils.RetryWithBackoff(ctx, s.retry, func(attempt int) error {
		start := time.Now()
		err := call(ctx)
		metrics.RecordStoreOperation(operation, s.backend, time.Since(start).Seconds())

		if err != nil && attempt < s.retry.MaxAttempts && isRetryable(err) {
			s.logger.WithFields(logrus.Fields{
				"operation":    operation,
				"component_id": componentID,
				"attempt":      attempt,
				"max_attempts": s.retry.MaxAttempts,
			}).WithError(err).Warn("설정 저장소 호출 실패 - 재시도 예정")
		}
		return err
	})

	if err != nil {
		if isRetryable(err) {
			metrics.SetStoreConnectionStatus(false)
		}
		if _, ok := err.(*errors.DomainError); !ok && ctx.Err() == nil {
			return errors.NewServiceUnavailableError("설정 저장소 호출 실패", err)
		}
		return err
	}

	metrics.SetStoreConnectionStatus(true)
	return nil
}

// isRetryable은 저장소 장애로 볼 수 있는 에러만 재시도 대상으로 판단합니다
func isRetryable(err error) bool {
	switch {
	case errors.IsValidationError(err),
		errors.IsInvalidConfigurationError(err),
		errors.IsNotFoundError(err),
		errors.IsSystemError(err):
		return false
	}
	return err != context.Canceled && err != context.DeadlineExceeded
}

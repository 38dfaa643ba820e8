package polling

import (
	"context"
	"math"
	"time"

	"netif-console/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// Strategy는 감사 주기 전략 인터페이스입니다
type Strategy interface {
	// NextInterval은 직전 감사 결과에 따라 다음 감사까지의 대기 시간을 반환합니다
	NextInterval(success bool) time.Duration
	// Reset은 전략을 초기 상태로 리셋합니다
	Reset()
}

// FixedIntervalStrategy는 결과와 관계없이 같은 간격으로 감사합니다
type FixedIntervalStrategy struct {
	interval time.Duration
}

// NewFixedIntervalStrategy는 고정 간격 전략을 생성합니다
func NewFixedIntervalStrategy(interval time.Duration) *FixedIntervalStrategy {
	return &FixedIntervalStrategy{interval: interval}
}

// NextInterval은 항상 고정 간격을 반환합니다
func (s *FixedIntervalStrategy) NextInterval(bool) time.Duration {
	return s.interval
}

// Reset은 아무것도 하지 않습니다
func (s *FixedIntervalStrategy) Reset() {}

// ExponentialBackoffStrategy는 저장소 장애 시 감사 간격을 지수적으로 늘립니다
type ExponentialBackoffStrategy struct {
	baseInterval   time.Duration
	maxInterval    time.Duration
	multiplier     float64
	currentBackoff int
	logger         *logrus.Logger
}

// NewExponentialBackoffStrategy는 새로운 지수 백오프 전략을 생성합니다
func NewExponentialBackoffStrategy(
	baseInterval time.Duration,
	maxInterval time.Duration,
	multiplier float64,
	logger *logrus.Logger,
) *ExponentialBackoffStrategy {
	if multiplier <= 1 {
		multiplier = 2.0
	}
	if maxInterval < baseInterval {
		maxInterval = baseInterval
	}

	return &ExponentialBackoffStrategy{
		baseInterval: baseInterval,
		maxInterval:  maxInterval,
		multiplier:   multiplier,
		logger:       logger,
	}
}

// NextInterval은 다음 감사까지의 대기 시간을 계산합니다
func (s *ExponentialBackoffStrategy) NextInterval(success bool) time.Duration {
	if success {
		if s.currentBackoff > 0 {
			s.logger.WithField("failures", s.currentBackoff).Info("설정 저장소 복구, 기본 감사 주기로 복귀")
			s.Reset()
		}
		return s.baseInterval
	}

	s.currentBackoff++
	metrics.SetBackoffLevel(float64(s.currentBackoff))

	// 첫 실패는 기본 간격, 이후 multiplier 배씩 증가
	backoff := float64(s.baseInterval) * math.Pow(s.multiplier, float64(s.currentBackoff-1))
	next := s.maxInterval
	if backoff < float64(s.maxInterval) {
		next = time.Duration(backoff)
	}

	s.logger.WithFields(logrus.Fields{
		"backoff_count": s.currentBackoff,
		"next_interval": next,
		"max_interval":  s.maxInterval,
	}).Debug("감사 백오프 계산")

	return next
}

// Level은 현재 연속 실패 횟수를 반환합니다
func (s *ExponentialBackoffStrategy) Level() int {
	return s.currentBackoff
}

// Reset은 백오프 카운터를 리셋합니다
func (s *ExponentialBackoffStrategy) Reset() {
	s.currentBackoff = 0
	metrics.SetBackoffLevel(0)
}

// PollingController는 감사 작업을 주기적으로 실행합니다
type PollingController struct {
	strategy Strategy
	logger   *logrus.Logger
}

// NewPollingController는 새로운 폴링 컨트롤러를 생성합니다
func NewPollingController(strategy Strategy, logger *logrus.Logger) *PollingController {
	return &PollingController{
		strategy: strategy,
		logger:   logger,
	}
}

// Start는 작업을 즉시 한 번 실행한 뒤 전략이 정한 간격으로 반복합니다.
// ctx가 취소되면 nil을 반환합니다.
func (c *PollingController) Start(ctx context.Context, task func(context.Context) error) error {
	timer := time.NewTimer(c.runOnce(ctx, task))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Debug("감사 루프 종료")
			return nil
		case <-timer.C:
			timer.Reset(c.runOnce(ctx, task))
		}
	}
}

func (c *PollingController) runOnce(ctx context.Context, task func(context.Context) error) time.Duration {
	err := task(ctx)
	if err != nil && ctx.Err() == nil {
		c.logger.WithError(err).Error("감사 작업 실패")
	}
	return c.strategy.NextInterval(err == nil)
}

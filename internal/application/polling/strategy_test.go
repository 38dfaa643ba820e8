package polling

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestFixedIntervalStrategy(t *testing.T) {
	strategy := NewFixedIntervalStrategy(30 * time.Second)

	assert.Equal(t, 30*time.Second, strategy.NextInterval(true))
	assert.Equal(t, 30*time.Second, strategy.NextInterval(false))
	strategy.Reset()
	assert.Equal(t, 30*time.Second, strategy.NextInterval(false))
}

func TestExponentialBackoffStrategy(t *testing.T) {
	logger := newTestLogger()

	t.Run("성공 시 기본 간격 반환", func(t *testing.T) {
		strategy := NewExponentialBackoffStrategy(30*time.Second, 300*time.Second, 2.0, logger)

		assert.Equal(t, 30*time.Second, strategy.NextInterval(true))
		assert.Equal(t, 30*time.Second, strategy.NextInterval(true))
		assert.Equal(t, 0, strategy.Level())
	})

	t.Run("실패 시 지수 백오프 후 최대값 유지", func(t *testing.T) {
		strategy := NewExponentialBackoffStrategy(30*time.Second, 300*time.Second, 2.0, logger)

		expected := []time.Duration{
			30 * time.Second,
			60 * time.Second,
			120 * time.Second,
			240 * time.Second,
			300 * time.Second,
			300 * time.Second,
		}
		for i, want := range expected {
			assert.Equal(t, want, strategy.NextInterval(false), "failure %d", i+1)
		}
		assert.Equal(t, 6, strategy.Level())
	})

	t.Run("실패 후 성공 시 리셋", func(t *testing.T) {
		strategy := NewExponentialBackoffStrategy(30*time.Second, 300*time.Second, 2.0, logger)

		strategy.NextInterval(false)
		strategy.NextInterval(false)
		strategy.NextInterval(false)

		assert.Equal(t, 30*time.Second, strategy.NextInterval(true))
		assert.Equal(t, 0, strategy.Level())
		assert.Equal(t, 30*time.Second, strategy.NextInterval(false))
	})

	t.Run("1 이하 계수는 2배로 보정", func(t *testing.T) {
		strategy := NewExponentialBackoffStrategy(10*time.Second, 100*time.Second, 0.5, logger)

		strategy.NextInterval(false)
		assert.Equal(t, 20*time.Second, strategy.NextInterval(false))
	})

	t.Run("최대 간격이 기본보다 짧으면 기본 간격 사용", func(t *testing.T) {
		strategy := NewExponentialBackoffStrategy(10*time.Second, time.Second, 2.0, logger)

		strategy.NextInterval(false)
		assert.Equal(t, 10*time.Second, strategy.NextInterval(false))
	})
}

func TestPollingController_Start(t *testing.T) {
	t.Run("시작 즉시 실행하고 취소 시 nil 반환", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		controller := NewPollingController(NewFixedIntervalStrategy(time.Hour), newTestLogger())

		var runs int32
		done := make(chan error, 1)
		go func() {
			done <- controller.Start(ctx, func(context.Context) error {
				atomic.AddInt32(&runs, 1)
				cancel()
				return nil
			})
		}()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("polling controller did not stop")
		}
		assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
	})

	t.Run("실패해도 다음 주기에 계속 실행", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		controller := NewPollingController(NewFixedIntervalStrategy(time.Millisecond), newTestLogger())

		var runs int32
		done := make(chan error, 1)
		go func() {
			done <- controller.Start(ctx, func(context.Context) error {
				if atomic.AddInt32(&runs, 1) >= 3 {
					cancel()
				}
				return errors.New("store unavailable")
			})
		}()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("polling controller did not stop")
		}
		assert.GreaterOrEqual(t, atomic.LoadInt32(&runs), int32(3))
	})
}

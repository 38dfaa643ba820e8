package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_Error(t *testing.T) {
	t.Run("원인 에러 포함", func(t *testing.T) {
		err := NewServiceUnavailableError("설정 조회 실패", fmt.Errorf("connection refused"))
		assert.Equal(t, "[SERVICE_UNAVAILABLE] 설정 조회 실패: connection refused", err.Error())
	})

	t.Run("원인 에러 없음", func(t *testing.T) {
		err := NewNotFoundError("인터페이스 없음")
		assert.Equal(t, "[NOT_FOUND] 인터페이스 없음", err.Error())
	})
}

func TestDomainError_TypeHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"validation", NewValidationError("x", nil), IsValidationError},
		{"invalid configuration", NewInvalidConfigurationError("x", nil), IsInvalidConfigurationError},
		{"not found", NewNotFoundError("x"), IsNotFoundError},
		{"service unavailable", NewServiceUnavailableError("x", nil), IsServiceUnavailableError},
		{"malformed value", NewMalformedValueError("x", nil), IsMalformedValueError},
		{"system", NewSystemError("x", nil), IsSystemError},
		{"timeout", NewTimeoutError("x"), IsTimeoutError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			wrapped := fmt.Errorf("wrapped: %w", tt.err)
			assert.True(t, tt.check(wrapped))
		})
	}

	assert.False(t, IsServiceUnavailableError(NewSystemError("x", nil)))
	assert.False(t, IsValidationError(errors.New("plain")))
}

func TestDomainError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := NewServiceUnavailableError("설정 조회 실패", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, &DomainError{Type: ErrorTypeServiceUnavailable})
	assert.NotErrorIs(t, err, &DomainError{Type: ErrorTypeSystem})
}

func TestDetailOf(t *testing.T) {
	detail := map[string]string{"ip": "required"}
	err := fmt.Errorf("update: %w", NewInvalidConfigurationError("invalid", detail))

	got, ok := DetailOf(err)
	require.True(t, ok)
	assert.Equal(t, detail, got)

	_, ok = DetailOf(NewSystemError("x", nil))
	assert.False(t, ok)
}

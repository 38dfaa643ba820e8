package errors

import (
	"errors"
	"fmt"
)

// ErrorType은 에러의 종류를 나타냅니다
type ErrorType string

const (
	// ErrorTypeValidation은 단일 필드 유효성 검증 실패를 나타냅니다
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeInvalidConfiguration은 설정 전체의 유효성 검증 실패를 나타냅니다
	ErrorTypeInvalidConfiguration ErrorType = "INVALID_CONFIGURATION"

	// ErrorTypeNotFound는 리소스를 찾을 수 없음을 나타냅니다
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeServiceUnavailable은 설정 서비스에 접근할 수 없음을 나타냅니다
	ErrorTypeServiceUnavailable ErrorType = "SERVICE_UNAVAILABLE"

	// ErrorTypeMalformedValue는 저장된 값을 기대한 타입으로 해석할 수 없음을 나타냅니다
	ErrorTypeMalformedValue ErrorType = "MALFORMED_VALUE"

	// ErrorTypeSystem은 시스템 레벨 에러를 나타냅니다
	ErrorTypeSystem ErrorType = "SYSTEM"

	// ErrorTypeTimeout은 타임아웃 에러를 나타냅니다
	ErrorTypeTimeout ErrorType = "TIMEOUT"
)

// DomainError는 도메인 레벨의 에러를 나타냅니다
type DomainError struct {
	Type    ErrorType
	Message string
	Cause   error
	// Detail은 에러 종류별 부가 정보입니다 (예: 유효성 검증 결과)
	Detail interface{}
}

// Error는 error 인터페이스를 구현합니다
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap은 내부 에러를 반환합니다
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is는 에러 비교를 위한 메서드입니다
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// 생성자 함수들

// NewValidationError는 유효성 검증 에러를 생성합니다
func NewValidationError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeValidation,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidConfigurationError는 설정 전체 검증 실패 에러를 생성합니다.
// detail에는 필드별 검증 결과가 담깁니다.
func NewInvalidConfigurationError(message string, detail interface{}) *DomainError {
	return &DomainError{
		Type:    ErrorTypeInvalidConfiguration,
		Message: message,
		Detail:  detail,
	}
}

// NewNotFoundError는 리소스를 찾을 수 없는 에러를 생성합니다
func NewNotFoundError(message string) *DomainError {
	return &DomainError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewServiceUnavailableError는 설정 서비스 접근 실패 에러를 생성합니다
func NewServiceUnavailableError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeServiceUnavailable,
		Message: message,
		Cause:   cause,
	}
}

// NewMalformedValueError는 저장 값 해석 실패 에러를 생성합니다
func NewMalformedValueError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeMalformedValue,
		Message: message,
		Cause:   cause,
	}
}

// NewSystemError는 시스템 에러를 생성합니다
func NewSystemError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeSystem,
		Message: message,
		Cause:   cause,
	}
}

// NewTimeoutError는 타임아웃 에러를 생성합니다
func NewTimeoutError(message string) *DomainError {
	return &DomainError{
		Type:    ErrorTypeTimeout,
		Message: message,
	}
}

// 에러 타입 확인 헬퍼 함수들

func hasType(err error, errType ErrorType) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == errType
	}
	return false
}

// IsValidationError는 유효성 검증 에러인지 확인합니다
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsInvalidConfigurationError는 설정 전체 검증 실패 에러인지 확인합니다
func IsInvalidConfigurationError(err error) bool {
	return hasType(err, ErrorTypeInvalidConfiguration)
}

// IsNotFoundError는 리소스를 찾을 수 없는 에러인지 확인합니다
func IsNotFoundError(err error) bool {
	return hasType(err, ErrorTypeNotFound)
}

// IsServiceUnavailableError는 설정 서비스 접근 실패 에러인지 확인합니다
func IsServiceUnavailableError(err error) bool {
	return hasType(err, ErrorTypeServiceUnavailable)
}

// IsMalformedValueError는 저장 값 해석 실패 에러인지 확인합니다
func IsMalformedValueError(err error) bool {
	return hasType(err, ErrorTypeMalformedValue)
}

// IsSystemError는 시스템 에러인지 확인합니다
func IsSystemError(err error) bool {
	return hasType(err, ErrorTypeSystem)
}

// IsTimeoutError는 타임아웃 에러인지 확인합니다
func IsTimeoutError(err error) bool {
	return hasType(err, ErrorTypeTimeout)
}

// DetailOf는 DomainError에 담긴 부가 정보를 반환합니다
func DetailOf(err error) (interface{}, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) && domainErr.Detail != nil {
		return domainErr.Detail, true
	}
	return nil, false
}

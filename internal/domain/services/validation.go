package services

import (
	"fmt"
	"net/netip"
	"regexp"
	"strconv"
	"strings"

	"netif-console/internal/domain/constants"
	"netif-console/internal/domain/entities"
)

// 검증 실패 코드 (표시 문자열 조회 키로도 사용)
const (
	CodeRequired         = "required"
	CodeInvalidAddress   = "invalid_address"
	CodeInvalidAddresses = "invalid_addresses"
	CodeInvalidPriority  = "invalid_priority"
)

// DNS 항목 구분자: 공백, 쉼표, 세미콜론
var dnsSeparatorPattern = regexp.MustCompile(`[\s,;]+`)

// FieldError는 단일 필드의 검증 실패입니다
type FieldError struct {
	Field Field  `json:"field"`
	Code  string `json:"code"`
	Value string `json:"value,omitempty"`
}

func (e FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Code)
	}
	return fmt.Sprintf("%s: %s (%q)", e.Field, e.Code, e.Value)
}

// ValidationResult는 필드별 검증 결과입니다
type ValidationResult struct {
	errors []FieldError
}

// NewValidationResult는 입력 단계에서 발견한 필드 오류로 검증 결과를 만듭니다
func NewValidationResult(fieldErrors ...FieldError) ValidationResult {
	return ValidationResult{errors: append([]FieldError(nil), fieldErrors...)}
}

// Valid는 모든 필드가 유효한지 확인합니다
func (r ValidationResult) Valid() bool {
	return len(r.errors) == 0
}

// FieldValid는 특정 필드가 유효한지 확인합니다
func (r ValidationResult) FieldValid(f Field) bool {
	_, failed := r.Error(f)
	return !failed
}

// Error는 특정 필드의 검증 실패를 반환합니다
func (r ValidationResult) Error(f Field) (FieldError, bool) {
	for _, e := range r.errors {
		if e.Field == f {
			return e, true
		}
	}
	return FieldError{}, false
}

// Errors는 모든 검증 실패를 필드 순서대로 반환합니다
func (r ValidationResult) Errors() []FieldError {
	return append([]FieldError(nil), r.errors...)
}

// InvalidFields는 검증에 실패한 필드 이름 목록을 반환합니다
func (r ValidationResult) InvalidFields() []string {
	names := make([]string, 0, len(r.errors))
	for _, e := range r.errors {
		names = append(names, e.Field.String())
	}
	return names
}

func (r *ValidationResult) add(f Field, code, value string) {
	r.errors = append(r.errors, FieldError{Field: f, Code: code, Value: value})
}

// Validate는 활성화된 필드에 대해서만 검증 규칙을 적용합니다.
// 실패는 필드 단위로 보고되며, 저장 여부는 호출자가 결정합니다.
func Validate(config entities.NetInterfaceConfig, caps FieldCapabilities) ValidationResult {
	var result ValidationResult
	if config.Status == entities.StatusDisabled {
		return result
	}

	if caps.Enabled(FieldPriority) && config.WANPriority < entities.DefaultWANPriority {
		result.add(FieldPriority, CodeInvalidPriority, strconv.Itoa(config.WANPriority))
	}

	if caps.Enabled(FieldIP) {
		ip := strings.TrimSpace(config.IPAddress)
		switch {
		case ip == "":
			result.add(FieldIP, CodeRequired, "")
		case !IsIPv4Literal(ip):
			result.add(FieldIP, CodeInvalidAddress, config.IPAddress)
		}
	}

	if caps.Enabled(FieldSubnet) {
		subnet := strings.TrimSpace(config.SubnetMask)
		if subnet != "" && !IsIPv4Literal(subnet) {
			result.add(FieldSubnet, CodeInvalidAddress, config.SubnetMask)
		}
	}

	if caps.Enabled(FieldGateway) && config.Status == entities.StatusWAN && config.ConfigMode == entities.ConfigModeStatic {
		gateway := strings.TrimSpace(config.Gateway)
		switch {
		case gateway == "":
			result.add(FieldGateway, CodeRequired, "")
		case !IsIPv4Literal(gateway):
			result.add(FieldGateway, CodeInvalidAddress, config.Gateway)
		}
	}

	if caps.Enabled(FieldDNS) {
		for _, entry := range config.DNSServers {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			if !IsIPv4Literal(entry) {
				result.add(FieldDNS, CodeInvalidAddresses, entry)
				break
			}
		}
	}

	return result
}

// ValidateDNSText는 사용자가 입력한 DNS 문자열 전체를 검증합니다.
// 빈 문자열은 "사용자 지정 DNS 없음"으로 유효합니다.
func ValidateDNSText(text string) bool {
	for _, entry := range ParseDNSServers(text) {
		if !IsIPv4Literal(entry) {
			return false
		}
	}
	return true
}

// ParsePriority는 WAN 우선순위 입력 문자열을 해석합니다.
// 빈 입력은 기본값(-1)으로 간주합니다.
func ParsePriority(text string) (int, *FieldError) {
	text = strings.TrimSpace(text)
	if text == "" {
		return entities.DefaultWANPriority, nil
	}
	value, err := strconv.Atoi(text)
	if err != nil || value < entities.DefaultWANPriority {
		return entities.DefaultWANPriority, &FieldError{Field: FieldPriority, Code: CodeInvalidPriority, Value: text}
	}
	return value, nil
}

// IsIPv4Literal은 문자열이 점으로 구분된 IPv4 주소인지 확인합니다
func IsIPv4Literal(value string) bool {
	addr, err := netip.ParseAddr(value)
	if err != nil {
		return false
	}
	return addr.Is4()
}

// ParseDNSServers는 구분자로 이어진 DNS 문자열을 순서를 유지한 목록으로 분리합니다.
// 빈 항목은 버리고 중복은 유지합니다.
func ParseDNSServers(value string) []string {
	servers := []string{}
	for _, entry := range dnsSeparatorPattern.Split(value, -1) {
		if entry = strings.TrimSpace(entry); entry != "" {
			servers = append(servers, entry)
		}
	}
	return servers
}

// FormatDNSServers는 DNS 목록을 저장소의 단일 문자열 형식으로 합칩니다
func FormatDNSServers(servers []string) string {
	entries := make([]string, 0, len(servers))
	for _, entry := range servers {
		if entry = strings.TrimSpace(entry); entry != "" {
			entries = append(entries, entry)
		}
	}
	return strings.Join(entries, constants.DNSPropertySeparator)
}

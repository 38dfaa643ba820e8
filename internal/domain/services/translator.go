package services

import (
	"fmt"
	"math"
	"math/bits"
	"net/netip"
	"strconv"
	"strings"

	"netif-console/internal/domain/constants"
	"netif-console/internal/domain/entities"
	"netif-console/internal/domain/errors"

	"github.com/sirupsen/logrus"
)

// ConfigTranslator는 평면 속성 스냅샷에서 인터페이스 설정을 구성하는 도메인 서비스입니다
type ConfigTranslator struct {
	logger *logrus.Logger
}

// NewConfigTranslator는 새로운 ConfigTranslator를 생성합니다
func NewConfigTranslator(logger *logrus.Logger) *ConfigTranslator {
	return &ConfigTranslator{
		logger: logger,
	}
}

// Translate는 ifname의 속성 블록을 읽어 구조화된 설정을 반환합니다.
// 키가 없으면 기본값을 사용하며, 레지스트리에 없는 인터페이스도 실패하지 않습니다.
func (t *ConfigTranslator) Translate(props entities.Properties, ifname string) entities.NetInterfaceConfig {
	config := entities.NewDefaultNetInterfaceConfig(ifname)
	key := func(suffix string) string { return constants.InterfaceKey(ifname, suffix) }

	if v, ok := t.stringValue(props, key(constants.KeySuffixType)); ok {
		config.HwType = entities.ParseHwType(v)
	}

	if v, ok := t.stringValue(props, key(constants.KeySuffixStatus)); ok && strings.TrimSpace(v) != "" {
		status, err := entities.ParseStatus(v)
		if err != nil {
			t.malformed(key(constants.KeySuffixStatus), v, config.Status, err)
		} else {
			config.Status = status
		}
	}

	if raw, ok := props[key(constants.KeySuffixDHCPClient4)]; ok && raw != nil {
		dhcp, err := boolValue(raw)
		if err != nil {
			t.malformed(key(constants.KeySuffixDHCPClient4), raw, config.ConfigMode, err)
		} else if dhcp {
			config.ConfigMode = entities.ConfigModeDHCP
		}
	}

	config.IPAddress, _ = t.stringValue(props, key(constants.KeySuffixAddress))
	config.Gateway, _ = t.stringValue(props, key(constants.KeySuffixGateway))
	config.SubnetMask = t.subnetMask(props, key(constants.KeySuffixPrefix))

	if v, ok := t.stringValue(props, key(constants.KeySuffixDNSServers)); ok {
		config.DNSServers = ParseDNSServers(v)
	}

	if raw, ok := props[key(constants.KeySuffixWANPriority)]; ok && raw != nil {
		priority, err := intValue(raw)
		if err != nil {
			t.malformed(key(constants.KeySuffixWANPriority), raw, config.WANPriority, err)
		} else {
			config.WANPriority = priority
		}
	}

	if v, ok := t.stringValue(props, key(constants.KeySuffixReadOnlyDNS)); ok && ReadOnlyDNSVisible(config) {
		config.ReadOnlyDNSServers = strings.Join(ParseDNSServers(v), " ")
	}

	t.logger.WithFields(logrus.Fields{
		"interface":   ifname,
		"hw_type":     config.HwType.String(),
		"status":      config.Status.String(),
		"config_mode": config.ConfigMode.String(),
	}).Debug("인터페이스 설정 변환 완료")

	return config
}

// subnetMask는 prefix 키 값을 점 표기 서브넷 마스크로 읽습니다.
// 접두사 길이(예: 24)로 저장된 값도 받아들이며, 전체 1 마스크는 미설정으로 정규화합니다.
func (t *ConfigTranslator) subnetMask(props entities.Properties, key string) string {
	raw, ok := props[key]
	if !ok || raw == nil {
		return ""
	}

	var mask string
	if length, err := intValue(raw); err == nil {
		if length < 0 || length > 32 {
			t.malformed(key, raw, "", fmt.Errorf("접두사 길이 범위 초과: %d", length))
			return ""
		}
		mask = prefixToMask(length)
	} else {
		mask = strings.TrimSpace(fmt.Sprint(raw))
	}

	if mask == constants.UnsetSubnetMask {
		return ""
	}
	return mask
}

func (t *ConfigTranslator) stringValue(props entities.Properties, key string) (string, bool) {
	raw, ok := props[key]
	if !ok || raw == nil {
		return "", false
	}
	if s, ok := raw.(string); ok {
		return s, true
	}
	return fmt.Sprint(raw), true
}

// malformed는 해석할 수 없는 저장 값을 기록하고 기본값으로 대체되었음을 남깁니다
func (t *ConfigTranslator) malformed(key string, value interface{}, fallback interface{}, cause error) {
	err := errors.NewMalformedValueError(fmt.Sprintf("속성 %s 값을 해석할 수 없음", key), cause)
	t.logger.WithError(err).WithFields(logrus.Fields{
		"key":      key,
		"value":    value,
		"fallback": fallback,
	}).Warn("잘못된 속성 값, 기본값으로 대체")
}

func intValue(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("정수가 아님: %v", v)
		}
		return int(v), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	default:
		return 0, fmt.Errorf("지원하지 않는 타입: %T", raw)
	}
}

func boolValue(raw interface{}) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(v))
	default:
		return false, fmt.Errorf("지원하지 않는 타입: %T", raw)
	}
}

func prefixToMask(length int) string {
	var bits uint32
	if length > 0 {
		bits = ^uint32(0) << (32 - length)
	}
	return netip.AddrFrom4([4]byte{byte(bits >> 24), byte(bits >> 16), byte(bits >> 8), byte(bits)}).String()
}

// maskToPrefix는 연속 비트 마스크의 접두사 길이를 반환합니다
func maskToPrefix(mask string) (int, bool) {
	addr, err := netip.ParseAddr(mask)
	if err != nil || !addr.Is4() {
		return 0, false
	}
	b := addr.As4()
	value := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	length := 32 - bits.TrailingZeros32(value)
	if prefixToMask(length) != mask {
		return 0, false
	}
	return length, true
}

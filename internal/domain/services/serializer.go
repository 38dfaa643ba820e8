package services

import (
	"fmt"
	"strconv"
	"strings"

	"netif-console/internal/domain/constants"
	"netif-console/internal/domain/entities"
	"netif-console/internal/domain/errors"

	"github.com/sirupsen/logrus"
)

// ConfigSerializer는 구조화된 설정을 속성 갱신 맵으로 변환하는 도메인 서비스입니다
type ConfigSerializer struct {
	translator *ConfigTranslator
	logger     *logrus.Logger
}

// NewConfigSerializer는 새로운 ConfigSerializer를 생성합니다
func NewConfigSerializer(translator *ConfigTranslator, logger *logrus.Logger) *ConfigSerializer {
	return &ConfigSerializer{
		translator: translator,
		logger:     logger,
	}
}

// Serialize는 인터페이스 속성 블록 전체와 갱신된 레지스트리 값을 계산합니다.
// snapshot은 현재 저장소 상태이며 하드웨어 타입, 루프백 고정 값, prefix 표기와
// 레지스트리 갱신에 사용됩니다. 하드웨어 타입은 기록하지 않으므로 항상 저장된 값을 따릅니다.
// 검증에 실패하면 어떤 갱신도 만들지 않고 InvalidConfiguration 에러를 반환합니다.
func (s *ConfigSerializer) Serialize(config entities.NetInterfaceConfig, snapshot entities.Properties) (entities.Properties, error) {
	ifname := strings.TrimSpace(config.Name)
	if ifname == "" {
		return nil, errors.NewValidationError("인터페이스 이름이 비어있음", nil)
	}
	config.Name = ifname

	stored := s.translator.Translate(snapshot, ifname)
	if stored.IsLoopback() {
		config = stored
		s.logger.WithField("interface", ifname).Debug("루프백 인터페이스는 저장된 값을 유지")
	} else {
		if config.HwType != stored.HwType {
			s.logger.WithFields(logrus.Fields{
				"interface": ifname,
				"requested": config.HwType.String(),
				"stored":    stored.HwType.String(),
			}).Debug("하드웨어 타입은 저장된 값을 사용")
		}
		config.HwType = stored.HwType
	}

	normalized := Normalize(config)
	result := Validate(normalized, CapabilitiesFor(normalized))
	if !result.Valid() {
		s.logger.WithFields(logrus.Fields{
			"interface":      ifname,
			"invalid_fields": result.InvalidFields(),
		}).Warn("인터페이스 설정 유효성 검증 실패")
		return nil, errors.NewInvalidConfigurationError(
			fmt.Sprintf("인터페이스 %s 설정이 유효하지 않음: %s", ifname, strings.Join(result.InvalidFields(), ", ")),
			result,
		)
	}

	key := func(suffix string) string { return constants.InterfaceKey(ifname, suffix) }
	updates := entities.Properties{
		key(constants.KeySuffixStatus):      normalized.Status.PropertyValue(),
		key(constants.KeySuffixDHCPClient4): normalized.IsDHCP(),
		key(constants.KeySuffixAddress):     strings.TrimSpace(normalized.IPAddress),
		key(constants.KeySuffixPrefix):      prefixValue(snapshot[key(constants.KeySuffixPrefix)], normalized.SubnetMask),
		key(constants.KeySuffixGateway):     strings.TrimSpace(normalized.Gateway),
		key(constants.KeySuffixDNSServers):  FormatDNSServers(normalized.DNSServers),
	}

	// WAN이 아니면 마지막으로 저장된 우선순위를 그대로 둠
	if normalized.Status == entities.StatusWAN {
		updates[key(constants.KeySuffixWANPriority)] = normalized.WANPriority
	}

	registry, added := RegistryFromProperties(snapshot).Add(ifname)
	updates[constants.NetInterfacesKey] = registry.String()
	if added {
		s.logger.WithFields(logrus.Fields{
			"interface": ifname,
			"registry":  registry.String(),
		}).Info("인터페이스 레지스트리에 추가")
	}

	s.logger.WithFields(logrus.Fields{
		"interface": ifname,
		"keys":      len(updates),
	}).Debug("인터페이스 설정 직렬화 완료")

	return updates, nil
}

// prefixValue는 저장소가 쓰던 표기를 유지합니다.
// 기존 값이 접두사 길이였고 마스크가 연속 비트이면 길이로, 그 외에는 점 표기로 기록합니다.
func prefixValue(stored interface{}, mask string) interface{} {
	mask = strings.TrimSpace(mask)
	if mask == "" || stored == nil {
		return mask
	}
	if _, err := intValue(stored); err != nil {
		return mask
	}
	length, ok := maskToPrefix(mask)
	if !ok {
		return mask
	}
	if _, isString := stored.(string); isString {
		return strconv.Itoa(length)
	}
	return length
}

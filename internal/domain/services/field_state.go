package services

import (
	"fmt"

	"netif-console/internal/domain/entities"
)

// Field는 IPv4 설정 화면의 개별 필드입니다
type Field int

const (
	FieldStatus Field = iota
	FieldPriority
	FieldConfigure
	FieldIP
	FieldSubnet
	FieldGateway
	FieldDNS
	FieldRenew
	fieldCount
)

var fieldNames = [fieldCount]string{"status", "priority", "configure", "ip", "subnet", "gateway", "dns", "renew"}

func (f Field) String() string {
	if f >= 0 && f < fieldCount {
		return fieldNames[f]
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// MarshalText는 필드를 이름으로 직렬화합니다
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// AllFields는 모든 필드를 화면 순서대로 반환합니다
func AllFields() []Field {
	fields := make([]Field, 0, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		fields = append(fields, f)
	}
	return fields
}

// FieldState는 단일 필드의 활성/표시 상태입니다.
// Cleared가 true이면 현재 상태에서 해당 필드 값은 비워져야 합니다.
type FieldState struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Visible bool `json:"visible" yaml:"visible"`
	Cleared bool `json:"cleared,omitempty" yaml:"cleared,omitempty"`
}

// FieldCapabilities는 (하드웨어 타입, 상태, 주소 할당 방식) 조합에 대해 계산된 필드 상태입니다
type FieldCapabilities struct {
	HwType     entities.HwType
	Status     entities.Status
	ConfigMode entities.ConfigMode
	fields     [fieldCount]FieldState
}

// State는 필드의 상태를 반환합니다
func (c FieldCapabilities) State(f Field) FieldState {
	if f < 0 || f >= fieldCount {
		return FieldState{}
	}
	return c.fields[f]
}

// Enabled는 필드가 편집 가능한지 확인합니다
func (c FieldCapabilities) Enabled(f Field) bool {
	return c.State(f).Enabled
}

// Cleared는 필드 값이 비워져야 하는지 확인합니다
func (c FieldCapabilities) Cleared(f Field) bool {
	return c.State(f).Cleared
}

// EnabledFields는 활성화된 필드 목록을 반환합니다
func (c FieldCapabilities) EnabledFields() []Field {
	var fields []Field
	for _, f := range AllFields() {
		if c.fields[f].Enabled {
			fields = append(fields, f)
		}
	}
	return fields
}

// Map은 필드 이름을 키로 하는 상태 맵을 반환합니다 (출력용)
func (c FieldCapabilities) Map() map[string]FieldState {
	out := make(map[string]FieldState, fieldCount)
	for _, f := range AllFields() {
		out[f.String()] = c.fields[f]
	}
	return out
}

func (c *FieldCapabilities) disable(fields ...Field) {
	for _, f := range fields {
		c.fields[f].Enabled = false
	}
}

func (c *FieldCapabilities) clear(fields ...Field) {
	for _, f := range fields {
		c.fields[f].Cleared = true
	}
}

// Capabilities는 필드 활성 상태를 한 번에 계산합니다.
// 우선순위는 하드웨어 타입 > 상태 > 주소 할당 방식입니다.
func Capabilities(hwType entities.HwType, status entities.Status, mode entities.ConfigMode) FieldCapabilities {
	c := FieldCapabilities{HwType: hwType, Status: status, ConfigMode: mode}
	for i := range c.fields {
		c.fields[i] = FieldState{Enabled: true, Visible: true}
	}
	c.disable(FieldPriority)

	switch {
	case hwType == entities.HwTypeLoopback:
		// 루프백은 어떤 조합에서도 편집할 수 없음
		c.disable(AllFields()...)
		return c

	case hwType == entities.HwTypeModem:
		c.disable(FieldConfigure, FieldIP, FieldSubnet, FieldGateway, FieldRenew)
		if !status.IsActive() {
			c.disable(FieldDNS)
		}

	case !status.IsActive():
		c.disable(FieldConfigure, FieldIP, FieldSubnet, FieldGateway, FieldDNS, FieldRenew)
		c.clear(FieldIP, FieldSubnet, FieldGateway, FieldDNS)

	case mode == entities.ConfigModeDHCP:
		c.disable(FieldIP, FieldSubnet, FieldGateway)
		if status != entities.StatusWAN {
			c.disable(FieldDNS)
		}

	default:
		if status != entities.StatusWAN {
			c.disable(FieldGateway, FieldDNS)
			c.clear(FieldGateway)
		}
		c.disable(FieldRenew)
	}

	if status == entities.StatusWAN {
		c.fields[FieldPriority].Enabled = true
	}

	return c
}

// CapabilitiesFor는 설정 값으로부터 필드 상태를 계산합니다
func CapabilitiesFor(config entities.NetInterfaceConfig) FieldCapabilities {
	return Capabilities(config.HwType, config.Status, config.ConfigMode)
}

// Normalize는 현재 상태에서 비워져야 하는 필드를 비운 설정 사본을 반환합니다
func Normalize(config entities.NetInterfaceConfig) entities.NetInterfaceConfig {
	caps := CapabilitiesFor(config)

	out := config
	out.DNSServers = append([]string{}, config.DNSServers...)

	if caps.Cleared(FieldIP) {
		out.IPAddress = ""
	}
	if caps.Cleared(FieldSubnet) {
		out.SubnetMask = ""
	}
	if caps.Cleared(FieldGateway) {
		out.Gateway = ""
	}
	if caps.Cleared(FieldDNS) {
		out.DNSServers = []string{}
	}
	if !ReadOnlyDNSVisible(out) {
		out.ReadOnlyDNSServers = ""
	}
	return out
}

// ReadOnlyDNSVisible은 읽기 전용 DNS 값을 보여줘야 하는지 확인합니다.
// DHCP 모드이고 사용자 지정 DNS가 없을 때만 표시합니다.
func ReadOnlyDNSVisible(config entities.NetInterfaceConfig) bool {
	return config.IsDHCP() && !config.HasCustomDNS()
}

// StatusOptions는 하드웨어 타입별로 선택 가능한 상태 목록을 반환합니다
func StatusOptions(hwType entities.HwType, current entities.Status) []entities.Status {
	switch hwType {
	case entities.HwTypeLoopback:
		return []entities.Status{current}
	case entities.HwTypeModem:
		return []entities.Status{entities.StatusDisabled, entities.StatusUnmanaged, entities.StatusWAN}
	default:
		return entities.AllStatuses()
	}
}

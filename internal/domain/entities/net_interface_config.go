package entities

import (
	"fmt"
	"strings"
)

// Properties는 설정 서비스가 관리하는 평면(flat) 속성 맵입니다
type Properties map[string]interface{}

// Clone은 속성 맵의 얕은 복사본을 반환합니다
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// HwType은 인터페이스 하드웨어 분류입니다
type HwType int

const (
	HwTypeOther HwType = iota
	HwTypeEthernet
	HwTypeWifi
	HwTypeModem
	HwTypeLoopback
)

// Status는 인터페이스에 할당된 IPv4 운영 역할입니다
type Status int

const (
	StatusDisabled Status = iota
	StatusUnmanaged
	StatusL2Only
	StatusLAN
	StatusWAN
)

// ConfigMode는 주소 할당 방식입니다
type ConfigMode int

const (
	ConfigModeStatic ConfigMode = iota
	ConfigModeDHCP
)

var (
	hwTypeNames = map[HwType]string{
		HwTypeOther:    "OTHER",
		HwTypeEthernet: "ETHERNET",
		HwTypeWifi:     "WIFI",
		HwTypeModem:    "MODEM",
		HwTypeLoopback: "LOOPBACK",
	}

	statusNames = map[Status]string{
		StatusDisabled:  "DISABLED",
		StatusUnmanaged: "UNMANAGED",
		StatusL2Only:    "L2_ONLY",
		StatusLAN:       "LAN",
		StatusWAN:       "WAN",
	}

	// 설정 저장소에 기록되는 상태 값
	statusPropertyValues = map[Status]string{
		StatusDisabled:  "netIPv4StatusDisabled",
		StatusUnmanaged: "netIPv4StatusUnmanaged",
		StatusL2Only:    "netIPv4StatusL2Only",
		StatusLAN:       "netIPv4StatusEnabledLAN",
		StatusWAN:       "netIPv4StatusEnabledWAN",
	}

	configModeNames = map[ConfigMode]string{
		ConfigModeStatic: "STATIC",
		ConfigModeDHCP:   "DHCP",
	}
)

// AllHwTypes는 모든 하드웨어 타입을 선언 순서대로 반환합니다
func AllHwTypes() []HwType {
	return []HwType{HwTypeEthernet, HwTypeWifi, HwTypeModem, HwTypeLoopback, HwTypeOther}
}

// AllStatuses는 모든 상태를 선언 순서대로 반환합니다
func AllStatuses() []Status {
	return []Status{StatusDisabled, StatusUnmanaged, StatusL2Only, StatusLAN, StatusWAN}
}

// AllConfigModes는 모든 주소 할당 방식을 반환합니다
func AllConfigModes() []ConfigMode {
	return []ConfigMode{ConfigModeDHCP, ConfigModeStatic}
}

func (h HwType) String() string {
	if name, ok := hwTypeNames[h]; ok {
		return name
	}
	return fmt.Sprintf("HwType(%d)", int(h))
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (m ConfigMode) String() string {
	if name, ok := configModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("ConfigMode(%d)", int(m))
}

// PropertyValue는 저장소에 기록되는 상태 문자열을 반환합니다
func (s Status) PropertyValue() string {
	return statusPropertyValues[s]
}

// IsActive는 IP 설정이 의미를 갖는 상태(LAN/WAN)인지 확인합니다
func (s Status) IsActive() bool {
	return s == StatusLAN || s == StatusWAN
}

// ParseHwType은 하드웨어 타입 이름을 해석합니다. 알 수 없는 이름은 OTHER로 취급합니다
func ParseHwType(value string) HwType {
	v := strings.ToUpper(strings.TrimSpace(value))
	for h, name := range hwTypeNames {
		if name == v {
			return h
		}
	}
	return HwTypeOther
}

// ParseStatus는 저장소 값("netIPv4StatusEnabledWAN") 또는 열거형 이름("WAN")을 해석합니다
func ParseStatus(value string) (Status, error) {
	v := strings.TrimSpace(value)
	for s, pv := range statusPropertyValues {
		if strings.EqualFold(pv, v) {
			return s, nil
		}
	}
	normalized := strings.ReplaceAll(strings.ToUpper(v), "-", "_")
	for s, name := range statusNames {
		if name == normalized {
			return s, nil
		}
	}
	return StatusDisabled, fmt.Errorf("알 수 없는 IPv4 상태: %q", value)
}

// ParseConfigMode는 주소 할당 방식 이름을 해석합니다. MANUAL은 STATIC의 별칭입니다
func ParseConfigMode(value string) (ConfigMode, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "DHCP", "NETIPV4CONFIGMODEDHCP":
		return ConfigModeDHCP, nil
	case "STATIC", "MANUAL", "NETIPV4CONFIGMODEMANUAL":
		return ConfigModeStatic, nil
	}
	return ConfigModeStatic, fmt.Errorf("알 수 없는 주소 할당 방식: %q", value)
}

// 텍스트 직렬화는 열거형 이름을 사용합니다 (JSON, YAML 공통)

func (h HwType) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

func (h *HwType) UnmarshalText(text []byte) error {
	*h = ParseHwType(string(text))
	return nil
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (m ConfigMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *ConfigMode) UnmarshalText(text []byte) error {
	parsed, err := ParseConfigMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// NetInterfaceConfig는 단일 네트워크 인터페이스의 구조화된 IPv4 설정입니다.
// 독립적인 식별자가 없으며 매 조회마다 저장소 스냅샷에서 새로 구성됩니다.
type NetInterfaceConfig struct {
	Name       string     `json:"name" yaml:"name"`
	HwType     HwType     `json:"hwType" yaml:"hwType"`
	Status     Status     `json:"status" yaml:"status"`
	ConfigMode ConfigMode `json:"configMode" yaml:"configMode"`
	IPAddress  string     `json:"ipAddress" yaml:"ipAddress"`
	SubnetMask string     `json:"subnetMask" yaml:"subnetMask"`
	Gateway    string     `json:"gateway" yaml:"gateway"`
	DNSServers []string   `json:"dnsServers" yaml:"dnsServers"`
	// WANPriority는 Status가 WAN일 때만 의미가 있습니다
	WANPriority int `json:"wanPriority" yaml:"wanPriority"`
	// ReadOnlyDNSServers는 DHCP로 받은 DNS 등 표시 전용 파생 값입니다
	ReadOnlyDNSServers string `json:"readOnlyDnsServers,omitempty" yaml:"readOnlyDnsServers,omitempty"`
}

// DefaultWANPriority는 우선순위가 지정되지 않았을 때의 값입니다
const DefaultWANPriority = -1

// NewDefaultNetInterfaceConfig는 모든 필드가 기본값인 설정을 생성합니다
func NewDefaultNetInterfaceConfig(name string) NetInterfaceConfig {
	return NetInterfaceConfig{
		Name:        name,
		HwType:      HwTypeOther,
		Status:      StatusDisabled,
		ConfigMode:  ConfigModeStatic,
		DNSServers:  []string{},
		WANPriority: DefaultWANPriority,
	}
}

// IsDHCP는 DHCP 모드인지 확인합니다
func (c *NetInterfaceConfig) IsDHCP() bool {
	return c.ConfigMode == ConfigModeDHCP
}

// IsLoopback은 변경 불가능한 루프백 인터페이스인지 확인합니다
func (c *NetInterfaceConfig) IsLoopback() bool {
	return c.HwType == HwTypeLoopback
}

// HasCustomDNS는 사용자 지정 DNS 항목이 하나라도 있는지 확인합니다
func (c *NetInterfaceConfig) HasCustomDNS() bool {
	for _, entry := range c.DNSServers {
		if strings.TrimSpace(entry) != "" {
			return true
		}
	}
	return false
}

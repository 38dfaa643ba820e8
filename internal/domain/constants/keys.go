package constants

import "fmt"

// 설정 서비스 관련 상수들
const (
	// 네트워크 설정 서비스의 컴포넌트 식별자
	NetworkConfigurationServicePID = "org.eclipse.kura.net.admin.NetworkConfigurationService"

	// 인터페이스 레지스트리 키
	NetInterfacesKey = "net.interfaces"

	// 인터페이스별 키 접두사
	interfacePrefix = "net.interface.%s."
)

// 인터페이스별 속성 키 접미사들
const (
	KeySuffixType        = "type"
	KeySuffixAddress     = "config.ip4.address"
	KeySuffixPrefix      = "config.ip4.prefix"
	KeySuffixGateway     = "config.ip4.gateway"
	KeySuffixDNSServers  = "config.ip4.dnsServers"
	KeySuffixReadOnlyDNS = "config.ip4.dnsServers.readOnly"
	KeySuffixStatus      = "config.ip4.status"
	KeySuffixWANPriority = "config.ip4.wan.priority"
	KeySuffixDHCPClient4 = "config.dhcpClient4.enabled"
)

const (
	// 전체 1 서브넷 마스크는 "미설정"으로 취급합니다
	UnsetSubnetMask = "255.255.255.255"

	RegistrySeparator    = ","
	DNSPropertySeparator = ","
)

// InterfaceKey는 인터페이스 이름과 접미사로 전체 속성 키를 만듭니다
func InterfaceKey(ifname, suffix string) string {
	return fmt.Sprintf(interfacePrefix, ifname) + suffix
}

// InterfaceKeyPrefix는 인터페이스 속성 블록의 키 접두사를 반환합니다
func InterfaceKeyPrefix(ifname string) string {
	return fmt.Sprintf(interfacePrefix, ifname)
}

// 기본값 상수들
const (
	DefaultStoreBackend = "file"
	DefaultStorePath    = "/var/lib/netif-console/snapshots"
	DefaultPollInterval = "30s"
	DefaultLogLevel     = "info"
	DefaultHealthPort   = "8080"
	DefaultLanguage     = "en"
	DefaultBackupKeep   = 5
	BackupDirName       = "backups"
	SnapshotFilePerm    = 0644
	SnapshotDirPerm     = 0755
)

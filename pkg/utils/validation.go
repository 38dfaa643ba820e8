package utils

import (
	"fmt"
	"regexp"
)

// 커널 IFNAMSIZ(16) 기준 최대 길이
const maxInterfaceNameLength = 15

var (
	// 인터페이스 이름 패턴: eth0, wlan0, br-lan, eth0.100, 1-1.2(모뎀 USB 경로) 등
	interfacePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.@\-]*$`)

	// 컴포넌트 PID 패턴: org.eclipse.kura.net.admin.NetworkConfigurationService
	componentPIDPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_\-]*)*$`)
)

// ValidateInterfaceName은 인터페이스 이름이 유효한지 검증
func ValidateInterfaceName(name string) error {
	if name == "" {
		return fmt.Errorf("인터페이스 이름이 비어있음")
	}

	if len(name) > maxInterfaceNameLength {
		return fmt.Errorf("인터페이스 이름이 너무 김: %d자 (최대 %d자)", len(name), maxInterfaceNameLength)
	}

	if !interfacePattern.MatchString(name) {
		return fmt.Errorf("잘못된 인터페이스 이름 형식: %q", name)
	}

	return nil
}

// ValidateComponentPID는 설정 서비스 컴포넌트 PID 형식을 검증
func ValidateComponentPID(pid string) error {
	if pid == "" {
		return fmt.Errorf("컴포넌트 PID가 비어있음")
	}

	if !componentPIDPattern.MatchString(pid) {
		return fmt.Errorf("잘못된 컴포넌트 PID 형식: %q", pid)
	}

	return nil
}

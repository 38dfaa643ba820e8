package services

import (
	"fmt"
	"strings"

	"netif-console/internal/domain/constants"
	"netif-console/internal/domain/entities"
)

// InterfaceRegistry는 저장소 수준의 인터페이스 이름 목록(net.interfaces)입니다.
// 중복 없이 처음 등장한 순서를 유지합니다.
type InterfaceRegistry struct {
	names []string
}

// ParseInterfaceRegistry는 쉼표로 구분된 레지스트리 값을 해석합니다
func ParseInterfaceRegistry(value string) InterfaceRegistry {
	var r InterfaceRegistry
	for _, name := range strings.Split(value, constants.RegistrySeparator) {
		r, _ = r.Add(name)
	}
	return r
}

// RegistryFromProperties는 스냅샷에서 레지스트리를 읽습니다. 키가 없으면 빈 레지스트리입니다
func RegistryFromProperties(props entities.Properties) InterfaceRegistry {
	switch v := props[constants.NetInterfacesKey].(type) {
	case nil:
		return InterfaceRegistry{}
	case string:
		return ParseInterfaceRegistry(v)
	case []string:
		return ParseInterfaceRegistry(strings.Join(v, constants.RegistrySeparator))
	case []interface{}:
		var r InterfaceRegistry
		for _, item := range v {
			r, _ = r.Add(fmt.Sprint(item))
		}
		return r
	default:
		return ParseInterfaceRegistry(fmt.Sprint(v))
	}
}

// Names는 등록된 인터페이스 이름 목록의 사본을 반환합니다
func (r InterfaceRegistry) Names() []string {
	return append([]string{}, r.names...)
}

// Len은 등록된 인터페이스 수를 반환합니다
func (r InterfaceRegistry) Len() int {
	return len(r.names)
}

// Contains는 인터페이스가 등록되어 있는지 확인합니다
func (r InterfaceRegistry) Contains(name string) bool {
	name = strings.TrimSpace(name)
	for _, n := range r.names {
		if n == name {
			return true
		}
	}
	return false
}

// Add는 이름이 없으면 끝에 추가한 레지스트리를 반환합니다. 기존 항목은 제거하지 않습니다
func (r InterfaceRegistry) Add(name string) (InterfaceRegistry, bool) {
	name = strings.TrimSpace(name)
	if name == "" || r.Contains(name) {
		return r, false
	}
	names := make([]string, 0, len(r.names)+1)
	names = append(names, r.names...)
	return InterfaceRegistry{names: append(names, name)}, true
}

// String은 저장소 형식(쉼표 구분, 공백 없음)으로 반환합니다
func (r InterfaceRegistry) String() string {
	return strings.Join(r.names, constants.RegistrySeparator)
}

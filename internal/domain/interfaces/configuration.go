package interfaces

import (
	"context"
	"netif-console/internal/domain/entities"
)

// ConfigurationService는 평면 속성 저장소를 제공하는 외부 설정 서비스 인터페이스입니다.
// 스냅샷 단위로 읽고 쓰며, 동시 쓰기는 마지막 기록이 우선합니다.
type ConfigurationService interface {
	// FetchConfiguration은 컴포넌트의 전체 속성 스냅샷을 조회합니다
	FetchConfiguration(ctx context.Context, componentID string) (entities.Properties, error)

	// ApplyConfiguration은 속성 갱신 맵을 컴포넌트 설정에 반영합니다
	ApplyConfiguration(ctx context.Context, componentID string, properties entities.Properties) error
}

// HealthChecker는 저장소 연결 상태를 확인할 수 있는 구현체가 제공하는 인터페이스입니다
type HealthChecker interface {
	Ping(ctx context.Context) error
}

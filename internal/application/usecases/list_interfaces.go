package usecases

import (
	"context"

	"netif-console/internal/domain/entities"
	"netif-console/internal/domain/interfaces"
	"netif-console/internal/domain/services"
	"netif-console/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// InterfaceSummary는 목록 화면에 표시되는 인터페이스 요약입니다
type InterfaceSummary struct {
	Name       string              `json:"name" yaml:"name"`
	HwType     entities.HwType     `json:"hwType" yaml:"hwType"`
	Status     entities.Status     `json:"status" yaml:"status"`
	ConfigMode entities.ConfigMode `json:"configMode" yaml:"configMode"`
	IPAddress  string              `json:"ipAddress,omitempty" yaml:"ipAddress,omitempty"`
}

// ListInterfacesOutput은 인터페이스 목록 조회 유스케이스의 출력 데이터입니다
type ListInterfacesOutput struct {
	Interfaces []InterfaceSummary
	TotalCount int
}

// ListInterfacesUseCase는 net.interfaces 레지스트리에 등록된 인터페이스를 등록 순서대로 반환합니다
type ListInterfacesUseCase struct {
	configService interfaces.ConfigurationService
	translator    *services.ConfigTranslator
	componentID   string
	logger        *logrus.Logger
}

// NewListInterfacesUseCase는 새로운 ListInterfacesUseCase를 생성합니다
func NewListInterfacesUseCase(
	configService interfaces.ConfigurationService,
	translator *services.ConfigTranslator,
	componentID string,
	logger *logrus.Logger,
) *ListInterfacesUseCase {
	return &ListInterfacesUseCase{
		configService: configService,
		translator:    translator,
		componentID:   componentID,
		logger:        logger,
	}
}

// Execute는 인터페이스 목록 조회 유스케이스를 실행합니다
func (uc *ListInterfacesUseCase) Execute(ctx context.Context) (*ListInterfacesOutput, error) {
	snapshot, err := fetchSnapshot(ctx, uc.configService, uc.componentID)
	if err != nil {
		metrics.RecordConfigRead("failed")
		return nil, err
	}

	names := services.RegistryFromProperties(snapshot).Names()
	output := &ListInterfacesOutput{
		Interfaces: make([]InterfaceSummary, 0, len(names)),
		TotalCount: len(names),
	}

	for _, name := range names {
		config := uc.translator.Translate(snapshot, name)
		output.Interfaces = append(output.Interfaces, InterfaceSummary{
			Name:       config.Name,
			HwType:     config.HwType,
			Status:     config.Status,
			ConfigMode: config.ConfigMode,
			IPAddress:  config.IPAddress,
		})
	}

	metrics.RecordConfigRead("success")
	uc.logger.WithField("interface_count", output.TotalCount).Debug("인터페이스 목록 조회 완료")

	return output, nil
}

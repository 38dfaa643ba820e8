package usecases

import (
	"context"
	"strings"

	"netif-console/internal/domain/entities"
	"netif-console/internal/domain/errors"
	"netif-console/internal/domain/interfaces"
	"netif-console/internal/domain/services"
	"netif-console/internal/infrastructure/metrics"
	"netif-console/pkg/utils"

	"github.com/sirupsen/logrus"
)

// GetInterfaceConfigInput은 인터페이스 설정 조회 유스케이스의 입력 데이터입니다
type GetInterfaceConfigInput struct {
	Name string
}

// GetInterfaceConfigOutput은 인터페이스 설정 조회 유스케이스의 출력 데이터입니다
type GetInterfaceConfigOutput struct {
	Config        entities.NetInterfaceConfig
	Capabilities  services.FieldCapabilities
	StatusOptions []entities.Status
	Validation    services.ValidationResult
	Registered    bool
}

// GetInterfaceConfigUseCase는 저장된 속성 스냅샷을 인터페이스 설정으로 변환해 반환하는 유스케이스입니다
type GetInterfaceConfigUseCase struct {
	configService interfaces.ConfigurationService
	translator    *services.ConfigTranslator
	componentID   string
	logger        *logrus.Logger
}

// NewGetInterfaceConfigUseCase는 새로운 GetInterfaceConfigUseCase를 생성합니다
func NewGetInterfaceConfigUseCase(
	configService interfaces.ConfigurationService,
	translator *services.ConfigTranslator,
	componentID string,
	logger *logrus.Logger,
) *GetInterfaceConfigUseCase {
	return &GetInterfaceConfigUseCase{
		configService: configService,
		translator:    translator,
		componentID:   componentID,
		logger:        logger,
	}
}

// Execute는 인터페이스 설정 조회 유스케이스를 실행합니다
func (uc *GetInterfaceConfigUseCase) Execute(ctx context.Context, input GetInterfaceConfigInput) (*GetInterfaceConfigOutput, error) {
	name := strings.TrimSpace(input.Name)
	if err := utils.ValidateInterfaceName(name); err != nil {
		return nil, errors.NewValidationError("잘못된 인터페이스 이름", err)
	}

	snapshot, err := fetchSnapshot(ctx, uc.configService, uc.componentID)
	if err != nil {
		metrics.RecordConfigRead("failed")
		return nil, err
	}

	config := uc.translator.Translate(snapshot, name)
	caps := services.CapabilitiesFor(config)

	output := &GetInterfaceConfigOutput{
		Config:        config,
		Capabilities:  caps,
		StatusOptions: services.StatusOptions(config.HwType, config.Status),
		Validation:    services.Validate(config, caps),
		Registered:    services.RegistryFromProperties(snapshot).Contains(name),
	}

	metrics.RecordConfigRead("success")
	uc.logger.WithFields(logrus.Fields{
		"interface_name": name,
		"status":         config.Status.String(),
		"config_mode":    config.ConfigMode.String(),
		"registered":     output.Registered,
	}).Debug("인터페이스 설정 조회 완료")

	return output, nil
}

// fetchSnapshot은 설정 서비스에서 스냅샷을 읽고 실패를 서비스 불가 에러로 감쌉니다
func fetchSnapshot(ctx context.Context, configService interfaces.ConfigurationService, componentID string) (entities.Properties, error) {
	snapshot, err := configService.FetchConfiguration(ctx, componentID)
	if err != nil {
		metrics.RecordError("service_unavailable")
		if errors.IsServiceUnavailableError(err) {
			return nil, err
		}
		return nil, errors.NewServiceUnavailableError("설정 스냅샷 조회 실패", err)
	}
	if snapshot == nil {
		snapshot = entities.Properties{}
	}
	return snapshot, nil
}

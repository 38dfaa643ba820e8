package usecases

import (
	"context"
	"strings"

	"netif-console/internal/domain/constants"
	"netif-console/internal/domain/entities"
	"netif-console/internal/domain/errors"
	"netif-console/internal/domain/interfaces"
	"netif-console/internal/domain/services"
	"netif-console/internal/infrastructure/metrics"
	"netif-console/pkg/utils"

	"github.com/sirupsen/logrus"
)

// UpdateInterfaceConfigInput은 인터페이스 설정 변경 유스케이스의 입력 데이터입니다
type UpdateInterfaceConfigInput struct {
	Config entities.NetInterfaceConfig
}

// UpdateInterfaceConfigOutput은 인터페이스 설정 변경 유스케이스의 출력 데이터입니다
type UpdateInterfaceConfigOutput struct {
	// Config는 반영 후 저장소 기준으로 다시 읽은 설정입니다
	Config           entities.NetInterfaceConfig
	Updates          entities.Properties
	RegistryAppended bool
}

// UpdateInterfaceConfigUseCase는 편집된 인터페이스 설정을 검증하고 속성 갱신으로 반영하는 유스케이스입니다.
// 검증에 실패하면 저장소에 아무것도 쓰지 않습니다.
type UpdateInterfaceConfigUseCase struct {
	configService interfaces.ConfigurationService
	translator    *services.ConfigTranslator
	serializer    *services.ConfigSerializer
	componentID   string
	logger        *logrus.Logger
}

// NewUpdateInterfaceConfigUseCase는 새로운 UpdateInterfaceConfigUseCase를 생성합니다
func NewUpdateInterfaceConfigUseCase(
	configService interfaces.ConfigurationService,
	translator *services.ConfigTranslator,
	serializer *services.ConfigSerializer,
	componentID string,
	logger *logrus.Logger,
) *UpdateInterfaceConfigUseCase {
	return &UpdateInterfaceConfigUseCase{
		configService: configService,
		translator:    translator,
		serializer:    serializer,
		componentID:   componentID,
		logger:        logger,
	}
}

// Execute는 인터페이스 설정 변경 유스케이스를 실행합니다
func (uc *UpdateInterfaceConfigUseCase) Execute(ctx context.Context, input UpdateInterfaceConfigInput) (*UpdateInterfaceConfigOutput, error) {
	config := input.Config
	config.Name = strings.TrimSpace(config.Name)
	if err := utils.ValidateInterfaceName(config.Name); err != nil {
		metrics.RecordConfigWrite("rejected")
		metrics.RecordError("validation")
		return nil, errors.NewValidationError("잘못된 인터페이스 이름", err)
	}

	snapshot, err := fetchSnapshot(ctx, uc.configService, uc.componentID)
	if err != nil {
		metrics.RecordConfigWrite("failed")
		return nil, err
	}

	updates, err := uc.serializer.Serialize(config, snapshot)
	if err != nil {
		uc.recordRejection(err)
		return nil, err
	}

	wasRegistered := services.RegistryFromProperties(snapshot).Contains(config.Name)

	if err := uc.configService.ApplyConfiguration(ctx, uc.componentID, updates); err != nil {
		metrics.RecordConfigWrite("failed")
		metrics.RecordError("service_unavailable")
		uc.logger.WithFields(logrus.Fields{
			"interface_name": config.Name,
			"component_id":   uc.componentID,
		}).WithError(err).Error("속성 갱신 반영 실패")
		if errors.IsServiceUnavailableError(err) {
			return nil, err
		}
		return nil, errors.NewServiceUnavailableError("속성 갱신 반영 실패", err)
	}

	merged := snapshot.Clone()
	for key, value := range updates {
		merged[key] = value
	}

	output := &UpdateInterfaceConfigOutput{
		Config:           uc.translator.Translate(merged, config.Name),
		Updates:          updates,
		RegistryAppended: !wasRegistered,
	}

	metrics.RecordConfigWrite("success")
	if output.RegistryAppended {
		metrics.RecordRegistryAppend()
	}

	uc.logger.WithFields(logrus.Fields{
		"interface_name":    config.Name,
		"status":            output.Config.Status.String(),
		"updated_keys":      len(updates),
		"registry_appended": output.RegistryAppended,
		"registry":          updates[constants.NetInterfacesKey],
	}).Info("인터페이스 설정 반영 완료")

	return output, nil
}

// recordRejection은 거부된 쓰기 요청을 메트릭에 기록합니다
func (uc *UpdateInterfaceConfigUseCase) recordRejection(err error) {
	metrics.RecordConfigWrite("rejected")

	if !errors.IsInvalidConfigurationError(err) {
		metrics.RecordError("validation")
		return
	}

	detail, ok := errors.DetailOf(err)
	if !ok {
		return
	}
	if result, ok := detail.(services.ValidationResult); ok {
		for _, fieldErr := range result.Errors() {
			metrics.RecordValidationFailure(fieldErr.Field.String(), fieldErr.Code)
		}
	}
	metrics.RecordError("validation")
}

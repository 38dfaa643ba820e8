package usecases

import (
	"context"

	"netif-console/internal/domain/entities"
	"netif-console/internal/domain/interfaces"
	"netif-console/internal/domain/services"
	"netif-console/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// AuditResult는 인터페이스 하나의 감사 결과입니다
type AuditResult struct {
	Name          string          `json:"name" yaml:"name"`
	Status        entities.Status `json:"status" yaml:"status"`
	Valid         bool            `json:"valid" yaml:"valid"`
	InvalidFields []string        `json:"invalidFields,omitempty" yaml:"invalidFields,omitempty"`
}

// AuditInterfacesOutput은 감사 유스케이스의 출력 데이터입니다
type AuditInterfacesOutput struct {
	Results      []AuditResult
	TotalCount   int
	InvalidCount int
}

// AuditInterfacesUseCase는 등록된 모든 인터페이스의 저장된 설정이
// 자신의 상태에 대해 유효한지 검사합니다. 저장소에는 쓰지 않습니다.
type AuditInterfacesUseCase struct {
	configService interfaces.ConfigurationService
	translator    *services.ConfigTranslator
	clock         interfaces.Clock
	componentID   string
	logger        *logrus.Logger
}

// NewAuditInterfacesUseCase는 새로운 AuditInterfacesUseCase를 생성합니다
func NewAuditInterfacesUseCase(
	configService interfaces.ConfigurationService,
	translator *services.ConfigTranslator,
	clock interfaces.Clock,
	componentID string,
	logger *logrus.Logger,
) *AuditInterfacesUseCase {
	return &AuditInterfacesUseCase{
		configService: configService,
		translator:    translator,
		clock:         clock,
		componentID:   componentID,
		logger:        logger,
	}
}

// Execute는 감사 유스케이스를 실행합니다
func (uc *AuditInterfacesUseCase) Execute(ctx context.Context) (*AuditInterfacesOutput, error) {
	startTime := uc.clock.Now()

	snapshot, err := fetchSnapshot(ctx, uc.configService, uc.componentID)
	if err != nil {
		return nil, err
	}

	names := services.RegistryFromProperties(snapshot).Names()
	output := &AuditInterfacesOutput{
		Results:    make([]AuditResult, 0, len(names)),
		TotalCount: len(names),
	}

	for _, name := range names {
		config := uc.translator.Translate(snapshot, name)
		result := services.Validate(config, services.CapabilitiesFor(config))

		audit := AuditResult{
			Name:   name,
			Status: config.Status,
			Valid:  result.Valid(),
		}
		if !audit.Valid {
			audit.InvalidFields = result.InvalidFields()
			output.InvalidCount++
			uc.logger.WithFields(logrus.Fields{
				"interface_name": name,
				"status":         config.Status.String(),
				"invalid_fields": audit.InvalidFields,
			}).Warn("저장된 인터페이스 설정이 유효하지 않습니다")
		}
		output.Results = append(output.Results, audit)
	}

	metrics.RecordAuditCycle(uc.clock.Now().Sub(startTime).Seconds(), output.InvalidCount)

	if output.InvalidCount > 0 {
		uc.logger.WithFields(logrus.Fields{
			"total":   output.TotalCount,
			"invalid": output.InvalidCount,
		}).Info("인터페이스 감사 완료")
	}

	return output, nil
}

package container

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"netif-console/internal/application/usecases"
	"netif-console/internal/domain/constants"
	"netif-console/internal/domain/interfaces"
	"netif-console/internal/domain/services"
	"netif-console/internal/infrastructure/adapters"
	"netif-console/internal/infrastructure/config"
	"netif-console/internal/infrastructure/health"
	"netif-console/internal/infrastructure/persistence"
	"netif-console/internal/presentation"
	"netif-console/pkg/utils"

	"github.com/go-sql-driver/mysql"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
)

// Container는 의존성 주입을 관리하는 컨테이너입니다
type Container struct {
	config *config.Config
	logger *logrus.Logger

	// 인프라스트럭처 어댑터들
	fileSystem interfaces.FileSystem
	clock      interfaces.Clock

	// 설정 저장소
	configService *persistence.RetryingConfigurationService
	fileStore     *persistence.FileConfigurationService

	// 서비스들
	healthService *health.HealthService
	translator    *services.ConfigTranslator
	serializer    *services.ConfigSerializer
	bundle        *i18n.Bundle

	// 유스케이스
	getUseCase    *usecases.GetInterfaceConfigUseCase
	updateUseCase *usecases.UpdateInterfaceConfigUseCase
	listUseCase   *usecases.ListInterfacesUseCase
	auditUseCase  *usecases.AuditInterfacesUseCase

	// 데이터베이스 (mysql 백엔드일 때만)
	db *sql.DB
}

// NewContainer는 새로운 Container를 생성합니다
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	container := &Container{
		config: cfg,
		logger: logger,
	}

	if err := container.initializeInfrastructure(); err != nil {
		container.Close()
		return nil, err
	}

	if err := container.initializeServices(); err != nil {
		container.Close()
		return nil, err
	}

	container.initializeUseCases()

	return container, nil
}

// initializeInfrastructure는 인프라스트럭처 컴포넌트들을 초기화합니다
func (c *Container) initializeInfrastructure() error {
	c.fileSystem = adapters.NewRealFileSystem(constants.SnapshotDirPerm)
	c.clock = adapters.NewRealClock()

	if err := utils.ValidateComponentPID(c.config.Store.ComponentID); err != nil {
		return err
	}

	var store interfaces.ConfigurationService
	switch c.config.Store.Backend {
	case config.StoreBackendMySQL:
		db, err := sql.Open("mysql", c.buildDSN())
		if err != nil {
			return err
		}

		// 연결 풀 설정
		db.SetMaxOpenConns(c.config.Database.MaxOpenConns)
		db.SetMaxIdleConns(c.config.Database.MaxIdleConns)
		db.SetConnMaxLifetime(c.config.Database.MaxLifetime)
		c.db = db

		// 연결 테스트 및 스키마 준비
		if err := db.Ping(); err != nil {
			return err
		}
		mysqlStore := persistence.NewMySQLConfigurationService(db, c.logger)
		if err := mysqlStore.EnsureSchema(context.Background()); err != nil {
			return err
		}
		store = mysqlStore
	case config.StoreBackendFile:
		c.fileStore = persistence.NewFileConfigurationService(c.fileSystem, c.config.Store.Path, c.logger)
		if c.config.Store.BackupKeep > 0 {
			c.fileStore.WithBackups(persistence.NewSnapshotBackupService(
				c.fileSystem,
				c.clock,
				filepath.Join(c.config.Store.Path, constants.BackupDirName),
				c.config.Store.BackupKeep,
				c.logger,
			))
		}
		store = c.fileStore
	default:
		return fmt.Errorf("unknown store backend: %s", c.config.Store.Backend)
	}

	c.configService = persistence.NewRetryingConfigurationService(
		store,
		utils.RetryConfig{
			MaxAttempts:  c.config.Agent.MaxRetries + 1,
			InitialDelay: c.config.Agent.RetryDelay,
			MaxDelay:     c.config.Agent.Backoff.MaxInterval,
			Multiplier:   c.config.Agent.Backoff.Multiplier,
		},
		c.config.Store.Backend,
		c.logger,
	)

	c.logger.WithFields(logrus.Fields{
		"store_backend": c.config.Store.Backend,
		"component_id":  c.config.Store.ComponentID,
	}).Debug("설정 저장소 초기화 완료")

	return nil
}

// initializeServices는 서비스들을 초기화합니다
func (c *Container) initializeServices() error {
	// 헬스 서비스
	c.healthService = health.NewHealthService(c.clock, c.logger)
	c.healthService.SetStore(c.config.Store.Backend, c.config.Store.ComponentID)

	// 속성 변환 서비스
	c.translator = services.NewConfigTranslator(c.logger)
	c.serializer = services.NewConfigSerializer(c.translator, c.logger)

	// 다국어 메시지 번들
	bundle, err := presentation.NewBundle()
	if err != nil {
		return err
	}
	c.bundle = bundle

	return nil
}

// initializeUseCases는 유스케이스들을 초기화합니다
func (c *Container) initializeUseCases() {
	componentID := c.config.Store.ComponentID

	c.getUseCase = usecases.NewGetInterfaceConfigUseCase(c.configService, c.translator, componentID, c.logger)
	c.updateUseCase = usecases.NewUpdateInterfaceConfigUseCase(c.configService, c.translator, c.serializer, componentID, c.logger)
	c.listUseCase = usecases.NewListInterfacesUseCase(c.configService, c.translator, componentID, c.logger)
	c.auditUseCase = usecases.NewAuditInterfacesUseCase(c.configService, c.translator, c.clock, componentID, c.logger)
}

// buildDSN은 데이터베이스 연결 문자열을 생성합니다
func (c *Container) buildDSN() string {
	cfg := c.config.Database

	dsn := mysql.NewConfig()
	dsn.User = cfg.User
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = cfg.Host + ":" + cfg.Port
	dsn.DBName = cfg.Database
	dsn.ParseTime = true
	return dsn.FormatDSN()
}

// GetConfig는 설정을 반환합니다
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetHealthService는 헬스 서비스를 반환합니다
func (c *Container) GetHealthService() *health.HealthService {
	return c.healthService
}

// GetConfigurationService는 재시도가 적용된 설정 저장소를 반환합니다
func (c *Container) GetConfigurationService() *persistence.RetryingConfigurationService {
	return c.configService
}

// GetFileStore는 파일 백엔드 저장소를 반환합니다. mysql 백엔드이면 nil입니다
func (c *Container) GetFileStore() *persistence.FileConfigurationService {
	return c.fileStore
}

// GetLocalizer는 요청한 언어에 맞는 Localizer를 반환합니다
func (c *Container) GetLocalizer(langs ...string) *presentation.Localizer {
	return presentation.NewLocalizer(c.bundle, langs...)
}

// GetInterfaceConfigUseCase는 인터페이스 설정 조회 유스케이스를 반환합니다
func (c *Container) GetInterfaceConfigUseCase() *usecases.GetInterfaceConfigUseCase {
	return c.getUseCase
}

// GetUpdateInterfaceConfigUseCase는 인터페이스 설정 변경 유스케이스를 반환합니다
func (c *Container) GetUpdateInterfaceConfigUseCase() *usecases.UpdateInterfaceConfigUseCase {
	return c.updateUseCase
}

// GetListInterfacesUseCase는 인터페이스 목록 조회 유스케이스를 반환합니다
func (c *Container) GetListInterfacesUseCase() *usecases.ListInterfacesUseCase {
	return c.listUseCase
}

// GetAuditInterfacesUseCase는 감사 유스케이스를 반환합니다
func (c *Container) GetAuditInterfacesUseCase() *usecases.AuditInterfacesUseCase {
	return c.auditUseCase
}

// Close는 컨테이너를 정리합니다
func (c *Container) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

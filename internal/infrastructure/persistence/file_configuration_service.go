package persistence

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"netif-console/internal/domain/constants"
	"netif-console/internal/domain/entities"
	"netif-console/internal/domain/errors"
	"netif-console/internal/domain/interfaces"
	"netif-console/pkg/utils"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// snapshotDocument는 컴포넌트 스냅샷 파일의 YAML 구조입니다
type snapshotDocument struct {
	Component  string                 `yaml:"component"`
	Properties map[string]interface{} `yaml:"properties"`
}

// FileConfigurationService는 컴포넌트별 YAML 스냅샷 파일에 속성을 저장하는 ConfigurationService 구현체입니다.
// 쓰기는 임시 파일에 기록한 뒤 rename으로 교체하므로 읽는 쪽은 항상 완전한 스냅샷을 봅니다.
type FileConfigurationService struct {
	mu         sync.Mutex
	fileSystem interfaces.FileSystem
	directory  string
	backups    *SnapshotBackupService
	logger     *logrus.Logger
}

// NewFileConfigurationService는 새로운 FileConfigurationService를 생성합니다
func NewFileConfigurationService(fs interfaces.FileSystem, directory string, logger *logrus.Logger) *FileConfigurationService {
	return &FileConfigurationService{
		fileSystem: fs,
		directory:  directory,
		logger:     logger,
	}
}

// WithBackups는 덮어쓰기 전에 이전 스냅샷을 보관하도록 설정합니다
func (s *FileConfigurationService) WithBackups(backups *SnapshotBackupService) *FileConfigurationService {
	s.backups = backups
	return s
}

// FetchConfiguration은 컴포넌트의 스냅샷 파일을 읽습니다. 파일이 없으면 빈 스냅샷을 반환합니다
func (s *FileConfigurationService) FetchConfiguration(ctx context.Context, componentID string) (entities.Properties, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.snapshotPath(componentID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readSnapshot(path)
}

// ApplyConfiguration은 갱신 맵을 현재 스냅샷에 병합해 기록합니다
func (s *FileConfigurationService) ApplyConfiguration(ctx context.Context, componentID string, properties entities.Properties) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.snapshotPath(componentID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.readSnapshot(path)
	if err != nil {
		return err
	}
	for key, value := range properties {
		current[key] = value
	}

	data, err := yaml.Marshal(snapshotDocument{
		Component:  componentID,
		Properties: current,
	})
	if err != nil {
		return errors.NewSystemError("스냅샷 직렬화 실패", err)
	}

	if s.backups != nil {
		if _, err := s.backups.CreateBackup(componentID, path); err != nil {
			return err
		}
	}

	if err := s.replaceSnapshot(path, data); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"component_id": componentID,
		"path":         path,
		"updated_keys": len(properties),
	}).Debug("스냅샷 파일 기록 완료")

	return nil
}

// Ping은 스냅샷 디렉토리에 접근 가능한지 확인합니다
func (s *FileConfigurationService) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.fileSystem.MkdirAll(s.directory, constants.SnapshotDirPerm); err != nil {
		return errors.NewServiceUnavailableError("스냅샷 디렉토리 접근 실패", err)
	}
	return nil
}

// ListComponents는 스냅샷 파일이 있는 컴포넌트 PID 목록을 반환합니다
func (s *FileConfigurationService) ListComponents() ([]string, error) {
	if !s.fileSystem.Exists(s.directory) {
		return []string{}, nil
	}

	files, err := s.fileSystem.ListFiles(s.directory)
	if err != nil {
		return nil, errors.NewServiceUnavailableError("스냅샷 디렉토리 조회 실패", err)
	}

	components := []string{}
	for _, file := range files {
		if filepath.Ext(file) != ".yaml" {
			continue
		}
		components = append(components, file[:len(file)-len(".yaml")])
	}
	return components, nil
}

// RestoreLatestBackup은 가장 최근 백업으로 스냅샷을 되돌리고 사용한 백업 이름을 반환합니다
func (s *FileConfigurationService) RestoreLatestBackup(ctx context.Context, componentID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.backups == nil {
		return "", errors.NewNotFoundError("스냅샷 백업이 설정되지 않음")
	}

	path, err := s.snapshotPath(componentID)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, name, err := s.backups.TakeLatest(componentID)
	if err != nil {
		return "", err
	}

	var doc snapshotDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", errors.NewSystemError(fmt.Sprintf("백업 파일 파싱 실패: %s", name), err)
	}

	if err := s.replaceSnapshot(path, data); err != nil {
		return "", err
	}

	s.logger.WithFields(logrus.Fields{
		"component_id": componentID,
		"backup_file":  name,
	}).Info("스냅샷 백업 복원 완료")

	return name, nil
}

// ListBackups는 컴포넌트의 백업 목록을 오래된 순서로 반환합니다
func (s *FileConfigurationService) ListBackups(componentID string) ([]string, error) {
	if s.backups == nil {
		return []string{}, nil
	}
	return s.backups.ListBackups(componentID)
}

// replaceSnapshot은 임시 파일에 기록한 뒤 rename으로 스냅샷을 교체합니다
func (s *FileConfigurationService) replaceSnapshot(path string, data []byte) error {
	if err := s.fileSystem.MkdirAll(s.directory, constants.SnapshotDirPerm); err != nil {
		return errors.NewServiceUnavailableError("스냅샷 디렉토리 생성 실패", err)
	}

	tmpPath := path + ".tmp"
	if err := s.fileSystem.WriteFile(tmpPath, data, constants.SnapshotFilePerm); err != nil {
		return errors.NewServiceUnavailableError("임시 스냅샷 파일 기록 실패", err)
	}
	if err := s.fileSystem.Rename(tmpPath, path); err != nil {
		_ = s.fileSystem.Remove(tmpPath)
		return errors.NewServiceUnavailableError("스냅샷 파일 교체 실패", err)
	}
	return nil
}

func (s *FileConfigurationService) snapshotPath(componentID string) (string, error) {
	if err := utils.ValidateComponentPID(componentID); err != nil {
		return "", errors.NewValidationError("잘못된 컴포넌트 PID", err)
	}
	return filepath.Join(s.directory, componentID+".yaml"), nil
}

func (s *FileConfigurationService) readSnapshot(path string) (entities.Properties, error) {
	if !s.fileSystem.Exists(path) {
		return entities.Properties{}, nil
	}

	data, err := s.fileSystem.ReadFile(path)
	if err != nil {
		return nil, errors.NewServiceUnavailableError("스냅샷 파일 읽기 실패", err)
	}

	var doc snapshotDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewSystemError(fmt.Sprintf("스냅샷 파일 파싱 실패: %s", path), err)
	}

	props := make(entities.Properties, len(doc.Properties))
	for key, value := range doc.Properties {
		props[key] = value
	}
	return props, nil
}

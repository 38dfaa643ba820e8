package persistence

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"netif-console/internal/domain/constants"
	"netif-console/internal/domain/errors"
	"netif-console/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// 백업 파일명의 타임스탬프 형식 (사전순 정렬이 시간순 정렬이 되도록 고정 폭)
const backupTimestampFormat = "20060102T150405.000000000"

// SnapshotBackupService는 스냅샷 파일을 덮어쓰기 전에 타임스탬프가 붙은 사본을 보관합니다.
// 컴포넌트별로 최신 keep개만 유지합니다.
type SnapshotBackupService struct {
	fileSystem interfaces.FileSystem
	clock      interfaces.Clock
	backupDir  string
	keep       int
	logger     *logrus.Logger
}

// NewSnapshotBackupService는 새로운 SnapshotBackupService를 생성합니다
func NewSnapshotBackupService(
	fs interfaces.FileSystem,
	clock interfaces.Clock,
	backupDir string,
	keep int,
	logger *logrus.Logger,
) *SnapshotBackupService {
	return &SnapshotBackupService{
		fileSystem: fs,
		clock:      clock,
		backupDir:  backupDir,
		keep:       keep,
		logger:     logger,
	}
}

// CreateBackup은 현재 스냅샷 파일의 백업을 만듭니다. 원본이 없으면 아무것도 하지 않고 빈 이름을 반환합니다
func (s *SnapshotBackupService) CreateBackup(componentID, snapshotPath string) (string, error) {
	if !s.fileSystem.Exists(snapshotPath) {
		return "", nil
	}

	content, err := s.fileSystem.ReadFile(snapshotPath)
	if err != nil {
		return "", errors.NewSystemError("스냅샷 파일 읽기 실패", err)
	}

	if err := s.fileSystem.MkdirAll(s.backupDir, constants.SnapshotDirPerm); err != nil {
		return "", errors.NewSystemError("백업 디렉토리 생성 실패", err)
	}

	// 예: org.eclipse.kura.net.admin.NetworkConfigurationService_20260301T120000.000000000.yaml
	name := fmt.Sprintf("%s_%s.yaml", componentID, s.clock.Now().UTC().Format(backupTimestampFormat))
	if err := s.fileSystem.WriteFile(filepath.Join(s.backupDir, name), content, constants.SnapshotFilePerm); err != nil {
		return "", errors.NewSystemError("백업 파일 저장 실패", err)
	}

	s.logger.WithFields(logrus.Fields{
		"component_id": componentID,
		"backup_file":  name,
	}).Debug("스냅샷 백업 생성 완료")

	return name, s.prune(componentID)
}

// ListBackups는 컴포넌트의 백업 파일 이름을 오래된 순서로 반환합니다
func (s *SnapshotBackupService) ListBackups(componentID string) ([]string, error) {
	if !s.fileSystem.Exists(s.backupDir) {
		return []string{}, nil
	}

	files, err := s.fileSystem.ListFiles(s.backupDir)
	if err != nil {
		return nil, errors.NewSystemError("백업 디렉토리 읽기 실패", err)
	}

	prefix := componentID + "_"
	backups := []string{}
	for _, file := range files {
		if strings.HasPrefix(file, prefix) && filepath.Ext(file) == ".yaml" {
			backups = append(backups, file)
		}
	}
	sort.Strings(backups)

	return backups, nil
}

// TakeLatest는 가장 최근 백업의 내용을 반환하고 해당 백업 파일을 삭제합니다.
// 반복 호출하면 더 이전 백업으로 거슬러 올라갑니다.
func (s *SnapshotBackupService) TakeLatest(componentID string) ([]byte, string, error) {
	backups, err := s.ListBackups(componentID)
	if err != nil {
		return nil, "", err
	}
	if len(backups) == 0 {
		return nil, "", errors.NewNotFoundError(fmt.Sprintf("컴포넌트 %s의 백업을 찾을 수 없음", componentID))
	}

	latest := backups[len(backups)-1]
	path := filepath.Join(s.backupDir, latest)
	content, err := s.fileSystem.ReadFile(path)
	if err != nil {
		return nil, "", errors.NewSystemError("백업 파일 읽기 실패", err)
	}
	if err := s.fileSystem.Remove(path); err != nil {
		return nil, "", errors.NewSystemError("백업 파일 삭제 실패", err)
	}

	return content, latest, nil
}

// prune은 보관 개수를 넘는 오래된 백업을 삭제합니다
func (s *SnapshotBackupService) prune(componentID string) error {
	if s.keep <= 0 {
		return nil
	}

	backups, err := s.ListBackups(componentID)
	if err != nil {
		return err
	}

	for len(backups) > s.keep {
		if err := s.fileSystem.Remove(filepath.Join(s.backupDir, backups[0])); err != nil {
			return errors.NewSystemError("오래된 백업 삭제 실패", err)
		}
		s.logger.WithField("backup_file", backups[0]).Debug("오래된 스냅샷 백업 삭제")
		backups = backups[1:]
	}
	return nil
}

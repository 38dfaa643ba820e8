package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"netif-console/internal/domain/entities"
	"netif-console/internal/domain/errors"
	"netif-console/internal/infrastructure/adapters"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steppingClock는 호출마다 1초씩 증가하는 시계입니다
type steppingClock struct {
	now time.Time
}

func (c *steppingClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func newBackedUpService(t *testing.T, keep int) (*FileConfigurationService, string) {
	t.Helper()
	dir := t.TempDir()
	fs := adapters.NewRealFileSystem(0)
	clock := &steppingClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	backups := NewSnapshotBackupService(fs, clock, filepath.Join(dir, "backups"), keep, newTestLogger())
	return NewFileConfigurationService(fs, dir, newTestLogger()).WithBackups(backups), dir
}

func TestFileConfigurationService_Backups(t *testing.T) {
	ctx := context.Background()

	t.Run("첫 기록에는 백업이 없음", func(t *testing.T) {
		service, _ := newBackedUpService(t, 5)

		require.NoError(t, service.ApplyConfiguration(ctx, testPID, entities.Properties{"net.interfaces": "eth0"}))

		backups, err := service.ListBackups(testPID)
		require.NoError(t, err)
		assert.Empty(t, backups)
	})

	t.Run("덮어쓸 때마다 이전 스냅샷 보관", func(t *testing.T) {
		service, _ := newBackedUpService(t, 5)

		require.NoError(t, service.ApplyConfiguration(ctx, testPID, entities.Properties{"net.interfaces": "eth0"}))
		require.NoError(t, service.ApplyConfiguration(ctx, testPID, entities.Properties{"net.interfaces": "eth0,eth1"}))
		require.NoError(t, service.ApplyConfiguration(ctx, testPID, entities.Properties{"net.interfaces": "eth0,eth1,eth2"}))

		backups, err := service.ListBackups(testPID)
		require.NoError(t, err)
		require.Len(t, backups, 2)
		assert.Equal(t, testPID+"_20260301T120001.000000000.yaml", backups[0])
	})

	t.Run("보관 개수 초과 시 오래된 백업 삭제", func(t *testing.T) {
		service, _ := newBackedUpService(t, 2)

		for _, registry := range []string{"a", "a,b", "a,b,c", "a,b,c,d", "a,b,c,d,e"} {
			require.NoError(t, service.ApplyConfiguration(ctx, testPID, entities.Properties{"net.interfaces": registry}))
		}

		backups, err := service.ListBackups(testPID)
		require.NoError(t, err)
		assert.Len(t, backups, 2)
	})

	t.Run("복원은 최신 백업부터 거슬러 올라감", func(t *testing.T) {
		service, _ := newBackedUpService(t, 5)

		require.NoError(t, service.ApplyConfiguration(ctx, testPID, entities.Properties{"net.interfaces": "eth0"}))
		require.NoError(t, service.ApplyConfiguration(ctx, testPID, entities.Properties{"net.interfaces": "eth0,eth1"}))
		require.NoError(t, service.ApplyConfiguration(ctx, testPID, entities.Properties{"net.interfaces": "eth0,eth1,eth2"}))

		_, err := service.RestoreLatestBackup(ctx, testPID)
		require.NoError(t, err)
		props, err := service.FetchConfiguration(ctx, testPID)
		require.NoError(t, err)
		assert.Equal(t, "eth0,eth1", props["net.interfaces"])

		_, err = service.RestoreLatestBackup(ctx, testPID)
		require.NoError(t, err)
		props, err = service.FetchConfiguration(ctx, testPID)
		require.NoError(t, err)
		assert.Equal(t, "eth0", props["net.interfaces"])

		_, err = service.RestoreLatestBackup(ctx, testPID)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("백업이 설정되지 않으면 NotFound", func(t *testing.T) {
		service := NewFileConfigurationService(adapters.NewRealFileSystem(0), t.TempDir(), newTestLogger())

		_, err := service.RestoreLatestBackup(ctx, testPID)
		assert.True(t, errors.IsNotFoundError(err))
	})
}

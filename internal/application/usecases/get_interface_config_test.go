package usecases

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"netif-console/internal/domain/entities"
	domainErrors "netif-console/internal/domain/errors"
	"netif-console/internal/domain/services"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testComponentID = "org.eclipse.kura.net.admin.NetworkConfigurationService"

// Mock 구현체들
type MockConfigurationService struct {
	mock.Mock
}

func (m *MockConfigurationService) FetchConfiguration(ctx context.Context, componentID string) (entities.Properties, error) {
	args := m.Called(ctx, componentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entities.Properties), args.Error(1)
}

func (m *MockConfigurationService) ApplyConfiguration(ctx context.Context, componentID string, properties entities.Properties) error {
	args := m.Called(ctx, componentID, properties)
	return args.Error(0)
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testSnapshot() entities.Properties {
	return entities.Properties{
		"net.interfaces":                                     "lo,eth0,wlan0",
		"net.interface.lo.type":                              "LOOPBACK",
		"net.interface.lo.config.ip4.status":                 "netIPv4StatusUnmanaged",
		"net.interface.lo.config.ip4.address":                "127.0.0.1",
		"net.interface.lo.config.ip4.prefix":                 "255.0.0.0",
		"net.interface.eth0.type":                            "ETHERNET",
		"net.interface.eth0.config.ip4.status":               "netIPv4StatusEnabledWAN",
		"net.interface.eth0.config.dhcpClient4.enabled":      false,
		"net.interface.eth0.config.ip4.address":              "192.168.1.10",
		"net.interface.eth0.config.ip4.prefix":               "255.255.255.0",
		"net.interface.eth0.config.ip4.gateway":              "192.168.1.1",
		"net.interface.eth0.config.ip4.dnsServers":           "8.8.8.8",
		"net.interface.eth0.config.ip4.wan.priority":         5,
		"net.interface.wlan0.type":                           "WIFI",
		"net.interface.wlan0.config.ip4.status":              "netIPv4StatusEnabledLAN",
		"net.interface.wlan0.config.dhcpClient4.enabled":     true,
		"net.interface.wlan0.config.ip4.dnsServers.readOnly": "192.168.0.1",
	}
}

func TestGetInterfaceConfigUseCase_Execute(t *testing.T) {
	logger := newTestLogger()
	translator := services.NewConfigTranslator(logger)

	t.Run("WAN 인터페이스 조회", func(t *testing.T) {
		configService := new(MockConfigurationService)
		configService.On("FetchConfiguration", mock.Anything, testComponentID).Return(testSnapshot(), nil)

		uc := NewGetInterfaceConfigUseCase(configService, translator, testComponentID, logger)
		output, err := uc.Execute(context.Background(), GetInterfaceConfigInput{Name: "eth0"})

		require.NoError(t, err)
		assert.True(t, output.Registered)
		assert.Equal(t, entities.StatusWAN, output.Config.Status)
		assert.Equal(t, 5, output.Config.WANPriority)
		assert.True(t, output.Capabilities.Enabled(services.FieldPriority))
		assert.True(t, output.Capabilities.Enabled(services.FieldGateway))
		assert.True(t, output.Validation.Valid())
		assert.Len(t, output.StatusOptions, 5)
		configService.AssertExpectations(t)
	})

	t.Run("등록되지 않은 인터페이스는 기본값", func(t *testing.T) {
		configService := new(MockConfigurationService)
		configService.On("FetchConfiguration", mock.Anything, testComponentID).Return(testSnapshot(), nil)

		uc := NewGetInterfaceConfigUseCase(configService, translator, testComponentID, logger)
		output, err := uc.Execute(context.Background(), GetInterfaceConfigInput{Name: "eth9"})

		require.NoError(t, err)
		assert.False(t, output.Registered)
		assert.Equal(t, entities.NewDefaultNetInterfaceConfig("eth9"), output.Config)
	})

	t.Run("루프백은 모든 필드 비활성", func(t *testing.T) {
		configService := new(MockConfigurationService)
		configService.On("FetchConfiguration", mock.Anything, testComponentID).Return(testSnapshot(), nil)

		uc := NewGetInterfaceConfigUseCase(configService, translator, testComponentID, logger)
		output, err := uc.Execute(context.Background(), GetInterfaceConfigInput{Name: "lo"})

		require.NoError(t, err)
		assert.Empty(t, output.Capabilities.EnabledFields())
		assert.Equal(t, []entities.Status{entities.StatusUnmanaged}, output.StatusOptions)
	})

	t.Run("빈 이름은 검증 에러", func(t *testing.T) {
		configService := new(MockConfigurationService)

		uc := NewGetInterfaceConfigUseCase(configService, translator, testComponentID, logger)
		_, err := uc.Execute(context.Background(), GetInterfaceConfigInput{Name: " "})

		assert.True(t, domainErrors.IsValidationError(err))
		configService.AssertNotCalled(t, "FetchConfiguration", mock.Anything, mock.Anything)
	})

	t.Run("저장소 실패는 서비스 불가 에러", func(t *testing.T) {
		configService := new(MockConfigurationService)
		storeErr := errors.New("connection refused")
		configService.On("FetchConfiguration", mock.Anything, testComponentID).Return(nil, storeErr)

		uc := NewGetInterfaceConfigUseCase(configService, translator, testComponentID, logger)
		_, err := uc.Execute(context.Background(), GetInterfaceConfigInput{Name: "eth0"})

		require.Error(t, err)
		assert.True(t, domainErrors.IsServiceUnavailableError(err))
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("nil 스냅샷은 빈 스냅샷으로 취급", func(t *testing.T) {
		configService := new(MockConfigurationService)
		configService.On("FetchConfiguration", mock.Anything, testComponentID).Return(nil, nil)

		uc := NewGetInterfaceConfigUseCase(configService, translator, testComponentID, logger)
		output, err := uc.Execute(context.Background(), GetInterfaceConfigInput{Name: "eth0"})

		require.NoError(t, err)
		assert.False(t, output.Registered)
		assert.Equal(t, entities.StatusDisabled, output.Config.Status)
	})
}

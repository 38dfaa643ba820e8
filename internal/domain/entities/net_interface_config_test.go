package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input     string
		want      Status
		wantError bool
	}{
		{input: "netIPv4StatusDisabled", want: StatusDisabled},
		{input: "netIPv4StatusUnmanaged", want: StatusUnmanaged},
		{input: "netIPv4StatusL2Only", want: StatusL2Only},
		{input: "netIPv4StatusEnabledLAN", want: StatusLAN},
		{input: "netIPv4StatusEnabledWAN", want: StatusWAN},
		{input: "wan", want: StatusWAN},
		{input: "l2-only", want: StatusL2Only},
		{input: " LAN ", want: StatusLAN},
		{input: "enabled", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_PropertyValueRoundTrip(t *testing.T) {
	for _, s := range AllStatuses() {
		parsed, err := ParseStatus(s.PropertyValue())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)

		parsed, err = ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
}

func TestStatus_IsActive(t *testing.T) {
	assert.True(t, StatusLAN.IsActive())
	assert.True(t, StatusWAN.IsActive())
	assert.False(t, StatusDisabled.IsActive())
	assert.False(t, StatusUnmanaged.IsActive())
	assert.False(t, StatusL2Only.IsActive())
}

func TestParseHwType(t *testing.T) {
	assert.Equal(t, HwTypeEthernet, ParseHwType("ETHERNET"))
	assert.Equal(t, HwTypeWifi, ParseHwType("wifi"))
	assert.Equal(t, HwTypeModem, ParseHwType(" MODEM"))
	assert.Equal(t, HwTypeLoopback, ParseHwType("LOOPBACK"))
	assert.Equal(t, HwTypeOther, ParseHwType("VLAN"))
	assert.Equal(t, HwTypeOther, ParseHwType(""))
}

func TestParseConfigMode(t *testing.T) {
	mode, err := ParseConfigMode("dhcp")
	require.NoError(t, err)
	assert.Equal(t, ConfigModeDHCP, mode)

	mode, err = ParseConfigMode("manual")
	require.NoError(t, err)
	assert.Equal(t, ConfigModeStatic, mode)

	_, err = ParseConfigMode("bootp")
	assert.Error(t, err)
}

func TestNetInterfaceConfig_Defaults(t *testing.T) {
	config := NewDefaultNetInterfaceConfig("eth0")

	assert.Equal(t, "eth0", config.Name)
	assert.Equal(t, StatusDisabled, config.Status)
	assert.Equal(t, ConfigModeStatic, config.ConfigMode)
	assert.Equal(t, -1, config.WANPriority)
	assert.Empty(t, config.DNSServers)
	assert.False(t, config.IsDHCP())
	assert.False(t, config.IsLoopback())
}

func TestNetInterfaceConfig_HasCustomDNS(t *testing.T) {
	config := NetInterfaceConfig{}
	assert.False(t, config.HasCustomDNS())

	config.DNSServers = []string{"", "  "}
	assert.False(t, config.HasCustomDNS())

	config.DNSServers = []string{"", "8.8.8.8"}
	assert.True(t, config.HasCustomDNS())
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "L2_ONLY", StatusL2Only.String())
	assert.Equal(t, "MODEM", HwTypeModem.String())
	assert.Equal(t, "DHCP", ConfigModeDHCP.String())
	assert.Equal(t, "Status(42)", Status(42).String())
}

func TestProperties_Clone(t *testing.T) {
	props := Properties{"a": "1"}
	clone := props.Clone()
	clone["a"] = "2"

	assert.Equal(t, "1", props["a"])
}

func TestNetInterfaceConfig_JSONUsesEnumNames(t *testing.T) {
	config := NewDefaultNetInterfaceConfig("eth0")
	config.Status = StatusWAN
	config.ConfigMode = ConfigModeDHCP

	data, err := json.Marshal(config)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"WAN"`)
	assert.Contains(t, string(data), `"configMode":"DHCP"`)
	assert.Contains(t, string(data), `"hwType":"OTHER"`)

	var decoded NetInterfaceConfig
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, config, decoded)

	assert.Error(t, json.Unmarshal([]byte(`{"status":"ENABLED"}`), &decoded))
}

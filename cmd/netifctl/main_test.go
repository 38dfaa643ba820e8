package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"netif-console/internal/domain/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const seedSnapshot = `component: org.eclipse.kura.net.admin.NetworkConfigurationService
properties:
  net.interfaces: "lo,eth0,wlan0"
  net.interface.lo.type: "LOOPBACK"
  net.interface.lo.config.ip4.status: "netIPv4StatusUnmanaged"
  net.interface.lo.config.ip4.address: "127.0.0.1"
  net.interface.lo.config.ip4.prefix: "255.0.0.0"
  net.interface.eth0.type: "ETHERNET"
  net.interface.eth0.config.ip4.status: "netIPv4StatusEnabledWAN"
  net.interface.eth0.config.dhcpClient4.enabled: false
  net.interface.eth0.config.ip4.address: "192.168.1.10"
  net.interface.eth0.config.ip4.prefix: "255.255.255.0"
  net.interface.eth0.config.ip4.gateway: "192.168.1.1"
  net.interface.eth0.config.ip4.dnsServers: "8.8.8.8"
  net.interface.eth0.config.ip4.wan.priority: 5
  net.interface.wlan0.type: "WIFI"
  net.interface.wlan0.config.ip4.status: "netIPv4StatusEnabledLAN"
  net.interface.wlan0.config.dhcpClient4.enabled: true
  net.interface.wlan0.config.ip4.dnsServers.readOnly: "192.168.0.1"
`

// testEnv is a snapshot directory plus a netifctl config file pointing at it
type testEnv struct {
	dir        string
	configFile string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	storeDir := filepath.Join(dir, "snapshots")
	require.NoError(t, os.MkdirAll(storeDir, 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(storeDir, constants.NetworkConfigurationServicePID+".yaml"),
		[]byte(seedSnapshot), 0644))

	configFile := filepath.Join(dir, "netifctl.yaml")
	config := "store:\n  backend: file\n  path: " + storeDir + "\nretries: 0\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(configFile, []byte(config), 0644))

	return testEnv{dir: storeDir, configFile: configFile}
}

func (e testEnv) snapshot(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, constants.NetworkConfigurationServicePID+".yaml"))
	require.NoError(t, err)
	return data
}

func (e testEnv) run(args ...string) (string, string, error) {
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", e.configFile}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"list", "get", "set", "capabilities", "form", "audit", "restore", "components"} {
		assert.True(t, names[want], want)
	}
}

func TestListCmd(t *testing.T) {
	env := newTestEnv(t)

	t.Run("텍스트 출력", func(t *testing.T) {
		out, _, err := env.run("list")
		require.NoError(t, err)
		assert.Contains(t, out, "NAME")
		assert.Contains(t, out, "eth0")
		assert.Contains(t, out, "WIFI")
	})

	t.Run("JSON 출력은 레지스트리 순서", func(t *testing.T) {
		out, _, err := env.run("list", "-o", "json")
		require.NoError(t, err)

		var interfaces []map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &interfaces))
		require.Len(t, interfaces, 3)
		assert.Equal(t, "lo", interfaces[0]["name"])
		assert.Equal(t, "eth0", interfaces[1]["name"])
		assert.Equal(t, "WAN", interfaces[1]["status"])
		assert.Equal(t, "wlan0", interfaces[2]["name"])
	})
}

func TestGetCmd(t *testing.T) {
	env := newTestEnv(t)

	t.Run("JSON 출력", func(t *testing.T) {
		out, _, err := env.run("get", "eth0", "-o", "json")
		require.NoError(t, err)

		var view struct {
			Config struct {
				Status      string   `json:"status"`
				ConfigMode  string   `json:"configMode"`
				Gateway     string   `json:"gateway"`
				DNSServers  []string `json:"dnsServers"`
				WANPriority int      `json:"wanPriority"`
			} `json:"config"`
			Registered bool `json:"registered"`
			Valid      bool `json:"valid"`
			Fields     []struct {
				Name    string `json:"name"`
				Enabled bool   `json:"enabled"`
			} `json:"fields"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &view))
		assert.Equal(t, "WAN", view.Config.Status)
		assert.Equal(t, "STATIC", view.Config.ConfigMode)
		assert.Equal(t, "192.168.1.1", view.Config.Gateway)
		assert.Equal(t, []string{"8.8.8.8"}, view.Config.DNSServers)
		assert.Equal(t, 5, view.Config.WANPriority)
		assert.True(t, view.Registered)
		assert.True(t, view.Valid)
		require.Len(t, view.Fields, 8)
		assert.Equal(t, "priority", view.Fields[1].Name)
		assert.True(t, view.Fields[1].Enabled)
	})

	t.Run("등록되지 않은 인터페이스는 기본값", func(t *testing.T) {
		out, _, err := env.run("get", "eth9", "-o", "yaml")
		require.NoError(t, err)

		var view map[string]interface{}
		require.NoError(t, yaml.Unmarshal([]byte(out), &view))
		assert.Equal(t, false, view["registered"])
		config := view["config"].(map[string]interface{})
		assert.Equal(t, "DISABLED", config["status"])
	})

	t.Run("잘못된 인터페이스 이름", func(t *testing.T) {
		_, _, err := env.run("get", "not a name")
		assert.Error(t, err)
	})
}

func TestSetCmd(t *testing.T) {
	t.Run("플래그로 고정 주소 설정", func(t *testing.T) {
		env := newTestEnv(t)

		_, _, err := env.run("set", "wlan0", "--mode", "STATIC", "--ip", "10.0.0.5", "--subnet", "255.255.255.0")
		require.NoError(t, err)

		out, _, err := env.run("get", "wlan0", "-o", "json")
		require.NoError(t, err)
		var view struct {
			Config struct {
				ConfigMode string `json:"configMode"`
				IPAddress  string `json:"ipAddress"`
				SubnetMask string `json:"subnetMask"`
			} `json:"config"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &view))
		assert.Equal(t, "STATIC", view.Config.ConfigMode)
		assert.Equal(t, "10.0.0.5", view.Config.IPAddress)
		assert.Equal(t, "255.255.255.0", view.Config.SubnetMask)
	})

	t.Run("새 인터페이스는 레지스트리에 추가", func(t *testing.T) {
		env := newTestEnv(t)

		out, _, err := env.run("set", "eth1", "--status", "LAN", "--mode", "DHCP", "-o", "json")
		require.NoError(t, err)
		var view updateView
		require.NoError(t, json.Unmarshal([]byte(out), &view))
		assert.True(t, view.RegistryAppended)
		assert.Contains(t, view.UpdatedKeys, constants.NetInterfacesKey)

		out, _, err = env.run("list", "-o", "json")
		require.NoError(t, err)
		var interfaces []map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &interfaces))
		require.Len(t, interfaces, 4)
		assert.Equal(t, "eth1", interfaces[3]["name"])
	})

	t.Run("검증 실패 시 아무것도 기록하지 않음", func(t *testing.T) {
		env := newTestEnv(t)
		before := env.snapshot(t)

		_, stderr, err := env.run("set", "eth0", "--gateway", "")
		require.Error(t, err)
		assert.Contains(t, stderr, "Gateway: This field is required")
		assert.Equal(t, before, env.snapshot(t))
	})

	t.Run("독일어 검증 메시지", func(t *testing.T) {
		env := newTestEnv(t)

		_, stderr, err := env.run("set", "eth0", "--ip", "300.1.1.1", "--lang", "de")
		require.Error(t, err)
		assert.Contains(t, stderr, "IP-Adresse: Ungültige IPv4-Adresse")
	})

	t.Run("잘못된 우선순위", func(t *testing.T) {
		env := newTestEnv(t)
		before := env.snapshot(t)

		_, stderr, err := env.run("set", "eth0", "--priority", "-5")
		require.Error(t, err)
		assert.Contains(t, stderr, "WAN Priority: Priority must be -1 or greater")
		assert.Equal(t, before, env.snapshot(t))

		_, stderr, err = env.run("set", "eth0", "--priority", "high", "--lang", "de")
		require.Error(t, err)
		assert.Contains(t, stderr, "WAN-Priorität: Die Priorität muss -1 oder größer sein")
		assert.Equal(t, before, env.snapshot(t))
	})

	t.Run("루프백은 파일의 하드웨어 타입과 무관하게 유지", func(t *testing.T) {
		env := newTestEnv(t)
		file := filepath.Join(t.TempDir(), "lo.yaml")
		require.NoError(t, os.WriteFile(file, []byte("hwType: ETHERNET\nstatus: LAN\nconfigMode: STATIC\nipAddress: 10.9.9.9\nsubnetMask: 255.255.255.0\n"), 0644))

		_, _, err := env.run("set", "lo", "-f", file)
		require.NoError(t, err)

		out, _, err := env.run("get", "lo", "-o", "json")
		require.NoError(t, err)
		var view map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &view))
		config, ok := view["config"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "LOOPBACK", config["hwType"])
		assert.Equal(t, "UNMANAGED", config["status"])
		assert.Equal(t, "127.0.0.1", config["ipAddress"])
		assert.Equal(t, "255.0.0.0", config["subnetMask"])
	})

	t.Run("YAML 파일 적용 후 플래그 우선", func(t *testing.T) {
		env := newTestEnv(t)
		file := filepath.Join(t.TempDir(), "eth0.yaml")
		require.NoError(t, os.WriteFile(file, []byte("gateway: 192.168.1.254\ndnsServers: [\"1.1.1.1\", \"9.9.9.9\"]\nwanPriority: 1\n"), 0644))

		out, _, err := env.run("set", "eth0", "-f", file, "--priority", "2", "-o", "yaml")
		require.NoError(t, err)

		var view struct {
			Config struct {
				Gateway     string   `yaml:"gateway"`
				DNSServers  []string `yaml:"dnsServers"`
				WANPriority int      `yaml:"wanPriority"`
			} `yaml:"config"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(out), &view))
		assert.Equal(t, "192.168.1.254", view.Config.Gateway)
		assert.Equal(t, []string{"1.1.1.1", "9.9.9.9"}, view.Config.DNSServers)
		assert.Equal(t, 2, view.Config.WANPriority)
	})
}

func TestCapabilitiesCmd(t *testing.T) {
	env := newTestEnv(t)

	t.Run("모뎀 WAN DHCP", func(t *testing.T) {
		out, _, err := env.run("capabilities", "--hw", "MODEM", "--status", "WAN", "--mode", "DHCP", "-o", "json")
		require.NoError(t, err)

		var view struct {
			StatusOptions []string `json:"statusOptions"`
			Fields        []struct {
				Name    string `json:"name"`
				Enabled bool   `json:"enabled"`
			} `json:"fields"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &view))
		assert.Equal(t, []string{"DISABLED", "UNMANAGED", "WAN"}, view.StatusOptions)
		require.Len(t, view.Fields, 8)
	})

	t.Run("텍스트 출력", func(t *testing.T) {
		out, _, err := env.run("capabilities", "--hw", "ETHERNET", "--status", "LAN", "--mode", "STATIC")
		require.NoError(t, err)
		assert.Contains(t, out, "FIELD")
		assert.Contains(t, out, "Status options: DISABLED, UNMANAGED, L2_ONLY, LAN, WAN")
	})

	t.Run("알 수 없는 하드웨어 타입", func(t *testing.T) {
		_, _, err := env.run("capabilities", "--hw", "TOKENRING")
		assert.Error(t, err)
	})
}

func TestFormCmd(t *testing.T) {
	env := newTestEnv(t)

	t.Run("독일어 폼", func(t *testing.T) {
		out, _, err := env.run("form", "wlan0", "--lang", "de")
		require.NoError(t, err)
		assert.Contains(t, out, "wlan0 (WLAN)")
		assert.Contains(t, out, "DNS-Server (über DHCP): 192.168.0.1")
	})

	t.Run("루프백 안내", func(t *testing.T) {
		out, _, err := env.run("form", "lo")
		require.NoError(t, err)
		assert.Contains(t, out, "The loopback interface cannot be modified")
	})
}

func TestAuditCmd(t *testing.T) {
	t.Run("모두 유효", func(t *testing.T) {
		env := newTestEnv(t)

		out, _, err := env.run("audit")
		require.NoError(t, err)
		assert.Contains(t, out, "eth0")
	})

	t.Run("유효하지 않은 저장 설정", func(t *testing.T) {
		env := newTestEnv(t)
		broken := bytes.Replace(env.snapshot(t), []byte(`  net.interface.eth0.config.ip4.gateway: "192.168.1.1"`+"\n"), nil, 1)
		require.NoError(t, os.WriteFile(filepath.Join(env.dir, constants.NetworkConfigurationServicePID+".yaml"), broken, 0644))

		out, _, err := env.run("audit", "-o", "json")
		require.Error(t, err)

		var view auditView
		require.NoError(t, json.Unmarshal([]byte(out), &view))
		assert.Equal(t, 1, view.InvalidCount)
		assert.Equal(t, 3, view.TotalCount)
	})
}

func TestRestoreCmd(t *testing.T) {
	env := newTestEnv(t)
	before := env.snapshot(t)

	_, _, err := env.run("set", "eth0", "--gateway", "192.168.1.254")
	require.NoError(t, err)

	out, _, err := env.run("restore", "--list", "-o", "json")
	require.NoError(t, err)
	var backups []string
	require.NoError(t, json.Unmarshal([]byte(out), &backups))
	require.Len(t, backups, 1)

	out, _, err = env.run("restore")
	require.NoError(t, err)
	assert.Contains(t, out, "restored "+backups[0])
	assert.Equal(t, before, env.snapshot(t))

	_, _, err = env.run("restore")
	assert.Error(t, err)
}

func TestComponentsCmd(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run("components", "-o", "json")
	require.NoError(t, err)

	var components []string
	require.NoError(t, json.Unmarshal([]byte(out), &components))
	assert.Equal(t, []string{constants.NetworkConfigurationServicePID}, components)
}

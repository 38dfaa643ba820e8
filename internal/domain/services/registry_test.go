package services

import (
	"testing"

	"netif-console/internal/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestInterfaceRegistry_Add(t *testing.T) {
	registry := ParseInterfaceRegistry("eth0,wlan0")

	added, ok := registry.Add("eth1")
	assert.True(t, ok)
	assert.Equal(t, "eth0,wlan0,eth1", added.String())
	// 원본은 변경되지 않음
	assert.Equal(t, "eth0,wlan0", registry.String())

	same, ok := registry.Add("eth0")
	assert.False(t, ok)
	assert.Equal(t, "eth0,wlan0", same.String())

	_, ok = registry.Add(" ")
	assert.False(t, ok)
}

func TestParseInterfaceRegistry(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"공백 제거", " eth0 , wlan0 ", []string{"eth0", "wlan0"}},
		{"중복 제거", "eth0,wlan0,eth0", []string{"eth0", "wlan0"}},
		{"빈 항목 무시", "eth0,,wlan0,", []string{"eth0", "wlan0"}},
		{"빈 값", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInterfaceRegistry(tt.input).Names())
		})
	}
}

func TestRegistryFromProperties(t *testing.T) {
	assert.Equal(t, 0, RegistryFromProperties(entities.Properties{}).Len())
	assert.Equal(t, "eth0,lo", RegistryFromProperties(entities.Properties{"net.interfaces": "eth0,lo"}).String())
	assert.Equal(t, "eth0,lo", RegistryFromProperties(entities.Properties{"net.interfaces": []string{"eth0", "lo"}}).String())
	assert.Equal(t, "eth0,lo", RegistryFromProperties(entities.Properties{"net.interfaces": []interface{}{"eth0", " lo"}}).String())
	assert.True(t, RegistryFromProperties(entities.Properties{"net.interfaces": "eth0"}).Contains("eth0"))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "sim", cfg.Adapter)
	assert.Len(t, cfg.Devices, 1)
	assert.Equal(t, "i2csens", cfg.Devices[0].Name)
	assert.Equal(t, "mistra,i2csens", cfg.Devices[0].Compatible)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i2csens.yaml")
	err := os.WriteFile(path, []byte(`adapter: linux
bus: /dev/i2c-1
devices:
  - name: i2csens
    compatible: mistra,i2csens
    address: 0x4c
`), 0o600)
	assert.NoError(t, err)

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "linux", cfg.Adapter)
	assert.Equal(t, "/dev/i2c-1", cfg.Bus)
	assert.Len(t, cfg.Devices, 1)
	assert.Equal(t, byte(0x4c), cfg.Devices[0].Address)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("adapter: [\n"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_NoDevices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("adapter: sim\ndevices: []\n"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}

// Package config loads the CLI device configuration: which adapter carries
// the bus, where the bus lives and which peripherals sit on it.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mistra/i2csens/driver"
)

// Config describes one bus and the peripherals attached to it.
type Config struct {
	// Adapter selects the transport: "sim", "linux", "mcp2221" or "gobot".
	Adapter string `yaml:"adapter"`
	// Bus is the bus reference for the linux adapter, e.g. "/dev/i2c-1" or "1".
	Bus string `yaml:"bus"`
	// GobotBus is the bus number for the gobot adapter.
	GobotBus int `yaml:"gobot_bus"`
	// Devices lists the peripherals to bind.
	Devices []driver.DeviceInfo `yaml:"devices"`
}

// Default returns the configuration used when no file is given: the
// simulated peripheral with the i2csens identity at its default address.
func Default() *Config {
	return &Config{
		Adapter: "sim",
		Devices: []driver.DeviceInfo{
			{Name: driver.DeviceName, Compatible: driver.CompatibleID},
		},
	}
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	cfg := Default()
	err = yaml.Unmarshal(raw, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	if len(cfg.Devices) == 0 {
		return nil, fmt.Errorf("config file %s declares no devices", path)
	}
	return cfg, nil
}

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"

	"github.com/mistra/i2csens"
	"github.com/mistra/i2csens/adapter"
	"github.com/mistra/i2csens/config"
	"github.com/mistra/i2csens/driver"
	i2cbus "github.com/mistra/i2csens/i2c"
	"github.com/mistra/i2csens/sim"
)

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if a := c.String("adapter"); a != "" {
		cfg.Adapter = a
	}
	if b := c.String("bus"); b != "" {
		cfg.Bus = b
	}
	return cfg, nil
}

func openBus(cfg *config.Config) (i2csens.I2CBus, error) {
	switch cfg.Adapter {
	case "", "sim":
		return sim.New(), nil
	case "linux":
		return i2cbus.NewGenericBus(cfg.Bus)
	case "mcp2221":
		bridge := adapter.NewMCP2221()
		err := bridge.Init()
		if err != nil {
			return nil, fmt.Errorf("adapter initialization error: %w", err)
		}
		return bridge, nil
	case "gobot":
		npi := nanopi.NewNeoAdaptor()
		err := npi.I2cBusAdaptor.Connect()
		if err != nil {
			return nil, fmt.Errorf("adaptor connect error: %w", err)
		}
		opts := []adapter.GobotBusOption{}
		if cfg.GobotBus != 0 {
			opts = append(opts, adapter.WithBusNumber(cfg.GobotBus))
		}
		return adapter.NewGobotBus(npi, opts...), nil
	default:
		return nil, fmt.Errorf("unknown adapter %q", cfg.Adapter)
	}
}

// bindDevice opens the configured bus and binds the first configured device
// through the driver table.
func bindDevice(ctx context.Context, c *cli.Context) (*driver.Device, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	bus, err := openBus(cfg)
	if err != nil {
		return nil, err
	}
	registry := driver.NewRegistry(driver.I2CSens())
	return registry.Bind(ctx, bus, cfg.Devices[0])
}

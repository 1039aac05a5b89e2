package driver

import (
	"context"
	"log/slog"

	"github.com/mistra/i2csens"
	"github.com/mistra/i2csens/attr"
	"github.com/mistra/i2csens/sensor"
)

// DriverName is the registered name of the i2csens driver.
const DriverName = "i2csensdrv"

// DeviceName is the device id the driver binds to.
const DeviceName = "i2csens"

// CompatibleID is the device-tree compatible string the driver binds to.
const CompatibleID = "mistra,i2csens"

// I2CSens returns the driver table entry for the i2csens temperature/control
// sensor. Probe verifies the peripheral identity and exposes the enable and
// data attributes. A failed attribute registration is logged and tolerated:
// the device stays bound even when not reachable through the attribute
// surface.
func I2CSens() Driver {
	return Driver{
		Name:       DriverName,
		IDTable:    []string{DeviceName},
		Compatible: []string{CompatibleID},
		Probe: func(ctx context.Context, bus i2csens.I2CBus, info DeviceInfo) (*Device, error) {
			opts := []sensor.ConfigOption{}
			if info.Address != 0 {
				opts = append(opts, sensor.WithAddress(info.Address))
			}
			s, err := sensor.New(ctx, bus, opts...)
			if err != nil {
				return nil, err
			}
			group := attr.NewGroup(info.Name)
			for _, a := range []attr.Attribute{attr.Enable(s), attr.Data(s)} {
				err = group.Register(a)
				if err != nil {
					slog.Warn("cannot expose device attribute", "device", info.Name, "attribute", a.Name, "error", err)
				}
			}
			return &Device{Info: info, Attrs: group, release: s.Release}, nil
		},
	}
}

// Package driver matches discovered peripherals against a driver table and
// binds them. The table is explicit configuration handed to NewRegistry;
// there is no process-wide driver state.
package driver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mistra/i2csens"
	"github.com/mistra/i2csens/attr"
)

var ErrNoMatch = fmt.Errorf("no driver matches device")

// DeviceInfo describes a discovered peripheral before binding: its device
// id, its device-tree style compatible string and its bus address.
type DeviceInfo struct {
	Name       string `yaml:"name"`
	Compatible string `yaml:"compatible"`
	Address    byte   `yaml:"address"`
}

// Device is a bound peripheral: its attribute group plus a release hook for
// unbinding. Attrs may be empty when attribute exposure failed; the device
// stays bound and reachable through the handle regardless.
type Device struct {
	Info    DeviceInfo
	Attrs   *attr.Group
	release func(ctx context.Context) error
}

// Unbind tears the binding down and hands the transport back.
func (d *Device) Unbind(ctx context.Context) error {
	if d.release == nil {
		return nil
	}
	return d.release(ctx)
}

// Driver couples a matching table with a probe function. Probe performs
// device verification and attribute exposure; a probe error rejects the
// binding entirely.
type Driver struct {
	Name       string
	IDTable    []string
	Compatible []string
	Probe      func(ctx context.Context, bus i2csens.I2CBus, info DeviceInfo) (*Device, error)
}

func (d Driver) matches(info DeviceInfo) bool {
	for _, c := range d.Compatible {
		if c == info.Compatible {
			return true
		}
	}
	for _, id := range d.IDTable {
		if id == info.Name {
			return true
		}
	}
	return false
}

// Registry holds the driver table. Drivers are matched in registration order.
type Registry struct {
	drivers []Driver
}

func NewRegistry(drivers ...Driver) *Registry {
	return &Registry{drivers: drivers}
}

// Bind finds the first driver matching info and probes the device over the
// given transport. It returns ErrNoMatch when no table entry applies and
// propagates probe failures as binding failures.
func (r *Registry) Bind(ctx context.Context, bus i2csens.I2CBus, info DeviceInfo) (*Device, error) {
	for _, d := range r.drivers {
		if !d.matches(info) {
			continue
		}
		slog.Debug("binding device", "driver", d.Name, "device", info.Name, "addr", info.Address)
		dev, err := d.Probe(ctx, bus, info)
		if err != nil {
			return nil, fmt.Errorf("driver %s: probe of %s failed: %w", d.Name, info.Name, err)
		}
		return dev, nil
	}
	return nil, fmt.Errorf("%w: %s (compatible %q)", ErrNoMatch, info.Name, info.Compatible)
}

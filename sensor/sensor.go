package sensor

import (
	"context"
	"fmt"
	"sync"

	"github.com/mistra/i2csens"
	"github.com/mistra/i2csens/regmap"
)

// DefaultAddress is the 7-bit I2C address the sensor answers on.
const DefaultAddress = 0x4C

// Register layout. Only the control register is writable.
const (
	RegIdentity byte = 0x00
	RegControl  byte = 0x01
	RegData     byte = 0x02
)

const ctrlEnableMask = 0x01

// Identity is the expected value of the identity register. A peripheral
// reporting anything else is not an i2csens and must not be bound.
const Identity = 0x5A

var ErrUnexpectedIdentity = fmt.Errorf("unexpected identity register value")

// Sensor represents the i2csens temperature/control peripheral: an identity
// register, a one byte control register (bit 0 enables the sensor) and a one
// byte data register holding the raw sample in half-degree units.
//
// Usage: instantiate with New, which verifies the peripheral identity,
// then call Enabled/SetEnabled/TemperatureMilli.
type Sensor struct {
	mx   sync.Mutex
	regs *regmap.RegMap
}

type Config struct {
	Address byte
}

type ConfigOption func(*Config)

func WithAddress(address byte) ConfigOption {
	return func(c *Config) {
		c.Address = address
	}
}

// New creates a sensor handle over the given transport and verifies the
// peripheral identity with a single read of the identity register. It fails
// if the transaction fails or if the identity does not match; no handle is
// produced in either case and the device must not be exposed.
func New(ctx context.Context, trans i2csens.I2CBus, opts ...ConfigOption) (*Sensor, error) {
	config := &Config{Address: DefaultAddress}
	for _, opt := range opts {
		opt(config)
	}
	regs := regmap.New(trans, config.Address, regmap.Config{
		MaxRegister: RegData,
		Writeable: func(reg byte) bool {
			return reg == RegControl
		},
	})
	id, err := regs.Read(ctx, RegIdentity)
	if err != nil {
		return nil, fmt.Errorf("i2csens: could not read identity register: %w", err)
	}
	if id != Identity {
		return nil, fmt.Errorf("i2csens: %w: got %#x, want %#x", ErrUnexpectedIdentity, id, Identity)
	}
	return &Sensor{regs: regs}, nil
}

// Enabled reads the control register and returns the state of the enable bit.
func (s *Sensor) Enabled(ctx context.Context) (bool, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	ctrl, err := s.regs.Read(ctx, RegControl)
	if err != nil {
		return false, fmt.Errorf("i2csens: could not read control register: %w", err)
	}
	return ctrl&ctrlEnableMask != 0, nil
}

// SetEnabled flips the enable bit of the control register, preserving the
// reserved bits through a read-modify-write sequence. The sequence runs
// under the handle lock so concurrent toggles cannot interleave and lose
// updates. A failed read aborts the sequence without writing.
func (s *Sensor) SetEnabled(ctx context.Context, enabled bool) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	ctrl, err := s.regs.Read(ctx, RegControl)
	if err != nil {
		return fmt.Errorf("i2csens: could not read control register: %w", err)
	}
	if enabled {
		ctrl |= ctrlEnableMask
	} else {
		ctrl &^= ctrlEnableMask
	}
	err = s.regs.Write(ctx, RegControl, ctrl)
	if err != nil {
		return fmt.Errorf("i2csens: could not write control register: %w", err)
	}
	return nil
}

// TemperatureMilli reads the data register and converts the raw sample to
// milli-degrees: the raw byte counts half degrees, so milli = raw * 1000 >> 1.
func (s *Sensor) TemperatureMilli(ctx context.Context) (int32, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	raw, err := s.regs.Read(ctx, RegData)
	if err != nil {
		return 0, fmt.Errorf("i2csens: could not read data register: %w", err)
	}
	return int32(raw) * 1000 >> 1, nil
}

// GetTemperature returns the current temperature in Celsius.
func (s *Sensor) GetTemperature(ctx context.Context) (float32, error) {
	milli, err := s.TemperatureMilli(ctx)
	if err != nil {
		return 0, err
	}
	return float32(milli) / 1000, nil
}

// Release hands the transport back. Called when the device is unbound.
func (s *Sensor) Release(ctx context.Context) error {
	return s.regs.Release(ctx)
}

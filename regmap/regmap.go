package regmap

import (
	"context"
	"fmt"

	"github.com/mistra/i2csens"
)

var ErrReadOnly = fmt.Errorf("register is read-only")
var ErrOutOfRange = fmt.Errorf("register out of range")

// Config describes the register layout constraints of a peripheral with
// 8-bit register indexes and 8-bit values. Writeable decides, per register,
// whether a write may reach the bus at all; a nil predicate makes every
// register writable. There is no register cache: every access is a bus
// transaction.
type Config struct {
	MaxRegister byte
	Writeable   func(reg byte) bool
}

// RegMap translates register reads and writes into bus transactions against
// a single peripheral address. A register read is a write of the register
// index followed by a one byte read; a register write sends the index and
// the value in one transaction.
type RegMap struct {
	transport i2csens.I2CBus
	address   byte
	config    Config
}

func New(transport i2csens.I2CBus, address byte, config Config) *RegMap {
	return &RegMap{transport: transport, address: address, config: config}
}

func (m *RegMap) Read(ctx context.Context, reg byte) (byte, error) {
	if reg > m.config.MaxRegister {
		return 0, fmt.Errorf("regmap: read of register %#x: %w", reg, ErrOutOfRange)
	}
	err := m.transport.WriteToAddr(ctx, m.address, []byte{reg})
	if err != nil {
		return 0, fmt.Errorf("regmap: could not select register %#x: %w", reg, err)
	}
	resp := make([]byte, 1)
	err = m.transport.ReadFromAddr(ctx, m.address, resp)
	if err != nil {
		return 0, fmt.Errorf("regmap: could not read register %#x: %w", reg, err)
	}
	return resp[0], nil
}

func (m *RegMap) Write(ctx context.Context, reg, value byte) error {
	if reg > m.config.MaxRegister {
		return fmt.Errorf("regmap: write of register %#x: %w", reg, ErrOutOfRange)
	}
	if m.config.Writeable != nil && !m.config.Writeable(reg) {
		return fmt.Errorf("regmap: write of register %#x: %w", reg, ErrReadOnly)
	}
	err := m.transport.WriteToAddr(ctx, m.address, []byte{reg, value})
	if err != nil {
		return fmt.Errorf("regmap: could not write register %#x: %w", reg, err)
	}
	return nil
}

// Release hands the bus back to the transport. Called on device unbind.
func (m *RegMap) Release(ctx context.Context) error {
	return m.transport.Release(ctx)
}

// Package sim provides an in-memory rendition of the i2csens peripheral:
// three 8-bit registers behind a register pointer, reachable through the
// same transport interface as the real bus. It backs the CLI's sim adapter
// and the package tests; the original device lived in a QEMU machine model.
package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/mistra/i2csens"
)

// DefaultAddress is the 7-bit bus address the simulated peripheral answers on.
const DefaultAddress = 0x4C

// Identity is the reset value of register 0.
const Identity = 0x5A

const registerCount = 3

var _ i2csens.I2CBus = &Peripheral{}

var ErrAddressMismatch = fmt.Errorf("sim: no peripheral at address")
var ErrNoData = fmt.Errorf("sim: empty transaction")

// Peripheral implements i2csens.I2CBus with register-pointer wire
// semantics: a one byte write selects a register, a two byte write selects
// and stores, a read returns bytes starting at the selected register.
// All registers accept writes; write protection is a register map concern,
// not a wire concern.
type Peripheral struct {
	mx       sync.Mutex
	address  byte
	pointer  byte
	regs     [registerCount]byte
	reads    int
	writes   int
	readErr  error
	writeErr error
}

type Option func(*Peripheral)

func WithAddress(address byte) Option {
	return func(p *Peripheral) {
		p.address = address
	}
}

// WithIdentity overrides the reset value of the identity register. Used to
// exercise the driver against a foreign peripheral.
func WithIdentity(id byte) Option {
	return func(p *Peripheral) {
		p.regs[0] = id
	}
}

func WithControl(ctrl byte) Option {
	return func(p *Peripheral) {
		p.regs[1] = ctrl
	}
}

func WithData(data byte) Option {
	return func(p *Peripheral) {
		p.regs[2] = data
	}
}

func New(opts ...Option) *Peripheral {
	p := &Peripheral{address: DefaultAddress}
	p.regs[0] = Identity
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Peripheral) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	p.mx.Lock()
	defer p.mx.Unlock()
	p.writes++
	if p.writeErr != nil {
		return p.writeErr
	}
	if address != p.address {
		return fmt.Errorf("%w %#x", ErrAddressMismatch, address)
	}
	if len(buffer) == 0 {
		return ErrNoData
	}
	p.pointer = buffer[0] % registerCount
	for i, val := range buffer[1:] {
		p.regs[(int(p.pointer)+i)%registerCount] = val
	}
	return nil
}

func (p *Peripheral) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	p.mx.Lock()
	defer p.mx.Unlock()
	p.reads++
	if p.readErr != nil {
		return p.readErr
	}
	if address != p.address {
		return fmt.Errorf("%w %#x", ErrAddressMismatch, address)
	}
	for i := range buffer {
		buffer[i] = p.regs[(int(p.pointer)+i)%registerCount]
	}
	return nil
}

func (p *Peripheral) Release(ctx context.Context) error {
	return nil
}

// FailReads makes every subsequent read transaction return err. A nil err
// restores normal operation.
func (p *Peripheral) FailReads(err error) {
	p.mx.Lock()
	defer p.mx.Unlock()
	p.readErr = err
}

// FailWrites makes every subsequent write transaction return err. A nil err
// restores normal operation.
func (p *Peripheral) FailWrites(err error) {
	p.mx.Lock()
	defer p.mx.Unlock()
	p.writeErr = err
}

// Register returns the current value of a register, bypassing the wire.
func (p *Peripheral) Register(reg byte) byte {
	p.mx.Lock()
	defer p.mx.Unlock()
	return p.regs[reg%registerCount]
}

// SetRegister stores a register value out of band, bypassing the wire and
// any write protection. Test setup uses it to plant sensor samples.
func (p *Peripheral) SetRegister(reg, value byte) {
	p.mx.Lock()
	defer p.mx.Unlock()
	p.regs[reg%registerCount] = value
}

// Transactions reports how many read and write transactions reached the
// peripheral since creation.
func (p *Peripheral) Transactions() (reads, writes int) {
	p.mx.Lock()
	defer p.mx.Unlock()
	return p.reads, p.writes
}

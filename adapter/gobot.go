package adapter

import (
	"context"
	"fmt"
	"sync"

	gi2c "gobot.io/x/gobot/v2/drivers/i2c"

	"github.com/mistra/i2csens"
)

var _ i2csens.I2CBus = &GobotBus{}

// GobotBus is a transport over a gobot I2C connector, for boards where a
// gobot platform adaptor is the available bus access path. Connections are
// opened per peripheral address on first use and kept until Release.
type GobotBus struct {
	mx        sync.Mutex
	connector gi2c.Connector
	bus       int
	conns     map[byte]gi2c.Connection
}

type GobotBusOption func(*GobotBus)

func WithBusNumber(bus int) GobotBusOption {
	return func(b *GobotBus) {
		b.bus = bus
	}
}

func NewGobotBus(connector gi2c.Connector, opts ...GobotBusOption) *GobotBus {
	b := &GobotBus{
		connector: connector,
		bus:       connector.DefaultI2cBus(),
		conns:     make(map[byte]gi2c.Connection),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *GobotBus) connection(address byte) (gi2c.Connection, error) {
	if conn, ok := b.conns[address]; ok {
		return conn, nil
	}
	conn, err := b.connector.GetI2cConnection(int(address), b.bus)
	if err != nil {
		return nil, fmt.Errorf("could not get i2c connection to %#x on bus %d: %w", address, b.bus, err)
	}
	b.conns[address] = conn
	return conn, nil
}

func (b *GobotBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	conn, err := b.connection(address)
	if err != nil {
		return err
	}
	n, err := conn.Read(buffer)
	if err != nil {
		return fmt.Errorf("could not read from i2c address %#x: %w", address, err)
	}
	if n != len(buffer) {
		return fmt.Errorf("short read from i2c address %#x: %d of %d bytes", address, n, len(buffer))
	}
	return nil
}

func (b *GobotBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	conn, err := b.connection(address)
	if err != nil {
		return err
	}
	n, err := conn.Write(buffer)
	if err != nil {
		return fmt.Errorf("could not write to i2c address %#x: %w", address, err)
	}
	if n != len(buffer) {
		return fmt.Errorf("short write to i2c address %#x: %d of %d bytes", address, n, len(buffer))
	}
	return nil
}

func (b *GobotBus) Release(ctx context.Context) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	var firstErr error
	for addr, conn := range b.conns {
		err := conn.Close()
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("could not close connection to %#x: %w", addr, err)
		}
		delete(b.conns, addr)
	}
	return firstErr
}

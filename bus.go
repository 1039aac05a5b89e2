package i2csens

import (
	"context"
	"fmt"
)

var ErrBusBusy = fmt.Errorf("I2C engine is busy (command not completed)")

type AddressableReader interface {
	ReadFromAddr(ctx context.Context, address byte, buffer []byte) error
}

type AddressableWriter interface {
	WriteToAddr(ctx context.Context, address byte, buffer []byte) error
	Release(ctx context.Context) error
}

// I2CBus is the byte-level transport every register transaction goes
// through. Implementations live in i2c (linux bus via periph), adapter
// (MCP2221 USB bridge, gobot connectors) and sim (in-memory peripheral).
type I2CBus interface {
	AddressableReader
	AddressableWriter
}

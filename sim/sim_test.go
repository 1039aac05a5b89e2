package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mistra/i2csens"
)

func TestPeripheral_IsATransport(t *testing.T) {
	var bus i2csens.I2CBus = New(WithData(0x34))
	ctx := context.Background()

	assert.NoError(t, bus.WriteToAddr(ctx, DefaultAddress, []byte{0x02}))
	buf := make([]byte, 1)
	assert.NoError(t, bus.ReadFromAddr(ctx, DefaultAddress, buf))
	assert.Equal(t, byte(0x34), buf[0])
	assert.NoError(t, bus.Release(ctx))
}

func TestPeripheral_RegisterPointer(t *testing.T) {
	p := New(WithControl(0x12), WithData(0x34))
	ctx := context.Background()

	// select identity register, read one byte
	assert.NoError(t, p.WriteToAddr(ctx, DefaultAddress, []byte{0x00}))
	buf := make([]byte, 1)
	assert.NoError(t, p.ReadFromAddr(ctx, DefaultAddress, buf))
	assert.Equal(t, byte(Identity), buf[0])

	// select data register
	assert.NoError(t, p.WriteToAddr(ctx, DefaultAddress, []byte{0x02}))
	assert.NoError(t, p.ReadFromAddr(ctx, DefaultAddress, buf))
	assert.Equal(t, byte(0x34), buf[0])

	// select and store in one transaction
	assert.NoError(t, p.WriteToAddr(ctx, DefaultAddress, []byte{0x01, 0xAB}))
	assert.Equal(t, byte(0xAB), p.Register(0x01))

	// read continues from the selected register
	buf = make([]byte, 2)
	assert.NoError(t, p.ReadFromAddr(ctx, DefaultAddress, buf))
	assert.Equal(t, []byte{0xAB, 0x34}, buf)
}

func TestPeripheral_AddressMismatch(t *testing.T) {
	p := New(WithAddress(0x21))
	ctx := context.Background()

	err := p.WriteToAddr(ctx, 0x22, []byte{0x00})
	assert.ErrorIs(t, err, ErrAddressMismatch)
	err = p.ReadFromAddr(ctx, 0x22, make([]byte, 1))
	assert.ErrorIs(t, err, ErrAddressMismatch)

	assert.NoError(t, p.WriteToAddr(ctx, 0x21, []byte{0x00}))
}

func TestPeripheral_EmptyWrite(t *testing.T) {
	p := New()
	err := p.WriteToAddr(context.Background(), DefaultAddress, nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestPeripheral_FaultInjection(t *testing.T) {
	p := New()
	ctx := context.Background()
	boom := errors.New("nack")

	p.FailReads(boom)
	err := p.ReadFromAddr(ctx, DefaultAddress, make([]byte, 1))
	assert.ErrorIs(t, err, boom)

	p.FailReads(nil)
	assert.NoError(t, p.ReadFromAddr(ctx, DefaultAddress, make([]byte, 1)))

	p.FailWrites(boom)
	err = p.WriteToAddr(ctx, DefaultAddress, []byte{0x01, 0x01})
	assert.ErrorIs(t, err, boom)
	p.FailWrites(nil)
	assert.NoError(t, p.WriteToAddr(ctx, DefaultAddress, []byte{0x01, 0x01}))
}

func TestPeripheral_OutOfBandAccess(t *testing.T) {
	p := New()
	p.SetRegister(0x02, 200)
	assert.Equal(t, byte(200), p.Register(0x02))

	reads, writes := p.Transactions()
	assert.Equal(t, 0, reads)
	assert.Equal(t, 0, writes)
}

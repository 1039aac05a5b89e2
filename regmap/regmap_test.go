package regmap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mistra/i2csens/sim"
)

func testConfig() Config {
	return Config{
		MaxRegister: 0x02,
		Writeable: func(reg byte) bool {
			return reg == 0x01
		},
	}
}

func TestRegMap_Read(t *testing.T) {
	p := sim.New(sim.WithControl(0x55), sim.WithData(0xC8))
	m := New(p, sim.DefaultAddress, testConfig())
	ctx := context.Background()

	val, err := m.Read(ctx, 0x00)
	assert.NoError(t, err)
	assert.Equal(t, byte(sim.Identity), val)

	val, err = m.Read(ctx, 0x01)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x55), val)

	val, err = m.Read(ctx, 0x02)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xC8), val)
}

func TestRegMap_WriteProtection(t *testing.T) {
	p := sim.New()
	m := New(p, sim.DefaultAddress, testConfig())
	ctx := context.Background()

	err := m.Write(ctx, 0x00, 0xFF)
	assert.ErrorIs(t, err, ErrReadOnly)
	err = m.Write(ctx, 0x02, 0xFF)
	assert.ErrorIs(t, err, ErrReadOnly)

	// rejected writes never become bus transactions
	reads, writes := p.Transactions()
	assert.Equal(t, 0, reads)
	assert.Equal(t, 0, writes)

	err = m.Write(ctx, 0x01, 0xFF)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xFF), p.Register(0x01))
}

func TestRegMap_OutOfRange(t *testing.T) {
	p := sim.New()
	m := New(p, sim.DefaultAddress, testConfig())
	ctx := context.Background()

	_, err := m.Read(ctx, 0x03)
	assert.ErrorIs(t, err, ErrOutOfRange)
	err = m.Write(ctx, 0x03, 0x01)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestRegMap_BusErrorPropagation(t *testing.T) {
	p := sim.New()
	m := New(p, sim.DefaultAddress, testConfig())
	ctx := context.Background()
	nack := errors.New("nack")

	p.FailReads(nack)
	_, err := m.Read(ctx, 0x00)
	assert.ErrorIs(t, err, nack)
	p.FailReads(nil)

	p.FailWrites(nack)
	_, err = m.Read(ctx, 0x00)
	assert.ErrorIs(t, err, nack)
	err = m.Write(ctx, 0x01, 0x01)
	assert.ErrorIs(t, err, nack)
}

func TestRegMap_NilWriteablePredicate(t *testing.T) {
	p := sim.New()
	m := New(p, sim.DefaultAddress, Config{MaxRegister: 0x02})

	err := m.Write(context.Background(), 0x02, 0x10)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x10), p.Register(0x02))
}

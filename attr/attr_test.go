package attr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mistra/i2csens/sensor"
	"github.com/mistra/i2csens/sim"
)

func newGroup(t *testing.T, p *sim.Peripheral) *Group {
	t.Helper()
	s, err := sensor.New(context.Background(), p)
	assert.NoError(t, err)
	g := NewGroup("i2csens")
	assert.NoError(t, g.Register(Enable(s)))
	assert.NoError(t, g.Register(Data(s)))
	return g
}

func TestGroup_Register(t *testing.T) {
	g := NewGroup("i2csens")
	assert.NoError(t, g.Register(Attribute{Name: "enable"}))
	err := g.Register(Attribute{Name: "enable"})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, g.Register(Attribute{Name: "data"}))
	assert.Equal(t, []string{"data", "enable"}, g.Names())
}

func TestGroup_UnknownAttribute(t *testing.T) {
	g := newGroup(t, sim.New())
	ctx := context.Background()

	_, err := g.Read(ctx, "mode")
	assert.ErrorIs(t, err, ErrNotFound)
	err = g.Write(ctx, "mode", "1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnable_Read(t *testing.T) {
	ctx := context.Background()

	g := newGroup(t, sim.New())
	state, err := g.Read(ctx, "enable")
	assert.NoError(t, err)
	assert.Equal(t, "0\n", state)

	g = newGroup(t, sim.New(sim.WithControl(0x01)))
	state, err = g.Read(ctx, "enable")
	assert.NoError(t, err)
	assert.Equal(t, "1\n", state)

	// any value with bit 0 set reads as enabled
	g = newGroup(t, sim.New(sim.WithControl(0xF1)))
	state, err = g.Read(ctx, "enable")
	assert.NoError(t, err)
	assert.Equal(t, "1\n", state)
}

func TestEnable_Write(t *testing.T) {
	tests := []struct {
		input   string
		enabled bool
	}{
		{"1", true},
		{"1\n", true},
		{"0", false},
		{"0\n", false},
		{"42", true},
		{"-1", true},
		{"1 trailing bytes are ignored", true},
		{"0 trailing bytes are ignored", false},
	}
	ctx := context.Background()
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			p := sim.New(sim.WithControl(0xA4))
			g := newGroup(t, p)
			assert.NoError(t, g.Write(ctx, "enable", test.input))

			state, err := g.Read(ctx, "enable")
			assert.NoError(t, err)
			if test.enabled {
				assert.Equal(t, "1\n", state)
			} else {
				assert.Equal(t, "0\n", state)
			}
			// reserved control bits survive the toggle
			assert.Equal(t, byte(0xA4), p.Register(0x01)&0xFE)
		})
	}
}

func TestEnable_WriteRejectsNonNumeric(t *testing.T) {
	p := sim.New(sim.WithControl(0xA4))
	g := newGroup(t, p)

	err := g.Write(context.Background(), "enable", "on")
	assert.Error(t, err)
	// the control register is untouched after a parse failure
	assert.Equal(t, byte(0xA4), p.Register(0x01))
}

func TestData_Read(t *testing.T) {
	ctx := context.Background()

	g := newGroup(t, sim.New(sim.WithData(200)))
	value, err := g.Read(ctx, "data")
	assert.NoError(t, err)
	assert.Equal(t, "100000\n", value)

	g = newGroup(t, sim.New(sim.WithData(0)))
	value, err = g.Read(ctx, "data")
	assert.NoError(t, err)
	assert.Equal(t, "0\n", value)
}

func TestData_WriteRejected(t *testing.T) {
	g := newGroup(t, sim.New())
	err := g.Write(context.Background(), "data", "100")
	assert.ErrorIs(t, err, ErrNotWritable)
}

package ov5642

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx is a tinygo I2C bus in front of a fakeBus register map
type fakeTx struct {
	regs  *fakeBus
	addrs []uint16
}

func (f *fakeTx) Tx(addr uint16, w, r []byte) error {
	f.addrs = append(f.addrs, addr)

	if len(w) > 0 {
		if _, err := f.regs.WriteBytes(w); err != nil {
			return err
		}
	}

	if len(r) > 0 {
		if _, err := f.regs.ReadBytes(r); err != nil {
			return err
		}
	}

	return nil
}

func TestTxBus(t *testing.T) {

	tx := &fakeTx{regs: newFakeBus()}
	bus := NewTxBus(tx, 0)

	assert.Equal(t, uint16(Address), bus.Addr())

	d, err := NewWithLog(bus, Config{Sleep: func(time.Duration) {}}, newTestLogger(t))
	require.NoError(t, err)

	require.NoError(t, d.SetQuality(20))
	assert.Equal(t, uint8(20), tx.regs.value(t, COMPRESSION_CTRL07))

	q, err := d.readReg(COMPRESSION_CTRL07)
	require.NoError(t, err)
	assert.Equal(t, uint8(20), q)

	for _, a := range tx.addrs {
		assert.Equal(t, uint16(Address), a)
	}
}

func TestTxBusFailure(t *testing.T) {

	tx := &fakeTx{regs: newFakeBus()}
	bus := NewTxBus(tx, 0x3D)

	tx.regs.failNextWrite(1)

	n, err := bus.WriteBytes([]byte{0x44, 0x07, 0x01})
	assert.ErrorIs(t, err, errFakeBus)
	assert.Zero(t, n)

	n, err = bus.ReadBytes(make([]byte, 2))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []uint16{0x3D, 0x3D}, tx.addrs)
}

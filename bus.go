package ov5642

import (
	"github.com/swdee/go-i2c"
	"tinygo.org/x/drivers"
)

// Bus is the byte transport to the sensor's SCCB port. Register reads are a
// two byte address write followed by a read.
//
// It is satisfied by *i2c.Options from github.com/swdee/go-i2c on Linux and by
// TxBus on TinyGo targets.
type Bus interface {
	WriteBytes(buf []byte) (int, error)
	ReadBytes(buf []byte) (int, error)
}

var _ Bus = (*i2c.Options)(nil)

// TxBus adapts a tinygo.org/x/drivers I2C bus, which addresses the device on
// every transaction, to Bus.
type TxBus struct {
	i2c  drivers.I2C
	addr uint16
}

// NewTxBus returns a Bus talking to the device at addr on bus.
func NewTxBus(bus drivers.I2C, addr uint16) *TxBus {
	if addr == 0 {
		addr = uint16(Address)
	}

	return &TxBus{i2c: bus, addr: addr}
}

// WriteBytes sends buf as a single write transaction.
func (b *TxBus) WriteBytes(buf []byte) (int, error) {
	if err := b.i2c.Tx(b.addr, buf, nil); err != nil {
		return 0, err
	}

	return len(buf), nil
}

// ReadBytes fills buf from a single read transaction. SCCB does not support
// repeated start, so the register address is sent by a preceding WriteBytes.
func (b *TxBus) ReadBytes(buf []byte) (int, error) {
	if err := b.i2c.Tx(b.addr, nil, buf); err != nil {
		return 0, err
	}

	return len(buf), nil
}

// Addr returns the 7-bit device address used for every transaction.
func (b *TxBus) Addr() uint16 {
	return b.addr
}

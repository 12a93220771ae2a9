// go-ov5642 is an SCCB/I2C control driver for the OmniVision OV5642 image
// sensor. It programs the sensor's PLL, capture geometry, output format and
// image controls, and keeps an in-memory mirror of the applied settings.
package ov5642

import (
	"io"
	"sync"
	"time"

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"
	"github.com/swdee/go-i2c"
)

const (
	// Address is the default 7-bit SCCB address of the sensor
	Address uint8 = 0x3C
	// DefaultXCLK is the input oscillator frequency assumed when none is
	// configured, in Hz
	DefaultXCLK uint32 = 24000000
)

// Config holds the attach-time settings of a sensor. Zero values select the
// defaults.
type Config struct {
	// Address is the 7-bit device address, used by Open. Defaults to 0x3C.
	Address uint8
	// XCLKHz is the frequency fed to the XCLK pin. Defaults to 24MHz.
	XCLKHz uint32
	// Tables overrides the built-in register tables.
	Tables *Tables
	// Sleep overrides time.Sleep for the reset delays.
	Sleep func(time.Duration)
}

// OV5642 represents a single OV5642 sensor instance. All exported methods
// serialize on an internal lock, so a handle may be shared between
// goroutines; separate handles share no state.
type OV5642 struct {
	mu sync.Mutex

	// bus is the SCCB interface
	bus  Bus
	addr uint8

	// xclkHz is the input oscillator frequency in Hz
	xclkHz uint32

	tables *Tables
	sleep  func(time.Duration)

	// status mirrors the last committed logical configuration
	status      Status
	statusReady bool

	// log logger for debugging
	log logging.Logger
}

// New returns a new OV5642 sensor instance on bus, resets it to its defaults
// and probes its status.
func New(bus Bus, cfg Config) (*OV5642, error) {

	d, err := create(bus, cfg)

	if err != nil {
		return nil, err
	}

	// create null logger
	d.log = logging.New(logging.Error, io.Discard, true)

	// finish device setup
	err = d.setup()

	return d, err
}

// NewWithLog creates a sensor instance like New with logger to be used for
// debugging
func NewWithLog(bus Bus, cfg Config, log logging.Logger) (*OV5642, error) {

	d, err := create(bus, cfg)

	if err != nil {
		return nil, err
	}

	// set logger
	d.log = log

	// finish device setup
	err = d.setup()

	return d, err
}

// Open opens the Linux i2c-dev bus dev at cfg.Address and returns a sensor
// instance on it. Close releases the bus.
func Open(dev string, cfg Config, log logging.Logger) (*OV5642, error) {

	if cfg.Address == 0 {
		cfg.Address = Address
	}

	bus, err := i2c.New(cfg.Address, dev)

	if err != nil {
		return nil, errors.Wrapf(err, "open %s", dev)
	}

	if log == nil {
		log = logging.New(logging.Error, io.Discard, true)
	}

	d, err := NewWithLog(bus, cfg, log)

	if err != nil {
		bus.Close()
		return nil, err
	}

	return d, nil
}

// create returns a new OV5642 sensor instance without touching the device
func create(bus Bus, cfg Config) (*OV5642, error) {

	if bus == nil {
		return nil, errors.New("bus is not initiated")
	}

	d := &OV5642{
		bus:    bus,
		addr:   cfg.Address,
		xclkHz: cfg.XCLKHz,
		tables: cfg.Tables,
		sleep:  cfg.Sleep,
	}

	if d.addr == 0 {
		d.addr = Address
	}

	if d.xclkHz == 0 {
		d.xclkHz = DefaultXCLK
	}

	if d.tables == nil {
		d.tables = DefaultTables()
	}

	if d.sleep == nil {
		d.sleep = time.Sleep
	}

	d.status = defaultStatus()

	return d, nil
}

// setup completes New instance creation and is a common function for New() and
// NewWithLog()
func (d *OV5642) setup() error {

	d.log.Debug("starting setup", "addr", d.addr, "xclk", d.xclkHz)

	if err := d.Init(); err != nil {
		return errors.Wrap(err, "init device")
	}

	d.log.Debug("device initialised")

	return nil
}

// Addr returns the configured 7-bit device address.
func (d *OV5642) Addr() uint8 {
	return d.addr
}

// XCLK returns the input oscillator frequency in Hz.
func (d *OV5642) XCLK() uint32 {
	return d.xclkHz
}

// Close releases the bus if it can be closed.
func (d *OV5642) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if c, ok := d.bus.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

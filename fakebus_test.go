package ov5642

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ausocean/utils/logging"
	"github.com/stretchr/testify/require"
)

var errFakeBus = errors.New("fake bus failure")

// fakeBus is an in-memory register map speaking the two byte address
// protocol of the sensor
type fakeBus struct {
	regs map[uint16]uint8
	ptr  uint16

	// written holds every successful register write in order
	written []RegVal

	// ops counts all transactions, writes and reads count attempted
	// register writes and register reads
	ops    int
	writes int
	reads  int

	// failWriteAt and failReadAt fail the attempt with that 1-based count
	failWriteAt int
	failReadAt  int
	// failRegs fails every write to the listed registers
	failRegs map[uint16]bool
}

func newFakeBus() *fakeBus {
	return &fakeBus{regs: make(map[uint16]uint8), failRegs: make(map[uint16]bool)}
}

func (b *fakeBus) WriteBytes(buf []byte) (int, error) {
	b.ops++

	if len(buf) < 2 {
		return 0, errFakeBus
	}

	reg := uint16(buf[0])<<8 | uint16(buf[1])

	// address phase of a read
	if len(buf) == 2 {
		b.ptr = reg
		return len(buf), nil
	}

	b.writes++

	if b.writes == b.failWriteAt || b.failRegs[reg] {
		return 0, errFakeBus
	}

	b.regs[reg] = buf[2]
	b.written = append(b.written, RegVal{reg, uint16(buf[2])})

	return len(buf), nil
}

func (b *fakeBus) ReadBytes(buf []byte) (int, error) {
	b.ops++
	b.reads++

	if b.reads == b.failReadAt {
		return 0, errFakeBus
	}

	for i := range buf {
		buf[i] = b.regs[b.ptr+uint16(i)]
	}

	return len(buf), nil
}

// clear forgets the transaction history but keeps the register contents
func (b *fakeBus) clear() {
	b.written = nil
	b.ops, b.writes, b.reads = 0, 0, 0
	b.failWriteAt, b.failReadAt = 0, 0
	b.failRegs = make(map[uint16]bool)
}

// failNextWrite fails the k-th register write from now
func (b *fakeBus) failNextWrite(k int) {
	b.failWriteAt = b.writes + k
}

// failNextRead fails the k-th register read from now
func (b *fakeBus) failNextRead(k int) {
	b.failReadAt = b.reads + k
}

// value returns the register written last, failing the test if it was never
// written
func (b *fakeBus) value(t *testing.T, reg uint16) uint8 {
	t.Helper()

	v, ok := b.regs[reg]
	require.True(t, ok, "register 0x%04x never written", reg)

	return v
}

// sleepRecorder collects the requested delays instead of sleeping
type sleepRecorder struct {
	delays []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.delays = append(s.delays, d)
}

// testWriter forwards log lines to the test log
type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// newTestLogger returns a debug level logger writing to the test log. Error
// level entries are expected on failure paths and do not fail the test.
func newTestLogger(t *testing.T) logging.Logger {
	return logging.New(logging.Debug, testWriter{t}, false)
}

// newTestSensor returns an initialised sensor on a fake bus whose history has
// been cleared
func newTestSensor(t *testing.T) (*OV5642, *fakeBus) {
	t.Helper()

	bus := newFakeBus()
	sl := &sleepRecorder{}

	d, err := NewWithLog(bus, Config{Sleep: sl.sleep}, newTestLogger(t))
	require.NoError(t, err)

	bus.clear()

	return d, bus
}

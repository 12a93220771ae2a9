package ov5642

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePixelFormat(t *testing.T) {

	for f, name := range pixelFormatNames {
		got, err := ParsePixelFormat(" " + name)
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	f, err := ParsePixelFormat("JPEG")
	require.NoError(t, err)
	assert.Equal(t, PixelFormatJPEG, f)

	_, err = ParsePixelFormat("bmp")
	assert.ErrorIs(t, err, InvalidParameter)

	assert.Equal(t, "PixelFormat(42)", PixelFormat(42).String())
}

func TestSetPixelFormat(t *testing.T) {

	d, bus := newTestSensor(t)

	require.NoError(t, d.SetPixelFormat(PixelFormatJPEG))

	n := len(pixelFormatRegs[PixelFormatJPEG]) - 1
	assert.Equal(t, pixelFormatRegs[PixelFormatJPEG][:n], bus.written[:n])

	// compression bit follows the format
	assert.Equal(t, []RegVal{
		{TIMING_TC_REG18, 0x80},
		{ANALOG_CONTROL_D, 0x00},
		{ARRAY_CONTROL01, 0x00},
	}, bus.written[n:])
	assert.Equal(t, PixelFormatJPEG, d.status.PixelFormat)

	bus.clear()

	require.NoError(t, d.SetPixelFormat(PixelFormatRGB888))
	assert.Equal(t, uint8(0x61), bus.value(t, FORMAT_CTRL00))
	assert.Equal(t, uint8(0x00), bus.value(t, TIMING_TC_REG18))
}

func TestSetPixelFormatInvalid(t *testing.T) {

	d, bus := newTestSensor(t)

	err := d.SetPixelFormat(PixelFormat(42))

	require.ErrorIs(t, err, InvalidParameter)
	assert.Zero(t, bus.ops)
	assert.Equal(t, defaultPixelFormat, d.status.PixelFormat)
}

func TestSetPixelFormatFailureKeepsMirror(t *testing.T) {

	d, bus := newTestSensor(t)

	// the image options write
	bus.failNextWrite(len(pixelFormatRegs[PixelFormatJPEG]))

	require.ErrorIs(t, d.SetPixelFormat(PixelFormatJPEG), BusFailure)
	assert.Equal(t, defaultPixelFormat, d.status.PixelFormat)
}

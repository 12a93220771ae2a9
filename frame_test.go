package ov5642

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolutionTableMonotonic(t *testing.T) {

	prev := 0

	for s := Frame96X96; s < FrameInvalid; s++ {
		r := s.Resolution()
		px := int(r.Width) * int(r.Height)

		assert.Greater(t, px, prev, "%s", s)
		prev = px
	}

	assert.Equal(t, Resolution{}, FrameInvalid.Resolution())
	assert.Equal(t, "FrameSize(19)", FrameInvalid.String())
}

func TestParseFrameSize(t *testing.T) {

	s, err := ParseFrameSize("VGA")
	require.NoError(t, err)
	assert.Equal(t, FrameVGA, s)

	s, err = ParseFrameSize(" 2560x1920 ")
	require.NoError(t, err)
	assert.Equal(t, FrameQSXGA, s)

	_, err = ParseFrameSize("4k")
	assert.ErrorIs(t, err, InvalidParameter)
}

func TestSetFrameSizeInvalid(t *testing.T) {

	d, bus := newTestSensor(t)

	for _, s := range []FrameSize{FrameInvalid, FrameInvalid + 1, -1} {
		err := d.SetFrameSize(s)

		require.ErrorIs(t, err, InvalidParameter)
		assert.Equal(t, defaultFrameSize, d.status.FrameSize)
	}

	assert.Zero(t, bus.ops)
}

func TestSetFrameSizeVGA(t *testing.T) {

	d, bus := newTestSensor(t)

	require.NoError(t, d.SetFrameSize(FrameVGA))

	assert.Equal(t, []RegVal{
		// window start 432,10
		{0x3800, 0x01}, {0x3801, 0xB0}, {0x3802, 0x00}, {0x3803, 0x0A},
		// window end 2592,1944
		{0x3804, 0x0A}, {0x3805, 0x20}, {0x3806, 0x07}, {0x3807, 0x98},
		// output 640x480
		{0x3808, 0x02}, {0x3809, 0x80}, {0x380A, 0x01}, {0x380B, 0xE0},
		// total 1600x500
		{0x380C, 0x06}, {0x380D, 0x40}, {0x380E, 0x01}, {0x380F, 0xF4},
		{XY_OFFSET, 0xC2},
		{ISP_CONTROL_01, 0x7F},
		// image options with binning
		{TIMING_TC_REG18, 0x00}, {ANALOG_CONTROL_D, 0x80}, {ARRAY_CONTROL01, 0x40},
		// non-jpeg pll above cif
		{SC_PLLS_CTRL0, 0x00}, {SC_PLLS_CTRL1, 0x10}, {SC_PLLS_CTRL2, 0x02},
		{SC_PLLS_CTRL3, 0x00}, {PCLK_RATIO, 0x02}, {VFIFO_CTRL0C, 0x22},
	}, bus.written)

	assert.Equal(t, FrameVGA, d.status.FrameSize)
}

func TestSetFrameSizeTiers(t *testing.T) {

	tests := []struct {
		name     string
		format   PixelFormat
		size     FrameSize
		hts, vts uint16
		isp      uint8
		reg18    uint8
		binning  bool
		ratio    uint8
	}{
		{"jpeg qsxga", PixelFormatJPEG, FrameQSXGA, 3200, 2000, 0x4F, 0x80, false, 12},
		{"jpeg qxga", PixelFormatJPEG, FrameQXGA, 3200, 2000, 0x7F, 0x80, false, 24},
		{"jpeg svga", PixelFormatJPEG, FrameSVGA, 3200, 1000, 0x7F, 0x80, true, 30},
		{"yuv xga", PixelFormatYUV422, FrameXGA, 3200, 2000, 0x7F, 0x00, false, 2},
		{"yuv cif", PixelFormatYUV422, FrameCIF, 1600, 500, 0x7F, 0x00, true, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, bus := newTestSensor(t)

			require.NoError(t, d.SetPixelFormat(tc.format))
			require.NoError(t, d.SetFrameSize(tc.size))

			hts := uint16(bus.value(t, X_TOTAL_SIZE_H))<<8 | uint16(bus.value(t, X_TOTAL_SIZE_H+1))
			vts := uint16(bus.value(t, Y_TOTAL_SIZE_H))<<8 | uint16(bus.value(t, Y_TOTAL_SIZE_H+1))

			assert.Equal(t, tc.hts, hts)
			assert.Equal(t, tc.vts, vts)
			assert.Equal(t, tc.isp, bus.value(t, ISP_CONTROL_01))
			assert.Equal(t, tc.reg18, bus.value(t, TIMING_TC_REG18))
			assert.Equal(t, tc.binning, bus.value(t, ANALOG_CONTROL_D) == 0x80)
			assert.Equal(t, tc.binning, bus.value(t, ARRAY_CONTROL01) == 0x40)
			assert.Equal(t, tc.ratio, bus.value(t, PCLK_RATIO))

			res := tc.size.Resolution()
			w := uint16(bus.value(t, X_OUTPUT_SIZE_H))<<8 | uint16(bus.value(t, X_OUTPUT_SIZE_H+1))
			h := uint16(bus.value(t, X_OUTPUT_SIZE_H+2))<<8 | uint16(bus.value(t, X_OUTPUT_SIZE_H+3))
			assert.Equal(t, res.Width, w)
			assert.Equal(t, res.Height, h)

			assert.Equal(t, tc.size, d.status.FrameSize)
		})
	}
}

func TestSetFrameSizeRestoresOnFailure(t *testing.T) {

	d, bus := newTestSensor(t)

	// every register write of a frame size change, window to pll
	const steps = 27

	for k := 1; k <= steps; k++ {
		bus.clear()
		bus.failNextWrite(k)

		err := d.SetFrameSize(FrameVGA)

		require.ErrorIs(t, err, BusFailure, "step %d", k)
		assert.Equal(t, defaultFrameSize, d.status.FrameSize, "step %d", k)
		assert.Len(t, bus.written, k-1, "step %d", k)
	}

	bus.clear()
	require.NoError(t, d.SetFrameSize(FrameVGA))
	assert.Equal(t, steps, bus.writes)
	assert.Equal(t, FrameVGA, d.status.FrameSize)
}

func TestSetFrameSizeEnablesWhitebal(t *testing.T) {

	d, bus := newTestSensor(t)

	require.NoError(t, d.SetWhitebal(false))
	require.False(t, d.status.AWB)

	// ISP control write fails, AWB stays as it was
	bus.clear()
	bus.failRegs[ISP_CONTROL_01] = true

	require.ErrorIs(t, d.SetFrameSize(FrameQSXGA), BusFailure)
	assert.False(t, d.status.AWB)

	bus.clear()

	require.NoError(t, d.SetFrameSize(FrameQSXGA))
	assert.Equal(t, uint8(0x4F), bus.value(t, ISP_CONTROL_01))
	assert.True(t, d.status.AWB)
}

func TestImageOptions(t *testing.T) {

	tests := []struct {
		name    string
		format  PixelFormat
		size    FrameSize
		hmirror bool
		vflip   bool
		want    ImageOptions
	}{
		{"yuv large", PixelFormatYUV422, FrameUXGA, false, false, ImageOptions{}},
		{"jpeg large", PixelFormatJPEG, FrameUXGA, false, false, ImageOptions{TimingReg18: 0x80}},
		{"mirror", PixelFormatYUV422, FrameXGA, true, false, ImageOptions{TimingReg18: 0x40}},
		{"flip", PixelFormatYUV422, FrameXGA, false, true, ImageOptions{TimingReg18: 0x20}},
		{"jpeg mirror flip small", PixelFormatJPEG, FrameSVGA, true, true,
			ImageOptions{TimingReg18: 0xE0, VBinning: 0x80, HBinning: 0x40}},
		{"smallest", PixelFormatRaw, Frame96X96, false, false,
			ImageOptions{VBinning: 0x80, HBinning: 0x40}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, imageOptions(tc.format, tc.size, tc.hmirror, tc.vflip))
		})
	}
}

func TestRecomputeImageOptionsIdempotent(t *testing.T) {

	d, bus := newTestSensor(t)

	require.NoError(t, d.SetHMirror(true))
	bus.clear()

	require.NoError(t, d.RecomputeImageOptions())
	first := bus.written

	bus.clear()

	require.NoError(t, d.RecomputeImageOptions())
	assert.Equal(t, first, bus.written)
	assert.Equal(t, []RegVal{
		{TIMING_TC_REG18, 0x40},
		{ANALOG_CONTROL_D, 0x00},
		{ARRAY_CONTROL01, 0x00},
	}, first)
}

func TestSetHMirrorVFlip(t *testing.T) {

	d, bus := newTestSensor(t)

	require.NoError(t, d.SetVFlip(true))
	assert.Equal(t, uint8(0x20), bus.value(t, TIMING_TC_REG18))
	assert.True(t, d.status.VFlip)

	require.NoError(t, d.SetHMirror(true))
	assert.Equal(t, uint8(0x60), bus.value(t, TIMING_TC_REG18))
	assert.True(t, d.status.HMirror)

	// a failed write leaves the mirror unchanged
	bus.failNextWrite(2)

	require.ErrorIs(t, d.SetVFlip(false), BusFailure)
	assert.True(t, d.status.VFlip)

	bus.failNextWrite(1)

	require.ErrorIs(t, d.SetHMirror(false), BusFailure)
	assert.True(t, d.status.HMirror)
}

package ov5642

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProfile = `
format: jpeg
frame_size: svga
quality: 10
hmirror: true
saturation: -2
wb_mode: 2
awb_gain: false
agc_gain: 8
`

// orderSensor records the order settings are applied in
type orderSensor struct {
	Sensor
	calls []string
}

func (s *orderSensor) SetPixelFormat(PixelFormat) error {
	s.calls = append(s.calls, "format")
	return nil
}

func (s *orderSensor) SetFrameSize(FrameSize) error {
	s.calls = append(s.calls, "frame size")
	return nil
}

func (s *orderSensor) SetHMirror(bool) error {
	s.calls = append(s.calls, "hmirror")
	return nil
}

func (s *orderSensor) SetQuality(uint8) error {
	s.calls = append(s.calls, "quality")
	return nil
}

func (s *orderSensor) SetSaturation(int) error {
	s.calls = append(s.calls, "saturation")
	return nil
}

func (s *orderSensor) SetWBMode(int) error {
	s.calls = append(s.calls, "wb mode")
	return nil
}

func (s *orderSensor) SetAWBGain(bool) error {
	s.calls = append(s.calls, "awb gain")
	return nil
}

func (s *orderSensor) SetAGCGain(int) error {
	s.calls = append(s.calls, "agc gain")
	return nil
}

func TestProfileApplyOrder(t *testing.T) {

	p, err := ReadProfile(strings.NewReader(testProfile))
	require.NoError(t, err)

	s := &orderSensor{}

	require.NoError(t, p.Apply(s))
	assert.Equal(t, []string{
		"format", "frame size", "hmirror", "quality", "saturation", "wb mode",
		"awb gain", "agc gain",
	}, s.calls)
}

func TestProfileApply(t *testing.T) {

	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testProfile), 0o644))

	p, err := LoadProfile(path)
	require.NoError(t, err)

	d, bus := newTestSensor(t)

	require.NoError(t, p.Apply(d))

	s, err := d.Status()
	require.NoError(t, err)

	assert.Equal(t, PixelFormatJPEG, s.PixelFormat)
	assert.Equal(t, FrameSVGA, s.FrameSize)
	assert.Equal(t, uint8(10), s.Quality)
	assert.True(t, s.HMirror)
	assert.Equal(t, -2, s.Saturation)
	assert.Equal(t, WBCloudy, s.WBMode)
	assert.False(t, s.AWBGain)
	assert.Equal(t, 8, s.AGCGain)

	// compression, mirror and binning
	assert.Equal(t, uint8(0xC0), bus.value(t, TIMING_TC_REG18))
	assert.Equal(t, uint8(30), bus.value(t, PCLK_RATIO))
}

func TestProfileErrors(t *testing.T) {

	_, err := ReadProfile(strings.NewReader("frame_rate: 30\n"))
	assert.Error(t, err)

	p, err := ReadProfile(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, &Profile{}, p)

	_, err = LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	d, _ := newTestSensor(t)

	p = &Profile{FrameSize: "8k"}
	assert.ErrorIs(t, p.Apply(d), InvalidParameter)

	level := 9
	p = &Profile{Contrast: &level}

	err = p.Apply(d)
	assert.ErrorIs(t, err, InvalidParameter)
	assert.Contains(t, err.Error(), "contrast")
}

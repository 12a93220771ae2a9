package ov5642

// Status mirrors the logical configuration last committed to the sensor.
type Status struct {
	FrameSize   FrameSize
	PixelFormat PixelFormat

	Brightness int // -3 to 3
	Contrast   int // -3 to 3
	Saturation int // -4 to 4
	Sharpness  int // -3 to 3
	Denoise    int // 0 to 8
	AELevel    int // -5 to 5

	GainCeiling uint16

	AWB      bool
	DCW      bool
	AGC      bool
	AEC      bool
	HMirror  bool
	VFlip    bool
	Colorbar bool
	BPC      bool
	WPC      bool
	RawGMA   bool
	Lenc     bool
	AWBGain  bool
	AEC2     bool

	Quality       uint8 // 0 to 63
	SpecialEffect int   // 0 to 6
	WBMode        int   // 0 to 4
	AGCGain       int   // 0 to 64
	AECValue      uint16
}

const (
	defaultPixelFormat = PixelFormatYUV422
	defaultFrameSize   = FrameQSXGA
)

// defaultStatus is the mirror before any register has been probed
func defaultStatus() Status {
	return Status{
		FrameSize:   defaultFrameSize,
		PixelFormat: defaultPixelFormat,
	}
}

// Status returns a copy of the status mirror. The registers are probed first
// if the mirror has not been initialised since the last reset, settings
// committed since then that have no readback are kept.
func (d *OV5642) Status() (Status, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.statusReady {
		if err := d.loadStatus(true); err != nil {
			return d.status, err
		}
	}

	return d.status, nil
}

// InitStatus rebuilds the status mirror from the sensor registers. Settings
// with no stable readback are reset to zero, the frame size and pixel format
// are kept. The mirror is only replaced if every read succeeds.
func (d *OV5642) InitStatus() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.initStatus()
}

func (d *OV5642) initStatus() error {
	return d.loadStatus(false)
}

// loadStatus replaces the mirror with the probed registers. With keep set the
// mirror's settings that cannot be read back survive the probe.
func (d *OV5642) loadStatus(keep bool) error {

	s, err := d.probeStatus()

	if err != nil {
		d.log.Error("init status failed", "error", err)
		return err
	}

	s.FrameSize = d.status.FrameSize
	s.PixelFormat = d.status.PixelFormat

	if keep {
		s.Brightness = d.status.Brightness
		s.Contrast = d.status.Contrast
		s.Saturation = d.status.Saturation
		s.AELevel = d.status.AELevel
		s.SpecialEffect = d.status.SpecialEffect
		s.WBMode = d.status.WBMode
	}

	d.status = s
	d.statusReady = true

	d.log.Debug("status initialised", "sharpness", s.Sharpness, "denoise",
		s.Denoise, "quality", s.Quality, "agcGain", s.AGCGain, "aec", s.AECValue)

	return nil
}

// probeStatus reads back every setting that has a stable register
// representation
func (d *OV5642) probeStatus() (Status, error) {

	var s Status

	v, err := d.readReg(SHARPEN_MT_OFFSET2)

	if err != nil {
		return s, err
	}

	s.Sharpness = int(v)/8 - 3

	if s.Denoise, err = d.readDenoise(); err != nil {
		return s, err
	}

	ceiling, err := d.readReg16(AEC_GAIN_CEILING)

	if err != nil {
		return s, err
	}

	s.GainCeiling = ceiling & 0x3FF

	flags := []struct {
		dst    *bool
		reg    uint16
		mask   uint8
		invert bool
	}{
		{&s.AWB, ISP_CONTROL_01, 0x01, false},
		{&s.DCW, AWB_ADVANCED_CTL, 0x80, true},
		{&s.AGC, AEC_PK_MANUAL, AEC_PK_MANUAL_AGC_MANUALEN, true},
		{&s.AEC, AEC_PK_MANUAL, AEC_PK_MANUAL_AEC_MANUALEN, true},
		{&s.HMirror, TIMING_TC_REG18, optHMirror, false},
		{&s.VFlip, TIMING_TC_REG18, optVFlip, false},
		{&s.Colorbar, PRE_ISP_TEST_SETTING_1, TEST_COLOR_BAR, false},
		{&s.BPC, ISP_CONTROL_00, 0x04, false},
		{&s.WPC, ISP_CONTROL_00, 0x02, false},
		{&s.RawGMA, ISP_CONTROL_00, 0x20, false},
		{&s.Lenc, ISP_CONTROL_00, 0x80, false},
		{&s.AWBGain, AWB_MANUAL_CTRL, 0x01, false},
		{&s.AEC2, AEC_CTRL00, 0x04, false},
	}

	for _, f := range flags {
		set, err := d.checkRegMask(f.reg, f.mask)

		if err != nil {
			return s, err
		}

		*f.dst = set != f.invert
	}

	q, err := d.readReg(COMPRESSION_CTRL07)

	if err != nil {
		return s, err
	}

	s.Quality = q & 0x3F

	if s.AGCGain, err = d.readAGCGain(); err != nil {
		return s, err
	}

	if s.AECValue, err = d.readAECValue(); err != nil {
		return s, err
	}

	return s, nil
}

// readDenoise decodes the denoise level, 0 when auto denoise is off
func (d *OV5642) readDenoise() (int, error) {

	on, err := d.checkRegMask(CIP_CTRL, 0x10)

	if err != nil || !on {
		return 0, err
	}

	v, err := d.readReg(DENOISE_OFFSET)

	if err != nil {
		return 0, err
	}

	return int(v)/4 + 1, nil
}

// readAGCGain decodes the real gain registers into whole gain steps, rounding
// up a fractional part
func (d *OV5642) readAGCGain() (int, error) {

	ra, err := d.readReg(AEC_PK_REAL_GAIN)

	if err != nil {
		return 0, err
	}

	rb, err := d.readReg(AEC_PK_REAL_GAINL)

	if err != nil {
		return 0, err
	}

	gain := int(rb&0xF0)>>4 | int(ra&0x03)<<4

	if rb&0x0F != 0 {
		gain++
	}

	return gain, nil
}

// readAECValue decodes the 4/8/4 bit exposure fields
func (d *OV5642) readAECValue() (uint16, error) {

	var r [3]uint8

	for i, reg := range []uint16{AEC_PK_EXPOSE_HI, AEC_PK_EXPOSE_MID, AEC_PK_EXPOSE_LO} {
		v, err := d.readReg(reg)

		if err != nil {
			return 0, err
		}

		r[i] = v
	}

	return uint16(r[0]&0x0F)<<12 | uint16(r[1])<<4 | uint16(r[2]&0xF0)>>4, nil
}

// AGCGain reads the current analog gain from the sensor.
func (d *OV5642) AGCGain() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.readAGCGain()
}

// AECValue reads the current exposure value from the sensor.
func (d *OV5642) AECValue() (uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.readAECValue()
}

// Denoise reads the current denoise level from the sensor.
func (d *OV5642) Denoise() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.readDenoise()
}

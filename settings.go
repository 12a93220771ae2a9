package ov5642

// GainCeiling values for SetGainCeiling. Any value up to MaxGainCeiling is
// accepted.
const (
	GainCeiling2X  uint16 = 0x020
	GainCeiling4X  uint16 = 0x040
	GainCeiling8X  uint16 = 0x080
	GainCeiling16X uint16 = 0x100
	GainCeiling32X uint16 = 0x200
	GainCeiling64X uint16 = 0x3FF
	MaxGainCeiling        = GainCeiling64X
)

const (
	MaxQuality       uint8 = 63
	MaxAGCGain             = 64
	MaxDenoise             = 8
	MaxSpecialEffect       = 6
)

// WhiteBalance modes for SetWBMode
const (
	WBAuto = iota
	WBSunny
	WBCloudy
	WBOffice
	WBHome
)

// checkLevel validates level against an inclusive range
func checkLevel(op string, level, min, max int) error {
	if level < min || level > max {
		return invalid(op, "level %d outside %d to %d", level, min, max)
	}

	return nil
}

// SetQuality sets the JPEG quality scale, lower is better quality.
func (d *OV5642) SetQuality(q uint8) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if q > MaxQuality {
		return invalid("set quality", "quality %d > %d", q, MaxQuality)
	}

	if err := d.writeReg(COMPRESSION_CTRL07, q&0x3F); err != nil {
		return err
	}

	d.status.Quality = q
	d.log.Debug("set quality", "quality", q)

	return nil
}

// SetContrast sets the contrast level from -3 to 3.
func (d *OV5642) SetContrast(level int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := checkLevel("set contrast", level, -3, 3); err != nil {
		return err
	}

	if err := d.writeReg(SDE_CTRL6, uint8(level+4)<<3); err != nil {
		return err
	}

	d.status.Contrast = level
	d.log.Debug("set contrast", "level", level)

	return nil
}

// SetBrightness sets the brightness level from -3 to 3.
func (d *OV5642) SetBrightness(level int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := checkLevel("set brightness", level, -3, 3); err != nil {
		return err
	}

	negative := level < 0
	mag := level

	if negative {
		mag = -level
	}

	if err := d.writeReg(SDE_CTRL7, uint8(mag)<<4); err != nil {
		return err
	}

	// sign bit
	if err := d.writeRegBits(SDE_CTRL8, 0x08, negative); err != nil {
		return err
	}

	d.status.Brightness = level
	d.log.Debug("set brightness", "level", level)

	return nil
}

// SetSaturation sets the saturation level from -4 to 4 by loading the colour
// matrix row for that level.
func (d *OV5642) SetSaturation(level int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := checkLevel("set saturation", level, -4, 4); err != nil {
		return err
	}

	row := d.tables.Saturation[level+4]

	for i, v := range row {
		if err := d.writeReg(CMX1+uint16(i), v); err != nil {
			return err
		}
	}

	d.status.Saturation = level
	d.log.Debug("set saturation", "level", level)

	return nil
}

// SetSharpness switches sharpening to manual and sets the level from -3 to 3.
func (d *OV5642) SetSharpness(level int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := checkLevel("set sharpness", level, -3, 3); err != nil {
		return err
	}

	offset2 := uint8(level+3) * 8
	offset1 := offset2 + 1

	// 0x40 is auto sharpness
	if err := d.writeRegBits(CIP_CTRL, 0x40, false); err != nil {
		return err
	}

	err := d.writeRegs([]RegVal{
		{SHARPEN_MT_TH1, 0x10},
		{SHARPEN_MT_TH2, 0x10},
		{SHARPEN_MT_OFFSET1, uint16(offset1)},
		{SHARPEN_MT_OFFSET2, uint16(offset2)},
		{SHARPEN_TH1, 0x10},
		{SHARPEN_TH2, 0x10},
		{SHARPEN_OFFSET1, 0x04},
		{SHARPEN_OFFSET2, 0x06},
	})

	if err != nil {
		return err
	}

	d.status.Sharpness = level
	d.log.Debug("set sharpness", "level", level)

	return nil
}

// SetGainCeiling sets the maximum gain the AGC may apply, a 10 bit value.
func (d *OV5642) SetGainCeiling(ceiling uint16) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if ceiling > MaxGainCeiling {
		return invalid("set gain ceiling", "ceiling 0x%x > 0x%x", ceiling, MaxGainCeiling)
	}

	if err := d.writeReg(AEC_GAIN_CEILING, uint8(ceiling>>8)&0x03); err != nil {
		return err
	}

	if err := d.writeReg(AEC_GAIN_CEILING+1, uint8(ceiling)); err != nil {
		return err
	}

	d.status.GainCeiling = ceiling
	d.log.Debug("set gain ceiling", "ceiling", ceiling)

	return nil
}

// setFlag sets or clears mask in reg and on success stores enable in the
// mirror field dst. When invert is set the bit is set to disable the feature.
func (d *OV5642) setFlag(name string, dst *bool, reg uint16, mask uint8, enable, invert bool) error {

	if err := d.writeRegBits(reg, mask, enable != invert); err != nil {
		return err
	}

	*dst = enable
	d.log.Debug("set "+name, "enable", enable)

	return nil
}

// SetColorbar enables or disables the colour bar test pattern.
func (d *OV5642) SetColorbar(enable bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.setFlag("colorbar", &d.status.Colorbar, PRE_ISP_TEST_SETTING_1,
		TEST_COLOR_BAR, enable, false)
}

// SetGainCtrl enables or disables automatic gain control.
func (d *OV5642) SetGainCtrl(enable bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.setFlag("gain ctrl", &d.status.AGC, AEC_PK_MANUAL,
		AEC_PK_MANUAL_AGC_MANUALEN, enable, true)
}

// SetExposureCtrl enables or disables automatic exposure control.
func (d *OV5642) SetExposureCtrl(enable bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.setFlag("exposure ctrl", &d.status.AEC, AEC_PK_MANUAL,
		AEC_PK_MANUAL_AEC_MANUALEN, enable, true)
}

// SetWhitebal enables or disables automatic white balance.
func (d *OV5642) SetWhitebal(enable bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.setFlag("whitebal", &d.status.AWB, ISP_CONTROL_01, 0x01, enable, false)
}

// SetDCW enables or disables advanced AWB.
func (d *OV5642) SetDCW(enable bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.setFlag("dcw", &d.status.DCW, AWB_ADVANCED_CTL, 0x80, enable, true)
}

// SetAEC2 enables or disables night mode exposure.
func (d *OV5642) SetAEC2(enable bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.setFlag("aec2", &d.status.AEC2, AEC_CTRL00, 0x04, enable, false)
}

// SetBPC enables or disables black pixel correction.
func (d *OV5642) SetBPC(enable bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.setFlag("bpc", &d.status.BPC, ISP_CONTROL_00, 0x04, enable, false)
}

// SetWPC enables or disables white pixel correction.
func (d *OV5642) SetWPC(enable bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.setFlag("wpc", &d.status.WPC, ISP_CONTROL_00, 0x02, enable, false)
}

// SetRawGMA enables or disables raw gamma.
func (d *OV5642) SetRawGMA(enable bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.setFlag("raw gma", &d.status.RawGMA, ISP_CONTROL_00, 0x20, enable, false)
}

// SetLenc enables or disables lens correction.
func (d *OV5642) SetLenc(enable bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.setFlag("lenc", &d.status.Lenc, ISP_CONTROL_00, 0x80, enable, false)
}

// SetAGCGain sets the manual analog gain. Values are clamped to 0 to 64.
func (d *OV5642) SetAGCGain(gain int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if gain < 0 {
		gain = 0
	} else if gain > MaxAGCGain {
		gain = MaxAGCGain
	}

	// gain is 6.4 fixed point, one sixteenth is taken off to reach the
	// top of the range
	gainv := gain << 4

	if gainv != 0 {
		gainv--
	}

	if err := d.writeReg(AEC_PK_REAL_GAIN, uint8(gainv>>8)); err != nil {
		return err
	}

	if err := d.writeReg(AEC_PK_REAL_GAINL, uint8(gainv)); err != nil {
		return err
	}

	d.status.AGCGain = gain
	d.log.Debug("set agc gain", "gain", gain)

	return nil
}

// SetAECValue sets the manual exposure in lines. The value is clamped to the
// frame's vertical total size read from the sensor.
func (d *OV5642) SetAECValue(value uint16) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	limit, err := d.readReg16(Y_TOTAL_SIZE_H)

	if err != nil {
		d.log.Error("could not read max aec value", "error", err)
		return err
	}

	if value > limit {
		value = limit
	}

	err = d.writeRegs([]RegVal{
		{AEC_PK_EXPOSE_HI, (value >> 12) & 0x0F},
		{AEC_PK_EXPOSE_MID, (value >> 4) & 0xFF},
		{AEC_PK_EXPOSE_LO, (value << 4) & 0xF0},
	})

	if err != nil {
		return err
	}

	d.status.AECValue = value
	d.log.Debug("set aec value", "value", value, "max", limit)

	return nil
}

// SetAELevel sets the auto exposure target from -5 to 5.
func (d *OV5642) SetAELevel(level int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.setAELevel(level)
}

// aeThresholds returns the stable and fast AEC window for level
func aeThresholds(level int) (high, low, fastHigh, fastLow uint8) {

	// good targets are between 5 and 115
	target := (level+5)*10 + 5

	l := target * 23 / 25
	h := target * 27 / 25
	fh := h << 1

	if fh > 255 {
		fh = 255
	}

	return uint8(h), uint8(l), uint8(fh), uint8(l >> 1)
}

func (d *OV5642) setAELevel(level int) error {

	if err := checkLevel("set ae level", level, -5, 5); err != nil {
		return err
	}

	high, low, fastHigh, fastLow := aeThresholds(level)

	err := d.writeRegs([]RegVal{
		{AEC_CTRL0F, uint16(high)},
		{AEC_CTRL10, uint16(low)},
		{AEC_CTRL1B, uint16(high)},
		{AEC_CTRL1E, uint16(low)},
		{AEC_CTRL11, uint16(fastHigh)},
		{AEC_CTRL1F, uint16(fastLow)},
	})

	if err != nil {
		return err
	}

	d.status.AELevel = level
	d.log.Debug("set ae level", "level", level)

	return nil
}

// SetSpecialEffect selects one of the 7 special digital effects, 0 is none.
func (d *OV5642) SetSpecialEffect(effect int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := checkLevel("set special effect", effect, 0, MaxSpecialEffect); err != nil {
		return err
	}

	row := d.tables.SpecialEffects[effect]

	err := d.writeRegs([]RegVal{
		{SDE_CTRL0, uint16(row[0])},
		{SDE_CTRL3, uint16(row[1])},
		{SDE_CTRL4, uint16(row[2])},
		{ISP_CONTROL_03, uint16(row[3])},
	})

	if err != nil {
		return err
	}

	d.status.SpecialEffect = effect
	d.log.Debug("set special effect", "effect", effect)

	return nil
}

// SetWBMode selects automatic white balance, mode 0, or one of the manual
// presets. Automatic mode leaves the manual gains untouched.
func (d *OV5642) SetWBMode(mode int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.setWBMode(mode)
}

func (d *OV5642) setWBMode(mode int) error {

	if err := checkLevel("set wb mode", mode, WBAuto, WBHome); err != nil {
		return err
	}

	var manual uint8

	if mode != WBAuto {
		manual = 1
	}

	if err := d.writeReg(AWB_MANUAL_CTRL, manual); err != nil {
		return err
	}

	if mode != WBAuto {
		gains := d.tables.WhiteBalance[mode-1]

		for i, reg := range []uint16{AWB_R_GAIN, AWB_G_GAIN, AWB_B_GAIN} {
			if err := d.writeReg16(reg, gains[i]); err != nil {
				return err
			}
		}
	}

	d.status.WBMode = mode
	d.log.Debug("set wb mode", "mode", mode)

	return nil
}

// SetAWBGain enables or disables the manual white balance gains. Disabling
// returns the sensor to automatic white balance but remembers the selected
// preset, which is restored when re-enabled.
func (d *OV5642) SetAWBGain(enable bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	old := d.status.WBMode
	mode := WBAuto

	if enable {
		mode = old
	}

	if err := d.setWBMode(mode); err != nil {
		return err
	}

	d.status.WBMode = old
	d.status.AWBGain = enable
	d.log.Debug("set awb gain", "enable", enable)

	return nil
}

// SetDenoise sets the denoise level, 0 turns auto denoise off.
func (d *OV5642) SetDenoise(level int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := checkLevel("set denoise", level, 0, MaxDenoise); err != nil {
		return err
	}

	if err := d.writeRegBits(CIP_CTRL, 0x10, level > 0); err != nil {
		return err
	}

	if level > 0 {
		if err := d.writeReg(DENOISE_OFFSET, uint8(level-1)*4); err != nil {
			return err
		}
	}

	d.status.Denoise = level
	d.log.Debug("set denoise", "level", level)

	return nil
}

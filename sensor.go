package ov5642

// Sensor is the control surface of a camera sensor. Callers that only need
// to configure a sensor can hold this interface instead of a concrete driver.
type Sensor interface {
	Reset() error
	InitStatus() error
	Status() (Status, error)

	SetPixelFormat(f PixelFormat) error
	SetFrameSize(size FrameSize) error
	SetHMirror(enable bool) error
	SetVFlip(enable bool) error

	SetQuality(q uint8) error
	SetContrast(level int) error
	SetBrightness(level int) error
	SetSaturation(level int) error
	SetSharpness(level int) error
	SetGainCeiling(ceiling uint16) error
	SetDenoise(level int) error
	SetAELevel(level int) error

	SetColorbar(enable bool) error
	SetGainCtrl(enable bool) error
	SetExposureCtrl(enable bool) error
	SetWhitebal(enable bool) error
	SetAEC2(enable bool) error
	SetDCW(enable bool) error
	SetBPC(enable bool) error
	SetWPC(enable bool) error
	SetRawGMA(enable bool) error
	SetLenc(enable bool) error
	SetAWBGain(enable bool) error

	SetAGCGain(gain int) error
	SetAECValue(value uint16) error
	SetSpecialEffect(effect int) error
	SetWBMode(mode int) error
}

var _ Sensor = (*OV5642)(nil)

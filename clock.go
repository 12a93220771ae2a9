package ov5642

// pre-divider and SELD5 settings are stored doubled so the arithmetic stays in
// integers
var (
	pllPreDiv2xMap = [8]uint64{2, 3, 4, 5, 6, 8, 12, 16}
	pllSelD52xMap  = [4]uint64{2, 2, 4, 5}
)

// the decoder reads SELD5 through a different map
var (
	decodeSelD5Map    = [4]uint64{1, 1, 4, 5}
	decodePreDiv2xMap = [8]uint64{2, 3, 4, 5, 6, 8, 12, 16}
)

// PLLConfig holds the PLL register fields. Each field must fit its register
// bit-width, see Validate.
type PLLConfig struct {
	Bypass       bool
	Multiplier   uint8 // 0-31
	SysDiv       uint8 // 0-15, 0 behaves as 1
	PreDiv       uint8 // 0-7, index into {1, 1.5, 2, 2.5, 3, 4, 6, 8}
	RootDoubling bool
	SelD5        uint8 // 0-3
	PCLKManual   bool
	PCLKDiv      uint8 // 0-31
}

// Validate checks that every field fits its register.
func (p PLLConfig) Validate() error {

	switch {
	case p.Multiplier > 31:
		return invalid("pll", "multiplier %d > 31", p.Multiplier)
	case p.SysDiv > 15:
		return invalid("pll", "sys div %d > 15", p.SysDiv)
	case p.PreDiv > 7:
		return invalid("pll", "pre div %d > 7", p.PreDiv)
	case p.PCLKDiv > 31:
		return invalid("pll", "pclk div %d > 31", p.PCLKDiv)
	case p.SelD5 > 3:
		return invalid("pll", "seld5 %d > 3", p.SelD5)
	}

	return nil
}

// Clocks are the frequencies derived from a PLLConfig.
type Clocks struct {
	// VCO is in kHz, the remaining fields in Hz
	VCO   uint64
	PLL   uint64
	Sys   uint64
	Pixel uint64
}

// CalcSysClock derives the clock tree of p for an input of xclkHz. Every
// division truncates in the order the hardware model applies them. p must be
// valid.
func CalcSysClock(xclkHz uint32, p PLLConfig) Clocks {

	sysDiv := uint64(p.SysDiv)

	if sysDiv == 0 {
		sysDiv = 1
	}

	rootDiv := uint64(1)

	if p.RootDoubling {
		rootDiv = 2
	}

	preDiv2x := pllPreDiv2xMap[p.PreDiv&0x07]
	selD52x := pllSelD52xMap[p.SelD5&0x03]

	var c Clocks

	c.VCO = (uint64(xclkHz) / 1000) * uint64(p.Multiplier) * rootDiv * 2 / preDiv2x

	if p.Bypass {
		c.PLL = uint64(xclkHz)
	} else {
		c.PLL = c.VCO * 1000 * 2 / sysDiv / selD52x
	}

	pclkDiv := uint64(1)

	if p.PCLKManual && p.PCLKDiv != 0 {
		pclkDiv = uint64(p.PCLKDiv)
	}

	c.Pixel = c.PLL / 2 / pclkDiv
	c.Sys = c.PLL / 4

	return c
}

// SetPLL validates p and programs the PLL registers. Nothing is written when
// p is invalid. A bus failure stops the sequence and leaves the registers
// written so far in place.
func (d *OV5642) SetPLL(p PLLConfig) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.setPLL(p)
}

func (d *OV5642) setPLL(p PLLConfig) error {

	if err := p.Validate(); err != nil {
		d.log.Error("invalid pll arguments", "error", err)
		return err
	}

	c := CalcSysClock(d.xclkHz, p)
	d.log.Debug("calculated clocks", "vcoKHz", c.VCO, "pllKHz", c.PLL/1000,
		"sysKHz", c.Sys/1000, "pclkKHz", c.Pixel/1000)

	var ctrl0, ctrl2, vfifo uint8 = p.SelD5, p.PCLKDiv & 0x3F, 0x20

	if p.RootDoubling {
		ctrl0 |= 0x04
	}

	if p.Bypass {
		ctrl2 |= 0x80
	}

	if p.PCLKManual {
		vfifo = 0x22
	}

	err := d.writeRegs([]RegVal{
		{SC_PLLS_CTRL0, uint16(ctrl0)},
		{SC_PLLS_CTRL1, uint16(p.SysDiv&0x0F) << 4},
		{SC_PLLS_CTRL2, uint16(ctrl2)},
		{SC_PLLS_CTRL3, uint16(p.PreDiv & 0x07)},
		{PCLK_RATIO, uint16(p.Multiplier & 0x1F)},
		{VFIFO_CTRL0C, uint16(vfifo)},
	})

	if err != nil {
		d.log.Error("set pll failed", "error", err)
		return err
	}

	return nil
}

// ClockEstimate is the clock state decoded from the programmed PLL registers.
// It is a diagnostic estimate and is not the inverse of CalcSysClock.
type ClockEstimate struct {
	DivL       uint8
	SelD5      uint8
	DivS       uint8
	DivM       uint8
	Bypass     bool
	DivP       uint8
	PreDiv2x   uint8
	FromPreDiv bool

	// frequencies in Hz
	XCLK uint64
	PLL  uint64
	VCO  uint64
	Sys  uint64
}

// DecodeClock reads the PLL registers and estimates the resulting clocks.
func (d *OV5642) DecodeClock() (ClockEstimate, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var ctrl [4]uint8

	for i := range ctrl {
		v, err := d.readReg(SC_PLLS_CTRL0 + uint16(i))

		if err != nil {
			return ClockEstimate{}, err
		}

		ctrl[i] = v
	}

	root, err := d.readReg(SYSTEM_ROOT)

	if err != nil {
		return ClockEstimate{}, err
	}

	e := decodeClock(d.xclkHz, ctrl, root)

	d.log.Debug("decoded pll", "divl", e.DivL, "seld5", e.SelD5, "divs", e.DivS,
		"divm", e.DivM, "bypass", e.Bypass, "divp", e.DivP, "prediv2x", e.PreDiv2x,
		"fromPreDiv", e.FromPreDiv)
	d.log.Debug("decoded clocks", "xclkMHz", e.XCLK/1000000, "pllMHz", e.PLL/1000000,
		"vcoMHz", e.VCO/1000000, "sysMHz", e.Sys/1000000)

	return e, nil
}

// decodeClock is the register independent part of DecodeClock
func decodeClock(xclkHz uint32, ctrl [4]uint8, root uint8) ClockEstimate {

	e := ClockEstimate{
		DivL:       (ctrl[0] & 0x04) >> 2,
		SelD5:      uint8(decodeSelD5Map[ctrl[0]&0x03]),
		DivS:       (ctrl[1] & 0xF0) >> 4,
		DivM:       ctrl[1] & 0x0F,
		Bypass:     ctrl[2]&0x80 != 0,
		DivP:       ctrl[2] & 0x3F,
		PreDiv2x:   uint8(decodePreDiv2xMap[ctrl[3]&0x07]),
		FromPreDiv: root&0x02 != 0,
		XCLK:       uint64(xclkHz),
	}

	switch {
	case e.Bypass:
		e.PLL = e.XCLK
	case e.FromPreDiv:
		e.PLL = e.XCLK * uint64(e.PreDiv2x) / 2
	default:
		e.PLL = e.XCLK
	}

	divS := uint64(e.DivS)

	if divS == 0 {
		divS = 1
	}

	e.VCO = e.PLL * uint64(e.DivP) * uint64(e.SelD5)
	e.Sys = e.PLL * uint64(e.DivP) / divS / 4

	return e
}

// pllTier maps a range of frame sizes for one class of format to a tuned
// PLL configuration
type pllTier struct {
	jpeg     bool
	min, max FrameSize
	pll      PLLConfig
}

// manualPLL returns a PLL configuration with a manual pixel clock divider
func manualPLL(multiplier, sysDiv, preDiv, pclkDiv uint8) PLLConfig {
	return PLLConfig{
		Multiplier: multiplier,
		SysDiv:     sysDiv,
		PreDiv:     preDiv,
		PCLKManual: true,
		PCLKDiv:    pclkDiv,
	}
}

// pllTiers is searched in order, the first matching row wins
var pllTiers = []pllTier{
	// full resolution JPEG, not yet tuned for a nominal rate
	{jpeg: true, min: FrameQSXGA, max: FrameQSXGA, pll: manualPLL(12, 1, 3, 2)},
	// 40MHz SYSCLK and 10MHz PCLK
	{jpeg: true, min: FrameQXGA, max: FrameQXGA, pll: manualPLL(24, 1, 3, 8)},
	// 50MHz SYSCLK and 10MHz PCLK
	{jpeg: true, min: Frame96X96, max: FrameQSXGA, pll: manualPLL(30, 1, 3, 10)},
	// 10MHz SYSCLK and 10MHz PCLK (6.19 FPS)
	{jpeg: false, min: FrameHVGA, max: FrameQSXGA, pll: manualPLL(2, 1, 0, 2)},
	// 25MHz SYSCLK and 10MHz PCLK (15.45 FPS)
	{jpeg: false, min: Frame96X96, max: FrameCIF, pll: manualPLL(5, 1, 0, 5)},
}

// selectPLL returns the tuned PLL configuration for format f at size.
func selectPLL(f PixelFormat, size FrameSize) (PLLConfig, bool) {

	jpeg := f == PixelFormatJPEG

	for _, t := range pllTiers {
		if t.jpeg == jpeg && size >= t.min && size <= t.max {
			return t.pll, true
		}
	}

	return PLLConfig{}, false
}

package ov5642

// Tables holds the register data the driver loads. The built-in set is
// returned by DefaultTables; a custom set, for example one carrying the
// vendor auto-focus firmware, can be supplied through Config.Tables.
// Tables are treated as read-only once attached to a sensor.
type Tables struct {
	// Defaults is loaded after a software reset
	Defaults []RegVal
	// AutoFocus brings up the auto-focus MCU, best effort
	AutoFocus []RegVal
	// Formats maps each output format to its register list
	Formats map[PixelFormat][]RegVal
	// SpecialEffects rows are SDE_CTRL0, SDE_CTRL3, SDE_CTRL4, ISP_CONTROL_03
	SpecialEffects [7][4]uint8
	// Saturation rows are written to CMX1 onwards, indexed by level+4
	Saturation [9][11]uint8
	// WhiteBalance holds R, G, B gains for the sunny, cloudy, office and
	// home presets
	WhiteBalance [4][3]uint16
}

// formatRegs returns the register list for f
func (t *Tables) formatRegs(f PixelFormat) ([]RegVal, bool) {

	regs, ok := t.Formats[f]

	return regs, ok && len(regs) > 0
}

// DefaultTables returns a copy of the built-in register tables.
func DefaultTables() *Tables {

	t := &Tables{
		Defaults:       append([]RegVal(nil), defaultRegs...),
		AutoFocus:      append([]RegVal(nil), autoFocusRegs...),
		Formats:        make(map[PixelFormat][]RegVal, len(pixelFormatRegs)),
		SpecialEffects: specialEffects,
		Saturation:     saturationLevels,
		WhiteBalance:   whiteBalancePresets,
	}

	for f, regs := range pixelFormatRegs {
		t.Formats[f] = append([]RegVal(nil), regs...)
	}

	return t
}

const (
	// FORMAT_CTRL00 selects the output byte order of the data port
	FORMAT_CTRL00 uint16 = 0x4300
	// FORMAT_MUX selects the ISP output path
	FORMAT_MUX uint16 = 0x501F
)

var defaultRegs = []RegVal{
	// system and IO
	{0x3103, 0x93},
	{0x3017, 0x7F},
	{0x3018, 0xFC},
	{0x3615, 0xF0},
	{0x3000, 0x00},
	{0x3001, 0x00},
	{0x3002, 0x00},
	{0x3003, 0x00},
	{0x3004, 0xFF},
	{0x3030, 0x2B},
	{0x3011, 0x08},
	{0x3010, 0x10},
	{0x3604, 0x60},
	{0x3622, 0x60},
	{0x3621, 0x09},
	{0x3709, 0x00},
	{0x4000, 0x21},
	{0x401D, 0x22},
	{0x3600, 0x54},
	{0x3605, 0x04},
	{0x3606, 0x3F},
	{0x3C01, 0x80},
	{0x300D, 0x22},
	{0x3623, 0x22},

	// ISP top
	{0x5000, 0x4F},
	{0x5020, 0x04},
	{0x5181, 0x79},
	{0x5182, 0x00},
	{0x5185, 0x22},
	{0x5197, 0x01},
	{0x5500, 0x0A},
	{0x5504, 0x00},
	{0x5505, 0x7F},
	{0x5080, 0x08},
	{0x300E, 0x18},
	{0x4610, 0x00},
	{0x471D, 0x05},
	{0x4708, 0x06},
	{0x370C, 0xA0},

	// full array output
	{0x3808, 0x0A},
	{0x3809, 0x20},
	{0x380A, 0x07},
	{0x380B, 0x98},
	{0x380C, 0x0C},
	{0x380D, 0x80},
	{0x380E, 0x07},
	{0x380F, 0xD0},
	{0x5687, 0x94},
	{0x501F, 0x00},
	{0x5001, 0xCF},
	{0x4300, 0x30},
	{0x460B, 0x35},
	{0x471D, 0x00},
	{0x3002, 0x0C},
	{0x3002, 0x00},
	{0x4713, 0x03},
	{0x471C, 0x50},
	{0x4721, 0x02},
	{0x4402, 0x90},
	{0x460C, 0x22},
	{0x3815, 0x44},
	{0x3818, 0x00},
	{0x3801, 0x88},
	{0x3824, 0x11},

	// AEC/AGC
	{0x3503, 0x00},
	{0x3A00, 0x78},
	{0x3A1A, 0x04},
	{0x3A13, 0x30},
	{0x3A18, 0x00},
	{0x3A19, 0x7C},
	{0x3A08, 0x12},
	{0x3A09, 0xC0},
	{0x3A0A, 0x0F},
	{0x3A0B, 0xA0},
	{0x350C, 0x07},
	{0x350D, 0xD0},
	{0x3A0D, 0x08},
	{0x3A0E, 0x06},
	{0x3500, 0x00},
	{0x3501, 0x00},
	{0x3502, 0x00},
	{0x350A, 0x00},
	{0x350B, 0x3F},

	// AWB
	{0x5183, 0x94},
	{0x5184, 0x25},
	{0x5185, 0x24},
	{0x5186, 0x06},
	{0x5187, 0x08},
	{0x5188, 0x08},
	{0x518B, 0xB2},
	{0x518C, 0xB2},
	{0x518D, 0x44},
	{0x518E, 0x3D},
	{0x518F, 0x58},
	{0x5190, 0x46},
	{0x5191, 0xF8},
	{0x5192, 0x04},
	{0x5193, 0x70},
	{0x5194, 0xF0},
	{0x5195, 0xF0},
	{0x5196, 0x03},
	{0x3406, 0x00},

	// colour matrix, saturation 0
	{0x5381, 0x1C},
	{0x5382, 0x5A},
	{0x5383, 0x06},
	{0x5384, 0x0C},
	{0x5385, 0x78},
	{0x5386, 0x84},
	{0x5387, 0x7D},
	{0x5388, 0x6B},
	{0x5389, 0x12},
	{0x538A, 0x01},
	{0x538B, 0x98},

	// sharpness and denoise auto
	{0x5300, 0x08},
	{0x5301, 0x30},
	{0x5302, 0x18},
	{0x5303, 0x18},
	{0x5304, 0x08},
	{0x5305, 0x30},
	{0x5306, 0x08},
	{0x5307, 0x16},
	{0x5308, 0x00},
	{0x5309, 0x08},
	{0x530A, 0x30},
	{0x530B, 0x04},
	{0x530C, 0x06},

	// special digital effects
	{0x5580, 0x06},
	{0x5583, 0x40},
	{0x5584, 0x10},
	{0x5586, 0x20},
	{0x5587, 0x00},
	{0x5588, 0x01},
	{0x5589, 0x10},
	{0x558A, 0x00},
	{0x558B, 0xF8},

	// JPEG quality
	{0x4407, 0x04},

	{RegDelay, 10},
	{RegListEnd, 0x00},
}

// autoFocusRegs holds the MCU in reset around the firmware download. The
// firmware image itself is not built in and is inserted between the two
// entries by a custom table set.
var autoFocusRegs = []RegVal{
	{0x3000, 0x20},
	{0x3000, 0x00},
	{RegListEnd, 0x00},
}

var pixelFormatRegs = map[PixelFormat][]RegVal{
	PixelFormatYUV422: {
		{FORMAT_MUX, 0x00},
		{FORMAT_CTRL00, 0x30},
		{RegListEnd, 0x00},
	},
	PixelFormatGrayscale: {
		{FORMAT_MUX, 0x00},
		{FORMAT_CTRL00, 0x10},
		{RegListEnd, 0x00},
	},
	// RGB888 is delivered through the RGB565 path
	PixelFormatRGB565: rgbRegs,
	PixelFormatRGB888: rgbRegs,
	PixelFormatJPEG: {
		{FORMAT_MUX, 0x00},
		{FORMAT_CTRL00, 0x30},
		{0x3002, 0x00},
		{0x3006, 0xFF},
		{0x471C, 0x50},
		{RegListEnd, 0x00},
	},
	PixelFormatRaw: {
		{FORMAT_MUX, 0x03},
		{FORMAT_CTRL00, 0x00},
		{RegListEnd, 0x00},
	},
}

var rgbRegs = []RegVal{
	{FORMAT_MUX, 0x01},
	{FORMAT_CTRL00, 0x61},
	{RegListEnd, 0x00},
}

var specialEffects = [7][4]uint8{
	{0x06, 0x40, 0x10, 0x08}, // normal
	{0x46, 0x40, 0x28, 0x08}, // negative
	{0x1E, 0x80, 0x80, 0x08}, // grayscale
	{0x1E, 0x80, 0xC0, 0x08}, // red tint
	{0x1E, 0x60, 0x60, 0x08}, // green tint
	{0x1E, 0xA0, 0x40, 0x08}, // blue tint
	{0x1E, 0x40, 0xA0, 0x08}, // sepia
}

var saturationLevels = [9][11]uint8{
	{0x1C, 0x5A, 0x06, 0x07, 0x48, 0x4F, 0x4B, 0x40, 0x0B, 0x01, 0x98}, // -4
	{0x1C, 0x5A, 0x06, 0x08, 0x54, 0x5C, 0x58, 0x4B, 0x0D, 0x01, 0x98}, // -3
	{0x1C, 0x5A, 0x06, 0x0A, 0x60, 0x6A, 0x64, 0x56, 0x0E, 0x01, 0x98}, // -2
	{0x1C, 0x5A, 0x06, 0x0B, 0x6C, 0x77, 0x70, 0x60, 0x10, 0x01, 0x98}, // -1
	{0x1C, 0x5A, 0x06, 0x0C, 0x78, 0x84, 0x7D, 0x6B, 0x12, 0x01, 0x98}, // 0
	{0x1C, 0x5A, 0x06, 0x0D, 0x84, 0x91, 0x8A, 0x76, 0x14, 0x01, 0x98}, // +1
	{0x1C, 0x5A, 0x06, 0x0E, 0x90, 0x9E, 0x96, 0x80, 0x16, 0x01, 0x98}, // +2
	{0x1C, 0x5A, 0x06, 0x10, 0x9C, 0xAC, 0xA3, 0x8B, 0x17, 0x01, 0x98}, // +3
	{0x1C, 0x5A, 0x06, 0x11, 0xA8, 0xB9, 0xB0, 0x96, 0x19, 0x01, 0x98}, // +4
}

var whiteBalancePresets = [4][3]uint16{
	{0x5E0, 0x410, 0x540}, // sunny
	{0x650, 0x410, 0x4F0}, // cloudy
	{0x520, 0x410, 0x660}, // office
	{0x420, 0x3F0, 0x710}, // home
}

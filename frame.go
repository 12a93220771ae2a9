package ov5642

import (
	"fmt"
	"strings"
)

// FrameSize selects the output resolution. Values are ordered by increasing
// pixel count.
type FrameSize int

const (
	Frame96X96 FrameSize = iota
	FrameQQVGA
	FrameQCIF
	FrameHQVGA
	Frame240X240
	FrameQVGA
	FrameCIF
	FrameHVGA
	FrameVGA
	FrameSVGA
	FrameXGA
	FrameHD
	FrameSXGA
	FrameUXGA
	FrameFHD
	FrameQXGA
	FrameQHD
	FrameWQXGA
	FrameQSXGA
	// FrameInvalid marks the end of the table and is never a valid size
	FrameInvalid
)

const (
	// frameBinning is the largest size captured with sensor-side binning
	frameBinning = FrameSVGA
)

// Resolution is the output width and height of a FrameSize.
type Resolution struct {
	Width  uint16
	Height uint16
	Name   string
}

// resolutions is indexed by FrameSize
var resolutions = [FrameInvalid]Resolution{
	Frame96X96:   {96, 96, "96x96"},
	FrameQQVGA:   {160, 120, "qqvga"},
	FrameQCIF:    {176, 144, "qcif"},
	FrameHQVGA:   {240, 176, "hqvga"},
	Frame240X240: {240, 240, "240x240"},
	FrameQVGA:    {320, 240, "qvga"},
	FrameCIF:     {400, 296, "cif"},
	FrameHVGA:    {480, 320, "hvga"},
	FrameVGA:     {640, 480, "vga"},
	FrameSVGA:    {800, 600, "svga"},
	FrameXGA:     {1024, 768, "xga"},
	FrameHD:      {1280, 720, "hd"},
	FrameSXGA:    {1280, 1024, "sxga"},
	FrameUXGA:    {1600, 1200, "uxga"},
	FrameFHD:     {1920, 1080, "fhd"},
	FrameQXGA:    {2048, 1536, "qxga"},
	FrameQHD:     {2560, 1440, "qhd"},
	FrameWQXGA:   {2560, 1600, "wqxga"},
	FrameQSXGA:   {2560, 1920, "qsxga"},
}

// Valid reports whether s names an entry of the resolution table.
func (s FrameSize) Valid() bool {
	return s >= 0 && s < FrameInvalid
}

// Resolution returns the output dimensions of s. The zero Resolution is
// returned for an invalid size.
func (s FrameSize) Resolution() Resolution {
	if !s.Valid() {
		return Resolution{}
	}

	return resolutions[s]
}

// String implement Stringer interface for FrameSize
func (s FrameSize) String() string {
	if !s.Valid() {
		return fmt.Sprintf("FrameSize(%d)", int(s))
	}

	return resolutions[s].Name
}

// ParseFrameSize returns the FrameSize named s, either by name such as "vga"
// or by dimensions such as "640x480".
func ParseFrameSize(s string) (FrameSize, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	for i, r := range resolutions {
		if r.Name == s || fmt.Sprintf("%dx%d", r.Width, r.Height) == s {
			return FrameSize(i), nil
		}
	}

	return FrameInvalid, invalid("parse frame size", "unknown frame size %q", s)
}

// SetFrameSize programs the capture window, output size, timing, image
// options and PLL for size. Each step runs only if the previous succeeded.
// On failure the mirrored frame size is restored, but registers already
// written are left as they are. The ISP control step turns auto white balance
// back on and the mirror follows it.
func (d *OV5642) SetFrameSize(size FrameSize) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.setFrameSize(size)
}

func (d *OV5642) setFrameSize(size FrameSize) error {

	if !size.Valid() {
		d.log.Error("invalid frame size", "size", int(size))
		return invalid("set frame size", "frame size %d out of range", int(size))
	}

	old := d.status.FrameSize
	d.status.FrameSize = size

	if err := d.applyFrameSize(size); err != nil {
		d.status.FrameSize = old
		res := size.Resolution()
		d.log.Error("set frame size failed", "width", res.Width, "height",
			res.Height, "error", err)
		return err
	}

	res := size.Resolution()
	d.log.Debug("set frame size", "width", res.Width, "height", res.Height)

	return nil
}

// applyFrameSize runs the register steps of setFrameSize against the mirror
// which already holds size
func (d *OV5642) applyFrameSize(size FrameSize) error {

	res := size.Resolution()

	// sensor array window and output size
	if err := d.writeAddrReg(X_ADDR_ST_H, 432, 10); err != nil {
		return err
	}

	if err := d.writeAddrReg(X_ADDR_END_H, 2592, 1944); err != nil {
		return err
	}

	if err := d.writeAddrReg(X_OUTPUT_SIZE_H, res.Width, res.Height); err != nil {
		return err
	}

	// total timing size
	var hts, vts uint16

	switch {
	case size > FrameSVGA:
		hts, vts = 3200, 2000
	case size == FrameSVGA:
		hts, vts = 3200, 1000
	default:
		hts, vts = 1600, 500
	}

	if err := d.writeAddrReg(X_TOTAL_SIZE_H, hts, vts); err != nil {
		return err
	}

	// horizontal offset 12, vertical offset 2
	if err := d.writeReg(XY_OFFSET, (12&0x0F)<<4|(2&0x0F)); err != nil {
		return err
	}

	var isp uint8 = 0x7F

	if size == FrameQSXGA {
		isp = 0x4F
	}

	if err := d.writeReg(ISP_CONTROL_01, isp); err != nil {
		return err
	}

	// both values enable AWB
	d.status.AWB = true

	opts := imageOptions(d.status.PixelFormat, size, d.status.HMirror, d.status.VFlip)

	if err := d.applyImageOptions(opts); err != nil {
		return err
	}

	// pllTiers must cover every valid size for both format classes, this
	// only fails if the table loses a range
	pll, ok := selectPLL(d.status.PixelFormat, size)

	if !ok {
		return invalid("set frame size", "no pll tier for %s at %s",
			d.status.PixelFormat, size)
	}

	return d.setPLL(pll)
}

// ImageOptions are the register values combining compression, binning and
// orientation.
type ImageOptions struct {
	// TimingReg18 holds the compression, mirror and flip bits
	TimingReg18 uint8
	// VBinning and HBinning are written to the analog and array controls
	VBinning uint8
	HBinning uint8
}

const (
	optCompression uint8 = 0x80
	optHMirror     uint8 = 0x40
	optVFlip       uint8 = 0x20
	optVBinning    uint8 = 0x80
	optHBinning    uint8 = 0x40
)

// imageOptions computes the image option registers for a configuration. It
// has no side effects.
func imageOptions(f PixelFormat, size FrameSize, hmirror, vflip bool) ImageOptions {

	var o ImageOptions

	if f == PixelFormatJPEG {
		o.TimingReg18 |= optCompression
	}

	if hmirror {
		o.TimingReg18 |= optHMirror
	}

	if vflip {
		o.TimingReg18 |= optVFlip
	}

	// binning for small frame sizes
	if size <= frameBinning {
		o.VBinning = optVBinning
		o.HBinning = optHBinning
	}

	return o
}

// applyImageOptions writes o in the fixed order reg18, vertical binning,
// horizontal binning
func (d *OV5642) applyImageOptions(o ImageOptions) error {

	if err := d.writeReg(TIMING_TC_REG18, o.TimingReg18); err != nil {
		return err
	}

	if err := d.writeReg(ANALOG_CONTROL_D, o.VBinning); err != nil {
		return err
	}

	return d.writeReg(ARRAY_CONTROL01, o.HBinning)
}

// RecomputeImageOptions rewrites the image option registers from the
// mirrored format, frame size, mirror and flip settings.
func (d *OV5642) RecomputeImageOptions() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.status
	opts := imageOptions(s.PixelFormat, s.FrameSize, s.HMirror, s.VFlip)

	if err := d.applyImageOptions(opts); err != nil {
		d.log.Error("set image options failed", "error", err)
		return err
	}

	d.log.Debug("set image options", "compression", s.PixelFormat == PixelFormatJPEG,
		"binning", s.FrameSize <= frameBinning, "vflip", s.VFlip, "hmirror", s.HMirror)

	return nil
}

// SetHMirror enables or disables horizontal mirroring.
func (d *OV5642) SetHMirror(enable bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.status
	opts := imageOptions(s.PixelFormat, s.FrameSize, enable, s.VFlip)

	if err := d.applyImageOptions(opts); err != nil {
		return err
	}

	d.status.HMirror = enable
	d.log.Debug("set h-mirror", "enable", enable)

	return nil
}

// SetVFlip enables or disables vertical flipping.
func (d *OV5642) SetVFlip(enable bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.status
	opts := imageOptions(s.PixelFormat, s.FrameSize, s.HMirror, enable)

	if err := d.applyImageOptions(opts); err != nil {
		return err
	}

	d.status.VFlip = enable
	d.log.Debug("set v-flip", "enable", enable)

	return nil
}

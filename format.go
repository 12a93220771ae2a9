package ov5642

import (
	"fmt"
	"strings"
)

// PixelFormat is the output format of the sensor's data port.
type PixelFormat int

const (
	PixelFormatYUV422 PixelFormat = iota
	PixelFormatGrayscale
	PixelFormatRGB565
	PixelFormatRGB888
	PixelFormatJPEG
	PixelFormatRaw
)

var pixelFormatNames = map[PixelFormat]string{
	PixelFormatYUV422:    "yuv422",
	PixelFormatGrayscale: "grayscale",
	PixelFormatRGB565:    "rgb565",
	PixelFormatRGB888:    "rgb888",
	PixelFormatJPEG:      "jpeg",
	PixelFormatRaw:       "raw",
}

// String implement Stringer interface for PixelFormat
func (f PixelFormat) String() string {
	if s, ok := pixelFormatNames[f]; ok {
		return s
	}

	return fmt.Sprintf("PixelFormat(%d)", int(f))
}

// ParsePixelFormat returns the PixelFormat named s, case insensitive.
func ParsePixelFormat(s string) (PixelFormat, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	for f, name := range pixelFormatNames {
		if name == s {
			return f, nil
		}
	}

	return 0, invalid("parse pixel format", "unknown pixel format %q", s)
}

// SetPixelFormat loads the register list of format f and updates the
// compression bit of the image options to match.
func (d *OV5642) SetPixelFormat(f PixelFormat) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.setPixelFormat(f)
}

func (d *OV5642) setPixelFormat(f PixelFormat) error {

	regs, ok := d.tables.formatRegs(f)

	if !ok {
		return invalid("set pixel format", "unsupported pixel format %d", int(f))
	}

	if err := d.writeRegs(regs); err != nil {
		d.log.Error("set pixel format failed", "format", f.String(), "error", err)
		return err
	}

	// the compression bit of the image options follows the format
	opts := imageOptions(f, d.status.FrameSize, d.status.HMirror, d.status.VFlip)

	if err := d.applyImageOptions(opts); err != nil {
		d.log.Error("set pixel format failed", "format", f.String(), "error", err)
		return err
	}

	d.status.PixelFormat = f
	d.log.Debug("set pixel format", "format", f.String())

	return nil
}

package ov5642

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Profile is a declarative sensor configuration. Unset fields leave the
// corresponding setting untouched.
//
//	format: jpeg
//	frame_size: vga
//	quality: 10
//	hmirror: true
//	wb_mode: 1
type Profile struct {
	Format    string `yaml:"format,omitempty"`
	FrameSize string `yaml:"frame_size,omitempty"`

	HMirror *bool `yaml:"hmirror,omitempty"`
	VFlip   *bool `yaml:"vflip,omitempty"`

	Quality       *uint8  `yaml:"quality,omitempty"`
	Contrast      *int    `yaml:"contrast,omitempty"`
	Brightness    *int    `yaml:"brightness,omitempty"`
	Saturation    *int    `yaml:"saturation,omitempty"`
	Sharpness     *int    `yaml:"sharpness,omitempty"`
	GainCeiling   *uint16 `yaml:"gain_ceiling,omitempty"`
	Denoise       *int    `yaml:"denoise,omitempty"`
	AELevel       *int    `yaml:"ae_level,omitempty"`
	SpecialEffect *int    `yaml:"special_effect,omitempty"`
	WBMode        *int    `yaml:"wb_mode,omitempty"`

	Colorbar     *bool `yaml:"colorbar,omitempty"`
	GainCtrl     *bool `yaml:"gain_ctrl,omitempty"`
	ExposureCtrl *bool `yaml:"exposure_ctrl,omitempty"`
	Whitebal     *bool `yaml:"whitebal,omitempty"`
	AEC2         *bool `yaml:"aec2,omitempty"`
	DCW          *bool `yaml:"dcw,omitempty"`
	BPC          *bool `yaml:"bpc,omitempty"`
	WPC          *bool `yaml:"wpc,omitempty"`
	RawGMA       *bool `yaml:"raw_gma,omitempty"`
	Lenc         *bool `yaml:"lenc,omitempty"`
	AWBGain      *bool `yaml:"awb_gain,omitempty"`

	AGCGain  *int    `yaml:"agc_gain,omitempty"`
	AECValue *uint16 `yaml:"aec_value,omitempty"`
}

// ReadProfile decodes a YAML profile from r. Unknown keys are rejected.
func ReadProfile(r io.Reader) (*Profile, error) {

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Profile

	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decode profile")
	}

	return &p, nil
}

// LoadProfile reads a YAML profile from the file at path.
func LoadProfile(path string) (*Profile, error) {

	f, err := os.Open(path)

	if err != nil {
		return nil, errors.Wrap(err, "open profile")
	}

	defer f.Close()

	return ReadProfile(f)
}

// Apply configures s from the profile. The pixel format is set before the
// frame size, since the frame size selects its PLL from the format, and the
// image controls follow. Application stops at the first error.
func (p *Profile) Apply(s Sensor) error {

	if p.Format != "" {
		f, err := ParsePixelFormat(p.Format)

		if err != nil {
			return err
		}

		if err := s.SetPixelFormat(f); err != nil {
			return errors.Wrap(err, "format")
		}
	}

	if p.FrameSize != "" {
		size, err := ParseFrameSize(p.FrameSize)

		if err != nil {
			return err
		}

		if err := s.SetFrameSize(size); err != nil {
			return errors.Wrap(err, "frame size")
		}
	}

	steps := []struct {
		name string
		set  bool
		fn   func() error
	}{
		{"hmirror", p.HMirror != nil, func() error { return s.SetHMirror(*p.HMirror) }},
		{"vflip", p.VFlip != nil, func() error { return s.SetVFlip(*p.VFlip) }},
		{"quality", p.Quality != nil, func() error { return s.SetQuality(*p.Quality) }},
		{"contrast", p.Contrast != nil, func() error { return s.SetContrast(*p.Contrast) }},
		{"brightness", p.Brightness != nil, func() error { return s.SetBrightness(*p.Brightness) }},
		{"saturation", p.Saturation != nil, func() error { return s.SetSaturation(*p.Saturation) }},
		{"sharpness", p.Sharpness != nil, func() error { return s.SetSharpness(*p.Sharpness) }},
		{"gain ceiling", p.GainCeiling != nil, func() error { return s.SetGainCeiling(*p.GainCeiling) }},
		{"denoise", p.Denoise != nil, func() error { return s.SetDenoise(*p.Denoise) }},
		{"ae level", p.AELevel != nil, func() error { return s.SetAELevel(*p.AELevel) }},
		{"special effect", p.SpecialEffect != nil, func() error { return s.SetSpecialEffect(*p.SpecialEffect) }},
		{"wb mode", p.WBMode != nil, func() error { return s.SetWBMode(*p.WBMode) }},
		{"colorbar", p.Colorbar != nil, func() error { return s.SetColorbar(*p.Colorbar) }},
		{"gain ctrl", p.GainCtrl != nil, func() error { return s.SetGainCtrl(*p.GainCtrl) }},
		{"exposure ctrl", p.ExposureCtrl != nil, func() error { return s.SetExposureCtrl(*p.ExposureCtrl) }},
		{"whitebal", p.Whitebal != nil, func() error { return s.SetWhitebal(*p.Whitebal) }},
		{"aec2", p.AEC2 != nil, func() error { return s.SetAEC2(*p.AEC2) }},
		{"dcw", p.DCW != nil, func() error { return s.SetDCW(*p.DCW) }},
		{"bpc", p.BPC != nil, func() error { return s.SetBPC(*p.BPC) }},
		{"wpc", p.WPC != nil, func() error { return s.SetWPC(*p.WPC) }},
		{"raw gma", p.RawGMA != nil, func() error { return s.SetRawGMA(*p.RawGMA) }},
		{"lenc", p.Lenc != nil, func() error { return s.SetLenc(*p.Lenc) }},
		{"awb gain", p.AWBGain != nil, func() error { return s.SetAWBGain(*p.AWBGain) }},
		{"agc gain", p.AGCGain != nil, func() error { return s.SetAGCGain(*p.AGCGain) }},
		{"aec value", p.AECValue != nil, func() error { return s.SetAECValue(*p.AECValue) }},
	}

	for _, st := range steps {
		if !st.set {
			continue
		}

		if err := st.fn(); err != nil {
			return errors.Wrap(err, st.name)
		}
	}

	return nil
}

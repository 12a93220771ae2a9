package ov5642

import (
	"fmt"
	"time"
)

const (
	// System control
	SYSTEM_CTROL0 uint16 = 0x3008

	// PLL control (SC_PLLS_CTRL0 to 3 are contiguous)
	SC_PLLS_CTRL0 uint16 = 0x300F
	SC_PLLS_CTRL1 uint16 = 0x3010
	SC_PLLS_CTRL2 uint16 = 0x3011
	SC_PLLS_CTRL3 uint16 = 0x3012
	SYSTEM_ROOT   uint16 = 0x3103
	PCLK_RATIO    uint16 = 0x3824
	VFIFO_CTRL0C  uint16 = 0x460C

	// Auto focus MCU
	AF_CMD_MAIN uint16 = 0x3024
	AF_CMD_ACK  uint16 = 0x3025
	AF_MCU_CTRL uint16 = 0x3F00

	// AWB manual gains, 16 bit each
	AWB_R_GAIN       uint16 = 0x3400
	AWB_G_GAIN       uint16 = 0x3402
	AWB_B_GAIN       uint16 = 0x3404
	AWB_MANUAL_CTRL  uint16 = 0x3406
	AWB_ADVANCED_CTL uint16 = 0x5183

	// AEC/AGC
	AEC_PK_EXPOSE_HI  uint16 = 0x3500
	AEC_PK_EXPOSE_MID uint16 = 0x3501
	AEC_PK_EXPOSE_LO  uint16 = 0x3502
	AEC_PK_MANUAL     uint16 = 0x3503
	AEC_PK_REAL_GAIN  uint16 = 0x350A
	AEC_PK_REAL_GAINL uint16 = 0x350B
	AEC_CTRL00        uint16 = 0x3A00
	AEC_CTRL0F        uint16 = 0x3A0F
	AEC_CTRL10        uint16 = 0x3A10
	AEC_CTRL11        uint16 = 0x3A11
	AEC_GAIN_CEILING  uint16 = 0x3A18
	AEC_CTRL1B        uint16 = 0x3A1B
	AEC_CTRL1E        uint16 = 0x3A1E
	AEC_CTRL1F        uint16 = 0x3A1F

	// Binning
	ARRAY_CONTROL01  uint16 = 0x3621
	ANALOG_CONTROL_D uint16 = 0x370D

	// Timing: window, output size, total size
	X_ADDR_ST_H     uint16 = 0x3800
	X_ADDR_END_H    uint16 = 0x3804
	X_OUTPUT_SIZE_H uint16 = 0x3808
	X_TOTAL_SIZE_H  uint16 = 0x380C
	Y_TOTAL_SIZE_H  uint16 = 0x380E
	XY_OFFSET       uint16 = 0x3810
	TIMING_TC_REG18 uint16 = 0x3818

	// Compression
	COMPRESSION_CTRL07 uint16 = 0x4407

	// ISP
	ISP_CONTROL_00         uint16 = 0x5000
	ISP_CONTROL_01         uint16 = 0x5001
	ISP_CONTROL_03         uint16 = 0x5003
	SHARPEN_MT_TH1         uint16 = 0x5300
	SHARPEN_MT_TH2         uint16 = 0x5301
	SHARPEN_MT_OFFSET1     uint16 = 0x5302
	SHARPEN_MT_OFFSET2     uint16 = 0x5303
	DENOISE_OFFSET         uint16 = 0x5306
	CIP_CTRL               uint16 = 0x5308
	SHARPEN_TH1            uint16 = 0x5309
	SHARPEN_TH2            uint16 = 0x530A
	SHARPEN_OFFSET1        uint16 = 0x530B
	SHARPEN_OFFSET2        uint16 = 0x530C
	CMX1                   uint16 = 0x5381
	SDE_CTRL0              uint16 = 0x5580
	SDE_CTRL3              uint16 = 0x5583
	SDE_CTRL4              uint16 = 0x5584
	SDE_CTRL6              uint16 = 0x5586
	SDE_CTRL7              uint16 = 0x5587
	SDE_CTRL8              uint16 = 0x5588
	PRE_ISP_TEST_SETTING_1 uint16 = 0x503D
)

const (
	// bits of AEC_PK_MANUAL
	AEC_PK_MANUAL_AGC_MANUALEN uint8 = 0x02
	AEC_PK_MANUAL_AEC_MANUALEN uint8 = 0x01

	// bit of PRE_ISP_TEST_SETTING_1
	TEST_COLOR_BAR uint8 = 0x80
)

const (
	// RegDelay in a register list makes the batch sleep for Val milliseconds.
	RegDelay uint16 = 0xFFFF
	// RegListEnd terminates a register list before the end of the slice.
	RegListEnd uint16 = 0x0000
)

// RegVal is one entry of a register list.
type RegVal struct {
	Reg uint16
	Val uint16
}

// writeReg writes an 8 bit value to the register
func (d *OV5642) writeReg(reg uint16, value uint8) error {

	buf := []byte{byte(reg >> 8), byte(reg), value}

	if _, err := d.bus.WriteBytes(buf); err != nil {
		return busErr("write", reg, err)
	}

	return nil
}

// writeReg16 writes a 16 bit value across two consecutive registers, high
// byte first
func (d *OV5642) writeReg16(reg uint16, value uint16) error {

	if err := d.writeReg(reg, uint8(value>>8)); err != nil {
		return err
	}

	return d.writeReg(reg+1, uint8(value))
}

// writeAddrReg writes an x/y pair of 16 bit values to reg and reg+2
func (d *OV5642) writeAddrReg(reg uint16, x, y uint16) error {

	if err := d.writeReg16(reg, x); err != nil {
		return err
	}

	return d.writeReg16(reg+2, y)
}

// setRegBits replaces the mask wide field at offset with value, leaving the
// other bits of the register untouched
func (d *OV5642) setRegBits(reg uint16, offset, mask, value uint8) error {

	cur, err := d.readReg(reg)

	if err != nil {
		return err
	}

	next := (cur &^ (mask << offset)) | ((value & mask) << offset)

	return d.writeReg(reg, next)
}

// writeRegBits sets or clears all bits of mask
func (d *OV5642) writeRegBits(reg uint16, mask uint8, enable bool) error {

	var value uint8

	if enable {
		value = mask
	}

	return d.setRegBits(reg, 0, mask, value)
}

// writeRegs applies a register list in order, stopping at the first failure
// or at a RegListEnd entry. RegDelay entries sleep instead of writing.
func (d *OV5642) writeRegs(regs []RegVal) error {

	for _, r := range regs {

		switch r.Reg {
		case RegListEnd:
			return nil
		case RegDelay:
			d.delay(time.Duration(r.Val) * time.Millisecond)
			continue
		}

		if err := d.writeReg(r.Reg, uint8(r.Val)); err != nil {
			return err
		}
	}

	return nil
}

// readReg reads an 8-bit value from a 16-bit register.
func (d *OV5642) readReg(reg uint16) (uint8, error) {

	// Write the register address.
	addr := []byte{byte(reg >> 8), byte(reg)}

	if _, err := d.bus.WriteBytes(addr); err != nil {
		return 0, busErr("read", reg, err)
	}

	// Read one byte.
	buf := make([]byte, 1)
	n, err := d.bus.ReadBytes(buf)

	if err != nil {
		return 0, busErr("read", reg, err)
	}

	if n < 1 {
		return 0, busErr("read", reg, fmt.Errorf("insufficient data"))
	}

	return buf[0], nil
}

// readReg16 reads a 16-bit value from two consecutive registers, high byte
// first.
func (d *OV5642) readReg16(reg uint16) (uint16, error) {

	hi, err := d.readReg(reg)

	if err != nil {
		return 0, err
	}

	lo, err := d.readReg(reg + 1)

	if err != nil {
		return 0, err
	}

	return uint16(hi)<<8 | uint16(lo), nil
}

// checkRegMask reports whether every bit of mask is set in reg
func (d *OV5642) checkRegMask(reg uint16, mask uint8) (bool, error) {

	v, err := d.readReg(reg)

	if err != nil {
		return false, err
	}

	return v&mask == mask, nil
}

package ov5642

import (
	"github.com/pkg/errors"
)

// Init resets the sensor to its defaults and rebuilds the status mirror from
// the registers.
func (d *OV5642) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.reset(); err != nil {
		return errors.Wrap(err, "reset")
	}

	if err := d.initStatus(); err != nil {
		return errors.Wrap(err, "init status")
	}

	return nil
}

// Reset issues a software reset, loads the default registers and the auto
// exposure level 0 and starts the auto-focus MCU. Auto-focus bring-up is best
// effort and its failure does not fail the reset.
//
// The status mirror is returned to its defaults and probed again on the next
// call to Status. Settings committed in between are kept by that probe when
// they have no register readback.
func (d *OV5642) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.reset()
}

func (d *OV5642) reset() error {

	// software reset, clears all registers to their power on values
	if err := d.writeReg(SYSTEM_CTROL0, 0x82); err != nil {
		d.log.Error("software reset failed", "error", err)
		return err
	}

	d.delay(resetSettle)

	d.status = defaultStatus()
	d.statusReady = false

	if err := d.writeRegs(d.tables.Defaults); err != nil {
		d.log.Error("load defaults failed", "error", err)
		return err
	}

	d.log.Debug("camera defaults loaded")

	if err := d.setAELevel(0); err != nil {
		d.log.Error("set default ae level failed", "error", err)
		return err
	}

	d.delay(resetSettle)

	if err := d.startAutoFocus(); err != nil {
		d.log.Warning("auto focus not started", "error", err)
	}

	return nil
}

// startAutoFocus loads the auto-focus table, releases the focus MCU and
// issues the initial focus command
func (d *OV5642) startAutoFocus() error {

	if len(d.tables.AutoFocus) > 0 {
		if err := d.writeRegs(d.tables.AutoFocus); err != nil {
			return err
		}
	}

	if err := d.writeReg(AF_MCU_CTRL, 0x03); err != nil {
		return err
	}

	if err := d.writeReg(AF_CMD_ACK, 0x01); err != nil {
		return err
	}

	if err := d.writeReg(AF_CMD_MAIN, 0x10); err != nil {
		return err
	}

	d.log.Debug("auto focus initiated")

	return nil
}

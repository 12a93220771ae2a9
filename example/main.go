package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ausocean/utils/logging"
	"github.com/swdee/go-ov5642"
	"gopkg.in/natefinch/lumberjack.v2"
)

// logging parameters for the optional log file
const (
	logMaxSize   = 10 // MB
	logMaxBackup = 3
	logMaxAge    = 28 // days
)

func main() {

	i2cbus := flag.String("b", "/dev/i2c-0", "Path to I2C bus to use")
	profile := flag.String("p", "", "Path to YAML sensor profile to apply")
	xclk := flag.Uint("xclk", uint(ov5642.DefaultXCLK), "XCLK frequency in Hz")
	logFile := flag.String("log", "", "Also write logs to this file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	var w io.Writer = os.Stderr

	if *logFile != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   *logFile,
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackup,
			MaxAge:     logMaxAge,
		})
	}

	level := logging.Info

	if *debug {
		level = logging.Debug
	}

	log := logging.New(level, w, false)

	// open the bus, reset the sensor and read back its status
	sensor, err := ov5642.Open(*i2cbus, ov5642.Config{XCLKHz: uint32(*xclk)}, log)

	if err != nil {
		log.Fatal("could not open sensor", "bus", *i2cbus, "error", err)
	}

	defer sensor.Close()

	if *profile != "" {
		applyProfile(sensor, *profile, log)
	}

	clk, err := sensor.DecodeClock()

	if err != nil {
		log.Fatal("could not decode clock", "error", err)
	}

	fmt.Printf("XCLK: %d MHz, PLL: %d MHz, VCO: %d MHz, SYSCLK: %d MHz\n",
		clk.XCLK/1000000, clk.PLL/1000000, clk.VCO/1000000, clk.Sys/1000000)

	st, err := sensor.Status()

	if err != nil {
		log.Fatal("could not read status", "error", err)
	}

	res := st.FrameSize.Resolution()

	fmt.Printf("Frame: %s (%dx%d), format: %s\n", st.FrameSize, res.Width,
		res.Height, st.PixelFormat)
	fmt.Printf("Quality: %d, sharpness: %d, denoise: %d, gain ceiling: 0x%03x\n",
		st.Quality, st.Sharpness, st.Denoise, st.GainCeiling)
	fmt.Printf("AGC: %t (gain %d), AEC: %t (value %d), AWB: %t\n",
		st.AGC, st.AGCGain, st.AEC, st.AECValue, st.AWB)
	fmt.Printf("H-Mirror: %t, V-Flip: %t\n", st.HMirror, st.VFlip)
}

// applyProfile loads the profile at path and applies it to the sensor
func applyProfile(sensor ov5642.Sensor, path string, log logging.Logger) {

	p, err := ov5642.LoadProfile(path)

	if err != nil {
		log.Fatal("could not load profile", "path", path, "error", err)
	}

	if err := p.Apply(sensor); err != nil {
		log.Fatal("could not apply profile", "path", path, "error", err)
	}

	log.Info("applied profile", "path", path)
}

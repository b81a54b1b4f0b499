package backlight

import (
	"log"

	"github.com/claytonpeters/bl-control/system/device"

	"github.com/pkg/errors"
)

// State defines the two logical backlight states
type State int

// Backlight states
const (
	Lit State = iota
	Dimmed
)

// https://yourbasic.org/golang/iota/
func (s State) String() string {
	return [...]string{"Lit", "Dimmed"}[s]
}

// reportDevice is the slice of device.Control the driver needs
type reportDevice interface {
	WriteFeature(reportID byte, data []byte) error
	ReadFeature(reportID byte) ([]byte, error)
	Close() error
}

type Config struct {
	VendorID  uint16
	ProductID uint16
	DryRun    bool
}

// Control drives the backlight controller over its feature-report
// channel. It remembers the panel level the user had so that Lit
// restores it rather than forcing full brightness.
type Control struct {
	deviceCtrl reportDevice
	litLevel   byte
}

// NewControl claims the controller and captures the current panel
// level as the level to restore on Lit.
func NewControl(conf Config) (*Control, error) {
	ctrl, err := device.NewControl(device.Config{
		VendorID:  conf.VendorID,
		ProductID: conf.ProductID,
		DryRun:    conf.DryRun,
	})
	if err != nil {
		return nil, err
	}

	c := &Control{
		deviceCtrl: ctrl,
		litLevel:   DefaultBrightness,
	}

	level, err := c.currentLevel()
	switch {
	case err != nil:
		log.Printf("backlight: cannot read panel level, assuming %d: %+v\n", DefaultBrightness, err)
	case level == 0 || level > MaxBrightness:
		// a panel that is already off still has to come back on
		log.Printf("backlight: panel level %d out of range, assuming %d\n", level, DefaultBrightness)
	default:
		c.litLevel = level
	}

	return c, nil
}

// SetState commands the panel to the requested state. Repeating the
// same state is safe; it only costs redundant bus traffic.
func (c *Control) SetState(s State) error {
	if s == Dimmed {
		// the user may have changed the level from the keyboard since
		// we last looked, so capture it before turning the panel off
		if level, err := c.currentLevel(); err == nil && level > 0 && level <= MaxBrightness {
			c.litLevel = level
		}
		return c.setLevel(0)
	}
	return c.setLevel(c.litLevel)
}

func (c *Control) setLevel(level byte) error {
	inputBuf := make([]byte, controlBufferLength)
	copy(inputBuf, setBrightnessBuffer)
	inputBuf[brightnessByteIndex] = level

	if err := c.deviceCtrl.WriteFeature(featureReportID, inputBuf); err != nil {
		return errors.Wrapf(err, "backlight: cannot set level %d", level)
	}
	return nil
}

func (c *Control) currentLevel() (byte, error) {
	inputBuf := make([]byte, controlBufferLength)
	copy(inputBuf, getBrightnessBuffer)

	if err := c.deviceCtrl.WriteFeature(featureReportID, inputBuf); err != nil {
		return 0, errors.Wrap(err, "backlight: cannot request level")
	}
	outBuf, err := c.deviceCtrl.ReadFeature(featureReportID)
	if err != nil {
		return 0, errors.Wrap(err, "backlight: cannot read level")
	}
	if len(outBuf) <= brightnessByteIndex {
		return 0, errors.Errorf("backlight: short report: %d bytes", len(outBuf))
	}
	return outBuf[brightnessByteIndex], nil
}

func (c *Control) Close() error {
	return c.deviceCtrl.Close()
}

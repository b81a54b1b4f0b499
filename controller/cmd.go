package controller

import (
	"log"
	"time"

	"github.com/claytonpeters/bl-control/system/backlight"
	"github.com/claytonpeters/bl-control/system/input"

	"github.com/pkg/errors"
)

// RunConfig contains the startup configuration for the controller
type RunConfig struct {
	VendorID  uint16
	ProductID uint16
	Timeout   time.Duration
	DimOnLock bool
	DryRun    bool
}

// Validate rejects configurations that cannot possibly work before any
// hardware is touched.
func (r RunConfig) Validate() error {
	if r.ProductID == 0 {
		return errors.New("a product ID is required")
	}
	if r.Timeout < time.Second {
		return errors.New("timeout must be at least one second")
	}
	return nil
}

// Dependencies contains the hardware handles the controller drives
type Dependencies struct {
	Backlight *backlight.Control
	InputPath string
}

// GetDependencies resolves the keyboard event device and claims the
// backlight controller. Every failure here is fatal: without either
// device the daemon has no purpose.
func GetDependencies(conf RunConfig) (*Dependencies, error) {
	path, err := input.ResolveKeyboard()
	if err != nil {
		return nil, errors.Wrap(err, "[controller] cannot resolve keyboard device")
	}
	log.Printf("[controller] found keyboard device at %s\n", path)

	bl, err := backlight.NewControl(backlight.Config{
		VendorID:  conf.VendorID,
		ProductID: conf.ProductID,
		DryRun:    conf.DryRun,
	})
	if err != nil {
		return nil, errors.Wrap(err, "[controller] cannot claim backlight controller")
	}

	return &Dependencies{
		Backlight: bl,
		InputPath: path,
	}, nil
}

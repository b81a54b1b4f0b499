package device

import (
	"log"

	"github.com/pkg/errors"
	usbhid "rafaelmartins.com/p/usbhid"
)

var (
	// ErrDeviceNotFound indicates that no attached USB device matches
	// the requested vendor/product ID pair.
	ErrDeviceNotFound = errors.New("device: no matching usb device")
)

type Config struct {
	VendorID  uint16
	ProductID uint16
	DryRun    bool
}

// Control owns an exclusive handle to one HID device and exposes the
// feature-report channel the backlight controller is driven over.
type Control struct {
	Config
	dev *usbhid.Device
}

// NewControl enumerates attached HID devices and claims the first one
// matching the configured vendor/product ID. If more than one matches,
// the first in enumeration order wins.
func NewControl(conf Config) (*Control, error) {
	if conf.DryRun {
		log.Printf("[dry run] device: skipping open of %04x:%04x\n", conf.VendorID, conf.ProductID)
		return &Control{Config: conf}, nil
	}

	devices, err := usbhid.Enumerate(func(d *usbhid.Device) bool {
		return d.VendorId() == conf.VendorID && d.ProductId() == conf.ProductID
	})
	if err != nil {
		return nil, errors.Wrap(err, "device: cannot enumerate hid devices")
	}
	if len(devices) == 0 {
		return nil, ErrDeviceNotFound
	}

	path := devices[0].Path()
	dev, err := usbhid.Get(func(d *usbhid.Device) bool {
		return d.Path() == path
	}, true, false)
	if err != nil {
		return nil, errors.Wrapf(err, "device: cannot claim %s", path)
	}

	log.Printf("device: claimed %04x:%04x at %s\n", conf.VendorID, conf.ProductID, path)

	return &Control{
		Config: conf,
		dev:    dev,
	}, nil
}

// WriteFeature sends a feature report to the device.
func (c *Control) WriteFeature(reportID byte, data []byte) error {
	if c.Config.DryRun {
		log.Printf("[dry run] device: write feature report %d: %+v\n", reportID, data)
		return nil
	}
	return c.dev.SetFeatureReport(reportID, data)
}

// ReadFeature requests a feature report from the device.
func (c *Control) ReadFeature(reportID byte) ([]byte, error) {
	if c.Config.DryRun {
		log.Printf("[dry run] device: read feature report %d\n", reportID)
		return make([]byte, 8), nil
	}
	return c.dev.GetFeatureReport(reportID)
}

func (c *Control) Close() error {
	if c.dev == nil {
		return nil
	}
	return c.dev.Close()
}

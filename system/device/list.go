package device

import (
	"fmt"
	"io"

	"github.com/karalabe/usb"
)

// PrintHidDevices writes every HID device visible to the process to w,
// to help the user find the vendor/product ID of their backlight
// controller.
func PrintHidDevices(w io.Writer) error {
	devices, err := usb.EnumerateHid(0, 0)
	if err != nil {
		return err
	}
	for _, d := range devices {
		fmt.Fprintf(w, "%04x:%04x %s %s (%s)\n", d.VendorID, d.ProductID, d.Manufacturer, d.Product, d.Path)
	}
	return nil
}

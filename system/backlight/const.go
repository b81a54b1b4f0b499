package backlight

// DefaultVendorID is the vendor ID the ITE8291 family ships with.
const DefaultVendorID = 0x048d

const (
	controlBufferLength = 8
	featureReportID     = 0x00
)

const (
	brightnessByteIndex = 4
)

// protocol constants captured from the controller's traffic; treat as
// opaque
var (
	// 0x08 is "set effect", 0x02 is "effect attribute brightness"
	setBrightnessBuffer = []byte{
		0x08, 0x02, 0x33, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	// 0x88 is "get effect", 0x02 is "effect attribute brightness"
	getBrightnessBuffer = []byte{
		0x88, 0x02, 0x33, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
)

const (
	// MaxBrightness is the highest level the controller accepts.
	MaxBrightness = 50
	// DefaultBrightness is used when the panel level cannot be read,
	// or reads back as fully off.
	DefaultBrightness = 50
)

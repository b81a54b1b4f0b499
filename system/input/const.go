package input

// Linux input event types and codes (from <linux/input-event-codes.h>)
const (
	evKey = 0x01

	keyL         = 38
	keyLeftMeta  = 125
	keyRightMeta = 126
)

// Input event value constants
const (
	valueRelease = 0
	valuePress   = 1
	valueRepeat  = 2
)

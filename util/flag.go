package util

import (
	"strconv"
	"strings"
)

// HexFlag is a pflag.Value accepting a 16-bit ID either as plain
// decimal or as hex with an 0x prefix, matching how vendor/product IDs
// are usually quoted in lsusb output.
type HexFlag uint16

func (h *HexFlag) String() string {
	return "0x" + strconv.FormatUint(uint64(*h), 16)
}

func (h *HexFlag) Set(value string) error {
	base := 10
	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		value = value[2:]
		base = 16
	}
	v, err := strconv.ParseUint(value, base, 16)
	if err != nil {
		return err
	}
	*h = HexFlag(v)
	return nil
}

func (h *HexFlag) Type() string {
	return "id"
}

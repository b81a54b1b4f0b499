package input

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const (
	sysInputDir = "/sys/class/input"
	devInputDir = "/dev/input"
	nameMatch   = "keyboard"
)

// ErrNoKeyboardFound indicates that no input device advertises a
// keyboard-looking name.
var ErrNoKeyboardFound = errors.New("input: no keyboard device found")

// ResolveKeyboard scans the input class directory and returns the
// event device path of the first entry whose advertised name contains
// "keyboard" (case-insensitive). With more than one keyboard attached
// the winner is whichever the kernel enumerates first; an external
// keyboard with a matching name is indistinguishable from the internal
// one.
// TODO: allow overriding the name match from the command line
func ResolveKeyboard() (string, error) {
	return resolveKeyboard(sysInputDir, devInputDir)
}

func resolveKeyboard(sysDir, devDir string) (string, error) {
	entries, err := os.ReadDir(sysDir)
	if err != nil {
		return "", errors.Wrapf(err, "input: cannot read %s", sysDir)
	}

	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "event") {
			continue
		}
		name, err := os.ReadFile(filepath.Join(sysDir, entry.Name(), "device", "name"))
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(string(name)), nameMatch) {
			return filepath.Join(devDir, entry.Name()), nil
		}
	}

	return "", ErrNoKeyboardFound
}

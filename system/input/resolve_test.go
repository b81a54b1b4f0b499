package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func fakeSysfs(t *testing.T, names map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for entry, name := range names {
		devDir := filepath.Join(dir, entry, "device")
		require.NoError(t, os.MkdirAll(devDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(devDir, "name"), []byte(name+"\n"), 0o644))
	}
	return dir
}

func TestResolveKeyboard(t *testing.T) {
	sys := fakeSysfs(t, map[string]string{
		"event0": "Power Button",
		"event3": "AT Translated Set 2 keyboard",
		"mouse0": "keyboard lookalike", // not an event node
	})

	path, err := resolveKeyboard(sys, "/dev/input")
	require.NoError(t, err)
	require.Equal(t, "/dev/input/event3", path)
}

func TestResolveKeyboardCaseInsensitive(t *testing.T) {
	sys := fakeSysfs(t, map[string]string{
		"event1": "USB Keyboard",
	})

	path, err := resolveKeyboard(sys, "/dev/input")
	require.NoError(t, err)
	require.Equal(t, "/dev/input/event1", path)
}

func TestResolveKeyboardNotFound(t *testing.T) {
	sys := fakeSysfs(t, map[string]string{
		"event0": "Power Button",
		"event1": "Video Bus",
	})

	_, err := resolveKeyboard(sys, "/dev/input")
	require.ErrorIs(t, err, ErrNoKeyboardFound)
}

func TestResolveKeyboardMissingNameEntries(t *testing.T) {
	sys := fakeSysfs(t, map[string]string{
		"event2": "Some keyboard",
	})
	// an event node without device/name must be skipped, not fatal
	require.NoError(t, os.MkdirAll(filepath.Join(sys, "event0"), 0o755))

	path, err := resolveKeyboard(sys, "/dev/input")
	require.NoError(t, err)
	require.Equal(t, "/dev/input/event2", path)
}

func TestResolveKeyboardBadDir(t *testing.T) {
	_, err := resolveKeyboard(filepath.Join(t.TempDir(), "missing"), "/dev/input")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoKeyboardFound)
}

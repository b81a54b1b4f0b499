package backlight

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeDevice struct {
	writes   [][]byte
	report   []byte
	writeErr error
	readErr  error
}

func (f *fakeDevice) WriteFeature(reportID byte, data []byte) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	f.writes = append(f.writes, buf)
	return nil
}

func (f *fakeDevice) ReadFeature(reportID byte) ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.report, nil
}

func (f *fakeDevice) Close() error {
	return nil
}

func reportWithLevel(level byte) []byte {
	buf := make([]byte, controlBufferLength)
	copy(buf, getBrightnessBuffer)
	buf[brightnessByteIndex] = level
	return buf
}

func TestSetStateLitWire(t *testing.T) {
	dev := &fakeDevice{}
	c := &Control{deviceCtrl: dev, litLevel: 35}

	require.NoError(t, c.SetState(Lit))
	require.Len(t, dev.writes, 1)
	require.Equal(t, []byte{0x08, 0x02, 0x33, 0x00, 35, 0x00, 0x00, 0x00}, dev.writes[0])
}

func TestSetStateDimmedWire(t *testing.T) {
	dev := &fakeDevice{report: reportWithLevel(42)}
	c := &Control{deviceCtrl: dev, litLevel: 35}

	require.NoError(t, c.SetState(Dimmed))

	// a level query precedes the off command
	require.Len(t, dev.writes, 2)
	require.Equal(t, []byte{0x88, 0x02, 0x33, 0x00, 0x00, 0x00, 0x00, 0x00}, dev.writes[0])
	require.Equal(t, []byte{0x08, 0x02, 0x33, 0x00, 0x00, 0x00, 0x00, 0x00}, dev.writes[1])

	// the user-adjusted level is what Lit restores
	require.Equal(t, byte(42), c.litLevel)
	require.NoError(t, c.SetState(Lit))
	require.Equal(t, byte(42), dev.writes[2][brightnessByteIndex])
}

func TestSetStateDimmedKeepsLevelOnReadFailure(t *testing.T) {
	dev := &fakeDevice{readErr: errors.New("pipe stall")}
	c := &Control{deviceCtrl: dev, litLevel: 35}

	require.NoError(t, c.SetState(Dimmed))
	require.Equal(t, byte(35), c.litLevel)
}

func TestSetStateDimmedIgnoresOffPanel(t *testing.T) {
	// a panel already at zero must not become the restore level
	dev := &fakeDevice{report: reportWithLevel(0)}
	c := &Control{deviceCtrl: dev, litLevel: 35}

	require.NoError(t, c.SetState(Dimmed))
	require.Equal(t, byte(35), c.litLevel)
}

func TestSetStateWriteError(t *testing.T) {
	dev := &fakeDevice{writeErr: errors.New("device gone")}
	c := &Control{deviceCtrl: dev, litLevel: 35}

	require.Error(t, c.SetState(Lit))
}

func TestCurrentLevelShortReport(t *testing.T) {
	dev := &fakeDevice{report: []byte{0x88, 0x02}}
	c := &Control{deviceCtrl: dev}

	_, err := c.currentLevel()
	require.Error(t, err)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "Lit", Lit.String())
	require.Equal(t, "Dimmed", Dimmed.String())
}

package input

import (
	"context"
	"io"
	"log"
	"os"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Kind classifies a key-press occurrence
type Kind int

// Occurrences the coordinator consumes
const (
	AnyKey Kind = iota
	LockCombo
)

func (k Kind) String() string {
	return [...]string{"AnyKey", "LockCombo"}[k]
}

// Event is one key-press occurrence read from the keyboard.
type Event struct {
	Kind Kind
	Code uint16
}

// rawEvent mirrors struct input_event; unix.Timeval keeps the size
// correct across 32/64-bit kernels.
type rawEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

const rawEventSize = int(unsafe.Sizeof(rawEvent{}))

// NewListener opens the event device and starts a goroutine feeding
// key-press occurrences to eventCh. The reader blocks on the kernel
// for the next record; it never polls. A read error is unrecoverable
// and is delivered to errCh.
func NewListener(haltCtx context.Context, path string, eventCh chan<- Event, errCh chan<- error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "input: cannot open %s", path)
	}

	log.Printf("input: reading key events from %s\n", path)
	go readEvents(haltCtx, f, eventCh, errCh)

	return nil
}

func readEvents(haltCtx context.Context, f *os.File, eventCh chan<- Event, errCh chan<- error) {
	defer f.Close()

	var tracker comboTracker
	buf := make([]byte, rawEventSize)

	for {
		select {
		case <-haltCtx.Done():
			return
		default:
		}
		if _, err := io.ReadFull(f, buf); err != nil {
			select {
			case errCh <- errors.Wrapf(err, "input: read failed on %s", f.Name()):
			case <-haltCtx.Done():
			}
			return
		}
		raw := *(*rawEvent)(unsafe.Pointer(&buf[0]))
		if ev, ok := tracker.translate(raw); ok {
			select {
			case eventCh <- ev:
			case <-haltCtx.Done():
				return
			}
		}
	}
}

// comboTracker turns raw evdev records into occurrences, holding the
// Meta modifier state so the lock combo is detected regardless of
// which key went down first.
type comboTracker struct {
	metaDown bool
}

func (t *comboTracker) translate(raw rawEvent) (Event, bool) {
	if raw.Type != evKey {
		return Event{}, false
	}

	switch raw.Code {
	case keyLeftMeta, keyRightMeta:
		switch raw.Value {
		case valuePress:
			t.metaDown = true
		case valueRelease:
			t.metaDown = false
		}
	}

	// only key-down transitions count; repeats and releases are not
	// activity
	if raw.Value != valuePress {
		return Event{}, false
	}

	if raw.Code == keyL && t.metaDown {
		return Event{Kind: LockCombo, Code: raw.Code}, true
	}
	return Event{Kind: AnyKey, Code: raw.Code}, true
}

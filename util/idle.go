package util

import (
	"time"
)

// IdleTimer is a restartable countdown with a single outstanding
// deadline. Arming a new deadline replaces any previously armed one,
// and a replaced deadline never delivers its expiry.
//
// Arm, Disarm and the receive from Expired must all happen on the same
// goroutine, otherwise the drain on re-arm is racy.
type IdleTimer struct {
	timer *time.Timer
	armed bool
}

// NewIdleTimer returns a disarmed IdleTimer.
func NewIdleTimer() *IdleTimer {
	t := time.NewTimer(time.Hour)
	if !t.Stop() {
		<-t.C
	}
	return &IdleTimer{
		timer: t,
	}
}

// Arm schedules an expiry after d, cancelling any outstanding deadline.
func (i *IdleTimer) Arm(d time.Duration) {
	i.drain()
	i.timer.Reset(d)
	i.armed = true
}

// Disarm cancels any outstanding deadline without scheduling a new one.
func (i *IdleTimer) Disarm() {
	i.drain()
	i.armed = false
}

// Expired delivers at most one signal per Arm.
func (i *IdleTimer) Expired() <-chan time.Time {
	return i.timer.C
}

func (i *IdleTimer) drain() {
	if !i.timer.Stop() && i.armed {
		// the deadline fired but nobody received it yet
		select {
		case <-i.timer.C:
		default:
		}
	}
}

package controller

import (
	"context"
	"log"

	"github.com/claytonpeters/bl-control/system/backlight"
	"github.com/claytonpeters/bl-control/system/input"

	"github.com/thejerf/suture/v4"
)

func (c *Controller) loop(haltCtx context.Context) error {
	// establish a known state: the panel may have been left dimmed by
	// a previous run, so this one bypasses the redundancy guard
	if err := c.Config.Backlight.SetState(backlight.Lit); err != nil {
		log.Printf("[controller] cannot light backlight at startup: %+v\n", err)
	}
	c.state = backlight.Lit
	c.idle.Arm(c.Config.Timeout)

	for {
		select {
		case ev := <-c.keyEventCh:
			switch ev.Kind {
			case input.AnyKey:
				c.handleActivity()
			case input.LockCombo:
				c.handleLockCombo()
			}

		case <-c.idle.Expired():
			c.handleIdleExpired()

		case err := <-c.errorCh:
			log.Printf("[controller] input source failed: %+v\n", err)
			return suture.ErrTerminateSupervisorTree

		case <-haltCtx.Done():
			log.Println("[controller] exiting controller loop")
			return nil
		}
	}
}

func (c *Controller) handleActivity() {
	c.setState(backlight.Lit)
	c.idle.Arm(c.Config.Timeout)
}

// handleLockCombo dims immediately when the lock trigger is enabled.
// The combo is never treated as activity: with the trigger disabled it
// has no effect at all, and while Dimmed it stays a no-op.
func (c *Controller) handleLockCombo() {
	if !c.Config.DimOnLock {
		return
	}
	if c.state == backlight.Dimmed {
		return
	}
	log.Println("[controller] lock combo pressed, dimming")
	c.setState(backlight.Dimmed)
	c.idle.Disarm()
}

func (c *Controller) handleIdleExpired() {
	if c.state == backlight.Dimmed {
		// the timer is disarmed while Dimmed
		return
	}
	log.Printf("[controller] no activity for %s, dimming\n", c.Config.Timeout)
	c.setState(backlight.Dimmed)
}

// setState issues the backlight command for s unless the panel is
// already there. A failed command is logged and the previous state
// kept, so the next transition retries; mis-dimming is not worth
// killing the daemon over.
func (c *Controller) setState(s backlight.State) {
	if s == c.state {
		return
	}
	if err := c.Config.Backlight.SetState(s); err != nil {
		log.Printf("[controller] cannot set backlight to %s: %+v\n", s, err)
		return
	}
	c.state = s
}

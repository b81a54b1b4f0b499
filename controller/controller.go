package controller

import (
	"context"
	"log"
	"time"

	"github.com/claytonpeters/bl-control/system/backlight"
	"github.com/claytonpeters/bl-control/system/input"
	"github.com/claytonpeters/bl-control/util"

	"github.com/pkg/errors"
	"github.com/thejerf/suture/v4"
)

// Backlight is the slice of backlight.Control the controller drives
type Backlight interface {
	SetState(s backlight.State) error
}

// Config contains the wiring for the controller loop
type Config struct {
	Backlight Backlight
	InputPath string

	Timeout   time.Duration
	DimOnLock bool
}

// Controller owns the Lit/Dimmed state machine. The state is mutated
// from a single select loop, so no locking is needed.
type Controller struct {
	Config

	state backlight.State
	idle  *util.IdleTimer

	keyEventCh chan input.Event
	errorCh    chan error
}

// New validates the wiring and returns a Controller ready to Serve.
func New(conf RunConfig, dep *Dependencies) (*Controller, error) {
	if dep == nil || dep.Backlight == nil {
		return nil, errors.New("[controller] nil Backlight is invalid")
	}
	if dep.InputPath == "" {
		return nil, errors.New("[controller] empty input path is invalid")
	}
	if conf.Timeout <= 0 {
		return nil, errors.New("[controller] non-positive timeout is invalid")
	}
	return &Controller{
		Config: Config{
			Backlight: dep.Backlight,
			InputPath: dep.InputPath,
			Timeout:   conf.Timeout,
			DimOnLock: conf.DimOnLock,
		},
		idle:       util.NewIdleTimer(),
		keyEventCh: make(chan input.Event, 1),
		errorCh:    make(chan error),
	}, nil
}

func (c *Controller) String() string {
	return "Controller"
}

// Serve starts the key listener and runs the controller loop until
// context cancel or an unrecoverable error. It satisfies
// suture.Service.
func (c *Controller) Serve(haltCtx context.Context) error {
	log.Println("[controller] starting controller loop")

	if err := input.NewListener(haltCtx, c.Config.InputPath, c.keyEventCh, c.errorCh); err != nil {
		// losing the input device means the daemon has no purpose;
		// take the whole tree down instead of restarting forever
		log.Printf("[controller] cannot start input listener: %+v\n", err)
		return suture.ErrTerminateSupervisorTree
	}

	return c.loop(haltCtx)
}

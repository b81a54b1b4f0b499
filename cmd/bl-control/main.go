package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claytonpeters/bl-control/background"
	"github.com/claytonpeters/bl-control/controller"
	"github.com/claytonpeters/bl-control/system/backlight"
	"github.com/claytonpeters/bl-control/system/device"
	"github.com/claytonpeters/bl-control/util"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	suture "github.com/thejerf/suture/v4"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Compile time injected variables
var (
	Version = "v0.0.0-dev"
)

const sourceRepo = "claytonpeters/bl-control"

func main() {

	vendorID := util.HexFlag(backlight.DefaultVendorID)
	var productID util.HexFlag

	pflag.VarP(&vendorID, "vendor-id", "v", "USB vendor ID of the backlight controller")
	pflag.VarP(&productID, "product-id", "p", "USB product ID of the backlight controller (required)")
	timeout := pflag.IntP("timeout", "t", 0, "seconds of keyboard inactivity before the backlight dims (required)")
	lock := pflag.BoolP("lock", "l", false, "dim immediately when Meta+L is pressed")
	listDevices := pflag.Bool("list-devices", false, "list visible HID devices and exit")
	logFile := pflag.String("log-file", "", "write logs to this file with rotation instead of stderr")
	pflag.Parse()

	if *logFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   *logFile,
			MaxSize:    5,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		})
	}

	log.Printf("bl-control version: %s\n", Version)

	if *listDevices {
		if err := device.PrintHidDevices(os.Stdout); err != nil {
			log.Fatalf("cannot list hid devices: %+v\n", err)
		}
		return
	}

	conf := controller.RunConfig{
		VendorID:  uint16(vendorID),
		ProductID: uint16(productID),
		Timeout:   time.Duration(*timeout) * time.Second,
		DimOnLock: *lock,
		DryRun:    os.Getenv("DRY_RUN") != "",
	}
	if err := conf.Validate(); err != nil {
		pflag.Usage()
		log.Fatalf("invalid configuration: %s\n", err)
	}
	if conf.DryRun {
		log.Println("[dry run] no hardware i/o will be performed")
	}

	dep, err := controller.GetDependencies(conf)
	if err != nil {
		log.Fatalf("cannot acquire devices: %+v\n", err)
	}

	control, err := controller.New(conf, dep)
	if err != nil {
		log.Fatalf("cannot create controller: %+v\n", err)
	}

	checker, err := background.NewVersionCheck(Version, sourceRepo)
	if err != nil {
		log.Fatalf("cannot create version checker: %+v\n", err)
	}

	rootSupervisor := suture.New("Supervisor", suture.Spec{
		EventHook: logSupervisorEvent,
	})
	rootSupervisor.Add(control)
	rootSupervisor.Add(checker)

	ctx, cancel := context.WithCancel(context.Background())

	supervisorErrCh := make(chan error, 1)
	go func() {
		supervisorErrCh <- rootSupervisor.Serve(ctx)
	}()

	daemon.SdNotify(false, daemon.SdNotifyReady)

	sigc := make(chan os.Signal, 1)
	signal.Notify(
		sigc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)

	exitCode := 0
	select {
	case sig := <-sigc:
		log.Printf("signal received: %+v\n", sig)
		cancel()
		<-supervisorErrCh
	case err := <-supervisorErrCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("supervisor returned error: %+v\n", err)
			exitCode = 1
		}
		cancel()
	}

	daemon.SdNotify(false, daemon.SdNotifyStopping)
	dep.Backlight.Close()
	time.Sleep(time.Second) // grace period
	os.Exit(exitCode)
}

func logSupervisorEvent(evt suture.Event) {
	switch evt.Type() {
	case suture.EventTypeServiceTerminate, suture.EventTypeServicePanic:
		log.Printf("[supervisor] service failed: %+v\n", evt)
	default:
		log.Printf("[supervisor] event: %+v\n", evt)
	}
}

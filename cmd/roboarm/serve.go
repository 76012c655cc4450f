package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.bug.st/serial"

	"github.com/gwillem/roboarm/pkg/arm"
	"github.com/gwillem/roboarm/pkg/command"
	"github.com/gwillem/roboarm/pkg/driver"
	"github.com/gwillem/roboarm/pkg/motion"
	"github.com/gwillem/roboarm/pkg/server"
)

const serialBaudRate = 115200

type ServeCommand struct {
	Config string `long:"config" short:"c" default:"roboarm.json" description:"Config file path"`
	Listen string `long:"listen" description:"Override HTTP listen address"`
	Driver string `long:"driver" choice:"sim" choice:"feetech" description:"Override driver backend"`
}

func (c *ServeCommand) Execute(args []string) error {
	cfg, err := arm.LoadConfigFrom(c.Config)
	if os.IsNotExist(err) {
		log.Printf("No config at %s, using defaults (sim driver)", c.Config)
		cfg = arm.DefaultConfig()
	} else if err != nil {
		return err
	}
	if c.Listen != "" {
		cfg.Listen = c.Listen
	}
	if c.Driver != "" {
		cfg.Driver = c.Driver
	}

	drv, err := newDriver(cfg)
	if err != nil {
		return err
	}
	defer drv.Close()

	coord := motion.NewCoordinator(cfg.Joints, drv)
	exec := command.NewExecutor(coord)
	srv := server.New(exec, coord)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional serial command channel next to the HTTP API.
	if cfg.SerialPort != "" {
		port, err := serial.Open(cfg.SerialPort, &serial.Mode{BaudRate: serialBaudRate})
		if err != nil {
			return fmt.Errorf("open serial port %s: %w", cfg.SerialPort, err)
		}
		defer port.Close()

		go func() {
			log.Printf("Serial commands on %s", cfg.SerialPort)
			if err := server.NewLineServer(port, exec).Serve(ctx); err != nil && ctx.Err() == nil {
				log.Printf("Serial channel: %v", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP API on %s (%s driver, %d joints)", cfg.Listen, cfg.Driver, len(cfg.Joints))
		errCh <- srv.Listen(cfg.Listen)
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down")
		coord.EmergencyStop()
		return srv.Shutdown()
	case err := <-errCh:
		return err
	}
}

func newDriver(cfg *arm.Config) (driver.Driver, error) {
	switch cfg.Driver {
	case "", "sim":
		return driver.NewSim(cfg.Joints), nil
	case "feetech":
		if cfg.ServoPort == "" {
			return nil, fmt.Errorf("feetech driver needs servo_port in config")
		}
		return driver.NewFeetech(cfg.ServoPort, cfg.Joints)
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}

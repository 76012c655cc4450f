package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"go.bug.st/serial"

	"github.com/gwillem/roboarm/pkg/arm"
)

type SetupCommand struct {
	Config string `long:"config" short:"c" default:"roboarm.json" description:"Config file path"`
}

func (c *SetupCommand) Execute(args []string) error {
	fmt.Println(titleStyle.Render("Roboarm Setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━"))
	fmt.Println()

	cfg := arm.DefaultConfig()

	var backend string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which driver backend?").
				Options(
					huh.NewOption("Simulated (no hardware)", "sim"),
					huh.NewOption("Feetech servo bus", "feetech"),
				).
				Value(&backend),
		),
	)
	if err := form.Run(); err != nil {
		fmt.Println()
		os.Exit(0)
	}
	cfg.Driver = backend

	if backend == "feetech" {
		port, err := pickSerialPort()
		if err != nil {
			return err
		}
		cfg.ServoPort = port
	}

	if err := cfg.SaveTo(c.Config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Println()
	fmt.Println(enabledStyle.Render("Setup complete!"))
	fmt.Printf("Configuration saved to %s\n", c.Config)
	fmt.Println()
	fmt.Println("Start the controller with: " + titleStyle.Render("roboarm serve"))
	return nil
}

func pickSerialPort() (string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return "", fmt.Errorf("list serial ports: %w", err)
	}
	if len(ports) == 0 {
		return "", fmt.Errorf("no serial ports found, is the bus connected?")
	}

	var port string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which port is the servo bus on?").
				Options(huh.NewOptions(ports...)...).
				Value(&port),
		),
	)
	if err := form.Run(); err != nil {
		fmt.Println()
		os.Exit(0)
	}
	return port, nil
}

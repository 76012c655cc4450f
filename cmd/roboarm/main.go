package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Serve  ServeCommand  `command:"serve" description:"Run the arm controller (HTTP API + optional serial channel)"`
	Send   SendCommand   `command:"send" description:"Send one command line to a running controller"`
	Status StatusCommand `command:"status" description:"Show controller status"`
	Watch  WatchCommand  `command:"watch" description:"Live joint position chart"`
	Setup  SetupCommand  `command:"setup" description:"Create a config file interactively"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "Roboarm - command interpreter and motion coordinator for a 6-axis arm"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}

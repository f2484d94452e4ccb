package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/noriah/levelscope"
	"github.com/noriah/levelscope/config"
	"github.com/noriah/levelscope/input"
	"github.com/noriah/levelscope/logger"

	_ "github.com/noriah/levelscope/input/all"
)

// AppName is the app name
const AppName = "levelscope"

// AppDesc is the app description
const AppDesc = "Scrolling audio level scope with hours of zoomable history"

// AppSite is the app website
const AppSite = "https://github.com/noriah/levelscope"

var version = "unknown"

func main() {
	cfg := config.NewZeroConfig()

	cmd, err := doFlags(os.Args[1:], &cfg)
	chk(err, "failed to parse arguments")

	logger.SetLevel(cfg.LogLevel)

	switch cmd {
	case cmdListBackends:
		listBackends()
		return

	case cmdListDevices:
		chk(listDevices(cfg.Backend), "failed to list devices")
		return
	}

	if cfg.Backend == "" {
		cfg.Backend = input.DefaultBackend()
	}

	chk(cfg.Sanitize(), "invalid config")

	// The terminal belongs to the display from here on.
	if cfg.LogFile != "" {
		chk(logger.SetOutputFile(cfg.LogFile), "failed to open log file")
	} else {
		logger.Discard()
	}
	defer logger.Close()

	// Root Context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err = levelscope.Run(ctx, cfg)

	if cfg.LogFile == "" {
		logger.SetOutput(os.Stderr)
	}

	chk(err, "failed to run levelscope")
}

func listBackends() {
	def := input.DefaultBackend()

	fmt.Println("all backends. '*' marks default")

	for _, name := range input.GetAllBackendNames() {
		star := ' '
		if name == def {
			star = '*'
		}

		fmt.Printf("- %s %c\n", name, star)
	}
}

func listDevices(name string) error {
	if name == "" {
		name = input.DefaultBackend()
	}

	backend, err := input.InitBackend(name)
	if err != nil {
		return err
	}
	defer backend.Close()

	devices, err := backend.Devices()
	if err != nil {
		return err
	}

	// We don't really need the default device to be indicated.
	defaultDevice, _ := backend.DefaultDevice()

	fmt.Printf("all devices for %q backend. '*' marks default\n", name)

	for idx := range devices {
		star := ' '
		if defaultDevice != nil && devices[idx].String() == defaultDevice.String() {
			star = '*'
		}

		fmt.Printf("- %v %c\n", devices[idx], star)
	}

	return nil
}

func chk(err error, wrap string) {
	if err != nil {
		logger.Error(wrap, err)
		logger.Close()
		os.Exit(1)
	}
}

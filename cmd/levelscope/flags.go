package main

import (
	"github.com/integrii/flaggy"
	"github.com/noriah/levelscope/config"
	"github.com/noriah/levelscope/dsp"
)

type command int

const (
	cmdRun command = iota
	cmdListBackends
	cmdListDevices
)

// flagSet binds every flag to cfg. Values set on the command line win over
// the config file, so parsing happens twice: once to find the file, and once
// more over the loaded file.
type flagSet struct {
	parser       *flaggy.Parser
	listBackends *flaggy.Subcommand
	listDevices  *flaggy.Subcommand

	configPath string
	peak       bool
}

func newFlagSet(cfg *config.Config) *flagSet {
	fs := &flagSet{}

	parser := flaggy.NewParser(AppName)
	parser.Description = AppDesc
	parser.AdditionalHelpPrepend = AppSite
	parser.Version = version

	fs.listBackends = flaggy.NewSubcommand("list-backends")
	fs.listBackends.ShortName = "lb"
	fs.listBackends.Description = "list all supported backends"
	parser.AttachSubcommand(fs.listBackends, 1)

	fs.listDevices = flaggy.NewSubcommand("list-devices")
	fs.listDevices.ShortName = "ld"
	fs.listDevices.Description = "list all devices for a backend"
	parser.AttachSubcommand(fs.listDevices, 1)

	parser.String(&fs.configPath, "c", "config", "yaml config file")
	parser.String(&cfg.Backend, "b", "backend", "backend name")
	parser.String(&cfg.Device, "d", "device", "device name")
	parser.Float64(&cfg.SampleRate, "r", "rate", "sample rate")
	parser.Int(&cfg.SampleSize, "n", "samples", "frames per level")
	parser.Int(&cfg.ChannelCount, "ch", "channels", "channel count (1 or 2)")
	parser.Int(&cfg.FrameRate, "f", "fps", "refreshes per second")
	parser.Int(&cfg.QueueSize, "qs", "queue", "level queue capacity")
	parser.Int(&cfg.History.Size, "hs", "history", "raw levels kept")
	parser.Int(&cfg.History.Decimation, "df", "decimation", "raw levels per overview entry")
	parser.Float64(&cfg.Meter.Smoothing, "sm", "smoothing", "level smoothing [0, 1)")
	parser.Bool(&fs.peak, "p", "peak", "measure peak instead of rms")
	parser.Bool(&cfg.View.Envelope, "e", "envelope", "draw the min/max envelope")
	parser.String(&cfg.SnapshotDir, "sd", "snapshot-dir", "where 's' writes png snapshots")
	parser.String(&cfg.LogLevel, "l", "log-level", "debug, info, warn, error or disabled")
	parser.String(&cfg.LogFile, "lf", "log-file", "write logs to this file")

	fs.parser = parser

	return fs
}

func (fs *flagSet) command() command {
	switch {
	case fs.listBackends.Used:
		return cmdListBackends
	case fs.listDevices.Used:
		return cmdListDevices
	default:
		return cmdRun
	}
}

// doFlags fills cfg from the config file named by -c, if any, and then from
// the command line.
func doFlags(args []string, cfg *config.Config) (command, error) {
	probe := config.NewZeroConfig()
	first := newFlagSet(&probe)
	if err := first.parser.ParseArgs(args); err != nil {
		return cmdRun, err
	}

	if first.configPath != "" {
		if err := config.Load(first.configPath, cfg); err != nil {
			return cmdRun, err
		}
	}

	fs := newFlagSet(cfg)
	if err := fs.parser.ParseArgs(args); err != nil {
		return cmdRun, err
	}

	if fs.peak {
		cfg.Meter.Measure = dsp.MeasurePeak.String()
	}

	return fs.command(), nil
}

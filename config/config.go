// Package config holds the settings of a levelscope run, their defaults, and
// the YAML file format.
package config

import (
	"os"

	"github.com/noriah/levelscope/dsp"
	"github.com/noriah/levelscope/history"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is everything a run needs. Zero fields in a file keep the defaults.
type Config struct {
	// Backend is the backend name from list-backends
	Backend string `yaml:"backend"`
	// Device is the device name from list-devices
	Device string `yaml:"device"`
	// SampleRate is the rate at which frames are read
	SampleRate float64 `yaml:"sample_rate"`
	// SampleSize is the number of frames per block, one level per block
	SampleSize int `yaml:"sample_size"`
	// ChannelCount is the number of channels averaged into a level
	ChannelCount int `yaml:"channels"`
	// FrameRate is the number of refreshes per second
	FrameRate int `yaml:"fps"`
	// QueueSize is the capacity of the queue between audio and display
	QueueSize int `yaml:"queue_size"`

	Meter   MeterConfig   `yaml:"meter"`
	History HistoryConfig `yaml:"history"`
	View    ViewConfig    `yaml:"view"`
	Colors  ColorConfig   `yaml:"colors"`

	// SnapshotDir is where PNG snapshots are written
	SnapshotDir string `yaml:"snapshot_dir"`
	// LogLevel is one of debug, info, warn, error or disabled
	LogLevel string `yaml:"log_level"`
	// LogFile receives log output while the terminal is in use
	LogFile string `yaml:"log_file"`
}

type MeterConfig struct {
	// Measure is rms or peak
	Measure string `yaml:"measure"`
	// Smoothing in [0, 1), 0 is off
	Smoothing float64 `yaml:"smoothing"`
}

type HistoryConfig struct {
	// Size is the number of raw levels kept
	Size int `yaml:"size"`
	// Decimation is the number of raw levels per overview entry
	Decimation int `yaml:"decimation"`
	// Aggregate is minmax or max
	Aggregate string `yaml:"aggregate"`
}

type ViewConfig struct {
	ZoomX    float64 `yaml:"zoom_x"`
	ZoomY    float64 `yaml:"zoom_y"`
	MinZoomX float64 `yaml:"min_zoom_x"`
	MaxZoomX float64 `yaml:"max_zoom_x"`
	MinZoomY float64 `yaml:"min_zoom_y"`
	MaxZoomY float64 `yaml:"max_zoom_y"`
	// Envelope draws the min/max band instead of a line where possible
	Envelope bool `yaml:"envelope"`
}

// ColorConfig overrides palette colors with #rrggbb values.
type ColorConfig struct {
	Envelope  string `yaml:"envelope"`
	Reference string `yaml:"reference"`
	Label     string `yaml:"label"`
}

// NewZeroConfig returns a zero config
// it is the "default"
//
// defaults:
//   - one million raw levels, about three hours at 44.1kHz / 512
//   - overview decimation of 64
//   - 60 refreshes per second
func NewZeroConfig() Config {
	return Config{
		SampleRate:   44100,
		SampleSize:   512,
		ChannelCount: 2,
		FrameRate:    60,
		QueueSize:    4096,
		Meter: MeterConfig{
			Measure: dsp.MeasureRMS.String(),
		},
		History: HistoryConfig{
			Size:       1 << 20,
			Decimation: 64,
			Aggregate:  history.AggregateMinMax.String(),
		},
		View: ViewConfig{
			ZoomX:    5,
			ZoomY:    1,
			MinZoomX: 0.0001,
			MaxZoomX: 50,
			MinZoomY: 0.5,
			MaxZoomY: 10,
		},
		SnapshotDir: ".",
		LogLevel:    "info",
	}
}

// Load reads a YAML file over cfg. Keys missing from the file leave the
// current values alone.
func Load(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config file")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "failed to parse %s", path)
	}

	return nil
}

// Save writes cfg as YAML.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}

	return errors.Wrap(os.WriteFile(path, data, 0o644), "failed to write config file")
}

// Sanitize cleans things up. Out-of-range values that have an obvious fix
// are clamped; the rest are errors.
func (cfg *Config) Sanitize() error {

	if cfg.SampleSize < 1 {
		return errors.New("sample size too small (1+ required)")
	}

	if cfg.SampleRate < float64(cfg.SampleSize) {
		return errors.New("sample rate lower than sample size")
	}

	switch {

	case cfg.ChannelCount > 2:
		return errors.New("too many channels (2 max)")

	case cfg.ChannelCount < 1:
		return errors.New("too few channels (1 min)")

	}

	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 60
	}

	if cfg.QueueSize < 2 {
		cfg.QueueSize = 2
	}

	if _, err := cfg.Measure(); err != nil {
		return err
	}

	switch {
	case cfg.Meter.Smoothing < 0:
		cfg.Meter.Smoothing = 0
	case cfg.Meter.Smoothing > 0.9999:
		cfg.Meter.Smoothing = 0.9999
	}

	if _, err := cfg.HistoryConfig(); err != nil {
		return err
	}

	v := &cfg.View

	if v.MinZoomX <= 0 {
		return errors.New("minimum zoom x must be positive")
	}

	if v.MaxZoomX < v.MinZoomX {
		return errors.New("maximum zoom x below minimum")
	}

	if v.MinZoomY <= 0 || v.MaxZoomY < v.MinZoomY {
		return errors.New("invalid zoom y bounds")
	}

	v.ZoomX = clamp(v.ZoomX, v.MinZoomX, v.MaxZoomX)
	v.ZoomY = clamp(v.ZoomY, v.MinZoomY, v.MaxZoomY)

	return nil
}

// Measure parses Meter.Measure.
func (cfg *Config) Measure() (dsp.Measure, error) {
	switch cfg.Meter.Measure {
	case "", "rms":
		return dsp.MeasureRMS, nil
	case "peak":
		return dsp.MeasurePeak, nil
	default:
		return 0, errors.Errorf("unknown measure %q (rms or peak)", cfg.Meter.Measure)
	}
}

// HistoryConfig converts the history settings, validating them.
func (cfg *Config) HistoryConfig() (history.Config, error) {
	hc := history.Config{
		RawSize:    cfg.History.Size,
		Decimation: cfg.History.Decimation,
	}

	switch cfg.History.Aggregate {
	case "", history.AggregateMinMax.String():
		hc.Aggregate = history.AggregateMinMax
	case history.AggregateMax.String():
		hc.Aggregate = history.AggregateMax
	default:
		return hc, errors.Errorf("unknown aggregate %q (minmax or max)", cfg.History.Aggregate)
	}

	if hc.RawSize < 1 || hc.Decimation < 1 || hc.RawSize < hc.Decimation {
		return hc, errors.Errorf("invalid history size %d with decimation %d",
			hc.RawSize, hc.Decimation)
	}

	return hc, nil
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// Package synth is a test-tone source. It needs no audio hardware, which
// makes it the fallback backend and the one used in demos.
package synth

import (
	"context"
	"math"
	"strings"

	"github.com/noriah/levelscope/input"
	"github.com/noriah/levelscope/input/common/timer"
	"github.com/pkg/errors"
)

func init() {
	input.RegisterBackend("synth", Backend{})
}

// Shape selects the generated signal.
type Shape int

const (
	// ShapeSine is a steady sine.
	ShapeSine Shape = iota
	// ShapePulse is a sine whose amplitude swells and decays every few seconds.
	ShapePulse
	// ShapeSweep is a sine whose amplitude ramps up over a minute and resets.
	ShapeSweep
)

var shapes = map[string]Shape{
	"sine":  ShapeSine,
	"pulse": ShapePulse,
	"sweep": ShapeSweep,
}

type Backend struct{}

func (b Backend) Init() error {
	return nil
}

func (b Backend) Close() error {
	return nil
}

func (b Backend) Devices() ([]input.Device, error) {
	return []input.Device{
		Device{Shape: ShapeSine, Freq: 440},
		Device{Shape: ShapePulse, Freq: 440},
		Device{Shape: ShapeSweep, Freq: 440},
	}, nil
}

func (b Backend) DefaultDevice() (input.Device, error) {
	return Device{Shape: ShapePulse, Freq: 440}, nil
}

func (b Backend) Start(cfg input.SessionConfig) (input.Session, error) {
	dv, ok := cfg.Device.(Device)
	if !ok {
		return nil, errors.Errorf("invalid device type %T", cfg.Device)
	}

	if cfg.SampleRate <= 0 {
		return nil, errors.New("sample rate must be positive")
	}

	return NewSession(dv, cfg), nil
}

// Device is a generator setting.
type Device struct {
	Shape Shape
	Freq  float64
}

func (d Device) String() string {
	for name, s := range shapes {
		if s == d.Shape {
			return name
		}
	}
	return "sine"
}

// ParseDevice parses a device name as listed by Devices.
func ParseDevice(name string) (Device, error) {
	s, ok := shapes[strings.ToLower(name)]
	if !ok {
		return Device{}, errors.Errorf("unknown synth shape %q", name)
	}
	return Device{Shape: s, Freq: 440}, nil
}

// Session generates blocks in real time.
type Session struct {
	gen *Generator
	cfg input.SessionConfig
}

func NewSession(dv Device, cfg input.SessionConfig) *Session {
	return &Session{gen: NewGenerator(dv, cfg.SampleRate), cfg: cfg}
}

func (s *Session) Start(ctx context.Context, proc input.Processor) error {
	return timer.Process(ctx, s.cfg, proc, func(bufs [][]input.Sample) error {
		s.gen.Fill(bufs)
		return nil
	})
}

// Generator produces a deterministic signal, the same on every channel.
type Generator struct {
	dev  Device
	rate float64
	n    uint64
}

func NewGenerator(dv Device, rate float64) *Generator {
	return &Generator{dev: dv, rate: rate}
}

// Fill writes the next len(bufs[0]) frames.
func (g *Generator) Fill(bufs [][]input.Sample) {
	if len(bufs) == 0 {
		return
	}

	for i := range bufs[0] {
		v := g.next()
		for c := range bufs {
			bufs[c][i] = v
		}
	}
}

func (g *Generator) next() float64 {
	t := float64(g.n) / g.rate
	g.n++

	return g.envelope(t) * math.Sin(2*math.Pi*g.dev.Freq*t)
}

func (g *Generator) envelope(t float64) float64 {
	switch g.dev.Shape {
	case ShapePulse:
		phase := math.Mod(t, 4) / 4
		return 0.1 + 0.8*math.Exp(-6*phase)

	case ShapeSweep:
		return math.Mod(t, 60) / 60

	default:
		return 0.7
	}
}

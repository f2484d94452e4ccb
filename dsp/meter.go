// Package dsp turns blocks of audio into level samples.
package dsp

import (
	"math"

	"github.com/noriah/levelscope/input"
	"gonum.org/v1/gonum/floats"
)

// Measure selects how a channel block is reduced to one level.
type Measure int

const (
	// MeasureRMS is the root mean square of the block.
	MeasureRMS Measure = iota
	// MeasurePeak is the largest absolute sample of the block.
	MeasurePeak
)

func (m Measure) String() string {
	switch m {
	case MeasureRMS:
		return "rms"
	case MeasurePeak:
		return "peak"
	default:
		return "unknown"
	}
}

// Sink receives levels. *queue.Queue is one.
type Sink interface {
	Push(v float64) bool
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(v float64) bool

func (fn SinkFunc) Push(v float64) bool {
	return fn(v)
}

type MeterConfig struct {
	Measure   Measure
	Smoothing float64 // 0 disables smoothing, values towards 1 smooth harder
	Sink      Sink
}

// Meter computes one level per block: the per-channel level averaged over
// all channels. It implements input.Processor and runs on the audio
// goroutine, so it does not allocate or block.
type Meter struct {
	measure  Measure
	sink     Sink
	smoother *Smoother

	dropped uint64
}

var _ input.Processor = (*Meter)(nil)

func NewMeter(cfg MeterConfig) *Meter {
	m := &Meter{
		measure: cfg.Measure,
		sink:    cfg.Sink,
	}

	if cfg.Smoothing > 0 {
		m.smoother = NewSmoother(cfg.Smoothing)
	}

	return m
}

// Process measures bufs and pushes the level to the sink.
func (m *Meter) Process(bufs [][]input.Sample) {
	v := m.Level(bufs)

	if m.smoother != nil {
		v = m.smoother.Smooth(v)
	}

	if m.sink != nil && !m.sink.Push(v) {
		m.dropped++
	}
}

// Level returns the level of bufs without pushing it. Empty input is 0.
func (m *Meter) Level(bufs [][]input.Sample) float64 {
	var sum float64
	var n int

	for _, buf := range bufs {
		if len(buf) == 0 {
			continue
		}

		sum += m.channelLevel(buf)
		n++
	}

	if n == 0 {
		return 0
	}

	return sum / float64(n)
}

func (m *Meter) channelLevel(buf []float64) float64 {
	switch m.measure {
	case MeasurePeak:
		return math.Max(math.Abs(floats.Max(buf)), math.Abs(floats.Min(buf)))
	default:
		return math.Sqrt(floats.Dot(buf, buf) / float64(len(buf)))
	}
}

// Dropped is the number of levels the sink refused. Only the audio goroutine
// may call it.
func (m *Meter) Dropped() uint64 {
	return m.dropped
}

package dsp

import (
	"math"
	"testing"

	"github.com/noriah/levelscope/input"
	"github.com/noriah/levelscope/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeterRMS(t *testing.T) {
	m := NewMeter(MeterConfig{})

	// A full-scale square wave has RMS 1, silence 0. The average is 0.5.
	level := m.Level([][]input.Sample{
		{1, -1, 1, -1},
		{0, 0, 0, 0},
	})
	assert.InDelta(t, 0.5, level, 1e-12)

	sine := make([]float64, 1000)
	for i := range sine {
		sine[i] = math.Sin(2 * math.Pi * float64(i) / 100)
	}
	assert.InDelta(t, 1/math.Sqrt2, m.Level([][]input.Sample{sine}), 1e-9)
}

func TestMeterPeak(t *testing.T) {
	m := NewMeter(MeterConfig{Measure: MeasurePeak})

	level := m.Level([][]input.Sample{
		{0.1, -0.8, 0.3},
		{0.4, 0.2, -0.1},
	})
	assert.InDelta(t, 0.6, level, 1e-12)
}

func TestMeterEmpty(t *testing.T) {
	m := NewMeter(MeterConfig{})

	assert.Equal(t, 0.0, m.Level(nil))
	assert.Equal(t, 0.0, m.Level([][]input.Sample{{}, {}}))
}

func TestMeterPushes(t *testing.T) {
	q := queue.New(2)
	m := NewMeter(MeterConfig{Sink: q})

	block := [][]input.Sample{{0.5, -0.5}}
	for i := 0; i < 3; i++ {
		m.Process(block)
	}

	assert.Equal(t, 2, q.Len())
	assert.Equal(t, uint64(1), m.Dropped())

	v, ok := q.TryPop()
	require.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-12)
}

func TestMeterSmoothing(t *testing.T) {
	q := queue.New(8)
	m := NewMeter(MeterConfig{Smoothing: 0.5, Sink: q})

	m.Process([][]input.Sample{{1, 1}})

	v, _ := q.TryPop()
	assert.Greater(t, v, 0.0)
	assert.Less(t, v, 1.0, "the first level is pulled towards the initial zero")
}

func TestSmoother(t *testing.T) {
	soft := NewSmoother(0.2)
	hard := NewSmoother(0.9)

	assert.Less(t, soft.Factor(), hard.Factor())
	assert.Greater(t, hard.Factor(), 0.0)
	assert.Less(t, hard.Factor(), 1.0)

	for i := 0; i < 10000; i++ {
		hard.Smooth(1)
	}
	assert.InDelta(t, 1.0, hard.Smooth(1), 1e-3, "converges on a constant input")

	assert.False(t, math.IsNaN(hard.Smooth(math.NaN())))
}

func TestMeasureString(t *testing.T) {
	assert.Equal(t, "rms", MeasureRMS.String())
	assert.Equal(t, "peak", MeasurePeak.String())
}

func BenchmarkMeter(b *testing.B) {
	q := queue.New(1 << 16)
	m := NewMeter(MeterConfig{Sink: q})
	block := input.MakeBuffers(input.SessionConfig{FrameSize: 2, SampleSize: 1024})

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m.Process(block)
		q.TryPop()
	}
}

package synth

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/noriah/levelscope/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceNames(t *testing.T) {
	devs, err := Backend{}.Devices()
	require.NoError(t, err)

	for _, d := range devs {
		parsed, err := ParseDevice(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}

	_, err = ParseDevice("noise")
	assert.Error(t, err)
}

func TestGeneratorSine(t *testing.T) {
	g := NewGenerator(Device{Shape: ShapeSine, Freq: 1}, 4)
	bufs := input.MakeBuffers(input.SessionConfig{FrameSize: 2, SampleSize: 4})

	g.Fill(bufs)

	want := []float64{0, 0.7, 0, -0.7}
	for i, w := range want {
		assert.InDelta(t, w, bufs[0][i], 1e-9)
	}
	assert.Equal(t, bufs[0], bufs[1], "channels carry the same signal")
}

func TestGeneratorBounded(t *testing.T) {
	for _, shape := range []Shape{ShapeSine, ShapePulse, ShapeSweep} {
		g := NewGenerator(Device{Shape: shape, Freq: 440}, 8000)
		bufs := input.MakeBuffers(input.SessionConfig{FrameSize: 1, SampleSize: 8000})

		for i := 0; i < 5; i++ {
			g.Fill(bufs)
			for _, v := range bufs[0] {
				assert.LessOrEqual(t, math.Abs(v), 1.0)
			}
		}
	}
}

func TestSessionDelivers(t *testing.T) {
	cfg := input.SessionConfig{
		Device:     Device{Shape: ShapeSine, Freq: 100},
		FrameSize:  1,
		SampleSize: 10,
		SampleRate: 1000,
	}

	sess, err := Backend{}.Start(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	blocks := 0
	err = sess.Start(ctx, input.ProcessorFunc(func(b [][]input.Sample) {
		assert.Len(t, b[0], 10)
		blocks++
	}))

	require.NoError(t, err)
	assert.Greater(t, blocks, 0)
}

func TestStartValidates(t *testing.T) {
	_, err := Backend{}.Start(input.SessionConfig{Device: Device{}})
	assert.Error(t, err)

	_, err = Backend{}.Start(input.SessionConfig{SampleRate: 100})
	assert.Error(t, err)
}

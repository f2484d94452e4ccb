package timer

import (
	"context"
	"testing"
	"time"

	"github.com/noriah/levelscope/input"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestBlockDuration(t *testing.T) {
	cfg := input.SessionConfig{SampleSize: 480, SampleRate: 48000}
	assert.Equal(t, 10*time.Millisecond, BlockDuration(cfg))
	assert.Equal(t, time.Second, BlockDuration(input.SessionConfig{}))
}

func TestProcessStopsOnFillError(t *testing.T) {
	cfg := input.SessionConfig{FrameSize: 1, SampleSize: 1, SampleRate: 1000}

	calls := 0
	proc := input.ProcessorFunc(func([][]input.Sample) { calls++ })

	stop := errors.New("stop")
	fills := 0
	err := Process(context.Background(), cfg, proc, func([][]input.Sample) error {
		fills++
		if fills == 3 {
			return stop
		}
		return nil
	})

	assert.Equal(t, stop, err)
	assert.Equal(t, 2, calls)
}

func TestProcessStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	cfg := input.SessionConfig{FrameSize: 1, SampleSize: 1, SampleRate: 1000}
	err := Process(ctx, cfg, input.ProcessorFunc(func([][]input.Sample) {}),
		func([][]input.Sample) error { return nil })

	assert.NoError(t, err)
}

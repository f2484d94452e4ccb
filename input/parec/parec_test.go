package parec

import (
	"testing"

	"github.com/noriah/levelscope/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgs(t *testing.T) {
	cfg := input.SessionConfig{FrameSize: 2, SampleSize: 1024, SampleRate: 44100}

	assert.Equal(t, []string{
		"parec",
		"--format=float32le",
		"--rate=44100",
		"--channels=2",
		"--latency=8192",
		"-d", "sink.monitor",
	}, Args("sink.monitor", cfg))
}

func TestNewSession(t *testing.T) {
	_, err := NewSession(input.SessionConfig{Device: PulseDevice("x"), FrameSize: 6})
	assert.Error(t, err, "surround is not supported")

	_, err = NewSession(input.SessionConfig{FrameSize: 2})
	assert.Error(t, err, "wrong device type")

	s, err := NewSession(input.SessionConfig{Device: PulseDevice("x"), FrameSize: 2, SampleSize: 4})
	require.NoError(t, err)
	assert.NotNil(t, s)
}

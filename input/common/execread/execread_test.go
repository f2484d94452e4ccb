package execread

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"testing"

	"github.com/noriah/levelscope/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode32(vs ...float32) []byte {
	var buf bytes.Buffer
	for _, v := range vs {
		binary.Write(&buf, binary.LittleEndian, math.Float32bits(v))
	}
	return buf.Bytes()
}

func encode64(vs ...float64) []byte {
	var buf bytes.Buffer
	for _, v := range vs {
		binary.Write(&buf, binary.LittleEndian, math.Float64bits(v))
	}
	return buf.Bytes()
}

type collector struct {
	blocks [][][]input.Sample
}

func (c *collector) Process(bufs [][]input.Sample) {
	cp := make([][]input.Sample, len(bufs))
	for i := range bufs {
		cp[i] = append([]input.Sample(nil), bufs[i]...)
	}
	c.blocks = append(c.blocks, cp)
}

func TestStreamFloat32(t *testing.T) {
	cfg := input.SessionConfig{FrameSize: 2, SampleSize: 2, SampleRate: 100}
	src := bytes.NewReader(encode32(0.5, -0.5, 0.25, -0.25, 1, -1, 0, 0))

	var c collector
	require.NoError(t, Stream(context.Background(), src, cfg, true, &c))

	require.Len(t, c.blocks, 2)
	assert.Equal(t, []input.Sample{0.5, 0.25}, c.blocks[0][0])
	assert.Equal(t, []input.Sample{-0.5, -0.25}, c.blocks[0][1])
	assert.Equal(t, []input.Sample{1, 0}, c.blocks[1][0])
}

func TestStreamFloat64(t *testing.T) {
	cfg := input.SessionConfig{FrameSize: 1, SampleSize: 3, SampleRate: 100}
	src := bytes.NewReader(encode64(0.1, 0.2, 0.3, 0.4))

	var c collector
	require.NoError(t, Stream(context.Background(), src, cfg, false, &c))

	// The trailing partial block is discarded.
	require.Len(t, c.blocks, 1)
	assert.Equal(t, []input.Sample{0.1, 0.2, 0.3}, c.blocks[0][0])
}

func TestStreamCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := input.SessionConfig{FrameSize: 1, SampleSize: 1, SampleRate: 100}

	var c collector
	require.NoError(t, Stream(ctx, bytes.NewReader(encode32(1)), cfg, true, &c))
	assert.Empty(t, c.blocks)
}

func TestNewSessionPanicsWithoutArgv(t *testing.T) {
	assert.Panics(t, func() { NewSession(nil, true, input.SessionConfig{}) })
}

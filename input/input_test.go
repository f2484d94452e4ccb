package input

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevice string

func (d fakeDevice) String() string { return string(d) }

type fakeBackend struct {
	inits int
}

func (b *fakeBackend) Init() error  { b.inits++; return nil }
func (b *fakeBackend) Close() error { return nil }

func (b *fakeBackend) Devices() ([]Device, error) {
	return []Device{fakeDevice("one"), fakeDevice("two")}, nil
}

func (b *fakeBackend) DefaultDevice() (Device, error) { return fakeDevice("one"), nil }

func (b *fakeBackend) Start(SessionConfig) (Session, error) { return nil, nil }

func withBackend(t *testing.T, name string, b Backend) {
	t.Helper()

	saved := Backends
	t.Cleanup(func() { Backends = saved })

	Backends = nil
	RegisterBackend(name, b)
}

func TestRegistry(t *testing.T) {
	fb := &fakeBackend{}
	withBackend(t, "fake", fb)

	assert.True(t, HasBackend("fake"))
	assert.False(t, HasBackend("nope"))
	assert.Equal(t, []string{"fake"}, GetAllBackendNames())

	b, err := InitBackend("fake")
	require.NoError(t, err)
	assert.Equal(t, 1, fb.inits)

	_, err = InitBackend("nope")
	assert.Error(t, err)

	dev, err := GetDevice(b, "")
	require.NoError(t, err)
	assert.Equal(t, "one", dev.String())

	dev, err = GetDevice(b, "two")
	require.NoError(t, err)
	assert.Equal(t, "two", dev.String())

	_, err = GetDevice(b, "three")
	assert.Error(t, err)
}

func TestMakeBuffers(t *testing.T) {
	cfg := SessionConfig{FrameSize: 2, SampleSize: 4}

	bufs := MakeBuffers(cfg)
	require.Len(t, bufs, 2)
	assert.True(t, EnsureBufferLen(cfg, bufs))

	bufs[0][3] = 1
	assert.Equal(t, 0.0, bufs[1][0], "channels do not overlap")

	assert.False(t, EnsureBufferLen(cfg, bufs[:1]))
	assert.False(t, EnsureBufferLen(SessionConfig{FrameSize: 2, SampleSize: 5}, bufs))
}

func TestDeinterleave(t *testing.T) {
	bufs := MakeBuffers(SessionConfig{FrameSize: 2, SampleSize: 3})

	Deinterleave(bufs, []float32{1, -1, 2, -2, 3, -3}, 3)

	assert.Equal(t, []Sample{1, 2, 3}, bufs[0])
	assert.Equal(t, []Sample{-1, -2, -3}, bufs[1])
}

func TestProcessorFunc(t *testing.T) {
	var got int
	var p Processor = ProcessorFunc(func(b [][]Sample) { got = len(b) })

	p.Process(make([][]Sample, 3))
	assert.Equal(t, 3, got)

	var _ Session = sessionFunc(nil)
}

type sessionFunc func(context.Context, Processor) error

func (fn sessionFunc) Start(ctx context.Context, p Processor) error { return fn(ctx, p) }

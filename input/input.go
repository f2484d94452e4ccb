package input

import (
	"context"
	"fmt"
)

// Sample is the value type handed to processors.
type Sample = float64

// Device is an input device of some backend.
type Device interface {
	fmt.Stringer
}

// SessionConfig describes the blocks a session should deliver.
type SessionConfig struct {
	Device     Device
	FrameSize  int     // number of channels per frame
	SampleSize int     // number of frames per block
	SampleRate float64 // frames per second
}

// Processor receives blocks of samples, one buffer per channel. Process is
// called on the session's goroutine and must not hold on to the buffers.
type Processor interface {
	Process(buffers [][]Sample)
}

// ProcessorFunc adapts a function to a Processor.
type ProcessorFunc func(buffers [][]Sample)

func (fn ProcessorFunc) Process(buffers [][]Sample) {
	fn(buffers)
}

// Session is a running capture.
type Session interface {
	// Start blocks, calling proc once per block until ctx is done or the
	// source ends. A nil error is returned in both cases.
	Start(ctx context.Context, proc Processor) error
}

// MakeBuffers allocates one buffer per channel, each SampleSize long.
func MakeBuffers(cfg SessionConfig) [][]Sample {
	buf := make([]Sample, cfg.FrameSize*cfg.SampleSize)
	out := make([][]Sample, cfg.FrameSize)

	for i := range out {
		out[i] = buf[cfg.SampleSize*i : cfg.SampleSize*(i+1)]
	}

	return out
}

// EnsureBufferLen reports whether buffers match cfg.
func EnsureBufferLen(cfg SessionConfig, buffers [][]Sample) bool {
	if len(buffers) != cfg.FrameSize {
		return false
	}

	for _, buf := range buffers {
		if len(buf) != cfg.SampleSize {
			return false
		}
	}

	return true
}

// Deinterleave splits interleaved frames from src into dst. n is the number
// of frames to copy, at most the length of each dst buffer.
func Deinterleave[T float32 | float64](dst [][]Sample, src []T, n int) {
	ch := len(dst)

	for f := 0; f < n; f++ {
		for c := 0; c < ch; c++ {
			dst[c][f] = Sample(src[f*ch+c])
		}
	}
}

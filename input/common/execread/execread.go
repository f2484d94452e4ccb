// Package execread provides a shared session that reads raw little-endian
// floats from a reader, usually the stdout of a capture command.
package execread

import (
	"context"
	"encoding/binary"
	"io"
	"math"
	"os"
	"os/exec"
	"time"

	"github.com/noriah/levelscope/input"
	"github.com/noriah/levelscope/logger"
	"github.com/pkg/errors"
)

// Session is a session that reads floating-point audio values from a Cmd.
type Session struct {
	// OnStart is called when the session starts. Nil by default.
	OnStart func(ctx context.Context, cmd *exec.Cmd) error

	// DisconnectedStderr keeps cmd.Stderr away from os.Stderr, which belongs
	// to the terminal display while running.
	DisconnectedStderr bool

	argv []string
	cfg  input.SessionConfig

	samples int // frames times channels

	f32mode bool
}

// NewSession creates a new execread session. It never returns an error.
func NewSession(argv []string, f32mode bool, cfg input.SessionConfig) *Session {
	if len(argv) < 1 {
		panic("argv has no arg0")
	}

	return &Session{
		argv:               argv,
		cfg:                cfg,
		f32mode:            f32mode,
		samples:            cfg.SampleSize * cfg.FrameSize,
		DisconnectedStderr: true,
	}
}

func (s *Session) Start(ctx context.Context, proc input.Processor) error {
	cmd := exec.CommandContext(ctx, s.argv[0], s.argv[1:]...)

	if !s.DisconnectedStderr {
		cmd.Stderr = os.Stderr
	}

	o, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "failed to get stdout pipe")
	}
	defer o.Close()

	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "failed to start "+s.argv[0])
	}

	logger.Debugf("started %v", s.argv)

	if s.OnStart != nil {
		if err := s.OnStart(ctx, cmd); err != nil {
			return err
		}
	}

	err = Stream(ctx, o, s.cfg, s.f32mode, proc)

	if ctx.Err() != nil {
		return nil
	}

	return err
}

// Stream reads blocks from r until EOF or ctx is done, handing each block to
// proc. When r is an *os.File a read deadline is kept, and a block of silence
// is delivered whenever the source stalls.
func Stream(ctx context.Context, r io.Reader, cfg input.SessionConfig, f32mode bool, proc input.Processor) error {
	samples := cfg.SampleSize * cfg.FrameSize
	framesz := cfg.FrameSize

	if samples <= 0 {
		return errors.New("empty block size")
	}

	dst := input.MakeBuffers(cfg)
	reader := floatReader{
		order: binary.LittleEndian,
		f64:   !f32mode,
	}

	bufsz := samples
	if !f32mode {
		bufsz *= 2
	}

	raw := make([]byte, bufsz*4)

	// Pipes may not support deadlines. Only use them if setting one works.
	of, _ := r.(*os.File)
	if of != nil {
		if err := of.SetReadDeadline(time.Time{}); err != nil {
			of = nil
		}
	}

	sampleDuration := time.Duration(
		float64(cfg.SampleSize) / cfg.SampleRate * float64(time.Second))

	// Once a deadline was hit, use the short timeout until data flows again.
	var readExpired bool

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		if of != nil {
			timeout := sampleDuration
			if !readExpired {
				timeout *= 6
			}
			if err := of.SetReadDeadline(time.Now().Add(timeout)); err != nil {
				return errors.Wrap(err, "failed to set read deadline")
			}
		}

		_, err := io.ReadFull(r, raw)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
				return nil
			case errors.Is(err, os.ErrDeadlineExceeded):
				readExpired = true
			default:
				return err
			}
		} else {
			readExpired = false
		}

		if readExpired {
			for _, buf := range dst {
				for i := range buf {
					buf[i] = 0
				}
			}
		} else {
			reader.reset(raw)
			for n := 0; n < samples; n++ {
				dst[n%framesz][n/framesz] = reader.next()
			}
		}

		proc.Process(dst)
	}
}

type floatReader struct {
	order binary.ByteOrder
	buf   []byte
	f64   bool
}

func (f *floatReader) reset(b []byte) {
	f.buf = b
}

func (f *floatReader) next() float64 {
	if f.f64 {
		b := f.buf[:8]
		f.buf = f.buf[8:]
		return math.Float64frombits(f.order.Uint64(b))
	}

	b := f.buf[:4]
	f.buf = f.buf[4:]
	return float64(math.Float32frombits(f.order.Uint32(b)))
}

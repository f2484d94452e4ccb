// Package stdinput reads interleaved float32le frames from standard input,
// e.g. `parec --format=float32le | levelscope -b stdin`.
package stdinput

import (
	"context"
	"io"
	"os"

	"github.com/noriah/levelscope/input"
	"github.com/noriah/levelscope/input/common/execread"
)

func init() {
	input.RegisterBackend("stdin", Backend{})
}

type Backend struct{}

func (b Backend) Init() error {
	return nil
}

func (b Backend) Close() error {
	return nil
}

func (b Backend) Devices() ([]input.Device, error) {
	return []input.Device{Device{}}, nil
}

func (b Backend) DefaultDevice() (input.Device, error) {
	return Device{}, nil
}

func (b Backend) Start(cfg input.SessionConfig) (input.Session, error) {
	return NewSession(os.Stdin, cfg), nil
}

type Device struct{}

func (d Device) String() string {
	return "stdin"
}

// Session streams blocks from a reader.
type Session struct {
	r   io.Reader
	cfg input.SessionConfig
}

func NewSession(r io.Reader, cfg input.SessionConfig) *Session {
	return &Session{r: r, cfg: cfg}
}

// Start returns nil when the stream ends.
func (s *Session) Start(ctx context.Context, proc input.Processor) error {
	return execread.Stream(ctx, s.r, s.cfg, true, proc)
}

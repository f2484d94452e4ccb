package ffmpeg

import (
	"fmt"

	"github.com/noriah/levelscope/input"
	"github.com/noriah/levelscope/input/parec"
)

func init() {
	input.RegisterBackend("ffmpeg-pulse", Pulse{})
}

// Pulse reads PulseAudio sources through ffmpeg. Devices are listed the same
// way parec lists them.
type Pulse struct {
	parec.Backend
}

func (p Pulse) Start(cfg input.SessionConfig) (input.Session, error) {
	dv, ok := cfg.Device.(parec.PulseDevice)
	if !ok {
		return nil, fmt.Errorf("invalid device type %T", cfg.Device)
	}

	return NewSession(dv, cfg)
}

// Package ffmpeg captures through an ffmpeg child process.
package ffmpeg

import (
	"fmt"

	"github.com/noriah/levelscope/input"
	"github.com/noriah/levelscope/input/common/execread"
)

type FFmpegBackend interface {
	InputArgs() []string
}

// Args is the ffmpeg command line reading from b as f64le on stdout.
func Args(b FFmpegBackend, cfg input.SessionConfig) []string {
	args := []string{"ffmpeg", "-hide_banner", "-loglevel", "panic"}
	args = append(args, b.InputArgs()...)
	args = append(args,
		"-ar", fmt.Sprintf("%.0f", cfg.SampleRate),
		"-ac", fmt.Sprintf("%d", cfg.FrameSize),
		"-f", "f64le",
		"-",
	)
	return args
}

func NewSession(b FFmpegBackend, cfg input.SessionConfig) (*execread.Session, error) {
	return execread.NewSession(Args(b, cfg), false, cfg), nil
}

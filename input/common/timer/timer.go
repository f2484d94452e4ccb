// Package timer paces sources that produce blocks on demand so they deliver
// them at the rate a real device would.
package timer

import (
	"context"
	"time"

	"github.com/noriah/levelscope/input"
)

// BlockDuration is how long one block of cfg lasts in real time.
func BlockDuration(cfg input.SessionConfig) time.Duration {
	if cfg.SampleRate <= 0 {
		return time.Second
	}
	return time.Duration(float64(cfg.SampleSize) / cfg.SampleRate * float64(time.Second))
}

// Process calls fill and then proc once per block duration until ctx is done
// or fill returns an error. Ticks that were missed are not made up.
func Process(ctx context.Context, cfg input.SessionConfig, proc input.Processor, fill func([][]input.Sample) error) error {
	ticker := time.NewTicker(BlockDuration(cfg))
	defer ticker.Stop()

	bufs := input.MakeBuffers(cfg)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
		}

		if err := fill(bufs); err != nil {
			return err
		}

		proc.Process(bufs)
	}
}

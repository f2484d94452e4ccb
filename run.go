package levelscope

import (
	"context"
	"sync"

	"github.com/noriah/levelscope/config"
	"github.com/noriah/levelscope/dsp"
	"github.com/noriah/levelscope/graphic"
	"github.com/noriah/levelscope/graphic/snapshot"
	"github.com/noriah/levelscope/input"
	"github.com/noriah/levelscope/logger"
	"github.com/noriah/levelscope/render"
	"github.com/noriah/levelscope/viewport"
	"github.com/pkg/errors"
)

// eventBuffer is how many host events may queue up between two ticks.
const eventBuffer = 32

// ViewConfig converts the view settings of cfg.
func ViewConfig(cfg config.Config) viewport.Config {
	vc := viewport.DefaultConfig()
	vc.ZoomX = cfg.View.ZoomX
	vc.ZoomY = cfg.View.ZoomY
	vc.XBounds = viewport.Bounds{Min: cfg.View.MinZoomX, Max: cfg.View.MaxZoomX}
	vc.YBounds = viewport.Bounds{Min: cfg.View.MinZoomY, Max: cfg.View.MaxZoomY}
	vc.MaxOffset = cfg.History.Size
	return vc
}

// Run captures from the configured backend and draws on the terminal until
// ctx is done, the user quits, or the input fails. cfg must be sanitized.
func Run(ctx context.Context, cfg config.Config) error {
	hc, err := cfg.HistoryConfig()
	if err != nil {
		return err
	}

	measure, err := cfg.Measure()
	if err != nil {
		return err
	}

	palette, err := graphic.ParsePalette(cfg.Colors.Envelope, cfg.Colors.Reference, cfg.Colors.Label)
	if err != nil {
		return errors.Wrap(err, "invalid color")
	}

	// INPUT SETUP

	backend, err := input.InitBackend(cfg.Backend)
	if err != nil {
		return err
	}
	defer backend.Close()

	sessConfig := input.SessionConfig{
		FrameSize:  cfg.ChannelCount,
		SampleSize: cfg.SampleSize,
		SampleRate: cfg.SampleRate,
	}

	if sessConfig.Device, err = input.GetDevice(backend, cfg.Device); err != nil {
		return err
	}

	audio, err := backend.Start(sessConfig)
	if err != nil {
		return errors.Wrap(err, "failed to start the input backend")
	}

	logger.Infof("capturing %q from %s at %.0f Hz, %d frames per level",
		sessConfig.Device, cfg.Backend, cfg.SampleRate, cfg.SampleSize)

	// DISPLAY SETUP

	display, err := graphic.New(palette)
	if err != nil {
		return err
	}
	defer display.Close()

	shots := snapshot.New(cfg.SnapshotDir, palette)
	events := make(chan func(), eventBuffer)

	style := render.StyleLine
	if cfg.View.Envelope {
		style = render.StyleEnvelope
	}

	scope, err := New(Options{
		QueueSize: cfg.QueueSize,
		FrameRate: cfg.FrameRate,
		History:   hc,
		View:      ViewConfig(cfg),
		Render:    render.Config{Style: style},
		Surface:   display,
		Events:    events,
		OnSnapshot: func(f *render.Frame) {
			path, err := shots.Capture(f)
			if err != nil {
				logger.Error("snapshot failed", err)
				return
			}
			logger.Infof("snapshot written to %s", path)
		},
	})
	if err != nil {
		return err
	}

	scope.Resize(display.PixelSize())

	meter := dsp.NewMeter(dsp.MeterConfig{
		Measure:   measure,
		Smoothing: cfg.Meter.Smoothing,
		Sink:      dsp.SinkFunc(scope.OnLevelComputed),
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	var audioErr error

	wg.Add(2)

	go func() {
		defer wg.Done()
		defer cancel()
		display.Poll(ctx, scope, events)
	}()

	go func() {
		defer wg.Done()

		if err := audio.Start(ctx, meter); err != nil {
			audioErr = errors.Wrap(err, "input session failed")
			cancel()
			return
		}

		if ctx.Err() == nil {
			logger.Info("input ended, press q to quit")
		}
	}()

	runErr := scope.Run(ctx)

	cancel()
	display.Interrupt()
	wg.Wait()

	mean, sd := scope.Driver().ArrivalStats()
	logger.Infof("drained %d levels (%.1f +- %.1f per tick), dropped %d",
		scope.Driver().Drained(), mean, sd, scope.Queue().Dropped())

	if runErr != nil {
		return errors.Wrap(runErr, "failed to draw")
	}

	return audioErr
}

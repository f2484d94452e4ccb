// Package levelscope is a real-time scrolling level scope. Levels are pushed
// from the audio goroutine into a lock-free queue, drained at a fixed rate
// into a two-tier history, and rendered with work bounded by the view width.
package levelscope

import (
	"context"

	"github.com/noriah/levelscope/history"
	"github.com/noriah/levelscope/logger"
	"github.com/noriah/levelscope/processor"
	"github.com/noriah/levelscope/queue"
	"github.com/noriah/levelscope/render"
	"github.com/noriah/levelscope/viewport"
	"github.com/pkg/errors"
)

// DefaultQueueSize is the level queue capacity used when none is given.
const DefaultQueueSize = 4096

type Options struct {
	QueueSize int
	FrameRate int

	History history.Config
	View    viewport.Config
	Render  render.Config

	// Surface receives each redraw. May be nil for headless use.
	Surface render.Surface
	// Events carries host input to the refresh goroutine. May be nil.
	Events <-chan func()
	// OnSnapshot is called with the current frame when a snapshot is asked
	// for. May be nil.
	OnSnapshot func(*render.Frame)
}

// Scope ties the core together. OnLevelComputed belongs to the audio
// goroutine; every other method belongs to the refresh goroutine, which is
// the one running Run, or the caller of OnTick when driven by hand.
type Scope struct {
	queue    *queue.Queue
	store    *history.Store
	acc      *history.Accessor
	view     *viewport.Controller
	renderer *render.Renderer
	driver   *processor.Driver

	surface    render.Surface
	onSnapshot func(*render.Frame)
}

func New(opts Options) (*Scope, error) {
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}

	store, err := history.New(opts.History)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create history")
	}

	if opts.View.MaxOffset == 0 {
		opts.View.MaxOffset = opts.History.RawSize
	}

	s := &Scope{
		queue:      queue.New(opts.QueueSize),
		store:      store,
		acc:        history.NewAccessor(store),
		view:       viewport.New(opts.View),
		surface:    opts.Surface,
		onSnapshot: opts.OnSnapshot,
	}

	s.renderer = render.New(s.acc, opts.Render)

	s.driver = processor.New(processor.Config{
		Rate:   opts.FrameRate,
		Queue:  s.queue,
		Store:  store,
		Redraw: s.Redraw,
		Events: opts.Events,
		OnData: s.view.Advance,
	})

	return s, nil
}

// OnLevelComputed hands one level to the scope. It never blocks; when the
// queue is full the level is dropped and false is returned.
func (s *Scope) OnLevelComputed(v float64) bool {
	return s.queue.Push(v)
}

// OnTick drains pending levels into history. It reports whether any arrived.
func (s *Scope) OnTick() bool {
	_, ok := s.driver.Tick()
	return ok
}

// Render builds the frame for the current view.
func (s *Scope) Render() *render.Frame {
	return s.renderer.Render(s.view.State())
}

// Redraw renders and draws to the surface.
func (s *Scope) Redraw() error {
	if s.surface == nil {
		return nil
	}

	return render.Draw(s.surface, s.Render())
}

// Run refreshes at the frame rate until ctx is done.
func (s *Scope) Run(ctx context.Context) error {
	return s.driver.Run(ctx)
}

func (s *Scope) OnScroll(delta float64, mod viewport.Modifier) {
	s.view.OnScroll(delta, mod)
}

func (s *Scope) Pan(pixels float64) {
	s.view.Pan(pixels)
}

func (s *Scope) Follow() {
	s.view.Follow()
}

func (s *Scope) Resize(width, height int) {
	s.view.Resize(width, height)
}

// ToggleStyle flips between line and envelope drawing.
func (s *Scope) ToggleStyle() {
	if s.renderer.Style() == render.StyleEnvelope {
		s.renderer.SetStyle(render.StyleLine)
	} else {
		s.renderer.SetStyle(render.StyleEnvelope)
	}

	logger.Debugf("style set to %s", s.renderer.Style())
}

// Snapshot passes the current frame to the snapshot hook.
func (s *Scope) Snapshot() {
	if s.onSnapshot == nil {
		return
	}

	s.onSnapshot(s.Render())
}

func (s *Scope) State() viewport.State {
	return s.view.State()
}

func (s *Scope) Accessor() *history.Accessor {
	return s.acc
}

func (s *Scope) Queue() *queue.Queue {
	return s.queue
}

func (s *Scope) Driver() *processor.Driver {
	return s.driver
}

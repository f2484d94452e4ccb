// Package processor drives the consumer side of the scope: at a fixed rate it
// drains the level queue into history and asks for a redraw when something
// changed.
package processor

import (
	"context"
	"time"

	"github.com/noriah/levelscope/history"
	"github.com/noriah/levelscope/logger"
	"github.com/noriah/levelscope/queue"
	"github.com/noriah/levelscope/util"
)

const (
	// DefaultRate is the refresh rate used when none is set.
	DefaultRate = 60

	// statsSeconds is how much tick history feeds the arrival statistics.
	statsSeconds = 5
)

type Config struct {
	Rate  int            // ticks per second
	Queue *queue.Queue   // source of level samples
	Store *history.Store // destination of level samples

	// Redraw is called from the tick goroutine when new data arrived or a UI
	// event was applied.
	Redraw func() error

	// Events carries UI work to run on the tick goroutine. May be nil.
	Events <-chan func()

	// OnData is called after each tick that drained n > 0 samples.
	OnData func(n int)
}

// Driver is the refresh loop. Tick and Run must be called from one goroutine.
type Driver struct {
	rate   int
	queue  *queue.Queue
	store  *history.Store
	redraw func() error
	events <-chan func()
	onData func(int)

	arrivals *util.MovingWindow

	dropped     uint64
	sizeWarned  bool
	totalDrains uint64
}

func New(cfg Config) *Driver {
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRate
	}

	return &Driver{
		rate:     cfg.Rate,
		queue:    cfg.Queue,
		store:    cfg.Store,
		redraw:   cfg.Redraw,
		events:   cfg.Events,
		onData:   cfg.OnData,
		arrivals: util.NewMovingWindow(cfg.Rate * statsSeconds),
	}
}

// Tick drains the queue completely into the store. It returns how many
// samples were drained and whether there were any.
func (d *Driver) Tick() (int, bool) {
	n := 0

	for {
		v, ok := d.queue.TryPop()
		if !ok {
			break
		}

		d.store.Append(v)
		n++
	}

	d.totalDrains += uint64(n)
	d.checkQueue(n)

	if n > 0 && d.onData != nil {
		d.onData(n)
	}

	return n, n > 0
}

// checkQueue reports drops and warns once if bursts come close to the queue
// capacity.
func (d *Driver) checkQueue(n int) {
	mean, sd := d.arrivals.Update(float64(n))

	if dropped := d.queue.Dropped(); dropped != d.dropped {
		logger.Warnf("level queue full, dropped %d samples (%d total)",
			dropped-d.dropped, dropped)
		d.dropped = dropped
	}

	if d.sizeWarned || d.arrivals.Len() < d.arrivals.Cap() {
		return
	}

	if peak := mean + 3*sd; peak > float64(d.queue.Cap())/2 {
		logger.Warnf("level queue capacity %d is close to the arrival rate (%.1f +- %.1f per tick)",
			d.queue.Cap(), mean, sd)
		d.sizeWarned = true
	}
}

// ArrivalStats returns the mean and standard deviation of samples drained per
// tick over the last few seconds.
func (d *Driver) ArrivalStats() (float64, float64) {
	return d.arrivals.Stats()
}

// Drained returns the number of samples drained over the driver's lifetime.
func (d *Driver) Drained() uint64 {
	return d.totalDrains
}

// Run ticks at the configured rate until ctx is done. UI events are applied
// between ticks. It returns nil when ctx ends and the first Redraw error
// otherwise.
func (d *Driver) Run(ctx context.Context) error {
	dur := time.Second / time.Duration(d.rate)
	ticker := time.NewTicker(dur)
	defer ticker.Stop()

	for {
		dirty := false

		select {
		case <-ctx.Done():
			return nil

		case fn, ok := <-d.events:
			if !ok {
				d.events = nil
				continue
			}
			fn()
			dirty = true

		case <-ticker.C:
			_, dirty = d.Tick()
		}

		if dirty && d.redraw != nil {
			if err := d.redraw(); err != nil {
				return err
			}
		}
	}
}

// Package viewport owns the zoom and pan state of the scrolling view.
package viewport

// Bounds is an inclusive range a value is clamped to.
type Bounds struct {
	Min float64
	Max float64
}

// Clamp saturates v into the bounds.
func (b Bounds) Clamp(v float64) float64 {
	switch {
	case v < b.Min:
		return b.Min
	case v > b.Max:
		return b.Max
	default:
		return v
	}
}

// Modifier is the state of the modifier keys during a scroll.
type Modifier uint8

const (
	// ModNone scrolls the time axis.
	ModNone Modifier = iota
	// ModZoomY scrolls the amplitude axis (ctrl or cmd held).
	ModZoomY
)

// Config holds the initial zoom, the clamp bounds and the scroll factors.
type Config struct {
	ZoomX   float64 // screen pixels per raw sample
	ZoomY   float64 // amplitude scale
	XBounds Bounds
	YBounds Bounds

	ZoomIn  float64 // ZoomX multiplier for a positive scroll
	ZoomOut float64 // ZoomX multiplier for a negative scroll

	// MaxOffset is how far back, in raw samples, the view may be panned.
	MaxOffset int
}

// DefaultConfig returns the stock zoom settings.
func DefaultConfig() Config {
	return Config{
		ZoomX:   5,
		ZoomY:   1,
		XBounds: Bounds{Min: 0.0001, Max: 50},
		YBounds: Bounds{Min: 0.5, Max: 10},
		ZoomIn:  1.1,
		ZoomOut: 0.9,
	}
}

// State is a snapshot of the view handed to the renderer.
type State struct {
	ZoomX  float64
	ZoomY  float64
	Offset float64 // raw samples between the newest sample and the right edge
	Width  int
	Height int
}

// SamplesPerPixel returns the raw samples covered by one screen column.
func (s State) SamplesPerPixel() float64 {
	return 1 / s.ZoomX
}

// Controller maps scroll and pan input to a clamped view state. It is not
// safe for concurrent use; the host must call it from the refresh goroutine.
type Controller struct {
	cfg   Config
	state State
}

// New returns a controller. The initial zoom is clamped into the bounds.
// Unset or inverted bounds, and a non-positive ZoomX minimum, are replaced by
// the defaults, since the time axis is divided by ZoomX.
func New(cfg Config) *Controller {
	def := DefaultConfig()

	if cfg.XBounds.Min <= 0 || cfg.XBounds.Max < cfg.XBounds.Min {
		cfg.XBounds = def.XBounds
	}
	if cfg.YBounds == (Bounds{}) || cfg.YBounds.Max < cfg.YBounds.Min {
		cfg.YBounds = def.YBounds
	}
	if cfg.ZoomIn <= 0 {
		cfg.ZoomIn = def.ZoomIn
	}
	if cfg.ZoomOut <= 0 {
		cfg.ZoomOut = def.ZoomOut
	}
	if cfg.MaxOffset < 0 {
		cfg.MaxOffset = 0
	}

	return &Controller{
		cfg: cfg,
		state: State{
			ZoomX: cfg.XBounds.Clamp(cfg.ZoomX),
			ZoomY: cfg.YBounds.Clamp(cfg.ZoomY),
		},
	}
}

// OnScroll applies one scroll step. With ModZoomY the amplitude zoom moves by
// delta; otherwise the time zoom is scaled by ZoomIn or ZoomOut depending on
// the sign of delta, so a step has the same visual effect at any zoom.
func (c *Controller) OnScroll(delta float64, mod Modifier) {
	if mod == ModZoomY {
		c.state.ZoomY = c.cfg.YBounds.Clamp(c.state.ZoomY + delta)
		return
	}

	switch {
	case delta > 0:
		c.state.ZoomX *= c.cfg.ZoomIn
	case delta < 0:
		c.state.ZoomX *= c.cfg.ZoomOut
	}

	c.state.ZoomX = c.cfg.XBounds.Clamp(c.state.ZoomX)
}

// Pan moves the view by pixels screen columns. Positive values move back in
// time.
func (c *Controller) Pan(pixels float64) {
	c.setOffset(c.state.Offset + pixels/c.state.ZoomX)
}

// Follow snaps the view back to the newest sample.
func (c *Controller) Follow() {
	c.state.Offset = 0
}

// Following reports whether the right edge shows the newest sample.
func (c *Controller) Following() bool {
	return c.state.Offset == 0
}

// Advance keeps a panned view on the same data after n new samples arrived.
// It does nothing while following.
func (c *Controller) Advance(n int) {
	if c.Following() || n <= 0 {
		return
	}

	c.setOffset(c.state.Offset + float64(n))
}

// Resize sets the drawable area. Negative sizes become 0.
func (c *Controller) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	c.state.Width = width
	c.state.Height = height
}

// State returns the current view.
func (c *Controller) State() State {
	return c.state
}

// SamplesPerPixel returns the raw samples covered by one screen column.
func (c *Controller) SamplesPerPixel() float64 {
	return c.state.SamplesPerPixel()
}

func (c *Controller) setOffset(off float64) {
	max := float64(c.cfg.MaxOffset)

	switch {
	case off < 0:
		off = 0
	case off > max:
		off = max
	}

	c.state.Offset = off
}

// Package render turns history into screen geometry. The algorithm is chosen
// by zoom level so that the work per frame is bounded by the viewport width
// and never by the amount of history retained.
package render

import (
	"math"

	"github.com/noriah/levelscope/history"
	"github.com/noriah/levelscope/viewport"
)

// DefaultHeadroom is the fraction of the half height a full-scale level uses.
const DefaultHeadroom = 0.9

// Config controls the geometry.
type Config struct {
	Style    Style
	Headroom float64
}

// Renderer produces frames from a history accessor.
type Renderer struct {
	acc *history.Accessor
	cfg Config

	frame Frame
}

// New returns a renderer reading acc.
func New(acc *history.Accessor, cfg Config) *Renderer {
	if cfg.Headroom <= 0 {
		cfg.Headroom = DefaultHeadroom
	}

	return &Renderer{
		acc: acc,
		cfg: cfg,
	}
}

// SetStyle switches between line and envelope drawing.
func (r *Renderer) SetStyle(s Style) {
	r.cfg.Style = s
}

// Style returns the configured style.
func (r *Renderer) Style() Style {
	return r.cfg.Style
}

// Render builds the frame for st. Once the frame's slices have grown to the
// viewport width, Render does not allocate.
func (r *Renderer) Render(st viewport.State) *Frame {
	f := &r.frame
	f.reset(st)

	if st.Width <= 0 || st.ZoomX <= 0 {
		return f
	}

	dec := r.acc.Store().Decimation()

	f.Mode = SelectMode(st.ZoomX, dec)
	f.Style = r.cfg.Style

	before := r.acc.Comparisons()

	switch f.Mode {
	case ModeInterpolated:
		// Nothing to reduce, so there is no envelope.
		f.Style = StyleLine
		r.interpolate(f)

	case ModePeak:
		r.reduce(f, history.TierRaw, 1)

	case ModeOverview:
		r.reduce(f, history.TierOverview, dec)
	}

	f.Scanned = r.acc.Comparisons() - before

	return f
}

// interpolate emits one vertex per column at the column's exact fractional
// sample offset.
func (r *Renderer) interpolate(f *Frame) {
	st := f.State
	spp := st.SamplesPerPixel()
	last := float64(r.acc.Len(history.TierRaw) - 1)

	for c := 0; c < st.Width; c++ {
		ago := st.Offset + float64(c)*spp
		if ago > last {
			break
		}

		v := r.acc.InterpolatedAt(history.TierRaw, ago)
		f.Line = append(f.Line, r.vertex(st, c, v))
	}
}

// reduce scans every entry under each column of tier, where one entry covers
// unit raw samples. The newest overview entry ends Pending samples back, so
// overview columns are shifted by that much to line up with the raw tier.
func (r *Renderer) reduce(f *Frame, tier history.Tier, unit int) {
	st := f.State
	spp := st.SamplesPerPixel()
	u := float64(unit)

	shift := 0.0
	if tier == history.TierOverview {
		shift = float64(r.acc.Store().Pending())
	}

	agg := history.AggregateMax
	if f.Style == StyleEnvelope {
		agg = history.AggregateMinMax
	}

	for c := 0; c < st.Width; c++ {
		from := int(math.Floor((st.Offset + float64(c)*spp - shift) / u))
		to := int(math.Floor((st.Offset+float64(c+1)*spp-shift)/u)) - 1
		if from < 0 {
			from = 0
		}
		if to < from {
			to = from
		}

		mm, ok := r.acc.RangeExtreme(tier, from, to, agg)
		if !ok {
			break
		}

		if f.Style == StyleEnvelope {
			f.Roof = append(f.Roof, r.vertex(st, c, mm.Max))
			f.Floor = append(f.Floor, r.vertex(st, c, mm.Min))
			continue
		}

		f.Line = append(f.Line, r.vertex(st, c, mm.Max))
	}
}

func (r *Renderer) vertex(st viewport.State, col int, v float64) Vertex {
	h := float64(st.Height)
	mid := h / 2

	y := mid - v*mid*r.cfg.Headroom*st.ZoomY
	switch {
	case y < 0:
		y = 0
	case y > h:
		y = h
	}

	return Vertex{
		X:     float64(st.Width - 1 - col),
		Y:     y,
		Level: v,
	}
}

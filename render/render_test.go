package render

import (
	"testing"

	"github.com/noriah/levelscope/history"
	"github.com/noriah/levelscope/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccessor(t testing.TB, raw, dec, count int, gen func(int) float64) *history.Accessor {
	t.Helper()

	s, err := history.New(history.Config{RawSize: raw, Decimation: dec})
	require.NoError(t, err)

	for i := 0; i < count; i++ {
		s.Append(gen(i))
	}

	return history.NewAccessor(s)
}

func constant(v float64) func(int) float64 {
	return func(int) float64 { return v }
}

func ramp(i int) float64 {
	return float64(i%100) / 100
}

func TestSelectModeBoundaries(t *testing.T) {
	const dec = 64
	const eps = 1e-9

	assert.Equal(t, ModePeak, SelectMode(1.0/dec+eps, dec))
	assert.Equal(t, ModeOverview, SelectMode(1.0/dec-eps, dec))
	assert.Equal(t, ModeOverview, SelectMode(1.0/dec, dec), "samplesPerPixel == decimation")

	assert.Equal(t, ModeInterpolated, SelectMode(1+eps, dec))
	assert.Equal(t, ModePeak, SelectMode(1, dec), "samplesPerPixel == 1")

	assert.Equal(t, ModeInterpolated, SelectMode(50, dec))
	assert.Equal(t, ModeOverview, SelectMode(0.0001, dec))
}

func TestRenderSwitchesModeAtThreshold(t *testing.T) {
	acc := newAccessor(t, 1<<14, 64, 1<<14, ramp)
	r := New(acc, Config{})

	st := viewport.State{ZoomX: 1.0/64 + 1e-9, ZoomY: 1, Width: 50, Height: 100}
	assert.Equal(t, ModePeak, r.Render(st).Mode)

	st.ZoomX = 1.0/64 - 1e-9
	assert.Equal(t, ModeOverview, r.Render(st).Mode)
}

func TestPeakModeConstant(t *testing.T) {
	acc := newAccessor(t, 100, 10, 300, constant(0.5))
	r := New(acc, Config{})

	f := r.Render(viewport.State{ZoomX: 0.2, ZoomY: 1, Width: 20, Height: 40})

	require.Equal(t, ModePeak, f.Mode)
	require.Len(t, f.Line, 20)

	for _, v := range f.Line {
		assert.Equal(t, 0.5, v.Level)
		assert.InDelta(t, 20-0.5*20*DefaultHeadroom, v.Y, 1e-9)
	}
}

func TestVerticesRunRightToLeft(t *testing.T) {
	acc := newAccessor(t, 1000, 10, 1000, ramp)
	r := New(acc, Config{Style: StyleEnvelope})

	for _, zoom := range []float64{4, 0.5, 0.01} {
		f := r.Render(viewport.State{ZoomX: zoom, ZoomY: 1, Width: 30, Height: 10})

		pts := f.Line
		if f.Style == StyleEnvelope {
			pts = f.Roof
			require.Len(t, f.Floor, len(f.Roof))
		}

		require.NotEmpty(t, pts, "zoom %v", zoom)
		assert.Equal(t, 29.0, pts[0].X, "newest sample on the right edge")

		for i := 1; i < len(pts); i++ {
			assert.Equal(t, pts[i-1].X-1, pts[i].X)
		}
	}
}

func TestInterpolatedMode(t *testing.T) {
	s, err := history.New(history.Config{RawSize: 16, Decimation: 4})
	require.NoError(t, err)

	s.Append(0)
	s.Append(1)

	acc := history.NewAccessor(s)
	r := New(acc, Config{Style: StyleEnvelope})

	// Four columns per sample: ago 0, 0.25, 0.5, 0.75, 1 then history ends.
	f := r.Render(viewport.State{ZoomX: 4, ZoomY: 1, Width: 10, Height: 10})

	require.Equal(t, ModeInterpolated, f.Mode)
	assert.Equal(t, StyleLine, f.Style)
	require.Len(t, f.Line, 5)

	for i, want := range []float64{1, 0.75, 0.5, 0.25, 0} {
		assert.InDelta(t, want, f.Line[i].Level, 1e-12)
	}
}

func TestEnvelope(t *testing.T) {
	s, err := history.New(history.Config{RawSize: 8, Decimation: 4})
	require.NoError(t, err)

	for _, v := range []float64{0.1, 0.9, 0.2, 0.6} {
		s.Append(v)
	}

	r := New(history.NewAccessor(s), Config{Style: StyleEnvelope})
	f := r.Render(viewport.State{ZoomX: 0.5, ZoomY: 1, Width: 4, Height: 10})

	require.Equal(t, ModePeak, f.Mode)
	require.Len(t, f.Roof, 2)

	assert.Equal(t, 0.6, f.Roof[0].Level)
	assert.Equal(t, 0.2, f.Floor[0].Level)
	assert.Equal(t, 0.9, f.Roof[1].Level)
	assert.Equal(t, 0.1, f.Floor[1].Level)

	out := f.Outline()
	require.Len(t, out, 4)
	assert.Equal(t, []float64{0.6, 0.9, 0.1, 0.2},
		[]float64{out[0].Level, out[1].Level, out[2].Level, out[3].Level})
}

func TestOverviewReadsOverviewTier(t *testing.T) {
	const dec = 64

	acc := newAccessor(t, 1<<16, dec, 1<<16, ramp)
	r := New(acc, Config{})

	// 128 samples per pixel: two overview entries per column.
	f := r.Render(viewport.State{ZoomX: 1.0 / 128, ZoomY: 1, Width: 100, Height: 10})

	require.Equal(t, ModeOverview, f.Mode)
	assert.Len(t, f.Line, 100)
	assert.Equal(t, uint64(200), f.Scanned)
}

func TestOverviewAlignsWithPeak(t *testing.T) {
	// 205 samples with D 10 leave 5 pending, so overview entry 0 covers
	// samples 5 to 14 ago. The spike is 12 samples ago.
	const spike = 12

	acc := newAccessor(t, 1000, 10, 205, func(i int) float64 {
		if 204-i == spike {
			return 1
		}
		return 0
	})
	require.Equal(t, 5, acc.Store().Pending())

	r := New(acc, Config{})
	st := viewport.State{ZoomX: 0.1, ZoomY: 1, Width: 5, Height: 10}

	overview := r.Render(st)
	require.Equal(t, ModeOverview, overview.Mode)
	require.Len(t, overview.Line, 5)
	over := []float64{}
	for _, v := range overview.Line {
		over = append(over, v.Level)
	}

	st.ZoomX = 0.1 + 1e-9
	peak := r.Render(st)
	require.Equal(t, ModePeak, peak.Mode)
	require.Len(t, peak.Line, 5)

	// Columns 10 samples wide: the spike sits in column 1 in both modes.
	assert.Equal(t, 1.0, peak.Line[1].Level)
	assert.Equal(t, 1.0, over[1])
	assert.Equal(t, 0.0, over[2])
	assert.Equal(t, 0.0, peak.Line[2].Level)
}

func TestScanCostIndependentOfHistory(t *testing.T) {
	st := viewport.State{ZoomX: 0.25, ZoomY: 1, Width: 64, Height: 10}

	var scanned []uint64
	for _, size := range []int{1 << 10, 1 << 16, 1 << 20} {
		acc := newAccessor(t, size, 64, size, ramp)
		f := New(acc, Config{}).Render(st)
		scanned = append(scanned, f.Scanned)
	}

	assert.Equal(t, uint64(64*4), scanned[0])
	assert.Equal(t, scanned[0], scanned[1])
	assert.Equal(t, scanned[0], scanned[2])
}

func TestOffset(t *testing.T) {
	acc := newAccessor(t, 100, 10, 100, func(i int) float64 { return float64(i) })
	r := New(acc, Config{})

	f := r.Render(viewport.State{ZoomX: 1, ZoomY: 0.01, Offset: 10, Width: 5, Height: 1000})

	require.Len(t, f.Line, 5)
	assert.Equal(t, 89.0, f.Line[0].Level)
	assert.Equal(t, 85.0, f.Line[4].Level)
}

func TestStopsAtEndOfHistory(t *testing.T) {
	acc := newAccessor(t, 100, 10, 30, constant(0.3))
	r := New(acc, Config{})

	f := r.Render(viewport.State{ZoomX: 0.5, ZoomY: 1, Width: 100, Height: 10})
	assert.Len(t, f.Line, 15)

	acc = newAccessor(t, 100, 10, 0, constant(0))
	f = New(acc, Config{}).Render(viewport.State{ZoomX: 0.5, ZoomY: 1, Width: 100, Height: 10})
	assert.True(t, f.Empty())
}

func TestYClamped(t *testing.T) {
	acc := newAccessor(t, 10, 1, 10, constant(5))
	f := New(acc, Config{}).Render(viewport.State{ZoomX: 1, ZoomY: 10, Width: 5, Height: 40})

	for _, v := range f.Line {
		assert.Equal(t, 0.0, v.Y)
	}
}

func TestDegenerateState(t *testing.T) {
	acc := newAccessor(t, 10, 1, 10, constant(5))
	r := New(acc, Config{})

	assert.True(t, r.Render(viewport.State{ZoomX: 0, Width: 10, Height: 10}).Empty())
	assert.True(t, r.Render(viewport.State{ZoomX: 1, Width: 0, Height: 10}).Empty())
}

func TestRenderDoesNotAllocate(t *testing.T) {
	acc := newAccessor(t, 1<<16, 64, 1<<16, ramp)
	r := New(acc, Config{Style: StyleEnvelope})

	states := []viewport.State{
		{ZoomX: 3, ZoomY: 1, Width: 200, Height: 50},
		{ZoomX: 0.1, ZoomY: 1, Width: 200, Height: 50},
		{ZoomX: 0.001, ZoomY: 1, Width: 200, Height: 50},
	}

	for _, st := range states {
		r.Render(st).Outline()
	}

	allocs := testing.AllocsPerRun(20, func() {
		for _, st := range states {
			r.Render(st).Outline()
		}
	})

	assert.Zero(t, allocs)
}

func BenchmarkRenderOverview(b *testing.B) {
	acc := newAccessor(b, 1<<20, 64, 1<<20, ramp)
	r := New(acc, Config{Style: StyleEnvelope})
	st := viewport.State{ZoomX: 0.0001, ZoomY: 1, Width: 2000, Height: 400}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r.Render(st)
	}
}

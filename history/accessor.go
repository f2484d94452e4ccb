package history

import "math"

// Tier selects which history tier a query reads.
type Tier int

const (
	TierRaw Tier = iota
	TierOverview
)

func (t Tier) String() string {
	switch t {
	case TierRaw:
		return "raw"
	case TierOverview:
		return "overview"
	default:
		return "unknown"
	}
}

// Accessor answers "samples ago" queries against a Store. Offsets count back
// from the newest value, 0 being the newest. Out of range queries return
// defined sentinels instead of panicking.
type Accessor struct {
	store *Store

	comparisons uint64
}

// NewAccessor returns an accessor reading s.
func NewAccessor(s *Store) *Accessor {
	return &Accessor{store: s}
}

// Store returns the store being read.
func (a *Accessor) Store() *Store {
	return a.store
}

// Len returns the number of valid entries in tier t.
func (a *Accessor) Len(t Tier) int {
	switch t {
	case TierRaw:
		return a.store.raw.Len()
	case TierOverview:
		return a.store.overview.Len()
	default:
		return 0
	}
}

// SampleAt returns the raw value, or the overview entry's maximum, ago
// entries back. It returns 0 when ago is out of range.
func (a *Accessor) SampleAt(t Tier, ago int) float64 {
	return a.EntryAt(t, ago).Max
}

// EntryAt returns the entry ago entries back as a MinMax. Raw values have
// Min == Max. It returns the zero MinMax when ago is out of range.
func (a *Accessor) EntryAt(t Tier, ago int) MinMax {
	switch t {
	case TierRaw:
		v, _ := a.store.raw.At(ago)
		return MinMax{Min: v, Max: v}
	case TierOverview:
		v, _ := a.store.overview.At(ago)
		return v
	default:
		return MinMax{}
	}
}

// InterpolatedAt linearly interpolates between the two entries bracketing a
// fractional offset. An integral ago returns SampleAt exactly. Offsets past the
// oldest valid entry return 0; the older neighbour of the oldest entry is the
// entry itself.
func (a *Accessor) InterpolatedAt(t Tier, ago float64) float64 {
	n := a.Len(t)
	if n == 0 || ago > float64(n-1) || math.IsNaN(ago) {
		return 0
	}

	if ago <= 0 {
		return a.SampleAt(t, 0)
	}

	i0 := int(ago)
	frac := ago - float64(i0)

	v0 := a.SampleAt(t, i0)
	if frac == 0 {
		return v0
	}

	i1 := i0 + 1
	if i1 >= n {
		i1 = i0
	}
	v1 := a.SampleAt(t, i1)

	return v0 + frac*(v1-v0)
}

// RangeExtreme reduces every entry between ago from and ago to, inclusive.
// The range is clamped to the tier's valid entries; if nothing is left it
// returns false. In AggregateMax mode Min mirrors Max.
//
// The scan visits exactly to-from+1 entries after clamping, so its cost
// depends on the range, never on the tier size.
func (a *Accessor) RangeExtreme(t Tier, from, to int, mode Aggregate) (MinMax, bool) {
	n := a.Len(t)

	if from < 0 {
		from = 0
	}
	if to > n-1 {
		to = n - 1
	}
	if from > to {
		return MinMax{}, false
	}

	var mm MinMax

	switch t {
	case TierRaw:
		x, y := a.store.raw.span(from, to)
		mm = MinMax{Min: x[0], Max: x[0]}
		reduceValues(&mm, x)
		reduceValues(&mm, y)

	case TierOverview:
		x, y := a.store.overview.span(from, to)
		mm = x[0]
		reduceEntries(&mm, x)
		reduceEntries(&mm, y)

	default:
		return MinMax{}, false
	}

	a.comparisons += uint64(to - from + 1)

	if mode == AggregateMax {
		mm.Min = mm.Max
	}

	return mm, true
}

// Comparisons returns how many entries RangeExtreme has visited.
func (a *Accessor) Comparisons() uint64 {
	return a.comparisons
}

func reduceValues(mm *MinMax, vs []float64) {
	for _, v := range vs {
		if v > mm.Max {
			mm.Max = v
		}
		if v < mm.Min {
			mm.Min = v
		}
	}
}

func reduceEntries(mm *MinMax, es []MinMax) {
	for _, e := range es {
		if e.Max > mm.Max {
			mm.Max = e.Max
		}
		if e.Min < mm.Min {
			mm.Min = e.Min
		}
	}
}

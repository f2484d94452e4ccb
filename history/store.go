// Package history keeps a bounded, two-tier record of level samples: a raw
// tier at full resolution and an overview tier holding one min/max entry per
// fixed-size window of raw samples.
package history

import (
	"github.com/pkg/errors"
)

// Aggregate is how a window of samples is reduced.
type Aggregate int

const (
	// AggregateMinMax keeps both the minimum and the maximum.
	AggregateMinMax Aggregate = iota
	// AggregateMax keeps the maximum only. Min mirrors Max.
	AggregateMax
)

func (a Aggregate) String() string {
	switch a {
	case AggregateMinMax:
		return "minmax"
	case AggregateMax:
		return "max"
	default:
		return "unknown"
	}
}

// MinMax is the reduction of a range of samples.
type MinMax struct {
	Min float64
	Max float64
}

// Config describes the tier sizes.
type Config struct {
	RawSize    int       // raw tier slots
	Decimation int       // raw samples per overview entry
	Aggregate  Aggregate // overview reduction
}

// Store is the dual-tier history. It is owned by a single goroutine and is
// not safe for concurrent use.
type Store struct {
	raw      *Ring[float64]
	overview *Ring[MinMax]

	decimation int
	aggregate  Aggregate

	// open decimation window
	acc      MinMax
	accCount int
}

// New allocates both tiers. They are never resized.
func New(cfg Config) (*Store, error) {
	switch {
	case cfg.RawSize < 1:
		return nil, errors.New("raw size must be at least 1")

	case cfg.Decimation < 1:
		return nil, errors.New("decimation factor must be at least 1")

	case cfg.RawSize < cfg.Decimation:
		return nil, errors.Errorf(
			"raw size %d smaller than decimation factor %d", cfg.RawSize, cfg.Decimation)
	}

	switch cfg.Aggregate {
	case AggregateMinMax, AggregateMax:
	default:
		return nil, errors.Errorf("unknown aggregate %d", cfg.Aggregate)
	}

	return &Store{
		raw:        NewRing[float64](cfg.RawSize),
		overview:   NewRing[MinMax](cfg.RawSize / cfg.Decimation),
		decimation: cfg.Decimation,
		aggregate:  cfg.Aggregate,
	}, nil
}

// Append records one sample in the raw tier and folds it into the open
// decimation window. Every Decimation samples the window is committed to the
// overview tier. A partial window is never committed.
func (s *Store) Append(v float64) {
	s.raw.Push(v)

	// The window is seeded by its first sample, so no sentinel bounds the
	// input range.
	if s.accCount == 0 {
		s.acc = MinMax{Min: v, Max: v}
	} else {
		if v > s.acc.Max {
			s.acc.Max = v
		}
		if v < s.acc.Min {
			s.acc.Min = v
		}
	}

	if s.accCount++; s.accCount < s.decimation {
		return
	}

	entry := s.acc
	if s.aggregate == AggregateMax {
		entry.Min = entry.Max
	}

	s.overview.Push(entry)
	s.accCount = 0
}

// Raw returns the raw tier.
func (s *Store) Raw() *Ring[float64] {
	return s.raw
}

// Overview returns the overview tier.
func (s *Store) Overview() *Ring[MinMax] {
	return s.overview
}

// Decimation returns the number of raw samples per overview entry.
func (s *Store) Decimation() int {
	return s.decimation
}

// Aggregate returns the overview reduction.
func (s *Store) Aggregate() Aggregate {
	return s.aggregate
}

// Total returns the number of samples appended over the store's lifetime.
func (s *Store) Total() uint64 {
	return s.raw.Written()
}

// Committed returns the number of overview entries committed over the
// store's lifetime.
func (s *Store) Committed() uint64 {
	return s.overview.Written()
}

// Pending returns how many samples sit in the open decimation window.
func (s *Store) Pending() int {
	return s.accCount
}

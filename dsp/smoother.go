package dsp

import "math"

// Smoother is a one-pole low pass over successive levels.
type Smoother struct {
	value  float64
	factor float64
}

// NewSmoother maps a smoothing amount in (0, 1] to a filter factor. Small
// amounts barely smooth at all, values near 1 hold the level for seconds.
func NewSmoother(amount float64) *Smoother {
	return &Smoother{factor: smoothingFactor(amount)}
}

func smoothingFactor(amount float64) float64 {
	if amount <= 0.0 {
		amount = math.SmallestNonzeroFloat64
	}

	amount = math.Min(amount, 1.0)

	sf := math.Pow(10.0, (1.0-amount)*(-25.0))

	// 0.5 maps to about 0.62, 0.9 to about 0.91
	return math.Pow(sf, 0.0167)
}

// Smooth folds v into the running value and returns it.
func (s *Smoother) Smooth(v float64) float64 {
	if math.IsNaN(v) {
		v = 0.0
	}

	s.value = v*(1.0-s.factor) + s.value*s.factor

	return s.value
}

// Factor is the weight given to the previous value.
func (s *Smoother) Factor() float64 {
	return s.factor
}

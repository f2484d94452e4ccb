package util

import (
	"math"
)

// MovingWindow keeps the mean and standard deviation of the last Cap values.
//
// Values are held in a fixed slice used as a ring; the running sum and sum of
// squares are updated as values enter and leave, so Update is O(1) and never
// allocates.
type MovingWindow struct {
	values []float64
	next   int
	length int

	sum   float64
	sumSq float64

	average float64
	stddev  float64
}

// NewMovingWindow returns a window over the last size values.
func NewMovingWindow(size int) *MovingWindow {
	if size < 1 {
		size = 1
	}

	return &MovingWindow{values: make([]float64, size)}
}

// Update adds value, evicting the oldest once full, and returns the new mean
// and standard deviation.
func (mw *MovingWindow) Update(value float64) (float64, float64) {
	if mw.length == len(mw.values) {
		old := mw.values[mw.next]
		mw.sum -= old
		mw.sumSq -= old * old
	} else {
		mw.length++
	}

	mw.values[mw.next] = value
	mw.sum += value
	mw.sumSq += value * value

	if mw.next++; mw.next == len(mw.values) {
		mw.next = 0
	}

	return mw.calcFinal()
}

func (mw *MovingWindow) calcFinal() (float64, float64) {
	n := float64(mw.length)

	mw.average = mw.sum / n

	if mw.length > 1 {
		// population variance; Abs guards against rounding below zero
		mw.stddev = math.Sqrt(math.Abs(mw.sumSq/n - mw.average*mw.average))
	} else {
		mw.stddev = 0
	}

	return mw.average, mw.stddev
}

// Len returns how many values are in the window.
func (mw *MovingWindow) Len() int {
	return mw.length
}

// Cap returns the window size.
func (mw *MovingWindow) Cap() int {
	return len(mw.values)
}

// Mean is the moving average.
func (mw *MovingWindow) Mean() float64 {
	return mw.average
}

// StdDev is the moving standard deviation.
func (mw *MovingWindow) StdDev() float64 {
	return mw.stddev
}

// Stats returns the mean and standard deviation.
func (mw *MovingWindow) Stats() (float64, float64) {
	return mw.average, mw.stddev
}

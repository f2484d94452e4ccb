package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovingWindow(t *testing.T) {
	mw := NewMovingWindow(4)

	assert.Equal(t, 0, mw.Len())
	assert.Equal(t, 4, mw.Cap())

	mean, sd := mw.Update(2)
	assert.Equal(t, 2.0, mean)
	assert.Equal(t, 0.0, sd)

	for _, v := range []float64{4, 4, 6} {
		mw.Update(v)
	}

	mean, sd = mw.Stats()
	assert.InDelta(t, 4.0, mean, 1e-12)
	assert.InDelta(t, 1.41421356, sd, 1e-6)

	// 2 is evicted
	mean, _ = mw.Update(10)
	assert.Equal(t, 4, mw.Len())
	assert.InDelta(t, 6.0, mean, 1e-12)
}

func TestMovingWindowConstant(t *testing.T) {
	mw := NewMovingWindow(16)

	for i := 0; i < 100; i++ {
		mw.Update(7)
	}

	assert.InDelta(t, 7.0, mw.Mean(), 1e-9)
	assert.InDelta(t, 0.0, mw.StdDev(), 1e-6)
}

func TestMovingWindowMinimumSize(t *testing.T) {
	mw := NewMovingWindow(0)
	assert.Equal(t, 1, mw.Cap())

	mw.Update(1)
	mean, _ := mw.Update(3)
	assert.Equal(t, 3.0, mean)
}

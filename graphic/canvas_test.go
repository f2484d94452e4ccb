package graphic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanvasDots(t *testing.T) {
	c := NewCanvas(2, 1)

	assert.Equal(t, 4, c.PixelWidth())
	assert.Equal(t, 4, c.PixelHeight())

	c.Set(0, 0)
	c.Set(1, 3)
	c.Set(9, 9)

	assert.Equal(t, uint8(0x01|0x80), c.Bits(0, 0))
	assert.Equal(t, uint8(0), c.Bits(1, 0))
	assert.Equal(t, '⢁', BrailleBase+rune(c.Bits(0, 0)))

	c.Clear()
	assert.Equal(t, uint8(0), c.Bits(0, 0))
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Line(0, 0, 7, 7)
	for i := 0; i < 8; i++ {
		assert.True(t, c.IsSet(i, i), "diagonal dot %d", i)
	}

	c.Clear()
	c.Line(7, 2, 0, 2)
	for x := 0; x < 8; x++ {
		assert.True(t, c.IsSet(x, 2))
		assert.False(t, c.IsSet(x, 3))
	}
}

func TestCanvasFillPolygon(t *testing.T) {
	c := NewCanvas(4, 2)

	c.FillPolygon([]Point{{0, 0}, {8, 0}, {8, 4}, {0, 4}})

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, y < 4, c.IsSet(x, y), "dot %d,%d", x, y)
		}
	}

	c.Clear()
	c.FillPolygon([]Point{{0, 0}, {1, 1}})
	assert.Equal(t, uint8(0), c.Bits(0, 0), "degenerate polygon")
}

func TestCanvasResize(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Set(0, 0)

	c.Resize(3, 2)
	cols, rows := c.Size()
	assert.Equal(t, 3, cols)
	assert.Equal(t, 2, rows)
	assert.False(t, c.IsSet(0, 0))

	c.Resize(-1, 5)
	assert.Equal(t, 0, c.PixelWidth())
}

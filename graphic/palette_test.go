package graphic

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/noriah/levelscope/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradientEnds(t *testing.T) {
	g := DefaultPalette().Level

	assert.Equal(t, g[0].Col, g.At(-1))
	assert.Equal(t, g[0].Col, g.At(0))
	assert.Equal(t, g[len(g)-1].Col, g.At(1))
	assert.Equal(t, g[len(g)-1].Col, g.At(2))

	mid := g.At(0.55)
	assert.True(t, mid.IsValid())
}

func TestGradientStopsExact(t *testing.T) {
	g := DefaultPalette().Level

	for _, stop := range g {
		assert.Equal(t, stop.Col, g.At(stop.Pos), "stop at %v", stop.Pos)
	}

	assert.Equal(t, g[len(g)-1].Col, g.At(1.0))
}

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette("#ff0000", "", "")
	require.NoError(t, err)

	fg, _, _ := p.Style(render.TagEnvelope, 0).Decompose()
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), fg)

	def := DefaultPalette()
	assert.Equal(t, def.Reference, p.Reference)

	_, err = ParsePalette("red", "", "")
	assert.Error(t, err)
}

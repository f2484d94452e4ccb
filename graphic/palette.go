package graphic

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/noriah/levelscope/render"
)

// Gradient is a list of color keypoints with positions in [0, 1], sorted.
type Gradient []struct {
	Col colorful.Color
	Pos float64
}

// At returns the HCL blend between the keypoints around t.
func (g Gradient) At(t float64) colorful.Color {
	if len(g) == 0 {
		return colorful.Color{R: 1, G: 1, B: 1}
	}

	if t <= g[0].Pos {
		return g[0].Col
	}

	if last := g[len(g)-1]; t >= last.Pos {
		return last.Col
	}

	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if t == c1.Pos {
			return c1.Col
		}
		if c1.Pos < t && t < c2.Pos {
			t := (t - c1.Pos) / (c2.Pos - c1.Pos)
			return c1.Col.BlendHcl(c2.Col, t).Clamped()
		}
	}

	return g[len(g)-1].Col
}

func mustParseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("mustParseHex: " + err.Error())
	}
	return c
}

// Palette colors each layer of the display.
type Palette struct {
	// Level colors the waveform by distance from the center line, 0 at the
	// center and 1 at the top or bottom edge.
	Level     Gradient
	Envelope  colorful.Color
	Reference colorful.Color
	Label     colorful.Color
}

// DefaultPalette is green at rest through amber to red near full scale.
func DefaultPalette() Palette {
	return Palette{
		Level: Gradient{
			{mustParseHex("#66c2a5"), 0.0},
			{mustParseHex("#abdda4"), 0.4},
			{mustParseHex("#fee090"), 0.7},
			{mustParseHex("#f46d43"), 0.85},
			{mustParseHex("#9e0142"), 1.0},
		},
		Envelope:  mustParseHex("#3288bd"),
		Reference: mustParseHex("#5e4fa2"),
		Label:     mustParseHex("#e6f598"),
	}
}

// ParsePalette overrides the default colors with hex strings. Empty strings
// keep the defaults.
func ParsePalette(envelope, reference, label string) (Palette, error) {
	p := DefaultPalette()

	for _, o := range []struct {
		hex string
		dst *colorful.Color
	}{
		{envelope, &p.Envelope},
		{reference, &p.Reference},
		{label, &p.Label},
	} {
		if o.hex == "" {
			continue
		}

		c, err := colorful.Hex(o.hex)
		if err != nil {
			return p, err
		}
		*o.dst = c
	}

	return p, nil
}

// Style returns the tcell style for a tag. level is only used for the
// waveform.
func (p Palette) Style(tag string, level float64) tcell.Style {
	var c colorful.Color

	switch tag {
	case render.TagWaveform:
		c = p.Level.At(level)
	case render.TagEnvelope:
		c = p.Envelope
	case render.TagReference:
		c = p.Reference
	default:
		c = p.Label
	}

	return tcell.StyleDefault.Foreground(tcellColor(c))
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

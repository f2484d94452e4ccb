// Package graphic draws frames on a terminal with tcell, using braille cells
// for sub-cell resolution.
package graphic

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/noriah/levelscope/render"
	"github.com/pkg/errors"
)

// layer order is paint priority, last wins a cell's color.
const (
	layerReference = iota
	layerEnvelope
	layerWaveform
	numLayers
)

var layerTags = [numLayers]string{
	render.TagReference,
	render.TagEnvelope,
	render.TagWaveform,
}

type label struct {
	x, y int
	text string
}

// Display is a render.Surface on a tcell screen. Drawing methods must be
// called from a single goroutine; only the event poller runs beside them.
type Display struct {
	screen  tcell.Screen
	palette Palette
	restore func()

	layers [numLayers]*Canvas
	labels []label
	points []Point
}

var _ render.Surface = (*Display)(nil)

// New initializes the terminal and returns a display on it.
func New(palette Palette) (*Display, error) {
	restore, err := normalizeTerminal()
	if err != nil {
		return nil, errors.Wrap(err, "failed to normalize terminal")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		restore()
		return nil, errors.Wrap(err, "failed to create screen")
	}

	if err := screen.Init(); err != nil {
		restore()
		return nil, errors.Wrap(err, "failed to initialize screen")
	}

	d := NewWithScreen(screen, palette)
	d.restore = restore

	return d, nil
}

// NewWithScreen uses an initialized screen.
func NewWithScreen(screen tcell.Screen, palette Palette) *Display {
	screen.EnableMouse()
	screen.HideCursor()

	d := &Display{
		screen:  screen,
		palette: palette,
	}

	cols, rows := screen.Size()
	for i := range d.layers {
		d.layers[i] = NewCanvas(cols, rows)
	}

	return d
}

// Close releases the terminal.
func (d *Display) Close() error {
	d.screen.Fini()

	if d.restore != nil {
		d.restore()
	}

	return nil
}

// PixelSize returns the drawable area in braille dots.
func (d *Display) PixelSize() (int, int) {
	return d.layers[0].PixelWidth(), d.layers[0].PixelHeight()
}

// resize follows a terminal resize. It returns the new pixel size.
func (d *Display) resize(cols, rows int) (int, int) {
	for _, l := range d.layers {
		l.Resize(cols, rows)
	}

	d.screen.Sync()

	return d.PixelSize()
}

func (d *Display) Clear() {
	for _, l := range d.layers {
		l.Clear()
	}
	d.labels = d.labels[:0]
}

func (d *Display) HLine(y float64, s render.Stroke) {
	c := d.layers[layerReference]
	c.Line(0, y, float64(c.PixelWidth()-1), y)
}

func (d *Display) Polyline(pts []render.Vertex, s render.Stroke) {
	c := d.layers[layerWaveform]

	if len(pts) == 1 {
		c.Set(round(pts[0].X), round(pts[0].Y))
		return
	}

	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		c.Line(a.X, a.Y, b.X, b.Y)

		if s.Width >= 2 {
			c.Line(a.X, a.Y+1, b.X, b.Y+1)
		}
	}
}

func (d *Display) Polygon(pts []render.Vertex, s render.Stroke) {
	c := d.layers[layerEnvelope]

	if !s.Fill {
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			c.Line(a.X, a.Y, b.X, b.Y)
		}
		return
	}

	d.points = d.points[:0]
	for _, p := range pts {
		d.points = append(d.points, Point{X: p.X, Y: p.Y})
	}

	c.FillPolygon(d.points)

	// Keep the edges visible where the envelope is thinner than a dot.
	for i := 1; i < len(pts); i++ {
		c.Line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y)
	}
}

func (d *Display) Text(x, y int, text string) {
	d.labels = append(d.labels, label{x: x, y: y, text: text})
}

// Show composes the layers and flushes them to the terminal.
func (d *Display) Show() error {
	d.screen.Clear()

	cols, rows := d.layers[0].Size()
	mid := float64(rows) / 2

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			var bits uint8
			top := -1

			for i, l := range d.layers {
				if b := l.Bits(col, row); b != 0 {
					bits |= b
					top = i
				}
			}

			if top < 0 {
				continue
			}

			level := 0.0
			if mid > 0 {
				level = math.Min(1, math.Abs(float64(row)+0.5-mid)/mid)
			}

			d.screen.SetContent(col, row, BrailleBase+rune(bits), nil,
				d.palette.Style(layerTags[top], level))
		}
	}

	style := d.palette.Style(render.TagLabel, 0)
	for _, l := range d.labels {
		x := l.x
		for _, r := range l.text {
			d.screen.SetContent(x, l.y, r, nil, style)
			x += runewidth.RuneWidth(r)
		}
	}

	d.screen.Show()

	return nil
}

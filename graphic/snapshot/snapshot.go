// Package snapshot writes frames to PNG files.
package snapshot

import (
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/noriah/levelscope/graphic"
	"github.com/noriah/levelscope/render"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PixelScale is the image size per viewport pixel.
const PixelScale = 3 * vg.Millimeter

// Surface is a render.Surface that plots a frame and saves it when shown.
type Surface struct {
	dir     string
	palette graphic.Palette
	now     func() time.Time

	width  float64
	height float64

	plot *plot.Plot
	err  error
	last string
}

var _ render.Surface = (*Surface)(nil)

func New(dir string, palette graphic.Palette) *Surface {
	return &Surface{
		dir:     dir,
		palette: palette,
		now:     time.Now,
	}
}

// Capture draws f and writes it to a new file in the snapshot directory.
// It returns the file's path.
func (s *Surface) Capture(f *render.Frame) (string, error) {
	s.width = float64(f.State.Width)
	s.height = float64(f.State.Height)

	if s.width <= 0 || s.height <= 0 {
		return "", errors.New("nothing to capture on an empty view")
	}

	if err := render.Draw(s, f); err != nil {
		return "", err
	}

	return s.last, nil
}

func (s *Surface) Clear() {
	p := plot.New()
	p.HideAxes()
	p.BackgroundColor = color.Black
	p.X.Min, p.X.Max = 0, s.width
	p.Y.Min, p.Y.Max = 0, s.height
	p.Title.TextStyle.Color = s.palette.Label

	s.plot = p
	s.err = nil
}

// xy flips screen coordinates so that y grows upwards.
func (s *Surface) xy(x, y float64) plotter.XY {
	return plotter.XY{X: x, Y: s.height - y}
}

func (s *Surface) HLine(y float64, st render.Stroke) {
	s.line(plotter.XYs{s.xy(0, y), s.xy(s.width, y)}, st, s.palette.Reference)
}

func (s *Surface) Polyline(pts []render.Vertex, st render.Stroke) {
	if len(pts) == 0 {
		return
	}

	xys := make(plotter.XYs, len(pts))
	for i, p := range pts {
		xys[i] = s.xy(p.X, p.Y)
	}

	s.line(xys, st, s.palette.Level.At(0.3))
}

func (s *Surface) line(xys plotter.XYs, st render.Stroke, c color.Color) {
	if s.err != nil {
		return
	}

	l, err := plotter.NewLine(xys)
	if err != nil {
		s.err = errors.Wrap(err, "failed to plot line")
		return
	}

	l.LineStyle.Width = vg.Length(st.Width) * vg.Points(1)
	l.LineStyle.Color = c

	s.plot.Add(l)
}

func (s *Surface) Polygon(pts []render.Vertex, st render.Stroke) {
	if s.err != nil || len(pts) < 3 {
		return
	}

	xys := make(plotter.XYs, len(pts))
	for i, p := range pts {
		xys[i] = s.xy(p.X, p.Y)
	}

	poly, err := plotter.NewPolygon(xys)
	if err != nil {
		s.err = errors.Wrap(err, "failed to plot envelope")
		return
	}

	poly.LineStyle.Width = vg.Length(st.Width) * vg.Points(1)
	poly.LineStyle.Color = s.palette.Envelope
	if st.Fill {
		poly.Color = s.palette.Envelope
	}

	s.plot.Add(poly)
}

// Text becomes the plot title. Position is ignored.
func (s *Surface) Text(x, y int, text string) {
	s.plot.Title.Text = text
}

// Show writes the plot as a PNG named after the current time.
func (s *Surface) Show() error {
	if s.err != nil {
		return s.err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create snapshot directory")
	}

	name := "levelscope-" + s.now().Format("20060102-150405.000") + ".png"
	path := filepath.Join(s.dir, name)

	w := vg.Length(s.width) * PixelScale
	h := vg.Length(s.height) * PixelScale

	if err := s.plot.Save(w, h, path); err != nil {
		return errors.Wrap(err, "failed to save snapshot")
	}

	s.last = path
	return nil
}

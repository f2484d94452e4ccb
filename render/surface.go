package render

// Stroke tags.
const (
	TagReference = "reference"
	TagWaveform  = "waveform"
	TagEnvelope  = "envelope"
	TagLabel     = "label"
)

// Stroke describes how a shape is drawn. Color is left to the surface, which
// may key it on Tag.
type Stroke struct {
	Width float64
	Fill  bool
	Tag   string
}

// Surface receives drawing commands.
type Surface interface {
	// Clear erases the previous frame.
	Clear()
	// HLine draws a horizontal line across the surface.
	HLine(y float64, s Stroke)
	// Polyline strokes an open path.
	Polyline(pts []Vertex, s Stroke)
	// Polygon draws a closed path, filled if s.Fill is set.
	Polygon(pts []Vertex, s Stroke)
	// Text draws a label at a cell or pixel position.
	Text(x, y int, text string)
	// Show presents the frame.
	Show() error
}

// Draw issues f to s: the center reference line, the waveform or envelope,
// and the status label.
func Draw(s Surface, f *Frame) error {
	s.Clear()

	s.HLine(float64(f.State.Height)/2, Stroke{Width: 1, Tag: TagReference})

	if f.Style == StyleEnvelope {
		s.Polygon(f.Outline(), Stroke{Width: 1, Fill: true, Tag: TagEnvelope})
	} else {
		width := 2.0
		if f.Mode == ModeOverview {
			width = 1
		}
		s.Polyline(f.Line, Stroke{Width: width, Tag: TagWaveform})
	}

	s.Text(1, 0, f.Label())

	return s.Show()
}

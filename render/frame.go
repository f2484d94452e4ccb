package render

import (
	"fmt"

	"github.com/noriah/levelscope/viewport"
)

// Vertex is a point in screen space together with the level it plots.
type Vertex struct {
	X     float64
	Y     float64
	Level float64
}

// Frame is the geometry produced for one redraw. Vertices run newest first,
// from the right edge towards the left.
//
// A Frame and its slices are reused by the Renderer that produced it and are
// only valid until the next call to Render.
type Frame struct {
	Mode  Mode
	Style Style
	State viewport.State

	// Line is set for StyleLine.
	Line []Vertex
	// Roof and Floor are set for StyleEnvelope, one vertex per column each.
	Roof  []Vertex
	Floor []Vertex

	// Scanned is the number of history entries reduced for this frame.
	Scanned uint64

	outline []Vertex
}

func (f *Frame) reset(st viewport.State) {
	f.State = st
	f.Line = f.Line[:0]
	f.Roof = f.Roof[:0]
	f.Floor = f.Floor[:0]
	f.outline = f.outline[:0]
	f.Scanned = 0
}

// Empty reports whether the frame has no geometry.
func (f *Frame) Empty() bool {
	return len(f.Line) == 0 && len(f.Roof) == 0
}

// Outline closes an envelope into a single polygon: the roof in traversal
// order followed by the floor reversed.
func (f *Frame) Outline() []Vertex {
	f.outline = append(f.outline[:0], f.Roof...)

	for i := len(f.Floor) - 1; i >= 0; i-- {
		f.outline = append(f.outline, f.Floor[i])
	}

	return f.outline
}

// Label is the status text shown over the view.
func (f *Frame) Label() string {
	return fmt.Sprintf("Mode: %s | Zoom X: %.5f | Zoom Y: %.1f",
		f.Mode, f.State.ZoomX, f.State.ZoomY)
}

package viewer

import (
	"image/color"

	"github.com/piwi3910/PackView/internal/geometry"
	"github.com/piwi3910/PackView/internal/model"
)

// ShapeKind tells the renderer how to paint a shape.
type ShapeKind int

const (
	ShapeBin          ShapeKind = iota // bin outline
	ShapePlacement                     // filled rectangle with a thin border
	ShapeHover                         // highlight outline
	ShapeDragAccepted                  // dragged rectangle, drop would be accepted
	ShapeDragRejected                  // dragged rectangle, drop would be rejected
)

// Shape is one item of the draw list, in surface pixel coordinates.
type Shape struct {
	Kind  ShapeKind
	Index int // placement index, model.NoIndex for the bin
	Rect  geometry.Rect
	Fill  color.NRGBA
}

// FNV-1a 64-bit parameters.
const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// ColorForDimensions derives a stable fill color from a rectangle size so
// equal sizes share a color. Width and height are each mixed in as one
// 32-bit word per FNV-1a round, not byte by byte.
func ColorForDimensions(w, h int) color.NRGBA {
	var sum uint64 = fnvOffset64
	for _, v := range []uint32{uint32(w), uint32(h)} {
		sum ^= uint64(v)
		sum *= fnvPrime64
	}
	return color.NRGBA{R: uint8(sum), G: uint8(sum >> 8), B: uint8(sum >> 16), A: 255}
}

// Scene returns the draw list for the current state, back to front. The
// dragged rectangle is left out of the static pass and appended last at its
// offset position.
func (e *Engine) Scene() []Shape {
	tr, ok := e.Transform()
	if !ok {
		return nil
	}

	shapes := []Shape{{Kind: ShapeBin, Index: model.NoIndex, Rect: tr.BinRect()}}
	count := min(e.state.VisibleCount, e.total())

	for i := 0; i < count; i++ {
		if i == e.state.Dragged {
			continue
		}
		p := e.layout.Placements[i]
		shapes = append(shapes, Shape{
			Kind:  ShapePlacement,
			Index: i,
			Rect:  tr.PlacementRect(p),
			Fill:  ColorForDimensions(p.Width, p.Height),
		})
	}

	if h := e.state.Hovered; h != model.NoIndex && h < count && h != e.state.Dragged {
		shapes = append(shapes, Shape{
			Kind:  ShapeHover,
			Index: h,
			Rect:  tr.PlacementRect(e.layout.Placements[h]),
		})
	}

	if d := e.state.Dragged; d != model.NoIndex && d < count {
		p := e.layout.Placements[d]
		kind := ShapeDragRejected
		if ValidateDrop(e.layout, tr, d, e.state.DragOffsetX, e.state.DragOffsetY).Valid() {
			kind = ShapeDragAccepted
		}
		shapes = append(shapes, Shape{
			Kind:  kind,
			Index: d,
			Rect:  CandidateRect(e.layout, tr, d, e.state.DragOffsetX, e.state.DragOffsetY),
			Fill:  ColorForDimensions(p.Width, p.Height),
		})
	}
	return shapes
}

// Stats feeds the auxiliary displays next to the canvas.
type Stats struct {
	Visible     int
	Total       int
	ZoomPercent float64
	TotalHeight float64
	Animating   bool
	Hovered     *model.Placement
}

// Stats summarizes the current state.
func (e *Engine) Stats() Stats {
	s := Stats{
		Visible:     e.state.VisibleCount,
		Total:       e.total(),
		ZoomPercent: e.state.Zoom * 100,
		Animating:   e.animating,
	}
	if e.layout != nil {
		s.TotalHeight = e.layout.TotalHeight
		if h := e.state.Hovered; h != model.NoIndex && h < len(e.layout.Placements) {
			p := e.layout.Placements[h]
			s.Hovered = &p
		}
	}
	return s
}

package viewer

import (
	"github.com/piwi3910/PackView/internal/geometry"
	"github.com/piwi3910/PackView/internal/model"
)

// handlePointerDown decides the gesture mode for the whole press: a press
// outside the bin pans, a press on a revealed rectangle drags it.
func (e *Engine) handlePointerDown(x, y float64) []Output {
	tr, ok := e.Transform()
	if !ok {
		return nil
	}
	surface := geometry.Rect{W: e.surfaceW, H: e.surfaceH}
	if !surface.Contains(x, y) {
		return nil
	}

	var out []Output
	if e.state.IsPanning {
		out = append(out, PanEnded{})
	}
	e.state.clearGesture()

	if !tr.BinRect().Contains(x, y) {
		return append(out, e.startPan(x, y)...)
	}
	if e.animating {
		return out
	}
	idx := HitTest(e.layout, tr, e.state.VisibleCount, x, y)
	if idx == model.NoIndex {
		return out
	}
	return append(out, e.startDrag(idx, x, y)...)
}

func (e *Engine) handlePointerMove(x, y float64) []Output {
	switch {
	case e.state.IsPanning:
		return e.movePan(x, y)
	case e.state.IsDragging():
		return e.moveDrag(x, y)
	default:
		return e.setHover(e.HitTest(x, y), nil)
	}
}

func (e *Engine) handlePointerUp(x, y float64) []Output {
	switch {
	case e.state.IsPanning:
		return e.endPan(x, y)
	case e.state.IsDragging():
		return e.endDrag(x, y)
	default:
		return nil
	}
}

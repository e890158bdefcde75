package viewer

import (
	"github.com/piwi3910/PackView/internal/geometry"
	"github.com/piwi3910/PackView/internal/model"
)

// HitTest returns the index of the topmost revealed placement containing the
// screen point, or model.NoIndex. Only the first visible placements are
// considered, and later placements win because they are drawn on top.
func HitTest(layout *model.LayoutResult, tr geometry.Transform, visible int, px, py float64) int {
	if layout == nil {
		return model.NoIndex
	}
	count := min(visible, len(layout.Placements))
	for i := count - 1; i >= 0; i-- {
		if tr.PlacementRect(layout.Placements[i]).Contains(px, py) {
			return i
		}
	}
	return model.NoIndex
}

// HitTest resolves a surface point against the current view.
func (e *Engine) HitTest(px, py float64) int {
	tr, ok := e.Transform()
	if !ok {
		return model.NoIndex
	}
	return HitTest(e.layout, tr, e.state.VisibleCount, px, py)
}

package viewer

import (
	"log/slog"

	"github.com/piwi3910/PackView/internal/geometry"
	"github.com/piwi3910/PackView/internal/model"
)

// DropResult is the validation of a dragged rectangle's candidate position.
// NewX and NewY are advisory bin coordinates; the layout is never modified.
type DropResult struct {
	Inside     bool
	Intersects bool
	NewX       float64
	NewY       float64
}

// Valid reports whether the candidate position would be accepted.
func (r DropResult) Valid() bool {
	return r.Inside && !r.Intersects
}

// CandidateRect returns the screen rectangle of placement idx shifted by the drag offset.
func CandidateRect(layout *model.LayoutResult, tr geometry.Transform, idx int, offsetX, offsetY float64) geometry.Rect {
	return tr.PlacementRect(layout.Placements[idx]).Offset(offsetX, offsetY)
}

// Overlaps reports whether candidate overlaps any placement other than skip.
// It stops at the first overlap.
func Overlaps(layout *model.LayoutResult, tr geometry.Transform, skip int, candidate geometry.Rect) bool {
	for i, other := range layout.Placements {
		if i == skip {
			continue
		}
		if candidate.Intersects(tr.PlacementRect(other)) {
			return true
		}
	}
	return false
}

// ValidateDrop checks the candidate position of placement idx moved by a
// pixel offset: containment in the bin, overlap with every other placement,
// and the equivalent bin-space position.
func ValidateDrop(layout *model.LayoutResult, tr geometry.Transform, idx int, offsetX, offsetY float64) DropResult {
	if layout == nil || idx < 0 || idx >= len(layout.Placements) {
		return DropResult{}
	}
	p := layout.Placements[idx]
	candidate := CandidateRect(layout, tr, idx, offsetX, offsetY)
	dx, dy := tr.DeltaToBin(offsetX, offsetY)

	return DropResult{
		Inside:     tr.BinRect().ContainsRect(candidate),
		Intersects: Overlaps(layout, tr, idx, candidate),
		NewX:       p.X + dx,
		NewY:       p.Y + dy,
	}
}

func (e *Engine) startDrag(idx int, x, y float64) []Output {
	e.state.Dragged = idx
	e.state.DragOffsetX = 0
	e.state.DragOffsetY = 0
	e.lastX, e.lastY = x, y
	return []Output{DragStarted{Index: idx}}
}

func (e *Engine) moveDrag(x, y float64) []Output {
	e.state.DragOffsetX += x - e.lastX
	e.state.DragOffsetY += y - e.lastY
	e.lastX, e.lastY = x, y

	moved := DragMoved{
		Index:   e.state.Dragged,
		OffsetX: e.state.DragOffsetX,
		OffsetY: e.state.DragOffsetY,
	}
	if tr, ok := e.Transform(); ok {
		moved.Result = ValidateDrop(e.layout, tr, e.state.Dragged, e.state.DragOffsetX, e.state.DragOffsetY)
	}
	return []Output{moved}
}

func (e *Engine) endDrag(x, y float64) []Output {
	e.state.DragOffsetX += x - e.lastX
	e.state.DragOffsetY += y - e.lastY

	idx := e.state.Dragged
	var result DropResult
	if tr, ok := e.Transform(); ok {
		result = ValidateDrop(e.layout, tr, idx, e.state.DragOffsetX, e.state.DragOffsetY)
	}
	e.state.clearGesture()

	e.logger.Debug("drag ended",
		slog.Int("index", idx),
		slog.Bool("inside", result.Inside),
		slog.Bool("intersects", result.Intersects),
		slog.Float64("new_x", result.NewX),
		slog.Float64("new_y", result.NewY),
	)
	return []Output{DragEnded{Index: idx, Result: result}}
}

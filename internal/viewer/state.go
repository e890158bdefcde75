package viewer

import "github.com/piwi3910/PackView/internal/model"

// ViewState is the transient interaction state. It is never persisted.
type ViewState struct {
	Zoom         float64
	PanX         float64
	PanY         float64
	VisibleCount int
	Hovered      int // model.NoIndex when nothing is hovered
	Dragged      int // model.NoIndex when no drag is in progress
	DragOffsetX  float64
	DragOffsetY  float64
	IsPanning    bool
}

// NewViewState returns an idle state at the given zoom.
func NewViewState(zoom float64) ViewState {
	return ViewState{
		Zoom:    model.ClampZoom(zoom),
		Hovered: model.NoIndex,
		Dragged: model.NoIndex,
	}
}

// IsDragging reports whether a rectangle drag is in progress.
func (s ViewState) IsDragging() bool {
	return s.Dragged != model.NoIndex
}

// clearGesture abandons any in-flight pan or drag.
func (s *ViewState) clearGesture() {
	s.IsPanning = false
	s.Dragged = model.NoIndex
	s.DragOffsetX = 0
	s.DragOffsetY = 0
}

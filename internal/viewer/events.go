package viewer

import "github.com/piwi3910/PackView/internal/model"

// Event is an input consumed by Engine.Dispatch.
type Event interface{ isEvent() }

// Resize reports the drawing surface size in pixels.
type Resize struct{ Width, Height float64 }

// Wheel is a scroll input. Delta is in lines unless Pixels is set.
type Wheel struct {
	Delta  float64
	Pixels bool
}

// PointerDown, PointerMove and PointerUp carry surface-local pixel positions.
type PointerDown struct{ X, Y float64 }
type PointerMove struct{ X, Y float64 }
type PointerUp struct{ X, Y float64 }

// Tick advances the reveal animation by one step.
type Tick struct{}

// SetSpeed changes the reveal tick period in milliseconds.
type SetSpeed struct{ Millis float64 }

// Load replaces the displayed layout and restarts the reveal.
type Load struct{ Layout *model.LayoutResult }

// Unload removes the displayed layout.
type Unload struct{}

// ResetView restores zoom 1 and zero pan.
type ResetView struct{}

// SkipReveal shows every placement at once.
type SkipReveal struct{}

func (Resize) isEvent()      {}
func (Wheel) isEvent()       {}
func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (Tick) isEvent()        {}
func (SetSpeed) isEvent()    {}
func (Load) isEvent()        {}
func (Unload) isEvent()      {}
func (ResetView) isEvent()   {}
func (SkipReveal) isEvent()  {}

// Output describes one state change produced by Dispatch. Presentation layers
// use outputs to decide what to re-render and which labels to update.
type Output interface{ isOutput() }

type ZoomChanged struct{ Zoom float64 }
type PanStarted struct{ X, Y float64 }
type PanMoved struct{ PanX, PanY float64 }
type PanEnded struct{}

// HoverChanged carries the new hovered index, or model.NoIndex.
type HoverChanged struct{ Index int }

type DragStarted struct{ Index int }

// DragMoved reports the live offset and whether a drop here would be accepted.
type DragMoved struct {
	Index            int
	OffsetX, OffsetY float64
	Result           DropResult
}

// DragEnded carries the validation of the final candidate position.
type DragEnded struct {
	Index  int
	Result DropResult
}

type RevealTicked struct{ Visible, Total int }
type RevealFinished struct{ Total int }
type LayoutLoaded struct{ Total int }
type LayoutUnloaded struct{}
type SpeedChanged struct{ Millis float64 }
type ViewReset struct{}

func (ZoomChanged) isOutput()    {}
func (PanStarted) isOutput()     {}
func (PanMoved) isOutput()       {}
func (PanEnded) isOutput()       {}
func (HoverChanged) isOutput()   {}
func (DragStarted) isOutput()    {}
func (DragMoved) isOutput()      {}
func (DragEnded) isOutput()      {}
func (RevealTicked) isOutput()   {}
func (RevealFinished) isOutput() {}
func (LayoutLoaded) isOutput()   {}
func (LayoutUnloaded) isOutput() {}
func (SpeedChanged) isOutput()   {}
func (ViewReset) isOutput()      {}

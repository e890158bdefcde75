// Package viewer is the interaction engine of the bin layout viewer. It turns
// pointer, wheel and timer events into changes of a ViewState and reports
// those changes as outputs for a presentation layer.
package viewer

import (
	"log/slog"
	"time"

	"github.com/piwi3910/PackView/internal/geometry"
	applog "github.com/piwi3910/PackView/internal/log"
	"github.com/piwi3910/PackView/internal/model"
)

// Engine owns the ViewState for one displayed layout. The layout itself is
// read-only. Engine is not safe for concurrent use: events must be
// dispatched from a single goroutine, one at a time.
type Engine struct {
	layout    *model.LayoutResult
	state     ViewState
	animating bool
	speedMs   float64

	surfaceW, surfaceH float64
	lastX, lastY       float64

	logger *slog.Logger
}

// NewEngine creates an idle engine with no layout loaded.
func NewEngine(cfg model.AppConfig) *Engine {
	speed := cfg.AnimationMs
	if speed == 0 {
		speed = model.DefaultAnimationMs
	}
	zoom := cfg.InitialZoom
	if zoom == 0 {
		zoom = 1
	}
	return &Engine{
		state:   NewViewState(zoom),
		speedMs: model.ClampAnimationMs(speed),
		logger:  applog.WithComponent("viewer"),
	}
}

// State returns a copy of the current view state.
func (e *Engine) State() ViewState { return e.state }

// Layout returns the displayed layout, or nil.
func (e *Engine) Layout() *model.LayoutResult { return e.layout }

// Animating reports whether a reveal is in progress.
func (e *Engine) Animating() bool { return e.animating }

// SpeedMs returns the reveal tick period in milliseconds.
func (e *Engine) SpeedMs() float64 { return e.speedMs }

// TickInterval returns the period the external timer should wait before the next Tick.
func (e *Engine) TickInterval() time.Duration {
	return time.Duration(e.speedMs * float64(time.Millisecond))
}

// Transform returns the current bin-to-screen mapping. The boolean is false
// when no layout is loaded or either the bin or the surface is degenerate.
func (e *Engine) Transform() (geometry.Transform, bool) {
	return geometry.ForLayout(e.layout, e.surfaceW, e.surfaceH, e.state.Zoom, e.state.PanX, e.state.PanY)
}

func (e *Engine) total() int {
	if e.layout == nil {
		return 0
	}
	return len(e.layout.Placements)
}

// Dispatch handles one event to completion and returns the resulting changes.
func (e *Engine) Dispatch(ev Event) []Output {
	switch ev := ev.(type) {
	case Resize:
		e.surfaceW, e.surfaceH = ev.Width, ev.Height
		return nil
	case Wheel:
		return e.handleWheel(ev)
	case PointerDown:
		return e.handlePointerDown(ev.X, ev.Y)
	case PointerMove:
		return e.handlePointerMove(ev.X, ev.Y)
	case PointerUp:
		return e.handlePointerUp(ev.X, ev.Y)
	case Tick:
		return e.handleTick()
	case SetSpeed:
		return e.handleSetSpeed(ev.Millis)
	case Load:
		if ev.Layout == nil {
			return e.handleUnload()
		}
		return e.handleLoad(ev.Layout)
	case Unload:
		return e.handleUnload()
	case ResetView:
		return e.handleResetView()
	case SkipReveal:
		return e.handleSkipReveal()
	default:
		return nil
	}
}

func (e *Engine) handleLoad(layout *model.LayoutResult) []Output {
	e.layout = layout
	e.state.VisibleCount = 0
	e.state.Hovered = model.NoIndex
	e.state.clearGesture()
	e.animating = true

	e.logger.Info("layout loaded",
		slog.Int("placements", len(layout.Placements)),
		slog.Int("bin_width", layout.BinWidth),
		slog.Float64("total_height", layout.TotalHeight),
	)
	if !layout.Valid() {
		e.logger.Warn("layout has non-positive bin extents, drawing disabled")
	}
	return []Output{LayoutLoaded{Total: len(layout.Placements)}}
}

func (e *Engine) handleUnload() []Output {
	if e.layout == nil {
		return nil
	}
	e.layout = nil
	e.animating = false
	e.state.VisibleCount = 0
	e.state.Hovered = model.NoIndex
	e.state.clearGesture()
	return []Output{LayoutUnloaded{}}
}

// setHover updates the hovered index and reports a change if there was one.
func (e *Engine) setHover(idx int, out []Output) []Output {
	if e.state.Hovered == idx {
		return out
	}
	e.state.Hovered = idx
	return append(out, HoverChanged{Index: idx})
}

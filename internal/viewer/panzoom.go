package viewer

import "github.com/piwi3910/PackView/internal/model"

// Zoom factors applied per wheel notch.
const (
	ZoomInFactor  = 1.1
	ZoomOutFactor = 0.9
)

// pixelsPerLine converts pixel scroll deltas into line units.
const pixelsPerLine = 100.0

// WheelFactor returns the zoom factor for a scroll delta, or 0 when the
// delta carries no vertical direction.
func WheelFactor(delta float64, pixels bool) float64 {
	if pixels {
		delta /= pixelsPerLine
	}
	switch {
	case delta > 0:
		return ZoomInFactor
	case delta < 0:
		return ZoomOutFactor
	default:
		return 0
	}
}

func (e *Engine) handleWheel(ev Wheel) []Output {
	if _, ok := e.Transform(); !ok {
		return nil
	}
	factor := WheelFactor(ev.Delta, ev.Pixels)
	if factor == 0 {
		return nil
	}
	zoom := model.ClampZoom(e.state.Zoom * factor)
	if zoom == e.state.Zoom {
		return nil
	}
	e.state.Zoom = zoom
	return []Output{ZoomChanged{Zoom: zoom}}
}

func (e *Engine) startPan(x, y float64) []Output {
	e.state.IsPanning = true
	e.lastX, e.lastY = x, y
	out := []Output{PanStarted{X: x, Y: y}}
	return e.setHover(model.NoIndex, out)
}

func (e *Engine) movePan(x, y float64) []Output {
	e.state.PanX += x - e.lastX
	e.state.PanY += y - e.lastY
	e.lastX, e.lastY = x, y
	out := []Output{PanMoved{PanX: e.state.PanX, PanY: e.state.PanY}}
	return e.setHover(model.NoIndex, out)
}

func (e *Engine) endPan(x, y float64) []Output {
	var out []Output
	if x != e.lastX || y != e.lastY {
		out = e.movePan(x, y)
	}
	e.state.IsPanning = false
	return append(out, PanEnded{})
}

func (e *Engine) handleResetView() []Output {
	e.state.Zoom = 1
	e.state.PanX = 0
	e.state.PanY = 0
	return []Output{ViewReset{}, ZoomChanged{Zoom: 1}}
}

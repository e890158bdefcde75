package viewer

import "github.com/piwi3910/PackView/internal/model"

func (e *Engine) handleTick() []Output {
	if !e.animating {
		return nil
	}
	if e.layout == nil {
		e.animating = false
		return nil
	}
	total := len(e.layout.Placements)
	if e.state.VisibleCount < total {
		e.state.VisibleCount++
		return []Output{RevealTicked{Visible: e.state.VisibleCount, Total: total}}
	}
	e.animating = false
	return []Output{RevealFinished{Total: total}}
}

func (e *Engine) handleSetSpeed(ms float64) []Output {
	clamped := model.ClampAnimationMs(ms)
	if clamped == e.speedMs {
		return nil
	}
	e.speedMs = clamped
	return []Output{SpeedChanged{Millis: clamped}}
}

func (e *Engine) handleSkipReveal() []Output {
	if !e.animating || e.layout == nil {
		return nil
	}
	total := len(e.layout.Placements)
	e.state.VisibleCount = total
	e.animating = false
	return []Output{RevealTicked{Visible: total, Total: total}, RevealFinished{Total: total}}
}

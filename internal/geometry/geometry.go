// Package geometry maps between bin space (origin bottom-left, y up) and the
// pixel space of a drawing surface (origin top-left, y down).
package geometry

import (
	"math"

	"github.com/piwi3910/PackView/internal/model"
)

// Rect is an axis-aligned rectangle in screen space. Y grows downward.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Offset returns the rectangle shifted by dx, dy pixels.
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Contains reports whether the point lies inside r, boundaries included.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px <= r.Right() && py >= r.Y && py <= r.Bottom()
}

// ContainsRect reports whether all four corners of o lie inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return r.Contains(o.X, o.Y) &&
		r.Contains(o.Right(), o.Y) &&
		r.Contains(o.X, o.Bottom()) &&
		r.Contains(o.Right(), o.Bottom())
}

// Intersects reports whether r and o overlap with positive area.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return !(r.Right() <= o.X ||
		r.X >= o.Right() ||
		r.Bottom() <= o.Y ||
		r.Y >= o.Bottom())
}

// Transform holds the fitted scale and origin for one surface size, zoom and pan.
type Transform struct {
	BinWidth    float64
	TotalHeight float64
	Scale       float64
	OriginX     float64
	OriginY     float64
}

// NewTransform fits the bin into a W x H surface preserving aspect ratio,
// then applies zoom and pan. It returns false when either the bin or the
// surface has a non-positive extent; callers must then skip drawing and
// hit-testing.
func NewTransform(binWidth int, totalHeight, surfaceW, surfaceH, zoom, panX, panY float64) (Transform, bool) {
	binW := float64(binWidth)
	if binW <= 0 || totalHeight <= 0 || surfaceW <= 0 || surfaceH <= 0 || zoom <= 0 {
		return Transform{}, false
	}

	scale := math.Min(surfaceW/binW, surfaceH/totalHeight) * zoom
	drawW := binW * scale
	drawH := totalHeight * scale

	return Transform{
		BinWidth:    binW,
		TotalHeight: totalHeight,
		Scale:       scale,
		OriginX:     (surfaceW-drawW)/2 + panX,
		OriginY:     (surfaceH-drawH)/2 + panY,
	}, true
}

// ForLayout is NewTransform for a loaded layout.
func ForLayout(layout *model.LayoutResult, surfaceW, surfaceH, zoom, panX, panY float64) (Transform, bool) {
	if layout == nil {
		return Transform{}, false
	}
	return NewTransform(layout.BinWidth, layout.TotalHeight, surfaceW, surfaceH, zoom, panX, panY)
}

// BinRect returns the bin outline in screen space.
func (t Transform) BinRect() Rect {
	return Rect{
		X: t.OriginX,
		Y: t.OriginY,
		W: t.BinWidth * t.Scale,
		H: t.TotalHeight * t.Scale,
	}
}

// PlacementRect returns the screen rectangle of a placement. The top edge
// in screen space corresponds to p.Y+p.Height in bin space.
func (t Transform) PlacementRect(p model.Placement) Rect {
	return Rect{
		X: t.OriginX + p.X*t.Scale,
		Y: t.OriginY + (t.TotalHeight-(p.Y+float64(p.Height)))*t.Scale,
		W: float64(p.Width) * t.Scale,
		H: float64(p.Height) * t.Scale,
	}
}

// DeltaToBin converts a pixel delta to a bin-space delta.
// Screen y runs opposite to bin y, so the vertical component is negated.
func (t Transform) DeltaToBin(dx, dy float64) (float64, float64) {
	return dx / t.Scale, -dy / t.Scale
}

// ScreenToBin converts a screen point to bin coordinates.
func (t Transform) ScreenToBin(sx, sy float64) (float64, float64) {
	return (sx - t.OriginX) / t.Scale, t.TotalHeight - (sy-t.OriginY)/t.Scale
}

// BinToScreen converts a bin point to screen coordinates.
func (t Transform) BinToScreen(bx, by float64) (float64, float64) {
	return t.OriginX + bx*t.Scale, t.OriginY + (t.TotalHeight-by)*t.Scale
}

// PlacementAt returns the bin-space lower-left corner of a rectangle whose
// screen rectangle is r.
func (t Transform) PlacementAt(r Rect) (float64, float64) {
	return t.ScreenToBin(r.X, r.Bottom())
}

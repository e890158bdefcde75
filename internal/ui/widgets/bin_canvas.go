// Package widgets holds custom Fyne widgets for the layout viewer.
package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PackView/internal/geometry"
	"github.com/piwi3910/PackView/internal/viewer"
)

var (
	backgroundColor = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	binFillColor    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	binStrokeColor  = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
	borderColor     = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	hoverColor      = color.NRGBA{R: 255, G: 193, B: 7, A: 255}
	acceptedColor   = color.NRGBA{R: 46, G: 160, B: 67, A: 255}
	rejectedColor   = color.NRGBA{R: 220, G: 53, B: 69, A: 255}
)

// BinCanvas draws the engine's scene and forwards pointer, hover and wheel
// input to it. All engine access happens on the Fyne event goroutine.
type BinCanvas struct {
	widget.BaseWidget

	engine  *viewer.Engine
	pressed bool
	lastPos fyne.Position

	// OnOutputs is called with the changes produced by every dispatched event.
	OnOutputs func([]viewer.Output)
}

var (
	_ desktop.Mouseable = (*BinCanvas)(nil)
	_ desktop.Hoverable = (*BinCanvas)(nil)
	_ fyne.Draggable    = (*BinCanvas)(nil)
	_ fyne.Scrollable   = (*BinCanvas)(nil)
)

// NewBinCanvas creates a canvas bound to an engine.
func NewBinCanvas(engine *viewer.Engine) *BinCanvas {
	bc := &BinCanvas{engine: engine}
	bc.ExtendBaseWidget(bc)
	return bc
}

// Dispatch sends an event to the engine, redraws when anything changed and
// reports the outputs to OnOutputs.
func (bc *BinCanvas) Dispatch(ev viewer.Event) []viewer.Output {
	out := bc.engine.Dispatch(ev)
	if len(out) == 0 {
		return nil
	}
	bc.Refresh()
	if bc.OnOutputs != nil {
		bc.OnOutputs(out)
	}
	return out
}

// ─── Input ─────────────────────────────────────────────────

func (bc *BinCanvas) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	bc.pressed = true
	bc.lastPos = e.Position
	bc.Dispatch(viewer.PointerDown{X: float64(e.Position.X), Y: float64(e.Position.Y)})
}

func (bc *BinCanvas) MouseUp(e *desktop.MouseEvent) {
	if !bc.pressed {
		return
	}
	bc.pressed = false
	bc.Dispatch(viewer.PointerUp{X: float64(e.Position.X), Y: float64(e.Position.Y)})
}

func (bc *BinCanvas) Dragged(e *fyne.DragEvent) {
	bc.lastPos = e.Position
	bc.Dispatch(viewer.PointerMove{X: float64(e.Position.X), Y: float64(e.Position.Y)})
}

// DragEnd finishes the gesture when the release is not delivered as MouseUp.
func (bc *BinCanvas) DragEnd() {
	if !bc.pressed {
		return
	}
	bc.pressed = false
	bc.Dispatch(viewer.PointerUp{X: float64(bc.lastPos.X), Y: float64(bc.lastPos.Y)})
}

func (bc *BinCanvas) MouseIn(e *desktop.MouseEvent) {
	bc.MouseMoved(e)
}

func (bc *BinCanvas) MouseMoved(e *desktop.MouseEvent) {
	if bc.pressed {
		return
	}
	bc.Dispatch(viewer.PointerMove{X: float64(e.Position.X), Y: float64(e.Position.Y)})
}

// MouseOut moves the pointer off the surface so the hover clears.
func (bc *BinCanvas) MouseOut() {
	if bc.pressed {
		return
	}
	bc.Dispatch(viewer.PointerMove{X: -1, Y: -1})
}

func (bc *BinCanvas) Scrolled(e *fyne.ScrollEvent) {
	bc.Dispatch(viewer.Wheel{Delta: float64(e.Scrolled.DY), Pixels: true})
}

// ─── Rendering ─────────────────────────────────────────────

func (bc *BinCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &binCanvasRenderer{bc: bc, bg: canvas.NewRectangle(backgroundColor)}
	r.rebuild()
	return r
}

type binCanvasRenderer struct {
	bc      *BinCanvas
	bg      *canvas.Rectangle
	objects []fyne.CanvasObject
	size    fyne.Size
}

func (r *binCanvasRenderer) Layout(size fyne.Size) {
	r.size = size
	r.bc.engine.Dispatch(viewer.Resize{Width: float64(size.Width), Height: float64(size.Height)})
	r.rebuild()
}

func (r *binCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

func (r *binCanvasRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.bc)
}

func (r *binCanvasRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *binCanvasRenderer) Destroy() {}

// rebuild turns the scene into canvas objects, back to front.
func (r *binCanvasRenderer) rebuild() {
	r.bg.Resize(r.size)
	r.bg.Move(fyne.NewPos(0, 0))
	r.objects = []fyne.CanvasObject{r.bg}

	for _, s := range r.bc.engine.Scene() {
		rect := canvas.NewRectangle(color.Transparent)
		place(rect, s.Rect)

		switch s.Kind {
		case viewer.ShapeBin:
			rect.FillColor = binFillColor
			rect.StrokeColor = binStrokeColor
			rect.StrokeWidth = 2
		case viewer.ShapePlacement:
			rect.FillColor = s.Fill
			rect.StrokeColor = borderColor
			rect.StrokeWidth = 1
		case viewer.ShapeHover:
			rect.StrokeColor = hoverColor
			rect.StrokeWidth = 3
		case viewer.ShapeDragAccepted, viewer.ShapeDragRejected:
			fill := s.Fill
			fill.A = 170
			rect.FillColor = fill
			rect.StrokeColor = acceptedColor
			if s.Kind == viewer.ShapeDragRejected {
				rect.StrokeColor = rejectedColor
			}
			rect.StrokeWidth = 2
		}
		r.objects = append(r.objects, rect)

		if s.Kind == viewer.ShapePlacement && s.Rect.W > 40 && s.Rect.H > 16 {
			r.objects = append(r.objects, r.label(s))
		}
	}
}

// label prints the placement size inside rectangles big enough to hold it.
func (r *binCanvasRenderer) label(s viewer.Shape) fyne.CanvasObject {
	layout := r.bc.engine.Layout()
	p := layout.Placements[s.Index]
	text := canvas.NewText(fmt.Sprintf("%dx%d", p.Width, p.Height), color.Black)
	text.TextSize = 10
	text.Move(fyne.NewPos(float32(s.Rect.X)+3, float32(s.Rect.Y)+2))
	return text
}

func place(obj fyne.CanvasObject, rect geometry.Rect) {
	obj.Move(fyne.NewPos(float32(rect.X), float32(rect.Y)))
	obj.Resize(fyne.NewSize(float32(rect.W), float32(rect.H)))
}

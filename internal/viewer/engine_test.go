package viewer

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PackView/internal/model"
)

// threeSquares is a 10x10 bin with the upper-right quadrant left free.
//
// On a 200x100 surface the scale is 10 and the bin is drawn at x 50..150:
//
//	placement 0: x  50..100, y 50..100
//	placement 1: x 100..150, y 50..100
//	placement 2: x  50..100, y  0..50
func threeSquares() *model.LayoutResult {
	return &model.LayoutResult{
		BinWidth:    10,
		TotalHeight: 10,
		Placements: []model.Placement{
			{X: 0, Y: 0, Width: 5, Height: 5},
			{X: 5, Y: 0, Width: 5, Height: 5},
			{X: 0, Y: 5, Width: 5, Height: 5},
		},
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(model.DefaultAppConfig())
	e.Dispatch(Resize{Width: 200, Height: 100})
	return e
}

// loadedEngine returns an engine with threeSquares fully revealed.
func loadedEngine(t *testing.T) *Engine {
	t.Helper()
	e := newTestEngine(t)
	e.Dispatch(Load{Layout: threeSquares()})
	e.Dispatch(SkipReveal{})
	require.False(t, e.Animating())
	require.Equal(t, 3, e.State().VisibleCount)
	return e
}

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine(model.AppConfig{})
	st := e.State()
	assert.Equal(t, 1.0, st.Zoom)
	assert.Equal(t, model.NoIndex, st.Hovered)
	assert.Equal(t, model.NoIndex, st.Dragged)
	assert.Equal(t, model.DefaultAnimationMs, e.SpeedMs())
	assert.Nil(t, e.Layout())
	assert.False(t, e.Animating())
}

func TestHitTestZOrderAndVisibility(t *testing.T) {
	e := newTestEngine(t)
	e.Dispatch(Load{Layout: threeSquares()})

	// The shared corner (100, 50) lies on all three rectangles.
	assert.Equal(t, model.NoIndex, e.HitTest(100, 50), "nothing revealed yet")

	e.Dispatch(Tick{})
	assert.Equal(t, 0, e.HitTest(100, 50))
	e.Dispatch(Tick{})
	assert.Equal(t, 1, e.HitTest(100, 50))
	e.Dispatch(Tick{})
	assert.Equal(t, 2, e.HitTest(100, 50), "last drawn wins")

	assert.Equal(t, model.NoIndex, e.HitTest(125, 25), "free quadrant")
	assert.Equal(t, model.NoIndex, e.HitTest(10, 50), "outside the bin")
}

func TestHitTestNeverExceedsVisibleCount(t *testing.T) {
	layout := threeSquares()
	e := newTestEngine(t)
	e.Dispatch(Load{Layout: layout})
	tr, ok := e.Transform()
	require.True(t, ok)

	for visible := 0; visible <= 5; visible++ {
		for x := 0.0; x <= 200; x += 5 {
			for y := 0.0; y <= 100; y += 5 {
				if idx := HitTest(layout, tr, visible, x, y); idx != model.NoIndex {
					assert.Less(t, idx, visible)
				}
			}
		}
	}
}

func TestRevealTakesExactlyNTicks(t *testing.T) {
	e := newTestEngine(t)
	out := e.Dispatch(Load{Layout: threeSquares()})
	assert.Equal(t, []Output{LayoutLoaded{Total: 3}}, out)
	assert.True(t, e.Animating())
	assert.Equal(t, 0, e.State().VisibleCount)

	prev := 0
	for i := 1; i <= 3; i++ {
		out = e.Dispatch(Tick{})
		require.Equal(t, []Output{RevealTicked{Visible: i, Total: 3}}, out)
		assert.Equal(t, prev+1, e.State().VisibleCount)
		prev = e.State().VisibleCount
	}
	assert.True(t, e.Animating(), "finishing takes one more tick")

	out = e.Dispatch(Tick{})
	assert.Equal(t, []Output{RevealFinished{Total: 3}}, out)
	assert.False(t, e.Animating())

	assert.Nil(t, e.Dispatch(Tick{}), "idle ticks are ignored")
	assert.Equal(t, 3, e.State().VisibleCount)
}

func TestRevealEmptyLayout(t *testing.T) {
	e := newTestEngine(t)
	e.Dispatch(Load{Layout: &model.LayoutResult{BinWidth: 10, TotalHeight: 10}})
	assert.Equal(t, []Output{RevealFinished{Total: 0}}, e.Dispatch(Tick{}))
	assert.False(t, e.Animating())
}

func TestSkipReveal(t *testing.T) {
	e := newTestEngine(t)
	e.Dispatch(Load{Layout: threeSquares()})
	e.Dispatch(Tick{})

	out := e.Dispatch(SkipReveal{})
	assert.Equal(t, []Output{RevealTicked{Visible: 3, Total: 3}, RevealFinished{Total: 3}}, out)
	assert.Nil(t, e.Dispatch(SkipReveal{}))
}

func TestSetSpeedClamps(t *testing.T) {
	e := newTestEngine(t)

	assert.Equal(t, []Output{SpeedChanged{Millis: model.MinAnimationMs}}, e.Dispatch(SetSpeed{Millis: 1}))
	assert.Equal(t, []Output{SpeedChanged{Millis: model.MaxAnimationMs}}, e.Dispatch(SetSpeed{Millis: 5000}))
	assert.Nil(t, e.Dispatch(SetSpeed{Millis: 900}), "already at max")
	assert.Equal(t, []Output{SpeedChanged{Millis: 120}}, e.Dispatch(SetSpeed{Millis: 120}))
	assert.Equal(t, 120*1e6, float64(e.TickInterval()))
}

func TestWheelZoomClamps(t *testing.T) {
	e := loadedEngine(t)

	for i := 0; i < 200; i++ {
		e.Dispatch(Wheel{Delta: 1})
		z := e.State().Zoom
		require.GreaterOrEqual(t, z, model.MinZoom)
		require.LessOrEqual(t, z, model.MaxZoom)
	}
	assert.Equal(t, model.MaxZoom, e.State().Zoom)
	assert.Nil(t, e.Dispatch(Wheel{Delta: 1}), "no change at the limit")

	for i := 0; i < 200; i++ {
		e.Dispatch(Wheel{Delta: -3})
	}
	assert.Equal(t, model.MinZoom, e.State().Zoom)
}

func TestWheelFactor(t *testing.T) {
	assert.Equal(t, ZoomInFactor, WheelFactor(1, false))
	assert.Equal(t, ZoomOutFactor, WheelFactor(-0.2, false))
	assert.Equal(t, ZoomInFactor, WheelFactor(40, true))
	assert.Equal(t, ZoomOutFactor, WheelFactor(-250, true))
	assert.Zero(t, WheelFactor(0, false))
	assert.Zero(t, WheelFactor(0, true))
}

func TestWheelSingleStep(t *testing.T) {
	e := loadedEngine(t)
	out := e.Dispatch(Wheel{Delta: 120, Pixels: true})
	require.Len(t, out, 1)
	assert.InDelta(t, 1.1, out[0].(ZoomChanged).Zoom, 1e-9)

	assert.Nil(t, e.Dispatch(Wheel{Delta: 0}))
	assert.InDelta(t, 1.1, e.State().Zoom, 1e-9)
}

func TestPanAccumulatesAndSuppressesHover(t *testing.T) {
	e := loadedEngine(t)

	assert.Equal(t, []Output{HoverChanged{Index: 0}}, e.Dispatch(PointerMove{X: 75, Y: 75}))

	out := e.Dispatch(PointerDown{X: 10, Y: 50})
	assert.Equal(t, []Output{PanStarted{X: 10, Y: 50}, HoverChanged{Index: model.NoIndex}}, out)
	assert.True(t, e.State().IsPanning)

	assert.Equal(t, []Output{PanMoved{PanX: 10, PanY: 10}}, e.Dispatch(PointerMove{X: 20, Y: 60}))
	assert.Equal(t, []Output{PanMoved{PanX: 15, PanY: 10}}, e.Dispatch(PointerMove{X: 25, Y: 60}))

	// Moving across a rectangle while panning must not hover it.
	e.Dispatch(PointerMove{X: 90, Y: 80})
	assert.Equal(t, model.NoIndex, e.State().Hovered)

	out = e.Dispatch(PointerUp{X: 90, Y: 80})
	assert.Equal(t, []Output{PanEnded{}}, out)

	st := e.State()
	assert.False(t, st.IsPanning)
	assert.Equal(t, 80.0, st.PanX)
	assert.Equal(t, 30.0, st.PanY)
}

func TestPointerUpAppliesFinalPanDelta(t *testing.T) {
	e := loadedEngine(t)
	e.Dispatch(PointerDown{X: 10, Y: 10})
	out := e.Dispatch(PointerUp{X: 14, Y: 7})
	assert.Equal(t, []Output{PanMoved{PanX: 4, PanY: -3}, PanEnded{}}, out)
}

func TestDragBlockedWhileAnimating(t *testing.T) {
	e := newTestEngine(t)
	e.Dispatch(Load{Layout: threeSquares()})
	e.Dispatch(Tick{})
	e.Dispatch(Tick{})
	require.True(t, e.Animating())

	out := e.Dispatch(PointerDown{X: 75, Y: 75})
	assert.Empty(t, out)
	assert.False(t, e.State().IsDragging())
	assert.False(t, e.State().IsPanning, "a press inside the bin never pans")
}

func TestDragIntoFreeSpaceIsValid(t *testing.T) {
	e := loadedEngine(t)

	assert.Equal(t, []Output{DragStarted{Index: 1}}, e.Dispatch(PointerDown{X: 125, Y: 75}))

	out := e.Dispatch(PointerMove{X: 125, Y: 40})
	require.Len(t, out, 1)
	moved := out[0].(DragMoved)
	assert.Equal(t, 1, moved.Index)
	assert.Equal(t, -35.0, moved.OffsetY)
	assert.True(t, moved.Result.Valid())

	out = e.Dispatch(PointerUp{X: 125, Y: 25})
	require.Len(t, out, 1)
	ended := out[0].(DragEnded)
	assert.Equal(t, 1, ended.Index)
	assert.True(t, ended.Result.Valid(), "edges touching placements 0 and 2 are allowed")
	assert.InDelta(t, 5.0, ended.Result.NewX, 1e-9)
	assert.InDelta(t, 5.0, ended.Result.NewY, 1e-9, "moving up on screen moves up in the bin")

	st := e.State()
	assert.False(t, st.IsDragging())
	assert.Zero(t, st.DragOffsetX)
	assert.Zero(t, st.DragOffsetY)
	assert.Equal(t, 0.0, e.Layout().Placements[1].Y, "layout is never modified")
}

func TestDragOntoNeighbourIntersects(t *testing.T) {
	e := loadedEngine(t)
	e.Dispatch(PointerDown{X: 75, Y: 75})
	out := e.Dispatch(PointerUp{X: 100, Y: 75})
	res := out[0].(DragEnded).Result
	assert.True(t, res.Inside)
	assert.True(t, res.Intersects)
	assert.False(t, res.Valid())
	assert.InDelta(t, 2.5, res.NewX, 1e-9)
	assert.InDelta(t, 0.0, res.NewY, 1e-9)
}

func TestDragOutsideBinRejected(t *testing.T) {
	e := loadedEngine(t)
	e.Dispatch(PointerDown{X: 125, Y: 75})
	out := e.Dispatch(PointerUp{X: 126, Y: 75})
	res := out[0].(DragEnded).Result
	assert.False(t, res.Inside, "one pixel past the right edge")
	assert.False(t, res.Intersects)
	assert.False(t, res.Valid())
}

func TestValidateDropBounds(t *testing.T) {
	layout := threeSquares()
	e := newTestEngine(t)
	e.Dispatch(Load{Layout: layout})
	tr, _ := e.Transform()

	assert.Equal(t, DropResult{}, ValidateDrop(layout, tr, 7, 0, 0))
	assert.Equal(t, DropResult{}, ValidateDrop(nil, tr, 0, 0, 0))

	res := ValidateDrop(layout, tr, 2, 0, 0)
	assert.True(t, res.Valid(), "a rectangle in place does not collide with itself")
	assert.Equal(t, 0.0, res.NewX)
	assert.Equal(t, 5.0, res.NewY)
}

func TestSceneSkipsDraggedRectangle(t *testing.T) {
	e := loadedEngine(t)
	e.Dispatch(PointerDown{X: 125, Y: 75})
	e.Dispatch(PointerMove{X: 125, Y: 25})

	shapes := e.Scene()
	require.NotEmpty(t, shapes)
	assert.Equal(t, ShapeBin, shapes[0].Kind)

	for _, s := range shapes[:len(shapes)-1] {
		if s.Kind == ShapePlacement {
			assert.NotEqual(t, 1, s.Index)
		}
	}
	last := shapes[len(shapes)-1]
	assert.Equal(t, ShapeDragAccepted, last.Kind)
	assert.Equal(t, 1, last.Index)
	assert.Equal(t, 100.0, last.Rect.X)
	assert.Equal(t, 0.0, last.Rect.Y)

	e.Dispatch(PointerMove{X: 100, Y: 25})
	shapes = e.Scene()
	assert.Equal(t, ShapeDragRejected, shapes[len(shapes)-1].Kind)
}

func TestSceneHoverAndReveal(t *testing.T) {
	e := newTestEngine(t)
	e.Dispatch(Load{Layout: threeSquares()})
	assert.Len(t, e.Scene(), 1, "only the bin before the first tick")

	e.Dispatch(Tick{})
	e.Dispatch(Tick{})
	e.Dispatch(PointerMove{X: 125, Y: 75})

	shapes := e.Scene()
	require.Len(t, shapes, 4)
	assert.Equal(t, ShapeHover, shapes[3].Kind)
	assert.Equal(t, 1, shapes[3].Index)
}

func TestColorForDimensionsStable(t *testing.T) {
	assert.Equal(t, ColorForDimensions(4, 2), ColorForDimensions(4, 2))
	assert.NotEqual(t, ColorForDimensions(4, 2), ColorForDimensions(2, 4))
	assert.Equal(t, uint8(255), ColorForDimensions(1, 1).A)
}

func TestColorForDimensionsWordMixing(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 42, G: 144, B: 232, A: 255}, ColorForDimensions(1, 2))
	assert.Equal(t, color.NRGBA{R: 227, G: 223, B: 223, A: 255}, ColorForDimensions(4, 2))
}

func TestLoadResetsRevealKeepsView(t *testing.T) {
	e := loadedEngine(t)
	e.Dispatch(Wheel{Delta: 1})
	e.Dispatch(PointerDown{X: 10, Y: 10})
	e.Dispatch(PointerMove{X: 20, Y: 10})
	e.Dispatch(PointerUp{X: 20, Y: 10})
	e.Dispatch(PointerMove{X: 80, Y: 80})
	zoom := e.State().Zoom

	e.Dispatch(PointerDown{X: 10, Y: 10})
	out := e.Dispatch(Load{Layout: threeSquares()})
	assert.Equal(t, []Output{LayoutLoaded{Total: 3}}, out)

	st := e.State()
	assert.Equal(t, 0, st.VisibleCount)
	assert.Equal(t, model.NoIndex, st.Hovered)
	assert.False(t, st.IsPanning)
	assert.False(t, st.IsDragging())
	assert.Equal(t, zoom, st.Zoom)
	assert.Equal(t, 10.0, st.PanX)
	assert.True(t, e.Animating())
}

func TestUnload(t *testing.T) {
	e := loadedEngine(t)
	assert.Equal(t, []Output{LayoutUnloaded{}}, e.Dispatch(Unload{}))
	assert.Nil(t, e.Layout())
	assert.Nil(t, e.Dispatch(Unload{}))
	assert.Nil(t, e.Scene())
}

func TestResetView(t *testing.T) {
	e := loadedEngine(t)
	e.Dispatch(Wheel{Delta: 1})
	e.Dispatch(PointerDown{X: 10, Y: 10})
	e.Dispatch(PointerUp{X: 30, Y: 30})

	out := e.Dispatch(ResetView{})
	assert.Equal(t, []Output{ViewReset{}, ZoomChanged{Zoom: 1}}, out)
	st := e.State()
	assert.Equal(t, 1.0, st.Zoom)
	assert.Zero(t, st.PanX)
	assert.Zero(t, st.PanY)
}

func TestDegenerateSurfaceIsNoOp(t *testing.T) {
	e := NewEngine(model.DefaultAppConfig())
	e.Dispatch(Load{Layout: threeSquares()})
	e.Dispatch(SkipReveal{})

	assert.Nil(t, e.Dispatch(Wheel{Delta: 1}))
	assert.Nil(t, e.Dispatch(PointerDown{X: 0, Y: 0}))
	assert.Nil(t, e.Scene())
	assert.Equal(t, model.NoIndex, e.HitTest(0, 0))
	assert.Equal(t, 1.0, e.State().Zoom)
}

func TestDegenerateBinIsNoOp(t *testing.T) {
	e := newTestEngine(t)
	e.Dispatch(Load{Layout: &model.LayoutResult{BinWidth: 0, TotalHeight: 10, Placements: []model.Placement{{Width: 1, Height: 1}}}})
	e.Dispatch(SkipReveal{})

	_, ok := e.Transform()
	assert.False(t, ok)
	assert.Nil(t, e.Dispatch(Wheel{Delta: 1}))
	assert.Nil(t, e.Dispatch(PointerDown{X: 100, Y: 50}))
	assert.Nil(t, e.Scene())
}

func TestPointerOutsideSurfaceIgnored(t *testing.T) {
	e := loadedEngine(t)
	assert.Nil(t, e.Dispatch(PointerDown{X: 250, Y: 50}))
	assert.False(t, e.State().IsPanning)
}

func TestStats(t *testing.T) {
	e := loadedEngine(t)
	e.Dispatch(PointerMove{X: 75, Y: 25})
	s := e.Stats()
	assert.Equal(t, 3, s.Visible)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 100.0, s.ZoomPercent)
	assert.Equal(t, 10.0, s.TotalHeight)
	require.NotNil(t, s.Hovered)
	assert.Equal(t, 5.0, s.Hovered.Y)
}

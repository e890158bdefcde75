package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/PackView/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// dxfTolerance is the distance under which two DXF coordinates are equal.
const dxfTolerance = 0.01

// LayoutImportResult holds a layout read from a drawing.
type LayoutImportResult struct {
	Layout   *model.LayoutResult
	Errors   []string
	Warnings []string
}

type point struct{ X, Y float64 }

// segment represents a line segment between two 2D points, used for
// chaining disconnected LINE entities into closed outlines.
type segment struct {
	start point
	end   point
}

// ImportLayoutDXF reads a packed layout from a DXF drawing. Every closed
// axis-aligned rectangle (a 4-vertex LWPOLYLINE, or four connected LINEs)
// becomes a placement. The drawing is translated so the lowest-left corner
// is the bin origin; placements are ordered bottom to top, left to right.
func ImportLayoutDXF(path string) LayoutImportResult {
	result := LayoutImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines [][]point
	var segments []segment
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			if hasBulge(e) {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with arc segments")
				continue
			}
			outline := make([]point, 0, len(e.Vertices))
			for _, v := range e.Vertices {
				outline = append(outline, point{X: v[0], Y: v[1]})
			}
			outlines = append(outlines, outline)

		case *entity.Line:
			segments = append(segments, segment{
				start: point{X: e.Start[0], Y: e.Start[1]},
				end:   point{X: e.End[0], Y: e.End[1]},
			})

		default:
			// Other entity types carry no placements
		}
	}
	outlines = append(outlines, chainSegments(segments, dxfTolerance)...)

	var rects []model.Placement
	for i, o := range outlines {
		p, ok := rectangleFromOutline(o)
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped shape %d: not an axis-aligned rectangle", i+1))
			continue
		}
		if p.Width < 1 || p.Height < 1 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped shape %d: smaller than one unit", i+1))
			continue
		}
		rects = append(rects, p)
	}

	if len(rects) == 0 {
		result.Errors = append(result.Errors, "No rectangles found in DXF file")
		return result
	}

	layout := layoutFromPlacements(rects)
	result.Layout = &layout
	return result
}

func hasBulge(lw *entity.LwPolyline) bool {
	for _, b := range lw.Bulges {
		if math.Abs(b) > 1e-9 {
			return true
		}
	}
	return false
}

// rectangleFromOutline recognizes an axis-aligned rectangle and returns it
// as a placement in drawing coordinates. A repeated closing vertex is allowed.
func rectangleFromOutline(o []point) (model.Placement, bool) {
	if len(o) == 5 && pointsClose(o[0], o[4], dxfTolerance) {
		o = o[:4]
	}
	if len(o) != 4 {
		return model.Placement{}, false
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range o {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	corners := make(map[[2]bool]bool, 4)
	for _, p := range o {
		atMinX, atMaxX := near(p.X, minX), near(p.X, maxX)
		atMinY, atMaxY := near(p.Y, minY), near(p.Y, maxY)
		if !(atMinX || atMaxX) || !(atMinY || atMaxY) {
			return model.Placement{}, false
		}
		corners[[2]bool{atMaxX, atMaxY}] = true
	}
	if len(corners) != 4 {
		return model.Placement{}, false
	}

	return model.Placement{
		X:      minX,
		Y:      minY,
		Width:  int(math.Round(maxX - minX)),
		Height: int(math.Round(maxY - minY)),
	}, true
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= dxfTolerance
}

// layoutFromPlacements moves the placements so their common lower-left
// corner is the origin and sizes the bin around them.
func layoutFromPlacements(rects []model.Placement) model.LayoutResult {
	minX, minY := math.Inf(1), math.Inf(1)
	for _, p := range rects {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
	}

	var maxX, maxY float64
	placements := make([]model.Placement, len(rects))
	for i, p := range rects {
		p.X -= minX
		p.Y -= minY
		placements[i] = p
		maxX = math.Max(maxX, p.Right())
		maxY = math.Max(maxY, p.Top())
	}

	sort.SliceStable(placements, func(i, j int) bool {
		if placements[i].Y != placements[j].Y {
			return placements[i].Y < placements[j].Y
		}
		return placements[i].X < placements[j].X
	})

	return model.LayoutResult{
		BinWidth:    int(math.Ceil(maxX - dxfTolerance)),
		TotalHeight: maxY,
		Placements:  placements,
	}
}

// chainSegments connects individual segments into closed outlines.
// tolerance is the maximum distance between endpoints to consider them connected.
func chainSegments(segs []segment, tolerance float64) [][]point {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines [][]point

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		// Only closed chains describe a shape
		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}

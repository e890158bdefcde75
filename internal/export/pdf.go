// Package export renders loaded layouts to printable files: a PDF drawing of
// the bin and a sheet of QR-coded placement labels.
package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"

	applog "github.com/piwi3910/PackView/internal/log"
	"github.com/piwi3910/PackView/internal/model"
	"github.com/piwi3910/PackView/internal/viewer"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes a one-page drawing of the layout. Bin space is drawn with
// its origin at the bottom-left, as on screen, and rectangles of the same
// size share a color.
func ExportPDF(path string, layout model.LayoutResult) error {
	if !layout.Valid() {
		return fmt.Errorf("layout has no drawable bin (%d x %g)", layout.BinWidth, layout.TotalHeight)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()
	renderLayoutPage(pdf, layout)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	applog.WithComponent("export").Info("layout PDF written", "path", path, "placements", len(layout.Placements))
	return nil
}

func renderLayoutPage(pdf *fpdf.Fpdf, layout model.LayoutResult) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Bin layout (%d x %g)", layout.BinWidth, layout.TotalHeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Rectangles: %d | Types: %d | Used area: %.0f | Bin area: %.0f | Efficiency: %.1f%%",
		len(layout.Placements), layout.Types(), layout.UsedArea(), layout.TotalArea(), layout.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	binW := float64(layout.BinWidth)
	scale := math.Min(drawWidth/binW, drawHeight/layout.TotalHeight)
	canvasW := binW * scale
	canvasH := layout.TotalHeight * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(245, 245, 245)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range layout.Placements {
		col := viewer.ColorForDimensions(p.Width, p.Height)
		pw := float64(p.Width) * scale
		ph := float64(p.Height) * scale
		px := offsetX + p.X*scale
		py := offsetY + (layout.TotalHeight-p.Top())*scale

		pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 10 && ph > 6 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)
			text := fmt.Sprintf("#%d %dx%d", i+1, p.Width, p.Height)
			if tw := pdf.GetStringWidth(text); tw < pw-2 {
				pdf.SetXY(px+(pw-tw)/2, py+ph/2-2)
				pdf.CellFormat(tw, 4, text, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, layout, offsetX, offsetY, canvasW, canvasH)
	drawTypeLegend(pdf, layout, offsetY+canvasH+6)
}

// drawDimensionAnnotations labels the bin width below and the packed height
// to the left of the drawing.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, layout model.LayoutResult, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d", layout.BinWidth)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%g", layout.TotalHeight)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// typeCount is one legend entry.
type typeCount struct {
	dims  model.Dimensions
	count int
}

// countTypes groups placements by size, largest area first.
func countTypes(layout model.LayoutResult) []typeCount {
	counts := make(map[model.Dimensions]int)
	for _, p := range layout.Placements {
		counts[model.Dimensions{Width: p.Width, Height: p.Height}]++
	}
	out := make([]typeCount, 0, len(counts))
	for d, n := range counts {
		out = append(out, typeCount{dims: d, count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		ai := out[i].dims.Width * out[i].dims.Height
		aj := out[j].dims.Width * out[j].dims.Height
		if ai != aj {
			return ai > aj
		}
		if out[i].dims.Width != out[j].dims.Width {
			return out[i].dims.Width > out[j].dims.Width
		}
		return out[i].dims.Height > out[j].dims.Height
	})
	return out
}

func drawTypeLegend(pdf *fpdf.Fpdf, layout model.LayoutResult, startY float64) {
	const swatch = 4.0
	const entryWidth = 32.0

	pdf.SetFont("Helvetica", "", 7)
	x := marginLeft
	y := startY
	for _, tc := range countTypes(layout) {
		if x+entryWidth > pageWidth-marginRight {
			x = marginLeft
			y += swatch + 2
			if y > pageHeight-marginBottom {
				break
			}
		}
		col := viewer.ColorForDimensions(tc.dims.Width, tc.dims.Height)
		pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
		pdf.SetDrawColor(30, 30, 30)
		pdf.Rect(x, y, swatch, swatch, "FD")
		pdf.SetXY(x+swatch+1, y)
		pdf.CellFormat(entryWidth-swatch-1, swatch, fmt.Sprintf("%dx%d  x%d", tc.dims.Width, tc.dims.Height, tc.count), "", 0, "L", false, 0, "")
		x += entryWidth
	}
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	applog "github.com/piwi3910/PackView/internal/log"
	"github.com/piwi3910/PackView/internal/model"
)

// LabelInfo holds the data encoded into each placement label's QR code.
type LabelInfo struct {
	Index  int     `json:"index"` // 1-based reveal order
	Width  int     `json:"width"`
	Height int     `json:"height"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// ExportLabels generates a PDF of QR-coded labels, one per placement, on a
// standard label sheet (Avery 5160, 3 x 10 on US Letter).
func ExportLabels(path string, layout model.LayoutResult) error {
	labels := CollectLabelInfos(layout)
	if len(labels) == 0 {
		return fmt.Errorf("no placements to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label %d: %w", label.Index, err)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write labels: %w", err)
	}
	applog.WithComponent("export").Info("labels written", "path", path, "labels", len(labels))
	return nil
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", info.Index)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fmt.Sprintf("Rectangle #%d", info.Index), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%d x %d", info.Width, info.Height), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("at (%g, %g)", info.X, info.Y), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label information from a layout in placement order.
func CollectLabelInfos(layout model.LayoutResult) []LabelInfo {
	labels := make([]LabelInfo, 0, len(layout.Placements))
	for i, p := range layout.Placements {
		labels = append(labels, LabelInfo{
			Index:  i + 1,
			Width:  p.Width,
			Height: p.Height,
			X:      p.X,
			Y:      p.Y,
		})
	}
	return labels
}

// Package importer reads rectangle requests and layouts from external files.
// Tables (CSV, Excel) are mapped by header name with automatic delimiter
// detection; free-form request text is validated by ParseRequest.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/PackView/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Rectangles []model.RectangleSpec
	Errors     []string
	Warnings   []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Width    int
	Height   int
	Quantity int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"width":    {"width", "w", "x", "length", "len"},
	"height":   {"height", "h", "y", "depth"},
	"quantity": {"quantity", "qty", "q", "count", "num", "amount", "pcs"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Matching is case-insensitive. Without a recognizable header the columns
// are taken positionally as width, height, quantity and false is returned.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Width: -1, Height: -1, Quantity: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "width":
					if mapping.Width == -1 {
						mapping.Width = i
					}
				case "height":
					if mapping.Height == -1 {
						mapping.Height = i
					}
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Width: 0, Height: 1, Quantity: 2}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a RectangleSpec from a row using the given column mapping.
// Returns the rectangle or an error message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.RectangleSpec, string) {
	var vals [3]int
	for i, col := range []struct {
		name string
		idx  int
	}{
		{"width", mapping.Width},
		{"height", mapping.Height},
		{"quantity", mapping.Quantity},
	} {
		s := getCell(row, col.idx)
		if s == "" {
			return model.RectangleSpec{}, fmt.Sprintf("%s: Missing %s value", rowLabel, col.name)
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return model.RectangleSpec{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, col.name, s)
		}
		vals[i] = v
	}

	if vals[0] <= 0 || vals[1] <= 0 || vals[2] <= 0 {
		return model.RectangleSpec{}, fmt.Sprintf("%s: Width, height, and quantity must be positive", rowLabel)
	}
	return model.RectangleSpec{Width: vals[0], Height: vals[1], Quantity: vals[2]}, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports rectangles from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports rectangles from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports rectangles from the first sheet of an .xlsx file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if mapping.Quantity == -1 {
			missing = append(missing, "Quantity")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if _, err := strconv.Atoi(getCell(rows[0], 0)); err != nil {
		// Unrecognized header: skip it but keep the positional mapping
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		rect, errMsg := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Rectangles = append(result.Rectangles, rect)
	}

	return result
}

// FormatRectangles renders rectangles as "X Y Q" lines for the request editor.
func FormatRectangles(rects []model.RectangleSpec) string {
	var b strings.Builder
	for _, r := range rects {
		fmt.Fprintf(&b, "%d %d %d\n", r.Width, r.Height, r.Quantity)
	}
	return b.String()
}

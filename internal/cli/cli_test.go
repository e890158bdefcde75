package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PackView/internal/model"
	"github.com/piwi3910/PackView/internal/project"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAuditLayout(t *testing.T) {
	tests := []struct {
		name  string
		rects []model.Placement
		want  []Problem
	}{
		{
			name:  "touching edges are fine",
			rects: []model.Placement{{X: 0, Y: 0, Width: 5, Height: 5}, {X: 5, Y: 0, Width: 5, Height: 5}},
		},
		{
			name:  "overlap",
			rects: []model.Placement{{X: 0, Y: 0, Width: 5, Height: 5}, {X: 4, Y: 0, Width: 5, Height: 5}},
			want:  []Problem{{Index: 0, Other: 1, Kind: ProblemOverlap}},
		},
		{
			name:  "past the right edge",
			rects: []model.Placement{{X: 6, Y: 0, Width: 5, Height: 5}},
			want:  []Problem{{Index: 0, Other: model.NoIndex, Kind: ProblemOutside}},
		},
		{
			name:  "above the packed height",
			rects: []model.Placement{{X: 0, Y: 8, Width: 2, Height: 5}},
			want:  []Problem{{Index: 0, Other: model.NoIndex, Kind: ProblemOutside}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := model.LayoutResult{BinWidth: 10, TotalHeight: 10, Placements: tt.rects}
			assert.Equal(t, tt.want, AuditLayout(layout))
		})
	}
}

func TestProblemString(t *testing.T) {
	assert.Equal(t, "#1 overlap with #3", Problem{Index: 0, Other: 2, Kind: ProblemOverlap}.String())
	assert.Equal(t, "#2 outside bin", Problem{Index: 1, Other: model.NoIndex, Kind: ProblemOutside}.String())
}

func TestAutofillCommandWritesRequest(t *testing.T) {
	input := writeFile(t, "rects.txt", "5 3 2\n4 2 1\n")
	output := filepath.Join(t.TempDir(), "input.json")

	out, err := runCLI(t, "autofill", "--width", "10", "-o", output, input)
	require.NoError(t, err)
	assert.Contains(t, out, "3 rectangles of 2 types")

	got, err := project.LoadGeneratedInput(output)
	require.NoError(t, err)
	assert.Equal(t, 10, got.BinWidth)
	assert.Len(t, got.Rectangles, 2)
}

func TestAutofillCommandStdoutWithSeed(t *testing.T) {
	input := writeFile(t, "rects.txt", "5 3 2\n")
	args := []string{"autofill", "--width", "10", "-q", "6", "-k", "3", "--autofill", "--seed", "7", input}

	first, err := runCLI(t, args...)
	require.NoError(t, err)
	second, err := runCLI(t, args...)
	require.NoError(t, err)
	assert.Equal(t, first, second, "a fixed seed gives the same request")

	var got model.GeneratedInput
	require.NoError(t, json.Unmarshal([]byte(first), &got))
	assert.Equal(t, 6, got.TotalQuantity)
	assert.Equal(t, 3, got.TotalTypes)
	assert.True(t, got.AutofillUsed)
}

func TestAutofillCommandReportsAllErrors(t *testing.T) {
	input := writeFile(t, "rects.txt", "5 3\n20 1 1\n")

	_, err := runCLI(t, "autofill", "--width", "10", input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request")
	assert.Contains(t, err.Error(), "Line 1")
	assert.Contains(t, err.Error(), "Line 2")
}

func TestAutofillCommandRequiresWidth(t *testing.T) {
	input := writeFile(t, "rects.txt", "5 3 2\n")
	_, err := runCLI(t, "autofill", input)
	assert.Error(t, err)
}

func TestInspectCommand(t *testing.T) {
	path := writeFile(t, "layout.json", `{
  "bin_width": 10,
  "total_height": 5,
  "placements": [
    {"x": 0, "y": 0, "width": 5, "height": 5},
    {"x": 4, "y": 0, "width": 5, "height": 5}
  ]
}`)

	out, err := runCLI(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Bin:         10 x 5")
	assert.Contains(t, out, "Rectangles:  2")
	assert.Contains(t, out, "#1 overlap with #2")

	_, err = runCLI(t, "inspect", "--strict", path)
	assert.Error(t, err)
}

func TestInspectCommandInvalidLayout(t *testing.T) {
	path := writeFile(t, "bad.json", `{"placements": []}`)
	_, err := runCLI(t, "inspect", path)
	assert.ErrorIs(t, err, project.ErrInvalidLayout)
}

func TestExportPDFCommand(t *testing.T) {
	path := writeFile(t, "layout.json", `{"bin_width": 10, "total_height": 5, "placements": [{"x": 0, "y": 0, "width": 5, "height": 5}]}`)
	dir := t.TempDir()
	pdf := filepath.Join(dir, "layout.pdf")
	labels := filepath.Join(dir, "labels.pdf")

	out, err := runCLI(t, "export-pdf", path, "-o", pdf, "--labels", labels)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+pdf)

	for _, p := range []string{pdf, labels} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PackView/internal/geometry"
	"github.com/piwi3910/PackView/internal/importer"
	"github.com/piwi3910/PackView/internal/model"
	"github.com/piwi3910/PackView/internal/project"
)

// Problem is one audit finding about a layout.
type Problem struct {
	Index int // placement index
	Other int // second placement for overlaps, model.NoIndex otherwise
	Kind  string
}

const (
	ProblemOutside = "outside bin"
	ProblemOverlap = "overlap"
)

func (p Problem) String() string {
	if p.Other != model.NoIndex {
		return fmt.Sprintf("#%d %s with #%d", p.Index+1, p.Kind, p.Other+1)
	}
	return fmt.Sprintf("#%d %s", p.Index+1, p.Kind)
}

// AuditLayout checks placements in bin space: every rectangle must lie within
// [0, bin width] x [0, total height] and no two may overlap. Shared edges are
// not overlaps.
func AuditLayout(layout model.LayoutResult) []Problem {
	var problems []Problem
	bin := geometry.Rect{W: float64(layout.BinWidth), H: layout.TotalHeight}

	rects := make([]geometry.Rect, len(layout.Placements))
	for i, p := range layout.Placements {
		rects[i] = geometry.Rect{X: p.X, Y: p.Y, W: float64(p.Width), H: float64(p.Height)}
		if !bin.ContainsRect(rects[i]) {
			problems = append(problems, Problem{Index: i, Other: model.NoIndex, Kind: ProblemOutside})
		}
	}
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			if rects[i].Intersects(rects[j]) {
				problems = append(problems, Problem{Index: i, Other: j, Kind: ProblemOverlap})
			}
		}
	}
	return problems
}

// loadLayoutFile reads a layout from JSON or, by extension, DXF.
func loadLayoutFile(path string) (model.LayoutResult, []string, error) {
	if strings.EqualFold(filepath.Ext(path), ".dxf") {
		result := importer.ImportLayoutDXF(path)
		if len(result.Errors) > 0 {
			return model.LayoutResult{}, nil, fmt.Errorf("could not import %s: %s", path, strings.Join(result.Errors, "; "))
		}
		return *result.Layout, result.Warnings, nil
	}
	doc, err := project.LoadLayout(path)
	if err != nil {
		return model.LayoutResult{}, nil, err
	}
	return doc.Layout, nil, nil
}

func newInspectCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "inspect [layout.json|layout.dxf]",
		Short: "Print layout statistics and audit placements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, warnings, err := loadLayoutFile(args[0])
			if err != nil {
				return err
			}
			problems := AuditLayout(layout)
			writeReport(cmd.OutOrStdout(), layout, warnings, problems)
			if strict && len(problems) > 0 {
				return fmt.Errorf("layout has %d problem(s)", len(problems))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when the audit finds problems")
	return cmd
}

func writeReport(w io.Writer, layout model.LayoutResult, warnings []string, problems []Problem) {
	fmt.Fprintf(w, "Bin:         %d x %g\n", layout.BinWidth, layout.TotalHeight)
	fmt.Fprintf(w, "Rectangles:  %d\n", len(layout.Placements))
	fmt.Fprintf(w, "Types:       %d\n", layout.Types())
	fmt.Fprintf(w, "Used area:   %.0f of %.0f\n", layout.UsedArea(), layout.TotalArea())
	fmt.Fprintf(w, "Efficiency:  %.1f%%\n", layout.Efficiency())

	for _, warn := range warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
	if len(problems) == 0 {
		fmt.Fprintln(w, "Audit:       ok")
		return
	}
	fmt.Fprintf(w, "Audit:       %d problem(s)\n", len(problems))
	for _, p := range problems {
		fmt.Fprintf(w, "  %s\n", p)
	}
}

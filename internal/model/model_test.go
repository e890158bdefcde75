package model

import (
	"encoding/json"
	"math"
	"testing"
)

func sampleLayout() LayoutResult {
	return LayoutResult{
		BinWidth:    10,
		TotalHeight: 5,
		Placements: []Placement{
			{X: 0, Y: 0, Width: 5, Height: 3},
			{X: 5, Y: 0, Width: 5, Height: 3},
			{X: 0, Y: 3, Width: 4, Height: 2},
		},
	}
}

func TestLayoutResultValid(t *testing.T) {
	if !sampleLayout().Valid() {
		t.Error("sample layout should be valid")
	}
	if (LayoutResult{BinWidth: 0, TotalHeight: 5}).Valid() {
		t.Error("zero bin width should be invalid")
	}
	if (LayoutResult{BinWidth: 10, TotalHeight: -1}).Valid() {
		t.Error("negative height should be invalid")
	}
}

func TestLayoutResultEfficiency(t *testing.T) {
	lr := sampleLayout()
	if lr.UsedArea() != 38 {
		t.Errorf("expected used area 38, got %f", lr.UsedArea())
	}
	if lr.TotalArea() != 50 {
		t.Errorf("expected total area 50, got %f", lr.TotalArea())
	}
	if math.Abs(lr.Efficiency()-76.0) > 1e-9 {
		t.Errorf("expected efficiency 76%%, got %f", lr.Efficiency())
	}
	if (LayoutResult{}).Efficiency() != 0 {
		t.Error("empty layout should have zero efficiency")
	}
}

func TestLayoutResultTypes(t *testing.T) {
	if got := sampleLayout().Types(); got != 2 {
		t.Errorf("expected 2 types, got %d", got)
	}
}

func TestPlacementEdges(t *testing.T) {
	p := Placement{X: 1.5, Y: 2, Width: 3, Height: 4}
	if p.Right() != 4.5 {
		t.Errorf("expected right 4.5, got %f", p.Right())
	}
	if p.Top() != 6 {
		t.Errorf("expected top 6, got %f", p.Top())
	}
}

func TestBuildRequestTotalQuantity(t *testing.T) {
	br := BuildRequest{Declared: []RectangleSpec{{5, 3, 2}, {4, 2, 1}}}
	if br.TotalQuantity() != 3 {
		t.Errorf("expected 3, got %d", br.TotalQuantity())
	}
}

func TestGeneratedInputJSONShape(t *testing.T) {
	gi := GeneratedInput{
		BinWidth:      10,
		TotalQuantity: 3,
		TotalTypes:    2,
		AutofillUsed:  true,
		Rectangles:    []RectangleSpec{{Width: 5, Height: 3, Quantity: 2}},
	}
	data, err := json.Marshal(gi)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"width_of_bin", "number_of_rectangles", "number_of_types_of_rectangles", "autofill_option", "rectangle_list"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
}

func TestRectangleSpecKey(t *testing.T) {
	a := RectangleSpec{Width: 2, Height: 3, Quantity: 1}
	b := RectangleSpec{Width: 2, Height: 3, Quantity: 7}
	if a.Key() != b.Key() {
		t.Error("quantity must not affect identity")
	}
}

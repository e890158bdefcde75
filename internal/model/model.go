package model

// Unset marks an optional target count that the user left empty.
const Unset = -1

// NoIndex marks an absent hovered or dragged placement.
const NoIndex = -1

// RectangleSpec is a user-declared rectangle type and how many copies are wanted.
// Two specs describe the same type when their width and height match; quantity
// is additive.
type RectangleSpec struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	Quantity int `json:"quantity"`
}

// Key returns the identity of the rectangle type.
func (r RectangleSpec) Key() Dimensions {
	return Dimensions{Width: r.Width, Height: r.Height}
}

// Dimensions is a (width, height) pair used for deduplicating rectangle types.
type Dimensions struct {
	Width  int
	Height int
}

// Placement is one packed rectangle: lower-left corner in bin units and its size.
type Placement struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
}

// Top returns the y coordinate of the upper edge in bin units.
func (p Placement) Top() float64 {
	return p.Y + float64(p.Height)
}

// Right returns the x coordinate of the right edge in bin units.
func (p Placement) Right() float64 {
	return p.X + float64(p.Width)
}

// Area returns the rectangle area in square bin units.
func (p Placement) Area() float64 {
	return float64(p.Width) * float64(p.Height)
}

// LayoutResult is the packing output produced by the external algorithm.
// Placement order defines both reveal order and z-order.
type LayoutResult struct {
	BinWidth    int         `json:"bin_width"`
	TotalHeight float64     `json:"total_height"`
	Placements  []Placement `json:"placements"`
}

// Valid reports whether the bin extents are usable for drawing.
func (lr LayoutResult) Valid() bool {
	return lr.BinWidth > 0 && lr.TotalHeight > 0
}

// UsedArea returns the total area covered by placements.
func (lr LayoutResult) UsedArea() float64 {
	var total float64
	for _, p := range lr.Placements {
		total += p.Area()
	}
	return total
}

// TotalArea returns the area of the bin up to the packed height.
func (lr LayoutResult) TotalArea() float64 {
	return float64(lr.BinWidth) * lr.TotalHeight
}

// Efficiency returns the usage percentage.
func (lr LayoutResult) Efficiency() float64 {
	ta := lr.TotalArea()
	if ta <= 0 {
		return 0
	}
	return (lr.UsedArea() / ta) * 100.0
}

// Types returns the number of distinct rectangle sizes in the layout.
func (lr LayoutResult) Types() int {
	seen := make(map[Dimensions]struct{}, len(lr.Placements))
	for _, p := range lr.Placements {
		seen[Dimensions{Width: p.Width, Height: p.Height}] = struct{}{}
	}
	return len(seen)
}

// BuildRequest is the parsed and validated rectangle request that feeds autofill.
type BuildRequest struct {
	BinWidth       int
	TargetQuantity int // Unset when not given
	TargetTypes    int // Unset when not given
	Autofill       bool
	Declared       []RectangleSpec
	ObservedTypes  int
	MinHeight      int
	MaxHeight      int
}

// TotalQuantity sums the declared quantities.
func (br BuildRequest) TotalQuantity() int {
	total := 0
	for _, r := range br.Declared {
		total += r.Quantity
	}
	return total
}

// GeneratedInput is the finalized request handed to the packing algorithm.
type GeneratedInput struct {
	BinWidth      int             `json:"width_of_bin"`
	TotalQuantity int             `json:"number_of_rectangles"`
	TotalTypes    int             `json:"number_of_types_of_rectangles"`
	AutofillUsed  bool            `json:"autofill_option"`
	Rectangles    []RectangleSpec `json:"rectangle_list"`
}

// Session ties a loaded layout to the request that produced it.
type Session struct {
	Name    string          `json:"name"`
	Request *GeneratedInput `json:"request,omitempty"`
	Layout  *LayoutResult   `json:"layout,omitempty"`
}

func NewSession() Session {
	return Session{Name: "Untitled"}
}

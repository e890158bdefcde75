package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/piwi3910/PackView/internal/model"
)

// RequestForm is the raw text of the request form as the user typed it.
type RequestForm struct {
	BinWidth   string
	Quantity   string // optional target quantity
	Types      string // optional target type count
	Autofill   bool
	Rectangles string // one "X Y Q" triple per line
}

// ParseRequest validates the form and builds a BuildRequest. Every problem
// found is reported; the request is only meaningful when no errors are
// returned. Problems with the header fields stop parsing before the
// rectangle lines are read.
func ParseRequest(form RequestForm) (model.BuildRequest, []string) {
	var errs []string
	req := model.BuildRequest{
		TargetQuantity: model.Unset,
		TargetTypes:    model.Unset,
		Autofill:       form.Autofill,
	}

	width, msg := parseBinWidth(form.BinWidth)
	if msg != "" {
		return req, []string{msg}
	}
	req.BinWidth = width

	if n, msg := parseTarget(form.Quantity, "the quantity of rectangles"); msg != "" {
		errs = append(errs, msg)
	} else {
		req.TargetQuantity = n
	}
	if k, msg := parseTarget(form.Types, "the types of rectangles"); msg != "" {
		errs = append(errs, msg)
	} else {
		req.TargetTypes = k
	}
	if len(errs) > 0 {
		return req, errs
	}

	declared, lineErrs := parseLines(form.Rectangles, width)
	errs = append(errs, lineErrs...)
	req.Declared = declared
	req.ObservedTypes = len(declared)
	for i, r := range declared {
		if i == 0 || r.Height < req.MinHeight {
			req.MinHeight = r.Height
		}
		if i == 0 || r.Height > req.MaxHeight {
			req.MaxHeight = r.Height
		}
	}

	errs = append(errs, checkConsistency(req)...)
	return req, errs
}

// MaxBinWidth is the widest bin accepted. It keeps width times height
// products inside an int.
const MaxBinWidth = math.MaxInt32

func parseBinWidth(s string) (int, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, "Enter a value for the width of the bin"
	}
	w, err := strconv.Atoi(s)
	if err != nil {
		return 0, "Enter an integer value for the width of the bin"
	}
	if w <= 0 {
		return 0, "Enter a positive value for the width of the bin"
	}
	if w > MaxBinWidth {
		return 0, fmt.Sprintf("Enter a value no greater than %d for the width of the bin", MaxBinWidth)
	}
	return w, ""
}

// parseTarget reads an optional non-negative count. Empty means model.Unset.
func parseTarget(s, what string) (int, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.Unset, ""
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return model.Unset, fmt.Sprintf("Enter a non-negative integer value for %s", what)
	}
	return n, ""
}

// parseLines reads "X Y Q" triples. Lines declaring a size already seen are
// merged into the first entry by adding their quantity.
func parseLines(text string, binWidth int) ([]model.RectangleSpec, []string) {
	var (
		rects []model.RectangleSpec
		errs  []string
	)
	index := make(map[model.Dimensions]int)

	for i, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		lineNum := i + 1
		if len(fields) != 3 {
			errs = append(errs, fmt.Sprintf("Line %d: Expected exactly 3 space-separated values (X Y Q), found %d", lineNum, len(fields)))
			continue
		}

		var vals [3]int
		bad := false
		for j, name := range []string{"X", "Y", "Q"} {
			v, err := strconv.Atoi(fields[j])
			if err != nil {
				errs = append(errs, fmt.Sprintf("Line %d: '%s' is not a valid integer for %s", lineNum, fields[j], name))
				bad = true
				continue
			}
			vals[j] = v
		}
		if bad {
			continue
		}

		x, y, q := vals[0], vals[1], vals[2]
		if x <= 0 || y <= 0 || q <= 0 {
			errs = append(errs, fmt.Sprintf("Line %d: X, Y, and Q must be positive", lineNum))
			continue
		}
		if x > binWidth {
			errs = append(errs, fmt.Sprintf("Line %d: '%s' is greater than the width %d", lineNum, fields[0], binWidth))
			continue
		}

		spec := model.RectangleSpec{Width: x, Height: y, Quantity: q}
		if at, ok := index[spec.Key()]; ok {
			rects[at].Quantity += q
			continue
		}
		index[spec.Key()] = len(rects)
		rects = append(rects, spec)
	}
	return rects, errs
}

func checkConsistency(req model.BuildRequest) []string {
	var errs []string
	n := req.TotalQuantity()
	k := req.ObservedTypes

	if !req.Autofill {
		if req.TargetQuantity != model.Unset && req.TargetQuantity != n {
			errs = append(errs, fmt.Sprintf("The quantity of rectangles is NOT the same as the input. %d rectangles found, %d expected.", n, req.TargetQuantity))
		}
		if req.TargetTypes != model.Unset && req.TargetTypes != k {
			errs = append(errs, fmt.Sprintf("The number of types of rectangles is NOT the same as the input. %d types found, %d expected.", k, req.TargetTypes))
		}
		return errs
	}

	if req.TargetTypes != model.Unset && k > req.TargetTypes {
		errs = append(errs, fmt.Sprintf("The number of types of rectangles is greater than the input. %d types found, %d expected.", k, req.TargetTypes))
	}
	if req.TargetQuantity == model.Unset {
		return errs
	}
	// Every new type adds at least one rectangle and nothing is ever removed.
	nDelta := req.TargetQuantity - n
	if req.TargetTypes != model.Unset {
		kDelta := req.TargetTypes - k
		if nDelta >= 0 && kDelta > nDelta {
			errs = append(errs, fmt.Sprintf("Autofill impossible: Need to add %d rectangles but only %d type slots available. (Input N=%d, Actual N=%d, Input K=%d, Actual K=%d)",
				nDelta, kDelta, req.TargetQuantity, n, req.TargetTypes, k))
		}
	}
	if nDelta < 0 {
		errs = append(errs, fmt.Sprintf("Autofill impossible: Already have %d rectangles but input N=%d (cannot remove rectangles)", n, req.TargetQuantity))
	}
	return errs
}

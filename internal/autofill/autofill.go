// Package autofill completes a rectangle request up to its target type and
// quantity counts with randomly generated rectangles.
package autofill

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	applog "github.com/piwi3910/PackView/internal/log"
	"github.com/piwi3910/PackView/internal/model"
)

// ErrInfeasible is returned when the requested targets cannot be reached.
var ErrInfeasible = errors.New("autofill target cannot be reached")

// attemptsPerPair bounds rejection sampling before falling back to an
// exhaustive pick among the remaining free pairs.
const attemptsPerPair = 4

// NewRand returns a generator seeded from seed, or from the clock when seed is 0.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Generate finalizes req into the document handed to the packer. Without
// autofill the declared list passes through unchanged. With autofill, new
// distinct (width, height) pairs are added until the target type count is
// met, then random quantity increments are spread over the list until the
// target quantity is met.
func Generate(req model.BuildRequest, rng *rand.Rand) (model.GeneratedInput, error) {
	logger := applog.WithOperation(applog.WithComponent("autofill"), "generate")

	rects := make([]model.RectangleSpec, len(req.Declared))
	copy(rects, req.Declared)
	seen := make(map[model.Dimensions]struct{}, len(rects))
	for _, r := range rects {
		seen[r.Key()] = struct{}{}
	}

	if req.Autofill {
		kDelta := 0
		if req.TargetTypes != model.Unset {
			kDelta = req.TargetTypes - len(seen)
		}
		nDelta := 0
		if req.TargetQuantity != model.Unset {
			nDelta = req.TargetQuantity - req.TotalQuantity()
		}

		if req.TargetQuantity != model.Unset {
			if nDelta < 0 {
				return model.GeneratedInput{}, fmt.Errorf("%w: already %d rectangles, target %d", ErrInfeasible, req.TotalQuantity(), req.TargetQuantity)
			}
			if kDelta > nDelta {
				return model.GeneratedInput{}, fmt.Errorf("%w: %d new types need at least %d rectangles, only %d to add", ErrInfeasible, kDelta, kDelta, nDelta)
			}
		}

		if kDelta > 0 {
			added, err := addTypes(rng, req, seen, kDelta)
			if err != nil {
				return model.GeneratedInput{}, err
			}
			rects = append(rects, added...)
			nDelta -= len(added)
		}

		if nDelta > 0 && len(rects) == 0 {
			return model.GeneratedInput{}, fmt.Errorf("%w: %d rectangles missing and no types to add them to", ErrInfeasible, nDelta)
		}
		for nDelta > 0 {
			idx := rng.Intn(len(rects))
			add := 1 + rng.Intn(nDelta)
			rects[idx].Quantity += add
			nDelta -= add
		}
	}

	out := model.GeneratedInput{
		BinWidth:     req.BinWidth,
		TotalTypes:   len(seen),
		AutofillUsed: req.Autofill,
		Rectangles:   rects,
	}
	for _, r := range rects {
		out.TotalQuantity += r.Quantity
	}

	logger.Debug("request generated",
		slog.Bool("autofill", req.Autofill),
		slog.Int("declared_types", len(req.Declared)),
		slog.Int("types", out.TotalTypes),
		slog.Int("quantity", out.TotalQuantity),
	)
	return out, nil
}

// heightRange returns the inclusive height range for generated rectangles.
// Without declared rectangles the range falls back to [1, bin width].
func heightRange(req model.BuildRequest) (int, int) {
	lo, hi := req.MinHeight, req.MaxHeight
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = max(req.BinWidth, lo)
	}
	return lo, hi
}

// addTypes draws k new pairs not in seen and records them there.
func addTypes(rng *rand.Rand, req model.BuildRequest, seen map[model.Dimensions]struct{}, k int) ([]model.RectangleSpec, error) {
	if req.BinWidth < 1 {
		return nil, fmt.Errorf("%w: bin width %d", ErrInfeasible, req.BinWidth)
	}
	lo, hi := heightRange(req)
	span := hi - lo + 1
	size := mulCapped(req.BinWidth, span)

	taken := 0
	for d := range seen {
		if d.Width >= 1 && d.Width <= req.BinWidth && d.Height >= lo && d.Height <= hi {
			taken++
		}
	}
	if free := size - taken; free < k {
		return nil, fmt.Errorf("%w: %d new types requested but only %d free (width 1..%d, height %d..%d)",
			ErrInfeasible, k, free, req.BinWidth, lo, hi)
	}

	added := make([]model.RectangleSpec, 0, k)
	budget := mulCapped(attemptsPerPair, size)
	for len(added) < k {
		var d model.Dimensions
		found := false
		for ; budget > 0; budget-- {
			d = model.Dimensions{Width: 1 + rng.Intn(req.BinWidth), Height: lo + rng.Intn(span)}
			if _, dup := seen[d]; !dup {
				found = true
				break
			}
		}
		if !found {
			free := freePairs(req.BinWidth, lo, hi, seen)
			d = free[rng.Intn(len(free))]
		}
		seen[d] = struct{}{}
		added = append(added, model.RectangleSpec{Width: d.Width, Height: d.Height, Quantity: 1})
	}
	return added, nil
}

// mulCapped multiplies two non-negative ints, saturating at math.MaxInt.
func mulCapped(a, b int) int {
	if a > 0 && b > math.MaxInt/a {
		return math.MaxInt
	}
	return a * b
}

func freePairs(binWidth, lo, hi int, seen map[model.Dimensions]struct{}) []model.Dimensions {
	var free []model.Dimensions
	for w := 1; w <= binWidth; w++ {
		for h := lo; h <= hi; h++ {
			d := model.Dimensions{Width: w, Height: h}
			if _, ok := seen[d]; !ok {
				free = append(free, d)
			}
		}
	}
	return free
}

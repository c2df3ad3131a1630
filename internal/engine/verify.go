package engine

import (
	"errors"
	"fmt"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// verifyEpsilon absorbs float error when comparing edges against the bounding box.
const verifyEpsilon = 1e-6

// maxViolations caps how many problems Verify reports.
const maxViolations = 20

// Verify checks a result produced from itemCount items: every item placed once,
// all placements inside the bounding box, no overlapping placements and no
// free space overlapping a placement. All violations found are joined into
// the returned error.
func Verify(result model.Result, itemCount int) error {
	var errs []error
	report := func(err error) bool {
		errs = append(errs, err)
		return len(errs) < maxViolations
	}

	if len(result.Placements) != itemCount {
		report(fmt.Errorf("expected %d placements, got %d", itemCount, len(result.Placements)))
	}

	seen := make([]bool, itemCount)
	for _, p := range result.Placements {
		if p.Index < 0 || p.Index >= itemCount {
			if !report(fmt.Errorf("placement %s has out of range index %d", p.ID, p.Index)) {
				return errors.Join(errs...)
			}
			continue
		}
		if seen[p.Index] {
			if !report(fmt.Errorf("item %d placed more than once", p.Index)) {
				return errors.Join(errs...)
			}
		}
		seen[p.Index] = true
	}

	pk := result.Packing
	for _, p := range result.Placements {
		if p.X < 0 || p.Y < 0 ||
			p.Right() > pk.W+verifyEpsilon || p.Bottom() > pk.H+verifyEpsilon {
			if !report(fmt.Errorf("item %d (%s) at (%g, %g) size %gx%g exceeds bounds %gx%g",
				p.Index, p.ID, p.X, p.Y, p.W, p.H, pk.W, pk.H)) {
				return errors.Join(errs...)
			}
		}
	}

	for i := 0; i < len(result.Placements); i++ {
		a := result.Placements[i]
		for j := i + 1; j < len(result.Placements); j++ {
			b := result.Placements[j]
			if a.Overlaps(b.Space) {
				if !report(fmt.Errorf("items %d and %d overlap", a.Index, b.Index)) {
					return errors.Join(errs...)
				}
			}
		}
		for _, s := range result.FreeSpaces {
			if s.Overlaps(a.Space) {
				if !report(fmt.Errorf("free space at (%g, %g) overlaps item %d", s.X, s.Y, a.Index)) {
					return errors.Join(errs...)
				}
			}
		}
	}

	if result.TotalArea > 0 && pk.Fill > 1+verifyEpsilon {
		report(fmt.Errorf("fill %g exceeds 1", pk.Fill))
	}

	return errors.Join(errs...)
}

package engine

import (
	"math"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// frontier is the unordered list of free rectangles the packer places into.
// Removal swaps in the last element, so the scan order after a removal
// depends on it; later placements rely on that order.
type frontier struct {
	spaces []model.Space
	tol    float64
}

// newFrontier starts with one space of the given width and unbounded height.
func newFrontier(width, tol float64) *frontier {
	return &frontier{
		spaces: []model.Space{{ID: model.NoID(), X: 0, Y: 0, W: width, H: math.MaxFloat64}},
		tol:    tol,
	}
}

// place moves box to the top-left corner of the newest free space that can
// hold it and updates the frontier. It returns false if nothing fits.
func (f *frontier) place(box *model.Placement) bool {
	for i := len(f.spaces) - 1; i >= 0; i-- {
		space := f.spaces[i]
		if box.W > space.W || box.H > space.H {
			continue
		}

		// |-------|-------|
		// |  box  |       |
		// |_______|       |
		// |         space |
		// |_______________|
		box.X = space.X
		box.Y = space.Y

		switch {
		case box.W == space.W && box.H == space.H:
			f.remove(i)

		case approxEq(box.H, space.H, f.tol):
			// |-------|---------------|
			// |  box  | updated space |
			// |_______|_______________|
			f.spaces[i].X += box.W
			f.spaces[i].W -= box.W

		case approxEq(box.W, space.W, f.tol):
			// |---------------|
			// |      box      |
			// |_______________|
			// | updated space |
			// |_______________|
			f.spaces[i].Y += box.H
			f.spaces[i].H -= box.H

		default:
			// |-------|-----------|
			// |  box  | new space |
			// |_______|___________|
			// | updated space     |
			// |___________________|
			f.spaces = append(f.spaces, model.Space{
				ID: space.ID,
				X:  space.X + box.W,
				Y:  space.Y,
				W:  space.W - box.W,
				H:  box.H,
			})
			f.spaces[i].Y += box.H
			f.spaces[i].H -= box.H
		}
		return true
	}
	return false
}

// remove drops space i by overwriting it with the last space.
func (f *frontier) remove(i int) {
	last := len(f.spaces) - 1
	f.spaces[i] = f.spaces[last]
	f.spaces = f.spaces[:last]
}

package market

import "profitcraft.ai/internal/sim/grid"

// Locate scans the four cells orthogonally adjacent to the viewport centre in
// the order Up, Left, Right, Down and reports the direction of a market.
// Every match overwrites the previous one, so with several adjacent markets
// the last in scan order wins (Down over Right over Left over Up).
func Locate(v grid.Viewport) (grid.Direction, bool) {
	var (
		dir   grid.Direction
		found bool
	)
	for _, d := range grid.Directions {
		t, ok := v.Neighbor(d)
		if !ok {
			continue
		}
		if t.Content.Is(grid.KindMarket) {
			dir = d
			found = true
		}
	}
	return dir, found
}

// Adjacent reports whether a market is orthogonally adjacent to the centre.
func Adjacent(v grid.Viewport) bool {
	_, ok := Locate(v)
	return ok
}

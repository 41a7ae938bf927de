package world

import "profitcraft.ai/internal/sim/grid"

// Viewport returns the (2r+1)x(2r+1) window around the robot, r being the
// tuned view radius. Off-map cells and unknown robots yield unknown cells.
func (w *World) Viewport(robotID string) grid.Viewport {
	r := w.cfg.Tuning.ViewRadius
	if r < 1 {
		r = 1
	}
	v, _ := grid.NewViewport(2*r + 1)
	rb := w.robots[robotID]
	if rb == nil {
		return v
	}
	for dr := -r; dr <= r; dr++ {
		for dc := -r; dc <= r; dc++ {
			t, ok := w.TileAt(grid.Position{Row: rb.Pos.Row + dr, Col: rb.Pos.Col + dc})
			if !ok {
				continue
			}
			v.Set(dr+r, dc+r, t)
		}
	}
	return v
}

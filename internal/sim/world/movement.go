package world

import (
	"fmt"

	"profitcraft.ai/internal/sim/grid"
)

// Contents that occupy their tile; robots interact with them from a neighbour.
var blockingContents = map[grid.ContentKind]bool{
	grid.KindMarket:   true,
	grid.KindBank:     true,
	grid.KindBuilding: true,
	grid.KindBin:      true,
	grid.KindCrate:    true,
}

// Go moves the robot one cell in dir, spending the tuned move cost.
func (w *World) Go(robotID string, dir grid.Direction) (grid.Position, error) {
	rb := w.robots[robotID]
	if rb == nil {
		return grid.Position{}, ErrUnknownAgent
	}
	if !dir.Valid() {
		return rb.Pos, fmt.Errorf("go: bad direction %d", int(dir))
	}
	next := rb.Pos.Step(dir)
	t, ok := w.TileAt(next)
	if !ok {
		return rb.Pos, fmt.Errorf("go %s: %w", dir, ErrOutOfBounds)
	}
	if !t.Type.Walkable() || blockingContents[t.Content.Kind] {
		return rb.Pos, fmt.Errorf("go %s onto %s/%s: %w", dir, t.Type, t.Content.Kind, ErrNotWalkable)
	}
	cost := w.cfg.Tuning.MoveEnergyCost
	if rb.Energy < cost {
		return rb.Pos, fmt.Errorf("go %s: %w", dir, ErrNotEnoughEnergy)
	}
	rb.Energy -= cost
	rb.Pos = next
	return next, nil
}

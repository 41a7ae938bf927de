package world

import (
	"fmt"

	"profitcraft.ai/internal/sim/grid"
	"profitcraft.ai/internal/sim/market"
)

var collectable = map[grid.ContentKind]bool{
	grid.KindRock:    true,
	grid.KindTree:    true,
	grid.KindFish:    true,
	grid.KindCoin:    true,
	grid.KindGarbage: true,
}

// Inventory returns a point-in-time copy of the robot's backpack.
func (w *World) Inventory(robotID string) grid.Inventory {
	rb := w.robots[robotID]
	if rb == nil {
		return grid.Inventory{}
	}
	return rb.Backpack.Clone()
}

func (w *World) free(rb *Robot) int {
	return w.cfg.Tuning.BackpackCapacity - rb.Backpack.Total()
}

// Put adds items to a backpack directly, e.g. to seed a scenario.
func (w *World) Put(robotID string, kind grid.ContentKind, qty int) error {
	rb := w.robots[robotID]
	if rb == nil {
		return ErrUnknownAgent
	}
	if qty <= 0 {
		return ErrBadQuantity
	}
	if qty > w.free(rb) {
		return fmt.Errorf("put %s x%d: %w", kind, qty, ErrBackpackFull)
	}
	rb.Backpack[kind] += qty
	return nil
}

// Collect takes as much of the adjacent content in dir as the backpack can hold.
func (w *World) Collect(robotID string, dir grid.Direction) (grid.Content, error) {
	rb := w.robots[robotID]
	if rb == nil {
		return grid.Content{}, ErrUnknownAgent
	}
	target := rb.Pos.Step(dir)
	t, ok := w.TileAt(target)
	if !ok {
		return grid.Content{}, fmt.Errorf("collect %s: %w", dir, ErrOutOfBounds)
	}
	if t.Content.IsNone() || !collectable[t.Content.Kind] || t.Content.Quantity <= 0 {
		return grid.Content{}, fmt.Errorf("collect %s: %w", dir, ErrNothingThere)
	}
	n := t.Content.Quantity
	if free := w.free(rb); n > free {
		n = free
	}
	if n <= 0 {
		return grid.Content{}, fmt.Errorf("collect %s: %w", dir, ErrBackpackFull)
	}
	rb.Backpack[t.Content.Kind] += n
	left := t.Content.Quantity - n
	if left == 0 {
		w.tiles[target.Row][target.Col].Content = grid.None()
	} else {
		w.tiles[target.Row][target.Col].Content.Quantity = left
	}
	w.audit(AuditEntry{
		Tick:      w.tick,
		Actor:     robotID,
		Action:    "COLLECT",
		Pos:       posPair(rb.Pos),
		Target:    posPair(target),
		Kind:      string(t.Content.Kind),
		Quantity:  n,
		Direction: dir.String(),
	})
	return grid.Of(t.Content.Kind, n), nil
}

// Deposit sells qty of kind to the market in dir. Items leave the backpack
// before the coins arrive, so the freed slots count towards the payout. If the
// coins still do not fit nothing changes and a NotEnoughSpaceError carrying
// qty is returned.
func (w *World) Deposit(robotID string, kind grid.ContentKind, qty int, dir grid.Direction) (int, error) {
	rb := w.robots[robotID]
	if rb == nil {
		return 0, ErrUnknownAgent
	}
	if qty <= 0 {
		return 0, ErrBadQuantity
	}
	target := rb.Pos.Step(dir)
	t, ok := w.TileAt(target)
	if !ok || !t.Content.Is(grid.KindMarket) {
		return 0, market.ErrOperationNotAllowed
	}
	price := w.cfg.Tuning.Price(kind)
	if price <= 0 {
		return 0, market.ErrOperationNotAllowed
	}
	if rb.Backpack[kind] < qty {
		return 0, fmt.Errorf("deposit %s x%d (have %d): %w", kind, qty, rb.Backpack[kind], ErrNotEnoughItems)
	}
	coins := price * qty
	if coins > w.free(rb)+qty {
		return 0, &market.NotEnoughSpaceError{Attempted: qty}
	}
	rb.Backpack[kind] -= qty
	if rb.Backpack[kind] == 0 {
		delete(rb.Backpack, kind)
	}
	rb.Backpack[grid.KindCoin] += coins
	w.audit(AuditEntry{
		Tick:      w.tick,
		Actor:     robotID,
		Action:    "SELL",
		Pos:       posPair(rb.Pos),
		Target:    posPair(target),
		Kind:      string(kind),
		Quantity:  qty,
		Coins:     coins,
		Direction: dir.String(),
	})
	return coins, nil
}

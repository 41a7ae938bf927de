package world

import (
	"errors"
	"fmt"

	"profitcraft.ai/internal/protocol"
	"profitcraft.ai/internal/sim/grid"
	"profitcraft.ai/internal/sim/market"
)

var _ market.Host = (*World)(nil)

// Runnable is a robot's per-tick logic. The runner calls ProcessTick exactly
// once per tick; the robot never schedules itself.
type Runnable interface {
	ProcessTick(w *World, robotID string)
}

type Runner struct {
	w       *World
	robotID string
	robot   Runnable
}

func NewRunner(w *World, name string, spawn grid.Position, robot Runnable) (*Runner, error) {
	if w == nil || robot == nil {
		return nil, errors.New("runner: nil world or robot")
	}
	id, err := w.Spawn(name, spawn)
	if err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}
	return &Runner{w: w, robotID: id, robot: robot}, nil
}

func (r *Runner) World() *World   { return r.w }
func (r *Runner) RobotID() string { return r.robotID }

// GameTick runs one tick: the robot acts, then the tick is logged and published.
func (r *Runner) GameTick() error {
	w := r.w
	r.robot.ProcessTick(w, r.robotID)

	events := w.events[r.robotID]
	delete(w.events, r.robotID)

	rb := w.robots[r.robotID]
	entry := TickLogEntry{
		Tick:      w.tick,
		AgentID:   r.robotID,
		Pos:       posPair(rb.Pos),
		Energy:    rb.Energy,
		Inventory: inventoryMap(rb.Backpack),
		Events:    events,
	}
	msg := w.tickMsg(rb, events)
	w.tick++

	for _, p := range w.publishers {
		p.PublishTick(msg)
	}
	if w.tickLogger != nil {
		if err := w.tickLogger.WriteTick(entry); err != nil {
			return fmt.Errorf("tick %d: %w", entry.Tick, err)
		}
	}
	return nil
}

func inventoryMap(inv grid.Inventory) map[string]int {
	if len(inv) == 0 {
		return nil
	}
	out := make(map[string]int, len(inv))
	for k, n := range inv {
		out[string(k)] = n
	}
	return out
}

func (w *World) tickMsg(rb *Robot, events []protocol.Event) protocol.TickMsg {
	inv := make([]protocol.ItemStack, 0, len(rb.Backpack))
	for _, k := range rb.Backpack.Kinds() {
		inv = append(inv, protocol.ItemStack{Item: string(k), Count: rb.Backpack[k]})
	}
	if events == nil {
		events = []protocol.Event{}
	}
	return protocol.TickMsg{
		Type:            protocol.TypeTick,
		ProtocolVersion: protocol.Version,
		Tick:            w.tick,
		AgentID:         rb.ID,
		Self: protocol.SelfObs{
			Pos:    posPair(rb.Pos),
			Energy: rb.Energy,
			Coins:  rb.Coins(),
		},
		View:      ViewObs(w.Viewport(rb.ID)),
		Inventory: inv,
		Events:    events,
	}
}

// ViewObs encodes a viewport for the wire; unknown cells stay nil.
func ViewObs(v grid.Viewport) [][]*protocol.CellObs {
	rows := v.Rows()
	out := make([][]*protocol.CellObs, len(rows))
	for i, row := range rows {
		out[i] = make([]*protocol.CellObs, len(row))
		for j, t := range row {
			if t == nil {
				continue
			}
			out[i][j] = &protocol.CellObs{
				Tile:      string(t.Type),
				Content:   string(contentKind(t.Content)),
				Quantity:  t.Content.Quantity,
				Elevation: t.Elevation,
			}
		}
	}
	return out
}

func contentKind(c grid.Content) grid.ContentKind {
	if c.IsNone() {
		return grid.KindNone
	}
	return c.Kind
}

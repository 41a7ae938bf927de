package script

import (
	"fmt"
	"log"

	"profitcraft.ai/internal/protocol"
	"profitcraft.ai/internal/sim/grid"
	"profitcraft.ai/internal/sim/market"
	"profitcraft.ai/internal/sim/world"
)

// Outcome is what one command did.
type Outcome struct {
	Tick    uint64
	Command Command
	// Near is the market probe result for PROBE, and for MOVE when AutoProbe is set.
	Near    bool
	Receipt grid.Receipt
	Err     error
}

// Agent consumes one queued command per tick. It implements world.Runnable.
type Agent struct {
	Queue *Queue
	// AutoProbe probes for an adjacent market after every successful move.
	AutoProbe bool
	// Render, if set, receives the area around the robot on LOOK.
	Render func(area string)

	log      *log.Logger
	outcomes []Outcome
}

func NewAgent(q *Queue, logger *log.Logger) *Agent {
	if q == nil {
		q = &Queue{}
	}
	return &Agent{Queue: q, log: logger}
}

func (a *Agent) Outcomes() []Outcome { return append([]Outcome(nil), a.outcomes...) }

func (a *Agent) ProcessTick(w *world.World, robotID string) {
	cmd, ok := a.Queue.Next()
	if !ok {
		return
	}
	tick := w.CurrentTick()
	craftor := market.NewCraftor(w, a.log)
	out := Outcome{Tick: tick, Command: cmd}

	switch cmd.Op {
	case OpMove:
		_, out.Err = w.Go(robotID, cmd.Dir)
		if out.Err == nil && a.AutoProbe {
			out.Near = craftor.NearMarket(robotID)
		}
	case OpProbe:
		out.Near = craftor.NearMarket(robotID)
	case OpSell:
		dir, _ := craftor.LocateMarket(robotID)
		out.Receipt, out.Err = craftor.SellAll(robotID)
		if out.Err == nil {
			w.AddEvent(robotID, protocol.SaleEvent(tick, dir.String(), receiptMap(out.Receipt)))
		}
	case OpCollect:
		_, out.Err = w.Collect(robotID, cmd.Dir)
	case OpLook:
		if a.Render != nil {
			a.Render(world.RenderArea(w.Viewport(robotID)))
		}
	case OpWait:
	default:
		out.Err = fmt.Errorf("unknown op %q", cmd.Op)
	}

	ref := fmt.Sprintf("C%d", len(a.outcomes)+1)
	if out.Err != nil {
		if a.log != nil {
			a.log.Printf("tick=%d robot=%s %s: %v", tick, robotID, cmd, out.Err)
		}
		w.AddEvent(robotID, protocol.ActionResult(tick, ref, false, world.Code(out.Err), out.Err.Error()))
	} else {
		ev := protocol.ActionResult(tick, ref, true, "", "")
		ev["command"] = cmd.String()
		if cmd.Op == OpProbe || (cmd.Op == OpMove && a.AutoProbe) {
			ev["near_market"] = out.Near
		}
		w.AddEvent(robotID, ev)
	}
	a.outcomes = append(a.outcomes, out)
}

func receiptMap(r grid.Receipt) map[string]int {
	out := make(map[string]int, len(r))
	for k, n := range r {
		out[string(k)] = n
	}
	return out
}

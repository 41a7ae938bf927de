package script

import (
	"errors"
	"strings"
	"testing"

	"profitcraft.ai/internal/sim/grid"
	"profitcraft.ai/internal/sim/market"
	"profitcraft.ai/internal/sim/tuning"
	"profitcraft.ai/internal/sim/world"
	"profitcraft.ai/internal/sim/worldgen"
)

func newRunner(t *testing.T, gen worldgen.Generator, tune tuning.Tuning, agent *Agent) *world.Runner {
	t.Helper()
	m, spawn, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	w, err := world.New(world.WorldConfig{ID: "test", Tuning: tune}, m, nil)
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	r, err := world.NewRunner(w, "robot", spawn, agent)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	return r
}

func TestParse(t *testing.T) {
	q, err := Parse("R, r down probe sell collect:L look wait")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Command{
		Move(grid.Right), Move(grid.Right), Move(grid.Down),
		{Op: OpProbe}, {Op: OpSell}, Collect(grid.Left), {Op: OpLook}, {Op: OpWait},
	}
	if q.Len() != len(want) {
		t.Fatalf("len=%d want %d", q.Len(), len(want))
	}
	for i, w := range want {
		got, ok := q.Next()
		if !ok || got != w {
			t.Fatalf("cmd %d = %v want %v", i, got, w)
		}
	}
	if _, ok := q.Next(); ok {
		t.Fatalf("queue should be drained")
	}
	for _, bad := range []string{"jump", "collect", "R:1", "collect:north"} {
		if _, err := Parse(bad); err == nil {
			t.Fatalf("Parse(%q) should fail", bad)
		}
	}
}

// Walks clockwise around a central market starting from the top-left corner.
// The market is adjacent on edge cells and not on corner cells.
func TestAgent_RingProbeSequence(t *testing.T) {
	q, err := Parse("R R D D L L U U")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	agent := NewAgent(q, nil)
	agent.AutoProbe = true
	r := newRunner(t, worldgen.MarketRing{}, tuning.Defaults(), agent)

	for i := 0; i < 8; i++ {
		if err := r.GameTick(); err != nil {
			t.Fatalf("GameTick: %v", err)
		}
	}
	want := []bool{true, false, true, false, true, false, true, false}
	outs := agent.Outcomes()
	if len(outs) != len(want) {
		t.Fatalf("outcomes=%d want %d", len(outs), len(want))
	}
	for i, o := range outs {
		if o.Err != nil {
			t.Fatalf("step %d (%s): %v", i, o.Command, o.Err)
		}
		if o.Near != want[i] {
			t.Fatalf("step %d (%s): near=%v want %v", i, o.Command, o.Near, want[i])
		}
	}
	rb, _ := r.World().Robot(r.RobotID())
	if rb.Pos != (grid.Position{Row: 0, Col: 0}) {
		t.Fatalf("robot ended at %v", rb.Pos)
	}
}

func TestAgent_CollectThenSell(t *testing.T) {
	// DemoWorld: rock at (1,2), market at (1,1), spawn (0,0).
	q, err := Parse("R R collect:D L sell probe")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	agent := NewAgent(q, nil)
	r := newRunner(t, worldgen.DemoWorld{}, tuning.Defaults(), agent)
	for i := 0; i < 6; i++ {
		if err := r.GameTick(); err != nil {
			t.Fatalf("GameTick: %v", err)
		}
	}
	outs := agent.Outcomes()
	for i, o := range outs {
		if o.Err != nil {
			t.Fatalf("step %d (%s): %v", i, o.Command, o.Err)
		}
	}
	sale := outs[4]
	if sale.Receipt[grid.KindRock] != 1 || sale.Receipt[grid.KindTree] != 0 || sale.Receipt[grid.KindFish] != 0 {
		t.Fatalf("receipt=%v", sale.Receipt)
	}
	if !outs[5].Near {
		t.Fatalf("market at (1,1) should be below (0,1)")
	}
	inv := r.World().Inventory(r.RobotID())
	if inv[grid.KindCoin] != 1 || inv[grid.KindRock] != 0 {
		t.Fatalf("inventory=%v", inv)
	}
}

func TestAgent_SellAwayFromMarket(t *testing.T) {
	agent := NewAgent(NewQueue(Command{Op: OpSell}), nil)
	r := newRunner(t, worldgen.DemoWorld{}, tuning.Defaults(), agent)
	if err := r.GameTick(); err != nil {
		t.Fatalf("GameTick: %v", err)
	}
	out := agent.Outcomes()[0]
	if !errors.Is(out.Err, market.ErrOperationNotAllowed) {
		t.Fatalf("err=%v want ErrOperationNotAllowed", out.Err)
	}
	if out.Receipt != nil {
		t.Fatalf("unexpected receipt %v", out.Receipt)
	}
}

func TestAgent_SellAbortsWhenCoinsDoNotFit(t *testing.T) {
	tune := tuning.Defaults()
	tune.BackpackCapacity = 5
	agent := NewAgent(NewQueue(Command{Op: OpSell}), nil)
	r := newRunner(t, worldgen.SmallWorld{}, tune, agent)
	w := r.World()
	id := r.RobotID()
	if err := w.Put(id, grid.KindFish, 1); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := w.Put(id, grid.KindTree, 2); err != nil {
		t.Fatalf("Put: %v", err)
	}
	// FISH sells first (3 coins fit once the fish leaves), then TREE needs room for 4 coins but only 2 slots free up.
	if err := r.GameTick(); err != nil {
		t.Fatalf("GameTick: %v", err)
	}
	out := agent.Outcomes()[0]
	var nes *market.NotEnoughSpaceError
	if !errors.As(out.Err, &nes) || nes.Attempted != 2 {
		t.Fatalf("err=%v want NotEnoughSpaceError{2}", out.Err)
	}
	inv := w.Inventory(id)
	if inv[grid.KindFish] != 0 || inv[grid.KindCoin] != 3 || inv[grid.KindTree] != 2 {
		t.Fatalf("inventory=%v", inv)
	}
}

func TestAgent_LookRendersArea(t *testing.T) {
	var got string
	agent := NewAgent(NewQueue(Command{Op: OpLook}), nil)
	agent.Render = func(area string) { got = area }
	r := newRunner(t, worldgen.SmallWorld{}, tuning.Defaults(), agent)
	if err := r.GameTick(); err != nil {
		t.Fatalf("GameTick: %v", err)
	}
	if !strings.Contains(got, "MARKET") {
		t.Fatalf("render missing market:\n%s", got)
	}
}

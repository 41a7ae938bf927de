package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	persistlog "profitcraft.ai/internal/persistence/log"
	"profitcraft.ai/internal/sim/world"
)

func main() {
	var (
		dataDir  = flag.String("data", "./data", "runtime data directory")
		worldID  = flag.String("world", "demo", "world id")
		fromTick = flag.Uint64("from_tick", 0, "first tick to print (inclusive)")
		toTick   = flag.Uint64("to_tick", 0, "last tick to print (inclusive, 0 = no limit)")
		quiet    = flag.Bool("quiet", false, "print only the sales summary")
	)
	flag.Parse()

	worldDir := filepath.Join(*dataDir, "worlds", *worldID)
	if _, err := os.Stat(worldDir); err != nil {
		fmt.Fprintln(os.Stderr, "world dir:", err)
		os.Exit(1)
	}

	inRange := func(tick uint64) bool {
		if tick < *fromTick {
			return false
		}
		return *toTick == 0 || tick <= *toTick
	}

	ticks := 0
	err := persistlog.ReadJSONL(filepath.Join(worldDir, "ticks"), "ticks", func(line []byte) error {
		var e world.TickLogEntry
		if err := json.Unmarshal(line, &e); err != nil {
			return err
		}
		if !inRange(e.Tick) {
			return nil
		}
		ticks++
		if !*quiet {
			fmt.Printf("tick=%d agent=%s pos=%v energy=%d inventory=%v events=%d\n",
				e.Tick, e.AgentID, e.Pos, e.Energy, e.Inventory, len(e.Events))
		}
		return nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "read ticks:", err)
		os.Exit(1)
	}

	sales := newSalesSummary()
	err = persistlog.ReadJSONL(filepath.Join(worldDir, "audit"), "audit", func(line []byte) error {
		var a world.AuditEntry
		if err := json.Unmarshal(line, &a); err != nil {
			return err
		}
		if !inRange(a.Tick) {
			return nil
		}
		if !*quiet {
			fmt.Printf("audit tick=%d actor=%s %s %s x%d coins=%d dir=%s\n",
				a.Tick, a.Actor, a.Action, a.Kind, a.Quantity, a.Coins, a.Direction)
		}
		sales.add(a)
		return nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "read audit:", err)
		os.Exit(1)
	}

	fmt.Printf("world=%s ticks=%d\n", *worldID, ticks)
	for _, line := range sales.lines() {
		fmt.Println(line)
	}
}

type salesSummary struct {
	qty   map[string]int
	coins map[string]int
}

func newSalesSummary() *salesSummary {
	return &salesSummary{qty: map[string]int{}, coins: map[string]int{}}
}

func (s *salesSummary) add(a world.AuditEntry) {
	if a.Action != "SELL" {
		return
	}
	s.qty[a.Kind] += a.Quantity
	s.coins[a.Kind] += a.Coins
}

func (s *salesSummary) lines() []string {
	kinds := make([]string, 0, len(s.qty))
	for k := range s.qty {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	out := make([]string, 0, len(kinds)+1)
	total := 0
	for _, k := range kinds {
		out = append(out, fmt.Sprintf("sold %s x%d for %d coins", k, s.qty[k], s.coins[k]))
		total += s.coins[k]
	}
	out = append(out, fmt.Sprintf("total coins=%d", total))
	return out
}

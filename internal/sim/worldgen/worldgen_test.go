package worldgen

import (
	"reflect"
	"testing"

	"profitcraft.ai/internal/sim/grid"
)

func TestFixedLayouts(t *testing.T) {
	cases := []struct {
		name   string
		gen    Generator
		size   int
		market grid.Position
		spawn  grid.Position
	}{
		{"small", SmallWorld{}, 3, grid.Position{Row: 1, Col: 2}, grid.Position{Row: 1, Col: 1}},
		{"demo", DemoWorld{}, 4, grid.Position{Row: 1, Col: 1}, grid.Position{Row: 0, Col: 0}},
		{"ring", MarketRing{}, 3, grid.Position{Row: 1, Col: 1}, grid.Position{Row: 0, Col: 0}},
	}
	for _, tc := range cases {
		m, spawn, err := tc.gen.Generate()
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if len(m) != tc.size || len(m[0]) != tc.size {
			t.Fatalf("%s: size %dx%d", tc.name, len(m), len(m[0]))
		}
		if spawn != tc.spawn {
			t.Fatalf("%s: spawn=%v want %v", tc.name, spawn, tc.spawn)
		}
		if !m[tc.market.Row][tc.market.Col].Content.Is(grid.KindMarket) {
			t.Fatalf("%s: no market at %v", tc.name, tc.market)
		}
	}
}

func TestNoise_DeterministicBySeed(t *testing.T) {
	cfg := DefaultNoiseConfig()
	cfg.Rows, cfg.Cols = 12, 16
	a, sa, err := Noise{Config: cfg}.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, sb, err := Noise{Config: cfg}.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !reflect.DeepEqual(a, b) || sa != sb {
		t.Fatalf("same seed produced different worlds")
	}
	if len(a) != 12 || len(a[0]) != 16 {
		t.Fatalf("size %dx%d", len(a), len(a[0]))
	}
	spawn := a[sa.Row][sa.Col]
	if spawn.Type != grid.TileGrass || !spawn.Content.IsNone() {
		t.Fatalf("spawn tile %+v", spawn)
	}
	for _, row := range a {
		for _, tile := range row {
			if tile.Content.Is(grid.KindMarket) && tile.Type != grid.TileGrass {
				t.Fatalf("market placed on %s", tile.Type)
			}
		}
	}
}

func TestNoise_RejectsTinyWorld(t *testing.T) {
	cfg := DefaultNoiseConfig()
	cfg.Rows = 2
	if _, _, err := (Noise{Config: cfg}).Generate(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestByName(t *testing.T) {
	for _, n := range []string{"small", "demo", "ring", "noise", ""} {
		if _, err := ByName(n, 7); err != nil {
			t.Fatalf("ByName(%q): %v", n, err)
		}
	}
	if _, err := ByName("mars", 1); err == nil {
		t.Fatalf("expected unknown world error")
	}
}

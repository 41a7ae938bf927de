package grid

import "testing"

func TestContentSameKindIgnoresQuantity(t *testing.T) {
	if !Of(KindMarket, 1).SameKind(Of(KindMarket, 7)) {
		t.Fatalf("expected markets with different quantities to share a kind")
	}
	if Of(KindRock, 1).SameKind(Of(KindTree, 1)) {
		t.Fatalf("rock and tree must differ")
	}
	if !None().SameKind(Content{}) {
		t.Fatalf("zero content should be NONE")
	}
	if !(Content{}).Is(KindNone) {
		t.Fatalf("zero content should report NONE")
	}
}

func TestDirectionOffsetsAreOrthogonal(t *testing.T) {
	seen := map[[2]int]Direction{}
	for _, d := range Directions {
		dr, dc := d.Offset()
		if dr*dr+dc*dc != 1 {
			t.Fatalf("%s offset (%d,%d) not orthogonal unit", d, dr, dc)
		}
		if prev, ok := seen[[2]int{dr, dc}]; ok {
			t.Fatalf("%s and %s share an offset", d, prev)
		}
		seen[[2]int{dr, dc}] = d
		if odr, odc := d.Opposite().Offset(); odr != -dr || odc != -dc {
			t.Fatalf("%s opposite offset mismatch", d)
		}
	}
}

func TestParseDirection(t *testing.T) {
	cases := map[string]Direction{"up": Up, "D": Down, " left ": Left, "R": Right}
	for in, want := range cases {
		got, err := ParseDirection(in)
		if err != nil || got != want {
			t.Fatalf("ParseDirection(%q)=%v,%v want %v", in, got, err, want)
		}
	}
	if _, err := ParseDirection("north"); err == nil {
		t.Fatalf("expected error for unknown direction")
	}
}

func TestViewportShape(t *testing.T) {
	if _, err := NewViewport(2); err == nil {
		t.Fatalf("expected even size rejected")
	}
	if _, err := NewViewport(1); err == nil {
		t.Fatalf("expected size 1 rejected")
	}
	v, err := NewViewport(5)
	if err != nil {
		t.Fatalf("NewViewport: %v", err)
	}
	if v.Center() != 2 {
		t.Fatalf("center=%d want 2", v.Center())
	}
	if _, ok := v.At(0, 0); ok {
		t.Fatalf("fresh viewport cells must be unknown")
	}
	v.Set(1, 2, Tile{Type: TileGrass, Content: Of(KindMarket, 1)})
	got, ok := v.Neighbor(Up)
	if !ok || !got.Content.Is(KindMarket) {
		t.Fatalf("Neighbor(Up)=%+v,%v", got, ok)
	}
	if _, ok := v.At(-1, 0); ok {
		t.Fatalf("out-of-range read must be unknown")
	}
}

func TestViewportFromRowsRejectsRagged(t *testing.T) {
	g := Grass()
	_, err := ViewportFromRows([][]*Tile{{&g, &g, &g}, {&g, &g}, {&g, &g, &g}})
	if err == nil {
		t.Fatalf("expected ragged rows rejected")
	}
}

func TestInventoryClone(t *testing.T) {
	inv := Inventory{KindRock: 2}
	c := inv.Clone()
	c[KindRock] = 9
	if inv[KindRock] != 2 {
		t.Fatalf("clone aliases source")
	}
	if got := (Inventory{KindTree: 1, KindFish: 2}).Kinds(); len(got) != 2 || got[0] != KindFish {
		t.Fatalf("Kinds not sorted: %v", got)
	}
}

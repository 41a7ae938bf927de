package tuning

import (
	"os"
	"path/filepath"
	"testing"

	"profitcraft.ai/internal/sim/grid"
)

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "tuning.yaml")
	raw := []byte("backpack_capacity: 5\nprices:\n  ROCK: 4\n")
	if err := os.WriteFile(p, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tu, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tu.BackpackCapacity != 5 {
		t.Fatalf("backpack_capacity=%d want 5", tu.BackpackCapacity)
	}
	if tu.ViewRadius != 1 || tu.StartEnergy != 1000 {
		t.Fatalf("defaults lost: %+v", tu)
	}
	if got := tu.Price(grid.KindRock); got != 4 {
		t.Fatalf("rock price=%d want 4", got)
	}
	// yaml.v3 merges into the existing map, so unlisted prices survive.
	if got := tu.Price(grid.KindFish); got != 3 {
		t.Fatalf("fish price=%d want 3", got)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"radius.yaml": "view_radius: 0\n",
		"kind.yaml":   "prices:\n  GOLD: 1\n",
		"price.yaml":  "prices:\n  TREE: -1\n",
		"zero.yaml":   "prices:\n  FISH: 0\n",
	}
	for name, body := range cases {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := Load(p); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

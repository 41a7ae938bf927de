package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"profitcraft.ai/internal/sim/grid"
)

type Tuning struct {
	ProtocolVersion string `yaml:"protocol_version"`

	ViewRadius       int `yaml:"view_radius"`
	BackpackCapacity int `yaml:"backpack_capacity"`
	StartEnergy      int `yaml:"start_energy"`
	MoveEnergyCost   int `yaml:"move_energy_cost"`

	// Prices are coins paid per unit, keyed by content kind.
	Prices map[string]int `yaml:"prices"`
}

func Defaults() Tuning {
	return Tuning{
		ProtocolVersion:  "1.0",
		ViewRadius:       1,
		BackpackCapacity: 20,
		StartEnergy:      1000,
		MoveEnergyCost:   1,
		Prices: map[string]int{
			string(grid.KindRock): 1,
			string(grid.KindTree): 2,
			string(grid.KindFish): 3,
		},
	}
}

// Load reads a tuning file. Fields missing from the file keep their defaults.
func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func (t Tuning) Validate() error {
	if t.ViewRadius < 1 {
		return fmt.Errorf("view_radius must be >= 1, got %d", t.ViewRadius)
	}
	if t.BackpackCapacity < 0 {
		return fmt.Errorf("backpack_capacity must be >= 0, got %d", t.BackpackCapacity)
	}
	if t.MoveEnergyCost < 0 {
		return fmt.Errorf("move_energy_cost must be >= 0, got %d", t.MoveEnergyCost)
	}
	for k, p := range t.Prices {
		if !grid.ContentKind(k).Valid() {
			return fmt.Errorf("prices: unknown kind %q", k)
		}
		if p < 0 {
			return fmt.Errorf("prices: %s must be >= 0, got %d", k, p)
		}
	}
	// Markets buy these unconditionally; a zero price would make a deposit fail.
	for _, k := range []grid.ContentKind{grid.KindRock, grid.KindTree, grid.KindFish} {
		if t.Prices[string(k)] <= 0 {
			return fmt.Errorf("prices: %s must be > 0", k)
		}
	}
	return nil
}

// Price returns the coins paid per unit of kind, or 0 when the kind is not priced.
func (t Tuning) Price(kind grid.ContentKind) int {
	return t.Prices[string(kind)]
}

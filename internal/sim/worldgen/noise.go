package worldgen

import (
	"errors"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"profitcraft.ai/internal/sim/grid"
	"profitcraft.ai/internal/sim/world"
)

type NoiseConfig struct {
	Rows, Cols int
	Seed       int64

	SeaLevel    float64 // below: deep water (0..1)
	ShoreLevel  float64 // below: shallow water
	HillLevel   float64 // above: hill
	MountainLvl float64 // above: mountain

	Markets int
	// Per-mille chance of rock/tree/fish on a suitable tile.
	ResourcePermille int
}

func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Rows:             24,
		Cols:             24,
		Seed:             1337,
		SeaLevel:         0.22,
		ShoreLevel:       0.32,
		HillLevel:        0.68,
		MountainLvl:      0.8,
		Markets:          3,
		ResourcePermille: 120,
	}
}

// Noise generates terrain from layered simplex noise. The same seed always
// yields the same map.
type Noise struct {
	Config NoiseConfig
}

func (g Noise) Generate() (world.Map, grid.Position, error) {
	cfg := g.Config
	if cfg.Rows < 3 || cfg.Cols < 3 {
		return nil, grid.Position{}, errors.New("noise world must be at least 3x3")
	}
	elev := opensimplex.NewNormalized(cfg.Seed)
	rng := rand.New(rand.NewSource(cfg.Seed))

	m := make(world.Map, cfg.Rows)
	for r := 0; r < cfg.Rows; r++ {
		m[r] = make([]grid.Tile, cfg.Cols)
		for c := 0; c < cfg.Cols; c++ {
			e := octaveNoise(elev, float64(c), float64(r), 4, 0.08, 0.5)
			m[r][c] = grid.Tile{
				Type:      terrainFor(cfg, e),
				Content:   grid.None(),
				Elevation: int(e * 100),
			}
		}
	}

	for r := range m {
		for c := range m[r] {
			if rng.Intn(1000) >= cfg.ResourcePermille {
				continue
			}
			if k, ok := resourceFor(m[r][c].Type); ok {
				m[r][c].Content = grid.Of(k, 1+rng.Intn(3))
			}
		}
	}

	placed := 0
	for tries := 0; placed < cfg.Markets && tries < cfg.Rows*cfg.Cols*4; tries++ {
		r, c := rng.Intn(cfg.Rows), rng.Intn(cfg.Cols)
		if m[r][c].Type != grid.TileGrass || !m[r][c].Content.IsNone() {
			continue
		}
		placed++
		m[r][c].Content = grid.Of(grid.KindMarket, placed)
	}

	spawn, ok := firstFreeGrass(m)
	if !ok {
		return nil, grid.Position{}, errors.New("noise world has no free grass to spawn on")
	}
	return m, spawn, nil
}

func terrainFor(cfg NoiseConfig, e float64) grid.TileType {
	switch {
	case e < cfg.SeaLevel:
		return grid.TileDeepWater
	case e < cfg.ShoreLevel:
		return grid.TileShallowWater
	case e > cfg.MountainLvl:
		return grid.TileMountain
	case e > cfg.HillLevel:
		return grid.TileHill
	default:
		return grid.TileGrass
	}
}

func resourceFor(t grid.TileType) (grid.ContentKind, bool) {
	switch t {
	case grid.TileShallowWater:
		return grid.KindFish, true
	case grid.TileGrass:
		return grid.KindTree, true
	case grid.TileHill, grid.TileMountain:
		return grid.KindRock, true
	}
	return "", false
}

func firstFreeGrass(m world.Map) (grid.Position, bool) {
	for r := range m {
		for c := range m[r] {
			if m[r][c].Type == grid.TileGrass && m[r][c].Content.IsNone() {
				return grid.Position{Row: r, Col: c}, true
			}
		}
	}
	return grid.Position{}, false
}

// octaveNoise layers several frequencies of noise and renormalises to 0..1.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

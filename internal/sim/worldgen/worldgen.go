// Package worldgen builds maps for the reference host: a few fixed layouts
// used by demos and tests, and a seeded noise generator.
package worldgen

import (
	"fmt"
	"strings"

	"profitcraft.ai/internal/sim/grid"
	"profitcraft.ai/internal/sim/world"
)

// Generator produces a map and the robot's spawn position.
type Generator interface {
	Generate() (world.Map, grid.Position, error)
}

func grassMap(rows, cols int) world.Map {
	m := make(world.Map, rows)
	for i := range m {
		m[i] = make([]grid.Tile, cols)
		for j := range m[i] {
			m[i][j] = grid.Grass()
		}
	}
	return m
}

// SmallWorld is a 3x3 grass square with a market right of the spawn at the centre.
type SmallWorld struct{}

func (SmallWorld) Generate() (world.Map, grid.Position, error) {
	m := grassMap(3, 3)
	m[1][2].Content = grid.Of(grid.KindMarket, 1)
	return m, grid.Position{Row: 1, Col: 1}, nil
}

// DemoWorld is a 4x4 map with two markets, rocks, trees and a fish pond.
//
//	row 0: .      .       .       .
//	row 1: .      MARKET1 ROCK1   FISH1 (shallow water)
//	row 2: .      .       .       ROCK1
//	row 3: .      MARKET2 TREE1   TREE2
type DemoWorld struct{}

func (DemoWorld) Generate() (world.Map, grid.Position, error) {
	m := grassMap(4, 4)
	m[1][3].Type = grid.TileShallowWater

	m[1][1].Content = grid.Of(grid.KindMarket, 1)
	m[1][2].Content = grid.Of(grid.KindRock, 1)
	m[1][3].Content = grid.Of(grid.KindFish, 1)
	m[2][3].Content = grid.Of(grid.KindRock, 1)
	m[3][1].Content = grid.Of(grid.KindMarket, 2)
	m[3][2].Content = grid.Of(grid.KindTree, 1)
	m[3][3].Content = grid.Of(grid.KindTree, 2)
	return m, grid.Position{Row: 0, Col: 0}, nil
}

// MarketRing is a 3x3 map with a market at the centre and the robot in the
// top-left corner, so walking the ring alternates edge and corner cells.
type MarketRing struct{}

func (MarketRing) Generate() (world.Map, grid.Position, error) {
	m := grassMap(3, 3)
	m[0][1].Content = grid.Of(grid.KindTree, 1)
	m[1][1].Content = grid.Of(grid.KindMarket, 1)
	m[2][2].Content = grid.Of(grid.KindTree, 2)
	return m, grid.Position{Row: 0, Col: 0}, nil
}

// ByName resolves a generator from a CLI name.
func ByName(name string, seed int64) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "small":
		return SmallWorld{}, nil
	case "demo", "":
		return DemoWorld{}, nil
	case "ring":
		return MarketRing{}, nil
	case "noise":
		cfg := DefaultNoiseConfig()
		cfg.Seed = seed
		return Noise{Config: cfg}, nil
	}
	return nil, fmt.Errorf("unknown world %q", name)
}

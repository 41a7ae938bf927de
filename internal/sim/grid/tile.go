package grid

type TileType string

const (
	TileDeepWater    TileType = "DEEP_WATER"
	TileShallowWater TileType = "SHALLOW_WATER"
	TileSand         TileType = "SAND"
	TileGrass        TileType = "GRASS"
	TileStreet       TileType = "STREET"
	TileHill         TileType = "HILL"
	TileMountain     TileType = "MOUNTAIN"
	TileSnow         TileType = "SNOW"
	TileLava         TileType = "LAVA"
	TileTeleport     TileType = "TELEPORT"
	TileWall         TileType = "WALL"
)

// Walkable reports whether an agent may stand on tiles of this type.
func (t TileType) Walkable() bool {
	switch t {
	case TileDeepWater, TileLava, TileWall:
		return false
	default:
		return t != ""
	}
}

// Tile is an immutable snapshot of one grid cell.
type Tile struct {
	Type      TileType `json:"type"`
	Content   Content  `json:"content"`
	Elevation int      `json:"elevation"`
}

func Grass() Tile {
	return Tile{Type: TileGrass, Content: None()}
}

// Position is a row/column coordinate; row grows downwards.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) Step(d Direction) Position {
	dr, dc := d.Offset()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

package grid

import "fmt"

// Viewport is a square window of tiles centred on an agent. Cells outside the
// world are nil (unknown), which is not an error.
type Viewport struct {
	cells [][]*Tile
}

// NewViewport returns an all-unknown viewport. size must be odd and >= 3.
func NewViewport(size int) (Viewport, error) {
	if size < 3 || size%2 == 0 {
		return Viewport{}, fmt.Errorf("viewport size must be odd and >= 3, got %d", size)
	}
	cells := make([][]*Tile, size)
	for i := range cells {
		cells[i] = make([]*Tile, size)
	}
	return Viewport{cells: cells}, nil
}

// ViewportFromRows wraps rows as a viewport, validating the shape.
func ViewportFromRows(rows [][]*Tile) (Viewport, error) {
	n := len(rows)
	if n < 3 || n%2 == 0 {
		return Viewport{}, fmt.Errorf("viewport size must be odd and >= 3, got %d", n)
	}
	cells := make([][]*Tile, n)
	for i, r := range rows {
		if len(r) != n {
			return Viewport{}, fmt.Errorf("viewport row %d has %d cells, want %d", i, len(r), n)
		}
		cells[i] = append([]*Tile(nil), r...)
	}
	return Viewport{cells: cells}, nil
}

func (v Viewport) Size() int { return len(v.cells) }

// Center is the index of the agent's own cell on both axes.
func (v Viewport) Center() int { return len(v.cells) / 2 }

func (v Viewport) At(row, col int) (Tile, bool) {
	if row < 0 || col < 0 || row >= len(v.cells) || col >= len(v.cells) {
		return Tile{}, false
	}
	t := v.cells[row][col]
	if t == nil {
		return Tile{}, false
	}
	return *t, true
}

// Set stores a copy of t at (row, col); out-of-range writes are ignored.
func (v Viewport) Set(row, col int, t Tile) {
	if row < 0 || col < 0 || row >= len(v.cells) || col >= len(v.cells) {
		return
	}
	tc := t
	v.cells[row][col] = &tc
}

// Neighbor returns the cell orthogonally adjacent to the centre in direction d.
func (v Viewport) Neighbor(d Direction) (Tile, bool) {
	if !d.Valid() || len(v.cells) == 0 {
		return Tile{}, false
	}
	dr, dc := d.Offset()
	c := v.Center()
	return v.At(c+dr, c+dc)
}

// Rows returns a copy of the cell grid for rendering.
func (v Viewport) Rows() [][]*Tile {
	out := make([][]*Tile, len(v.cells))
	for i, r := range v.cells {
		out[i] = append([]*Tile(nil), r...)
	}
	return out
}

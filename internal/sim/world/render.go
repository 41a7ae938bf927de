package world

import (
	"fmt"
	"strings"

	"profitcraft.ai/internal/sim/grid"
)

const unknownTile = "default_unknown_tile"

// RenderArea draws a viewport one row per line, e.g. for a console demo.
func RenderArea(v grid.Viewport) string {
	var b strings.Builder
	for _, row := range v.Rows() {
		for _, t := range row {
			switch {
			case t == nil:
				b.WriteString(unknownTile)
			case !t.Content.IsNone():
				fmt.Fprintf(&b, " %s(%s(%d)) ", t.Type, t.Content.Kind, t.Content.Quantity)
			default:
				fmt.Fprintf(&b, " %s ", t.Type)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

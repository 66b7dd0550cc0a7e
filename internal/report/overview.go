package report

import (
	"github.com/vovakirdan/tui-raycast/internal/core"
	"github.com/vovakirdan/tui-raycast/internal/raycast"
)

// Overview glyphs.
const (
	glyphOpen        = '.'
	glyphOpaque      = '#'
	glyphTransparent = ':'
	glyphStop        = '*' // last hit of a ray
	glyphPassed      = 'o' // transparent tile a ray saw through
	glyphCaster      = '@'
)

// OverviewLegend describes the glyphs used by Overview.
const OverviewLegend = "@ caster  * ray stop  o seen through  # wall  : transparent  . open"

// Overview plots the tile map from above, one character per tile, marking
// the tiles each ray of the frame hit. Hits outside the map are not drawn.
func Overview(m *raycast.TileMap, f Frame) string {
	w, h := m.Size()
	canvas := core.NewCanvas(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			id, _ := m.Tile(x, y)
			switch {
			case id == 0:
				canvas.Set(x, y, glyphOpen)
			case m.IsTransparent(id):
				canvas.Set(x, y, glyphTransparent)
			default:
				canvas.Set(x, y, glyphOpaque)
			}
		}
	}

	for _, hits := range f.Hits {
		for i, hit := range hits {
			if i == len(hits)-1 && !m.IsTransparent(hit.TileID) {
				canvas.SetAt(hit.Cell, glyphStop)
				continue
			}
			// A stop marker from another ray wins over a pass-through.
			if canvas.Get(hit.Cell.X, hit.Cell.Y) != glyphStop {
				canvas.SetAt(hit.Cell, glyphPassed)
			}
		}
	}

	canvas.SetAt(core.Floor(core.V(f.X, f.Y)), glyphCaster)

	return canvas.String()
}

// OverviewText renders the frame header, the overview and its legend.
func OverviewText(m *raycast.TileMap, f Frame, opts Options) string {
	return Header(f, opts) + "\n" + Overview(m, f) + "\n" + labelStyle.Render(OverviewLegend)
}

package ui

import (
	"github.com/cespare/xxhash/v2"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/creatures/internal/creature"
	"github.com/samdwyer/creatures/internal/grid"
	"github.com/samdwyer/creatures/internal/tiles"
)

// cellStride is the width and height of one creature on screen, including
// the blank gap after it.
const cellStride = grid.Dim + 1

// glyphs maps a connector mask (N=1, E=2, S=4, W=8) to a box-drawing rune.
var glyphs = [16]rune{
	' ', '╵', '╶', '└',
	'╷', '│', '┌', '├',
	'╴', '┘', '─', '┴',
	'┐', '┤', '┬', '┼',
}

// Glyph returns the box-drawing rune whose arms match the connector set.
func Glyph(connectors grid.DirectionSet) rune {
	return glyphs[connectors&grid.AllDirections]
}

// Renderer handles drawing creatures to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Fit returns how many creatures fit on the screen in each direction, leaving
// the last line for the status message.
func (r *Renderer) Fit() (columns, rows int) {
	w, h := r.screen.Size()
	return max(w/cellStride, 1), max((h-1)/cellStride, 1)
}

// Render draws creatures row by row, columns per row, and a status line.
func (r *Renderer) Render(creatures []*creature.Placement, columns int, status string) {
	if columns < 1 {
		columns = 1
	}

	r.screen.Frame(func() {
		for i, c := range creatures {
			originX := (i % columns) * cellStride
			originY := (i / columns) * cellStride
			c.Each(func(pos grid.Position, t *tiles.Tile) {
				r.screen.SetCell(originX+pos.Col(), originY+pos.Row(), Glyph(t.Connectors), tileStyle(t))
			})
		}

		_, h := r.screen.Size()
		r.RenderMessage(status, h-1)
	})
}

// RenderMessage displays a message on the given line.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.screen.SetText(0, y, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

// tileStyle colors a tile by a hue derived from its name, so the same tile
// keeps its color across redraws.
func tileStyle(t *tiles.Tile) tcell.Style {
	hue := float64(xxhash.Sum64String(t.Name) % 360)
	cr, cg, cb := colorful.Hsv(hue, 0.6, 0.95).RGB255()
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(cr), int32(cg), int32(cb))).
		Bold(true)
}

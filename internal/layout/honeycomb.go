package layout

import (
	"math"

	"github.com/jmylchreest/piccolor/internal/colour"
)

// Hexagons below this scale would be unclickable; matches the minimum
// swatch footprint of the grid canvas in the original layout.
const minHexScale = 0.2

// honeycomb tiles flat-top hexagons in staggered rows. Even rows hold g
// cells, odd rows g-1 cells offset by half a cell, where g = ceil(sqrt(n)).
// Each hexagon is inscribed in its own cell and scaled by the colour's
// share, so cells (and therefore hexagons) never overlap.
func honeycomb(colors []colour.Info, canvasSize int) []Placement {
	n := len(colors)
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if cols < 1 {
		cols = 1
	}
	rows := rowCount(n, cols)

	cellW := float64(canvasSize) / float64(cols)
	cellH := float64(canvasSize) / float64(rows)

	placements := make([]Placement, 0, n)
	row, col := 0, 0
	for i, c := range colors {
		scale := math.Sqrt(c.Percentage/100)*0.8 + minHexScale
		if scale > 1 {
			scale = 1
		}

		cx := float64(col)*cellW + cellW/2
		if row%2 == 1 {
			cx += cellW / 2
		}
		cy := float64(row)*cellH + cellH/2

		poly := hexagon(cx, cy, scale*cellW/2, scale*cellH/2)
		placements = append(placements, Placement{
			ColorIndex: i,
			Polygon:    poly,
			Area:       polygonArea(poly),
		})

		col++
		if col >= rowCapacity(row, cols) {
			col = 0
			row++
		}
	}

	return placements
}

// rowCapacity returns how many cells a row holds: staggered odd rows hold
// one fewer so their offset cells stay inside the canvas.
func rowCapacity(row, cols int) int {
	if row%2 == 1 && cols > 1 {
		return cols - 1
	}
	return cols
}

// rowCount simulates filling to determine how many rows n colours need.
func rowCount(n, cols int) int {
	rows := 0
	for placed := 0; placed < n; rows++ {
		placed += rowCapacity(rows, cols)
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// hexagon builds a flat-top hexagon centred at (cx, cy) with horizontal
// half-extent rx and vertical half-extent ry.
func hexagon(cx, cy, rx, ry float64) []Point {
	return []Point{
		{X: cx - rx, Y: cy},
		{X: cx - rx/2, Y: cy - ry},
		{X: cx + rx/2, Y: cy - ry},
		{X: cx + rx, Y: cy},
		{X: cx + rx/2, Y: cy + ry},
		{X: cx - rx/2, Y: cy + ry},
	}
}

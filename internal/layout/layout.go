// Package layout packs ranked palette colours into non-overlapping,
// area-proportional shapes inside a fixed square canvas.
package layout

import (
	"fmt"
	"math"
	"slices"

	"github.com/jmylchreest/piccolor/internal/colour"
)

// DefaultCanvasSize is the side length of the square canvas.
const DefaultCanvasSize = 1024

// Mode selects the packing strategy.
type Mode string

const (
	// ModeGrid packs square-ish swatches with deterministic shelf packing.
	ModeGrid Mode = "grid"
	// ModeHoneycomb tiles area-proportional hexagons in staggered rows.
	ModeHoneycomb Mode = "honeycomb"
)

// ValidModes returns the list of supported layout modes.
func ValidModes() []Mode {
	return []Mode{ModeGrid, ModeHoneycomb}
}

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if slices.Contains(ValidModes(), m) {
		return m, nil
	}
	return "", fmt.Errorf("invalid layout mode %q (valid: grid, honeycomb)", s)
}

// Rect is an axis-aligned rectangle in canvas coordinates.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= float64(r.X) && x < float64(r.X+r.W) &&
		y >= float64(r.Y) && y < float64(r.Y+r.H)
}

// Point is a polygon vertex in canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Placement is one packed swatch. Exactly one of Rect or Polygon is set,
// depending on the layout mode. ColorIndex refers to the ranked colour
// sequence the layout was built from.
type Placement struct {
	ColorIndex int     `json:"color_index"`
	Rect       *Rect   `json:"rect,omitempty"`
	Polygon    []Point `json:"polygon,omitempty"`
	Area       float64 `json:"area"`
}

// Contains reports whether the point lies inside the placement's shape.
func (p Placement) Contains(x, y float64) bool {
	if p.Rect != nil {
		return p.Rect.Contains(x, y)
	}
	return polygonContains(p.Polygon, x, y)
}

// Layout packs the ranked colours into the canvas. One placement is
// produced per colour, in the same order. The placements never overlap and
// their areas sum to at most canvasSize squared; rounding slack is absorbed
// by shrinking the lowest-ranked swatches first.
func Layout(colors []colour.Info, canvasSize int, mode Mode) []Placement {
	if canvasSize <= 0 {
		canvasSize = DefaultCanvasSize
	}
	if len(colors) == 0 {
		return nil
	}
	if mode == ModeHoneycomb {
		return honeycomb(colors, canvasSize)
	}
	return grid(colors, canvasSize)
}

// grid shelf-packs square swatches left-to-right, wrapping to a new row
// when the remaining width is insufficient. Because colours arrive in
// descending rank order the first swatch of each row is its tallest, so
// rows never collide.
func grid(colors []colour.Info, canvasSize int) []Placement {
	placements := make([]Placement, 0, len(colors))

	x, y, rowHeight := 0, 0, 0
	for i, c := range colors {
		side := int(math.Floor(math.Sqrt(c.Percentage/100) * float64(canvasSize)))
		if side > canvasSize {
			side = canvasSize
		}

		if x > 0 && x+side > canvasSize {
			x = 0
			y += rowHeight
			rowHeight = 0
		}
		// Out of vertical room: shrink the remaining (lowest-ranked)
		// swatches to whatever height is left.
		if y+side > canvasSize {
			side = canvasSize - y
			if side < 0 {
				side = 0
			}
		}

		placements = append(placements, Placement{
			ColorIndex: i,
			Rect:       &Rect{X: x, Y: y, W: side, H: side},
			Area:       float64(side) * float64(side),
		})

		x += side
		if side > rowHeight {
			rowHeight = side
		}
	}

	return placements
}

// HitTest resolves a canvas point to the index of the placement containing
// it, or -1 when the point lies on empty canvas.
func HitTest(placements []Placement, x, y float64) int {
	for i, p := range placements {
		if p.Contains(x, y) {
			return i
		}
	}
	return -1
}

// polygonContains tests point-in-polygon by ray casting.
func polygonContains(poly []Point, x, y float64) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if (poly[i].Y > y) != (poly[j].Y > y) &&
			x < (poly[j].X-poly[i].X)*(y-poly[i].Y)/(poly[j].Y-poly[i].Y)+poly[i].X {
			inside = !inside
		}
	}
	return inside
}

// polygonArea computes the area of a simple polygon with the shoelace
// formula.
func polygonArea(poly []Point) float64 {
	area := 0.0
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		area += poly[j].X*poly[i].Y - poly[i].X*poly[j].Y
	}
	return math.Abs(area) / 2
}

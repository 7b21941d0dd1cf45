// Package colour provides colour conversion, formatting and ranking for
// extracted palettes.
package colour

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents a colour with 8-bit channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as an uppercase hex string (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// HexToRGB parses a "#RRGGBB" hex string (case-insensitive) into an RGB.
func HexToRGB(hex string) (RGB, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// colorfulColor converts the RGB to a go-colorful colour for space conversions.
func (rgb RGB) colorfulColor() colorful.Color {
	return colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
}

// HSL returns hue in degrees [0,360) and saturation/lightness as fractions
// [0,1]. Achromatic colours report a hue of 0.
func (rgb RGB) HSL() (h, s, l float64) {
	return rgb.colorfulColor().Hsl()
}

// HSV returns hue in degrees [0,360) and saturation/value as fractions [0,1].
// Achromatic colours report a hue of 0.
func (rgb RGB) HSV() (h, s, v float64) {
	return rgb.colorfulColor().Hsv()
}

// HSLString returns the colour in the format "hsl(h, s%, l%)".
func (rgb RGB) HSLString() string {
	h, s, l := rgb.HSL()
	return fmt.Sprintf("hsl(%.0f, %.1f%%, %.1f%%)", h, s*100, l*100)
}

// HSVString returns the colour in the format "hsv(h, s%, v%)".
func (rgb RGB) HSVString() string {
	h, s, v := rgb.HSV()
	return fmt.Sprintf("hsv(%.0f, %.1f%%, %.1f%%)", h, s*100, v*100)
}

// Compare orders colours lexicographically by channel (R, then G, then B).
// Returns -1 if rgb sorts before other, 0 if equal, 1 otherwise.
func (rgb RGB) Compare(other RGB) int {
	if rgb.R != other.R {
		return channelCompare(rgb.R, other.R)
	}
	if rgb.G != other.G {
		return channelCompare(rgb.G, other.G)
	}
	return channelCompare(rgb.B, other.B)
}

func channelCompare(a, b uint8) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

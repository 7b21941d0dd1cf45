package colour

import (
	"fmt"
	"slices"
)

// Info describes one extracted palette colour with its share of the image.
// HSL/HSV representations are derived from RGB on demand rather than stored.
type Info struct {
	RGB        RGB     `json:"rgb"`
	Hex        string  `json:"hex"`
	Percentage float64 `json:"percentage"`
	PixelCount uint64  `json:"pixel_count"`
}

// HSL returns the derived HSL representation of the colour.
func (i Info) HSL() (h, s, l float64) {
	return i.RGB.HSL()
}

// HSV returns the derived HSV representation of the colour.
func (i Info) HSV() (h, s, v float64) {
	return i.RGB.HSV()
}

// Format is a textual output format for a palette colour.
type Format string

const (
	// FormatHex formats colours as "#RRGGBB".
	FormatHex Format = "hex"
	// FormatRGB formats colours as "rgb(r, g, b)".
	FormatRGB Format = "rgb"
	// FormatHSL formats colours as "hsl(h, s%, l%)".
	FormatHSL Format = "hsl"
	// FormatHSV formats colours as "hsv(h, s%, v%)".
	FormatHSV Format = "hsv"
)

// ValidFormats returns the list of supported colour formats.
func ValidFormats() []Format {
	return []Format{FormatHex, FormatRGB, FormatHSL, FormatHSV}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if slices.Contains(ValidFormats(), f) {
		return f, nil
	}
	return "", fmt.Errorf("invalid colour format %q (valid: hex, rgb, hsl, hsv)", s)
}

// Format renders the colour in the requested textual format. These are the
// copy-ready strings exposed to consumers (clipboard, CLI output).
func (i Info) Format(f Format) string {
	switch f {
	case FormatRGB:
		return i.RGB.String()
	case FormatHSL:
		return i.RGB.HSLString()
	case FormatHSV:
		return i.RGB.HSVString()
	default:
		return i.Hex
	}
}

// Rank turns per-cluster centroids and pixel counts into ranked palette
// entries. Percentages are shares of the summed pixel count. Ordering is
// descending by share, with exact ties broken by ascending RGB lexicographic
// order so results are deterministic.
func Rank(centroids []RGB, counts []uint64) []Info {
	var total uint64
	for _, c := range counts {
		total += c
	}
	if total == 0 || len(centroids) == 0 {
		return nil
	}

	infos := make([]Info, 0, len(centroids))
	for i, rgb := range centroids {
		infos = append(infos, Info{
			RGB:        rgb,
			Hex:        rgb.Hex(),
			Percentage: float64(counts[i]) / float64(total) * 100,
			PixelCount: counts[i],
		})
	}

	slices.SortFunc(infos, func(a, b Info) int {
		// Compare pixel counts rather than percentages: same ordering,
		// but exact.
		if a.PixelCount != b.PixelCount {
			if a.PixelCount > b.PixelCount {
				return -1
			}
			return 1
		}
		return a.RGB.Compare(b.RGB)
	})

	return infos
}

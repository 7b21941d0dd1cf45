package colour

import (
	"fmt"
	"math"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 4
)

// Preview returns an ANSI-coloured block for a colour, width characters wide.
func Preview(rgb RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, rgb.R, rgb.G, rgb.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// PreviewBar renders ranked palette entries as a single bar, each segment
// sized proportionally to the colour's share of the image. The bar is at
// most width characters wide; every colour gets at least one cell so small
// shares stay visible.
func PreviewBar(colors []Info, width int) string {
	if len(colors) == 0 {
		return ""
	}
	if width < len(colors) {
		width = len(colors)
	}

	var b strings.Builder
	used := 0
	for i, c := range colors {
		cells := int(math.Round(c.Percentage / 100 * float64(width)))
		if cells < 1 {
			cells = 1
		}
		if remaining := width - used - (len(colors) - 1 - i); cells > remaining {
			cells = remaining
		}
		b.WriteString(Preview(c.RGB, cells))
		used += cells
	}
	return b.String()
}

// PreviewWithText returns a colour block with centred text, choosing a
// foreground colour that contrasts with the swatch.
func PreviewWithText(rgb RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	var fg RGB
	if Luminance(rgb) <= 0.5 {
		fg = RGB{R: 255, G: 255, B: 255}
	}

	display := text
	if len(text) > width {
		display = text[:width]
	} else if len(text) < width {
		pad := (width - len(text)) / 2
		display = strings.Repeat(" ", pad) + text + strings.Repeat(" ", width-len(text)-pad)
	}

	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, rgb.R, rgb.G, rgb.B, ansiSuffix)
	fgSeq := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg.R, fg.G, fg.B, ansiSuffix)
	return bg + fgSeq + display + ansiReset
}

// Luminance calculates the relative luminance of a colour according to
// WCAG 2.0. Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(rgb RGB) float64 {
	r := gammaCorrect(float64(rgb.R) / 255.0)
	g := gammaCorrect(float64(rgb.G) / 255.0)
	b := gammaCorrect(float64(rgb.B) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// Test image generator for creating sample images for palette analysis
package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

func main() {
	// Vertical bands with decreasing widths so the sample image has a
	// known coverage ranking.
	width := 400
	height := 400
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	bands := []struct {
		c color.RGBA
		w int
	}{
		{color.RGBA{R: 255, A: 255}, 160},                // Red, 40%
		{color.RGBA{G: 255, A: 255}, 100},                // Green, 25%
		{color.RGBA{B: 255, A: 255}, 80},                 // Blue, 20%
		{color.RGBA{R: 255, G: 255, A: 255}, 40},         // Yellow, 10%
		{color.RGBA{R: 128, G: 128, B: 128, A: 255}, 20}, // Gray, 5%
	}

	x0 := 0
	for _, band := range bands {
		for y := 0; y < height; y++ {
			for x := x0; x < x0+band.w; x++ {
				img.Set(x, y, band.c)
			}
		}
		x0 += band.w
	}

	file, err := os.Create("testdata/sample.png")
	if err != nil {
		panic(err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		panic(err)
	}

	println("Test image created: testdata/sample.png")
}

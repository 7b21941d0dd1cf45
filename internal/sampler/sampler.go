// Package sampler decodes raw image bytes into a bounded, normalized RGB
// pixel buffer suitable for clustering.
package sampler

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/piccolor/internal/colour"
)

// DefaultMaxDimension bounds the longest edge of the sampled buffer.
const DefaultMaxDimension = 800

// ErrDecode indicates the input bytes could not be decoded into an image.
var ErrDecode = errors.New("unsupported or corrupt image data")

// PixelBuffer is an owned, contiguous row-major sequence of RGB triples.
// It is immutable once produced and never retains the input bytes.
type PixelBuffer struct {
	// Pix holds 3 bytes per pixel (R, G, B), row-major.
	Pix    []uint8
	Width  int
	Height int

	// Dimensions of the decoded image before downsampling.
	SourceWidth  int
	SourceHeight int
}

// PixelCount returns the number of pixels in the buffer.
func (b *PixelBuffer) PixelCount() int {
	return b.Width * b.Height
}

// At returns the i-th pixel of the buffer in row-major order.
func (b *PixelBuffer) At(i int) colour.RGB {
	o := i * 3
	return colour.RGB{R: b.Pix[o], G: b.Pix[o+1], B: b.Pix[o+2]}
}

// Image reconstructs the buffer as an opaque NRGBA image, for algorithms
// that operate on image.Image.
func (b *PixelBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i := 0; i < b.PixelCount(); i++ {
		src := i * 3
		dst := i * 4
		img.Pix[dst] = b.Pix[src]
		img.Pix[dst+1] = b.Pix[src+1]
		img.Pix[dst+2] = b.Pix[src+2]
		img.Pix[dst+3] = 255
	}
	return img
}

// Sample decodes raw image bytes, normalizes them to 3-channel RGB (alpha is
// composited over an opaque white background, grayscale and palette images
// are expanded) and downsamples with a Lanczos filter so that
// max(width, height) <= maxDimension. Images already within the bound are
// not resized. Failures wrap ErrDecode.
func Sample(data []byte, maxDimension int) (*PixelBuffer, error) {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return nil, fmt.Errorf("%w: zero-dimension %s image", ErrDecode, format)
	}

	flat := flatten(img)
	if srcW > maxDimension || srcH > maxDimension {
		flat = imaging.Fit(flat, maxDimension, maxDimension, imaging.Lanczos)
	}

	w, h := flat.Rect.Dx(), flat.Rect.Dy()
	pix := make([]uint8, 0, w*h*3)
	for i := 0; i < w*h; i++ {
		o := i * 4
		pix = append(pix, flat.Pix[o], flat.Pix[o+1], flat.Pix[o+2])
	}

	return &PixelBuffer{
		Pix:          pix,
		Width:        w,
		Height:       h,
		SourceWidth:  srcW,
		SourceHeight: srcH,
	}, nil
}

// flatten normalizes any decoded image to opaque NRGBA, compositing partial
// or full transparency over a white background.
func flatten(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 0; i < len(dst.Pix); i += 4 {
		a := uint32(dst.Pix[i+3])
		if a == 255 {
			continue
		}
		for c := 0; c < 3; c++ {
			v := uint32(dst.Pix[i+c])
			dst.Pix[i+c] = uint8((v*a + 255*(255-a) + 127) / 255)
		}
		dst.Pix[i+3] = 255
	}
	return dst
}

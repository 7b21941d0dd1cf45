package analyzer

import (
	"fmt"

	"github.com/jmylchreest/piccolor/internal/cluster"
	"github.com/jmylchreest/piccolor/internal/layout"
	"github.com/jmylchreest/piccolor/internal/sampler"
)

// MaxColorsLimit bounds the requested palette size.
const MaxColorsLimit = 32

// Config holds the recognized options for one analysis request.
type Config struct {
	// MaxColors is the requested palette size (1-32). The result may hold
	// fewer colours when the image has fewer distinct colours.
	MaxColors int

	// MaxDimension bounds the longest edge of the sampled pixel buffer.
	MaxDimension int

	// Seed drives k-means centroid initialization. The default is a fixed
	// constant so repeated analyses are bit-identical.
	Seed int64

	// Algorithm selects the clustering strategy.
	Algorithm cluster.Algorithm

	// LayoutMode selects the canvas packing strategy.
	LayoutMode layout.Mode

	// CanvasSize is the side length of the square layout canvas.
	CanvasSize int
}

// DefaultConfig returns the default analysis configuration.
func DefaultConfig() Config {
	return Config{
		MaxColors:    16,
		MaxDimension: sampler.DefaultMaxDimension,
		Seed:         cluster.DefaultSeed,
		Algorithm:    cluster.AlgorithmKMeans,
		LayoutMode:   layout.ModeGrid,
		CanvasSize:   layout.DefaultCanvasSize,
	}
}

// Validate checks the configuration before an analysis runs.
func (c Config) Validate() error {
	if c.MaxColors < 1 || c.MaxColors > MaxColorsLimit {
		return fmt.Errorf("max colours must be between 1 and %d, got %d", MaxColorsLimit, c.MaxColors)
	}
	if c.MaxDimension < 1 {
		return fmt.Errorf("max dimension must be at least 1, got %d", c.MaxDimension)
	}
	if c.CanvasSize < 1 {
		return fmt.Errorf("canvas size must be at least 1, got %d", c.CanvasSize)
	}
	if !cluster.IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s (valid algorithms: %v)", c.Algorithm, cluster.ValidAlgorithms())
	}
	if _, err := layout.ParseMode(string(c.LayoutMode)); err != nil {
		return err
	}
	return nil
}

package cluster

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/jmylchreest/piccolor/internal/colour"
	"github.com/jmylchreest/piccolor/internal/sampler"
)

// buffer builds a PixelBuffer from explicit pixels, row-major.
func buffer(w, h int, pixels []colour.RGB) *sampler.PixelBuffer {
	pix := make([]uint8, 0, len(pixels)*3)
	for _, p := range pixels {
		pix = append(pix, p.R, p.G, p.B)
	}
	return &sampler.PixelBuffer{Pix: pix, Width: w, Height: h, SourceWidth: w, SourceHeight: h}
}

func solidBuffer(w, h int, c colour.RGB) *sampler.PixelBuffer {
	pixels := make([]colour.RGB, w*h)
	for i := range pixels {
		pixels[i] = c
	}
	return buffer(w, h, pixels)
}

func TestKMeansSolidColour(t *testing.T) {
	red := colour.RGB{R: 255, G: 0, B: 0}
	buf := solidBuffer(100, 100, red)

	res, err := NewKMeans(DefaultSeed).Cluster(context.Background(), buf, 16)
	if err != nil {
		t.Fatalf("Cluster returned error: %v", err)
	}

	if len(res.Clusters) != 1 {
		t.Fatalf("solid image produced %d clusters, want 1", len(res.Clusters))
	}
	if res.Clusters[0].Centroid != red {
		t.Errorf("centroid = %+v, want %+v", res.Clusters[0].Centroid, red)
	}
	if res.Clusters[0].PixelCount != 10000 {
		t.Errorf("pixel count = %d, want 10000", res.Clusters[0].PixelCount)
	}
	if res.TotalPixels != 10000 {
		t.Errorf("total pixels = %d, want 10000", res.TotalPixels)
	}
}

func TestKMeansTwoColourTie(t *testing.T) {
	red := colour.RGB{R: 255, G: 0, B: 0}
	blue := colour.RGB{R: 0, G: 0, B: 255}
	buf := buffer(2, 2, []colour.RGB{red, red, blue, blue})

	res, err := NewKMeans(DefaultSeed).Cluster(context.Background(), buf, 2)
	if err != nil {
		t.Fatalf("Cluster returned error: %v", err)
	}

	if len(res.Clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(res.Clusters))
	}
	// Exact tie on counts: blue sorts before red lexicographically.
	if res.Clusters[0].Centroid != blue || res.Clusters[1].Centroid != red {
		t.Errorf("tie-break order wrong: got %+v then %+v", res.Clusters[0].Centroid, res.Clusters[1].Centroid)
	}
	for _, c := range res.Clusters {
		if c.PixelCount != 2 {
			t.Errorf("cluster %+v count = %d, want 2", c.Centroid, c.PixelCount)
		}
	}
}

func TestKMeansFewerDistinctThanK(t *testing.T) {
	pixels := make([]colour.RGB, 0, 30)
	for i := 0; i < 10; i++ {
		pixels = append(pixels,
			colour.RGB{R: 255},
			colour.RGB{G: 255},
			colour.RGB{B: 255},
		)
	}
	buf := buffer(6, 5, pixels)

	res, err := NewKMeans(DefaultSeed).Cluster(context.Background(), buf, 16)
	if err != nil {
		t.Fatalf("Cluster returned error: %v", err)
	}
	if len(res.Clusters) != 3 {
		t.Errorf("3 distinct colours with k=16 yielded %d clusters, want 3", len(res.Clusters))
	}
}

func TestKMeansCountsSumExactly(t *testing.T) {
	// 64 distinct colours, k=4 forces the iterative path.
	pixels := make([]colour.RGB, 0, 256)
	for r := 0; r < 4; r++ {
		for g := 0; g < 4; g++ {
			for b := 0; b < 4; b++ {
				c := colour.RGB{R: uint8(r * 80), G: uint8(g * 80), B: uint8(b * 80)}
				pixels = append(pixels, c, c, c, c)
			}
		}
	}
	buf := buffer(16, 16, pixels)

	res, err := NewKMeans(DefaultSeed).Cluster(context.Background(), buf, 4)
	if err != nil {
		t.Fatalf("Cluster returned error: %v", err)
	}

	if len(res.Clusters) == 0 || len(res.Clusters) > 4 {
		t.Fatalf("got %d clusters, want 1..4", len(res.Clusters))
	}

	var sum uint64
	for _, c := range res.Clusters {
		if c.PixelCount == 0 {
			t.Error("result contains an empty cluster")
		}
		sum += c.PixelCount
	}
	if sum != res.TotalPixels || sum != 256 {
		t.Errorf("counts sum to %d, want exactly %d", sum, res.TotalPixels)
	}
}

func TestKMeansDeterministic(t *testing.T) {
	pixels := make([]colour.RGB, 0, 400)
	for i := 0; i < 400; i++ {
		// A fixed gradient with more distinct colours than k.
		pixels = append(pixels, colour.RGB{
			R: uint8(i % 256),
			G: uint8((i * 7) % 256),
			B: uint8((i * 13) % 256),
		})
	}
	buf := buffer(20, 20, pixels)

	first, err := NewKMeans(DefaultSeed).Cluster(context.Background(), buf, 8)
	if err != nil {
		t.Fatalf("first run returned error: %v", err)
	}
	second, err := NewKMeans(DefaultSeed).Cluster(context.Background(), buf, 8)
	if err != nil {
		t.Fatalf("second run returned error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("same buffer, k and seed produced different results")
	}
}

func TestKMeansEmptyBuffer(t *testing.T) {
	buf := &sampler.PixelBuffer{}
	_, err := NewKMeans(DefaultSeed).Cluster(context.Background(), buf, 4)
	if !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("error = %v, want ErrEmptyBuffer", err)
	}
}

func TestKMeansCancelled(t *testing.T) {
	pixels := make([]colour.RGB, 0, 10000)
	for i := 0; i < 10000; i++ {
		pixels = append(pixels, colour.RGB{
			R: uint8(i % 251),
			G: uint8((i * 3) % 241),
			B: uint8((i * 11) % 239),
		})
	}
	buf := buffer(100, 100, pixels)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewKMeans(DefaultSeed).Cluster(ctx, buf, 8)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestNewClusterer(t *testing.T) {
	for _, alg := range ValidAlgorithms() {
		if _, err := NewClusterer(alg, DefaultSeed); err != nil {
			t.Errorf("NewClusterer(%s) returned error: %v", alg, err)
		}
	}
	if _, err := NewClusterer("mediancut", DefaultSeed); err == nil {
		t.Error("NewClusterer with unknown algorithm expected error, got nil")
	}
}

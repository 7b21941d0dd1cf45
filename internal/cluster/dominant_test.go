package cluster

import (
	"context"
	"errors"
	"testing"

	"github.com/jmylchreest/piccolor/internal/colour"
	"github.com/jmylchreest/piccolor/internal/sampler"
)

func TestDominantSolidColour(t *testing.T) {
	red := colour.RGB{R: 255, G: 0, B: 0}
	buf := solidBuffer(50, 50, red)

	res, err := (&Dominant{}).Cluster(context.Background(), buf, 8)
	if err != nil {
		t.Fatalf("Cluster returned error: %v", err)
	}
	if len(res.Clusters) != 1 {
		t.Fatalf("solid image produced %d clusters, want 1", len(res.Clusters))
	}
	if res.Clusters[0].Centroid != red || res.Clusters[0].PixelCount != 2500 {
		t.Errorf("cluster = %+v, want {%+v 2500}", res.Clusters[0], red)
	}
}

func TestDominantCountsSumExactly(t *testing.T) {
	pixels := make([]colour.RGB, 0, 1024)
	for i := 0; i < 1024; i++ {
		pixels = append(pixels, colour.RGB{
			R: uint8(i % 256),
			G: uint8((i * 5) % 256),
			B: uint8((i * 9) % 256),
		})
	}
	buf := buffer(32, 32, pixels)

	res, err := (&Dominant{}).Cluster(context.Background(), buf, 4)
	if err != nil {
		t.Fatalf("Cluster returned error: %v", err)
	}

	var sum uint64
	for _, c := range res.Clusters {
		sum += c.PixelCount
	}
	if sum != res.TotalPixels || sum != 1024 {
		t.Errorf("counts sum to %d, want exactly %d", sum, res.TotalPixels)
	}
}

func TestDominantEmptyBuffer(t *testing.T) {
	_, err := (&Dominant{}).Cluster(context.Background(), &sampler.PixelBuffer{}, 4)
	if !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("error = %v, want ErrEmptyBuffer", err)
	}
}

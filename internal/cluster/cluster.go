// Package cluster partitions sampled pixels into representative colour
// clusters.
package cluster

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jmylchreest/piccolor/internal/colour"
	"github.com/jmylchreest/piccolor/internal/sampler"
)

// ErrEmptyBuffer indicates a structurally invalid (zero-pixel) input buffer.
var ErrEmptyBuffer = errors.New("pixel buffer contains no pixels")

// Cluster is one colour cluster: its mean colour rounded to 8-bit channels
// and the number of buffer pixels assigned to it.
type Cluster struct {
	Centroid   colour.RGB `json:"centroid"`
	PixelCount uint64     `json:"pixel_count"`
}

// Result holds the clusters for one buffer. Pixel counts across clusters
// always sum to TotalPixels exactly.
type Result struct {
	Clusters    []Cluster `json:"clusters"`
	TotalPixels uint64    `json:"total_pixels"`
}

// Centroids returns the cluster centroids in result order.
func (r *Result) Centroids() []colour.RGB {
	out := make([]colour.RGB, len(r.Clusters))
	for i, c := range r.Clusters {
		out[i] = c.Centroid
	}
	return out
}

// Counts returns the per-cluster pixel counts in result order.
func (r *Result) Counts() []uint64 {
	out := make([]uint64, len(r.Clusters))
	for i, c := range r.Clusters {
		out[i] = c.PixelCount
	}
	return out
}

// Algorithm selects the clustering strategy.
type Algorithm string

const (
	// AlgorithmKMeans uses seeded k-means clustering in RGB space.
	// Fully deterministic for a given seed.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmDominant uses the dominantcolor library's weighted
	// extraction. Faster on large palettes but not seed-deterministic.
	AlgorithmDominant Algorithm = "dominant"
)

// ValidAlgorithms returns the list of supported algorithms.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmKMeans, AlgorithmDominant}
}

// IsValidAlgorithm checks whether the given algorithm name is recognised.
func IsValidAlgorithm(alg Algorithm) bool {
	return slices.Contains(ValidAlgorithms(), alg)
}

// Clusterer is the interface implemented by clustering strategies.
type Clusterer interface {
	// Cluster partitions the buffer into at most k clusters. The context
	// is checked cooperatively between iterations.
	Cluster(ctx context.Context, buf *sampler.PixelBuffer, k int) (*Result, error)
}

// NewClusterer creates a Clusterer for the given algorithm. The seed drives
// centroid initialization for the k-means algorithm and is ignored by
// algorithms without a random component.
func NewClusterer(alg Algorithm, seed int64) (Clusterer, error) {
	switch alg {
	case AlgorithmKMeans:
		return NewKMeans(seed), nil
	case AlgorithmDominant:
		return &Dominant{}, nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// distinctCounts tallies every distinct colour in the buffer.
func distinctCounts(buf *sampler.PixelBuffer) map[colour.RGB]uint64 {
	counts := make(map[colour.RGB]uint64)
	for i := 0; i < buf.PixelCount(); i++ {
		counts[buf.At(i)]++
	}
	return counts
}

// exactResult builds a Result directly from distinct colour counts, used
// when the buffer holds no more distinct colours than requested clusters.
// Ordering is deterministic: descending count, ties ascending RGB.
func exactResult(counts map[colour.RGB]uint64, total uint64) *Result {
	clusters := make([]Cluster, 0, len(counts))
	for rgb, n := range counts {
		clusters = append(clusters, Cluster{Centroid: rgb, PixelCount: n})
	}
	slices.SortFunc(clusters, func(a, b Cluster) int {
		if a.PixelCount != b.PixelCount {
			if a.PixelCount > b.PixelCount {
				return -1
			}
			return 1
		}
		return a.Centroid.Compare(b.Centroid)
	})
	return &Result{Clusters: clusters, TotalPixels: total}
}

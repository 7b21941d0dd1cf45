package cluster

import (
	"context"
	"math"

	"github.com/cenkalti/dominantcolor"

	"github.com/jmylchreest/piccolor/internal/colour"
	"github.com/jmylchreest/piccolor/internal/sampler"
)

// Dominant clusters via the dominantcolor library's weighted extraction.
// Weights are converted to pixel counts that sum to the buffer's pixel
// count exactly. Unlike KMeans this algorithm is not seed-deterministic.
type Dominant struct{}

// Cluster partitions the buffer into at most k clusters.
func (d *Dominant) Cluster(ctx context.Context, buf *sampler.PixelBuffer, k int) (*Result, error) {
	if buf == nil || buf.PixelCount() == 0 {
		return nil, ErrEmptyBuffer
	}
	if k < 1 {
		k = 1
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := uint64(buf.PixelCount())
	counts := distinctCounts(buf)
	if len(counts) <= k {
		return exactResult(counts, total), nil
	}

	candidates := dominantcolor.FindWeight(buf.Image(), k)
	if len(candidates) == 0 {
		// Should not happen for a non-empty buffer; fall back to the
		// top-k distinct colours, folding the tail counts into the last
		// kept cluster so the totals stay exact.
		return truncateResult(exactResult(counts, total), k), nil
	}

	totalWeight := 0.0
	for _, c := range candidates {
		totalWeight += c.Weight
	}
	if totalWeight <= 0 {
		totalWeight = float64(len(candidates))
	}

	clusters := make([]Cluster, 0, len(candidates))
	var assigned uint64
	largest := 0
	for i, c := range candidates {
		n := uint64(math.Floor(c.Weight / totalWeight * float64(total)))
		clusters = append(clusters, Cluster{
			Centroid:   colour.RGB{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B},
			PixelCount: n,
		})
		assigned += n
		if clusters[i].PixelCount > clusters[largest].PixelCount {
			largest = i
		}
	}

	// Flooring leaves a remainder; give it to the largest cluster so the
	// counts sum to the pixel total exactly.
	clusters[largest].PixelCount += total - assigned

	return &Result{Clusters: clusters, TotalPixels: total}, nil
}

// truncateResult caps a result at k clusters, folding the dropped tail's
// pixel counts into the last kept cluster.
func truncateResult(r *Result, k int) *Result {
	if len(r.Clusters) <= k {
		return r
	}
	var tail uint64
	for _, c := range r.Clusters[k:] {
		tail += c.PixelCount
	}
	r.Clusters = r.Clusters[:k]
	r.Clusters[k-1].PixelCount += tail
	return r
}

package cluster

import (
	"context"
	"math"
	"math/rand"

	"github.com/jmylchreest/piccolor/internal/colour"
	"github.com/jmylchreest/piccolor/internal/sampler"
)

const (
	// DefaultSeed is the fixed seed used when the caller does not provide
	// one, keeping repeated analyses of the same image bit-identical.
	DefaultSeed int64 = 42

	maxIterations        = 100
	convergenceTolerance = 1.0

	// Iterations run over at most this many pixels; the final assignment
	// pass always covers the whole buffer so counts stay exact.
	maxIterationSamples = 50000
)

// KMeans clusters pixels in RGB space with a seeded, deterministic k-means.
// Initialization is k-means++-style, driven entirely by the seed rather
// than ambient random state. The result is a converged local minimum, not
// a guaranteed global optimum.
type KMeans struct {
	seed          int64
	maxIterations int
	tolerance     float64
}

// NewKMeans creates a KMeans clusterer with the given seed.
func NewKMeans(seed int64) *KMeans {
	return &KMeans{
		seed:          seed,
		maxIterations: maxIterations,
		tolerance:     convergenceTolerance,
	}
}

// point3 is a point in 3D RGB colour space.
type point3 struct {
	r, g, b float64
}

// sqDist is the squared Euclidean distance between two points.
func (p point3) sqDist(q point3) float64 {
	dr := p.r - q.r
	dg := p.g - q.g
	db := p.b - q.b
	return dr*dr + dg*dg + db*db
}

func (p point3) dist(q point3) float64 {
	return math.Sqrt(p.sqDist(q))
}

// Cluster partitions the buffer into at most k clusters.
//
// When the buffer has no more distinct colours than k, those colours are
// returned exactly with exact counts instead of running k-means. Returns
// ErrEmptyBuffer for a zero-pixel buffer; legitimate images never fail.
func (e *KMeans) Cluster(ctx context.Context, buf *sampler.PixelBuffer, k int) (*Result, error) {
	if buf == nil || buf.PixelCount() == 0 {
		return nil, ErrEmptyBuffer
	}
	if k < 1 {
		k = 1
	}

	total := uint64(buf.PixelCount())
	counts := distinctCounts(buf)
	if len(counts) <= k {
		return exactResult(counts, total), nil
	}

	points := bufferPoints(buf)
	sample := iterationSample(points)

	rng := rand.New(rand.NewSource(e.seed))
	centroids := initCentroids(sample, k, rng)

	assignments := make([]int, len(sample))
	for iter := 0; iter < e.maxIterations; iter++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		for i, p := range sample {
			assignments[i] = nearestCentroid(p, centroids)
		}

		next := meanCentroids(sample, assignments, centroids)

		movement := 0.0
		for i := range centroids {
			movement += centroids[i].dist(next[i])
		}
		centroids = next

		if movement/float64(len(centroids)) < e.tolerance {
			break
		}
	}

	// Final pass over every pixel: exact counts and centroid means.
	sums := make([]point3, len(centroids))
	pixelCounts := make([]uint64, len(centroids))
	for _, p := range points {
		c := nearestCentroid(p, centroids)
		sums[c].r += p.r
		sums[c].g += p.g
		sums[c].b += p.b
		pixelCounts[c]++
	}

	// Empty clusters are dropped; clusters whose means round to the same
	// 8-bit colour are merged so the palette never repeats an entry.
	clusters := make([]Cluster, 0, len(centroids))
	byColour := make(map[colour.RGB]int, len(centroids))
	for i, n := range pixelCounts {
		if n == 0 {
			continue
		}
		rgb := colour.RGB{
			R: roundChannel(sums[i].r / float64(n)),
			G: roundChannel(sums[i].g / float64(n)),
			B: roundChannel(sums[i].b / float64(n)),
		}
		if j, ok := byColour[rgb]; ok {
			clusters[j].PixelCount += n
			continue
		}
		byColour[rgb] = len(clusters)
		clusters = append(clusters, Cluster{Centroid: rgb, PixelCount: n})
	}

	return &Result{Clusters: clusters, TotalPixels: total}, nil
}

// bufferPoints converts every buffer pixel to a point in RGB space.
func bufferPoints(buf *sampler.PixelBuffer) []point3 {
	points := make([]point3, buf.PixelCount())
	for i := range points {
		rgb := buf.At(i)
		points[i] = point3{r: float64(rgb.R), g: float64(rgb.G), b: float64(rgb.B)}
	}
	return points
}

// iterationSample returns a strided subset of points for the iteration
// loop. The stride keeps sampling deterministic for identical buffers.
func iterationSample(points []point3) []point3 {
	if len(points) <= maxIterationSamples {
		return points
	}
	stride := (len(points) + maxIterationSamples - 1) / maxIterationSamples
	sample := make([]point3, 0, maxIterationSamples)
	for i := 0; i < len(points); i += stride {
		sample = append(sample, points[i])
	}
	return sample
}

// initCentroids seeds centroids with a k-means++-style spread: the first is
// drawn from the rng, each subsequent one with probability proportional to
// its squared distance from the nearest existing centroid.
func initCentroids(points []point3, k int, rng *rand.Rand) []point3 {
	centroids := make([]point3, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		totalDist := 0.0
		for i, p := range points {
			minDist := math.MaxFloat64
			for _, c := range centroids {
				if d := p.sqDist(c); d < minDist {
					minDist = d
				}
			}
			distances[i] = minDist
			totalDist += minDist
		}

		if totalDist == 0 {
			// Every remaining point coincides with a centroid; the
			// sample has fewer distinct colours than k.
			break
		}

		target := rng.Float64() * totalDist
		cumulative := 0.0
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				centroids = append(centroids, points[i])
				break
			}
		}
	}

	return centroids
}

// nearestCentroid returns the index of the closest centroid by squared
// Euclidean distance, lowest index winning ties.
func nearestCentroid(p point3, centroids []point3) int {
	nearest := 0
	minDist := math.MaxFloat64
	for i, c := range centroids {
		if d := p.sqDist(c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// meanCentroids recomputes each centroid as the mean of its assigned
// points. Clusters that received no points keep their previous centroid so
// the update stays deterministic.
func meanCentroids(points []point3, assignments []int, prev []point3) []point3 {
	sums := make([]point3, len(prev))
	counts := make([]int, len(prev))
	for i, p := range points {
		c := assignments[i]
		sums[c].r += p.r
		sums[c].g += p.g
		sums[c].b += p.b
		counts[c]++
	}

	next := make([]point3, len(prev))
	for i := range next {
		if counts[i] == 0 {
			next[i] = prev[i]
			continue
		}
		n := float64(counts[i])
		next[i] = point3{r: sums[i].r / n, g: sums[i].g / n, b: sums[i].b / n}
	}
	return next
}

func roundChannel(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}

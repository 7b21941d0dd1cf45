// Package analyzer orchestrates the palette extraction pipeline: sampling,
// clustering, ranking and layout for one image.
package analyzer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/piccolor/internal/cluster"
	"github.com/jmylchreest/piccolor/internal/colour"
	"github.com/jmylchreest/piccolor/internal/layout"
	"github.com/jmylchreest/piccolor/internal/sampler"
)

// Result is the complete outcome of one analysis. It is immutable once
// returned; a new image produces a whole new Result rather than patching
// this one.
type Result struct {
	SourceWidth   int                `json:"source_width"`
	SourceHeight  int                `json:"source_height"`
	SampledWidth  int                `json:"sampled_width"`
	SampledHeight int                `json:"sampled_height"`
	Colors        []colour.Info      `json:"colors"`
	Placements    []layout.Placement `json:"placements"`
	Elapsed       time.Duration      `json:"elapsed_ns"`
}

// Summary returns a one-line human-readable description of the result.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d colours from %dx%d image (sampled %dx%d) in %s",
		len(r.Colors), r.SourceWidth, r.SourceHeight,
		r.SampledWidth, r.SampledHeight, r.Elapsed.Round(time.Millisecond))
}

// Outcome pairs a result with its error for asynchronous delivery. Exactly
// one of the two fields is set.
type Outcome struct {
	Result *Result
	Err    error
}

// Analyzer runs analysis requests. Each request operates on its own pixel
// buffer and cluster state, so concurrent analyses share no mutable state;
// the generation counter only arbitrates which result may be delivered.
type Analyzer struct {
	logger hclog.Logger

	generation atomic.Uint64

	mu         sync.Mutex
	cancelLast context.CancelFunc
}

// New creates an Analyzer. A nil logger disables logging.
func New(logger hclog.Logger) *Analyzer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Analyzer{logger: logger}
}

// Analyze runs the full pipeline synchronously for one image. Any stage
// failure surfaces as a single tagged error; a partial result is never
// returned. The context is honoured between clustering iterations.
func (a *Analyzer) Analyze(ctx context.Context, data []byte, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	start := time.Now()

	buf, err := sampler.Sample(data, cfg.MaxDimension)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	a.logger.Debug("sampled image",
		"source", fmt.Sprintf("%dx%d", buf.SourceWidth, buf.SourceHeight),
		"sampled", fmt.Sprintf("%dx%d", buf.Width, buf.Height))

	clusterer, err := cluster.NewClusterer(cfg.Algorithm, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("create clusterer: %w", err)
	}

	clustered, err := clusterer.Cluster(ctx, buf, cfg.MaxColors)
	if err != nil {
		return nil, fmt.Errorf("cluster colours: %w", err)
	}
	a.logger.Debug("clustered pixels",
		"clusters", len(clustered.Clusters),
		"pixels", clustered.TotalPixels,
		"algorithm", string(cfg.Algorithm))

	colors := colour.Rank(clustered.Centroids(), clustered.Counts())
	placements := layout.Layout(colors, cfg.CanvasSize, cfg.LayoutMode)

	result := &Result{
		SourceWidth:   buf.SourceWidth,
		SourceHeight:  buf.SourceHeight,
		SampledWidth:  buf.Width,
		SampledHeight: buf.Height,
		Colors:        colors,
		Placements:    placements,
		Elapsed:       time.Since(start),
	}
	a.logger.Debug("analysis complete", "colours", len(colors), "elapsed", result.Elapsed)

	return result, nil
}

// AnalyzeAsync runs the pipeline off the caller's goroutine and delivers
// the outcome on the returned channel, which is closed after at most one
// send. Starting a new request supersedes any in-flight one: the older
// request is cancelled, and if it still completes its outcome is discarded
// rather than delivered (latest-request-wins, not completion-order-wins).
func (a *Analyzer) AnalyzeAsync(ctx context.Context, data []byte, cfg Config) <-chan Outcome {
	gen := a.generation.Add(1)
	runCtx, cancel := context.WithCancel(ctx)

	a.mu.Lock()
	if a.cancelLast != nil {
		a.cancelLast()
	}
	a.cancelLast = cancel
	a.mu.Unlock()

	out := make(chan Outcome, 1)
	go func() {
		defer close(out)

		result, err := a.Analyze(runCtx, data, cfg)

		// Compare generations before delivering: a superseded request
		// never outruns the one that replaced it.
		if a.generation.Load() != gen {
			a.logger.Debug("discarding superseded analysis", "generation", gen)
			return
		}
		if err != nil {
			out <- Outcome{Err: err}
			return
		}
		out <- Outcome{Result: result}
	}()

	return out
}

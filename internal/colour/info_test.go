package colour

import (
	"math"
	"strings"
	"testing"
)

func TestRankOrdering(t *testing.T) {
	centroids := []RGB{
		{R: 10, G: 20, B: 30},
		{R: 200, G: 100, B: 50},
		{R: 0, G: 0, B: 0},
	}
	counts := []uint64{25, 50, 25}

	infos := Rank(centroids, counts)
	if len(infos) != 3 {
		t.Fatalf("Rank returned %d entries, want 3", len(infos))
	}

	if infos[0].RGB != centroids[1] {
		t.Errorf("largest cluster should rank first, got %+v", infos[0].RGB)
	}
	if infos[0].Percentage != 50.0 {
		t.Errorf("top percentage = %v, want 50.0", infos[0].Percentage)
	}

	// 25/25 tie: black sorts before {10,20,30} lexicographically.
	if infos[1].RGB != centroids[2] || infos[2].RGB != centroids[0] {
		t.Errorf("tie-break order wrong: got %+v then %+v", infos[1].RGB, infos[2].RGB)
	}
}

func TestRankPercentagesSumTo100(t *testing.T) {
	centroids := []RGB{
		{R: 1, G: 1, B: 1},
		{R: 2, G: 2, B: 2},
		{R: 3, G: 3, B: 3},
		{R: 4, G: 4, B: 4},
	}
	counts := []uint64{3, 7, 11, 979}

	infos := Rank(centroids, counts)

	sum := 0.0
	for _, i := range infos {
		if i.Percentage < 0 || i.Percentage > 100 {
			t.Errorf("percentage %v outside [0,100]", i.Percentage)
		}
		sum += i.Percentage
	}
	if math.Abs(sum-100.0) > 0.01 {
		t.Errorf("percentages sum to %v, want 100 within 0.01", sum)
	}
}

func TestRankHexMatchesRGB(t *testing.T) {
	infos := Rank([]RGB{{R: 255, G: 0, B: 0}}, []uint64{10})
	if len(infos) != 1 {
		t.Fatalf("Rank returned %d entries, want 1", len(infos))
	}
	if infos[0].Hex != "#FF0000" {
		t.Errorf("Hex = %q, want #FF0000", infos[0].Hex)
	}
	if infos[0].Percentage != 100.0 {
		t.Errorf("single cluster percentage = %v, want 100.0", infos[0].Percentage)
	}
}

func TestRankEmpty(t *testing.T) {
	if got := Rank(nil, nil); got != nil {
		t.Errorf("Rank(nil, nil) = %v, want nil", got)
	}
	if got := Rank([]RGB{{}}, []uint64{0}); got != nil {
		t.Errorf("Rank with zero total = %v, want nil", got)
	}
}

func TestPreviewBarSegments(t *testing.T) {
	colors := []Info{
		{RGB: RGB{R: 255, G: 0, B: 0}, Percentage: 75},
		{RGB: RGB{R: 0, G: 0, B: 255}, Percentage: 25},
	}

	bar := PreviewBar(colors, 40)
	if bar == "" {
		t.Fatal("PreviewBar returned empty string")
	}
	if !strings.Contains(bar, "48;2;255;0;0") || !strings.Contains(bar, "48;2;0;0;255") {
		t.Error("PreviewBar missing expected colour escape sequences")
	}

	// Rendered cells (spaces) should not exceed the requested width.
	cells := strings.Count(bar, " ")
	if cells > 40 {
		t.Errorf("PreviewBar used %d cells, want <= 40", cells)
	}
}

func TestLuminanceExtremes(t *testing.T) {
	if l := Luminance(RGB{R: 0, G: 0, B: 0}); l != 0 {
		t.Errorf("Luminance(black) = %v, want 0", l)
	}
	if l := Luminance(RGB{R: 255, G: 255, B: 255}); math.Abs(l-1.0) > 1e-9 {
		t.Errorf("Luminance(white) = %v, want 1", l)
	}
}

package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointSet(ps []Point) map[Point]bool {
	out := make(map[Point]bool, len(ps))
	for _, p := range ps {
		out[p] = true
	}
	return out
}

func TestFloodFillUniformRegion(t *testing.T) {
	d := newDoc(t, 6, 5)
	region, err := FloodFill(d, Pt(2, 2), red)
	require.NoError(t, err)
	assert.Len(t, region, 30)
	assert.Len(t, pointSet(region), 30, "each cell returned once")
}

func TestFloodFillStopsAtBoundary(t *testing.T) {
	// A vertical wall at x=2 splits a 5x3 grid.
	d := newDoc(t, 5, 3)
	for y := 0; y < 3; y++ {
		_, _ = d.SetPixel(2, y, Black)
	}
	region, err := FloodFill(d, Pt(0, 0), red)
	require.NoError(t, err)
	set := pointSet(region)
	assert.Len(t, set, 6)
	for p := range set {
		assert.Less(t, p.X, 2)
	}
}

func TestFloodFillExcludesDiagonalNeighbours(t *testing.T) {
	// . X
	// X .
	d := newDoc(t, 2, 2)
	_, _ = d.SetPixel(1, 0, Black)
	_, _ = d.SetPixel(0, 1, Black)

	region, err := FloodFill(d, Pt(0, 0), red)
	require.NoError(t, err)
	assert.Equal(t, []Point{{0, 0}}, region)
}

func TestFloodFillSameColourIsEmpty(t *testing.T) {
	d := newDoc(t, 4, 4)
	region, err := FloodFill(d, Pt(1, 1), White)
	require.NoError(t, err)
	assert.Empty(t, region)
	assert.True(t, d.Tracker().IsEmpty())
}

func TestFloodFillSeedOutOfBounds(t *testing.T) {
	d := newDoc(t, 4, 4)
	_, err := FloodFill(d, Pt(4, 0), red)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestFloodFillDoesNotMutate(t *testing.T) {
	d := newDoc(t, 8, 8)
	_, _ = d.SetPixel(3, 3, blue)
	d.Tracker().Drain()

	_, err := FloodFill(d, Pt(0, 0), red)
	require.NoError(t, err)
	assert.Equal(t, map[Point]Color{{3, 3}: blue}, d.Pixels())
	assert.True(t, d.Tracker().IsEmpty())
}

func TestFloodFillPaintedSeed(t *testing.T) {
	d := newDoc(t, 4, 4)
	_, _ = d.SetPixel(0, 0, blue)
	_, _ = d.SetPixel(1, 0, blue)
	_, _ = d.SetPixel(1, 1, blue)
	_, _ = d.SetPixel(3, 3, blue)

	region, err := FloodFill(d, Pt(1, 0), red)
	require.NoError(t, err)
	assert.Equal(t, pointSet([]Point{{0, 0}, {1, 0}, {1, 1}}), pointSet(region))
}

func TestFloodFillLargeRegionIsIterative(t *testing.T) {
	d, err := New(256, 256, White)
	require.NoError(t, err)
	region, err := FloodFill(d, Pt(128, 128), red)
	require.NoError(t, err)
	assert.Len(t, region, 256*256)
}

func BenchmarkFloodFill(b *testing.B) {
	d, _ := New(256, 256, White)
	for i := 0; i < b.N; i++ {
		_, _ = FloodFill(d, Pt(0, 0), red)
	}
}

package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoc(t *testing.T, w, h int) *Document {
	t.Helper()
	d, err := New(w, h, White)
	require.NoError(t, err)
	d.Tracker().Drain()
	return d
}

var (
	red   = RGB(255, 0, 0)
	green = RGB(0, 255, 0)
	blue  = RGB(0, 0, 255)
)

func TestNewValidatesDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 4}, {4, 0}, {-1, 1}, {257, 1}, {1, 1000}} {
		_, err := New(dims[0], dims[1], White)
		assert.ErrorIs(t, err, ErrInvalidDimensions, "dims %v", dims)
	}

	d, err := New(256, 1, White)
	require.NoError(t, err)
	assert.Equal(t, 256, d.Width())
	assert.Equal(t, 1, d.Height())
	assert.NotEmpty(t, d.ID())

	_, err = New(10, 10, White, WithLimits(Limits{Min: 2, Max: 8}))
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestNewMarksWholeGridDirty(t *testing.T) {
	d, err := New(3, 2, White)
	require.NoError(t, err)
	assert.Equal(t, []Rect{{W: 3, H: 2}}, d.Tracker().Drain())
}

func TestSetGetPixel(t *testing.T) {
	d := newDoc(t, 4, 4)

	old, err := d.SetPixel(1, 2, red)
	require.NoError(t, err)
	assert.Equal(t, White, old)

	got, err := d.GetPixel(1, 2)
	require.NoError(t, err)
	assert.Equal(t, red, got)

	old, err = d.SetPixel(1, 2, blue)
	require.NoError(t, err)
	assert.Equal(t, red, old)
	assert.Equal(t, 1, d.Len())
	assert.True(t, d.Modified())
}

func TestSetPixelToBackgroundRemovesEntry(t *testing.T) {
	d := newDoc(t, 4, 4)
	_, err := d.SetPixel(0, 0, red)
	require.NoError(t, err)
	require.Equal(t, 1, d.Len())

	_, err = d.SetPixel(0, 0, White)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Len())
	assert.Empty(t, d.Pixels())

	data, err := d.Serialize()
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"0,0"`)
}

func TestPixelOutOfBounds(t *testing.T) {
	d := newDoc(t, 4, 3)
	for _, p := range []Point{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {100, 100}} {
		_, err := d.GetPixel(p.X, p.Y)
		assert.ErrorIs(t, err, ErrOutOfBounds)
		_, err = d.SetPixel(p.X, p.Y, red)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	}
	assert.Equal(t, 0, d.Len())
	assert.True(t, d.Tracker().IsEmpty())
	assert.False(t, d.Modified())
}

func TestSetPixelMarksDirty(t *testing.T) {
	d := newDoc(t, 8, 8)
	_, _ = d.SetPixel(5, 6, red)
	assert.Equal(t, []Rect{{X: 5, Y: 6, W: 1, H: 1}}, d.Tracker().Drain())

	// same colour again is not a change
	_, _ = d.SetPixel(5, 6, red)
	assert.True(t, d.Tracker().IsEmpty())
}

func TestApplyIsAllOrNothing(t *testing.T) {
	d := newDoc(t, 4, 4)
	err := d.Apply([]Cell{
		{Point: Pt(0, 0), Color: red},
		{Point: Pt(9, 9), Color: red},
	})
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, 0, d.Len())
	assert.True(t, d.Tracker().IsEmpty())

	require.NoError(t, d.Apply([]Cell{{Point: Pt(0, 0), Color: red}, {Point: Pt(3, 3), Color: blue}}))
	assert.Equal(t, 2, d.Len())
}

func TestResizePreservesAndDrops(t *testing.T) {
	d := newDoc(t, 4, 4)
	_, _ = d.SetPixel(0, 0, red)
	_, _ = d.SetPixel(3, 0, green)
	_, _ = d.SetPixel(1, 3, blue)
	d.Tracker().Drain()

	require.NoError(t, d.Resize(2, 3))
	assert.Equal(t, 2, d.Width())
	assert.Equal(t, 3, d.Height())
	assert.Equal(t, map[Point]Color{{0, 0}: red}, d.Pixels())
	assert.Equal(t, []Rect{{W: 2, H: 3}}, d.Tracker().Drain())

	require.NoError(t, d.Resize(4, 4))
	assert.Equal(t, map[Point]Color{{0, 0}: red}, d.Pixels(), "dropped cells must not come back")
	c, err := d.GetPixel(3, 0)
	require.NoError(t, err)
	assert.Equal(t, White, c)
}

func TestResizeValidates(t *testing.T) {
	d := newDoc(t, 4, 4)
	_, _ = d.SetPixel(3, 3, red)
	assert.ErrorIs(t, d.Resize(0, 4), ErrInvalidDimensions)
	assert.ErrorIs(t, d.Resize(4, 257), ErrInvalidDimensions)
	assert.Equal(t, 4, d.Width())
	assert.Equal(t, 1, d.Len())
}

func TestClear(t *testing.T) {
	d := newDoc(t, 5, 5)
	_, _ = d.SetPixel(1, 1, red)
	_, _ = d.SetPixel(4, 4, red)
	d.Tracker().Drain()

	d.Clear()
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, []Rect{{W: 5, H: 5}}, d.Tracker().Drain())
}

func TestDocumentsDoNotShareState(t *testing.T) {
	a := newDoc(t, 4, 4)
	b := newDoc(t, 4, 4)
	_, _ = a.SetPixel(1, 1, red)
	assert.Equal(t, 0, b.Len())
	assert.True(t, b.Tracker().IsEmpty())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestCellsAreRowMajor(t *testing.T) {
	d := newDoc(t, 4, 4)
	_, _ = d.SetPixel(3, 1, red)
	_, _ = d.SetPixel(0, 2, red)
	_, _ = d.SetPixel(1, 1, red)
	cells := d.Cells()
	require.Len(t, cells, 3)
	assert.Equal(t, Pt(1, 1), cells[0].Point)
	assert.Equal(t, Pt(3, 1), cells[1].Point)
	assert.Equal(t, Pt(0, 2), cells[2].Point)
}

func TestNonWhiteBackground(t *testing.T) {
	d, err := New(2, 2, Black)
	require.NoError(t, err)
	c, err := d.GetPixel(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Black, c)

	_, _ = d.SetPixel(0, 0, White)
	assert.Equal(t, 1, d.Len())
	_, _ = d.SetPixel(0, 0, Black)
	assert.Equal(t, 0, d.Len())
}

func TestResetStartsOver(t *testing.T) {
	d := newDoc(t, 4, 4)
	_, _ = d.SetPixel(1, 1, red)
	id := d.ID()

	require.NoError(t, d.Reset(8, 2, Black))
	assert.NotEqual(t, id, d.ID())
	assert.Equal(t, 8, d.Width())
	assert.Equal(t, Black, d.Background())
	assert.Equal(t, 0, d.Len())
	assert.False(t, d.Modified())
	assert.Equal(t, []Rect{{W: 8, H: 2}}, d.Tracker().Drain())

	assert.ErrorIs(t, d.Reset(0, 2, Black), ErrInvalidDimensions)
	assert.Equal(t, 8, d.Width())
}

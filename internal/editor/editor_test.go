package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PixelBoard/internal/config"
	"PixelBoard/internal/export"
	"PixelBoard/internal/project"
	"PixelBoard/internal/state"
	"PixelBoard/internal/tools"
)

var red = state.RGB(255, 0, 0)

func newEditor(t *testing.T, w, h int) *Editor {
	t.Helper()
	cfg := config.Default()
	cfg.Canvas.Width, cfg.Canvas.Height = w, h
	e, err := New(cfg)
	require.NoError(t, err)
	e.Drain()
	return e
}

func record(e *Editor) *[]Change {
	var got []Change
	e.OnChange(func(c Change) { got = append(got, c) })
	return &got
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Canvas.Width = 0
	_, err := New(cfg)
	assert.ErrorIs(t, err, state.ErrInvalidDimensions)
}

func TestEditsUndoRedo(t *testing.T) {
	e := newEditor(t, 4, 4)
	changes := record(e)

	require.NoError(t, e.SetPixel(1, 1, state.Black))
	require.NoError(t, e.Fill(state.Pt(0, 0), red))
	assert.Equal(t, 16, e.Document().Len())
	assert.True(t, e.Modified())

	region, err := e.Undo()
	require.NoError(t, err)
	assert.Equal(t, state.Rect{W: 4, H: 4}, region)
	assert.Equal(t, map[state.Point]state.Color{{X: 1, Y: 1}: state.Black}, e.Document().Pixels())

	_, err = e.Redo()
	require.NoError(t, err)
	assert.Equal(t, 16, e.Document().Len())

	reasons := make([]Reason, len(*changes))
	for i, c := range *changes {
		reasons[i] = c.Reason
	}
	assert.Equal(t, []Reason{Edited, Edited, Undone, Redone}, reasons)
	assert.NotEmpty(t, e.Drain())
	assert.Empty(t, e.Drain())

	assert.ErrorIs(t, e.SetPixel(9, 9, red), state.ErrOutOfBounds)
}

func TestResizeAndClearAreUndoable(t *testing.T) {
	e := newEditor(t, 4, 4)
	require.NoError(t, e.SetPixel(3, 3, red))
	require.NoError(t, e.Resize(2, 2))
	assert.Equal(t, 0, e.Document().Len())

	_, err := e.Undo()
	require.NoError(t, err)
	assert.Equal(t, 4, e.Document().Width())
	assert.Equal(t, 1, e.Document().Len())

	require.NoError(t, e.Clear())
	assert.Equal(t, 0, e.Document().Len())
	_, err = e.Undo()
	require.NoError(t, err)
	assert.Equal(t, 1, e.Document().Len())

	assert.ErrorIs(t, e.Resize(300, 4), state.ErrInvalidDimensions)
}

func TestGestureRouting(t *testing.T) {
	e := newEditor(t, 5, 5)
	changes := record(e)
	e.SetColor(red)

	_, err := e.Press(state.Pt(0, 0))
	require.NoError(t, err)
	e.Drag(state.Pt(2, 0))
	res, err := e.Release(state.Pt(2, 0))
	require.NoError(t, err)
	require.NotNil(t, res.Committed)

	require.Len(t, *changes, 3)
	assert.Equal(t, Stroked, (*changes)[0].Reason)
	assert.Equal(t, Stroked, (*changes)[1].Reason)
	assert.Equal(t, Edited, (*changes)[2].Reason)
	assert.Equal(t, state.Rect{W: 3, H: 1}, (*changes)[2].Region)

	require.NoError(t, e.SetTool(tools.Picker))
	res, err = e.Press(state.Pt(1, 0))
	require.NoError(t, err)
	require.NotNil(t, res.Picked)
	assert.Equal(t, red, *res.Picked)
	assert.ErrorIs(t, e.SetTool(tools.Kind(-1)), tools.ErrUnknownTool)
}

func TestUndoFinishesPendingStroke(t *testing.T) {
	e := newEditor(t, 5, 5)
	e.SetColor(red)
	_, err := e.Press(state.Pt(0, 0))
	require.NoError(t, err)
	e.Drag(state.Pt(1, 0))

	_, err = e.Undo()
	require.NoError(t, err)
	assert.Equal(t, 0, e.Document().Len())
	assert.True(t, e.History().CanRedo())
	assert.False(t, e.Tools().Active())
}

func TestSaveOpen(t *testing.T) {
	dir := t.TempDir()
	e := newEditor(t, 4, 4)
	changes := record(e)
	assert.Equal(t, "untitled", e.Title())

	assert.ErrorIs(t, e.Save(""), ErrNoPath)
	require.NoError(t, e.SetPixel(2, 2, red))
	assert.Equal(t, "untitled *", e.Title())

	require.NoError(t, e.Save(filepath.Join(dir, "art")))
	assert.Equal(t, filepath.Join(dir, "art.json"), e.Path())
	assert.False(t, e.Modified())
	assert.Equal(t, "art.json", e.Title())
	assert.Equal(t, Saved, (*changes)[len(*changes)-1].Reason)

	other := newEditor(t, 8, 8)
	require.NoError(t, other.SetPixel(0, 0, state.Black))
	require.NoError(t, other.Open(e.Path()))
	assert.Equal(t, 4, other.Document().Width())
	assert.Equal(t, e.Document().Pixels(), other.Document().Pixels())
	assert.False(t, other.History().CanUndo(), "opening resets history")
	assert.Equal(t, e.Path(), other.Path())

	// a bad file leaves the session alone
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"width": 1}`), 0o644))
	assert.ErrorIs(t, other.Open(bad), state.ErrInvalidFormat)
	assert.Equal(t, e.Path(), other.Path())
	assert.ErrorIs(t, other.Open(filepath.Join(dir, "missing.json")), project.ErrFileOperation)

	// save to the bound path
	require.NoError(t, other.SetPixel(3, 3, state.Black))
	require.NoError(t, other.Save(""))
	assert.False(t, other.Modified())
}

func TestOpenKeepsPendingStrokeOnError(t *testing.T) {
	dir := t.TempDir()
	src := newEditor(t, 2, 2)
	require.NoError(t, src.SetPixel(1, 1, state.Black))
	require.NoError(t, src.Save(filepath.Join(dir, "small.json")))

	e := newEditor(t, 4, 4)
	e.SetColor(red)
	_, err := e.Press(state.Pt(0, 0))
	require.NoError(t, err)
	e.Drag(state.Pt(2, 0))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"width": 1}`), 0o644))
	assert.Error(t, e.Open(bad))
	assert.True(t, e.Tools().Active())
	assert.Equal(t, 3, e.Document().Len())
	assert.False(t, e.History().CanUndo())

	require.NoError(t, e.Open(src.Path()))
	assert.False(t, e.Tools().Active())
	assert.Equal(t, src.Document().Pixels(), e.Document().Pixels())
	res, err := e.Release(state.Pt(1, 1))
	require.NoError(t, err)
	assert.Nil(t, res.Committed)
	assert.False(t, e.History().CanUndo())
}

func TestNewDocument(t *testing.T) {
	e := newEditor(t, 4, 4)
	changes := record(e)
	require.NoError(t, e.SetPixel(0, 0, red))

	require.NoError(t, e.NewDocument(16, 8, state.Black))
	assert.Equal(t, 16, e.Document().Width())
	assert.Equal(t, state.Black, e.Document().Background())
	assert.False(t, e.History().CanUndo())
	assert.Equal(t, "", e.Path())
	assert.Equal(t, Change{Reason: Loaded, Region: state.Rect{W: 16, H: 8}}, (*changes)[len(*changes)-1])

	assert.ErrorIs(t, e.NewDocument(0, 8, state.Black), state.ErrInvalidDimensions)
	assert.Equal(t, 16, e.Document().Width())
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	e := newEditor(t, 2, 2)
	require.NoError(t, e.SetPixel(0, 0, red))
	require.NoError(t, e.Export(filepath.Join(dir, "art.png")))
	_, err := os.Stat(filepath.Join(dir, "art.png"))
	assert.NoError(t, err)
	assert.ErrorIs(t, e.Export(filepath.Join(dir, "art.tga")), export.ErrUnsupportedFormat)
}

func TestReasonString(t *testing.T) {
	assert.Equal(t, "loaded", Loaded.String())
	assert.Equal(t, "Reason(99)", Reason(99).String())
}

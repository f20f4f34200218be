package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"PixelBoard/internal/editor"
	"PixelBoard/internal/export"
	"PixelBoard/internal/state"
	"PixelBoard/internal/tools"
)

var backdropColor = color.NRGBA{R: 245, G: 246, B: 248, A: 255}

// Board shows a document as an image scaled zoom pixels per cell. The image
// is cached and only the drained dirty regions are repainted on Sync.
type Board struct {
	widget.BaseWidget

	view func(func(*state.Document))
	ed   *editor.Editor // nil for a read-only board

	img    *image.NRGBA
	raster *canvas.Image
	zoom   float32
	pan    fyne.Position // read-only boards; editors pan through the tool machine

	pressed bool
	last    state.Point

	OnPicked func(state.Color)
	OnError  func(error)
	OnHover  func(p state.Point, inside bool)
	OnZoom   func(zoom float32)
}

var _ fyne.Widget = (*Board)(nil)
var _ fyne.Draggable = (*Board)(nil)
var _ fyne.Scrollable = (*Board)(nil)
var _ desktop.Mouseable = (*Board)(nil)
var _ desktop.Hoverable = (*Board)(nil)

// NewBoard creates an editing board for ed.
func NewBoard(ed *editor.Editor) *Board {
	return newBoard(func(fn func(*state.Document)) { fn(ed.Document()) }, ed)
}

// NewViewerBoard creates a read-only board drawing through view, which must
// serialise access to the document it passes.
func NewViewerBoard(view func(func(*state.Document))) *Board {
	return newBoard(view, nil)
}

func newBoard(view func(func(*state.Document)), ed *editor.Editor) *Board {
	b := &Board{view: view, ed: ed, zoom: DefaultZoom}
	b.view(func(doc *state.Document) {
		b.img = export.Rasterize(doc)
		doc.Tracker().Drain()
	})
	b.raster = canvas.NewImageFromImage(b.img)
	b.raster.ScaleMode = canvas.ImageScalePixels
	b.raster.FillMode = canvas.ImageFillStretch
	b.ExtendBaseWidget(b)
	return b
}

// Sync repaints the regions the document marked dirty since the last call.
// It must run on the fyne goroutine.
func (b *Board) Sync() {
	b.view(func(doc *state.Document) {
		rects := doc.Tracker().Drain()
		if b.img.Rect.Dx() != doc.Width() || b.img.Rect.Dy() != doc.Height() {
			b.img = export.Rasterize(doc)
			b.raster.Image = b.img
			return
		}
		for _, r := range rects {
			export.Paint(b.img, doc, r)
		}
	})
	b.Refresh()
}

func (b *Board) Zoom() float32 { return b.zoom }

func (b *Board) SetZoom(z float32) {
	b.zoom = clampZoom(z)
	if b.OnZoom != nil {
		b.OnZoom(b.zoom)
	}
	b.Refresh()
}

func (b *Board) ZoomIn()  { b.SetZoom(nextZoom(b.zoom, true)) }
func (b *Board) ZoomOut() { b.SetZoom(nextZoom(b.zoom, false)) }

// ResetView restores the default zoom and centres the grid.
func (b *Board) ResetView() {
	b.pan = fyne.Position{}
	if b.ed != nil {
		b.ed.Tools().ResetOffset()
	}
	b.SetZoom(DefaultZoom)
}

func (b *Board) panPixels() fyne.Position {
	if b.ed == nil {
		return b.pan
	}
	off := b.ed.Tools().Offset()
	return fyne.NewPos(float32(off.X)*b.zoom, float32(off.Y)*b.zoom)
}

func (b *Board) origin() fyne.Position {
	w, h := b.img.Rect.Dx(), b.img.Rect.Dy()
	return imageOrigin(b.Size(), w, h, b.zoom, b.panPixels())
}

// pointFor maps a pointer position to the coordinate the active tool works
// in. Panning uses unshifted screen cells so the offset does not feed back
// into its own deltas.
func (b *Board) pointFor(pos fyne.Position) state.Point {
	if b.ed != nil && b.ed.Tools().Kind() == tools.Pan {
		return cellAt(pos, fyne.Position{}, b.zoom)
	}
	return cellAt(pos, b.origin(), b.zoom)
}

func (b *Board) handle(res tools.Result, err error) {
	if err != nil && b.OnError != nil {
		b.OnError(err)
	}
	if res.Picked != nil && b.OnPicked != nil {
		b.OnPicked(*res.Picked)
	}
	if res.Pan != (state.Point{}) {
		b.Refresh()
	}
}

func (b *Board) MouseDown(e *desktop.MouseEvent) {
	if b.ed == nil || e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.pressed = true
	b.last = b.pointFor(e.Position)
	b.handle(b.ed.Press(b.last))
}

func (b *Board) MouseUp(e *desktop.MouseEvent) {
	if !b.pressed {
		return
	}
	b.release(b.pointFor(e.Position))
}

func (b *Board) release(p state.Point) {
	b.pressed = false
	b.handle(b.ed.Release(p))
}

func (b *Board) Dragged(e *fyne.DragEvent) {
	if b.ed == nil {
		b.pan = b.pan.Add(e.Dragged)
		b.Refresh()
		return
	}
	if !b.pressed {
		return
	}
	b.last = b.pointFor(e.Position)
	b.handle(b.ed.Drag(b.last), nil)
	b.hover(e.Position)
}

func (b *Board) DragEnd() {
	if b.pressed {
		b.release(b.last)
	}
}

func (b *Board) Scrolled(e *fyne.ScrollEvent) {
	if e.Scrolled.DY == 0 {
		return
	}
	b.SetZoom(nextZoom(b.zoom, e.Scrolled.DY > 0))
}

func (b *Board) hover(pos fyne.Position) {
	if b.OnHover == nil {
		return
	}
	p := cellAt(pos, b.origin(), b.zoom)
	b.OnHover(p, p.X >= 0 && p.Y >= 0 && p.X < b.img.Rect.Dx() && p.Y < b.img.Rect.Dy())
}

func (b *Board) MouseIn(e *desktop.MouseEvent)    { b.hover(e.Position) }
func (b *Board) MouseMoved(e *desktop.MouseEvent) { b.hover(e.Position) }
func (b *Board) MouseOut() {
	if b.OnHover != nil {
		b.OnHover(state.Point{}, false)
	}
}

func (b *Board) CreateRenderer() fyne.WidgetRenderer {
	frame := canvas.NewRectangle(color.Transparent)
	frame.StrokeColor = color.Gray{Y: 150}
	frame.StrokeWidth = 1
	return &boardRenderer{
		board:    b,
		backdrop: canvas.NewRectangle(backdropColor),
		frame:    frame,
	}
}

type boardRenderer struct {
	board    *Board
	backdrop *canvas.Rectangle
	frame    *canvas.Rectangle
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.backdrop.Resize(size)
	b := r.board
	origin := b.origin()
	imgSize := fyne.NewSize(float32(b.img.Rect.Dx())*b.zoom, float32(b.img.Rect.Dy())*b.zoom)
	b.raster.Move(origin)
	b.raster.Resize(imgSize)
	r.frame.Move(origin)
	r.frame.Resize(imgSize)
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.backdrop, r.board.raster, r.frame}
}

func (r *boardRenderer) Refresh() {
	r.Layout(r.board.Size())
	r.board.raster.Refresh()
}

func (r *boardRenderer) Destroy() {}

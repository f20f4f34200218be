package ui

import (
	"math"

	"fyne.io/fyne/v2"

	"PixelBoard/internal/state"
)

// Zoom is the on-screen size of one cell in pixels.
const (
	MinZoom     float32 = 4
	MaxZoom     float32 = 64
	DefaultZoom float32 = 16
	zoomStep    float32 = 1.2
)

func clampZoom(z float32) float32 {
	return float32(math.Max(float64(MinZoom), math.Min(float64(MaxZoom), float64(z))))
}

func nextZoom(z float32, in bool) float32 {
	if in {
		return clampZoom(z * zoomStep)
	}
	return clampZoom(z / zoomStep)
}

// imageOrigin is the top-left corner of a w x h cell grid centred in size
// and shifted by pan pixels.
func imageOrigin(size fyne.Size, w, h int, zoom float32, pan fyne.Position) fyne.Position {
	return fyne.NewPos(
		(size.Width-float32(w)*zoom)/2+pan.X,
		(size.Height-float32(h)*zoom)/2+pan.Y,
	)
}

// cellAt maps a widget position to the cell under it. Positions left of or
// above origin give negative cells.
func cellAt(pos, origin fyne.Position, zoom float32) state.Point {
	return state.Pt(
		int(math.Floor(float64((pos.X-origin.X)/zoom))),
		int(math.Floor(float64((pos.Y-origin.Y)/zoom))),
	)
}

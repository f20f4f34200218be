package export

import (
	"io"

	"github.com/jung-kurt/gofpdf"

	"PixelBoard/internal/state"
)

// WritePDF draws the document on a single page sized to the grid, scale
// points per cell. Fully transparent cells are not drawn, and the background
// is left out under translucent cells so they keep their own alpha, as in
// Rasterize.
func WritePDF(w io.Writer, doc *state.Document, scale int) error {
	cell := float64(max(scale, 1))
	pageW, pageH := float64(doc.Width())*cell, float64(doc.Height())*cell

	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.SetTitle("PixelBoard "+doc.ID(), true)
	p.AddPage()

	fill := func(c state.Color, x, y, w, h float64) {
		if c.A == 0 {
			return
		}
		p.SetAlpha(float64(c.A)/255, "Normal")
		p.SetFillColor(int(c.R), int(c.G), int(c.B))
		p.Rect(x, y, w, h, "F")
	}

	for _, r := range backgroundRuns(doc) {
		fill(doc.Background(), float64(r.X)*cell, float64(r.Y)*cell, float64(r.W)*cell, float64(r.H)*cell)
	}
	for _, c := range doc.Cells() {
		fill(c.Color, float64(c.X)*cell, float64(c.Y)*cell, cell, cell)
	}
	return p.Output(w)
}

// backgroundRuns returns the horizontal runs of cells the background shows
// under. A document without translucent cells yields the whole page.
func backgroundRuns(doc *state.Document) []state.Rect {
	holes := make(map[state.Point]bool)
	for _, c := range doc.Cells() {
		if !c.Color.Opaque() {
			holes[c.Point] = true
		}
	}
	if len(holes) == 0 {
		return []state.Rect{doc.Bounds()}
	}

	var runs []state.Rect
	for y := 0; y < doc.Height(); y++ {
		start := -1
		for x := 0; x <= doc.Width(); x++ {
			open := x < doc.Width() && !holes[state.Pt(x, y)]
			switch {
			case open && start < 0:
				start = x
			case !open && start >= 0:
				runs = append(runs, state.Rect{X: start, Y: y, W: x - start, H: 1})
				start = -1
			}
		}
	}
	return runs
}

package export

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"PixelBoard/internal/state"
)

// Rasterize renders the document one cell per pixel, alpha preserved.
func Rasterize(doc *state.Document) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, doc.Width(), doc.Height()))
	Paint(img, doc, doc.Bounds())
	return img
}

// Paint redraws the cells of r into dst, which must be at least as large as
// the document. Cells outside the document are left alone.
func Paint(dst *image.NRGBA, doc *state.Document, r state.Rect) {
	r = r.Intersect(doc.Bounds())
	if r.Empty() {
		return
	}
	if r.Area() <= doc.Len() {
		for y := r.Y; y < r.MaxY(); y++ {
			for x := r.X; x < r.MaxX(); x++ {
				c, _ := doc.GetPixel(x, y)
				dst.SetNRGBA(x, y, c.NRGBA())
			}
		}
		return
	}
	area := image.Rect(r.X, r.Y, r.MaxX(), r.MaxY()).Intersect(dst.Bounds())
	draw.Draw(dst, area, image.NewUniform(doc.Background().NRGBA()), image.Point{}, draw.Src)
	for p, c := range doc.Pixels() {
		if r.Contains(p) {
			dst.SetNRGBA(p.X, p.Y, c.NRGBA())
		}
	}
}

// Scale enlarges img by an integer factor with nearest-neighbour sampling,
// so every cell becomes a factor x factor block.
func Scale(img *image.NRGBA, factor int) *image.NRGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

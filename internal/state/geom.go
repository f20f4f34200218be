package state

import "fmt"

// Point is a cell coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func Pt(x, y int) Point { return Point{X: x, Y: y} }

func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Rect is an axis-aligned block of cells starting at (X, Y).
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// CellRect returns the 1x1 rectangle covering p.
func CellRect(p Point) Rect {
	return Rect{X: p.X, Y: p.Y, W: 1, H: 1}
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

func (r Rect) MaxX() int { return r.X + r.W }
func (r Rect) MaxY() int { return r.Y + r.H }

// Contains reports whether the cell p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Covers reports whether o lies entirely inside r.
func (r Rect) Covers(o Rect) bool {
	if o.Empty() {
		return true
	}
	return o.X >= r.X && o.Y >= r.Y && o.MaxX() <= r.MaxX() && o.MaxY() <= r.MaxY()
}

// Union returns the bounding rectangle of r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	minX, minY := min(r.X, o.X), min(r.Y, o.Y)
	maxX, maxY := max(r.MaxX(), o.MaxX()), max(r.MaxY(), o.MaxY())
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Intersect returns the overlap of r and o, or the zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	minX, minY := max(r.X, o.X), max(r.Y, o.Y)
	maxX, maxY := min(r.MaxX(), o.MaxX()), min(r.MaxY(), o.MaxY())
	if maxX <= minX || maxY <= minY {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Near reports whether r and o overlap or are separated by at most gap cells
// on both axes.
func (r Rect) Near(o Rect, gap int) bool {
	return !(r.MaxX()+gap < o.X || o.MaxX()+gap < r.X ||
		r.MaxY()+gap < o.Y || o.MaxY()+gap < r.Y)
}

// Overlaps reports whether r and o share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return !r.Intersect(o).Empty()
}

// Area is the number of cells covered.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

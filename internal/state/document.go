package state

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Cell pairs a coordinate with a colour.
type Cell struct {
	Point
	Color Color `json:"color"`
}

// Document is a bounded grid of coloured cells. Only cells whose colour
// differs from the background are stored; every mutation is reported to the
// document's dirty Tracker before the call returns.
//
// A Document is single-owner: callers must not mutate it from more than one
// goroutine.
type Document struct {
	id         string
	width      int
	height     int
	background Color
	pixels     map[Point]Color
	limits     Limits
	tracker    *Tracker
	modified   bool
}

// Option configures a Document at construction time.
type Option func(*Document)

// WithLimits overrides the allowed width/height range.
func WithLimits(l Limits) Option {
	return func(d *Document) {
		d.limits = l
	}
}

// WithTracker injects the dirty-region tracker updated by the document.
func WithTracker(t *Tracker) Option {
	return func(d *Document) {
		if t != nil {
			d.tracker = t
		}
	}
}

// WithID sets the document id instead of generating a fresh one.
func WithID(id string) Option {
	return func(d *Document) {
		if id != "" {
			d.id = id
		}
	}
}

// New creates an empty document filled with background.
func New(width, height int, background Color, opts ...Option) (*Document, error) {
	d := &Document{
		id:         uuid.NewString(),
		background: background,
		pixels:     make(map[Point]Color),
		limits:     DefaultLimits,
		tracker:    NewTracker(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.limits.Valid(); err != nil {
		return nil, err
	}
	if err := d.limits.Check(width, height); err != nil {
		return nil, err
	}
	d.width, d.height = width, height
	d.tracker.Mark(d.Bounds())
	return d, nil
}

func (d *Document) ID() string        { return d.id }
func (d *Document) Width() int        { return d.width }
func (d *Document) Height() int       { return d.height }
func (d *Document) Background() Color { return d.background }
func (d *Document) Limits() Limits    { return d.limits }
func (d *Document) Tracker() *Tracker { return d.tracker }
func (d *Document) Modified() bool    { return d.modified }
func (d *Document) MarkSaved()        { d.modified = false }
func (d *Document) Len() int          { return len(d.pixels) }
func (d *Document) Bounds() Rect      { return Rect{W: d.width, H: d.height} }
func (d *Document) InBounds(x, y int) bool {
	return x >= 0 && x < d.width && y >= 0 && y < d.height
}

func (d *Document) checkBounds(x, y int) error {
	if !d.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, d.width, d.height)
	}
	return nil
}

// GetPixel returns the colour of a cell.
func (d *Document) GetPixel(x, y int) (Color, error) {
	if err := d.checkBounds(x, y); err != nil {
		return Color{}, err
	}
	return d.at(Point{X: x, Y: y}), nil
}

func (d *Document) at(p Point) Color {
	if c, ok := d.pixels[p]; ok {
		return c
	}
	return d.background
}

// SetPixel paints one cell and returns its previous colour.
func (d *Document) SetPixel(x, y int, c Color) (Color, error) {
	if err := d.checkBounds(x, y); err != nil {
		return Color{}, err
	}
	return d.put(Point{X: x, Y: y}, c), nil
}

// put writes a cell that is known to be in bounds, keeping the map sparse.
func (d *Document) put(p Point, c Color) Color {
	old := d.at(p)
	if old == c {
		return old
	}
	if c == d.background {
		delete(d.pixels, p)
	} else {
		d.pixels[p] = c
	}
	d.modified = true
	d.tracker.MarkCell(p.X, p.Y)
	return old
}

// Apply writes cells in order. Every coordinate is validated before the first
// write so a failing batch leaves the document untouched.
func (d *Document) Apply(cells []Cell) error {
	for _, cell := range cells {
		if err := d.checkBounds(cell.X, cell.Y); err != nil {
			return err
		}
	}
	for _, cell := range cells {
		d.put(cell.Point, cell.Color)
	}
	return nil
}

// Resize changes the grid dimensions. Cells outside the new bounds are
// dropped; nothing is scaled.
func (d *Document) Resize(width, height int) error {
	if err := d.limits.Check(width, height); err != nil {
		return err
	}
	if width == d.width && height == d.height {
		return nil
	}
	d.setSize(width, height)
	return nil
}

func (d *Document) setSize(width, height int) {
	for p := range d.pixels {
		if p.X >= width || p.Y >= height {
			delete(d.pixels, p)
		}
	}
	d.width, d.height = width, height
	d.modified = true
	d.tracker.Mark(d.Bounds())
}

// Clear resets every cell to the background. Use NewClearCommand for the
// undoable form.
func (d *Document) Clear() {
	if len(d.pixels) > 0 {
		d.pixels = make(map[Point]Color)
		d.modified = true
	}
	d.tracker.Mark(d.Bounds())
}

// Reset turns d into a fresh empty document with a new id. Limits and the
// tracker are kept.
func (d *Document) Reset(width, height int, background Color) error {
	if err := d.limits.Check(width, height); err != nil {
		return err
	}
	d.id = uuid.NewString()
	d.replace(width, height, background, make(map[Point]Color))
	return nil
}

// Pixels returns a copy of the sparse cell map.
func (d *Document) Pixels() map[Point]Color {
	out := make(map[Point]Color, len(d.pixels))
	for p, c := range d.pixels {
		out[p] = c
	}
	return out
}

// Cells returns the non-background cells in row-major order.
func (d *Document) Cells() []Cell {
	cells := make([]Cell, 0, len(d.pixels))
	for p, c := range d.pixels {
		cells = append(cells, Cell{Point: p, Color: c})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

// Clone returns a deep copy with its own tracker.
func (d *Document) Clone() *Document {
	return &Document{
		id:         d.id,
		width:      d.width,
		height:     d.height,
		background: d.background,
		pixels:     d.Pixels(),
		limits:     d.limits,
		tracker:    NewTracker(),
		modified:   d.modified,
	}
}

// replace swaps in fully validated content and invalidates the whole grid.
func (d *Document) replace(width, height int, background Color, pixels map[Point]Color) {
	d.width, d.height = width, height
	d.background = background
	d.pixels = pixels
	d.modified = false
	d.tracker.Mark(d.Bounds())
}

package state

import (
	"fmt"

	"github.com/google/uuid"
)

// CommandKind names the edit a Command records.
type CommandKind string

const (
	KindPaint  CommandKind = "paint"
	KindStroke CommandKind = "stroke"
	KindErase  CommandKind = "erase"
	KindFill   CommandKind = "fill"
	KindClear  CommandKind = "clear"
	KindResize CommandKind = "resize"
)

// Change is one cell transition recorded by a Command.
type Change struct {
	Point
	Old Color `json:"old"`
	New Color `json:"new"`
}

type resizeStep struct {
	OldW, OldH int
	NewW, NewH int
	// Dropped holds the cells removed by shrinking, restored on revert.
	Dropped []Cell
}

// Command is a reversible edit stored as data: the before and after colour of
// every cell it touches. Reverting never consults the current document
// contents, so it stays exact regardless of what happened in between.
type Command struct {
	ID      string      `json:"id"`
	Kind    CommandKind `json:"kind"`
	Changes []Change    `json:"changes"`

	resize *resizeStep
	full   Rect
}

func newCommand(kind CommandKind) *Command {
	return &Command{ID: uuid.NewString(), Kind: kind}
}

// NewPaintCommand records painting cells on doc. Old colours are read from doc
// now; cells that would not change are left out. A cell listed twice keeps
// its first old colour and its last new colour.
func NewPaintCommand(doc *Document, kind CommandKind, cells []Cell) (*Command, error) {
	cmd := newCommand(kind)
	index := make(map[Point]int, len(cells))
	for _, cell := range cells {
		if err := doc.checkBounds(cell.X, cell.Y); err != nil {
			return nil, err
		}
		if i, ok := index[cell.Point]; ok {
			cmd.Changes[i].New = cell.Color
			continue
		}
		index[cell.Point] = len(cmd.Changes)
		cmd.Changes = append(cmd.Changes, Change{Point: cell.Point, Old: doc.at(cell.Point), New: cell.Color})
	}
	cmd.Changes = dropNoops(cmd.Changes)
	return cmd, nil
}

// NewAppliedCommand records changes that were already written to a document,
// such as a live brush stroke, for History.Commit. Duplicates collapse to the
// first old and last new colour.
func NewAppliedCommand(kind CommandKind, changes []Change) *Command {
	cmd := newCommand(kind)
	index := make(map[Point]int, len(changes))
	for _, ch := range changes {
		if i, ok := index[ch.Point]; ok {
			cmd.Changes[i].New = ch.New
			continue
		}
		index[ch.Point] = len(cmd.Changes)
		cmd.Changes = append(cmd.Changes, ch)
	}
	cmd.Changes = dropNoops(cmd.Changes)
	return cmd
}

func dropNoops(changes []Change) []Change {
	out := changes[:0]
	for _, ch := range changes {
		if ch.Old != ch.New {
			out = append(out, ch)
		}
	}
	return out
}

// NewFillCommand runs the flood fill from seed and records the result.
func NewFillCommand(doc *Document, seed Point, c Color) (*Command, error) {
	region, err := FloodFill(doc, seed, c)
	if err != nil {
		return nil, err
	}
	cmd := newCommand(KindFill)
	cmd.Changes = make([]Change, 0, len(region))
	for _, p := range region {
		cmd.Changes = append(cmd.Changes, Change{Point: p, Old: doc.at(p), New: c})
	}
	return cmd, nil
}

// NewClearCommand records resetting every painted cell to the background.
func NewClearCommand(doc *Document) *Command {
	cmd := newCommand(KindClear)
	for _, cell := range doc.Cells() {
		cmd.Changes = append(cmd.Changes, Change{Point: cell.Point, Old: cell.Color, New: doc.background})
	}
	cmd.full = doc.Bounds()
	return cmd
}

// NewResizeCommand records a resize, including the cells it will drop.
func NewResizeCommand(doc *Document, width, height int) (*Command, error) {
	if err := doc.limits.Check(width, height); err != nil {
		return nil, err
	}
	cmd := newCommand(KindResize)
	if width == doc.width && height == doc.height {
		return cmd, nil
	}
	step := &resizeStep{OldW: doc.width, OldH: doc.height, NewW: width, NewH: height}
	for _, cell := range doc.Cells() {
		if cell.X >= width || cell.Y >= height {
			step.Dropped = append(step.Dropped, cell)
		}
	}
	cmd.resize = step
	return cmd, nil
}

// Empty reports whether applying the command would change nothing.
func (c *Command) Empty() bool {
	return len(c.Changes) == 0 && c.resize == nil
}

// Region is the area a renderer must repaint after applying or reverting.
func (c *Command) Region() Rect {
	if c.resize != nil {
		return Rect{W: max(c.resize.OldW, c.resize.NewW), H: max(c.resize.OldH, c.resize.NewH)}
	}
	r := c.full
	for _, ch := range c.Changes {
		r = r.Union(CellRect(ch.Point))
	}
	return r
}

// Resized reports whether the command changes the document dimensions.
func (c *Command) Resized() bool {
	return c.resize != nil
}

// Forward lists the cells written by Apply.
func (c *Command) Forward() []Cell {
	out := make([]Cell, len(c.Changes))
	for i, ch := range c.Changes {
		out[i] = Cell{Point: ch.Point, Color: ch.New}
	}
	return out
}

// Backward lists the cells written by Revert, in revert order.
func (c *Command) Backward() []Cell {
	out := make([]Cell, len(c.Changes))
	for i := range c.Changes {
		ch := c.Changes[len(c.Changes)-1-i]
		out[i] = Cell{Point: ch.Point, Color: ch.Old}
	}
	return out
}

// Apply performs the command on doc.
func (c *Command) Apply(doc *Document) error {
	if c.resize != nil {
		if doc.width != c.resize.OldW || doc.height != c.resize.OldH {
			return fmt.Errorf("%w: resize expects %dx%d, document is %dx%d",
				ErrInvalidDimensions, c.resize.OldW, c.resize.OldH, doc.width, doc.height)
		}
		doc.setSize(c.resize.NewW, c.resize.NewH)
		return nil
	}
	if err := doc.Apply(c.Forward()); err != nil {
		return err
	}
	if !c.full.Empty() {
		doc.tracker.Mark(doc.Bounds())
	}
	return nil
}

// Revert undoes the command on doc.
func (c *Command) Revert(doc *Document) error {
	if c.resize != nil {
		if doc.width != c.resize.NewW || doc.height != c.resize.NewH {
			return fmt.Errorf("%w: resize revert expects %dx%d, document is %dx%d",
				ErrInvalidDimensions, c.resize.NewW, c.resize.NewH, doc.width, doc.height)
		}
		doc.setSize(c.resize.OldW, c.resize.OldH)
		for _, cell := range c.resize.Dropped {
			doc.put(cell.Point, cell.Color)
		}
		return nil
	}
	if err := doc.Apply(c.Backward()); err != nil {
		return err
	}
	if !c.full.Empty() {
		doc.tracker.Mark(doc.Bounds())
	}
	return nil
}

func (c *Command) String() string {
	return fmt.Sprintf("%s(%d cells)", c.Kind, len(c.Changes))
}

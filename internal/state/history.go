package state

import "fmt"

// Direction says how a history event touched the document.
type Direction int

const (
	Executed Direction = iota
	Undone
	Redone
)

func (d Direction) String() string {
	switch d {
	case Executed:
		return "execute"
	case Undone:
		return "undo"
	case Redone:
		return "redo"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Event is passed to history observers after every successful transition.
type Event struct {
	Command   *Command
	Direction Direction
}

// History is a linear undo/redo stack bound to one document. Pushing a new
// command discards the redo stack; once depth is exceeded the oldest undo
// entry is evicted for good.
type History struct {
	doc      *Document
	undo     []*Command
	redo     []*Command
	depth    int
	onChange []func(Event)
}

// NewHistory creates a history for doc keeping at most depth undo steps.
// A non-positive depth selects DefaultHistoryDepth.
func NewHistory(doc *Document, depth int) *History {
	if depth <= 0 {
		depth = DefaultHistoryDepth
	}
	return &History{doc: doc, depth: depth}
}

func (h *History) Document() *Document { return h.doc }
func (h *History) Depth() int          { return h.depth }
func (h *History) CanUndo() bool       { return len(h.undo) > 0 }
func (h *History) CanRedo() bool       { return len(h.redo) > 0 }
func (h *History) UndoLen() int        { return len(h.undo) }
func (h *History) RedoLen() int        { return len(h.redo) }

// OnChange registers an observer called after execute, commit, undo and redo.
func (h *History) OnChange(fn func(Event)) {
	h.onChange = append(h.onChange, fn)
}

func (h *History) notify(cmd *Command, dir Direction) {
	for _, fn := range h.onChange {
		fn(Event{Command: cmd, Direction: dir})
	}
}

// Execute applies cmd and records it. Empty commands are dropped without
// touching either stack.
func (h *History) Execute(cmd *Command) error {
	if cmd == nil || cmd.Empty() {
		return nil
	}
	if err := cmd.Apply(h.doc); err != nil {
		return err
	}
	h.push(cmd)
	h.notify(cmd, Executed)
	return nil
}

// Commit records a command whose effect is already on the document, such as
// a brush stroke painted while the pointer moved.
func (h *History) Commit(cmd *Command) error {
	if cmd == nil || cmd.Empty() {
		return nil
	}
	h.push(cmd)
	h.notify(cmd, Executed)
	return nil
}

func (h *History) push(cmd *Command) {
	h.undo = append(h.undo, cmd)
	clear(h.redo)
	h.redo = h.redo[:0]
	if over := len(h.undo) - h.depth; over > 0 {
		clear(h.undo[:over])
		h.undo = h.undo[over:]
	}
}

// Undo reverts the most recent command and returns the area to repaint.
func (h *History) Undo() (Rect, error) {
	if len(h.undo) == 0 {
		return Rect{}, ErrNothingToUndo
	}
	cmd := h.undo[len(h.undo)-1]
	if err := cmd.Revert(h.doc); err != nil {
		return Rect{}, err
	}
	h.undo[len(h.undo)-1] = nil
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cmd)
	h.notify(cmd, Undone)
	return cmd.Region(), nil
}

// Redo re-applies the most recently undone command.
func (h *History) Redo() (Rect, error) {
	if len(h.redo) == 0 {
		return Rect{}, ErrNothingToRedo
	}
	cmd := h.redo[len(h.redo)-1]
	if err := cmd.Apply(h.doc); err != nil {
		return Rect{}, err
	}
	h.redo[len(h.redo)-1] = nil
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cmd)
	h.notify(cmd, Redone)
	return cmd.Region(), nil
}

// PeekUndo returns the command Undo would revert, or nil.
func (h *History) PeekUndo() *Command {
	if len(h.undo) == 0 {
		return nil
	}
	return h.undo[len(h.undo)-1]
}

// PeekRedo returns the command Redo would re-apply, or nil.
func (h *History) PeekRedo() *Command {
	if len(h.redo) == 0 {
		return nil
	}
	return h.redo[len(h.redo)-1]
}

// Reset forgets every recorded command, e.g. after loading a file.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}

package tools

import "PixelBoard/internal/state"

// Result reports what one gesture step did.
type Result struct {
	Changed   state.Rect     // area of the document written, if any
	Picked    *state.Color   // set when the picker sampled a colour
	Pan       state.Point    // viewport delta produced by this step
	Committed *state.Command // command pushed to history by this step
}

// Machine turns press/drag/release gestures into document edits for the
// active tool. Brush and eraser strokes are painted live and pushed to
// history as a single command when the gesture ends.
type Machine struct {
	history *state.History
	kind    Kind
	color   state.Color
	offset  state.Point

	active bool
	last   state.Point
	stroke []state.Change
}

func New(h *state.History) *Machine {
	return &Machine{history: h, kind: Brush, color: state.Black}
}

func (m *Machine) Kind() Kind                { return m.kind }
func (m *Machine) Color() state.Color        { return m.color }
func (m *Machine) SetColor(c state.Color)    { m.color = c }
func (m *Machine) Offset() state.Point       { return m.offset }
func (m *Machine) ResetOffset()              { m.offset = state.Point{} }
func (m *Machine) Active() bool              { return m.active }
func (m *Machine) document() *state.Document { return m.history.Document() }

// SetKind switches tools. A gesture in progress is finished first, so a
// pending stroke is committed before the switch.
func (m *Machine) SetKind(k Kind) (Result, error) {
	if !k.valid() {
		return Result{}, ErrUnknownTool
	}
	res, err := m.Finish()
	if err != nil {
		return res, err
	}
	m.kind = k
	return res, nil
}

func (m *Machine) paintColor() state.Color {
	if m.kind == Eraser {
		return m.document().Background()
	}
	return m.color
}

// Press starts a gesture at cell p.
func (m *Machine) Press(p state.Point) (Result, error) {
	res, err := m.Finish()
	if err != nil {
		return res, err
	}
	doc := m.document()

	switch m.kind {
	case Brush, Eraser:
		m.active = true
		m.last = p
		m.stroke = m.stroke[:0]
		res.Changed = m.paint(p)

	case Fill:
		if !doc.InBounds(p.X, p.Y) {
			return res, nil
		}
		cmd, err := state.NewFillCommand(doc, p, m.color)
		if err != nil {
			return res, err
		}
		if cmd.Empty() {
			return res, nil
		}
		if err := m.history.Execute(cmd); err != nil {
			return res, err
		}
		res.Changed = cmd.Region()
		res.Committed = cmd

	case Picker:
		c, err := doc.GetPixel(p.X, p.Y)
		if err != nil {
			return res, nil
		}
		m.color = c
		res.Picked = &c

	case Pan:
		m.active = true
		m.last = p
	}
	return res, nil
}

// Drag continues the gesture to cell p. It is ignored without a prior Press.
func (m *Machine) Drag(p state.Point) Result {
	var res Result
	if !m.active || p == m.last {
		return res
	}
	switch {
	case m.kind.paints():
		for _, q := range Line(m.last, p)[1:] {
			res.Changed = res.Changed.Union(m.paint(q))
		}
	case m.kind == Pan:
		res.Pan = state.Pt(p.X-m.last.X, p.Y-m.last.Y)
		m.offset = state.Pt(m.offset.X+res.Pan.X, m.offset.Y+res.Pan.Y)
	}
	m.last = p
	return res
}

// Release ends the gesture at cell p.
func (m *Machine) Release(p state.Point) (Result, error) {
	if !m.active {
		return Result{}, nil
	}
	res := m.Drag(p)
	fin, err := m.Finish()
	res.Committed = fin.Committed
	return res, err
}

// Finish ends any gesture in progress without moving the pointer.
func (m *Machine) Finish() (Result, error) {
	var res Result
	if !m.active {
		return res, nil
	}
	m.active = false
	if !m.kind.paints() {
		return res, nil
	}

	kind := state.KindStroke
	if m.kind == Eraser {
		kind = state.KindErase
	}
	cmd := state.NewAppliedCommand(kind, m.stroke)
	m.stroke = m.stroke[:0]
	if cmd.Empty() {
		return res, nil
	}
	if err := m.history.Commit(cmd); err != nil {
		return res, err
	}
	res.Committed = cmd
	return res, nil
}

// Cancel abandons a pending stroke, restoring the cells it painted.
func (m *Machine) Cancel() state.Rect {
	var changed state.Rect
	if !m.active {
		return changed
	}
	m.active = false
	doc := m.document()
	for i := len(m.stroke) - 1; i >= 0; i-- {
		ch := m.stroke[i]
		if _, err := doc.SetPixel(ch.X, ch.Y, ch.Old); err == nil {
			changed = changed.Union(state.CellRect(ch.Point))
		}
	}
	m.stroke = m.stroke[:0]
	return changed
}

// Discard forgets a pending gesture without touching the document. Use it
// after the document content was replaced wholesale.
func (m *Machine) Discard() {
	m.active = false
	m.stroke = m.stroke[:0]
}

// paint writes one stroke cell, skipping cells outside the grid.
func (m *Machine) paint(p state.Point) state.Rect {
	c := m.paintColor()
	old, err := m.document().SetPixel(p.X, p.Y, c)
	if err != nil || old == c {
		return state.Rect{}
	}
	m.stroke = append(m.stroke, state.Change{Point: p, Old: old, New: c})
	return state.CellRect(p)
}
